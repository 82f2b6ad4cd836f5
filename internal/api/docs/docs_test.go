package docs

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/swaggo/swag"
)

func TestRegister_ServesValidJSON(t *testing.T) {
	Register("localhost", 8080)
	Register("ignored", 1)

	raw, err := swag.ReadDoc()
	require.NoError(t, err)

	var parsed map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(raw), &parsed))
	assert.Equal(t, "localhost:8080", parsed["host"])

	paths, ok := parsed["paths"].(map[string]interface{})
	require.True(t, ok)
	assert.Contains(t, paths, "/bids/{id}/hire")
	assert.Contains(t, paths, "/gigs/{id}/cancel")
}
