package dto

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func ptrFloat64(f float64) *float64 { return &f }

func TestCreateGigRequest_Validation(t *testing.T) {
	v := NewValidator()

	valid := CreateGigRequest{Title: "Logo", Description: "A logo", Budget: ptrFloat64(0), Category: "design"}
	assert.NoError(t, v.Struct(valid))

	noBudget := valid
	noBudget.Budget = nil
	assert.Error(t, v.Struct(noBudget))

	badCategory := valid
	badCategory.Category = "VedioEditing"
	assert.Error(t, v.Struct(badCategory))

	longTitle := valid
	longTitle.Title = string(make([]byte, 101))
	assert.Error(t, v.Struct(longTitle))

	maxBudget := valid
	maxBudget.Budget = ptrFloat64(9999999999.99)
	assert.NoError(t, v.Struct(maxBudget))

	hugeBudget := valid
	hugeBudget.Budget = ptrFloat64(1e10)
	assert.Error(t, v.Struct(hugeBudget))
}

func TestCreateBidRequest_Validation(t *testing.T) {
	v := NewValidator()

	valid := CreateBidRequest{GigID: uuid.New(), ProposedAmount: ptrFloat64(10), DeliveryTime: 1, CoverLetter: "hello"}
	assert.NoError(t, v.Struct(valid))

	zeroDays := valid
	zeroDays.DeliveryTime = 0
	assert.Error(t, v.Struct(zeroDays))

	negative := valid
	negative.ProposedAmount = ptrFloat64(-1)
	assert.Error(t, v.Struct(negative))

	huge := valid
	huge.ProposedAmount = ptrFloat64(1e12)
	assert.Error(t, v.Struct(huge))

	noGig := valid
	noGig.GigID = uuid.Nil
	assert.Error(t, v.Struct(noGig))
}

func TestListGigsRequest_Validation(t *testing.T) {
	v := NewValidator()

	assert.NoError(t, v.Struct(ListGigsRequest{Status: "open", Page: 1, Limit: 10}))
	assert.NoError(t, v.Struct(ListGigsRequest{}))
	assert.Error(t, v.Struct(ListGigsRequest{Status: "archived"}))
	assert.Error(t, v.Struct(ListGigsRequest{Limit: 101}))
}
