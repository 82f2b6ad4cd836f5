package middleware

import (
	"log"
	"time"

	"github.com/gin-gonic/gin"
)

// Logger logs method, path, client, caller, status and latency for every request.
func Logger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		caller := "-"
		if userID, err := GetUserIDFromContext(c); err == nil {
			caller = userID.String()
		}

		log.Printf(
			"[%s] %s %s user=%s %d %s",
			c.Request.Method,
			c.Request.URL.Path,
			c.ClientIP(),
			caller,
			c.Writer.Status(),
			time.Since(start),
		)
	}
}
