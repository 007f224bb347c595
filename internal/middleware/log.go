package middleware

import (
	"log"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const requestIDHeader = "X-Request-ID"

// RequestLog tags every request with an id and logs method, path,
// status and duration. Request bodies are never logged, so plaintext
// passwords cannot leak into the log.
func RequestLog() gin.HandlerFunc {
	return func(c *gin.Context) {
		reqID := c.GetHeader(requestIDHeader)
		if reqID == "" {
			reqID = uuid.New().String()
		}
		c.Writer.Header().Set(requestIDHeader, reqID)
		c.Set("requestID", reqID)

		start := time.Now()
		c.Next()

		log.Printf("%s %s %s -> %d (%s)",
			reqID, c.Request.Method, c.Request.URL.Path,
			c.Writer.Status(), time.Since(start))
	}
}
