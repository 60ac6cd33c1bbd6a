package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/FarahAbdullah11/NU-CLUBS/pkg/response"
)

// BodyLimit caps request bodies at maxBytes. Declared lengths over the
// limit are refused up front; streamed bodies fail at read time and the
// handler reports 413 from the bind error.
func BodyLimit(maxBytes int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		if maxBytes <= 0 {
			c.Next()
			return
		}

		if c.Request.ContentLength > maxBytes {
			response.Error(c, http.StatusRequestEntityTooLarge, 10005, "request body too large")
			c.Abort()
			return
		}

		if c.Request.Body != nil {
			c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
		}

		c.Next()
	}
}
