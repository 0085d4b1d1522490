package middleware

import (
	ct "userapp/pkg/context"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	RequestIDHeader = "X-Request-ID"

	currentKey = "current"
)

// CurrentMiddleware stores a Current for the request. The request id comes
// from X-Request-ID or is generated, and is echoed in the response.
func CurrentMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader(RequestIDHeader)
		if requestID == "" {
			requestID = uuid.NewString()
		}

		current := &ct.Current{
			RequestID: requestID,
			Method:    c.Request.Method,
			Path:      c.Request.URL.Path,
			ClientIP:  c.ClientIP(),
			UserAgent: c.Request.UserAgent(),
		}

		c.Request = c.Request.WithContext(ct.WithCurrent(c.Request.Context(), current))
		c.Set(currentKey, current)
		c.Header(RequestIDHeader, requestID)

		c.Next()
	}
}

func GetCurrent(c *gin.Context) *ct.Current {
	if v, ok := c.Get(currentKey); ok {
		if current, ok := v.(*ct.Current); ok {
			return current
		}
	}
	return ct.GetCurrent(c.Request.Context())
}
