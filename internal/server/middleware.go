package server

import (
	"crypto/subtle"
	"strings"

	"github.com/gin-gonic/gin"
)

// HeaderAPIKey carries the shared secret on every request.
const HeaderAPIKey = "x-api-key"

// APIKeyRequired authenticates requests against the configured API key.
// Absent or mismatching keys are rejected before any handler logic runs.
func (s *Server) APIKeyRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		key := strings.TrimSpace(c.GetHeader(HeaderAPIKey))
		if key == "" || s.cfg.APIKey == "" {
			AbortWithError(c, ErrUnauthorized)
			return
		}

		if subtle.ConstantTimeCompare([]byte(key), []byte(s.cfg.APIKey)) != 1 {
			AbortWithError(c, ErrUnauthorized)
			return
		}

		c.Next()
	}
}
