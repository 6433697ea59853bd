// README: Bearer-token auth middleware.
package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"wayfarer/internal/types"
)

const (
	ctxKeyUID   = "caller_uid"
	ctxKeyToken = "caller_token"
)

// TokenVerifier validates a bearer token and returns the caller's user id.
type TokenVerifier interface {
	VerifyToken(token string) (types.ID, error)
}

// Auth requires a valid Authorization: Bearer token and records the caller
// identity on the request context.
func Auth(verifier TokenVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing bearer token"})
			return
		}
		uid, err := verifier.VerifyToken(token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			return
		}
		c.Set(ctxKeyUID, string(uid))
		c.Set(ctxKeyToken, token)
		c.Next()
	}
}

// CallerUID returns the authenticated user id, or "" on unauthenticated
// requests.
func CallerUID(c *gin.Context) string {
	return c.GetString(ctxKeyUID)
}

// CallerToken returns the raw bearer token the caller presented.
func CallerToken(c *gin.Context) string {
	return c.GetString(ctxKeyToken)
}
