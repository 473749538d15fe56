package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// SessionContext carries the caller's session and visitor identity. The
// session ID scopes one browsing session; the visitor ID is the durable
// profile key that survives across sessions.
type SessionContext struct {
	SessionID string
	VisitorID string
}

// SessionMiddleware extracts session identity from the X-Session-ID and
// X-Visitor-ID headers. Both are required on session-scoped routes.
func SessionMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		sessionID := c.GetHeader("X-Session-ID")
		visitorID := c.GetHeader("X-Visitor-ID")

		if sessionID == "" || visitorID == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "X-Session-ID and X-Visitor-ID headers are required"})
			c.Abort()
			return
		}

		c.Set("session", &SessionContext{
			SessionID: sessionID,
			VisitorID: visitorID,
		})
		c.Next()
	}
}

// GetSessionContext retrieves the session context from gin context.
func GetSessionContext(c *gin.Context) (*SessionContext, bool) {
	value, exists := c.Get("session")
	if !exists {
		return nil, false
	}
	sessionCtx, ok := value.(*SessionContext)
	return sessionCtx, ok
}
