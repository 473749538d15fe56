package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSessionRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(SessionMiddleware())
	r.GET("/probe", func(c *gin.Context) {
		sessionCtx, ok := GetSessionContext(c)
		if !ok {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "missing session context"})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"sessionId": sessionCtx.SessionID,
			"visitorId": sessionCtx.VisitorID,
		})
	})
	return r
}

func TestSessionMiddlewareRequiresBothHeaders(t *testing.T) {
	router := newSessionRouter()

	tests := []struct {
		name      string
		sessionID string
		visitorID string
		expected  int
	}{
		{"both headers", "sess-1", "vis-1", http.StatusOK},
		{"missing visitor", "sess-1", "", http.StatusBadRequest},
		{"missing session", "", "vis-1", http.StatusBadRequest},
		{"no headers", "", "", http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/probe", nil)
			if tt.sessionID != "" {
				req.Header.Set("X-Session-ID", tt.sessionID)
			}
			if tt.visitorID != "" {
				req.Header.Set("X-Visitor-ID", tt.visitorID)
			}

			recorder := httptest.NewRecorder()
			router.ServeHTTP(recorder, req)

			assert.Equal(t, tt.expected, recorder.Code)
		})
	}
}

func TestSessionMiddlewarePropagatesIdentity(t *testing.T) {
	router := newSessionRouter()

	req := httptest.NewRequest(http.MethodGet, "/probe", nil)
	req.Header.Set("X-Session-ID", "sess-42")
	req.Header.Set("X-Visitor-ID", "vis-42")

	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)

	require.Equal(t, http.StatusOK, recorder.Code)
	assert.JSONEq(t, `{"sessionId":"sess-42","visitorId":"vis-42"}`, recorder.Body.String())
}
