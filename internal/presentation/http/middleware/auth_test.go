package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/archielvc/bartlett-partners-v10-sub002/internal/infrastructure/security"
	"github.com/archielvc/bartlett-partners-v10-sub002/pkg/config"
)

func newAdminRouter(t *testing.T) *gin.Engine {
	t.Helper()

	restore := config.JWTSecret
	config.JWTSecret = "test-secret"
	t.Cleanup(func() { config.JWTSecret = restore })

	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(AdminAuthMiddleware())
	r.GET("/admin/probe", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	return r
}

func probeAdmin(router *gin.Engine, authorization string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/admin/probe", nil)
	if authorization != "" {
		req.Header.Set("Authorization", authorization)
	}
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)
	return recorder
}

func TestAdminAuthAcceptsValidToken(t *testing.T) {
	router := newAdminRouter(t)

	token, err := security.GenerateAdminToken("test-secret", time.Hour)
	require.NoError(t, err)

	assert.Equal(t, http.StatusOK, probeAdmin(router, "Bearer "+token).Code)
}

func TestAdminAuthRejectsMissingOrMalformedHeader(t *testing.T) {
	router := newAdminRouter(t)

	assert.Equal(t, http.StatusUnauthorized, probeAdmin(router, "").Code)
	assert.Equal(t, http.StatusUnauthorized, probeAdmin(router, "token-without-scheme").Code)
	assert.Equal(t, http.StatusUnauthorized, probeAdmin(router, "Bearer ").Code)
	assert.Equal(t, http.StatusUnauthorized, probeAdmin(router, "Bearer garbage").Code)
}

func TestAdminAuthRejectsWrongSecret(t *testing.T) {
	router := newAdminRouter(t)

	token, err := security.GenerateAdminToken("some-other-secret", time.Hour)
	require.NoError(t, err)

	assert.Equal(t, http.StatusUnauthorized, probeAdmin(router, "Bearer "+token).Code)
}

func TestAdminAuthRejectsNonAdminRole(t *testing.T) {
	router := newAdminRouter(t)

	claims := jwt.MapClaims{
		"role": "viewer",
		"exp":  time.Now().UTC().Add(time.Hour).Unix(),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	require.NoError(t, err)

	assert.Equal(t, http.StatusForbidden, probeAdmin(router, "Bearer "+token).Code)
}
