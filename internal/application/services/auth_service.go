package services

import (
	"crypto/subtle"
	"strings"

	"github.com/archielvc/bartlett-partners-v10-sub002/internal/infrastructure/observability/logging"
	"github.com/archielvc/bartlett-partners-v10-sub002/internal/infrastructure/security"
	"github.com/archielvc/bartlett-partners-v10-sub002/pkg/config"
	"golang.org/x/crypto/bcrypt"
)

// AuthResult holds authentication result data.
type AuthResult struct {
	Token   string `json:"token,omitempty"`
	Role    string `json:"role,omitempty"`
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
}

// AuthService issues and validates admin tokens for the dashboard routes.
type AuthService struct {
	logger *logging.ChanneledLogger
}

// NewAuthService creates a new authentication service.
func NewAuthService(logger *logging.ChanneledLogger) *AuthService {
	return &AuthService{logger: logger}
}

// Login exchanges the admin password for a JWT. ADMIN_PASSWORD may hold a
// bcrypt hash or, for local development, the plain value.
func (s *AuthService) Login(password string) AuthResult {
	configured := config.AdminPassword
	if configured == "" {
		s.logger.Auth().Error("Admin login attempted with no ADMIN_PASSWORD configured")
		return AuthResult{Success: false, Error: "admin login is not configured"}
	}

	if !passwordMatches(configured, password) {
		s.logger.Auth().Warn("Admin login failed")
		return AuthResult{Success: false, Error: "invalid credentials"}
	}

	token, err := security.GenerateAdminToken(config.JWTSecret, config.TokenLifetime)
	if err != nil {
		s.logger.Auth().Error("Token generation failed", "error", err.Error())
		return AuthResult{Success: false, Error: "token generation failed"}
	}

	s.logger.Auth().Info("Admin login succeeded")
	return AuthResult{Token: token, Role: "admin", Success: true}
}

// ValidateToken checks an admin bearer token.
func (s *AuthService) ValidateToken(token string) bool {
	claims, err := security.ValidateJWT(token, config.JWTSecret)
	if err != nil {
		return false
	}
	role, _ := claims["role"].(string)
	return role == "admin"
}

func passwordMatches(configured, candidate string) bool {
	if strings.HasPrefix(configured, "$2a$") || strings.HasPrefix(configured, "$2b$") {
		return bcrypt.CompareHashAndPassword([]byte(configured), []byte(candidate)) == nil
	}
	return subtle.ConstantTimeCompare([]byte(configured), []byte(candidate)) == 1
}
