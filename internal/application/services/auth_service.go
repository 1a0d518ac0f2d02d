package services

import (
	"errors"
	"time"

	"github.com/mwdesignstudio/leadpulse-go/internal/infrastructure/observability/logging"
	"github.com/mwdesignstudio/leadpulse-go/internal/infrastructure/security"
	"github.com/mwdesignstudio/leadpulse-go/pkg/config"
	"golang.org/x/crypto/bcrypt"
)

// ErrInvalidCredentials is returned for a wrong or missing admin password.
var ErrInvalidCredentials = errors.New("invalid credentials")

// AuthService gates the admin dashboard behind a password and issues
// bearer tokens for subsequent requests.
type AuthService struct {
	logger *logging.ChanneledLogger
}

func NewAuthService(logger *logging.ChanneledLogger) *AuthService {
	return &AuthService{logger: logger}
}

// Login verifies the admin password against the configured bcrypt hash and
// returns a signed token.
func (s *AuthService) Login(password string) (string, error) {
	if config.AdminPasswordHash == "" {
		s.logger.Auth().Warn("Login attempted but no admin password hash configured")
		return "", ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(config.AdminPasswordHash), []byte(password)); err != nil {
		s.logger.Auth().Warn("Admin login failed")
		return "", ErrInvalidCredentials
	}

	token, err := security.GenerateAdminToken(config.JWTSecret, time.Duration(config.TokenLifetimeHours)*time.Hour)
	if err != nil {
		s.logger.Auth().Error("Failed to generate admin token", "error", err.Error())
		return "", err
	}

	s.logger.Auth().Info("Admin login succeeded")
	return token, nil
}

// ValidateToken checks a bearer token and confirms the admin role.
func (s *AuthService) ValidateToken(token string) error {
	claims, err := security.ValidateJWT(token, config.JWTSecret)
	if err != nil {
		return err
	}
	if !security.IsAdmin(claims) {
		return errors.New("token lacks admin role")
	}
	return nil
}
