package services

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/senalmaq/storefront/internal/config"
)

// ErrInvalidCredentials is returned for any login failure. Callers must not
// distinguish unknown emails from wrong passwords.
var ErrInvalidCredentials = errors.New("invalid credentials")

// ErrAdminDisabled is returned when no admin account is configured.
var ErrAdminDisabled = errors.New("admin access is not configured")

const tokenLifetime = 24 * time.Hour

// AuthService issues and verifies admin session tokens. There is a single
// admin account, configured through the environment.
type AuthService struct {
	enabled      bool
	email        string
	passwordHash []byte
	secret       []byte
	logger       *slog.Logger
}

func NewAuthService(cfg *config.Config, logger *slog.Logger) (*AuthService, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config is required")
	}
	if logger == nil {
		return nil, fmt.Errorf("logger is required")
	}

	svc := &AuthService{
		enabled: cfg.AdminEnabled(),
		email:   strings.ToLower(strings.TrimSpace(cfg.AdminEmail)),
		secret:  []byte(cfg.JWTSecret),
		logger:  logger,
	}
	if svc.enabled {
		hash, err := hex.DecodeString(cfg.AdminPasswordSHA256)
		if err != nil {
			return nil, fmt.Errorf("failed to decode admin password hash: %w", err)
		}
		svc.passwordHash = hash
	}
	return svc, nil
}

// Login checks the credentials and returns a signed token on success.
func (s *AuthService) Login(email, password string) (string, error) {
	if !s.enabled {
		return "", ErrAdminDisabled
	}

	given := sha256.Sum256([]byte(password))
	emailOK := subtle.ConstantTimeCompare([]byte(strings.ToLower(strings.TrimSpace(email))), []byte(s.email))
	passwordOK := subtle.ConstantTimeCompare(given[:], s.passwordHash)
	if emailOK&passwordOK != 1 {
		s.logger.Warn("admin login rejected")
		return "", ErrInvalidCredentials
	}

	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   s.email,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(tokenLifetime)),
	})
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}

	s.logger.Info("admin login accepted")
	return signed, nil
}

// Verify parses a token and returns the admin email it was issued for.
func (s *AuthService) Verify(tokenString string) (string, error) {
	if !s.enabled {
		return "", ErrAdminDisabled
	}

	token, err := jwt.ParseWithClaims(tokenString, &jwt.RegisteredClaims{}, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %q", t.Method.Alg())
		}
		return s.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return "", ErrInvalidCredentials
	}

	claims, ok := token.Claims.(*jwt.RegisteredClaims)
	if !ok || claims.Subject != s.email {
		return "", ErrInvalidCredentials
	}
	return claims.Subject, nil
}
