// Package session holds the bearer token the sync engine authenticates with.
// The token is issued by an external login flow; this package only reads it
// and reports whether it is usable.
package session

import (
	"os"
	"strings"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/MKhiriev/go-bizsync/internal/config"
	"github.com/MKhiriev/go-bizsync/internal/logger"
)

// Session is a read-only view of the current credentials.
type Session struct {
	mu        sync.RWMutex
	token     string
	tokenFile string

	now    func() time.Time
	logger *logger.Logger
}

// New constructs a Session from the app config. When cfg.TokenFile is set
// the file wins over cfg.Token and is re-read on every access.
func New(cfg config.ClientApp, logger *logger.Logger) *Session {
	return &Session{
		token:     strings.TrimSpace(cfg.Token),
		tokenFile: cfg.TokenFile,
		now:       time.Now,
		logger:    logger,
	}
}

// Token returns the current bearer token or an empty string.
func (s *Session) Token() string {
	s.mu.RLock()
	token, tokenFile := s.token, s.tokenFile
	s.mu.RUnlock()

	if tokenFile == "" {
		return token
	}

	data, err := os.ReadFile(tokenFile)
	if err != nil {
		s.logger.Debug().Err(err).Str("token_file", tokenFile).Msg("token file is not readable")
		return ""
	}
	return strings.TrimSpace(string(data))
}

// SetToken replaces the in-memory token and detaches the token file.
func (s *Session) SetToken(token string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = strings.TrimSpace(token)
	s.tokenFile = ""
}

// Authenticated reports whether a token is present and, when it is a JWT
// carrying an exp claim, not expired. Opaque tokens are accepted as is; the
// server stays the authority on their validity.
func (s *Session) Authenticated() bool {
	token := s.Token()
	if token == "" {
		return false
	}

	exp, ok := ExpiresAt(token)
	if !ok {
		return true
	}
	return s.now().Before(exp)
}

// ExpiresAt returns the exp claim of a JWT without verifying its signature.
// ok is false for tokens that are not JWTs or carry no exp claim.
func ExpiresAt(token string) (time.Time, bool) {
	claims := &jwt.RegisteredClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return time.Time{}, false
	}
	if claims.ExpiresAt == nil {
		return time.Time{}, false
	}
	return claims.ExpiresAt.Time, true
}
