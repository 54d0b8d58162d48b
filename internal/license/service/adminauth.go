package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/aussiebroadwan/keyward/pkg/cryptox"
	"github.com/aussiebroadwan/keyward/pkg/jwtx"
	"github.com/aussiebroadwan/keyward/pkg/slogx"
)

var ErrInvalidCredentials = errors.New("invalid admin credentials")

// Scopes granted to an authenticated operator session.
const (
	ScopeLicensesRead  = "licenses:read"
	ScopeLicensesWrite = "licenses:write"
)

// AdminAuthService exchanges the shared admin key for a short-lived session
// token. The key itself is never stored; only its argon2id hash is configured
// on the server.
type AdminAuthService struct {
	KeyHash    string // argon2id PHC string of the admin key
	Issuer     string
	SessionTTL time.Duration
	Signer     jwtx.Signer
}

// Session is a minted operator session.
type Session struct {
	Token     string
	ExpiresAt time.Time
	Scopes    []string
}

// Login verifies the admin key and mints a session token. Verification is
// constant-time via the argon2id comparison.
func (s *AdminAuthService) Login(ctx context.Context, adminKey string) (Session, error) {
	log := slogx.FromContext(ctx)

	if adminKey == "" {
		return Session{}, ErrInvalidCredentials
	}

	if err := cryptox.VerifyKey(adminKey, s.KeyHash); err != nil {
		if errors.Is(err, cryptox.ErrKeyMismatch) {
			log.Warn("admin login rejected")
			return Session{}, ErrInvalidCredentials
		}
		log.Error("admin key verification failed", slog.Any("error", err))
		return Session{}, err
	}

	ttl := s.SessionTTL
	if ttl <= 0 {
		ttl = jwtx.DefaultSessionTTL
	}

	now := time.Now().UTC()
	scopes := []string{ScopeLicensesRead, ScopeLicensesWrite}
	claims := jwtx.NewSessionClaims("operator", scopes, ttl, s.Issuer, now)

	token, err := s.Signer.Sign(claims)
	if err != nil {
		log.Error("failed to sign session token", slog.Any("error", err))
		return Session{}, err
	}

	log.Info("admin session issued", slog.Time("expires_at", now.Add(ttl)))

	return Session{
		Token:     token,
		ExpiresAt: now.Add(ttl),
		Scopes:    scopes,
	}, nil
}
