package jwtx

import (
	"fmt"

	"github.com/golang-jwt/jwt/v5"
)

// MinSecretBytes is the smallest HS256 secret we accept. 32 bytes matches
// the SHA-256 block the HMAC is keyed with.
const MinSecretBytes = 32

// Signer mints tokens. Verifier checks them. Both ends live in the same
// process here, so a shared-secret HMAC is all we need; there is no third
// party that would want a public key.
type Signer interface {
	Sign(claims Claims) (string, error)
}

type Verifier interface {
	Verify(raw string) (Claims, error)
}

// HS256 signs and verifies tokens with a shared secret.
type HS256 struct {
	secret []byte
}

// NewHS256 builds a combined signer/verifier from the shared secret.
func NewHS256(secret []byte) (*HS256, error) {
	if len(secret) < MinSecretBytes {
		return nil, ErrWeakSecret
	}
	return &HS256{secret: secret}, nil
}

func (h *HS256) Sign(claims Claims) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(h.secret)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrSigning, err)
	}
	return signed, nil
}

func (h *HS256) Verify(raw string) (Claims, error) {
	var claims Claims

	token, err := jwt.ParseWithClaims(raw, &claims, func(t *jwt.Token) (any, error) {
		// Reject any token that isn't HMAC-signed, including alg=none.
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %q", t.Header["alg"])
		}
		return h.secret, nil
	})
	if err != nil {
		return Claims{}, fmt.Errorf("%w: %v", ErrVerify, err)
	}
	if !token.Valid {
		return Claims{}, ErrVerify
	}

	return claims, nil
}
