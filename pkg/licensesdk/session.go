package licensesdk

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"
)

// AdminSession is an authenticated operator session. Sessions are short-lived
// and not auto-refreshed; when ExpiresAt passes, call Login again with the
// admin key.
type AdminSession struct {
	client    *SDKClient
	token     string
	expiresAt time.Time
	scopes    []string
}

// Login exchanges the admin key for an operator session.
func (c *SDKClient) Login(ctx context.Context, adminKey string) (*AdminSession, error) {
	body, err := json.Marshal(LoginRequest{AdminKey: adminKey})
	if err != nil {
		return nil, err
	}

	resp, err := c.doRequest(ctx, http.MethodPost, "/v1/admin/login",
		bytes.NewReader(body),
		map[string]string{"Content-Type": "application/json"},
	)
	if err != nil {
		return nil, err
	}

	var out LoginResponse
	if err := decodeJSON(resp, &out, http.StatusOK); err != nil {
		return nil, err
	}

	return &AdminSession{
		client:    c,
		token:     out.Token,
		expiresAt: time.Now().Add(time.Duration(out.ExpiresIn) * time.Second),
		scopes:    parseScopes(out.Scope),
	}, nil
}

// NewAdminSessionFromToken creates a session from an existing token, e.g. one
// stored by an operator tool between invocations.
func (c *SDKClient) NewAdminSessionFromToken(token string, expiresAt time.Time) *AdminSession {
	return &AdminSession{
		client:    c,
		token:     token,
		expiresAt: expiresAt,
	}
}

// Token returns the raw session token.
func (s *AdminSession) Token() string { return s.token }

// ExpiresAt returns when the session token stops being accepted.
func (s *AdminSession) ExpiresAt() time.Time { return s.expiresAt }

// Expired reports whether the session token has passed its lifetime.
func (s *AdminSession) Expired() bool {
	return !s.expiresAt.IsZero() && time.Now().After(s.expiresAt)
}

func parseScopes(scope string) []string {
	return strings.Fields(scope)
}
