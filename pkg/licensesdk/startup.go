package licensesdk

import (
	"context"
	"errors"
)

// KeyPrompt asks the user (or any other source) for a license key when the
// machine has none activated. Returning an error aborts the startup check.
type KeyPrompt func(ctx context.Context) (string, error)

// EnsureActivated is the standard application startup flow: verify the
// machine's license, and if none is activated yet, obtain a key via prompt
// and activate it.
//
// Expired and revoked licenses are returned as errors (ErrLicenseExpired,
// ErrLicenseRevoked); there is nothing a new key prompt can do about those
// states that the operator shouldn't decide first.
func (c *SDKClient) EnsureActivated(ctx context.Context, prompt KeyPrompt) (*CheckResponse, error) {
	res, err := c.Verify(ctx)
	if err == nil {
		return res, nil
	}
	if !errors.Is(err, ErrNotActivated) {
		return nil, err
	}

	key, err := prompt(ctx)
	if err != nil {
		return nil, err
	}

	if _, err := c.Activate(ctx, key); err != nil {
		return nil, err
	}

	// Re-verify rather than trusting the activation response; this exercises
	// the same path every later startup will take.
	return c.Verify(ctx)
}
