package licensesdk

import (
	"context"
	"net/http"
	"net/url"
	"strings"
)

// Activate binds the given license key to this machine. Re-activating from
// the machine the license is already bound to succeeds, so this is safe to
// call on every startup.
func (c *SDKClient) Activate(ctx context.Context, licenseKey string) (*CheckResponse, error) {
	fp, err := c.fingerprint()
	if err != nil {
		return nil, err
	}
	return c.ActivateFingerprint(ctx, licenseKey, fp)
}

// ActivateFingerprint is the low-level activation call with an explicit
// fingerprint. Most callers want Activate.
func (c *SDKClient) ActivateFingerprint(ctx context.Context, licenseKey, fingerprint string) (*CheckResponse, error) {
	form := url.Values{}
	form.Set("license_key", licenseKey)
	form.Set("fingerprint", fingerprint)

	resp, err := c.doRequest(ctx, http.MethodPost, "/v1/license/activate",
		strings.NewReader(form.Encode()),
		map[string]string{"Content-Type": "application/x-www-form-urlencoded"},
	)
	if err != nil {
		return nil, err
	}

	var out CheckResponse
	if err := decodeJSON(resp, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

// Verify checks the license bound to this machine. It never mutates state on
// the server; a verdict of ErrTimeUnavailable means the server could not
// reach its time authority and the caller should treat the license as
// unverified, not invalid.
func (c *SDKClient) Verify(ctx context.Context) (*CheckResponse, error) {
	fp, err := c.fingerprint()
	if err != nil {
		return nil, err
	}
	return c.VerifyFingerprint(ctx, fp)
}

// VerifyFingerprint is the low-level verification call with an explicit
// fingerprint.
func (c *SDKClient) VerifyFingerprint(ctx context.Context, fingerprint string) (*CheckResponse, error) {
	form := url.Values{}
	form.Set("fingerprint", fingerprint)

	resp, err := c.doRequest(ctx, http.MethodPost, "/v1/license/verify",
		strings.NewReader(form.Encode()),
		map[string]string{"Content-Type": "application/x-www-form-urlencoded"},
	)
	if err != nil {
		return nil, err
	}

	var out CheckResponse
	if err := decodeJSON(resp, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

// Info returns the license bound to this machine without passing a validity
// judgement: expired and revoked licenses are reported with their status
// rather than an error.
func (c *SDKClient) Info(ctx context.Context) (*CheckResponse, error) {
	fp, err := c.fingerprint()
	if err != nil {
		return nil, err
	}

	resp, err := c.doRequest(ctx, http.MethodGet,
		"/v1/license/info?fingerprint="+url.QueryEscape(fp), nil, nil)
	if err != nil {
		return nil, err
	}

	var out CheckResponse
	if err := decodeJSON(resp, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}
