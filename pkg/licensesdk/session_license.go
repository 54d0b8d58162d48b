package licensesdk

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"strconv"
)

// CreateLicense issues a new license. Requires the licenses:write scope.
func (s *AdminSession) CreateLicense(ctx context.Context, req CreateLicenseRequest) (*LicenseInfo, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, err
	}

	resp, err := s.doAuthRequest(ctx, http.MethodPost, "/v1/admin/licenses",
		bytes.NewReader(body),
		map[string]string{"Content-Type": "application/json"},
	)
	if err != nil {
		return nil, err
	}

	var out LicenseInfo
	if err := decodeJSON(resp, &out, http.StatusCreated); err != nil {
		return nil, err
	}
	return &out, nil
}

// ListLicensesQuery narrows ListLicenses results. Zero value lists everything.
// Status and ExpiringWithinDays are derived against the server's date, not the
// caller's clock.
type ListLicensesQuery struct {
	ClientName         string // substring match, case-insensitive
	KeySubstring       string // substring match on the license key
	Status             string // "active", "expired" or "revoked"
	ExpiringWithinDays int    // only active licenses expiring within N days
	Limit              int
	Offset             int
}

// ListLicenses returns licenses matching the query, newest first.
func (s *AdminSession) ListLicenses(ctx context.Context, q ListLicensesQuery) (*ListLicensesResponse, error) {
	params := url.Values{}
	if q.ClientName != "" {
		params.Set("client_name", q.ClientName)
	}
	if q.KeySubstring != "" {
		params.Set("key", q.KeySubstring)
	}
	if q.Status != "" {
		params.Set("status", q.Status)
	}
	if q.ExpiringWithinDays > 0 {
		params.Set("expiring_within_days", strconv.Itoa(q.ExpiringWithinDays))
	}
	if q.Limit > 0 {
		params.Set("limit", strconv.Itoa(q.Limit))
		params.Set("offset", strconv.Itoa(q.Offset))
	}

	path := "/v1/admin/licenses"
	if enc := params.Encode(); enc != "" {
		path += "?" + enc
	}

	resp, err := s.doAuthRequest(ctx, http.MethodGet, path, nil, nil)
	if err != nil {
		return nil, err
	}

	var out ListLicensesResponse
	if err := decodeJSON(resp, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetLicense fetches a single license by key.
func (s *AdminSession) GetLicense(ctx context.Context, key string) (*LicenseInfo, error) {
	resp, err := s.doAuthRequest(ctx, http.MethodGet,
		"/v1/admin/licenses/"+url.PathEscape(key), nil, nil)
	if err != nil {
		return nil, err
	}

	var out LicenseInfo
	if err := decodeJSON(resp, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateLicense edits a license's client name, expiration date or notes.
// The fingerprint binding is never touched.
func (s *AdminSession) UpdateLicense(ctx context.Context, key string, req UpdateLicenseRequest) (*LicenseInfo, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, err
	}

	resp, err := s.doAuthRequest(ctx, http.MethodPatch,
		"/v1/admin/licenses/"+url.PathEscape(key),
		bytes.NewReader(body),
		map[string]string{"Content-Type": "application/json"},
	)
	if err != nil {
		return nil, err
	}

	var out LicenseInfo
	if err := decodeJSON(resp, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

// RevokeLicense disables a license. Idempotent.
func (s *AdminSession) RevokeLicense(ctx context.Context, key string) error {
	resp, err := s.doAuthRequest(ctx, http.MethodPost,
		"/v1/admin/licenses/"+url.PathEscape(key)+"/revoke", nil, nil)
	if err != nil {
		return err
	}
	return checkStatusNoContent(resp)
}

// ReinstateLicense re-enables a revoked license. The binding and expiration
// date are untouched.
func (s *AdminSession) ReinstateLicense(ctx context.Context, key string) error {
	resp, err := s.doAuthRequest(ctx, http.MethodPost,
		"/v1/admin/licenses/"+url.PathEscape(key)+"/reinstate", nil, nil)
	if err != nil {
		return err
	}
	return checkStatusNoContent(resp)
}

// DeleteLicense permanently removes a license record. Unlike revocation this
// cannot be undone.
func (s *AdminSession) DeleteLicense(ctx context.Context, key string) error {
	resp, err := s.doAuthRequest(ctx, http.MethodDelete,
		"/v1/admin/licenses/"+url.PathEscape(key), nil, nil)
	if err != nil {
		return err
	}
	return checkStatusNoContent(resp)
}

// Stats returns the aggregate fleet snapshot.
func (s *AdminSession) Stats(ctx context.Context) (*StatsResponse, error) {
	resp, err := s.doAuthRequest(ctx, http.MethodGet, "/v1/admin/stats", nil, nil)
	if err != nil {
		return nil, err
	}

	var out StatsResponse
	if err := decodeJSON(resp, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}
