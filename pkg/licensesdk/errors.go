package licensesdk

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/aussiebroadwan/keyward/pkg/httpx"
)

// ============================================================================
// Error Codes
// ============================================================================

const (
	ErrorCodeInvalidRequest    = "invalid_request"
	ErrorCodeInvalidClient     = "invalid_client"
	ErrorCodeKeyNotFound       = "key_not_found"
	ErrorCodeNotActivated      = "not_activated"
	ErrorCodeAlreadyBound      = "already_bound"
	ErrorCodeLicenseExpired    = "license_expired"
	ErrorCodeLicenseRevoked    = "license_revoked"
	ErrorCodeTimeUnavailable   = "time_unavailable"
	ErrorCodeStoreUnavailable  = "store_unavailable"
	ErrorCodeServerError       = "server_error"
	ErrorCodeInvalidToken      = "invalid_token"
	ErrorCodeInsufficientScope = "insufficient_scope"
	ErrorCodeRateLimited       = "rate_limit_exceeded"
)

// ============================================================================
// APIError
// ============================================================================

// APIError represents an error response from the license service. It
// implements the error interface and is used both by the server (to write
// HTTP responses) and by the SDK client (to represent errors).
type APIError struct {
	// StatusCode is the HTTP status code for this error
	StatusCode int `json:"-"`

	// Code is the machine-readable error code (e.g., "key_not_found")
	Code string `json:"error"`

	// Description is a human-readable description of the error
	Description string `json:"error_description"`
}

// Error implements the error interface.
func (e *APIError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Description)
}

// Is lets errors.Is match predefined errors by code, so callers can write
// errors.Is(err, licensesdk.ErrNotActivated) regardless of the description
// the server attached.
func (e *APIError) Is(target error) bool {
	t, ok := target.(*APIError)
	return ok && t.Code == e.Code
}

// WriteError writes this APIError to an HTTP response writer.
func (e *APIError) WriteError(w http.ResponseWriter) {
	httpx.WriteError(w, e.StatusCode, e.Code, e.Description)
}

// ============================================================================
// Predefined Errors
// ============================================================================

var (
	// ErrInvalidRequest is returned when the request is missing a required
	// parameter or is otherwise malformed.
	ErrInvalidRequest = &APIError{
		StatusCode:  http.StatusBadRequest,
		Code:        ErrorCodeInvalidRequest,
		Description: "the request is malformed or missing required parameters",
	}

	// ErrInvalidClient is returned when admin authentication fails.
	ErrInvalidClient = &APIError{
		StatusCode:  http.StatusUnauthorized,
		Code:        ErrorCodeInvalidClient,
		Description: "invalid admin credentials",
	}

	// ErrKeyNotFound is returned when the license key does not exist.
	ErrKeyNotFound = &APIError{
		StatusCode:  http.StatusNotFound,
		Code:        ErrorCodeKeyNotFound,
		Description: "license key not found",
	}

	// ErrNotActivated is returned when no license is bound to the machine.
	ErrNotActivated = &APIError{
		StatusCode:  http.StatusNotFound,
		Code:        ErrorCodeNotActivated,
		Description: "no license is activated on this machine",
	}

	// ErrAlreadyBound is returned when the license is bound to a different
	// machine, or the machine already holds a different license.
	ErrAlreadyBound = &APIError{
		StatusCode:  http.StatusConflict,
		Code:        ErrorCodeAlreadyBound,
		Description: "license is already bound to another machine",
	}

	// ErrLicenseExpired is returned when the license is past its expiration date.
	ErrLicenseExpired = &APIError{
		StatusCode:  http.StatusForbidden,
		Code:        ErrorCodeLicenseExpired,
		Description: "license has expired",
	}

	// ErrLicenseRevoked is returned when the license has been revoked by an operator.
	ErrLicenseRevoked = &APIError{
		StatusCode:  http.StatusForbidden,
		Code:        ErrorCodeLicenseRevoked,
		Description: "license has been revoked",
	}

	// ErrTimeUnavailable is returned when the server cannot reach its time
	// authority. The service fails closed: no verdict is issued.
	ErrTimeUnavailable = &APIError{
		StatusCode:  http.StatusServiceUnavailable,
		Code:        ErrorCodeTimeUnavailable,
		Description: "server time source unavailable, try again later",
	}

	// ErrStoreUnavailable is returned when the database cannot be reached.
	ErrStoreUnavailable = &APIError{
		StatusCode:  http.StatusServiceUnavailable,
		Code:        ErrorCodeStoreUnavailable,
		Description: "license store unavailable, try again later",
	}

	// ErrServerError is returned for unexpected internal failures.
	ErrServerError = &APIError{
		StatusCode:  http.StatusInternalServerError,
		Code:        ErrorCodeServerError,
		Description: "internal server error",
	}
)

// NewAPIError creates an APIError with a custom description while keeping the
// machine-readable code stable.
func NewAPIError(statusCode int, code, description string) *APIError {
	return &APIError{
		StatusCode:  statusCode,
		Code:        code,
		Description: description,
	}
}

// ============================================================================
// Error Parsing Helpers
// ============================================================================

// parseErrorResponse attempts to parse an HTTP error response into a typed
// *APIError. Returns nil if the response indicates success (2xx status code).
func parseErrorResponse(resp *http.Response, body []byte) error {
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}

	var errResp ErrorResponse
	if err := json.Unmarshal(body, &errResp); err == nil && errResp.Error != "" {
		return &APIError{
			StatusCode:  resp.StatusCode,
			Code:        errResp.Error,
			Description: errResp.ErrorDescription,
		}
	}

	// Fallback: create generic error from status code
	return &APIError{
		StatusCode:  resp.StatusCode,
		Code:        ErrorCodeServerError,
		Description: fmt.Sprintf("HTTP %d: %s", resp.StatusCode, http.StatusText(resp.StatusCode)),
	}
}
