package licensesdk

// DateLayout is the wire format for calendar dates. The service works at date
// precision; times of day never cross the API.
const DateLayout = "2006-01-02"

// License status values as reported by the service.
const (
	StatusActive  = "active"
	StatusExpired = "expired"
	StatusRevoked = "revoked"
)

// ============================================================================
// Internal Response Types (used for JSON unmarshaling)
// ============================================================================

// ErrorResponse is the standard error payload returned by every endpoint.
// Client code should use the APIError type from errors.go instead.
type ErrorResponse struct {
	// Error is the machine-readable error code (e.g., "key_not_found")
	Error string `json:"error"`

	// ErrorDescription is a human-readable description of the error
	ErrorDescription string `json:"error_description"`
}

// ============================================================================
// Machine-Facing Types
// ============================================================================

// CheckResponse is returned from activation, verification and info lookups.
type CheckResponse struct {
	// LicenseKey is the key the machine's license was issued under
	LicenseKey string `json:"license_key"`

	// ClientName is who the license was issued to
	ClientName string `json:"client_name"`

	// Status is one of "active", "expired" or "revoked"
	Status string `json:"status"`

	// ExpirationDate is the first date the license is no longer valid (YYYY-MM-DD)
	ExpirationDate string `json:"expiration_date"`

	// DaysRemaining is whole days until the license stops being valid.
	// Zero or negative means expired.
	DaysRemaining int `json:"days_remaining"`

	// Message is a human-readable summary suitable for display
	Message string `json:"message"`
}

// ============================================================================
// Admin Types
// ============================================================================

// LoginRequest exchanges the shared admin key for a session token.
type LoginRequest struct {
	AdminKey string `json:"admin_key"`
}

// LoginResponse carries the minted operator session token.
type LoginResponse struct {
	// Token is the JWT used to authenticate admin requests
	Token string `json:"token"`

	// TokenType is always "Bearer"
	TokenType string `json:"token_type"`

	// ExpiresIn is the lifetime in seconds of the token
	ExpiresIn int `json:"expires_in"`

	// Scope is the space-delimited list of scopes granted to this session
	Scope string `json:"scope,omitempty"`
}

// LicenseInfo is the operator's view of a license record.
type LicenseInfo struct {
	// Key is the customer-facing license key (UUID)
	Key string `json:"key"`

	// ClientName is who the license was issued to
	ClientName string `json:"client_name"`

	// Fingerprint is the bound machine fingerprint (null until activated)
	Fingerprint *string `json:"fingerprint,omitempty"`

	// ExpirationDate is the first date the license is no longer valid (YYYY-MM-DD)
	ExpirationDate string `json:"expiration_date"`

	// Status is the derived lifecycle state: "active", "expired" or "revoked"
	Status string `json:"status"`

	// Notes is free-form operator text
	Notes string `json:"notes,omitempty"`

	// CreatedAt / UpdatedAt are RFC3339 timestamps
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

// CreateLicenseRequest issues a new license. Provide either DurationDays
// (counted from the server's date) or an explicit ExpirationDate; the date
// wins when both are set.
type CreateLicenseRequest struct {
	ClientName     string `json:"client_name"`
	DurationDays   int    `json:"duration_days,omitempty"`
	ExpirationDate string `json:"expiration_date,omitempty"` // YYYY-MM-DD
	Notes          string `json:"notes,omitempty"`
}

// UpdateLicenseRequest edits a license. Nil fields are left unchanged. The
// fingerprint binding can never be edited through this request.
type UpdateLicenseRequest struct {
	ClientName     *string `json:"client_name,omitempty"`
	ExpirationDate *string `json:"expiration_date,omitempty"` // YYYY-MM-DD
	Notes          *string `json:"notes,omitempty"`
}

// ListLicensesResponse contains licenses matching the query, newest first.
type ListLicensesResponse struct {
	Licenses []LicenseInfo `json:"licenses"`
}

// StatsResponse is the aggregate fleet snapshot.
type StatsResponse struct {
	Total        int `json:"total"`
	Active       int `json:"active"`
	Expired      int `json:"expired"`
	ExpiringSoon int `json:"expiring_soon"`
	Revoked      int `json:"revoked"`
	Activated    int `json:"activated"`
}

// ============================================================================
// Health Types
// ============================================================================

// HealthResponse represents the response structure for health check endpoints.
// Used by both /livez and /readyz endpoints (readyz includes additional Checks field).
type HealthResponse struct {
	// Status indicates the overall health status (e.g., "ok")
	Status string `json:"status"`

	// Uptime is the service uptime duration as a string (e.g., "1h23m45s")
	Uptime string `json:"uptime,omitempty"`

	// Version is the service version string
	Version string `json:"version,omitempty"`

	// Checks contains readiness check results for critical dependencies (only for /readyz)
	Checks *HealthChecks `json:"checks,omitempty"`
}

// HealthChecks represents the status of critical service dependencies.
type HealthChecks struct {
	// Database indicates the database connection status
	Database string `json:"database"`

	// TimeAuthority indicates whether the server date source is reachable
	TimeAuthority string `json:"time_authority"`
}
