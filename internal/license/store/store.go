package store

import (
	"context"
	"errors"
	"time"

	"github.com/aussiebroadwan/keyward/internal/license/domain"
)

var (
	ErrNotFound      = errors.New("store: not found")
	ErrAlreadyExists = errors.New("store: already exists")

	// ErrUnavailable wraps driver and connection failures. Callers treat it
	// as transient: the request can be retried once the store is reachable.
	ErrUnavailable = errors.New("store: unavailable")
)

// ListFilter narrows List results. Zero value means everything. Status and
// ExpiringWithinDays are derived against Today, which callers resolve from
// the time authority before listing.
type ListFilter struct {
	// ClientName matches client names containing this substring (case-insensitive).
	ClientName string
	// KeySubstring matches license keys containing this substring.
	KeySubstring string
	// Status restricts results to a single derived status.
	Status domain.Status
	// ExpiringWithinDays restricts results to active licenses that expire
	// within this many days. 0 disables the window.
	ExpiringWithinDays int
	// Today is the authoritative date the derived conditions compare against.
	Today time.Time
	// Limit caps the number of rows returned; 0 means no cap.
	Limit int
	// Offset skips rows for pagination.
	Offset int
}

// Stats is the aggregate snapshot the admin dashboard reads. All counts are
// computed against the authoritative server date passed to the query, so a
// license is never "active" by the caller's clock and "expired" by the
// database's.
type Stats struct {
	Total        int
	Active       int
	Expired      int
	ExpiringSoon int // active, with fewer than 30 days remaining
	Revoked      int
	Activated    int // bound to a machine fingerprint
}

// Store is the root data access interface. Concrete drivers (sqlite, postgres)
// implement this. It exposes sub-repositories to keep concerns tidy and
// testable, and doubles as the time authority: ServerDate reads the clock of
// the database rather than the process.
type Store interface {
	Licenses() Licenses

	// ServerDate returns the database's current calendar date (UTC). Every
	// expiry decision uses this value; there is no local-clock fallback.
	ServerDate(ctx context.Context) (time.Time, error)

	ApplyMigrations() error

	// Tx starts a read/write transaction and returns a Tx-scoped Store.
	// Use it for multi-step operations that must be atomic.
	// The caller MUST call Commit() or Rollback() on the returned Tx.
	Tx(ctx context.Context) (Tx, error)

	// WithTx executes a function within a transaction.
	// If fn returns an error, the transaction is rolled back.
	// If fn returns nil, the transaction is committed.
	// This is the recommended way to handle transactions as it automatically
	// handles commit/rollback logic.
	WithTx(ctx context.Context, fn func(tx Tx) error) error

	// Close releases any underlying resources (optional for sqlite).
	Close() error

	// Ping verifies the database connection is still alive.
	Ping(ctx context.Context) error
}

// Tx is a transactional store. It embeds the same repos but adds Commit/Rollback.
type Tx interface {
	Store
	Commit() error
	Rollback() error
}

type Licenses interface {
	// GetByKey returns a license by its customer-facing key.
	GetByKey(ctx context.Context, key string) (domain.License, error)

	// GetByFingerprint returns the license bound to the given machine.
	GetByFingerprint(ctx context.Context, fp string) (domain.License, error)

	// Create inserts a new license (id is provided by app via ULID).
	Create(ctx context.Context, l domain.License) error

	// BindFingerprint atomically binds fp to the license iff it is still
	// unbound. Returns true when this call won the bind; false when another
	// fingerprint (or a concurrent activation) got there first.
	BindFingerprint(ctx context.Context, key, fp string) (bool, error)

	// SetActive flips the revocation flag and bumps updated_at.
	SetActive(ctx context.Context, key string, active bool) error

	// UpdateDetails mutates client_name, expiration_date and notes. It never
	// touches the fingerprint binding.
	UpdateDetails(ctx context.Context, key, clientName string, expires time.Time, notes string) error

	// List returns licenses matching the filter, newest first.
	List(ctx context.Context, f ListFilter) ([]domain.License, error)

	// CountStats aggregates lifecycle counts against the given date.
	CountStats(ctx context.Context, today time.Time) (Stats, error)

	// DeleteByKey permanently removes a license record.
	DeleteByKey(ctx context.Context, key string) error
}
