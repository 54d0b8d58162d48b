package domain

import "time"

// Status is always derived from IsActive and ExpirationDate at read time,
// never stored. A revoked license that is also past its expiration date
// reports Expired.
type Status string

const (
	StatusActive  Status = "active"
	StatusExpired Status = "expired"
	StatusRevoked Status = "revoked"
)

// License represents a machine-bound software license. Fingerprint is nil
// until the first successful activation binds the license to a machine.
type License struct {
	ID             string    // ULID
	Key            string    // UUIDv4, the customer-facing credential
	ClientName     string    // Who the license was issued to
	Fingerprint    *string   // Bound machine fingerprint (nil = never activated)
	ExpirationDate time.Time // Date precision; the license is invalid on this date and after
	IsActive       bool      // false = revoked by an operator
	Notes          string    // Free-form operator notes
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// Status derives the lifecycle state for the given authoritative date.
// Expiry wins over revocation.
func (l *License) Status(today time.Time) Status {
	if l.Expired(today) {
		return StatusExpired
	}
	if !l.IsActive {
		return StatusRevoked
	}
	return StatusActive
}

// Expired reports whether the license is no longer valid on the given date.
// The license is valid strictly before ExpirationDate, so on the expiration
// date itself it is already expired.
func (l *License) Expired(today time.Time) bool {
	return !dateOf(today).Before(dateOf(l.ExpirationDate))
}

// DaysRemaining returns whole days until the license stops being valid.
// Zero or negative means expired.
func (l *License) DaysRemaining(today time.Time) int {
	return int(dateOf(l.ExpirationDate).Sub(dateOf(today)).Hours() / 24)
}

// Activated reports whether the license has ever been bound to a machine.
func (l *License) Activated() bool {
	return l.Fingerprint != nil && *l.Fingerprint != ""
}

// BoundTo reports whether the license is bound to the given fingerprint.
func (l *License) BoundTo(fp string) bool {
	return l.Fingerprint != nil && *l.Fingerprint == fp
}

// dateOf truncates a timestamp to its UTC calendar date.
func dateOf(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
