package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestStatusDerivation(t *testing.T) {
	t.Parallel()

	today := date(2025, time.June, 15)

	tests := []struct {
		name    string
		active  bool
		expires time.Time
		want    Status
	}{
		{"active before expiry", true, date(2025, time.June, 16), StatusActive},
		{"expired on the expiration date", true, date(2025, time.June, 15), StatusExpired},
		{"expired after the expiration date", true, date(2025, time.June, 1), StatusExpired},
		{"revoked", false, date(2026, time.January, 1), StatusRevoked},
		{"expired wins over revoked", false, date(2025, time.January, 1), StatusExpired},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := &License{IsActive: tt.active, ExpirationDate: tt.expires}
			require.Equal(t, tt.want, l.Status(today))
		})
	}
}

func TestExpiredIgnoresTimeOfDay(t *testing.T) {
	t.Parallel()

	l := &License{ExpirationDate: date(2025, time.June, 15)}

	// Late on the 14th is still valid; early on the 15th is not.
	require.False(t, l.Expired(time.Date(2025, time.June, 14, 23, 59, 59, 0, time.UTC)))
	require.True(t, l.Expired(time.Date(2025, time.June, 15, 0, 0, 1, 0, time.UTC)))
}

func TestDaysRemaining(t *testing.T) {
	t.Parallel()

	l := &License{ExpirationDate: date(2025, time.June, 15)}

	require.Equal(t, 10, l.DaysRemaining(date(2025, time.June, 5)))
	require.Equal(t, 1, l.DaysRemaining(date(2025, time.June, 14)))
	require.Equal(t, 0, l.DaysRemaining(date(2025, time.June, 15)))
	require.Equal(t, -5, l.DaysRemaining(date(2025, time.June, 20)))
}

func TestActivatedAndBoundTo(t *testing.T) {
	t.Parallel()

	unbound := &License{}
	require.False(t, unbound.Activated())
	require.False(t, unbound.BoundTo("fp-1"))

	fp := "fp-1"
	bound := &License{Fingerprint: &fp}
	require.True(t, bound.Activated())
	require.True(t, bound.BoundTo("fp-1"))
	require.False(t, bound.BoundTo("fp-2"))

	empty := ""
	blank := &License{Fingerprint: &empty}
	require.False(t, blank.Activated())
}
