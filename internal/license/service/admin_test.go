package service

import (
	"context"
	"testing"
	"time"

	"github.com/aussiebroadwan/keyward/internal/license/domain"
	"github.com/aussiebroadwan/keyward/internal/license/store"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func TestCreateLicenseByDuration(t *testing.T) {
	st := newTestStore(t)
	svc := &AdminService{Store: st}
	ctx := context.Background()

	lic, err := svc.CreateLicense(ctx, CreateParams{
		ClientName:   "Acme Pty Ltd",
		DurationDays: 45,
		Notes:        "pilot deal",
	})
	require.NoError(t, err)

	require.NoError(t, uuid.Validate(lic.Key))
	require.True(t, lic.IsActive)
	require.Nil(t, lic.Fingerprint)
	require.Equal(t, "pilot deal", lic.Notes)

	// Duration is counted in days from the server date.
	today, err := st.ServerDate(ctx)
	require.NoError(t, err)
	require.Equal(t, 45, lic.DaysRemaining(today))

	got, err := st.Licenses().GetByKey(ctx, lic.Key)
	require.NoError(t, err)
	require.Equal(t, lic.ID, got.ID)
}

func TestCreateLicenseExplicitDate(t *testing.T) {
	st := newTestStore(t)
	svc := &AdminService{Store: st}

	expires := time.Now().UTC().AddDate(2, 0, 0)
	lic, err := svc.CreateLicense(context.Background(), CreateParams{
		ClientName: "Acme Pty Ltd",
		ExpiresAt:  &expires,
	})
	require.NoError(t, err)
	require.Equal(t, expires.Format("2006-01-02"), lic.ExpirationDate.Format("2006-01-02"))
}

func TestCreateLicenseValidation(t *testing.T) {
	st := newTestStore(t)
	svc := &AdminService{Store: st}
	ctx := context.Background()

	_, err := svc.CreateLicense(ctx, CreateParams{ClientName: "  ", DurationDays: 30})
	require.ErrorIs(t, err, ErrInvalidClientName)

	_, err = svc.CreateLicense(ctx, CreateParams{ClientName: "Acme"})
	require.ErrorIs(t, err, ErrInvalidDuration)

	past := time.Now().UTC().AddDate(0, 0, -1)
	_, err = svc.CreateLicense(ctx, CreateParams{ClientName: "Acme", ExpiresAt: &past})
	require.ErrorIs(t, err, ErrInvalidDuration)
}

func TestRevokeSurfacesStoreOutage(t *testing.T) {
	st := newTestStore(t)
	admin := &AdminService{Store: st}
	ctx := context.Background()

	lic := seedLicense(t, st, farFuture())
	require.NoError(t, st.Close())

	// Revoke reaches the store directly, so an outage surfaces as the
	// transient store sentinel rather than not-found or a raw driver error.
	err := admin.RevokeLicense(ctx, lic.Key)
	require.ErrorIs(t, err, store.ErrUnavailable)
}

func TestRevokeAndReinstate(t *testing.T) {
	st := newTestStore(t)
	admin := &AdminService{Store: st}
	engine := &EngineService{Store: st}
	ctx := context.Background()

	lic := seedLicense(t, st, farFuture())
	_, err := engine.Activate(ctx, lic.Key, "fp-a")
	require.NoError(t, err)

	require.NoError(t, admin.RevokeLicense(ctx, lic.Key))

	// Revocation is immediate on the next verification.
	_, err = engine.Verify(ctx, "fp-a")
	require.ErrorIs(t, err, ErrRevoked)

	// Idempotent.
	require.NoError(t, admin.RevokeLicense(ctx, lic.Key))

	// Reinstating restores validity and keeps the binding.
	require.NoError(t, admin.ReinstateLicense(ctx, lic.Key))
	res, err := engine.Verify(ctx, "fp-a")
	require.NoError(t, err)
	require.Equal(t, domain.StatusActive, res.Status)

	require.ErrorIs(t, admin.RevokeLicense(ctx, uuid.NewString()), ErrKeyNotFound)
}

func TestUpdateLicense(t *testing.T) {
	st := newTestStore(t)
	admin := &AdminService{Store: st}
	engine := &EngineService{Store: st}
	ctx := context.Background()

	lic := seedLicense(t, st, farFuture())
	_, err := engine.Activate(ctx, lic.Key, "fp-a")
	require.NoError(t, err)

	name := "Acme Europe"
	expires := time.Now().UTC().AddDate(3, 0, 0)
	updated, err := admin.UpdateLicense(ctx, lic.Key, UpdateParams{
		ClientName: &name,
		ExpiresAt:  &expires,
	})
	require.NoError(t, err)
	require.Equal(t, "Acme Europe", updated.ClientName)

	// Edits never touch the binding.
	require.NotNil(t, updated.Fingerprint)
	require.Equal(t, "fp-a", *updated.Fingerprint)

	// Partial update leaves other fields alone.
	notes := "extended"
	updated, err = admin.UpdateLicense(ctx, lic.Key, UpdateParams{Notes: &notes})
	require.NoError(t, err)
	require.Equal(t, "Acme Europe", updated.ClientName)
	require.Equal(t, "extended", updated.Notes)

	empty := " "
	_, err = admin.UpdateLicense(ctx, lic.Key, UpdateParams{ClientName: &empty})
	require.ErrorIs(t, err, ErrInvalidClientName)

	_, err = admin.UpdateLicense(ctx, uuid.NewString(), UpdateParams{Notes: &notes})
	require.ErrorIs(t, err, ErrKeyNotFound)
}

func TestGetLicense(t *testing.T) {
	st := newTestStore(t)
	admin := &AdminService{Store: st}
	ctx := context.Background()

	lic := seedLicense(t, st, farFuture())

	got, status, err := admin.GetLicense(ctx, lic.Key)
	require.NoError(t, err)
	require.Equal(t, lic.Key, got.Key)
	require.Equal(t, domain.StatusActive, status)

	_, _, err = admin.GetLicense(ctx, uuid.NewString())
	require.ErrorIs(t, err, ErrKeyNotFound)
}

func TestListLicenses(t *testing.T) {
	st := newTestStore(t)
	admin := &AdminService{Store: st}
	ctx := context.Background()

	a := seedLicense(t, st, farFuture())
	seedLicense(t, st, farFuture())
	require.NoError(t, admin.RevokeLicense(ctx, a.Key))

	all, today, err := admin.ListLicenses(ctx, store.ListFilter{})
	require.NoError(t, err)
	require.Len(t, all, 2)
	require.False(t, today.IsZero())

	active, _, err := admin.ListLicenses(ctx, store.ListFilter{Status: domain.StatusActive})
	require.NoError(t, err)
	require.Len(t, active, 1)

	revoked, _, err := admin.ListLicenses(ctx, store.ListFilter{Status: domain.StatusRevoked})
	require.NoError(t, err)
	require.Len(t, revoked, 1)
	require.Equal(t, a.Key, revoked[0].Key)

	_, _, err = admin.ListLicenses(ctx, store.ListFilter{Status: "suspended"})
	require.ErrorIs(t, err, ErrInvalidStatus)
}

func TestDeleteLicense(t *testing.T) {
	st := newTestStore(t)
	admin := &AdminService{Store: st}
	ctx := context.Background()

	lic := seedLicense(t, st, farFuture())

	require.NoError(t, admin.DeleteLicense(ctx, lic.Key))
	_, _, err := admin.GetLicense(ctx, lic.Key)
	require.ErrorIs(t, err, ErrKeyNotFound)

	require.ErrorIs(t, admin.DeleteLicense(ctx, lic.Key), ErrKeyNotFound)
}

func TestStats(t *testing.T) {
	st := newTestStore(t)
	admin := &AdminService{Store: st}
	ctx := context.Background()

	bound := seedLicense(t, st, farFuture())
	seedLicense(t, st, time.Now().UTC().AddDate(0, 0, 10)) // expiring soon
	seedLicense(t, st, time.Now().UTC().AddDate(0, 0, -5)) // expired
	revoked := seedLicense(t, st, farFuture())
	require.NoError(t, admin.RevokeLicense(ctx, revoked.Key))

	engine := &EngineService{Store: st}
	_, err := engine.Activate(ctx, bound.Key, "fp-stats")
	require.NoError(t, err)

	stats, err := admin.Stats(ctx)
	require.NoError(t, err)
	require.Equal(t, 4, stats.Total)
	require.Equal(t, 2, stats.Active)
	require.Equal(t, 1, stats.Expired)
	require.Equal(t, 1, stats.ExpiringSoon)
	require.Equal(t, 1, stats.Revoked)
	require.Equal(t, 1, stats.Activated)
}
