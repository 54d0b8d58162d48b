package service

import (
	"context"
	"errors"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/aussiebroadwan/keyward/internal/license/domain"
	"github.com/aussiebroadwan/keyward/internal/license/store"
	"github.com/aussiebroadwan/keyward/internal/license/store/drivers/sqlite"
	"github.com/aussiebroadwan/keyward/pkg/idx"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *sqlite.Store {
	t.Helper()

	st, err := sqlite.NewStore("file:" + filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })

	require.NoError(t, st.ApplyMigrations())
	return st
}

func seedLicense(t *testing.T, st store.Store, expires time.Time) domain.License {
	t.Helper()

	now := time.Now().UTC().Truncate(time.Second)
	lic := domain.License{
		ID:             idx.New().String(),
		Key:            uuid.NewString(),
		ClientName:     "Acme Pty Ltd",
		ExpirationDate: expires,
		IsActive:       true,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	require.NoError(t, st.Licenses().Create(context.Background(), lic))
	return lic
}

func farFuture() time.Time {
	return time.Now().UTC().AddDate(1, 0, 0)
}

func TestActivateBindsUnboundLicense(t *testing.T) {
	st := newTestStore(t)
	svc := &EngineService{Store: st}
	ctx := context.Background()

	lic := seedLicense(t, st, farFuture())

	res, err := svc.Activate(ctx, lic.Key, "fp-machine-a")
	require.NoError(t, err)
	require.Equal(t, domain.StatusActive, res.Status)
	require.True(t, res.License.BoundTo("fp-machine-a"))
	require.Contains(t, res.Message, "Acme Pty Ltd")
	require.Greater(t, res.DaysRemaining, 300)
}

func TestActivateIsIdempotentOnBoundMachine(t *testing.T) {
	st := newTestStore(t)
	svc := &EngineService{Store: st}
	ctx := context.Background()

	lic := seedLicense(t, st, farFuture())

	first, err := svc.Activate(ctx, lic.Key, "fp-machine-a")
	require.NoError(t, err)

	second, err := svc.Activate(ctx, lic.Key, "fp-machine-a")
	require.NoError(t, err)
	require.Equal(t, first.License.Key, second.License.Key)

	// The second activation must not have written anything.
	got, err := st.Licenses().GetByKey(ctx, lic.Key)
	require.NoError(t, err)
	require.Equal(t, first.License.UpdatedAt, got.UpdatedAt)
}

func TestActivateRejectsSecondMachine(t *testing.T) {
	st := newTestStore(t)
	svc := &EngineService{Store: st}
	ctx := context.Background()

	lic := seedLicense(t, st, farFuture())

	_, err := svc.Activate(ctx, lic.Key, "fp-machine-a")
	require.NoError(t, err)

	_, err = svc.Activate(ctx, lic.Key, "fp-machine-b")
	require.ErrorIs(t, err, ErrAlreadyBoundElsewhere)

	// Binding unchanged.
	got, err := st.Licenses().GetByKey(ctx, lic.Key)
	require.NoError(t, err)
	require.Equal(t, "fp-machine-a", *got.Fingerprint)
}

func TestActivateRejectsMachineHoldingAnotherLicense(t *testing.T) {
	st := newTestStore(t)
	svc := &EngineService{Store: st}
	ctx := context.Background()

	first := seedLicense(t, st, farFuture())
	second := seedLicense(t, st, farFuture())

	_, err := svc.Activate(ctx, first.Key, "fp-shared")
	require.NoError(t, err)

	_, err = svc.Activate(ctx, second.Key, "fp-shared")
	require.ErrorIs(t, err, ErrAlreadyBoundElsewhere)
}

func TestActivateValidation(t *testing.T) {
	st := newTestStore(t)
	svc := &EngineService{Store: st}
	ctx := context.Background()

	_, err := svc.Activate(ctx, "not-a-uuid", "fp-a")
	require.ErrorIs(t, err, ErrInvalidKey)

	_, err = svc.Activate(ctx, uuid.NewString(), "")
	require.ErrorIs(t, err, ErrInvalidFingerprint)
}

func TestActivateUnknownKey(t *testing.T) {
	st := newTestStore(t)
	svc := &EngineService{Store: st}

	_, err := svc.Activate(context.Background(), uuid.NewString(), "fp-a")
	require.ErrorIs(t, err, ErrKeyNotFound)
}

func TestActivateExpiredLicense(t *testing.T) {
	st := newTestStore(t)
	svc := &EngineService{Store: st}
	ctx := context.Background()

	// Expired yesterday; also exercises the boundary where expiration day
	// itself is invalid.
	lic := seedLicense(t, st, time.Now().UTC().AddDate(0, 0, -1))

	_, err := svc.Activate(ctx, lic.Key, "fp-a")
	require.ErrorIs(t, err, ErrExpired)

	// Must not have bound.
	got, err := st.Licenses().GetByKey(ctx, lic.Key)
	require.NoError(t, err)
	require.Nil(t, got.Fingerprint)
}

func TestActivateOnExpirationDateFails(t *testing.T) {
	st := newTestStore(t)
	svc := &EngineService{Store: st}

	lic := seedLicense(t, st, time.Now().UTC())

	_, err := svc.Activate(context.Background(), lic.Key, "fp-a")
	require.ErrorIs(t, err, ErrExpired)
}

func TestActivateRevokedLicense(t *testing.T) {
	st := newTestStore(t)
	svc := &EngineService{Store: st}
	ctx := context.Background()

	lic := seedLicense(t, st, farFuture())
	require.NoError(t, st.Licenses().SetActive(ctx, lic.Key, false))

	_, err := svc.Activate(ctx, lic.Key, "fp-a")
	require.ErrorIs(t, err, ErrRevoked)
}

func TestVerifyHappyPath(t *testing.T) {
	st := newTestStore(t)
	svc := &EngineService{Store: st}
	ctx := context.Background()

	lic := seedLicense(t, st, farFuture())
	_, err := svc.Activate(ctx, lic.Key, "fp-a")
	require.NoError(t, err)

	res, err := svc.Verify(ctx, "fp-a")
	require.NoError(t, err)
	require.Equal(t, domain.StatusActive, res.Status)
	require.Equal(t, lic.Key, res.License.Key)
	require.Contains(t, res.Message, "Expires in")
}

func TestVerifyIsReadOnly(t *testing.T) {
	st := newTestStore(t)
	svc := &EngineService{Store: st}
	ctx := context.Background()

	lic := seedLicense(t, st, farFuture())
	_, err := svc.Activate(ctx, lic.Key, "fp-a")
	require.NoError(t, err)

	before, err := st.Licenses().GetByKey(ctx, lic.Key)
	require.NoError(t, err)

	for range 3 {
		_, err := svc.Verify(ctx, "fp-a")
		require.NoError(t, err)
	}

	after, err := st.Licenses().GetByKey(ctx, lic.Key)
	require.NoError(t, err)
	require.Equal(t, before, after)
}

func TestVerifyUnknownFingerprint(t *testing.T) {
	st := newTestStore(t)
	svc := &EngineService{Store: st}

	_, err := svc.Verify(context.Background(), "fp-never-seen")
	require.ErrorIs(t, err, ErrNotActivated)
}

func TestVerifyExpired(t *testing.T) {
	st := newTestStore(t)
	svc := &EngineService{Store: st}
	ctx := context.Background()

	lic := seedLicense(t, st, farFuture())
	_, err := svc.Activate(ctx, lic.Key, "fp-a")
	require.NoError(t, err)

	// Shrink the expiry under the license after activation.
	require.NoError(t, st.Licenses().UpdateDetails(ctx, lic.Key, lic.ClientName,
		time.Now().UTC().AddDate(0, 0, -3), lic.Notes))

	_, err = svc.Verify(ctx, "fp-a")
	require.ErrorIs(t, err, ErrExpired)
}

func TestActivateConcurrentBindersOneWinner(t *testing.T) {
	// A longer busy timeout lets the losing writer wait out the winner
	// instead of erroring on lock contention.
	dsn := "file:" + filepath.Join(t.TempDir(), "test.db") + "?_pragma=busy_timeout(5000)"
	st, err := sqlite.NewStore(dsn)
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })
	require.NoError(t, st.ApplyMigrations())

	svc := &EngineService{Store: st}
	ctx := context.Background()
	lic := seedLicense(t, st, farFuture())

	fps := []string{"fp-racer-a", "fp-racer-b"}
	errs := make(chan error, len(fps))

	var wg sync.WaitGroup
	start := make(chan struct{})
	for _, fp := range fps {
		wg.Add(1)
		go func() {
			defer wg.Done()
			<-start
			_, err := svc.Activate(ctx, lic.Key, fp)
			errs <- err
		}()
	}
	close(start)
	wg.Wait()
	close(errs)

	var won, lost int
	for err := range errs {
		switch {
		case err == nil:
			won++
		case errors.Is(err, ErrAlreadyBoundElsewhere):
			lost++
		default:
			t.Fatalf("unexpected activation error: %v", err)
		}
	}
	require.Equal(t, 1, won, "exactly one binder may win")
	require.Equal(t, 1, lost)

	// The stored binding belongs to the winner and nothing else.
	got, err := st.Licenses().GetByKey(ctx, lic.Key)
	require.NoError(t, err)
	require.NotNil(t, got.Fingerprint)
	require.Contains(t, fps, *got.Fingerprint)
}

func TestVerifyExpiredWinsOverRevoked(t *testing.T) {
	st := newTestStore(t)
	svc := &EngineService{Store: st}
	ctx := context.Background()

	lic := seedLicense(t, st, farFuture())
	_, err := svc.Activate(ctx, lic.Key, "fp-a")
	require.NoError(t, err)

	require.NoError(t, st.Licenses().UpdateDetails(ctx, lic.Key, lic.ClientName,
		time.Now().UTC().AddDate(0, 0, -3), lic.Notes))
	require.NoError(t, st.Licenses().SetActive(ctx, lic.Key, false))

	_, err = svc.Verify(ctx, "fp-a")
	require.ErrorIs(t, err, ErrExpired)
}

func TestVerifyFailsClosedWithoutTimeSource(t *testing.T) {
	st := newTestStore(t)
	svc := &EngineService{Store: st}
	ctx := context.Background()

	lic := seedLicense(t, st, farFuture())
	_, err := svc.Activate(ctx, lic.Key, "fp-a")
	require.NoError(t, err)

	// Killing the database kills the time authority; the verdict must be
	// unavailable, not "valid by local clock".
	require.NoError(t, st.Close())

	_, err = svc.Verify(ctx, "fp-a")
	require.ErrorIs(t, err, ErrTimeSourceUnavailable)
}

func TestActivateFailsClosedWithoutTimeSource(t *testing.T) {
	st := newTestStore(t)
	svc := &EngineService{Store: st}

	lic := seedLicense(t, st, farFuture())
	require.NoError(t, st.Close())

	_, err := svc.Activate(context.Background(), lic.Key, "fp-a")
	require.ErrorIs(t, err, ErrTimeSourceUnavailable)
}

func TestInfoReportsWithoutJudgement(t *testing.T) {
	st := newTestStore(t)
	svc := &EngineService{Store: st}
	ctx := context.Background()

	lic := seedLicense(t, st, farFuture())
	_, err := svc.Activate(ctx, lic.Key, "fp-a")
	require.NoError(t, err)

	require.NoError(t, st.Licenses().SetActive(ctx, lic.Key, false))

	// Verify errors, Info reports.
	_, err = svc.Verify(ctx, "fp-a")
	require.ErrorIs(t, err, ErrRevoked)

	res, err := svc.Info(ctx, "fp-a")
	require.NoError(t, err)
	require.Equal(t, domain.StatusRevoked, res.Status)
}
