package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/aussiebroadwan/keyward/internal/license/domain"
	"github.com/aussiebroadwan/keyward/internal/license/store"
	"github.com/aussiebroadwan/keyward/pkg/idx"
	"github.com/aussiebroadwan/keyward/pkg/slogx"
	"github.com/google/uuid"
)

var (
	ErrInvalidClientName = errors.New("client name is required")
	ErrInvalidDuration   = errors.New("license duration must be positive")
	ErrInvalidStatus     = errors.New("unknown license status filter")
)

// AdminService covers operator-facing lifecycle management. It never touches
// fingerprint bindings except through explicit unbind-free operations; an
// operator edit must not silently re-home a license.
type AdminService struct {
	Store store.Store
}

// CreateParams describes a new license. Exactly one of DurationDays or
// ExpiresAt should be set; ExpiresAt wins when both are present.
type CreateParams struct {
	ClientName   string
	DurationDays int
	ExpiresAt    *time.Time
	Notes        string
}

// CreateLicense issues a fresh, unbound license keyed by a new UUID. Duration
// is counted from the store's date, not the operator's clock.
func (s *AdminService) CreateLicense(ctx context.Context, p CreateParams) (domain.License, error) {
	log := slogx.FromContext(ctx)

	// 1. Validate.
	p.ClientName = strings.TrimSpace(p.ClientName)
	if p.ClientName == "" {
		return domain.License{}, ErrInvalidClientName
	}
	if p.ExpiresAt == nil && p.DurationDays <= 0 {
		return domain.License{}, ErrInvalidDuration
	}

	// 2. Resolve the issue date from the time authority.
	today, err := s.Store.ServerDate(ctx)
	if err != nil {
		log.Error("server date unavailable during license creation", slog.Any("error", err))
		return domain.License{}, ErrTimeSourceUnavailable
	}

	expires := today.AddDate(0, 0, p.DurationDays)
	if p.ExpiresAt != nil {
		expires = *p.ExpiresAt
	}
	if !expires.After(today) {
		return domain.License{}, ErrInvalidDuration
	}

	// 3. Build and persist.
	now := time.Now().UTC()
	lic := domain.License{
		ID:             idx.New().String(),
		Key:            uuid.NewString(),
		ClientName:     p.ClientName,
		ExpirationDate: expires,
		IsActive:       true,
		Notes:          p.Notes,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if err := s.Store.Licenses().Create(ctx, lic); err != nil {
		log.Error("failed to create license",
			slog.String("client_name", p.ClientName),
			slog.Any("error", err),
		)
		return domain.License{}, err
	}

	log.Info("license created",
		slog.String("license_id", lic.ID),
		slog.String("client_name", lic.ClientName),
		slog.Time("expiration_date", lic.ExpirationDate),
	)

	return lic, nil
}

// GetLicense returns a license by key along with its derived status.
func (s *AdminService) GetLicense(ctx context.Context, key string) (domain.License, domain.Status, error) {
	log := slogx.FromContext(ctx)

	today, err := s.Store.ServerDate(ctx)
	if err != nil {
		log.Error("server date unavailable during license lookup", slog.Any("error", err))
		return domain.License{}, "", ErrTimeSourceUnavailable
	}

	lic, err := s.Store.Licenses().GetByKey(ctx, key)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.License{}, "", ErrKeyNotFound
		}
		log.Error("failed to fetch license", slog.Any("error", err))
		return domain.License{}, "", err
	}

	return lic, lic.Status(today), nil
}

// ListLicenses returns licenses matching the filter, newest first, along with
// the date the caller should derive statuses against. The filter's Today is
// stamped here so status and expiry-window conditions use the time authority.
func (s *AdminService) ListLicenses(ctx context.Context, f store.ListFilter) ([]domain.License, time.Time, error) {
	log := slogx.FromContext(ctx)

	switch f.Status {
	case "", domain.StatusActive, domain.StatusExpired, domain.StatusRevoked:
	default:
		return nil, time.Time{}, ErrInvalidStatus
	}

	today, err := s.Store.ServerDate(ctx)
	if err != nil {
		log.Error("server date unavailable during license listing", slog.Any("error", err))
		return nil, time.Time{}, ErrTimeSourceUnavailable
	}
	f.Today = today

	licenses, err := s.Store.Licenses().List(ctx, f)
	if err != nil {
		log.Error("failed to list licenses", slog.Any("error", err))
		return nil, time.Time{}, err
	}

	return licenses, today, nil
}

// RevokeLicense disables a license. Revoking an already-revoked license is a
// no-op success so operators can safely retry.
func (s *AdminService) RevokeLicense(ctx context.Context, key string) error {
	return s.setActive(ctx, key, false, "license revoked")
}

// ReinstateLicense re-enables a revoked license. The fingerprint binding and
// expiration date are untouched; an expired license stays expired.
func (s *AdminService) ReinstateLicense(ctx context.Context, key string) error {
	return s.setActive(ctx, key, true, "license reinstated")
}

func (s *AdminService) setActive(ctx context.Context, key string, active bool, event string) error {
	log := slogx.FromContext(ctx)

	err := s.Store.Licenses().SetActive(ctx, key, active)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrKeyNotFound
		}
		log.Error("failed to update license active flag", slog.Any("error", err))
		return err
	}

	log.Info(event, slog.String("license_key", key))
	return nil
}

// UpdateParams carries the editable fields of a license. Nil means "leave
// unchanged".
type UpdateParams struct {
	ClientName *string
	ExpiresAt  *time.Time
	Notes      *string
}

// UpdateLicense edits client name, expiration date and notes in one
// transaction so a concurrent edit can't interleave a partial update.
func (s *AdminService) UpdateLicense(ctx context.Context, key string, p UpdateParams) (domain.License, error) {
	log := slogx.FromContext(ctx)

	var updated domain.License
	err := s.Store.WithTx(ctx, func(tx store.Tx) error {
		lic, err := tx.Licenses().GetByKey(ctx, key)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return ErrKeyNotFound
			}
			return err
		}

		if p.ClientName != nil {
			name := strings.TrimSpace(*p.ClientName)
			if name == "" {
				return ErrInvalidClientName
			}
			lic.ClientName = name
		}
		if p.ExpiresAt != nil {
			lic.ExpirationDate = *p.ExpiresAt
		}
		if p.Notes != nil {
			lic.Notes = *p.Notes
		}

		if err := tx.Licenses().UpdateDetails(ctx, key, lic.ClientName, lic.ExpirationDate, lic.Notes); err != nil {
			return err
		}

		updated, err = tx.Licenses().GetByKey(ctx, key)
		return err
	})
	if err != nil {
		if !errors.Is(err, ErrKeyNotFound) && !errors.Is(err, ErrInvalidClientName) {
			log.Error("failed to update license", slog.Any("error", err))
		}
		return domain.License{}, err
	}

	log.Info("license updated", slog.String("license_id", updated.ID))
	return updated, nil
}

// DeleteLicense permanently removes a license record. Unlike revocation this
// is irreversible, so it is kept as a separate operation.
func (s *AdminService) DeleteLicense(ctx context.Context, key string) error {
	log := slogx.FromContext(ctx)

	err := s.Store.Licenses().DeleteByKey(ctx, key)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrKeyNotFound
		}
		log.Error("failed to delete license", slog.Any("error", err))
		return err
	}

	log.Info("license deleted", slog.String("license_key", key))
	return nil
}

// Stats aggregates lifecycle counts against the authoritative date.
func (s *AdminService) Stats(ctx context.Context) (store.Stats, error) {
	log := slogx.FromContext(ctx)

	today, err := s.Store.ServerDate(ctx)
	if err != nil {
		log.Error("server date unavailable during stats", slog.Any("error", err))
		return store.Stats{}, ErrTimeSourceUnavailable
	}

	stats, err := s.Store.Licenses().CountStats(ctx, today)
	if err != nil {
		log.Error("failed to aggregate license stats", slog.Any("error", err))
		return store.Stats{}, err
	}

	return stats, nil
}
