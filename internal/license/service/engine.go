package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/aussiebroadwan/keyward/internal/license/domain"
	"github.com/aussiebroadwan/keyward/internal/license/store"
	"github.com/aussiebroadwan/keyward/pkg/hwid"
	"github.com/aussiebroadwan/keyward/pkg/slogx"
	"github.com/google/uuid"
)

var (
	ErrInvalidKey            = errors.New("license key is not a valid key")
	ErrInvalidFingerprint    = errors.New("machine fingerprint is missing or invalid")
	ErrKeyNotFound           = errors.New("license key not found")
	ErrNotActivated          = errors.New("no license is activated on this machine")
	ErrAlreadyBoundElsewhere = errors.New("license is already bound to another machine")
	ErrExpired               = errors.New("license has expired")
	ErrRevoked               = errors.New("license has been revoked")
	ErrTimeSourceUnavailable = errors.New("server time source unavailable")
)

// EngineService implements the license lifecycle: activation binds a key to a
// machine exactly once, verification reports the current state of that
// binding. Every date comparison uses the store's clock; if that clock cannot
// be read the engine fails closed rather than trusting the process clock.
type EngineService struct {
	Store store.Store
}

// CheckResult carries the outcome of a successful activation or verification.
type CheckResult struct {
	License       domain.License
	Status        domain.Status
	DaysRemaining int
	Message       string
}

// Activate binds key to fp. Re-activating with the fingerprint the license is
// already bound to succeeds without writing anything, so clients can call
// this on every startup.
func (s *EngineService) Activate(ctx context.Context, key, fp string) (CheckResult, error) {
	log := slogx.FromContext(ctx)

	// 1. Validate inputs before touching the store.
	if _, err := uuid.Parse(key); err != nil {
		return CheckResult{}, ErrInvalidKey
	}
	if fp == "" {
		return CheckResult{}, ErrInvalidFingerprint
	}

	// 2. Resolve the authoritative date. No fallback: a license decision made
	// on a machine-controlled clock is worse than no decision.
	today, err := s.Store.ServerDate(ctx)
	if err != nil {
		log.Error("server date unavailable during activation", slog.Any("error", err))
		return CheckResult{}, ErrTimeSourceUnavailable
	}

	// 3. Look up the license.
	lic, err := s.Store.Licenses().GetByKey(ctx, key)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			log.Warn("activation attempted with unknown key",
				slog.String("fingerprint", hwid.Mask(fp)),
			)
			return CheckResult{}, ErrKeyNotFound
		}
		log.Error("failed to fetch license", slog.Any("error", err))
		return CheckResult{}, err
	}

	// 4. An expired or revoked license never binds, even to its own machine.
	if lic.Expired(today) {
		return CheckResult{}, ErrExpired
	}
	if !lic.IsActive {
		return CheckResult{}, ErrRevoked
	}

	// 5. Idempotent re-activation from the bound machine.
	if lic.BoundTo(fp) {
		log.Debug("license re-activated on bound machine",
			slog.String("license_id", lic.ID),
			slog.String("fingerprint", hwid.Mask(fp)),
		)
		return s.result(lic, today), nil
	}

	// 6. Bound to a different machine.
	if lic.Activated() {
		log.Warn("activation rejected, license bound elsewhere",
			slog.String("license_id", lic.ID),
			slog.String("fingerprint", hwid.Mask(fp)),
		)
		return CheckResult{}, ErrAlreadyBoundElsewhere
	}

	// 7. Try to win the bind. The store does this atomically, so a concurrent
	// activation either beats us cleanly or loses cleanly.
	won, err := s.Store.Licenses().BindFingerprint(ctx, key, fp)
	if err != nil {
		if errors.Is(err, store.ErrAlreadyExists) {
			// This machine already holds a different license.
			log.Warn("activation rejected, fingerprint already bound to another license",
				slog.String("license_id", lic.ID),
				slog.String("fingerprint", hwid.Mask(fp)),
			)
			return CheckResult{}, ErrAlreadyBoundElsewhere
		}
		log.Error("failed to bind fingerprint", slog.Any("error", err))
		return CheckResult{}, err
	}

	if !won {
		// Lost a race. Re-read once: if the winner was us (a retried request),
		// the activation still succeeds.
		lic, err = s.Store.Licenses().GetByKey(ctx, key)
		if err != nil {
			log.Error("failed to re-read license after bind race", slog.Any("error", err))
			return CheckResult{}, err
		}
		if !lic.BoundTo(fp) {
			return CheckResult{}, ErrAlreadyBoundElsewhere
		}
		return s.result(lic, today), nil
	}

	lic, err = s.Store.Licenses().GetByKey(ctx, key)
	if err != nil {
		log.Error("failed to re-read license after bind", slog.Any("error", err))
		return CheckResult{}, err
	}

	log.Info("license activated",
		slog.String("license_id", lic.ID),
		slog.String("client_name", lic.ClientName),
		slog.String("fingerprint", hwid.Mask(fp)),
		slog.Time("expiration_date", lic.ExpirationDate),
	)

	return s.result(lic, today), nil
}

// Verify reports the state of the license bound to fp. It is strictly
// read-only and fails closed when the time authority is unreachable.
func (s *EngineService) Verify(ctx context.Context, fp string) (CheckResult, error) {
	log := slogx.FromContext(ctx)

	// 1. Validate input.
	if fp == "" {
		return CheckResult{}, ErrInvalidFingerprint
	}

	// 2. Resolve the authoritative date first; without it no verdict is safe.
	today, err := s.Store.ServerDate(ctx)
	if err != nil {
		log.Error("server date unavailable during verification", slog.Any("error", err))
		return CheckResult{}, ErrTimeSourceUnavailable
	}

	// 3. Find the license bound to this machine.
	lic, err := s.Store.Licenses().GetByFingerprint(ctx, fp)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return CheckResult{}, ErrNotActivated
		}
		log.Error("failed to fetch license by fingerprint", slog.Any("error", err))
		return CheckResult{}, err
	}

	// 4. Derive the verdict. Expiry wins over revocation.
	switch lic.Status(today) {
	case domain.StatusExpired:
		log.Info("verification failed, license expired",
			slog.String("license_id", lic.ID),
			slog.Time("expiration_date", lic.ExpirationDate),
		)
		return CheckResult{}, ErrExpired
	case domain.StatusRevoked:
		log.Warn("verification failed, license revoked",
			slog.String("license_id", lic.ID),
			slog.String("fingerprint", hwid.Mask(fp)),
		)
		return CheckResult{}, ErrRevoked
	}

	return s.result(lic, today), nil
}

// Info returns the license bound to fp along with its derived status without
// passing a validity judgement. Expired and revoked licenses are reported as
// such rather than erroring.
func (s *EngineService) Info(ctx context.Context, fp string) (CheckResult, error) {
	log := slogx.FromContext(ctx)

	if fp == "" {
		return CheckResult{}, ErrInvalidFingerprint
	}

	today, err := s.Store.ServerDate(ctx)
	if err != nil {
		log.Error("server date unavailable during info lookup", slog.Any("error", err))
		return CheckResult{}, ErrTimeSourceUnavailable
	}

	lic, err := s.Store.Licenses().GetByFingerprint(ctx, fp)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return CheckResult{}, ErrNotActivated
		}
		log.Error("failed to fetch license by fingerprint", slog.Any("error", err))
		return CheckResult{}, err
	}

	return s.result(lic, today), nil
}

func (s *EngineService) result(lic domain.License, today time.Time) CheckResult {
	status := lic.Status(today)
	days := lic.DaysRemaining(today)

	var msg string
	switch status {
	case domain.StatusActive:
		msg = fmt.Sprintf("License valid for %s. Expires in %d day(s)", lic.ClientName, days)
	case domain.StatusExpired:
		msg = fmt.Sprintf("License expired %d day(s) ago", -days)
	case domain.StatusRevoked:
		msg = "License has been revoked"
	}

	return CheckResult{
		License:       lic,
		Status:        status,
		DaysRemaining: days,
		Message:       msg,
	}
}
