package http

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/aussiebroadwan/keyward/internal/license/domain"
	"github.com/aussiebroadwan/keyward/internal/license/service"
	"github.com/aussiebroadwan/keyward/internal/license/store"
	"github.com/aussiebroadwan/keyward/pkg/licensesdk"
)

// checkResponse converts an engine result into the wire shape.
func checkResponse(res service.CheckResult) licensesdk.CheckResponse {
	return licensesdk.CheckResponse{
		LicenseKey:     res.License.Key,
		ClientName:     res.License.ClientName,
		Status:         string(res.Status),
		ExpirationDate: res.License.ExpirationDate.Format(licensesdk.DateLayout),
		DaysRemaining:  res.DaysRemaining,
		Message:        res.Message,
	}
}

// licenseInfo converts a license record into the operator wire shape.
func licenseInfo(lic domain.License, status domain.Status) licensesdk.LicenseInfo {
	return licensesdk.LicenseInfo{
		Key:            lic.Key,
		ClientName:     lic.ClientName,
		Fingerprint:    lic.Fingerprint,
		ExpirationDate: lic.ExpirationDate.Format(licensesdk.DateLayout),
		Status:         string(status),
		Notes:          lic.Notes,
		CreatedAt:      lic.CreatedAt.Format(time.RFC3339),
		UpdatedAt:      lic.UpdatedAt.Format(time.RFC3339),
	}
}

// writeEngineError maps engine and admin service errors onto the API error
// vocabulary. Unknown errors are logged and reported as server_error.
func writeEngineError(w http.ResponseWriter, log *slog.Logger, err error) {
	switch {
	case errors.Is(err, service.ErrInvalidKey):
		licensesdk.NewAPIError(http.StatusBadRequest,
			licensesdk.ErrorCodeInvalidRequest, "license_key is not a valid key").WriteError(w)
	case errors.Is(err, service.ErrInvalidFingerprint):
		licensesdk.NewAPIError(http.StatusBadRequest,
			licensesdk.ErrorCodeInvalidRequest, "fingerprint is required").WriteError(w)
	case errors.Is(err, service.ErrKeyNotFound):
		licensesdk.ErrKeyNotFound.WriteError(w)
	case errors.Is(err, service.ErrNotActivated):
		licensesdk.ErrNotActivated.WriteError(w)
	case errors.Is(err, service.ErrAlreadyBoundElsewhere):
		licensesdk.ErrAlreadyBound.WriteError(w)
	case errors.Is(err, service.ErrExpired):
		licensesdk.ErrLicenseExpired.WriteError(w)
	case errors.Is(err, service.ErrRevoked):
		licensesdk.ErrLicenseRevoked.WriteError(w)
	case errors.Is(err, service.ErrTimeSourceUnavailable):
		licensesdk.ErrTimeUnavailable.WriteError(w)
	case errors.Is(err, store.ErrUnavailable):
		log.Warn("store unavailable", "err", err)
		licensesdk.ErrStoreUnavailable.WriteError(w)
	default:
		log.Error("unhandled service error", "err", err)
		licensesdk.ErrServerError.WriteError(w)
	}
}
