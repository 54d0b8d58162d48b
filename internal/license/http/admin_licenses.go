package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/aussiebroadwan/keyward/internal/license/domain"
	"github.com/aussiebroadwan/keyward/internal/license/service"
	"github.com/aussiebroadwan/keyward/internal/license/store"
	"github.com/aussiebroadwan/keyward/pkg/httpx"
	"github.com/aussiebroadwan/keyward/pkg/licensesdk"
	"github.com/aussiebroadwan/keyward/pkg/slogx"
)

// AdminLicensesHandler handles all operator license management endpoints.
type AdminLicensesHandler struct {
	AdminService *service.AdminService
}

// HandleCreate handles POST /v1/admin/licenses
//
//	@Summary		Create License
//	@Description	Issue a new license. Duration is given in days counted from the
//	@Description	server's date, or as an explicit expiration date (the date wins
//	@Description	when both are supplied).
//	@Tags			Admin
//	@Accept			json
//	@Produce		json
//	@Security		BearerAuth
//	@Param			Authorization	header		string							true	"Bearer token with licenses:write scope"
//	@Param			request			body		licensesdk.CreateLicenseRequest	true	"License creation request"
//	@Success		201				{object}	licensesdk.LicenseInfo			"created license"
//	@Failure		400				{object}	licensesdk.ErrorResponse		"error, error_description"
//	@Failure		401				{object}	licensesdk.ErrorResponse		"error, error_description"
//	@Failure		403				{object}	licensesdk.ErrorResponse		"error, error_description"
//	@Failure		503				{object}	licensesdk.ErrorResponse		"error, error_description"
//	@Router			/v1/admin/licenses [post].
func (h *AdminLicensesHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req licensesdk.CreateLicenseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		licensesdk.NewAPIError(http.StatusBadRequest,
			licensesdk.ErrorCodeInvalidRequest, "invalid JSON in request body").WriteError(w)
		return
	}

	params := service.CreateParams{
		ClientName:   req.ClientName,
		DurationDays: req.DurationDays,
		Notes:        req.Notes,
	}
	if req.ExpirationDate != "" {
		exp, err := time.ParseInLocation(licensesdk.DateLayout, req.ExpirationDate, time.UTC)
		if err != nil {
			licensesdk.NewAPIError(http.StatusBadRequest,
				licensesdk.ErrorCodeInvalidRequest, "expiration_date must be YYYY-MM-DD").WriteError(w)
			return
		}
		params.ExpiresAt = &exp
	}

	lic, err := h.AdminService.CreateLicense(ctx, params)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidClientName):
			licensesdk.NewAPIError(http.StatusBadRequest,
				licensesdk.ErrorCodeInvalidRequest, "client_name is required").WriteError(w)
		case errors.Is(err, service.ErrInvalidDuration):
			licensesdk.NewAPIError(http.StatusBadRequest,
				licensesdk.ErrorCodeInvalidRequest, "license duration must be positive and in the future").WriteError(w)
		default:
			writeEngineError(w, log, err)
		}
		return
	}

	// A freshly created license is always active.
	httpx.WriteJSON(w, http.StatusCreated, licenseInfo(lic, "active"))
}

// HandleList handles GET /v1/admin/licenses
//
//	@Summary		List Licenses
//	@Description	Returns licenses matching the query, newest first. Statuses are
//	@Description	derived against the server's date at request time.
//	@Tags			Admin
//	@Produce		json
//	@Security		BearerAuth
//	@Param			Authorization	header		string							true	"Bearer token with licenses:read scope"
//	@Param			client_name		query		string							false	"Case-insensitive client name substring"
//	@Param			key				query		string							false	"License key substring"
//	@Param			status			query		string							false	"Derived status filter"	Enums(active, expired, revoked)
//	@Param			expiring_within_days	query	int							false	"Only active licenses expiring within this many days"
//	@Param			limit			query		int								false	"Page size"
//	@Param			offset			query		int								false	"Page offset"
//	@Success		200				{object}	licensesdk.ListLicensesResponse	"licenses"
//	@Failure		400				{object}	licensesdk.ErrorResponse		"error, error_description"
//	@Failure		401				{object}	licensesdk.ErrorResponse		"error, error_description"
//	@Failure		403				{object}	licensesdk.ErrorResponse		"error, error_description"
//	@Failure		503				{object}	licensesdk.ErrorResponse		"error, error_description"
//	@Router			/v1/admin/licenses [get].
func (h *AdminLicensesHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	q := r.URL.Query()
	filter := store.ListFilter{
		ClientName:   q.Get("client_name"),
		KeySubstring: q.Get("key"),
		Status:       domain.Status(q.Get("status")),
	}
	if v := q.Get("expiring_within_days"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			filter.ExpiringWithinDays = n
		}
	}
	if v := q.Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			filter.Limit = n
		}
	}
	if v := q.Get("offset"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			filter.Offset = n
		}
	}

	licenses, today, err := h.AdminService.ListLicenses(ctx, filter)
	if err != nil {
		if errors.Is(err, service.ErrInvalidStatus) {
			licensesdk.NewAPIError(http.StatusBadRequest,
				licensesdk.ErrorCodeInvalidRequest, "status must be one of active, expired, revoked").WriteError(w)
			return
		}
		writeEngineError(w, log, err)
		return
	}

	infos := make([]licensesdk.LicenseInfo, len(licenses))
	for i, lic := range licenses {
		infos[i] = licenseInfo(lic, lic.Status(today))
	}

	httpx.WriteJSON(w, http.StatusOK, licensesdk.ListLicensesResponse{Licenses: infos})
}

// HandleGet handles GET /v1/admin/licenses/{key}
//
//	@Summary		Get License
//	@Description	Returns a single license record by key with its derived status.
//	@Tags			Admin
//	@Produce		json
//	@Security		BearerAuth
//	@Param			Authorization	header		string						true	"Bearer token with licenses:read scope"
//	@Param			key				path		string						true	"License key (UUID)"
//	@Success		200				{object}	licensesdk.LicenseInfo		"license"
//	@Failure		401				{object}	licensesdk.ErrorResponse	"error, error_description"
//	@Failure		403				{object}	licensesdk.ErrorResponse	"error, error_description"
//	@Failure		404				{object}	licensesdk.ErrorResponse	"error, error_description"
//	@Failure		503				{object}	licensesdk.ErrorResponse	"error, error_description"
//	@Router			/v1/admin/licenses/{key} [get].
func (h *AdminLicensesHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	lic, status, err := h.AdminService.GetLicense(ctx, r.PathValue("key"))
	if err != nil {
		writeEngineError(w, log, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, licenseInfo(lic, status))
}

// HandleUpdate handles PATCH /v1/admin/licenses/{key}
//
//	@Summary		Update License
//	@Description	Edit a license's client name, expiration date or notes. Omitted
//	@Description	fields are left unchanged. The fingerprint binding can never be
//	@Description	edited through this endpoint.
//	@Tags			Admin
//	@Accept			json
//	@Produce		json
//	@Security		BearerAuth
//	@Param			Authorization	header		string							true	"Bearer token with licenses:write scope"
//	@Param			key				path		string							true	"License key (UUID)"
//	@Param			request			body		licensesdk.UpdateLicenseRequest	true	"Fields to update"
//	@Success		200				{object}	licensesdk.LicenseInfo			"updated license"
//	@Failure		400				{object}	licensesdk.ErrorResponse		"error, error_description"
//	@Failure		401				{object}	licensesdk.ErrorResponse		"error, error_description"
//	@Failure		403				{object}	licensesdk.ErrorResponse		"error, error_description"
//	@Failure		404				{object}	licensesdk.ErrorResponse		"error, error_description"
//	@Failure		503				{object}	licensesdk.ErrorResponse		"error, error_description"
//	@Router			/v1/admin/licenses/{key} [patch].
func (h *AdminLicensesHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req licensesdk.UpdateLicenseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		licensesdk.NewAPIError(http.StatusBadRequest,
			licensesdk.ErrorCodeInvalidRequest, "invalid JSON in request body").WriteError(w)
		return
	}

	params := service.UpdateParams{
		ClientName: req.ClientName,
		Notes:      req.Notes,
	}
	if req.ExpirationDate != nil {
		exp, err := time.ParseInLocation(licensesdk.DateLayout, *req.ExpirationDate, time.UTC)
		if err != nil {
			licensesdk.NewAPIError(http.StatusBadRequest,
				licensesdk.ErrorCodeInvalidRequest, "expiration_date must be YYYY-MM-DD").WriteError(w)
			return
		}
		params.ExpiresAt = &exp
	}

	key := r.PathValue("key")
	lic, err := h.AdminService.UpdateLicense(ctx, key, params)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidClientName):
			licensesdk.NewAPIError(http.StatusBadRequest,
				licensesdk.ErrorCodeInvalidRequest, "client_name must not be empty").WriteError(w)
		default:
			writeEngineError(w, log, err)
		}
		return
	}

	today, err := h.AdminService.Store.ServerDate(ctx)
	if err != nil {
		writeEngineError(w, log, service.ErrTimeSourceUnavailable)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, licenseInfo(lic, lic.Status(today)))
}

// HandleRevoke handles POST /v1/admin/licenses/{key}/revoke
//
//	@Summary		Revoke License
//	@Description	Disable a license immediately. The next verification against it
//	@Description	fails. Revoking an already-revoked license is a no-op success.
//	@Tags			Admin
//	@Produce		json
//	@Security		BearerAuth
//	@Param			Authorization	header	string	true	"Bearer token with licenses:write scope"
//	@Param			key				path	string	true	"License key (UUID)"
//	@Success		204				"License revoked"
//	@Failure		401				{object}	licensesdk.ErrorResponse	"error, error_description"
//	@Failure		403				{object}	licensesdk.ErrorResponse	"error, error_description"
//	@Failure		404				{object}	licensesdk.ErrorResponse	"error, error_description"
//	@Router			/v1/admin/licenses/{key}/revoke [post].
func (h *AdminLicensesHandler) HandleRevoke(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	if err := h.AdminService.RevokeLicense(ctx, r.PathValue("key")); err != nil {
		writeEngineError(w, log, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// HandleReinstate handles POST /v1/admin/licenses/{key}/reinstate
//
//	@Summary		Reinstate License
//	@Description	Re-enable a revoked license. The fingerprint binding and expiration
//	@Description	date are untouched; an expired license stays expired.
//	@Tags			Admin
//	@Produce		json
//	@Security		BearerAuth
//	@Param			Authorization	header	string	true	"Bearer token with licenses:write scope"
//	@Param			key				path	string	true	"License key (UUID)"
//	@Success		204				"License reinstated"
//	@Failure		401				{object}	licensesdk.ErrorResponse	"error, error_description"
//	@Failure		403				{object}	licensesdk.ErrorResponse	"error, error_description"
//	@Failure		404				{object}	licensesdk.ErrorResponse	"error, error_description"
//	@Router			/v1/admin/licenses/{key}/reinstate [post].
func (h *AdminLicensesHandler) HandleReinstate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	if err := h.AdminService.ReinstateLicense(ctx, r.PathValue("key")); err != nil {
		writeEngineError(w, log, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// HandleDelete handles DELETE /v1/admin/licenses/{key}
//
//	@Summary		Delete License
//	@Description	Permanently remove a license record. Unlike revocation this cannot
//	@Description	be undone.
//	@Tags			Admin
//	@Produce		json
//	@Security		BearerAuth
//	@Param			Authorization	header	string	true	"Bearer token with licenses:write scope"
//	@Param			key				path	string	true	"License key (UUID)"
//	@Success		204				"License deleted"
//	@Failure		401				{object}	licensesdk.ErrorResponse	"error, error_description"
//	@Failure		403				{object}	licensesdk.ErrorResponse	"error, error_description"
//	@Failure		404				{object}	licensesdk.ErrorResponse	"error, error_description"
//	@Router			/v1/admin/licenses/{key} [delete].
func (h *AdminLicensesHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	if err := h.AdminService.DeleteLicense(ctx, r.PathValue("key")); err != nil {
		writeEngineError(w, log, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
