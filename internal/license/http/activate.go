package http

import (
	"net/http"

	"github.com/aussiebroadwan/keyward/internal/license/service"
	"github.com/aussiebroadwan/keyward/pkg/httpx"
	"github.com/aussiebroadwan/keyward/pkg/licensesdk"
	"github.com/aussiebroadwan/keyward/pkg/slogx"
)

type ActivateHandler struct {
	EngineService *service.EngineService
}

// ServeHTTP godoc
//
//	@Summary		Activate License Endpoint
//	@Description	Bind a license key to a machine fingerprint. Re-activating with the
//	@Description	same fingerprint is an idempotent success; a license bound to another
//	@Description	machine, or a machine already holding a different license, is rejected.
//	@Tags			License
//	@Accept			x-www-form-urlencoded
//	@Produce		json
//	@Param			license_key	formData	string					true	"License key (UUID)"
//	@Param			fingerprint	formData	string					true	"Machine fingerprint"
//	@Success		200			{object}	licensesdk.CheckResponse	"license_key, client_name, status, expiration_date, days_remaining, message"
//	@Failure		400			{object}	licensesdk.ErrorResponse	"error, error_description"
//	@Failure		403			{object}	licensesdk.ErrorResponse	"error, error_description"
//	@Failure		404			{object}	licensesdk.ErrorResponse	"error, error_description"
//	@Failure		409			{object}	licensesdk.ErrorResponse	"error, error_description"
//	@Failure		503			{object}	licensesdk.ErrorResponse	"error, error_description"
//	@Router			/v1/license/activate [post].
func (h *ActivateHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	// Parse URL-encoded form data
	if err := r.ParseForm(); err != nil {
		licensesdk.NewAPIError(http.StatusBadRequest,
			licensesdk.ErrorCodeInvalidRequest, "invalid form data").WriteError(w)
		return
	}

	key := r.FormValue("license_key")
	fingerprint := r.FormValue("fingerprint")

	if key == "" {
		licensesdk.NewAPIError(http.StatusBadRequest,
			licensesdk.ErrorCodeInvalidRequest, "license_key is required").WriteError(w)
		return
	}
	if fingerprint == "" {
		licensesdk.NewAPIError(http.StatusBadRequest,
			licensesdk.ErrorCodeInvalidRequest, "fingerprint is required").WriteError(w)
		return
	}

	res, err := h.EngineService.Activate(ctx, key, fingerprint)
	if err != nil {
		writeEngineError(w, log, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, checkResponse(res))
}
