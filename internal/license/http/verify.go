package http

import (
	"net/http"

	"github.com/aussiebroadwan/keyward/internal/license/service"
	"github.com/aussiebroadwan/keyward/pkg/httpx"
	"github.com/aussiebroadwan/keyward/pkg/licensesdk"
	"github.com/aussiebroadwan/keyward/pkg/slogx"
)

type VerifyHandler struct {
	EngineService *service.EngineService
}

// ServeHTTP godoc
//
//	@Summary		Verify License Endpoint
//	@Description	Check the license bound to a machine fingerprint. Read-only: the
//	@Description	license record is never modified, and if the server's time source is
//	@Description	unavailable no verdict is issued.
//	@Tags			License
//	@Accept			x-www-form-urlencoded
//	@Produce		json
//	@Param			fingerprint	formData	string					true	"Machine fingerprint"
//	@Success		200			{object}	licensesdk.CheckResponse	"license_key, client_name, status, expiration_date, days_remaining, message"
//	@Failure		400			{object}	licensesdk.ErrorResponse	"error, error_description"
//	@Failure		403			{object}	licensesdk.ErrorResponse	"error, error_description"
//	@Failure		404			{object}	licensesdk.ErrorResponse	"error, error_description"
//	@Failure		503			{object}	licensesdk.ErrorResponse	"error, error_description"
//	@Router			/v1/license/verify [post].
func (h *VerifyHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	if err := r.ParseForm(); err != nil {
		licensesdk.NewAPIError(http.StatusBadRequest,
			licensesdk.ErrorCodeInvalidRequest, "invalid form data").WriteError(w)
		return
	}

	fingerprint := r.FormValue("fingerprint")
	if fingerprint == "" {
		licensesdk.NewAPIError(http.StatusBadRequest,
			licensesdk.ErrorCodeInvalidRequest, "fingerprint is required").WriteError(w)
		return
	}

	res, err := h.EngineService.Verify(ctx, fingerprint)
	if err != nil {
		writeEngineError(w, log, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, checkResponse(res))
}
