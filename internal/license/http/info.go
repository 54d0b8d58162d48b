package http

import (
	"net/http"

	"github.com/aussiebroadwan/keyward/internal/license/service"
	"github.com/aussiebroadwan/keyward/pkg/httpx"
	"github.com/aussiebroadwan/keyward/pkg/licensesdk"
	"github.com/aussiebroadwan/keyward/pkg/slogx"
)

type InfoHandler struct {
	EngineService *service.EngineService
}

// ServeHTTP godoc
//
//	@Summary		License Info Endpoint
//	@Description	Report the license bound to a machine fingerprint without passing
//	@Description	judgement: expired and revoked licenses are described, not rejected.
//	@Tags			License
//	@Produce		json
//	@Param			fingerprint	query		string					true	"Machine fingerprint"
//	@Success		200			{object}	licensesdk.CheckResponse	"license_key, client_name, status, expiration_date, days_remaining, message"
//	@Failure		400			{object}	licensesdk.ErrorResponse	"error, error_description"
//	@Failure		404			{object}	licensesdk.ErrorResponse	"error, error_description"
//	@Failure		503			{object}	licensesdk.ErrorResponse	"error, error_description"
//	@Router			/v1/license/info [get].
func (h *InfoHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	fingerprint := r.URL.Query().Get("fingerprint")
	if fingerprint == "" {
		licensesdk.NewAPIError(http.StatusBadRequest,
			licensesdk.ErrorCodeInvalidRequest, "fingerprint is required").WriteError(w)
		return
	}

	res, err := h.EngineService.Info(ctx, fingerprint)
	if err != nil {
		writeEngineError(w, log, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, checkResponse(res))
}
