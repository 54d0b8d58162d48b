package http

import (
	"net/http"

	"github.com/aussiebroadwan/keyward/internal/license/service"
	"github.com/aussiebroadwan/keyward/pkg/httpx"
	"github.com/aussiebroadwan/keyward/pkg/licensesdk"
	"github.com/aussiebroadwan/keyward/pkg/slogx"
)

type AdminStatsHandler struct {
	AdminService *service.AdminService
}

// ServeHTTP godoc
//
//	@Summary		License Fleet Stats Endpoint
//	@Description	Aggregate lifecycle counts across all licenses, derived against the
//	@Description	server's date. "Expiring soon" means within the next 30 days.
//	@Tags			Admin
//	@Produce		json
//	@Security		BearerAuth
//	@Param			Authorization	header		string						true	"Bearer token with licenses:read scope"
//	@Success		200				{object}	licensesdk.StatsResponse	"total, active, expired, expiring_soon, revoked, activated"
//	@Failure		401				{object}	licensesdk.ErrorResponse	"error, error_description"
//	@Failure		403				{object}	licensesdk.ErrorResponse	"error, error_description"
//	@Failure		503				{object}	licensesdk.ErrorResponse	"error, error_description"
//	@Router			/v1/admin/stats [get].
func (h *AdminStatsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	stats, err := h.AdminService.Stats(ctx)
	if err != nil {
		writeEngineError(w, log, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, licensesdk.StatsResponse{
		Total:        stats.Total,
		Active:       stats.Active,
		Expired:      stats.Expired,
		ExpiringSoon: stats.ExpiringSoon,
		Revoked:      stats.Revoked,
		Activated:    stats.Activated,
	})
}
