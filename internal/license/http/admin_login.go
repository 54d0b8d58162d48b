package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/aussiebroadwan/keyward/internal/license/service"
	"github.com/aussiebroadwan/keyward/pkg/httpx"
	"github.com/aussiebroadwan/keyward/pkg/licensesdk"
	"github.com/aussiebroadwan/keyward/pkg/slogx"
)

type AdminLoginHandler struct {
	AuthService *service.AdminAuthService
}

// ServeHTTP godoc
//
//	@Summary		Admin Login Endpoint
//	@Description	Exchange the shared admin key for a short-lived Bearer session token
//	@Description	scoped to license management.
//	@Tags			Admin
//	@Accept			json
//	@Produce		json
//	@Param			request	body		licensesdk.LoginRequest		true	"Admin login request"
//	@Success		200		{object}	licensesdk.LoginResponse	"token, token_type, expires_in, scope"
//	@Failure		400		{object}	licensesdk.ErrorResponse	"error, error_description"
//	@Failure		401		{object}	licensesdk.ErrorResponse	"error, error_description"
//	@Failure		500		{object}	licensesdk.ErrorResponse	"error, error_description"
//	@Router			/v1/admin/login [post].
func (h *AdminLoginHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req licensesdk.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		licensesdk.NewAPIError(http.StatusBadRequest,
			licensesdk.ErrorCodeInvalidRequest, "invalid JSON in request body").WriteError(w)
		return
	}

	if req.AdminKey == "" {
		licensesdk.NewAPIError(http.StatusBadRequest,
			licensesdk.ErrorCodeInvalidRequest, "admin_key is required").WriteError(w)
		return
	}

	session, err := h.AuthService.Login(ctx, req.AdminKey)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			licensesdk.ErrInvalidClient.WriteError(w)
			return
		}
		log.Error("admin login failed", "err", err)
		licensesdk.ErrServerError.WriteError(w)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, licensesdk.LoginResponse{
		Token:     session.Token,
		TokenType: "Bearer",
		ExpiresIn: int(time.Until(session.ExpiresAt).Seconds()),
		Scope:     strings.Join(session.Scopes, " "),
	})
}
