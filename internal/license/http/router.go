package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/aussiebroadwan/keyward/internal/license/service"
	"github.com/aussiebroadwan/keyward/internal/license/store"
	"github.com/aussiebroadwan/keyward/pkg/httpx"
	"github.com/aussiebroadwan/keyward/pkg/jwtx"
	"github.com/aussiebroadwan/keyward/pkg/slogx"

	_ "github.com/aussiebroadwan/keyward/api/license" // Swagger docs
	httpSwagger "github.com/swaggo/http-swagger"
)

// Router holds shared dependencies for HTTP handlers.
type Router struct {
	Mux         *http.ServeMux
	middlewares []httpx.Middleware

	verifier     jwtx.Verifier
	buildVersion string
	startTime    time.Time
	logger       *slog.Logger

	store            store.Store
	EngineService    *service.EngineService
	AdminService     *service.AdminService
	AdminAuthService *service.AdminAuthService
}

func NewRouter(
	verifier jwtx.Verifier,
	buildVersion string,
	st store.Store,
	logger *slog.Logger,
) *Router {
	r := &Router{
		Mux:          http.NewServeMux(),
		verifier:     verifier,
		buildVersion: buildVersion,
		startTime:    time.Now(),
		store:        st,
		logger:       logger,
	}

	// Set default middleware chain
	r.middlewares = []httpx.Middleware{
		slogx.HTTPMiddleware(r.logger),
	}

	return r
}

func (r *Router) ApplyRoutes() {
	r.registerLicense()
	r.registerAdmin()
	r.registerSystem()

	r.Mux.Handle("/swagger/", httpSwagger.Handler())
}

// ServeHTTP implements http.Handler for Router and applies the global middleware chain.
//
//	@title			Keyward License Service API
//	@version		0.1.0
//	@description	License lifecycle and verification service. Licenses are bound to a
//	@description	machine fingerprint on first activation and verified read-only after
//	@description	that, with all date judgements made against the server's clock.
//
//	@contact.name				AussieBroadWAN Team
//	@contact.url				https://github.com/aussiebroadwan/keyward
//
//	@license.name				MIT
//	@license.url				https://opensource.org/licenses/MIT
//
//	@host						localhost:8080
//	@BasePath					/
//
//	@schemes					http https
//
//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
//	@description				JWT session token from the admin login endpoint. Format: "Bearer {token}".
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	httpx.Chain(r.Mux, r.middlewares...).ServeHTTP(w, req)
}

func (r *Router) registerLicense() {
	activateHandler := &ActivateHandler{EngineService: r.EngineService}
	verifyHandler := &VerifyHandler{EngineService: r.EngineService}
	infoHandler := &InfoHandler{EngineService: r.EngineService}

	// POST /license/activate - strict rate limit (binding attempts)
	// Note: Rate limited by IP + license key form field to prevent key scanning
	r.Mux.Handle("POST /v1/license/activate",
		httpx.Chain(activateHandler,
			httpx.RateLimitByIPAndFormField(httpx.StrictLimit, "license_key"),
		),
	)

	// POST /license/verify - public limit (every fleet machine polls this on startup)
	r.Mux.Handle("POST /v1/license/verify",
		httpx.Chain(verifyHandler,
			httpx.RateLimitByIP(httpx.PublicLimit),
		),
	)

	// GET /license/info - lenient rate limit (diagnostic lookups)
	r.Mux.Handle("GET /v1/license/info",
		httpx.Chain(infoHandler,
			httpx.RateLimitByIP(httpx.LenientLimit),
		),
	)
}

func (r *Router) registerAdmin() {
	loginHandler := &AdminLoginHandler{AuthService: r.AdminAuthService}
	licensesHandler := &AdminLicensesHandler{AdminService: r.AdminService}
	statsHandler := &AdminStatsHandler{AdminService: r.AdminService}

	// POST /admin/login - strict rate limit by IP (authentication attempts)
	r.Mux.Handle("POST /v1/admin/login",
		httpx.Chain(loginHandler,
			httpx.RateLimitByIP(httpx.StrictLimit),
		),
	)

	// POST /v1/admin/licenses - Create license (requires licenses:write) - moderate rate limit
	securedCreate := httpx.Chain(http.HandlerFunc(licensesHandler.HandleCreate),
		httpx.AuthnMiddleware(r.verifier),
		httpx.RequireAnyScope(service.ScopeLicensesWrite),
		httpx.RateLimitBySubject(httpx.ModerateLimit),
	)

	// GET /v1/admin/licenses - List licenses (requires licenses:read) - moderate rate limit
	securedList := httpx.Chain(http.HandlerFunc(licensesHandler.HandleList),
		httpx.AuthnMiddleware(r.verifier),
		httpx.RequireAnyScope(service.ScopeLicensesRead),
		httpx.RateLimitBySubject(httpx.ModerateLimit),
	)

	// GET /v1/admin/licenses/{key} - Get license (requires licenses:read) - moderate rate limit
	securedGet := httpx.Chain(http.HandlerFunc(licensesHandler.HandleGet),
		httpx.AuthnMiddleware(r.verifier),
		httpx.RequireAnyScope(service.ScopeLicensesRead),
		httpx.RateLimitBySubject(httpx.ModerateLimit),
	)

	// PATCH /v1/admin/licenses/{key} - Update license (requires licenses:write) - moderate rate limit
	securedUpdate := httpx.Chain(http.HandlerFunc(licensesHandler.HandleUpdate),
		httpx.AuthnMiddleware(r.verifier),
		httpx.RequireAnyScope(service.ScopeLicensesWrite),
		httpx.RateLimitBySubject(httpx.ModerateLimit),
	)

	// DELETE /v1/admin/licenses/{key} - Delete license (requires licenses:write) - moderate rate limit
	securedDelete := httpx.Chain(http.HandlerFunc(licensesHandler.HandleDelete),
		httpx.AuthnMiddleware(r.verifier),
		httpx.RequireAnyScope(service.ScopeLicensesWrite),
		httpx.RateLimitBySubject(httpx.ModerateLimit),
	)

	// POST /v1/admin/licenses/{key}/revoke - Revoke license (requires licenses:write) - moderate rate limit
	securedRevoke := httpx.Chain(http.HandlerFunc(licensesHandler.HandleRevoke),
		httpx.AuthnMiddleware(r.verifier),
		httpx.RequireAnyScope(service.ScopeLicensesWrite),
		httpx.RateLimitBySubject(httpx.ModerateLimit),
	)

	// POST /v1/admin/licenses/{key}/reinstate - Reinstate license (requires licenses:write) - moderate rate limit
	securedReinstate := httpx.Chain(http.HandlerFunc(licensesHandler.HandleReinstate),
		httpx.AuthnMiddleware(r.verifier),
		httpx.RequireAnyScope(service.ScopeLicensesWrite),
		httpx.RateLimitBySubject(httpx.ModerateLimit),
	)

	// GET /v1/admin/stats - Fleet stats (requires licenses:read) - moderate rate limit
	securedStats := httpx.Chain(statsHandler,
		httpx.AuthnMiddleware(r.verifier),
		httpx.RequireAnyScope(service.ScopeLicensesRead),
		httpx.RateLimitBySubject(httpx.ModerateLimit),
	)

	r.Mux.Handle("POST /v1/admin/licenses", securedCreate)
	r.Mux.Handle("GET /v1/admin/licenses", securedList)
	r.Mux.Handle("GET /v1/admin/licenses/{key}", securedGet)
	r.Mux.Handle("PATCH /v1/admin/licenses/{key}", securedUpdate)
	r.Mux.Handle("DELETE /v1/admin/licenses/{key}", securedDelete)
	r.Mux.Handle("POST /v1/admin/licenses/{key}/revoke", securedRevoke)
	r.Mux.Handle("POST /v1/admin/licenses/{key}/reinstate", securedReinstate)
	r.Mux.Handle("GET /v1/admin/stats", securedStats)
}

func (r *Router) registerSystem() {
	// Health check endpoints - lenient rate limits (monitoring systems may poll frequently)
	r.Mux.Handle("GET /livez",
		httpx.Chain(LivezHandler(r.startTime, r.buildVersion),
			httpx.RateLimitByIP(httpx.LenientLimit),
		),
	)
	r.Mux.Handle("GET /readyz",
		httpx.Chain(ReadyzHandler(r.startTime, r.buildVersion, r.store),
			httpx.RateLimitByIP(httpx.LenientLimit),
		),
	)
}
