package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/dukaworks/console/internal/console/authz"
	"github.com/dukaworks/console/internal/console/session"
	"github.com/dukaworks/console/internal/console/store"
	"github.com/dukaworks/console/pkg/apiclient"
	"github.com/dukaworks/console/pkg/httpx"
	"github.com/dukaworks/console/pkg/slogx"

	_ "github.com/dukaworks/console/api/console" // Swagger docs
	httpSwagger "github.com/swaggo/http-swagger"
)

// Router holds shared dependencies for HTTP handlers.
type Router struct {
	Mux         *http.ServeMux
	middlewares []httpx.Middleware

	buildVersion string
	startTime    time.Time
	logger       *slog.Logger

	store   store.Store
	Manager *session.Manager
	Gate    *authz.Gate
	API     *apiclient.Client
}

func NewRouter(
	buildVersion string,
	st store.Store,
	manager *session.Manager,
	gate *authz.Gate,
	api *apiclient.Client,
	logger *slog.Logger,
) *Router {
	r := &Router{
		Mux:          http.NewServeMux(),
		buildVersion: buildVersion,
		startTime:    time.Now(),
		logger:       logger,
		store:        st,
		Manager:      manager,
		Gate:         gate,
		API:          api,
	}

	// Set default middleware chain
	r.middlewares = []httpx.Middleware{
		slogx.HTTPMiddleware(r.logger),
	}

	return r
}

func (r *Router) ApplyRoutes() {
	r.registerAuth()
	r.registerSession()
	r.registerScreens()
	r.registerSystem()

	r.Mux.Handle("/swagger/", httpSwagger.Handler())
}

// ServeHTTP implements http.Handler for Router and applies the global middleware chain.
//
//	@title			Duka Console API
//	@version		0.1.0
//	@description	Local gateway for the Duka marketplace admin console. Owns the
//	@description	operator session, resolves roles and permissions, and proxies
//	@description	guarded screen data from the marketplace backend.
//
//	@contact.name	Duka Works Team
//	@contact.url	https://github.com/dukaworks/console
//
//	@license.name	MIT
//	@license.url	https://opensource.org/licenses/MIT
//
//	@host			localhost:8090
//	@BasePath		/
//
//	@schemes		http
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	httpx.Chain(r.Mux, r.middlewares...).ServeHTTP(w, req)
}

func (r *Router) registerAuth() {
	h := &AuthHandler{
		Manager: r.Manager,
		API:     r.API,
		Logger:  r.logger,
	}

	// POST /login - strict rate limit (authentication attempts)
	r.Mux.Handle("POST /v1/auth/login",
		httpx.Chain(http.HandlerFunc(h.HandleLogin),
			httpx.RateLimitByIP(httpx.StrictLimit),
		),
	)

	// POST /logout - always succeeds locally, lenient limit
	r.Mux.Handle("POST /v1/auth/logout",
		httpx.Chain(http.HandlerFunc(h.HandleLogout),
			httpx.RateLimitByIP(httpx.LenientLimit),
		),
	)
}

func (r *Router) registerSession() {
	sessionHandler := &SessionHandler{Manager: r.Manager}
	r.Mux.Handle("GET /v1/session",
		httpx.Chain(http.HandlerFunc(sessionHandler.HandleGet),
			httpx.RateLimitByIP(httpx.LenientLimit),
		),
	)

	menuHandler := &MenuHandler{Gate: r.Gate}
	r.Mux.Handle("GET /v1/menu",
		httpx.Chain(http.HandlerFunc(menuHandler.HandleGet),
			RequireSession(r.Manager),
			httpx.RateLimitByIP(httpx.LenientLimit),
		),
	)
}

func (r *Router) registerScreens() {
	h := &ScreensHandler{
		Manager: r.Manager,
		Gate:    r.Gate,
		API:     r.API,
	}

	// Screen endpoints check the same route policy the navigation uses,
	// so hand-typed URLs and menu clicks get identical answers.
	r.Mux.Handle("GET /v1/vendors",
		httpx.Chain(http.HandlerFunc(h.HandleVendors),
			RequireSession(r.Manager),
			httpx.RateLimitByIP(httpx.LenientLimit),
		),
	)
	r.Mux.Handle("GET /v1/orders",
		httpx.Chain(http.HandlerFunc(h.HandleOrders),
			RequireSession(r.Manager),
			httpx.RateLimitByIP(httpx.LenientLimit),
		),
	)
	r.Mux.Handle("GET /v1/dashboard",
		httpx.Chain(http.HandlerFunc(h.HandleDashboard),
			RequireSession(r.Manager),
			httpx.RateLimitByIP(httpx.LenientLimit),
		),
	)
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
