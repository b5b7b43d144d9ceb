// Package mockapi is an offline stand-in for the marketplace backend.
// It serves the same wire surface the console talks to in production,
// backed by seeded accounts and generated data, so the console can be
// developed and demoed without network access.
package mockapi

import (
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/dukaworks/console/pkg/httpx"
	"github.com/dukaworks/console/pkg/mockdata"
	"github.com/dukaworks/console/pkg/slogx"
)

// Router holds shared dependencies for the offline backend handlers.
type Router struct {
	Mux         *http.ServeMux
	middlewares []httpx.Middleware

	logger    *slog.Logger
	secret    []byte
	accounts  map[string]*Account
	provider  *mockdata.Provider
	startTime time.Time

	mu      sync.Mutex
	revoked map[string]struct{}
}

func NewRouter(secret []byte, accounts map[string]*Account, provider *mockdata.Provider, logger *slog.Logger) *Router {
	r := &Router{
		Mux:       http.NewServeMux(),
		logger:    logger,
		secret:    secret,
		accounts:  accounts,
		provider:  provider,
		startTime: time.Now(),
		revoked:   make(map[string]struct{}),
	}

	// Set default middleware chain
	r.middlewares = []httpx.Middleware{
		slogx.HTTPMiddleware(r.logger),
	}

	return r
}

func (r *Router) ApplyRoutes() {
	// POST /login - strict rate limit (authentication attempts)
	r.Mux.Handle("POST /v1/auth/login",
		httpx.Chain(http.HandlerFunc(r.handleLogin),
			httpx.RateLimitByIP(httpx.StrictLimit),
		),
	)

	r.Mux.Handle("POST /v1/auth/staff/logout",
		httpx.Chain(r.requireAuth(http.HandlerFunc(r.handleStaffLogout)),
			httpx.RateLimitByIP(httpx.LenientLimit),
		),
	)
	r.Mux.Handle("POST /v1/auth/admin/logout",
		httpx.Chain(r.requireAuth(http.HandlerFunc(r.handleAdminLogout)),
			httpx.RateLimitByIP(httpx.LenientLimit),
		),
	)
	r.Mux.Handle("GET /v1/auth/permissions",
		httpx.Chain(r.requireAuth(http.HandlerFunc(r.handlePermissions)),
			httpx.RateLimitByIP(httpx.LenientLimit),
		),
	)

	r.Mux.Handle("GET /v1/vendors",
		httpx.Chain(r.requireAuth(http.HandlerFunc(r.handleVendors)),
			httpx.RateLimitByIP(httpx.LenientLimit),
		),
	)
	r.Mux.Handle("GET /v1/orders",
		httpx.Chain(r.requireAuth(http.HandlerFunc(r.handleOrders)),
			httpx.RateLimitByIP(httpx.LenientLimit),
		),
	)
	r.Mux.Handle("GET /v1/dashboard",
		httpx.Chain(r.requireAuth(http.HandlerFunc(r.handleDashboard)),
			httpx.RateLimitByIP(httpx.LenientLimit),
		),
	)

	r.Mux.HandleFunc("GET /livez", r.handleLivez)
}

// ServeHTTP implements http.Handler for Router and applies the global
// middleware chain.
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	httpx.Chain(r.Mux, r.middlewares...).ServeHTTP(w, req)
}

func (r *Router) revoke(token string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.revoked[token] = struct{}{}
}

func (r *Router) isRevoked(token string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.revoked[token]
	return ok
}
