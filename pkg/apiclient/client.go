// Package apiclient is the console's typed client for the marketplace
// backend REST API. It injects the bearer credential, funnels every 401
// through a single interceptor, and degrades read endpoints to locally
// generated substitute data when the backend is unreachable.
package apiclient

import (
	"net/http"
	"strings"
	"time"

	"github.com/sony/gobreaker/v2"
)

// DefaultTimeout is the single client-side timeout for every backend
// call. Earlier console builds ran two HTTP clients with different
// timeouts (30s and 10s); they are deliberately unified here.
const DefaultTimeout = 10 * time.Second

// FallbackProvider supplies substitute data for read endpoints when the
// backend is unreachable. This is an offline-development affordance, not
// a production guarantee; wiring it is optional.
type FallbackProvider interface {
	Vendors() []Vendor
	Orders() []Order
	Dashboard() DashboardMetrics
}

// Client is a client for the marketplace backend API.
type Client struct {
	BaseURL    string
	HTTPClient *http.Client

	// OnUnauthorized is invoked once per 401 response from any endpoint.
	// The application wires it to session invalidation so the handling
	// lives in exactly one place instead of per screen.
	OnUnauthorized func()

	// Fallback, when set, substitutes local data for failed reads.
	Fallback FallbackProvider

	// breaker guards read endpoints; once the backend has failed
	// repeatedly, reads short-circuit straight to the fallback instead
	// of waiting out the timeout every time.
	breaker *gobreaker.CircuitBreaker[[]byte]
}

// NewClient creates a marketplace API client with the unified timeout
// and a read circuit breaker.
func NewClient(baseURL string) *Client {
	settings := gobreaker.Settings{
		Name:    "marketplace-api",
		Timeout: 30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
		IsSuccessful: func(err error) bool {
			if err == nil {
				return true
			}
			// 4xx means the backend answered; only transport failures
			// and 5xx should open the breaker.
			if apiErr, ok := err.(*APIError); ok {
				return apiErr.StatusCode < 500
			}
			return false
		},
	}

	return &Client{
		BaseURL:    strings.TrimSuffix(baseURL, "/"),
		HTTPClient: &http.Client{Timeout: DefaultTimeout},
		breaker:    gobreaker.NewCircuitBreaker[[]byte](settings),
	}
}
