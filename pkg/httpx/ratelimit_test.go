package httpx

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func TestRateLimitMiddleware(t *testing.T) {
	t.Parallel()

	t.Run("allows up to burst then rejects", func(t *testing.T) {
		cfg := RateLimitConfig{RequestsPerWindow: 2, Window: time.Minute, Burst: 2}
		h := RateLimitByIP(cfg)(okHandler())

		for range 2 {
			rec := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodPost, "/v1/auth/login", nil)
			req.RemoteAddr = "10.0.0.1:4444"
			h.ServeHTTP(rec, req)
			require.Equal(t, http.StatusOK, rec.Code)
		}

		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/v1/auth/login", nil)
		req.RemoteAddr = "10.0.0.1:4444"
		h.ServeHTTP(rec, req)
		require.Equal(t, http.StatusTooManyRequests, rec.Code)
		require.NotEmpty(t, rec.Header().Get("Retry-After"))
	})

	t.Run("keys are independent", func(t *testing.T) {
		cfg := RateLimitConfig{RequestsPerWindow: 1, Window: time.Minute, Burst: 1}
		h := RateLimitByIP(cfg)(okHandler())

		first := httptest.NewRequest(http.MethodPost, "/v1/auth/login", nil)
		first.RemoteAddr = "10.0.0.1:4444"
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, first)
		require.Equal(t, http.StatusOK, rec.Code)

		other := httptest.NewRequest(http.MethodPost, "/v1/auth/login", nil)
		other.RemoteAddr = "10.0.0.2:4444"
		rec = httptest.NewRecorder()
		h.ServeHTTP(rec, other)
		require.Equal(t, http.StatusOK, rec.Code)
	})
}

func TestIPKeyExtractor(t *testing.T) {
	t.Parallel()

	t.Run("prefers forwarded-for", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodGet, "/", nil)
		r.Header.Set("X-Forwarded-For", "1.2.3.4, 10.0.0.1")
		require.Equal(t, "1.2.3.4", IPKeyExtractor(r))
	})

	t.Run("falls back to remote addr", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodGet, "/", nil)
		r.RemoteAddr = "5.6.7.8:9999"
		require.Equal(t, "5.6.7.8", IPKeyExtractor(r))
	})
}

func TestChain(t *testing.T) {
	t.Parallel()

	var order []string
	mk := func(name string) Middleware {
		return func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				order = append(order, name)
				next.ServeHTTP(w, r)
			})
		}
	}

	h := Chain(okHandler(), mk("outer"), mk("inner"))
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
	require.Equal(t, []string{"outer", "inner"}, order)
}
