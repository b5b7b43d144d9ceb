package http

import (
	"net/http"

	"github.com/dukaworks/console/internal/console/session"
	"github.com/dukaworks/console/pkg/apiclient"
	"github.com/dukaworks/console/pkg/httpx"
)

// RequireSession guards an endpoint behind the session lifecycle.
//
// While rehydration is in flight the answer is indeterminate, so the
// request is answered 503 with Retry-After rather than denied; a denial
// here would flash an access error at an operator who is actually logged
// in. Only a settled anonymous session gets the 401.
func RequireSession(m *session.Manager) httpx.Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			if m.Loading() {
				w.Header().Set("Retry-After", "1")
				apiclient.NewAPIError(
					http.StatusServiceUnavailable,
					"session_loading",
					"session is still being restored, retry shortly",
				).WriteError(w)
				return
			}
			if !m.IsAuthenticated() {
				apiclient.ErrInvalidToken.WriteError(w)
				return
			}
			next.ServeHTTP(w, req)
		})
	}
}
