package http

import (
	"net/http"
	"time"

	"github.com/dukaworks/console/internal/console/authz"
	"github.com/dukaworks/console/internal/console/domain"
	"github.com/dukaworks/console/internal/console/session"
	"github.com/dukaworks/console/pkg/httpx"
)

// sessionResponse is the console's view of the current session. The
// bearer token itself is never exposed.
type sessionResponse struct {
	State         session.State       `json:"state"`
	Authenticated bool                `json:"authenticated"`
	User          domain.User         `json:"user,omitempty"`
	Roles         []domain.RoleToken  `json:"roles,omitempty"`
	Permissions   []domain.Permission `json:"permissions,omitempty"`
	ExpiresAt     *time.Time          `json:"expires_at,omitempty"`
}

func sessionView(m *session.Manager) sessionResponse {
	snap := m.Snapshot()
	out := sessionResponse{
		State:         m.State(),
		Authenticated: snap.IsAuthenticated(),
		User:          snap.User,
		Roles:         snap.Roles,
		Permissions:   snap.Permissions,
	}
	if !snap.ExpiresAt.IsZero() {
		out.ExpiresAt = &snap.ExpiresAt
	}
	return out
}

// SessionHandler reports the session lifecycle state.
type SessionHandler struct {
	Manager *session.Manager
}

// HandleGet godoc
//
//	@Summary		Current Session
//	@Description	Returns the session lifecycle state plus roles and permissions.
//	@Description	While rehydration is in flight the state is "loading" and the
//	@Description	response carries Retry-After; callers must not treat it as a denial.
//	@Tags			Session
//	@Produce		json
//	@Success		200	{object}	sessionResponse
//	@Router			/v1/session [get].
func (h *SessionHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	if h.Manager.Loading() {
		w.Header().Set("Retry-After", "1")
	}
	httpx.WriteJSON(w, http.StatusOK, sessionView(h.Manager))
}

// MenuHandler serves the navigation tree filtered by the gate.
type MenuHandler struct {
	Gate *authz.Gate
}

type menuResponse struct {
	Entries []authz.MenuEntry `json:"entries"`
}

// HandleGet godoc
//
//	@Summary		Navigation Menu
//	@Description	Returns the navigation entries the current session may open.
//	@Tags			Session
//	@Produce		json
//	@Success		200	{object}	menuResponse
//	@Failure		401	{object}	apiclient.APIError
//	@Router			/v1/menu [get].
func (h *MenuHandler) HandleGet(w http.ResponseWriter, _ *http.Request) {
	httpx.WriteJSON(w, http.StatusOK, menuResponse{Entries: h.Gate.VisibleMenu()})
}
