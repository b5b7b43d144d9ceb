// Package session owns the console's authenticated session: the single
// mutable session value, its persistence, and the login/logout/rehydrate
// lifecycle. Everything else reads the session through snapshots.
package session

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"

	"github.com/dukaworks/console/internal/console/authz"
	"github.com/dukaworks/console/internal/console/domain"
	"github.com/dukaworks/console/internal/console/store"
)

// Backend is the slice of the marketplace API the session lifecycle
// needs. The apiclient implements it; tests substitute fakes.
type Backend interface {
	// Logout invalidates the server-side session. The role selects the
	// endpoint class (super-admin vs staff).
	Logout(ctx context.Context, role domain.RoleToken, token string) error

	// RefreshPermissions fetches the authoritative permission set for the
	// bearer of token.
	RefreshPermissions(ctx context.Context, token string) ([]domain.Permission, error)
}

// State is the session lifecycle state exposed to callers.
type State string

const (
	StateLoading       State = "loading"
	StateAnonymous     State = "anonymous"
	StateAuthenticated State = "authenticated"
)

// LoginPayload is the successful login response the manager ingests.
type LoginPayload struct {
	Token        string
	RefreshToken string
	Roles        []domain.RawRole
	Permissions  []domain.Permission
	User         domain.User
}

// Manager is the session store. It owns the one mutable Session value
// and the durable storage underneath it; every mutation updates memory
// and persists through a single atomic write.
//
// Concurrent Login/Logout calls are not serialized against each other
// beyond the mutex: last writer wins, which is acceptable for a
// single-operator client.
type Manager struct {
	logger  *slog.Logger
	store   store.Store
	backend Backend

	mu      sync.RWMutex
	sess    domain.Session
	loading bool
	loaded  bool

	// refreshWG tracks the background super-admin permission refresh so
	// shutdown and tests can wait for it.
	refreshWG sync.WaitGroup
}

// NewManager builds a session manager. The manager starts in the
// Unloaded state; call Load once at startup to rehydrate.
func NewManager(logger *slog.Logger, st store.Store, backend Backend) *Manager {
	return &Manager{
		logger:  logger,
		store:   st,
		backend: backend,
	}
}

// Snapshot returns a copy of the current session. The copy's slices are
// detached so callers can hold it across concurrent mutations.
func (m *Manager) Snapshot() domain.Session {
	m.mu.RLock()
	defer m.mu.RUnlock()

	s := m.sess
	if len(m.sess.Roles) > 0 {
		s.Roles = append([]domain.RoleToken(nil), m.sess.Roles...)
	}
	if len(m.sess.Permissions) > 0 {
		s.Permissions = append([]domain.Permission(nil), m.sess.Permissions...)
	}
	return s
}

// Loading reports whether startup rehydration is still pending or in
// progress. While true, authorization answers are indeterminate and
// callers must render a waiting state, never a denial. A manager that
// was never Loaded reads as loading for the same reason.
func (m *Manager) Loading() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.loading || !m.loaded
}

// State returns the lifecycle state.
func (m *Manager) State() State {
	m.mu.RLock()
	defer m.mu.RUnlock()

	switch {
	case m.loading || !m.loaded:
		return StateLoading
	case m.sess.IsAuthenticated():
		return StateAuthenticated
	default:
		return StateAnonymous
	}
}

// IsAuthenticated reports whether a bearer credential is held.
func (m *Manager) IsAuthenticated() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.sess.IsAuthenticated()
}

// Login ingests a successful login response: normalizes roles, resolves
// the effective permission set, persists every entry atomically, and
// only then commits the session to memory. When Login returns, any
// authorization check sees the new session.
func (m *Manager) Login(ctx context.Context, p LoginPayload) error {
	roles := authz.Normalize(p.Roles)
	for i, r := range roles {
		if authz.IsUndefined(r) {
			m.logger.Warn("login payload carried unusable role",
				"index", i, "raw", p.Roles[i].Quote())
		}
	}

	sess := domain.Session{
		Token:        p.Token,
		RefreshToken: p.RefreshToken,
		Roles:        roles,
		Permissions:  authz.Resolve(p.Permissions, roles),
		User:         p.User,
		ExpiresAt:    tokenExpiry(p.Token),
	}

	if err := m.persist(ctx, sess); err != nil {
		return err
	}

	m.mu.Lock()
	m.sess = sess
	m.loaded = true
	m.mu.Unlock()

	m.logger.Info("session established",
		"user_id", sess.User.ID, "roles", sess.Roles,
		"permission_count", len(sess.Permissions))
	return nil
}

// Logout tears the session down. The server-side call is best effort:
// its endpoint is chosen by the session's primary role (falling back to
// the legacy stored role hint when the role list is empty) and any
// failure is logged and swallowed. Local state and storage are cleared
// unconditionally; logout never fails from the operator's perspective.
func (m *Manager) Logout(ctx context.Context) {
	m.mu.RLock()
	sess := m.sess
	m.mu.RUnlock()

	if sess.IsAuthenticated() {
		role := sess.PrimaryRole()
		if role == "" {
			if legacy, err := m.store.Get(ctx, store.KeyLegacyUserRole); err == nil {
				role = authz.Canonical(legacy)
			}
		}
		if err := m.backend.Logout(ctx, role, sess.Token); err != nil {
			m.logger.Warn("logout endpoint failed, clearing session anyway", "err", err)
		}
	}

	m.clear(ctx)
	m.logger.Info("session cleared")
}

// Invalidate clears the session without contacting the backend. This is
// the 401 path: the credential is already dead, there is nothing to
// revoke.
func (m *Manager) Invalidate(ctx context.Context) {
	if !m.IsAuthenticated() {
		return
	}
	m.clear(ctx)
	m.logger.Warn("session invalidated by authentication failure")
}

// Load rehydrates the session from durable storage. It must be called
// once at startup; until it returns, State() reports loading and gate
// answers are indeterminate. A present token populates the session,
// re-running permission resolution when the stored set is empty. After a
// successful load of a super-admin session, an asynchronous refresh
// replaces the permission set with the authoritative server copy;
// refresh failure is logged and never clears the session.
func (m *Manager) Load(ctx context.Context) error {
	m.mu.Lock()
	m.loading = true
	m.mu.Unlock()

	defer func() {
		m.mu.Lock()
		m.loading = false
		m.loaded = true
		m.mu.Unlock()
	}()

	entries, err := m.store.GetAll(ctx)
	if err != nil {
		return err
	}

	token := entries[store.KeyAuthToken]
	if token == "" {
		return nil // anonymous
	}

	var roles []domain.RoleToken
	if raw := entries[store.KeyUserRoles]; raw != "" {
		if err := json.Unmarshal([]byte(raw), &roles); err != nil {
			m.logger.Warn("stored roles unreadable, treating as empty", "err", err)
			roles = nil
		}
	}
	roles = authz.NormalizeTokens(roles)

	var perms []domain.Permission
	if raw := entries[store.KeyUserPermissions]; raw != "" {
		if err := json.Unmarshal([]byte(raw), &perms); err != nil {
			m.logger.Warn("stored permissions unreadable, falling back to role defaults", "err", err)
			perms = nil
		}
	}

	sess := domain.Session{
		Token:        token,
		RefreshToken: entries[store.KeyRefreshToken],
		Roles:        roles,
		Permissions:  authz.Resolve(perms, roles),
		User:         domain.User{ID: entries[store.KeyUserID]},
		ExpiresAt:    tokenExpiry(token),
	}

	m.mu.Lock()
	m.sess = sess
	m.mu.Unlock()

	if sess.HasRoleToken(domain.RoleSuperAdmin) {
		m.refreshWG.Add(1)
		go func() {
			defer m.refreshWG.Done()
			m.refreshPermissions(context.WithoutCancel(ctx), sess.Token)
		}()
	}

	m.logger.Info("session rehydrated",
		"user_id", sess.User.ID, "roles", sess.Roles)
	return nil
}

// WaitRefresh blocks until any in-flight permission refresh finishes.
func (m *Manager) WaitRefresh() { m.refreshWG.Wait() }

// refreshPermissions swaps in the authoritative server permission set.
func (m *Manager) refreshPermissions(ctx context.Context, token string) {
	perms, err := m.backend.RefreshPermissions(ctx, token)
	if err != nil {
		m.logger.Warn("permission refresh failed, keeping stored set", "err", err)
		return
	}

	m.mu.Lock()
	if m.sess.Token != token {
		// Session changed underneath us; the refresh result is stale.
		m.mu.Unlock()
		return
	}
	m.sess.Permissions = authz.Resolve(perms, m.sess.Roles)
	updated := append([]domain.Permission(nil), m.sess.Permissions...)
	m.mu.Unlock()

	raw, err := json.Marshal(updated)
	if err != nil {
		m.logger.Warn("failed to encode refreshed permissions", "err", err)
		return
	}
	if err := m.store.PutAll(ctx, map[string]string{store.KeyUserPermissions: string(raw)}); err != nil {
		m.logger.Warn("failed to persist refreshed permissions", "err", err)
	}
}

// persist writes the whole session in one transaction.
func (m *Manager) persist(ctx context.Context, sess domain.Session) error {
	roles, err := json.Marshal(sess.Roles)
	if err != nil {
		return err
	}
	perms, err := json.Marshal(sess.Permissions)
	if err != nil {
		return err
	}

	return m.store.PutAll(ctx, map[string]string{
		store.KeyAuthToken:       sess.Token,
		store.KeyRefreshToken:    sess.RefreshToken,
		store.KeyUserRoles:       string(roles),
		store.KeyUserPermissions: string(perms),
		store.KeyUserID:          sess.User.ID,
	})
}

// clear wipes memory and every storage entry, legacy key included.
func (m *Manager) clear(ctx context.Context) {
	m.mu.Lock()
	m.sess = domain.Session{}
	m.mu.Unlock()

	if err := m.store.Clear(ctx); err != nil {
		m.logger.Error("failed to clear session storage", "err", err)
	}
}
