package authz

import "github.com/dukaworks/console/internal/console/domain"

// SessionSource hands the gate a consistent snapshot of the current
// session. The session manager implements it; tests substitute a stub.
type SessionSource interface {
	Snapshot() domain.Session
}

// Gate answers every authorization question the console asks. All
// methods are synchronous and side-effect free over a single session
// snapshot, so a handler's checks within one request agree with each
// other even if a login or logout lands concurrently.
//
// The super-admin override lives in exactly one place (isSuperAdmin) and
// every query consults it first; keeping the override centralized is
// what stops the per-method checks from drifting apart.
type Gate struct {
	src SessionSource
}

// NewGate builds a gate over the given session source.
func NewGate(src SessionSource) *Gate {
	return &Gate{src: src}
}

// isSuperAdmin is the single override guard. A session holding the
// SUPER_ADMIN role satisfies every role, permission and route check
// unconditionally.
func isSuperAdmin(s domain.Session) bool {
	return s.HasRoleToken(domain.RoleSuperAdmin)
}

// HasRole reports whether the session holds the given role. The input is
// canonicalized with the same transform as login-time normalization, so
// callers may pass whatever casing they have on hand.
func (g *Gate) HasRole(role string) bool {
	if role == "" {
		return false
	}
	s := g.src.Snapshot()
	if isSuperAdmin(s) {
		return true
	}
	return s.HasRoleToken(Canonical(role))
}

// HasPermission reports whether the session holds the permission. An
// empty permission never matches anything.
func (g *Gate) HasPermission(p domain.Permission) bool {
	if p == "" {
		return false
	}
	s := g.src.Snapshot()
	if isSuperAdmin(s) {
		return true
	}
	return s.HasPermissionToken(p)
}

// HasAnyPermission reports whether at least one listed permission is
// held. An empty list satisfies nothing, even for a session that holds
// every permission in the system.
func (g *Gate) HasAnyPermission(perms ...domain.Permission) bool {
	if len(perms) == 0 {
		return false
	}
	s := g.src.Snapshot()
	if isSuperAdmin(s) {
		return true
	}
	for _, p := range perms {
		if p != "" && s.HasPermissionToken(p) {
			return true
		}
	}
	return false
}

// HasAllPermissions reports whether every listed permission is held.
// An empty list is never satisfied.
func (g *Gate) HasAllPermissions(perms ...domain.Permission) bool {
	if len(perms) == 0 {
		return false
	}
	s := g.src.Snapshot()
	if isSuperAdmin(s) {
		return true
	}
	for _, p := range perms {
		if p == "" || !s.HasPermissionToken(p) {
			return false
		}
	}
	return true
}

// CanAccessRoute resolves the route access policy for a console path.
// Unmapped paths and nil rules are permitted outright. Guarded paths
// require authentication before any permission is considered, then
// delegate to the single/any-of permission checks.
func (g *Gate) CanAccessRoute(path string) bool {
	s := g.src.Snapshot()
	if isSuperAdmin(s) {
		return true
	}

	rule, known := RuleFor(path)
	if !known || rule == nil {
		return true
	}
	if !s.IsAuthenticated() {
		return false
	}

	if rule.Permission != "" {
		return g.HasPermission(rule.Permission)
	}
	return g.HasAnyPermission(rule.AnyOf...)
}

// VisibleMenu filters the static navigation tree down to the entries the
// current session may open.
func (g *Gate) VisibleMenu() []MenuEntry {
	out := make([]MenuEntry, 0, len(Menu))
	for _, entry := range Menu {
		if g.CanAccessRoute(entry.Path) {
			out = append(out, entry)
		}
	}
	return out
}
