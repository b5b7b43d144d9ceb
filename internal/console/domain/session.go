package domain

import "time"

// User is the minimal operator identity the console keeps around. The
// backend's user records are much richer; everything beyond the id is
// display sugar.
type User struct {
	ID    string `json:"id"`
	Email string `json:"email,omitempty"`
	Name  string `json:"name,omitempty"`
}

// Session is the client-held proof of authentication plus the derived
// authorization state. It is a plain value: the session manager owns the
// single mutable instance and hands out copies.
type Session struct {
	Token        string
	RefreshToken string
	Roles        []RoleToken
	Permissions  []Permission
	User         User

	// ExpiresAt is a best-effort expiry peeked from the bearer token when
	// it happens to be a JWT. Zero when the token is fully opaque.
	ExpiresAt time.Time
}

// IsAuthenticated reports whether the session holds a bearer credential.
// Presence of the token is the sole authentication signal.
func (s Session) IsAuthenticated() bool { return s.Token != "" }

// HasRoleToken reports raw membership of an already-canonical token in
// the session's role set. No super-admin override here; that belongs to
// the authorization gate.
func (s Session) HasRoleToken(role RoleToken) bool {
	for _, r := range s.Roles {
		if r == role {
			return true
		}
	}
	return false
}

// HasPermissionToken reports raw membership in the permission set,
// again without override semantics.
func (s Session) HasPermissionToken(p Permission) bool {
	for _, sp := range s.Permissions {
		if sp == p {
			return true
		}
	}
	return false
}

// PrimaryRole returns the first role of the session, used as a heuristic
// when an endpoint must be chosen per role class (logout). Empty when the
// session has no roles.
func (s Session) PrimaryRole() RoleToken {
	if len(s.Roles) == 0 {
		return ""
	}
	return s.Roles[0]
}
