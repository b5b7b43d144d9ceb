package authz

import "github.com/dukaworks/console/internal/console/domain"

// Resolve derives the effective permission set for a session.
//
// A non-empty server-supplied list wins verbatim (deduplicated). Only
// when the server sent nothing do the per-role defaults apply, unioned
// across every role. Both the login path and the rehydration path call
// this with identical semantics; an empty result is a valid outcome, not
// an error.
func Resolve(
	serverPermissions []domain.Permission,
	roles []domain.RoleToken,
) []domain.Permission {
	if len(serverPermissions) > 0 {
		return dedupe(serverPermissions)
	}

	var union []domain.Permission
	for _, role := range roles {
		union = append(union, DefaultPermissions(role)...)
	}
	return dedupe(union)
}

// dedupe removes repeated permissions while preserving first-seen order.
func dedupe(perms []domain.Permission) []domain.Permission {
	if len(perms) == 0 {
		return nil
	}
	seen := make(map[domain.Permission]struct{}, len(perms))
	out := make([]domain.Permission, 0, len(perms))
	for _, p := range perms {
		if _, ok := seen[p]; ok {
			continue
		}
		seen[p] = struct{}{}
		out = append(out, p)
	}
	return out
}
