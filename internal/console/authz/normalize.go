// Package authz implements the console's client-side authorization model:
// role normalization, permission resolution with per-role defaults, the
// route access policy, and the gate every protected view queries.
package authz

import (
	"strings"

	"github.com/dukaworks/console/internal/console/domain"
)

// undefinedRole is what normalization yields when a raw role carries no
// usable value at all. It is deliberately kept rather than rejected so a
// single corrupt role record can never block an operator's login; callers
// log it and move on.
const undefinedRole domain.RoleToken = "UNDEFINED"

// roleObjectFields is the explicit preference order used to extract the
// role name from a structured role. Do not reorder without checking every
// backend endpoint that returns role objects.
var roleObjectFields = []func(domain.RoleObject) string{
	func(o domain.RoleObject) string { return o.Code },
	func(o domain.RoleObject) string { return o.RoleCode },
	func(o domain.RoleObject) string { return o.Name },
	func(o domain.RoleObject) string { return o.Role },
	func(o domain.RoleObject) string { return o.RoleName },
}

// Canonical maps an arbitrary role string to its canonical token form:
// uppercase with every whitespace run collapsed to a single underscore.
// Canonical is idempotent: applying it to its own output is a no-op.
func Canonical(s string) domain.RoleToken {
	fields := strings.Fields(s)
	if len(fields) == 0 {
		return undefinedRole
	}
	return domain.RoleToken(strings.ToUpper(strings.Join(fields, "_")))
}

// NormalizeOne canonicalizes a single raw role. Structured roles use the
// first non-empty field in roleObjectFields order; a role with nothing
// usable normalizes to UNDEFINED instead of failing.
func NormalizeOne(raw domain.RawRole) domain.RoleToken {
	if raw.Obj != nil {
		for _, field := range roleObjectFields {
			if v := field(*raw.Obj); v != "" {
				return Canonical(v)
			}
		}
		return undefinedRole
	}
	if raw.Str == "" {
		return undefinedRole
	}
	return Canonical(raw.Str)
}

// Normalize canonicalizes a collection of raw roles, preserving input
// order. Duplicates are kept; every consumer treats the result with set
// semantics, so deduplication here would only hide repetition from logs.
func Normalize(raw []domain.RawRole) []domain.RoleToken {
	if len(raw) == 0 {
		return nil
	}
	out := make([]domain.RoleToken, 0, len(raw))
	for _, r := range raw {
		out = append(out, NormalizeOne(r))
	}
	return out
}

// NormalizeTokens re-canonicalizes already-stringly roles, e.g. the role
// list rehydrated from storage. Safe to apply repeatedly.
func NormalizeTokens(tokens []domain.RoleToken) []domain.RoleToken {
	if len(tokens) == 0 {
		return nil
	}
	out := make([]domain.RoleToken, 0, len(tokens))
	for _, t := range tokens {
		out = append(out, Canonical(string(t)))
	}
	return out
}

// IsUndefined reports whether a token is the malformed-input marker.
// The session manager uses this to log suspect login payloads.
func IsUndefined(t domain.RoleToken) bool { return t == undefinedRole }
