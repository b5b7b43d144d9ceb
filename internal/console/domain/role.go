package domain

import (
	"encoding/json"
	"strconv"
)

// RoleToken is a canonical uppercase role identifier, e.g. "SUPER_ADMIN".
// Tokens are produced by authz.Normalize; comparing anything else against
// session roles without normalizing first is a bug.
type RoleToken string

const (
	RoleSuperAdmin      RoleToken = "SUPER_ADMIN"
	RoleAdmin           RoleToken = "ADMIN"
	RoleSubAdmin        RoleToken = "SUB_ADMIN"
	RoleVendor          RoleToken = "VENDOR"
	RoleDeliveryPartner RoleToken = "DELIVERY_PARTNER"
	RoleCustomer        RoleToken = "CUSTOMER"
)

func (r RoleToken) String() string { return string(r) }

// RoleObject is the structured role shape some backend endpoints return.
// Which field actually carries the role name varies by endpoint, so all
// candidates are modelled explicitly.
type RoleObject struct {
	Code     string `json:"code,omitempty"`
	RoleCode string `json:"roleCode,omitempty"`
	Name     string `json:"name,omitempty"`
	Role     string `json:"role,omitempty"`
	RoleName string `json:"roleName,omitempty"`
}

// RawRole is a tagged union over the role representations the backend is
// known to emit: a bare string or a RoleObject. Exactly one of Str/Obj is
// set after a successful decode; a zero RawRole means the payload carried
// something unusable (null, missing).
type RawRole struct {
	Str string
	Obj *RoleObject
}

// NewRawRole wraps a plain string role.
func NewRawRole(s string) RawRole { return RawRole{Str: s} }

// NewRawRoleObject wraps a structured role.
func NewRawRoleObject(o RoleObject) RawRole { return RawRole{Obj: &o} }

func (r *RawRole) UnmarshalJSON(b []byte) error {
	switch {
	case len(b) == 0 || string(b) == "null":
		*r = RawRole{}
		return nil
	case b[0] == '"':
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*r = RawRole{Str: s}
		return nil
	case b[0] == '{':
		var o RoleObject
		if err := json.Unmarshal(b, &o); err != nil {
			return err
		}
		*r = RawRole{Obj: &o}
		return nil
	default:
		// Numbers, booleans: stringify rather than reject, the normalizer
		// decides what to do with the result.
		*r = RawRole{Str: string(b)}
		return nil
	}
}

func (r RawRole) MarshalJSON() ([]byte, error) {
	if r.Obj != nil {
		return json.Marshal(r.Obj)
	}
	return json.Marshal(r.Str)
}

// IsZero reports whether the raw role carries no usable value at all.
func (r RawRole) IsZero() bool { return r.Str == "" && r.Obj == nil }

// Quote is a small helper for log output of suspect role values.
func (r RawRole) Quote() string {
	if r.Obj != nil {
		b, _ := json.Marshal(r.Obj)
		return string(b)
	}
	return strconv.Quote(r.Str)
}
