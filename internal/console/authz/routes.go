package authz

import "github.com/dukaworks/console/internal/console/domain"

// Rule describes what a route demands from the session. Exactly one of
// Permission/AnyOf is set; a nil *Rule in the policy table means the
// route is open to any authenticated operator.
type Rule struct {
	// Permission is a single required permission.
	Permission domain.Permission

	// AnyOf is satisfied by holding any one of the listed permissions.
	AnyOf []domain.Permission
}

// RequirePermission builds a single-permission rule.
func RequirePermission(p domain.Permission) *Rule { return &Rule{Permission: p} }

// RequireAny builds an any-of rule.
func RequireAny(ps ...domain.Permission) *Rule { return &Rule{AnyOf: ps} }

// routeRules is the static route access policy: console route path to
// required permission(s). Entries are never mutated at runtime. Paths
// absent from the table are deliberately default-permit; navigational,
// support and audit screens stay unrestricted unless listed.
var routeRules = map[string]*Rule{
	"/dashboard":       RequirePermission(domain.PermViewDashboard),
	"/vendors":         RequirePermission(domain.PermViewVendors),
	"/vendors/new":     RequirePermission(domain.PermManageVendors),
	"/customers":       RequirePermission(domain.PermViewCustomers),
	"/delivery-agents": RequirePermission(domain.PermViewDelivery),
	"/products":        RequireAny(domain.PermViewProducts, domain.PermManageProducts),
	"/orders":          RequirePermission(domain.PermViewOrders),
	"/payments":        RequireAny(domain.PermViewPayments, domain.PermManagePayments),
	"/promotions":      RequireAny(domain.PermViewPromotions, domain.PermManagePromos),
	"/support":         nil,
	"/audit-logs":      RequirePermission(domain.PermViewAuditLogs),
	"/settings":        RequirePermission(domain.PermManageSettings),
	"/roles":           RequirePermission(domain.PermManageRolePerms),
	"/profile":         nil,
}

// RuleFor resolves the access rule for a route path. The second return
// reports whether the path is mapped at all; unmapped paths are the
// caller's cue to default-permit.
func RuleFor(path string) (*Rule, bool) {
	rule, ok := routeRules[path]
	return rule, ok
}

// MenuEntry is one navigation item. The menu handler filters entries
// through the gate before rendering, so an operator only ever sees the
// screens they can open.
type MenuEntry struct {
	Label string `json:"label"`
	Path  string `json:"path"`
}

// Menu is the full navigation tree in display order. Like routeRules it
// is static configuration, not runtime state.
var Menu = []MenuEntry{
	{Label: "Dashboard", Path: "/dashboard"},
	{Label: "Vendors", Path: "/vendors"},
	{Label: "Customers", Path: "/customers"},
	{Label: "Delivery Agents", Path: "/delivery-agents"},
	{Label: "Products", Path: "/products"},
	{Label: "Orders", Path: "/orders"},
	{Label: "Payments", Path: "/payments"},
	{Label: "Promotions", Path: "/promotions"},
	{Label: "Support", Path: "/support"},
	{Label: "Audit Logs", Path: "/audit-logs"},
	{Label: "Roles & Permissions", Path: "/roles"},
	{Label: "Settings", Path: "/settings"},
}
