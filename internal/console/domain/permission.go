package domain

// Permission is an opaque capability token gating a single console action
// or view. Set membership is the only operation the console performs on
// permissions; the backend owns the vocabulary, the constants below are
// the subset the console's own screens reference.
type Permission string

const (
	PermViewDashboard   Permission = "view_dashboard"
	PermViewVendors     Permission = "view_vendors"
	PermManageVendors   Permission = "manage_vendors"
	PermViewCustomers   Permission = "view_customers"
	PermManageCustomers Permission = "manage_customers"
	PermViewDelivery    Permission = "view_delivery_agents"
	PermManageDelivery  Permission = "manage_delivery_agents"
	PermViewProducts    Permission = "view_products"
	PermManageProducts  Permission = "manage_products"
	PermViewOrders      Permission = "view_orders"
	PermManageOrders    Permission = "manage_orders"
	PermViewPayments    Permission = "view_payments"
	PermManagePayments  Permission = "manage_payments"
	PermViewPromotions  Permission = "view_promotions"
	PermManagePromos    Permission = "manage_promotions"
	PermViewSupport     Permission = "view_support_tickets"
	PermManageSupport   Permission = "manage_support_tickets"
	PermViewAuditLogs   Permission = "view_audit_logs"
	PermManageSettings  Permission = "manage_settings"
	PermManageRolePerms Permission = "manage_role_permissions"
)

func (p Permission) String() string { return string(p) }
