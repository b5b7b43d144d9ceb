package authz

import (
	"strings"

	"github.com/dukaworks/console/internal/console/domain"
)

// rolePermissionDefaults is the per-role fallback permission catalog,
// used only when a login response or rehydrated session carries no
// explicit permission list. SUPER_ADMIN is intentionally absent: the
// gate's override makes a permission list for it meaningless.
var rolePermissionDefaults = map[domain.RoleToken][]domain.Permission{
	domain.RoleAdmin: {
		domain.PermViewDashboard,
		domain.PermViewVendors,
		domain.PermManageVendors,
		domain.PermViewCustomers,
		domain.PermManageCustomers,
		domain.PermViewDelivery,
		domain.PermManageDelivery,
		domain.PermViewProducts,
		domain.PermManageProducts,
		domain.PermViewOrders,
		domain.PermManageOrders,
		domain.PermViewPayments,
		domain.PermViewPromotions,
		domain.PermManagePromos,
		domain.PermViewSupport,
		domain.PermManageSupport,
		domain.PermViewAuditLogs,
	},
	domain.RoleSubAdmin: {
		domain.PermViewDashboard,
		domain.PermViewVendors,
		domain.PermViewCustomers,
		domain.PermViewDelivery,
		domain.PermViewProducts,
		domain.PermViewOrders,
		domain.PermViewSupport,
	},
	domain.RoleVendor: {
		domain.PermViewDashboard,
		domain.PermViewProducts,
		domain.PermManageProducts,
		domain.PermViewOrders,
		domain.PermViewPayments,
		domain.PermViewPromotions,
	},
	domain.RoleDeliveryPartner: {
		domain.PermViewDashboard,
		domain.PermViewOrders,
	},
	domain.RoleCustomer: {
		domain.PermViewSupport,
	},
}

// DefaultPermissions returns the configured defaults for a role. Lookup
// is by exact canonical token first, then by the uppercased form; the
// second attempt keeps sessions persisted by pre-normalization builds of
// the console working.
func DefaultPermissions(role domain.RoleToken) []domain.Permission {
	if perms, ok := rolePermissionDefaults[role]; ok {
		return perms
	}
	if perms, ok := rolePermissionDefaults[domain.RoleToken(strings.ToUpper(string(role)))]; ok {
		return perms
	}
	return nil
}
