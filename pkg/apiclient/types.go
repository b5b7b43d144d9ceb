package apiclient

import (
	"time"

	"github.com/dukaworks/console/internal/console/domain"
)

// LoginRequest is the credential payload for POST /v1/auth/login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`

	// OTPCode completes a login that was answered with otp_required.
	OTPCode string `json:"otp_code,omitempty"`
}

// LoginResponse is the successful login payload. Roles may arrive as
// strings or objects depending on the backend endpoint version, hence
// domain.RawRole; Permissions may be absent entirely, in which case the
// console falls back to per-role defaults.
type LoginResponse struct {
	Token        string              `json:"token"`
	RefreshToken string              `json:"refresh_token,omitempty"`
	Roles        []domain.RawRole    `json:"roles,omitempty"`
	Permissions  []domain.Permission `json:"permissions,omitempty"`
	User         domain.User         `json:"user"`
}

// PermissionsResponse is the authoritative permission set for the
// current bearer, served by GET /v1/auth/permissions.
type PermissionsResponse struct {
	Permissions []domain.Permission `json:"permissions"`
}

// Vendor is one marketplace vendor row.
type Vendor struct {
	ID       string    `json:"id"`
	Name     string    `json:"name"`
	Email    string    `json:"email"`
	Status   string    `json:"status"`
	Products int       `json:"products"`
	JoinedAt time.Time `json:"joined_at"`
}

// Order is one marketplace order row.
type Order struct {
	ID         string    `json:"id"`
	VendorID   string    `json:"vendor_id"`
	Customer   string    `json:"customer"`
	Status     string    `json:"status"`
	TotalCents int64     `json:"total_cents"`
	PlacedAt   time.Time `json:"placed_at"`
}

// VendorList is the paginated vendor listing envelope.
type VendorList struct {
	Vendors []Vendor `json:"vendors"`
	Total   int      `json:"total"`
}

// OrderList is the paginated order listing envelope.
type OrderList struct {
	Orders []Order `json:"orders"`
	Total  int     `json:"total"`
}

// DashboardMetrics is the headline numbers widget payload.
type DashboardMetrics struct {
	Vendors      int   `json:"vendors"`
	Customers    int   `json:"customers"`
	OrdersToday  int   `json:"orders_today"`
	RevenueCents int64 `json:"revenue_cents"`
	OpenTickets  int   `json:"open_tickets"`
}
