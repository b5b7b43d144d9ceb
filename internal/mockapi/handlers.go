package mockapi

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"slices"
	"strings"
	"time"

	"github.com/pquerna/otp/totp"

	"github.com/dukaworks/console/internal/console/authz"
	"github.com/dukaworks/console/internal/console/domain"
	"github.com/dukaworks/console/pkg/apiclient"
	"github.com/dukaworks/console/pkg/cryptox"
	"github.com/dukaworks/console/pkg/httpx"
)

type ctxKey int

const accountKey ctxKey = iota

// fullPermissionCatalog is everything the offline backend knows about.
// Served for super admins so the console's post-rehydration refresh has
// something authoritative to replace local defaults with.
var fullPermissionCatalog = []domain.Permission{
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
	domain.PermManagePayments,
	domain.PermViewPromotions,
	domain.PermManagePromos,
	domain.PermViewSupport,
	domain.PermManageSupport,
	domain.PermViewAuditLogs,
	domain.PermManageSettings,
	domain.PermManageRolePerms,
}

func (r *Router) handleLogin(w http.ResponseWriter, req *http.Request) {
	var body apiclient.LoginRequest
	if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
		apiclient.NewAPIError(http.StatusBadRequest, apiclient.ErrorCodeInvalidRequest, "malformed request body").WriteError(w)
		return
	}

	acct, ok := r.accounts[strings.ToLower(strings.TrimSpace(body.Email))]
	if !ok {
		apiclient.ErrInvalidCredentials.WriteError(w)
		return
	}

	if err := cryptox.VerifyPassword(body.Password, acct.PasswordHash); err != nil {
		if errors.Is(err, cryptox.ErrPasswordMismatch) {
			apiclient.ErrInvalidCredentials.WriteError(w)
			return
		}
		r.logger.Error("password verification failed", slog.Any("err", err))
		apiclient.ErrServerError.WriteError(w)
		return
	}

	if acct.TOTPSecret != "" {
		if body.OTPCode == "" {
			(&apiclient.OTPRequiredError{Methods: []string{"totp"}}).WriteError(w)
			return
		}
		if !totp.Validate(body.OTPCode, acct.TOTPSecret) {
			apiclient.ErrInvalidCredentials.WriteError(w)
			return
		}
	}

	token, err := issueToken(r.secret, acct, time.Now())
	if err != nil {
		r.logger.Error("failed to issue token", slog.Any("err", err))
		apiclient.ErrServerError.WriteError(w)
		return
	}
	refresh, err := cryptox.GenerateToken(cryptox.TokenSize256)
	if err != nil {
		r.logger.Error("failed to generate refresh token", slog.Any("err", err))
		apiclient.ErrServerError.WriteError(w)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, apiclient.LoginResponse{
		Token:        token,
		RefreshToken: refresh,
		Roles:        acct.Roles,
		User: domain.User{
			ID:    acct.ID,
			Email: acct.Email,
			Name:  acct.Name,
		},
	})
}

// requireAuth verifies the bearer token and attaches the account to the
// request context.
func (r *Router) requireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		token := bearerToken(req)
		if token == "" || r.isRevoked(token) {
			apiclient.ErrInvalidToken.WriteError(w)
			return
		}

		sub, err := verifyToken(r.secret, token)
		if err != nil {
			apiclient.ErrInvalidToken.WriteError(w)
			return
		}

		acct := r.accountByID(sub)
		if acct == nil {
			apiclient.ErrInvalidToken.WriteError(w)
			return
		}

		next.ServeHTTP(w, req.WithContext(context.WithValue(req.Context(), accountKey, acct)))
	})
}

func (r *Router) accountByID(id string) *Account {
	for _, acct := range r.accounts {
		if acct.ID == id {
			return acct
		}
	}
	return nil
}

func accountFrom(req *http.Request) *Account {
	acct, _ := req.Context().Value(accountKey).(*Account)
	return acct
}

func bearerToken(req *http.Request) string {
	h := req.Header.Get("Authorization")
	token, ok := strings.CutPrefix(h, "Bearer ")
	if !ok {
		return ""
	}
	return strings.TrimSpace(token)
}

func (r *Router) handleStaffLogout(w http.ResponseWriter, req *http.Request) {
	r.revoke(bearerToken(req))
	w.WriteHeader(http.StatusNoContent)
}

// handleAdminLogout is the revocation surface reserved for super admin
// sessions, matching the production backend's endpoint split.
func (r *Router) handleAdminLogout(w http.ResponseWriter, req *http.Request) {
	if !isSuperAdmin(accountFrom(req)) {
		apiclient.ErrAccessDenied.WriteError(w)
		return
	}
	r.revoke(bearerToken(req))
	w.WriteHeader(http.StatusNoContent)
}

func (r *Router) handlePermissions(w http.ResponseWriter, req *http.Request) {
	acct := accountFrom(req)

	perms := fullPermissionCatalog
	if !isSuperAdmin(acct) {
		perms = authz.Resolve(nil, authz.Normalize(acct.Roles))
	}

	httpx.WriteJSON(w, http.StatusOK, apiclient.PermissionsResponse{Permissions: perms})
}

func isSuperAdmin(acct *Account) bool {
	if acct == nil {
		return false
	}
	return slices.Contains(authz.Normalize(acct.Roles), domain.RoleSuperAdmin)
}

func (r *Router) handleVendors(w http.ResponseWriter, _ *http.Request) {
	vendors := r.provider.Vendors()
	httpx.WriteJSON(w, http.StatusOK, apiclient.VendorList{Vendors: vendors, Total: len(vendors)})
}

func (r *Router) handleOrders(w http.ResponseWriter, _ *http.Request) {
	orders := r.provider.Orders()
	httpx.WriteJSON(w, http.StatusOK, apiclient.OrderList{Orders: orders, Total: len(orders)})
}

func (r *Router) handleDashboard(w http.ResponseWriter, _ *http.Request) {
	httpx.WriteJSON(w, http.StatusOK, r.provider.Dashboard())
}

func (r *Router) handleLivez(w http.ResponseWriter, _ *http.Request) {
	httpx.WriteJSON(w, http.StatusOK, map[string]string{
		"status": "ok",
		"uptime": time.Since(r.startTime).String(),
	})
}
