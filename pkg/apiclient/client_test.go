package apiclient

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/dukaworks/console/internal/console/domain"
)

type staticFallback struct{}

func (staticFallback) Vendors() []Vendor {
	return []Vendor{{ID: "v_1", Name: "Fallback Traders", Status: "active"}}
}

func (staticFallback) Orders() []Order {
	return []Order{{ID: "o_1", VendorID: "v_1", Status: "pending"}}
}

func (staticFallback) Dashboard() DashboardMetrics {
	return DashboardMetrics{Vendors: 1, OrdersToday: 1}
}

func TestLogin(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/v1/auth/login", r.URL.Path)
		require.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var req LoginRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		require.Equal(t, "amina@duka.example", req.Email)

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"token": "tok_1",
			"refresh_token": "ref_1",
			"roles": ["Admin", {"code": "sub_admin"}],
			"user": {"id": "u_1", "email": "amina@duka.example", "name": "Amina"}
		}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	resp, err := c.Login(context.Background(), LoginRequest{
		Email:    "amina@duka.example",
		Password: "secret",
	})
	require.NoError(t, err)
	require.Equal(t, "tok_1", resp.Token)
	require.Equal(t, "ref_1", resp.RefreshToken)
	require.Len(t, resp.Roles, 2)
	require.Equal(t, "Admin", resp.Roles[0].Str)
	require.NotNil(t, resp.Roles[1].Obj)
	require.Equal(t, "sub_admin", resp.Roles[1].Obj.Code)
	require.Empty(t, resp.Permissions)
	require.Equal(t, "u_1", resp.User.ID)
}

func TestLoginInvalidCredentials(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ErrInvalidCredentials.WriteError(w)
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	_, err := c.Login(context.Background(), LoginRequest{Email: "x", Password: "y"})

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, ErrorCodeInvalidCredentials, apiErr.Code)
	require.Equal(t, http.StatusUnauthorized, apiErr.StatusCode)
}

func TestLoginOTPChallenge(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req LoginRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))

		if req.OTPCode == "" {
			(&OTPRequiredError{Methods: []string{"totp"}}).WriteError(w)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"token": "tok_2", "roles": ["SUPER_ADMIN"], "user": {"id": "u_2"}}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL)

	_, err := c.Login(context.Background(), LoginRequest{Email: "x", Password: "y"})
	var otpErr *OTPRequiredError
	require.ErrorAs(t, err, &otpErr)
	require.Equal(t, []string{"totp"}, otpErr.Methods)

	resp, err := c.Login(context.Background(), LoginRequest{Email: "x", Password: "y", OTPCode: "123456"})
	require.NoError(t, err)
	require.Equal(t, "tok_2", resp.Token)
}

func TestLogoutEndpointByRole(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		role     domain.RoleToken
		wantPath string
	}{
		{"super admin uses admin surface", domain.RoleSuperAdmin, "/v1/auth/admin/logout"},
		{"admin uses staff surface", domain.RoleAdmin, "/v1/auth/staff/logout"},
		{"vendor uses staff surface", domain.RoleVendor, "/v1/auth/staff/logout"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			var gotPath, gotAuth string
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				gotPath = r.URL.Path
				gotAuth = r.Header.Get("Authorization")
				w.WriteHeader(http.StatusNoContent)
			}))
			defer srv.Close()

			c := NewClient(srv.URL)
			require.NoError(t, c.Logout(context.Background(), tc.role, "tok_3"))
			require.Equal(t, tc.wantPath, gotPath)
			require.Equal(t, "Bearer tok_3", gotAuth)
		})
	}
}

func TestRefreshPermissions(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/v1/auth/permissions", r.URL.Path)
		require.Equal(t, "Bearer tok_4", r.Header.Get("Authorization"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"permissions": ["view_vendors", "manage_settings"]}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	perms, err := c.RefreshPermissions(context.Background(), "tok_4")
	require.NoError(t, err)
	require.Equal(t, []domain.Permission{"view_vendors", "manage_settings"}, perms)
}

func TestUnauthorizedFiresInterceptor(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ErrInvalidToken.WriteError(w)
	}))
	defer srv.Close()

	var fired int
	c := NewClient(srv.URL)
	c.OnUnauthorized = func() { fired++ }

	_, err := c.RefreshPermissions(context.Background(), "stale")
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, ErrorCodeInvalidToken, apiErr.Code)
	require.Equal(t, 1, fired)
}

func TestReadsFallBackOnOutage(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ErrServerError.WriteError(w)
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	c.Fallback = staticFallback{}

	vendors, err := c.ListVendors(context.Background(), "tok_5")
	require.NoError(t, err)
	require.Equal(t, 1, vendors.Total)
	require.Equal(t, "Fallback Traders", vendors.Vendors[0].Name)

	orders, err := c.ListOrders(context.Background(), "tok_5")
	require.NoError(t, err)
	require.Equal(t, "o_1", orders.Orders[0].ID)

	metrics, err := c.Dashboard(context.Background(), "tok_5")
	require.NoError(t, err)
	require.Equal(t, 1, metrics.OrdersToday)
}

func TestReadsDoNotFallBackOnDeniedAccess(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ErrAccessDenied.WriteError(w)
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	c.Fallback = staticFallback{}

	_, err := c.ListVendors(context.Background(), "tok_6")
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, ErrorCodeAccessDenied, apiErr.Code)
}

func TestBreakerShortCircuitsRepeatedOutages(t *testing.T) {
	t.Parallel()

	var calls int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		ErrServerError.WriteError(w)
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	c.Fallback = staticFallback{}

	for range 10 {
		_, err := c.ListVendors(context.Background(), "tok_7")
		require.NoError(t, err)
	}

	// The breaker opens after five consecutive failures; the remaining
	// reads never reach the backend.
	require.Equal(t, 5, calls)
}

func TestReadsHappyPath(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "Bearer tok_8", r.Header.Get("Authorization"))
		w.Header().Set("Content-Type", "application/json")

		switch r.URL.Path {
		case "/v1/vendors":
			_, _ = w.Write([]byte(`{"vendors": [{"id": "v_real", "name": "Real Traders"}], "total": 1}`))
		case "/v1/orders":
			_, _ = w.Write([]byte(`{"orders": [{"id": "o_real", "total_cents": 125000}], "total": 1}`))
		case "/v1/dashboard":
			_, _ = w.Write([]byte(`{"vendors": 42, "orders_today": 7, "revenue_cents": 99000}`))
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	c.Fallback = staticFallback{}

	vendors, err := c.ListVendors(context.Background(), "tok_8")
	require.NoError(t, err)
	require.Equal(t, "Real Traders", vendors.Vendors[0].Name)

	orders, err := c.ListOrders(context.Background(), "tok_8")
	require.NoError(t, err)
	require.Equal(t, int64(125000), orders.Orders[0].TotalCents)

	metrics, err := c.Dashboard(context.Background(), "tok_8")
	require.NoError(t, err)
	require.Equal(t, 42, metrics.Vendors)
	require.Equal(t, int64(99000), metrics.RevenueCents)
}

func TestNewClientDefaults(t *testing.T) {
	t.Parallel()

	c := NewClient("https://api.duka.example/")
	require.Equal(t, "https://api.duka.example", c.BaseURL)
	require.Equal(t, 10*time.Second, c.HTTPClient.Timeout)
}
