package mockapi

import (
	"context"
	"log/slog"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/pquerna/otp/totp"
	"github.com/stretchr/testify/require"

	"github.com/dukaworks/console/internal/console/domain"
	"github.com/dukaworks/console/pkg/apiclient"
	"github.com/dukaworks/console/pkg/cryptox"
	"github.com/dukaworks/console/pkg/mockdata"
)

func TestMain(m *testing.M) {
	dir, err := os.MkdirTemp("", "mockapi-test")
	if err != nil {
		panic(err)
	}
	cryptox.SetPepperPath(filepath.Join(dir, "pepper"))

	code := m.Run()
	_ = os.RemoveAll(dir)
	os.Exit(code)
}

func newTestServer(t *testing.T) (*httptest.Server, *apiclient.Client) {
	t.Helper()

	accounts, err := SeedAccounts()
	require.NoError(t, err)

	router := NewRouter(
		[]byte("test-signing-secret"),
		accounts,
		mockdata.NewProvider(),
		slog.New(slog.DiscardHandler),
	)
	router.ApplyRoutes()

	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)
	return srv, apiclient.NewClient(srv.URL)
}

func login(t *testing.T, c *apiclient.Client, email, password string) *apiclient.LoginResponse {
	t.Helper()

	resp, err := c.Login(context.Background(), apiclient.LoginRequest{Email: email, Password: password})
	require.NoError(t, err)
	return resp
}

func TestLoginIssuesToken(t *testing.T) {
	t.Parallel()
	_, c := newTestServer(t)

	resp := login(t, c, "admin@duka.example", "admin-password")
	require.NotEmpty(t, resp.Token)
	require.NotEmpty(t, resp.RefreshToken)
	require.Equal(t, "u_admin", resp.User.ID)
	require.Len(t, resp.Roles, 1)
	require.Equal(t, "Admin", resp.Roles[0].Str)
	require.Empty(t, resp.Permissions)
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	t.Parallel()
	_, c := newTestServer(t)

	for name, req := range map[string]apiclient.LoginRequest{
		"wrong password": {Email: "admin@duka.example", Password: "nope"},
		"unknown email":  {Email: "ghost@duka.example", Password: "admin-password"},
	} {
		t.Run(name, func(t *testing.T) {
			_, err := c.Login(context.Background(), req)
			var apiErr *apiclient.APIError
			require.ErrorAs(t, err, &apiErr)
			require.Equal(t, apiclient.ErrorCodeInvalidCredentials, apiErr.Code)
		})
	}
}

func TestLoginTOTPFlow(t *testing.T) {
	t.Parallel()
	_, c := newTestServer(t)

	_, err := c.Login(context.Background(), apiclient.LoginRequest{
		Email:    "root@duka.example",
		Password: "root-password",
	})
	var otpErr *apiclient.OTPRequiredError
	require.ErrorAs(t, err, &otpErr)
	require.Contains(t, otpErr.Methods, "totp")

	code, err := totp.GenerateCode(SeedTOTPSecret, time.Now())
	require.NoError(t, err)

	resp, err := c.Login(context.Background(), apiclient.LoginRequest{
		Email:    "root@duka.example",
		Password: "root-password",
		OTPCode:  code,
	})
	require.NoError(t, err)
	require.NotEmpty(t, resp.Token)
	require.NotNil(t, resp.Roles[0].Obj)
	require.Equal(t, "super_admin", resp.Roles[0].Obj.Code)
}

func TestLoginRejectsBadTOTPCode(t *testing.T) {
	t.Parallel()
	_, c := newTestServer(t)

	_, err := c.Login(context.Background(), apiclient.LoginRequest{
		Email:    "root@duka.example",
		Password: "root-password",
		OTPCode:  "000000",
	})
	var apiErr *apiclient.APIError
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, apiclient.ErrorCodeInvalidCredentials, apiErr.Code)
}

func TestPermissionsEndpoint(t *testing.T) {
	t.Parallel()
	_, c := newTestServer(t)

	t.Run("sub admin gets role defaults", func(t *testing.T) {
		resp := login(t, c, "ops@duka.example", "ops-password")
		perms, err := c.RefreshPermissions(context.Background(), resp.Token)
		require.NoError(t, err)
		require.Contains(t, perms, domain.PermViewVendors)
		require.NotContains(t, perms, domain.PermManageVendors)
	})

	t.Run("super admin gets the full catalog", func(t *testing.T) {
		code, err := totp.GenerateCode(SeedTOTPSecret, time.Now())
		require.NoError(t, err)
		resp, err := c.Login(context.Background(), apiclient.LoginRequest{
			Email:    "root@duka.example",
			Password: "root-password",
			OTPCode:  code,
		})
		require.NoError(t, err)

		perms, err := c.RefreshPermissions(context.Background(), resp.Token)
		require.NoError(t, err)
		require.Contains(t, perms, domain.PermManageRolePerms)
		require.Contains(t, perms, domain.PermManageSettings)
	})
}

func TestLogoutRevokesToken(t *testing.T) {
	t.Parallel()
	_, c := newTestServer(t)

	resp := login(t, c, "admin@duka.example", "admin-password")
	require.NoError(t, c.Logout(context.Background(), domain.RoleAdmin, resp.Token))

	_, err := c.RefreshPermissions(context.Background(), resp.Token)
	var apiErr *apiclient.APIError
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, apiclient.ErrorCodeInvalidToken, apiErr.Code)
}

func TestAdminLogoutSurfaceRejectsStaff(t *testing.T) {
	t.Parallel()
	_, c := newTestServer(t)

	resp := login(t, c, "vendor@duka.example", "vendor-password")
	err := c.Logout(context.Background(), domain.RoleSuperAdmin, resp.Token)

	var apiErr *apiclient.APIError
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, apiclient.ErrorCodeAccessDenied, apiErr.Code)
}

func TestReadsRequireAuthentication(t *testing.T) {
	t.Parallel()
	_, c := newTestServer(t)

	_, err := c.ListVendors(context.Background(), "not-a-token")
	var apiErr *apiclient.APIError
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, apiclient.ErrorCodeInvalidToken, apiErr.Code)
}

func TestReadsServeGeneratedData(t *testing.T) {
	t.Parallel()
	_, c := newTestServer(t)

	resp := login(t, c, "admin@duka.example", "admin-password")

	vendors, err := c.ListVendors(context.Background(), resp.Token)
	require.NoError(t, err)
	require.NotEmpty(t, vendors.Vendors)
	require.Equal(t, len(vendors.Vendors), vendors.Total)

	orders, err := c.ListOrders(context.Background(), resp.Token)
	require.NoError(t, err)
	require.NotEmpty(t, orders.Orders)

	metrics, err := c.Dashboard(context.Background(), resp.Token)
	require.NoError(t, err)
	require.Equal(t, len(vendors.Vendors), metrics.Vendors)
}
