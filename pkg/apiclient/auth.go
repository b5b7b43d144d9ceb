package apiclient

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/dukaworks/console/internal/console/domain"
)

// Login authenticates with the backend. When the account has a second
// factor enabled the first call fails with *OTPRequiredError and must be
// repeated with OTPCode set.
func (c *Client) Login(ctx context.Context, req LoginRequest) (*LoginResponse, error) {
	resp, err := c.doJSON(ctx, http.MethodPost, "/v1/auth/login", req)
	if err != nil {
		return nil, err
	}

	var out LoginResponse
	if err := decodeJSON(resp, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

// Logout revokes the session on the backend. The endpoint differs by
// account class: super admins are revoked on the admin surface, every
// other staff role on the staff surface.
func (c *Client) Logout(ctx context.Context, role domain.RoleToken, token string) error {
	path := "/v1/auth/staff/logout"
	if role == domain.RoleSuperAdmin {
		path = "/v1/auth/admin/logout"
	}

	_, err := c.doAuthBody(ctx, http.MethodPost, path, token, nil)
	return err
}

// RefreshPermissions fetches the authoritative permission set for the
// bearer. Used after rehydration to replace locally resolved defaults.
func (c *Client) RefreshPermissions(ctx context.Context, token string) ([]domain.Permission, error) {
	raw, err := c.doAuthBody(ctx, http.MethodGet, "/v1/auth/permissions", token, nil)
	if err != nil {
		return nil, err
	}

	var out PermissionsResponse
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}
	return out.Permissions, nil
}
