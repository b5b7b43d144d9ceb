package apiclient

import "context"

// ListVendors fetches the vendor listing. When the backend is down and a
// fallback is wired, substitute data is returned instead of the error.
func (c *Client) ListVendors(ctx context.Context, token string) (*VendorList, error) {
	var out VendorList
	if err := c.getJSON(ctx, "/v1/vendors", token, &out); err != nil {
		if list, ok := c.fallbackVendors(err); ok {
			return list, nil
		}
		return nil, err
	}
	return &out, nil
}

// ListOrders fetches the order listing, with the same fallback behaviour
// as ListVendors.
func (c *Client) ListOrders(ctx context.Context, token string) (*OrderList, error) {
	var out OrderList
	if err := c.getJSON(ctx, "/v1/orders", token, &out); err != nil {
		if list, ok := c.fallbackOrders(err); ok {
			return list, nil
		}
		return nil, err
	}
	return &out, nil
}

// Dashboard fetches the headline metrics, with the same fallback
// behaviour as ListVendors.
func (c *Client) Dashboard(ctx context.Context, token string) (*DashboardMetrics, error) {
	var out DashboardMetrics
	if err := c.getJSON(ctx, "/v1/dashboard", token, &out); err != nil {
		if metrics, ok := c.fallbackDashboard(err); ok {
			return metrics, nil
		}
		return nil, err
	}
	return &out, nil
}

// substitutable reports whether err is the kind of failure the fallback
// may paper over. Auth and permission errors must always surface: the
// substitute data is for outages, not for hiding denied access.
func substitutable(err error) bool {
	if apiErr, ok := err.(*APIError); ok {
		return apiErr.StatusCode >= 500
	}
	if _, ok := err.(*OTPRequiredError); ok {
		return false
	}
	// Transport failures and an open breaker land here.
	return true
}

func (c *Client) fallbackVendors(err error) (*VendorList, bool) {
	if c.Fallback == nil || !substitutable(err) {
		return nil, false
	}
	vendors := c.Fallback.Vendors()
	return &VendorList{Vendors: vendors, Total: len(vendors)}, true
}

func (c *Client) fallbackOrders(err error) (*OrderList, bool) {
	if c.Fallback == nil || !substitutable(err) {
		return nil, false
	}
	orders := c.Fallback.Orders()
	return &OrderList{Orders: orders, Total: len(orders)}, true
}

func (c *Client) fallbackDashboard(err error) (*DashboardMetrics, bool) {
	if c.Fallback == nil || !substitutable(err) {
		return nil, false
	}
	metrics := c.Fallback.Dashboard()
	return &metrics, true
}
