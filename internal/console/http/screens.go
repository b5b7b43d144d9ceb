package http

import (
	"net/http"

	"github.com/dukaworks/console/internal/console/authz"
	"github.com/dukaworks/console/internal/console/session"
	"github.com/dukaworks/console/pkg/apiclient"
	"github.com/dukaworks/console/pkg/httpx"
)

// ScreensHandler serves guarded screen data. Each endpoint resolves the
// same route policy the navigation uses before touching the backend.
type ScreensHandler struct {
	Manager *session.Manager
	Gate    *authz.Gate
	API     *apiclient.Client
}

// HandleVendors godoc
//
//	@Summary		Vendors Screen
//	@Description	Vendor listing, guarded by the /vendors route policy.
//	@Tags			Screens
//	@Produce		json
//	@Success		200	{object}	apiclient.VendorList
//	@Failure		401	{object}	apiclient.APIError
//	@Failure		403	{object}	apiclient.APIError
//	@Router			/v1/vendors [get].
func (h *ScreensHandler) HandleVendors(w http.ResponseWriter, r *http.Request) {
	if !h.Gate.CanAccessRoute("/vendors") {
		apiclient.ErrAccessDenied.WriteError(w)
		return
	}

	list, err := h.API.ListVendors(r.Context(), h.Manager.Snapshot().Token)
	if err != nil {
		writeBackendError(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, list)
}

// HandleOrders godoc
//
//	@Summary		Orders Screen
//	@Description	Order listing, guarded by the /orders route policy.
//	@Tags			Screens
//	@Produce		json
//	@Success		200	{object}	apiclient.OrderList
//	@Failure		401	{object}	apiclient.APIError
//	@Failure		403	{object}	apiclient.APIError
//	@Router			/v1/orders [get].
func (h *ScreensHandler) HandleOrders(w http.ResponseWriter, r *http.Request) {
	if !h.Gate.CanAccessRoute("/orders") {
		apiclient.ErrAccessDenied.WriteError(w)
		return
	}

	list, err := h.API.ListOrders(r.Context(), h.Manager.Snapshot().Token)
	if err != nil {
		writeBackendError(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, list)
}

// HandleDashboard godoc
//
//	@Summary		Dashboard Screen
//	@Description	Headline metrics, guarded by the /dashboard route policy.
//	@Tags			Screens
//	@Produce		json
//	@Success		200	{object}	apiclient.DashboardMetrics
//	@Failure		401	{object}	apiclient.APIError
//	@Failure		403	{object}	apiclient.APIError
//	@Router			/v1/dashboard [get].
func (h *ScreensHandler) HandleDashboard(w http.ResponseWriter, r *http.Request) {
	if !h.Gate.CanAccessRoute("/dashboard") {
		apiclient.ErrAccessDenied.WriteError(w)
		return
	}

	metrics, err := h.API.Dashboard(r.Context(), h.Manager.Snapshot().Token)
	if err != nil {
		writeBackendError(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, metrics)
}
