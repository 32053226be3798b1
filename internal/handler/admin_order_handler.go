package handler

import (
	"context"
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"
	"github.com/jamalparfum/storefront/internal/domain"
	"github.com/jamalparfum/storefront/internal/service"
)

// StatusTab is one entry of the order status filter
type StatusTab struct {
	Value  string `json:"value"`
	Label  string `json:"label"`
	Active bool   `json:"active"`
}

// AdminOrdersView is the model of the admin order list
type AdminOrdersView struct {
	Orders []domain.Order `json:"orders"`
	Status string         `json:"status"`
	Tabs   []StatusTab    `json:"tabs"`
}

// AdminOrderHandler handles payment verification
type AdminOrderHandler struct {
	pages   *Pages
	backend BackendFunc
	orders  service.AdminOrderService
}

// NewAdminOrderHandler creates a new admin order handler
func NewAdminOrderHandler(pages *Pages, backend BackendFunc, orders service.AdminOrderService) *AdminOrderHandler {
	return &AdminOrderHandler{pages: pages, backend: backend, orders: orders}
}

// List handles GET /admin/orders?status=
func (h *AdminOrderHandler) List(c *gin.Context) {
	page := h.pages.New(c, "Kelola Pesanan")

	filter, err := domain.ParseStatusFilter(c.Query("status"))
	if err != nil {
		page.Data = ordersView(nil, domain.StatusAll)
		h.pages.Fail(c, http.StatusBadRequest, "admin_orders", page, "Status tidak dikenal.")
		return
	}

	orders, err := h.orders.List(c.Request.Context(), h.backend(c), filter)
	if err != nil {
		if Handled(c, err) {
			return
		}
		page.Data = ordersView(nil, filter)
		h.pages.Fail(c, statusFor(err), "admin_orders", page, service.OrdersLoadFailedMessage)
		return
	}

	page.Data = ordersView(orders, filter)
	h.pages.Render(c, http.StatusOK, "admin_orders", page)
}

// Verify handles POST /admin/orders/:id/verify
func (h *AdminOrderHandler) Verify(c *gin.Context) {
	h.transition(c, "verify", h.orders.Verify, service.VerifiedMessage)
}

// Reject handles POST /admin/orders/:id/reject
func (h *AdminOrderHandler) Reject(c *gin.Context) {
	h.transition(c, "reject", h.orders.Reject, service.RejectedMessage)
}

type transitionFunc func(ctx context.Context, api service.AdminOrderAPI, id int64, filter domain.StatusFilter) ([]domain.Order, error)

func (h *AdminOrderHandler) transition(c *gin.Context, action string, call transitionFunc, done string) {
	filter, err := domain.ParseStatusFilter(c.PostForm("status"))
	if err != nil {
		filter = domain.StatusAll
	}

	orders, err := call(c.Request.Context(), h.backend(c), paramID(c, "id"), filter)
	if err != nil {
		if Handled(c, err) {
			return
		}
		h.pages.Reject(c, statusFor(err), ordersLocation(filter), service.TransitionErrorMessage(action, err))
		return
	}

	page := h.pages.New(c, "Kelola Pesanan")
	page.Flash = done
	page.Data = ordersView(orders, filter)
	h.pages.Render(c, http.StatusOK, "admin_orders", page)
}

func ordersView(orders []domain.Order, filter domain.StatusFilter) *AdminOrdersView {
	if orders == nil {
		orders = []domain.Order{}
	}
	tabs := []StatusTab{{Value: string(domain.StatusAll), Label: "Semua", Active: filter == domain.StatusAll}}
	for _, s := range domain.PaymentStatuses {
		tabs = append(tabs, StatusTab{Value: string(s), Label: s.Label(), Active: string(filter) == string(s)})
	}
	return &AdminOrdersView{Orders: orders, Status: string(filter), Tabs: tabs}
}

func ordersLocation(filter domain.StatusFilter) string {
	if q := filter.QueryValue(); q != "" {
		return "/admin/orders?" + url.Values{"status": {q}}.Encode()
	}
	return "/admin/orders"
}
