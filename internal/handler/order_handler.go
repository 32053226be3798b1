package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/jamalparfum/storefront/internal/apiclient"
	"github.com/jamalparfum/storefront/internal/domain"
	"github.com/jamalparfum/storefront/internal/service"
)

// ProofUploadedMessage is shown after a receipt was accepted
const ProofUploadedMessage = "Bukti pembayaran berhasil diupload! Menunggu verifikasi admin."

// PaymentView is the model of the payment page
type PaymentView struct {
	Order  *domain.Order `json:"order"`
	Accept string        `json:"accept"`
	MaxMB  int64         `json:"max_mb"`
}

// OrderHandler serves the customer's orders and payment proof upload
type OrderHandler struct {
	pages   *Pages
	backend BackendFunc
	orders  service.OrderService
}

// NewOrderHandler creates a new order handler
func NewOrderHandler(pages *Pages, backend BackendFunc, orders service.OrderService) *OrderHandler {
	return &OrderHandler{pages: pages, backend: backend, orders: orders}
}

// List handles GET /orders
func (h *OrderHandler) List(c *gin.Context) {
	page := h.pages.New(c, "Pesanan Saya")

	orders, err := h.orders.List(c.Request.Context(), h.backend(c))
	if err != nil {
		if Handled(c, err) {
			return
		}
		page.Data = []domain.Order{}
		h.pages.Fail(c, statusFor(err), "orders", page, "Gagal memuat pesanan")
		return
	}

	page.Data = orders
	h.pages.Render(c, http.StatusOK, "orders", page)
}

// PaymentPage handles GET /orders/:id/payment
func (h *OrderHandler) PaymentPage(c *gin.Context) {
	page := h.pages.New(c, "Upload Bukti Pembayaran")

	order, err := h.orders.PaymentTarget(c.Request.Context(), h.backend(c), paramID(c, "id"))
	page.Data = paymentView(order)
	if err != nil {
		if Handled(c, err) {
			return
		}
		msg := service.OrderLoadFailedMessage
		if errors.Is(err, domain.ErrOrderNotPending) {
			msg = service.PaymentErrorMessage(err)
		}
		h.pages.Fail(c, statusFor(err), "payment", page, msg)
		return
	}

	h.pages.Render(c, http.StatusOK, "payment", page)
}

// UploadPayment handles POST /orders/:id/payment
func (h *OrderHandler) UploadPayment(c *gin.Context) {
	id := paramID(c, "id")

	var proof *apiclient.Upload
	if fh, err := c.FormFile("payment_proof"); err == nil {
		up, err := openUpload(fh)
		if err != nil {
			h.pages.Reject(c, http.StatusBadRequest, c.Request.URL.Path, service.ProofUploadFailedMessage)
			return
		}
		defer closeUploads([]apiclient.Upload{up})
		proof = &up
	}

	if err := h.orders.UploadProof(c.Request.Context(), h.backend(c), id, proof); err != nil {
		if Handled(c, err) {
			return
		}
		h.pages.Reject(c, statusFor(err), c.Request.URL.Path, service.PaymentErrorMessage(err))
		return
	}

	h.pages.Done(c, "/orders", ProofUploadedMessage, nil)
}

func paymentView(order *domain.Order) *PaymentView {
	p := service.PaymentProofPolicy
	return &PaymentView{
		Order:  order,
		Accept: strings.Join(p.Types, ","),
		MaxMB:  p.MaxSize >> 20,
	}
}
