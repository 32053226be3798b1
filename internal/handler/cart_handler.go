package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/jamalparfum/storefront/internal/cart"
	"github.com/jamalparfum/storefront/internal/domain"
	"github.com/jamalparfum/storefront/internal/service"
	"github.com/jamalparfum/storefront/pkg/middleware"
	"github.com/jamalparfum/storefront/pkg/telemetry"
	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel/attribute"
)

const (
	OrderCreatedMessage   = "Pesanan berhasil dibuat! Terima kasih telah berbelanja."
	EmptyCartMessage      = "Keranjang belanja kosong."
	OutOfStockMessage     = "Stok parfum ini habis."
	cartSaveFailedMessage = "Gagal menyimpan keranjang."
)

// CartView is the model of the cart page
type CartView struct {
	Items        []cart.Item     `json:"items"`
	TotalItems   int             `json:"total_items"`
	TotalPrice   decimal.Decimal `json:"total_price"`
	SubmissionID string          `json:"submission_id"`
}

// CartHandler handles the cart and checkout
type CartHandler struct {
	pages    *Pages
	backend  BackendFunc
	catalog  service.CatalogService
	checkout service.CheckoutService
}

// NewCartHandler creates a new cart handler
func NewCartHandler(pages *Pages, backend BackendFunc, catalog service.CatalogService, checkout service.CheckoutService) *CartHandler {
	return &CartHandler{pages: pages, backend: backend, catalog: catalog, checkout: checkout}
}

// Show handles GET /cart
func (h *CartHandler) Show(c *gin.Context) {
	page := h.pages.New(c, "Keranjang Belanja")
	page.Data = h.view(c)
	h.pages.Render(c, http.StatusOK, "cart", page)
}

// Add handles POST /cart/items. The product snapshot is taken from the backend.
func (h *CartHandler) Add(c *gin.Context) {
	back := c.DefaultPostForm("redirect", "/cart")
	id, _ := strconv.ParseInt(c.PostForm("perfume_id"), 10, 64)

	perfume, err := h.catalog.Get(c.Request.Context(), h.backend(c), id)
	if err != nil {
		if Handled(c, err) {
			return
		}
		h.pages.Reject(c, statusFor(err), back, "Parfum tidak ditemukan.")
		return
	}
	if !perfume.InStock() {
		h.pages.Reject(c, http.StatusConflict, back, OutOfStockMessage)
		return
	}

	store := h.pages.Cart(c)
	if err := store.Add(c.Request.Context(), cart.ProductFromPerfume(perfume)); err != nil {
		h.pages.Reject(c, statusFor(err), back, cartSaveFailedMessage)
		return
	}
	h.pages.Done(c, back, perfume.Name+" ditambahkan ke keranjang.", h.view(c))
}

// UpdateQuantity handles POST /cart/items/:id. A quantity below 1 removes the item.
func (h *CartHandler) UpdateQuantity(c *gin.Context) {
	qty, err := strconv.Atoi(c.PostForm("quantity"))
	if err != nil {
		h.pages.Reject(c, http.StatusUnprocessableEntity, "/cart", "Jumlah tidak valid.")
		return
	}

	if err := h.pages.Cart(c).SetQuantity(c.Request.Context(), paramID(c, "id"), qty); err != nil {
		h.pages.Reject(c, statusFor(err), "/cart", cartSaveFailedMessage)
		return
	}
	h.pages.Done(c, "/cart", "", h.view(c))
}

// Remove handles POST /cart/items/:id/remove
func (h *CartHandler) Remove(c *gin.Context) {
	if err := h.pages.Cart(c).Remove(c.Request.Context(), paramID(c, "id")); err != nil {
		h.pages.Reject(c, statusFor(err), "/cart", cartSaveFailedMessage)
		return
	}
	h.pages.Done(c, "/cart", "", h.view(c))
}

// Checkout handles POST /checkout. Failures re-render the cart with an error
// status so the submission guard lets the form be sent again.
func (h *CartHandler) Checkout(c *gin.Context) {
	ctx, span := telemetry.StartSpan(c.Request.Context(), "handler.cart.checkout")
	defer span.End()
	c.Request = c.Request.WithContext(ctx)

	if id, ok := middleware.GetSubmissionID(c); ok {
		span.SetAttributes(attribute.String("submission_id", id))
	}

	store := h.pages.Cart(c)
	order, err := h.checkout.Checkout(ctx, h.backend(c), store)
	if err != nil {
		telemetry.SetSpanError(ctx, err)
		if Handled(c, err) {
			return
		}
		page := h.pages.New(c, "Keranjang Belanja")
		page.Data = h.view(c)
		msg := service.CheckoutErrorMessage(err)
		if errors.Is(err, domain.ErrEmptyCart) {
			msg = EmptyCartMessage
		}
		h.pages.Fail(c, statusFor(err), "cart", page, msg)
		return
	}

	span.SetAttributes(attribute.Int64("order_id", order.ID))
	h.pages.Done(c, "/orders", OrderCreatedMessage, order)
}

func (h *CartHandler) view(c *gin.Context) *CartView {
	store := h.pages.Cart(c)
	return &CartView{
		Items:        store.Items(),
		TotalItems:   store.TotalItems(),
		TotalPrice:   store.TotalPrice(),
		SubmissionID: uuid.NewString(),
	}
}
