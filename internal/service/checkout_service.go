package service

import (
	"context"

	"github.com/jamalparfum/storefront/internal/apiclient"
	"github.com/jamalparfum/storefront/internal/domain"
	"github.com/jamalparfum/storefront/pkg/telemetry"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
)

// CheckoutFailedMessage is shown when the backend gives no usable message
const CheckoutFailedMessage = "Gagal membuat pesanan. Silakan coba lagi."

// CheckoutCart is the part of the cart checkout needs
type CheckoutCart interface {
	IsEmpty() bool
	OrderRequest() domain.CreateOrderRequest
	Clear(ctx context.Context) error
}

// CheckoutService defines order submission from the cart
type CheckoutService interface {
	// Checkout submits the cart as one order. An empty cart returns
	// domain.ErrEmptyCart without calling the backend. The cart is cleared only
	// after the backend accepted the order.
	Checkout(ctx context.Context, api OrderCreator, c CheckoutCart) (*domain.Order, error)
}

type checkoutService struct {
	logger *zap.Logger
}

// NewCheckoutService creates a new checkout service
func NewCheckoutService(logger *zap.Logger) CheckoutService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &checkoutService{logger: logger}
}

func (s *checkoutService) Checkout(ctx context.Context, api OrderCreator, c CheckoutCart) (*domain.Order, error) {
	if c.IsEmpty() {
		return nil, domain.ErrEmptyCart
	}

	ctx, span := telemetry.StartSpan(ctx, "service.checkout")
	defer span.End()

	req := c.OrderRequest()
	span.SetAttributes(attribute.Int("checkout.lines", len(req.Items)))

	order, err := api.CreateOrder(ctx, req)
	if err != nil {
		telemetry.SetSpanError(ctx, err)
		if !apiclient.IsUnauthorized(err) {
			s.logger.Warn("checkout rejected", zap.Int("lines", len(req.Items)), zap.Error(err))
		}
		return nil, err
	}

	if err := c.Clear(ctx); err != nil {
		// the order exists; a stale cart is the lesser problem
		s.logger.Error("order created but cart not cleared", zap.Int64("order_id", order.ID), zap.Error(err))
	}

	s.logger.Info("order created",
		zap.Int64("order_id", order.ID),
		zap.String("total_amount", order.TotalAmount.String()),
	)
	return order, nil
}

// CheckoutErrorMessage is shown when checkout fails
func CheckoutErrorMessage(err error) string {
	return apiclient.Message(err, CheckoutFailedMessage)
}
