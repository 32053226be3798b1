package service

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/jamalparfum/storefront/internal/apiclient"
	"github.com/jamalparfum/storefront/internal/cart"
	"github.com/jamalparfum/storefront/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func openCart(t *testing.T, products ...cart.Product) *cart.Store {
	t.Helper()
	store := cart.Open(context.Background(), cart.NewMemoryStorage(), nil)
	for _, p := range products {
		require.NoError(t, store.Add(context.Background(), p))
	}
	return store
}

type failingClearCart struct {
	*cart.Store
}

func (f failingClearCart) Clear(context.Context) error {
	return errors.New("storage unavailable")
}

func TestCheckoutService_Checkout(t *testing.T) {
	ctx := context.Background()
	eau := cart.Product{ID: 1, Name: "Eau", Price: decimal.NewFromInt(15000), Stock: 10}
	oud := cart.Product{ID: 2, Name: "Oud", Price: decimal.NewFromInt(30000), Stock: 3}

	t.Run("empty cart never reaches the backend", func(t *testing.T) {
		api := &MockBackend{}
		svc := NewCheckoutService(nil)

		order, err := svc.Checkout(ctx, api, openCart(t))

		assert.ErrorIs(t, err, domain.ErrEmptyCart)
		assert.Nil(t, order)
		assert.Zero(t, api.CallCount("CreateOrder"))
	})

	t.Run("success submits every line and clears the cart", func(t *testing.T) {
		var got domain.CreateOrderRequest
		api := &MockBackend{
			CreateOrderFunc: func(_ context.Context, req domain.CreateOrderRequest) (*domain.Order, error) {
				got = req
				return &domain.Order{ID: 42, TotalAmount: decimal.NewFromInt(60000), PaymentStatus: domain.PaymentPending}, nil
			},
		}
		store := openCart(t, eau, eau, oud)
		svc := NewCheckoutService(nil)

		order, err := svc.Checkout(ctx, api, store)

		require.NoError(t, err)
		assert.Equal(t, int64(42), order.ID)
		assert.Equal(t, []domain.OrderLine{
			{PerfumeID: 1, Quantity: 2},
			{PerfumeID: 2, Quantity: 1},
		}, got.Items)
		assert.True(t, store.IsEmpty())
	})

	t.Run("backend failure leaves the cart untouched", func(t *testing.T) {
		api := &MockBackend{
			CreateOrderFunc: func(context.Context, domain.CreateOrderRequest) (*domain.Order, error) {
				return nil, &apiclient.APIError{StatusCode: http.StatusUnprocessableEntity, Message: "Stok tidak cukup"}
			},
		}
		store := openCart(t, eau, oud)
		svc := NewCheckoutService(nil)

		order, err := svc.Checkout(ctx, api, store)

		require.Error(t, err)
		assert.Nil(t, order)
		assert.Equal(t, "Stok tidak cukup", CheckoutErrorMessage(err))
		assert.Equal(t, 2, store.Len())
		assert.Equal(t, 2, store.TotalItems())
	})

	t.Run("unauthorized passes through", func(t *testing.T) {
		api := &MockBackend{
			CreateOrderFunc: func(context.Context, domain.CreateOrderRequest) (*domain.Order, error) {
				return nil, &apiclient.APIError{StatusCode: http.StatusUnauthorized}
			},
		}
		store := openCart(t, eau)

		_, err := NewCheckoutService(nil).Checkout(ctx, api, store)

		assert.True(t, apiclient.IsUnauthorized(err))
		assert.False(t, store.IsEmpty())
	})

	t.Run("clear failure still reports the order", func(t *testing.T) {
		core, logs := observer.New(zap.InfoLevel)
		api := &MockBackend{}

		order, err := NewCheckoutService(zap.New(core)).Checkout(ctx, api, failingClearCart{openCart(t, eau)})

		require.NoError(t, err)
		assert.NotNil(t, order)
		assert.Equal(t, 1, logs.FilterMessage("order created but cart not cleared").Len())
	})
}

func TestCheckoutErrorMessage(t *testing.T) {
	assert.Equal(t, CheckoutFailedMessage, CheckoutErrorMessage(errors.New("dial tcp: refused")))
	assert.Equal(t, CheckoutFailedMessage, CheckoutErrorMessage(&apiclient.APIError{StatusCode: 500}))
}
