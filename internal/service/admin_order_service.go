package service

import (
	"context"

	"github.com/jamalparfum/storefront/internal/apiclient"
	"github.com/jamalparfum/storefront/internal/domain"
	"github.com/jamalparfum/storefront/pkg/telemetry"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
)

// AdminOrderService defines payment verification. Transitions are committed by
// the backend; the list is always re-read after a transition, never patched locally.
type AdminOrderService interface {
	// List returns orders, narrowed by status unless the filter is "all"
	List(ctx context.Context, api AdminOrderAPI, filter domain.StatusFilter) ([]domain.Order, error)

	// Verify accepts the payment of a paid order and returns the refreshed list
	Verify(ctx context.Context, api AdminOrderAPI, id int64, filter domain.StatusFilter) ([]domain.Order, error)

	// Reject cancels a paid order and returns the refreshed list
	Reject(ctx context.Context, api AdminOrderAPI, id int64, filter domain.StatusFilter) ([]domain.Order, error)
}

type adminOrderService struct {
	logger *zap.Logger
}

// NewAdminOrderService creates a new admin order service
func NewAdminOrderService(logger *zap.Logger) AdminOrderService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &adminOrderService{logger: logger}
}

func (s *adminOrderService) List(ctx context.Context, api AdminOrderAPI, filter domain.StatusFilter) ([]domain.Order, error) {
	return api.ListAdminOrders(ctx, filter)
}

func (s *adminOrderService) Verify(ctx context.Context, api AdminOrderAPI, id int64, filter domain.StatusFilter) ([]domain.Order, error) {
	return s.transition(ctx, "verify", id, filter, api, api.VerifyOrder)
}

func (s *adminOrderService) Reject(ctx context.Context, api AdminOrderAPI, id int64, filter domain.StatusFilter) ([]domain.Order, error) {
	return s.transition(ctx, "reject", id, filter, api, api.RejectOrder)
}

func (s *adminOrderService) transition(
	ctx context.Context,
	action string,
	id int64,
	filter domain.StatusFilter,
	api AdminOrderAPI,
	call func(context.Context, int64) error,
) ([]domain.Order, error) {
	if id <= 0 {
		return nil, domain.ErrInvalidOrderID
	}

	ctx, span := telemetry.StartSpan(ctx, "service.admin_order."+action)
	defer span.End()
	span.SetAttributes(attribute.Int64("order.id", id))

	if err := call(ctx, id); err != nil {
		telemetry.SetSpanError(ctx, err)
		return nil, err
	}
	s.logger.Info("order transition committed", zap.String("action", action), zap.Int64("order_id", id))

	return api.ListAdminOrders(ctx, filter)
}

const (
	OrdersLoadFailedMessage = "Gagal memuat pesanan"
	VerifiedMessage         = "Pembayaran berhasil diverifikasi!"
	RejectedMessage         = "Pembayaran ditolak. User dapat mengupload ulang bukti."
)

// TransitionErrorMessage is shown when verify or reject fails
func TransitionErrorMessage(action string, err error) string {
	fallback := "Gagal memverifikasi pembayaran"
	if action == "reject" {
		fallback = "Gagal menolak pembayaran"
	}
	return apiclient.Message(err, fallback)
}
