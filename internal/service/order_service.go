package service

import (
	"context"
	"errors"

	"github.com/jamalparfum/storefront/internal/apiclient"
	"github.com/jamalparfum/storefront/internal/domain"
	"go.uber.org/zap"
)

const (
	OrderLoadFailedMessage   = "Gagal memuat detail pesanan"
	ProofUploadFailedMessage = "Gagal mengupload bukti pembayaran"
)

// OrderService defines the customer's order pages
type OrderService interface {
	// List returns the caller's orders
	List(ctx context.Context, api OrderAPI) ([]domain.Order, error)

	// PaymentTarget returns the order if it still awaits payment
	PaymentTarget(ctx context.Context, api OrderAPI, id int64) (*domain.Order, error)

	// UploadProof validates the receipt and attaches it to a pending order
	UploadProof(ctx context.Context, api OrderAPI, id int64, proof *apiclient.Upload) error
}

type orderService struct {
	logger *zap.Logger
}

// NewOrderService creates a new order service
func NewOrderService(logger *zap.Logger) OrderService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &orderService{logger: logger}
}

func (s *orderService) List(ctx context.Context, api OrderAPI) ([]domain.Order, error) {
	return api.ListOrders(ctx)
}

func (s *orderService) PaymentTarget(ctx context.Context, api OrderAPI, id int64) (*domain.Order, error) {
	if id <= 0 {
		return nil, domain.ErrInvalidOrderID
	}
	order, err := api.GetOrder(ctx, id)
	if err != nil {
		return nil, err
	}
	if !order.AwaitingPayment() {
		return order, domain.ErrOrderNotPending
	}
	return order, nil
}

func (s *orderService) UploadProof(ctx context.Context, api OrderAPI, id int64, proof *apiclient.Upload) error {
	if proof == nil || proof.Data == nil {
		return domain.ErrPaymentProofMissing
	}
	if err := PaymentProofPolicy.Check(*proof); err != nil {
		return err
	}
	if _, err := s.PaymentTarget(ctx, api, id); err != nil {
		return err
	}

	if err := api.UploadPaymentProof(ctx, id, *proof); err != nil {
		return err
	}
	s.logger.Info("payment proof uploaded", zap.Int64("order_id", id), zap.Int64("size", proof.Size))
	return nil
}

// PaymentErrorMessage is shown on the payment page
func PaymentErrorMessage(err error) string {
	switch {
	case errors.Is(err, domain.ErrPaymentProofMissing):
		return "Pilih file terlebih dahulu"
	case errors.Is(err, domain.ErrUnsupportedFileType):
		return "Format file harus JPEG, PNG, atau JPG"
	case errors.Is(err, domain.ErrFileTooLarge):
		return "Ukuran file maksimal 2MB"
	case errors.Is(err, domain.ErrOrderNotPending):
		return "Order ini sudah dibayar atau diverifikasi"
	case errors.Is(err, domain.ErrInvalidOrderID):
		return OrderLoadFailedMessage
	}
	return apiclient.Message(err, ProofUploadFailedMessage)
}
