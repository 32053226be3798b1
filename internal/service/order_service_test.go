package service

import (
	"bytes"
	"context"
	"net/http"
	"testing"

	"github.com/jamalparfum/storefront/internal/apiclient"
	"github.com/jamalparfum/storefront/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func receipt(contentType string, size int64) *apiclient.Upload {
	return &apiclient.Upload{
		Filename:    "bukti.jpg",
		ContentType: contentType,
		Size:        size,
		Data:        bytes.NewReader(make([]byte, 8)),
	}
}

func orderBackend(status domain.PaymentStatus) *MockBackend {
	return &MockBackend{
		GetOrderFunc: func(_ context.Context, id int64) (*domain.Order, error) {
			return &domain.Order{ID: id, PaymentStatus: status}, nil
		},
	}
}

func TestOrderService_PaymentTarget(t *testing.T) {
	ctx := context.Background()
	svc := NewOrderService(nil)

	order, err := svc.PaymentTarget(ctx, orderBackend(domain.PaymentPending), 5)
	require.NoError(t, err)
	assert.Equal(t, int64(5), order.ID)

	order, err = svc.PaymentTarget(ctx, orderBackend(domain.PaymentPaid), 5)
	assert.ErrorIs(t, err, domain.ErrOrderNotPending)
	require.NotNil(t, order, "order is returned so the page can show its status")

	_, err = svc.PaymentTarget(ctx, orderBackend(domain.PaymentPending), -1)
	assert.ErrorIs(t, err, domain.ErrInvalidOrderID)
}

func TestOrderService_UploadProof(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name       string
		status     domain.PaymentStatus
		proof      *apiclient.Upload
		wantErr    error
		wantMsg    string
		wantUpload bool
	}{
		{
			name:    "no file",
			status:  domain.PaymentPending,
			proof:   nil,
			wantErr: domain.ErrPaymentProofMissing,
			wantMsg: "Pilih file terlebih dahulu",
		},
		{
			name:    "pdf rejected",
			status:  domain.PaymentPending,
			proof:   receipt("application/pdf", 1024),
			wantErr: domain.ErrUnsupportedFileType,
			wantMsg: "Format file harus JPEG, PNG, atau JPG",
		},
		{
			name:    "gif rejected for receipts",
			status:  domain.PaymentPending,
			proof:   receipt("image/gif", 1024),
			wantErr: domain.ErrUnsupportedFileType,
			wantMsg: "Format file harus JPEG, PNG, atau JPG",
		},
		{
			name:    "over 2MB",
			status:  domain.PaymentPending,
			proof:   receipt("image/png", 2<<20+1),
			wantErr: domain.ErrFileTooLarge,
			wantMsg: "Ukuran file maksimal 2MB",
		},
		{
			name:    "already paid",
			status:  domain.PaymentPaid,
			proof:   receipt("image/jpeg", 1024),
			wantErr: domain.ErrOrderNotPending,
			wantMsg: "Order ini sudah dibayar atau diverifikasi",
		},
		{
			name:       "exactly 2MB jpeg",
			status:     domain.PaymentPending,
			proof:      receipt("image/jpeg", 2<<20),
			wantUpload: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			api := orderBackend(tt.status)

			err := NewOrderService(nil).UploadProof(ctx, api, 9, tt.proof)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Equal(t, tt.wantMsg, PaymentErrorMessage(err))
			} else {
				assert.NoError(t, err)
			}
			want := 0
			if tt.wantUpload {
				want = 1
			}
			assert.Equal(t, want, api.CallCount("UploadPaymentProof"))
		})
	}

	t.Run("backend failure message", func(t *testing.T) {
		api := orderBackend(domain.PaymentPending)
		api.UploadPaymentProofFunc = func(context.Context, int64, apiclient.Upload) error {
			return &apiclient.APIError{StatusCode: http.StatusInternalServerError}
		}

		err := NewOrderService(nil).UploadProof(ctx, api, 9, receipt("image/png", 10))

		require.Error(t, err)
		assert.Equal(t, ProofUploadFailedMessage, PaymentErrorMessage(err))
	})
}

func TestUploadPolicy_Partition(t *testing.T) {
	uploads := []apiclient.Upload{
		{Filename: "a.jpg", ContentType: "image/jpeg", Size: 100},
		{Filename: "b.pdf", ContentType: "application/pdf", Size: 100},
		{Filename: "c.webp", ContentType: "image/webp; charset=binary", Size: 100},
		{Filename: "d.png", ContentType: "image/png", Size: 5<<20 + 1},
	}

	valid, rejected := PerfumeImagePolicy.Partition(uploads)

	require.Len(t, valid, 2)
	assert.Equal(t, "a.jpg", valid[0].Filename)
	assert.Equal(t, "c.webp", valid[1].Filename)
	assert.Equal(t, []FileRejection{
		{Filename: "b.pdf", Reason: "format tidak didukung"},
		{Filename: "d.png", Reason: "ukuran melebihi 5MB"},
	}, rejected)
}
