package domain

import (
	"strings"

	"github.com/shopspring/decimal"
)

// PaymentStatus is the backend-enforced lifecycle stage of an order
type PaymentStatus string

const (
	PaymentPending   PaymentStatus = "pending"
	PaymentPaid      PaymentStatus = "paid"
	PaymentVerified  PaymentStatus = "verified"
	PaymentCancelled PaymentStatus = "cancelled"
)

// PaymentStatuses lists every status in lifecycle order
var PaymentStatuses = []PaymentStatus{PaymentPending, PaymentPaid, PaymentVerified, PaymentCancelled}

// Label returns the Indonesian label shown to customers and admins
func (s PaymentStatus) Label() string {
	switch s {
	case PaymentPending:
		return "Pending"
	case PaymentPaid:
		return "Menunggu Verifikasi"
	case PaymentVerified:
		return "Terverifikasi"
	case PaymentCancelled:
		return "Dibatalkan"
	default:
		return string(s)
	}
}

// Valid reports whether s is a known status
func (s PaymentStatus) Valid() bool {
	for _, known := range PaymentStatuses {
		if s == known {
			return true
		}
	}
	return false
}

// StatusFilter narrows the admin order list. The zero value and "all" mean no filter.
type StatusFilter string

const StatusAll StatusFilter = "all"

// ParseStatusFilter accepts all, an empty string, or any payment status
func ParseStatusFilter(s string) (StatusFilter, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" || s == string(StatusAll) {
		return StatusAll, nil
	}
	if !PaymentStatus(s).Valid() {
		return "", ErrInvalidOrderStatus
	}
	return StatusFilter(s), nil
}

// QueryValue returns the value for ?status=, empty when unfiltered
func (f StatusFilter) QueryValue() string {
	if f == "" || f == StatusAll {
		return ""
	}
	return string(f)
}

// OrderItem is one line of an order
type OrderItem struct {
	ID        int64           `json:"id"`
	PerfumeID int64           `json:"perfume_id"`
	Perfume   *Perfume        `json:"perfume,omitempty"`
	Quantity  int             `json:"quantity"`
	Price     decimal.Decimal `json:"price"`
}

// Subtotal is price times quantity
func (i OrderItem) Subtotal() decimal.Decimal {
	return i.Price.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// Order is a backend-owned order. TotalAmount is authoritative.
type Order struct {
	ID            int64           `json:"id"`
	User          *User           `json:"user,omitempty"`
	Items         []OrderItem     `json:"items"`
	TotalAmount   decimal.Decimal `json:"total_amount"`
	PaymentStatus PaymentStatus   `json:"payment_status"`
	PaymentProof  string          `json:"payment_proof,omitempty"`
	PaymentDate   *Time           `json:"payment_date,omitempty"`
	VerifiedAt    *Time           `json:"verified_at,omitempty"`
	VerifiedBy    *User           `json:"verified_by_user,omitempty"`
	CreatedAt     Time            `json:"created_at"`
}

// ProofURL is where the uploaded transfer receipt is served
func (o *Order) ProofURL(baseURL string) string {
	if o.PaymentProof == "" {
		return ""
	}
	img := PerfumeImage{Path: o.PaymentProof}
	return img.Src(baseURL)
}

// AwaitingPayment reports whether a payment proof may be uploaded
func (o *Order) AwaitingPayment() bool {
	return o.PaymentStatus == PaymentPending
}

// AwaitingVerification reports whether the admin may verify or reject the order
func (o *Order) AwaitingVerification() bool {
	return o.PaymentStatus == PaymentPaid
}

// ItemCount sums the item quantities
func (o *Order) ItemCount() int {
	n := 0
	for _, it := range o.Items {
		n += it.Quantity
	}
	return n
}

// OrderLine is one line of an order creation request
type OrderLine struct {
	PerfumeID int64 `json:"perfume_id"`
	Quantity  int   `json:"quantity"`
}

// CreateOrderRequest is the body of POST /api/orders
type CreateOrderRequest struct {
	Items []OrderLine `json:"items"`
}
