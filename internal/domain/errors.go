package domain

import "errors"

// Domain errors
var (
	// Cart errors
	ErrEmptyCart      = errors.New("cart is empty")
	ErrInvalidProduct = errors.New("invalid product")

	// Order errors
	ErrOrderNotFound       = errors.New("order not found")
	ErrOrderNotPending     = errors.New("order is not awaiting payment")
	ErrInvalidOrderStatus  = errors.New("invalid order status")
	ErrInvalidOrderID      = errors.New("invalid order id")
	ErrPaymentProofMissing = errors.New("payment proof is required")

	// Perfume errors
	ErrPerfumeNotFound  = errors.New("perfume not found")
	ErrInvalidPerfumeID = errors.New("invalid perfume id")
	ErrNameRequired     = errors.New("name is required")
	ErrInvalidPrice     = errors.New("price must be a non-negative number")
	ErrInvalidStock     = errors.New("stock must be a non-negative integer")

	// Upload errors
	ErrUnsupportedFileType = errors.New("unsupported file type")
	ErrFileTooLarge        = errors.New("file is too large")

	// Auth errors
	ErrPasswordMismatch = errors.New("password confirmation does not match")
	ErrPasswordTooShort = errors.New("password is too short")
	ErrInvalidRole      = errors.New("invalid role")
	ErrInvalidUserID    = errors.New("invalid user id")
)

// IsNotFoundError checks if the error is a not found error
func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrOrderNotFound) ||
		errors.Is(err, ErrPerfumeNotFound)
}

// IsValidationError checks if the error is a validation error raised before any backend call
func IsValidationError(err error) bool {
	return errors.Is(err, ErrInvalidProduct) ||
		errors.Is(err, ErrInvalidOrderStatus) ||
		errors.Is(err, ErrInvalidOrderID) ||
		errors.Is(err, ErrPaymentProofMissing) ||
		errors.Is(err, ErrInvalidPerfumeID) ||
		errors.Is(err, ErrNameRequired) ||
		errors.Is(err, ErrInvalidPrice) ||
		errors.Is(err, ErrInvalidStock) ||
		errors.Is(err, ErrUnsupportedFileType) ||
		errors.Is(err, ErrFileTooLarge) ||
		errors.Is(err, ErrPasswordMismatch) ||
		errors.Is(err, ErrPasswordTooShort) ||
		errors.Is(err, ErrInvalidRole) ||
		errors.Is(err, ErrInvalidUserID)
}

// IsStateError checks if the error is caused by the order being in the wrong state
func IsStateError(err error) bool {
	return errors.Is(err, ErrOrderNotPending) ||
		errors.Is(err, ErrEmptyCart)
}
