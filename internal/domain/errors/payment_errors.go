package errors

import (
	apperrors "github.com/wekeepgrowing/semo-payment-gateway/pkg/errors"
)

// API error codes returned to merchants and checkout clients
const (
	CodeInvalidVPA    = "INVALID_VPA"
	CodeInvalidCard   = "INVALID_CARD"
	CodeExpiredCard   = "EXPIRED_CARD"
	CodePaymentFailed = "PAYMENT_FAILED"
)

// PaymentFailedDescription is stored on payments whose settlement was declined
const PaymentFailedDescription = "Payment processing failed"

var (
	ErrAmountTooSmall     = newError(apperrors.ErrInvalidArgument, apperrors.ReasonBadRequest, "amount must be at least 100")
	ErrOrderNotFound      = newError(apperrors.ErrNotFound, apperrors.ReasonNotFound, "Order not found")
	ErrPaymentNotFound    = newError(apperrors.ErrNotFound, apperrors.ReasonNotFound, "Payment not found")
	ErrMerchantNotFound   = newError(apperrors.ErrNotFound, apperrors.ReasonNotFound, "Test merchant not found")
	ErrInvalidVPA         = newError(apperrors.ErrInvalidArgument, CodeInvalidVPA, "VPA format invalid")
	ErrMissingCardDetails = newError(apperrors.ErrInvalidArgument, apperrors.ReasonBadRequest, "Missing card details")
	ErrInvalidCard        = newError(apperrors.ErrInvalidArgument, CodeInvalidCard, "Card validation failed")
	ErrExpiredCard        = newError(apperrors.ErrInvalidArgument, CodeExpiredCard, "Card expiry date invalid")
	ErrInvalidMethod      = newError(apperrors.ErrInvalidArgument, apperrors.ReasonBadRequest, "Invalid payment method")
	ErrInvalidCredentials = newError(apperrors.ErrUnauthenticated, apperrors.ReasonAuthentication, "Invalid API credentials")
)

// NewInternal wraps a storage or infrastructure failure
func NewInternal(message string, err error) *apperrors.AppError {
	return apperrors.NewAppError(apperrors.ErrInternal, message, err)
}

// NewBadRequest builds a BAD_REQUEST_ERROR with a custom description
func NewBadRequest(message string) *apperrors.AppError {
	return newError(apperrors.ErrInvalidArgument, apperrors.ReasonBadRequest, message)
}

func newError(kind, reason, message string) *apperrors.AppError {
	return apperrors.NewAppError(kind, message, nil).WithReason(reason)
}
