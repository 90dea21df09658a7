package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/wekeepgrowing/semo-payment-gateway/internal/domain/model"
)

// PaymentRepository persists payment attempts.
// GetByID returns (nil, nil) when the payment does not exist.
type PaymentRepository interface {
	Create(ctx context.Context, payment *model.Payment) error
	GetByID(ctx context.Context, id string) (*model.Payment, error)
	// UpdateStatus applies the terminal result to a payment that is still processing
	// and returns the stored row. It returns (nil, nil) when no processing payment matched.
	UpdateStatus(ctx context.Context, id string, result model.SettlementResult) (*model.Payment, error)
	// ListByMerchant returns the merchant's payments newest first
	ListByMerchant(ctx context.Context, merchantID uuid.UUID) ([]*model.Payment, error)
}
