package repository

import (
	"context"

	"github.com/wekeepgrowing/semo-payment-gateway/internal/domain/model"
)

// PaymentEventPublisher announces payments that reached a terminal state
type PaymentEventPublisher interface {
	PublishPaymentResult(ctx context.Context, payment *model.Payment) error
}
