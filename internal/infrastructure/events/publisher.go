package events

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/wekeepgrowing/semo-payment-gateway/internal/domain/model"
	"github.com/wekeepgrowing/semo-payment-gateway/internal/domain/repository"
	"github.com/wekeepgrowing/semo-payment-gateway/pkg/messaging"
)

// ChannelPrefix is prepended to every payment event channel, e.g. payments.success
const ChannelPrefix = "payments."

// PaymentEvent is the message published when a payment reaches a terminal state
type PaymentEvent struct {
	Type             string              `json:"type"`
	PaymentID        string              `json:"payment_id"`
	OrderID          string              `json:"order_id"`
	MerchantID       string              `json:"merchant_id"`
	Amount           int64               `json:"amount"`
	Currency         string              `json:"currency"`
	Method           model.PaymentMethod `json:"method"`
	Status           model.PaymentStatus `json:"status"`
	ErrorCode        *string             `json:"error_code,omitempty"`
	ErrorDescription *string             `json:"error_description,omitempty"`
	OccurredAt       time.Time           `json:"occurred_at"`
}

// NewPaymentEvent builds the event for a settled payment
func NewPaymentEvent(payment *model.Payment) PaymentEvent {
	return PaymentEvent{
		Type:             "payment." + string(payment.Status),
		PaymentID:        payment.ID,
		OrderID:          payment.OrderID,
		MerchantID:       payment.MerchantID.String(),
		Amount:           payment.Amount,
		Currency:         payment.Currency,
		Method:           payment.Method,
		Status:           payment.Status,
		ErrorCode:        payment.ErrorCode,
		ErrorDescription: payment.ErrorDescription,
		OccurredAt:       payment.UpdatedAt,
	}
}

// Channel returns the pub/sub channel for a payment status
func Channel(status model.PaymentStatus) string {
	return ChannelPrefix + string(status)
}

type redisPublisher struct {
	client messaging.RedisClient
	logger *zap.Logger
}

// NewPublisher creates a PaymentEventPublisher over a pub/sub client
func NewPublisher(client messaging.RedisClient, logger *zap.Logger) repository.PaymentEventPublisher {
	return &redisPublisher{
		client: client,
		logger: logger,
	}
}

// PublishPaymentResult publishes settled payments only; a processing payment is skipped.
func (p *redisPublisher) PublishPaymentResult(ctx context.Context, payment *model.Payment) error {
	if !payment.IsTerminal() {
		p.logger.Debug("Skipping event for unsettled payment", zap.String("payment_id", payment.ID))
		return nil
	}

	event := NewPaymentEvent(payment)
	channel := Channel(payment.Status)

	if err := p.client.Publish(ctx, channel, event); err != nil {
		return err
	}

	p.logger.Debug("Published payment event",
		zap.String("channel", channel),
		zap.String("payment_id", payment.ID))
	return nil
}
