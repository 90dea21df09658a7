package usecase

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"

	domainErrors "github.com/wekeepgrowing/semo-payment-gateway/internal/domain/errors"
	"github.com/wekeepgrowing/semo-payment-gateway/internal/domain/instrument"
	"github.com/wekeepgrowing/semo-payment-gateway/internal/domain/model"
	"github.com/wekeepgrowing/semo-payment-gateway/internal/domain/repository"
	"github.com/wekeepgrowing/semo-payment-gateway/internal/infrastructure/idgen"
)

// CardInput is the raw card payload. Expiry fields accept JSON numbers or numeric strings.
type CardInput struct {
	Number      string      `json:"number" validate:"required"`
	ExpiryMonth json.Number `json:"expiry_month" validate:"required,ne=0"`
	ExpiryYear  json.Number `json:"expiry_year" validate:"required,ne=0"`
	CVV         string      `json:"cvv" validate:"required"`
	HolderName  string      `json:"holder_name" validate:"required"`
}

// CreatePaymentInput is a payment request against an existing order
type CreatePaymentInput struct {
	OrderID string              `json:"order_id"`
	Method  model.PaymentMethod `json:"method"`
	VPA     string              `json:"vpa"`
	Card    *CardInput          `json:"card"`
}

// instrumentDetails is the validated metadata stored on a payment row
type instrumentDetails struct {
	vpa         *string
	cardNetwork *string
	cardLast4   *string
}

type PaymentUsecase struct {
	orderRepo   repository.OrderRepository
	paymentRepo repository.PaymentRepository
	publisher   repository.PaymentEventPublisher
	simulator   *SettlementSimulator
	ids         idgen.Generator
	validate    *validator.Validate
	now         func() time.Time
	logger      *zap.Logger
}

// PaymentOption customizes a PaymentUsecase
type PaymentOption func(*PaymentUsecase)

// WithClock overrides the clock used for card expiry checks
func WithClock(now func() time.Time) PaymentOption {
	return func(u *PaymentUsecase) {
		u.now = now
	}
}

// WithEventPublisher announces terminal payments through publisher
func WithEventPublisher(publisher repository.PaymentEventPublisher) PaymentOption {
	return func(u *PaymentUsecase) {
		u.publisher = publisher
	}
}

func NewPaymentUsecase(
	orderRepo repository.OrderRepository,
	paymentRepo repository.PaymentRepository,
	simulator *SettlementSimulator,
	ids idgen.Generator,
	logger *zap.Logger,
	opts ...PaymentOption,
) *PaymentUsecase {
	u := &PaymentUsecase{
		orderRepo:   orderRepo,
		paymentRepo: paymentRepo,
		simulator:   simulator,
		ids:         ids,
		validate:    validator.New(),
		now:         time.Now,
		logger:      logger,
	}
	for _, opt := range opts {
		opt(u)
	}
	return u
}

// CreatePayment validates the instrument, records a processing payment and blocks until
// the simulated settlement has written its terminal state. When callerMerchantID is set
// the order must belong to that merchant.
func (u *PaymentUsecase) CreatePayment(ctx context.Context, input CreatePaymentInput, callerMerchantID *uuid.UUID) (*model.Payment, error) {
	order, err := u.orderRepo.GetByID(ctx, input.OrderID)
	if err != nil {
		return nil, domainErrors.NewInternal("failed to get order", err)
	}
	if order == nil || (callerMerchantID != nil && order.MerchantID != *callerMerchantID) {
		return nil, domainErrors.ErrOrderNotFound
	}

	details, err := u.validateInstrument(input)
	if err != nil {
		return nil, err
	}

	id, err := u.ids.NewID(idgen.PaymentPrefix)
	if err != nil {
		return nil, domainErrors.NewInternal("failed to generate payment id", err)
	}

	now := time.Now()
	payment := &model.Payment{
		ID:          id,
		OrderID:     order.ID,
		MerchantID:  order.MerchantID,
		Amount:      order.Amount,
		Currency:    order.Currency,
		Method:      input.Method,
		Status:      model.PaymentStatusProcessing,
		VPA:         details.vpa,
		CardNetwork: details.cardNetwork,
		CardLast4:   details.cardLast4,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := u.paymentRepo.Create(ctx, payment); err != nil {
		return nil, domainErrors.NewInternal("failed to create payment", err)
	}

	settlement := u.simulator.Decide(input.Method)

	u.logger.Info("Payment processing",
		zap.String("payment_id", payment.ID),
		zap.String("order_id", order.ID),
		zap.String("merchant_id", order.MerchantID.String()),
		zap.String("method", string(input.Method)),
		zap.Duration("delay", settlement.Delay),
	)

	return u.settle(ctx, payment.ID, settlement)
}

// CreatePaymentPublic creates a payment on behalf of the order's merchant
func (u *PaymentUsecase) CreatePaymentPublic(ctx context.Context, input CreatePaymentInput) (*model.Payment, error) {
	return u.CreatePayment(ctx, input, nil)
}

// GetPayment returns a payment by id
func (u *PaymentUsecase) GetPayment(ctx context.Context, paymentID string) (*model.Payment, error) {
	payment, err := u.paymentRepo.GetByID(ctx, paymentID)
	if err != nil {
		return nil, domainErrors.NewInternal("failed to get payment", err)
	}
	if payment == nil {
		return nil, domainErrors.ErrPaymentNotFound
	}
	return payment, nil
}

// ListPayments returns the merchant's payments newest first
func (u *PaymentUsecase) ListPayments(ctx context.Context, merchantID uuid.UUID) ([]*model.Payment, error) {
	payments, err := u.paymentRepo.ListByMerchant(ctx, merchantID)
	if err != nil {
		return nil, domainErrors.NewInternal("failed to list payments", err)
	}
	if payments == nil {
		payments = []*model.Payment{}
	}
	return payments, nil
}

func (u *PaymentUsecase) validateInstrument(input CreatePaymentInput) (instrumentDetails, error) {
	switch input.Method {
	case model.PaymentMethodUPI:
		if input.VPA == "" || !instrument.ValidateVPA(input.VPA) {
			return instrumentDetails{}, domainErrors.ErrInvalidVPA
		}
		vpa := input.VPA
		return instrumentDetails{vpa: &vpa}, nil

	case model.PaymentMethodCard:
		card := input.Card
		if card == nil || u.validate.Struct(card) != nil {
			return instrumentDetails{}, domainErrors.ErrMissingCardDetails
		}
		if !instrument.ValidateLuhn(card.Number) {
			return instrumentDetails{}, domainErrors.ErrInvalidCard
		}

		month, monthOK := expiryValue(card.ExpiryMonth)
		year, yearOK := expiryValue(card.ExpiryYear)
		if !monthOK || !yearOK || !instrument.ValidateExpiry(month, year, u.now()) {
			return instrumentDetails{}, domainErrors.ErrExpiredCard
		}

		network := string(instrument.ClassifyNetwork(card.Number))
		last4 := instrument.ExtractLast4(card.Number)
		return instrumentDetails{cardNetwork: &network, cardLast4: &last4}, nil

	default:
		return instrumentDetails{}, domainErrors.ErrInvalidMethod
	}
}

// settle schedules the terminal write after the settlement delay and waits for it.
// The write runs detached from request cancellation so a started attempt always finishes.
func (u *PaymentUsecase) settle(ctx context.Context, paymentID string, settlement Settlement) (*model.Payment, error) {
	type outcome struct {
		payment *model.Payment
		err     error
	}

	detached := context.WithoutCancel(ctx)
	done := make(chan outcome, 1)

	time.AfterFunc(settlement.Delay, func() {
		payment, err := u.finalize(detached, paymentID, settlement.Success)
		done <- outcome{payment: payment, err: err}
	})

	res := <-done
	return res.payment, res.err
}

func (u *PaymentUsecase) finalize(ctx context.Context, paymentID string, success bool) (*model.Payment, error) {
	result := model.SettlementResult{Status: model.PaymentStatusSuccess}
	if !success {
		code := domainErrors.CodePaymentFailed
		description := domainErrors.PaymentFailedDescription
		result = model.SettlementResult{
			Status:           model.PaymentStatusFailed,
			ErrorCode:        &code,
			ErrorDescription: &description,
		}
	}

	payment, err := u.paymentRepo.UpdateStatus(ctx, paymentID, result)
	if err != nil {
		u.logger.Error("Failed to write payment result",
			zap.String("payment_id", paymentID),
			zap.String("status", string(result.Status)),
			zap.Error(err))
		return nil, domainErrors.NewInternal("failed to update payment", err)
	}
	if payment == nil {
		return nil, domainErrors.NewInternal("payment is no longer processing", nil)
	}

	u.logger.Info("Payment settled",
		zap.String("payment_id", payment.ID),
		zap.String("order_id", payment.OrderID),
		zap.String("status", string(payment.Status)),
	)

	if u.publisher != nil {
		if err := u.publisher.PublishPaymentResult(ctx, payment); err != nil {
			u.logger.Warn("Failed to publish payment event",
				zap.String("payment_id", payment.ID),
				zap.Error(err))
		}
	}

	return payment, nil
}

// expiryValue parses an expiry field the way lenient integer parsing does: leading
// whitespace is ignored and any fractional part is truncated.
func expiryValue(n json.Number) (int, bool) {
	s := strings.TrimSpace(n.String())
	if v, err := json.Number(s).Int64(); err == nil {
		return int(v), true
	}
	if f, err := json.Number(s).Float64(); err == nil {
		return int(f), true
	}
	return 0, false
}
