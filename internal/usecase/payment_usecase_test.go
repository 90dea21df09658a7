package usecase_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	domainErrors "github.com/wekeepgrowing/semo-payment-gateway/internal/domain/errors"
	"github.com/wekeepgrowing/semo-payment-gateway/internal/domain/model"
	"github.com/wekeepgrowing/semo-payment-gateway/internal/usecase"
	apperrors "github.com/wekeepgrowing/semo-payment-gateway/pkg/errors"
)

var fixedNow = time.Date(2025, time.June, 15, 12, 0, 0, 0, time.UTC)

func testSimulator(success bool) *usecase.SettlementSimulator {
	return usecase.NewSettlementSimulator(usecase.SimulationConfig{
		TestMode:        true,
		ProcessingDelay: time.Millisecond,
		PaymentSuccess:  success,
	}, nil)
}

func validCard() *usecase.CardInput {
	return &usecase.CardInput{
		Number:      "4111 1111 1111 1111",
		ExpiryMonth: json.Number("12"),
		ExpiryYear:  json.Number("30"),
		CVV:         "123",
		HolderName:  "Jane Doe",
	}
}

func TestPaymentUsecase_CreatePayment(t *testing.T) {
	logger := zap.NewNop()
	ctx := context.Background()
	merchantID := uuid.New()
	order := &model.Order{ID: "order_X", MerchantID: merchantID, Amount: 50000, Currency: "INR", Status: model.OrderStatusCreated}

	newService := func(orders *MockOrderRepository, payments *MockPaymentRepository, success bool, opts ...usecase.PaymentOption) *usecase.PaymentUsecase {
		opts = append([]usecase.PaymentOption{usecase.WithClock(func() time.Time { return fixedNow })}, opts...)
		return usecase.NewPaymentUsecase(orders, payments, testSimulator(success), &sequentialIDs{}, logger, opts...)
	}

	t.Run("upi success", func(t *testing.T) {
		orders := new(MockOrderRepository)
		payments := new(MockPaymentRepository)
		publisher := new(MockEventPublisher)
		orders.On("GetByID", ctx, "order_X").Return(order, nil)

		var created *model.Payment
		payments.On("Create", ctx, mock.AnythingOfType("*model.Payment")).
			Run(func(args mock.Arguments) { created = args.Get(1).(*model.Payment) }).
			Return(nil)
		payments.On("UpdateStatus", mock.Anything, mock.AnythingOfType("string"), model.SettlementResult{Status: model.PaymentStatusSuccess}).
			Return(func(_ context.Context, _ string, _ model.SettlementResult) *model.Payment {
				p := *created
				p.Status = model.PaymentStatusSuccess
				return &p
			}, nil)
		publisher.On("PublishPaymentResult", mock.Anything, mock.AnythingOfType("*model.Payment")).Return(nil)

		service := newService(orders, payments, true, usecase.WithEventPublisher(publisher))
		payment, err := service.CreatePayment(ctx, usecase.CreatePaymentInput{
			OrderID: "order_X",
			Method:  model.PaymentMethodUPI,
			VPA:     "user@paytm",
		}, &merchantID)

		require.NoError(t, err)
		assert.Equal(t, model.PaymentStatusSuccess, payment.Status)
		assert.Regexp(t, `^pay_`, payment.ID)
		assert.Equal(t, int64(50000), payment.Amount)
		assert.Equal(t, "INR", payment.Currency)
		assert.Equal(t, merchantID, payment.MerchantID)
		require.NotNil(t, payment.VPA)
		assert.Equal(t, "user@paytm", *payment.VPA)
		assert.Nil(t, payment.CardNetwork)
		assert.Nil(t, payment.ErrorCode)

		require.NotNil(t, created)
		assert.Equal(t, model.PaymentStatusProcessing, created.Status)

		payments.AssertExpectations(t)
		publisher.AssertExpectations(t)
	})

	t.Run("card failure carries error fields", func(t *testing.T) {
		orders := new(MockOrderRepository)
		payments := new(MockPaymentRepository)
		orders.On("GetByID", ctx, "order_X").Return(order, nil)

		var created *model.Payment
		payments.On("Create", ctx, mock.AnythingOfType("*model.Payment")).
			Run(func(args mock.Arguments) { created = args.Get(1).(*model.Payment) }).
			Return(nil)
		payments.On("UpdateStatus", mock.Anything, mock.AnythingOfType("string"), mock.MatchedBy(func(r model.SettlementResult) bool {
			return r.Status == model.PaymentStatusFailed &&
				r.ErrorCode != nil && *r.ErrorCode == "PAYMENT_FAILED" &&
				r.ErrorDescription != nil && *r.ErrorDescription == "Payment processing failed"
		})).Return(func(_ context.Context, _ string, r model.SettlementResult) *model.Payment {
			p := *created
			p.Status = r.Status
			p.ErrorCode = r.ErrorCode
			p.ErrorDescription = r.ErrorDescription
			return &p
		}, nil)

		service := newService(orders, payments, false)
		payment, err := service.CreatePayment(ctx, usecase.CreatePaymentInput{
			OrderID: "order_X",
			Method:  model.PaymentMethodCard,
			Card:    validCard(),
		}, &merchantID)

		require.NoError(t, err)
		assert.Equal(t, model.PaymentStatusFailed, payment.Status)
		assert.Equal(t, "PAYMENT_FAILED", *payment.ErrorCode)
		assert.Equal(t, "visa", *created.CardNetwork)
		assert.Equal(t, "1111", *created.CardLast4)
		assert.Nil(t, created.VPA)
		payments.AssertExpectations(t)
	})

	t.Run("order owned by another merchant", func(t *testing.T) {
		orders := new(MockOrderRepository)
		payments := new(MockPaymentRepository)
		orders.On("GetByID", ctx, "order_X").Return(order, nil)

		other := uuid.New()
		_, err := newService(orders, payments, true).CreatePayment(ctx, usecase.CreatePaymentInput{
			OrderID: "order_X",
			Method:  model.PaymentMethodUPI,
			VPA:     "user@paytm",
		}, &other)

		assert.ErrorIs(t, err, domainErrors.ErrOrderNotFound)
		payments.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("missing order", func(t *testing.T) {
		orders := new(MockOrderRepository)
		payments := new(MockPaymentRepository)
		orders.On("GetByID", ctx, "order_nope").Return(nil, nil)

		_, err := newService(orders, payments, true).CreatePayment(ctx, usecase.CreatePaymentInput{
			OrderID: "order_nope",
			Method:  model.PaymentMethodUPI,
			VPA:     "user@paytm",
		}, nil)

		assert.ErrorIs(t, err, domainErrors.ErrOrderNotFound)
	})

	t.Run("validation failures create no row", func(t *testing.T) {
		expiredCard := validCard()
		expiredCard.ExpiryMonth = json.Number("5")
		expiredCard.ExpiryYear = json.Number("2025")

		badMonth := validCard()
		badMonth.ExpiryMonth = json.Number("13")

		badLuhn := validCard()
		badLuhn.Number = "4111111111111112"

		missingCVV := validCard()
		missingCVV.CVV = ""

		zeroMonth := validCard()
		zeroMonth.ExpiryMonth = json.Number("0")

		tests := []struct {
			name  string
			input usecase.CreatePaymentInput
			want  error
		}{
			{"empty vpa", usecase.CreatePaymentInput{Method: model.PaymentMethodUPI}, domainErrors.ErrInvalidVPA},
			{"malformed vpa", usecase.CreatePaymentInput{Method: model.PaymentMethodUPI, VPA: "user@@bank"}, domainErrors.ErrInvalidVPA},
			{"no card", usecase.CreatePaymentInput{Method: model.PaymentMethodCard}, domainErrors.ErrMissingCardDetails},
			{"missing cvv", usecase.CreatePaymentInput{Method: model.PaymentMethodCard, Card: missingCVV}, domainErrors.ErrMissingCardDetails},
			{"zero month", usecase.CreatePaymentInput{Method: model.PaymentMethodCard, Card: zeroMonth}, domainErrors.ErrMissingCardDetails},
			{"luhn failure", usecase.CreatePaymentInput{Method: model.PaymentMethodCard, Card: badLuhn}, domainErrors.ErrInvalidCard},
			{"expired", usecase.CreatePaymentInput{Method: model.PaymentMethodCard, Card: expiredCard}, domainErrors.ErrExpiredCard},
			{"month out of range", usecase.CreatePaymentInput{Method: model.PaymentMethodCard, Card: badMonth}, domainErrors.ErrExpiredCard},
			{"unknown method", usecase.CreatePaymentInput{Method: "netbanking"}, domainErrors.ErrInvalidMethod},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				orders := new(MockOrderRepository)
				payments := new(MockPaymentRepository)
				orders.On("GetByID", ctx, "order_X").Return(order, nil)

				tt.input.OrderID = "order_X"
				_, err := newService(orders, payments, true).CreatePayment(ctx, tt.input, &merchantID)

				assert.ErrorIs(t, err, tt.want)
				payments.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
			})
		}
	})

	t.Run("current month is still valid", func(t *testing.T) {
		orders := new(MockOrderRepository)
		payments := new(MockPaymentRepository)
		orders.On("GetByID", ctx, "order_X").Return(order, nil)
		payments.On("Create", ctx, mock.Anything).Return(nil)
		payments.On("UpdateStatus", mock.Anything, mock.Anything, mock.Anything).
			Return(&model.Payment{ID: "pay_1", Status: model.PaymentStatusSuccess}, nil)

		card := validCard()
		card.ExpiryMonth = json.Number("6")
		card.ExpiryYear = json.Number("2025")

		_, err := newService(orders, payments, true).CreatePayment(ctx, usecase.CreatePaymentInput{
			OrderID: "order_X",
			Method:  model.PaymentMethodCard,
			Card:    card,
		}, &merchantID)
		assert.NoError(t, err)
	})

	t.Run("cancelled request still settles", func(t *testing.T) {
		orders := new(MockOrderRepository)
		payments := new(MockPaymentRepository)
		reqCtx, cancel := context.WithCancel(ctx)

		orders.On("GetByID", reqCtx, "order_X").Return(order, nil)
		payments.On("Create", reqCtx, mock.Anything).Run(func(mock.Arguments) { cancel() }).Return(nil)
		payments.On("UpdateStatus", mock.MatchedBy(func(c context.Context) bool { return c.Err() == nil }), mock.Anything, mock.Anything).
			Return(&model.Payment{ID: "pay_1", Status: model.PaymentStatusSuccess}, nil)

		payment, err := newService(orders, payments, true).CreatePayment(reqCtx, usecase.CreatePaymentInput{
			OrderID: "order_X",
			Method:  model.PaymentMethodUPI,
			VPA:     "user@paytm",
		}, nil)

		require.NoError(t, err)
		assert.Equal(t, model.PaymentStatusSuccess, payment.Status)
		payments.AssertExpectations(t)
	})

	t.Run("terminal write failure is internal", func(t *testing.T) {
		orders := new(MockOrderRepository)
		payments := new(MockPaymentRepository)
		orders.On("GetByID", ctx, "order_X").Return(order, nil)
		payments.On("Create", ctx, mock.Anything).Return(nil)
		payments.On("UpdateStatus", mock.Anything, mock.Anything, mock.Anything).Return(nil, errors.New("deadlock"))

		_, err := newService(orders, payments, true).CreatePayment(ctx, usecase.CreatePaymentInput{
			OrderID: "order_X",
			Method:  model.PaymentMethodUPI,
			VPA:     "user@paytm",
		}, nil)

		assert.Equal(t, apperrors.ErrInternal, apperrors.CodeOf(err))
	})

	t.Run("publish failure does not fail payment", func(t *testing.T) {
		orders := new(MockOrderRepository)
		payments := new(MockPaymentRepository)
		publisher := new(MockEventPublisher)
		orders.On("GetByID", ctx, "order_X").Return(order, nil)
		payments.On("Create", ctx, mock.Anything).Return(nil)
		payments.On("UpdateStatus", mock.Anything, mock.Anything, mock.Anything).
			Return(&model.Payment{ID: "pay_1", Status: model.PaymentStatusSuccess}, nil)
		publisher.On("PublishPaymentResult", mock.Anything, mock.Anything).Return(errors.New("redis down"))

		payment, err := newService(orders, payments, true, usecase.WithEventPublisher(publisher)).
			CreatePaymentPublic(ctx, usecase.CreatePaymentInput{
				OrderID: "order_X",
				Method:  model.PaymentMethodUPI,
				VPA:     "user@paytm",
			})

		require.NoError(t, err)
		assert.Equal(t, "pay_1", payment.ID)
		publisher.AssertExpectations(t)
	})
}

func TestPaymentUsecase_GetPayment(t *testing.T) {
	logger := zap.NewNop()
	ctx := context.Background()

	payments := new(MockPaymentRepository)
	stored := &model.Payment{ID: "pay_1", Status: model.PaymentStatusSuccess}
	payments.On("GetByID", ctx, "pay_1").Return(stored, nil)
	payments.On("GetByID", ctx, "pay_missing").Return(nil, nil)
	service := usecase.NewPaymentUsecase(new(MockOrderRepository), payments, testSimulator(true), &sequentialIDs{}, logger)

	first, err := service.GetPayment(ctx, "pay_1")
	require.NoError(t, err)
	second, err := service.GetPayment(ctx, "pay_1")
	require.NoError(t, err)
	assert.Equal(t, first, second)

	_, err = service.GetPayment(ctx, "pay_missing")
	assert.ErrorIs(t, err, domainErrors.ErrPaymentNotFound)
}

func TestPaymentUsecase_ListPayments(t *testing.T) {
	logger := zap.NewNop()
	ctx := context.Background()
	merchantID := uuid.New()

	t.Run("empty list is not nil", func(t *testing.T) {
		payments := new(MockPaymentRepository)
		payments.On("ListByMerchant", ctx, merchantID).Return(nil, nil)
		service := usecase.NewPaymentUsecase(new(MockOrderRepository), payments, testSimulator(true), &sequentialIDs{}, logger)

		list, err := service.ListPayments(ctx, merchantID)
		require.NoError(t, err)
		assert.NotNil(t, list)
		assert.Empty(t, list)
	})

	t.Run("repository failure", func(t *testing.T) {
		payments := new(MockPaymentRepository)
		payments.On("ListByMerchant", ctx, merchantID).Return(nil, errors.New("timeout"))
		service := usecase.NewPaymentUsecase(new(MockOrderRepository), payments, testSimulator(true), &sequentialIDs{}, logger)

		_, err := service.ListPayments(ctx, merchantID)
		assert.Equal(t, apperrors.ErrInternal, apperrors.CodeOf(err))
	})
}
