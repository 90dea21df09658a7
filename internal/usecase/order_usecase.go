package usecase

import (
	"bytes"
	"context"
	"encoding/json"
	"math"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/datatypes"

	domainErrors "github.com/wekeepgrowing/semo-payment-gateway/internal/domain/errors"
	"github.com/wekeepgrowing/semo-payment-gateway/internal/domain/model"
	"github.com/wekeepgrowing/semo-payment-gateway/internal/domain/repository"
	"github.com/wekeepgrowing/semo-payment-gateway/internal/infrastructure/idgen"
)

const publicOrderCachePrefix = "order:public:"

// CreateOrderInput carries the merchant-supplied order fields. Amount is the raw JSON value,
// parsed by orderAmount.
type CreateOrderInput struct {
	Amount   json.RawMessage `json:"amount"`
	Currency string          `json:"currency"`
	Receipt  *string         `json:"receipt"`
	Notes    json.RawMessage `json:"notes"`
}

type OrderUsecase struct {
	orderRepo repository.OrderRepository
	cacheRepo repository.CacheRepository
	ids       idgen.Generator
	cacheTTL  time.Duration
	logger    *zap.Logger
}

// NewOrderUsecase creates the order ledger. cacheRepo may be nil, which disables caching.
func NewOrderUsecase(
	orderRepo repository.OrderRepository,
	cacheRepo repository.CacheRepository,
	ids idgen.Generator,
	cacheTTL time.Duration,
	logger *zap.Logger,
) *OrderUsecase {
	return &OrderUsecase{
		orderRepo: orderRepo,
		cacheRepo: cacheRepo,
		ids:       ids,
		cacheTTL:  cacheTTL,
		logger:    logger,
	}
}

// CreateOrder validates and stores a new order for the merchant
func (u *OrderUsecase) CreateOrder(ctx context.Context, merchantID uuid.UUID, input CreateOrderInput) (*model.Order, error) {
	amount, ok := orderAmount(input.Amount)
	if !ok || amount < model.MinOrderAmount {
		return nil, domainErrors.ErrAmountTooSmall
	}

	currency := input.Currency
	if currency == "" {
		currency = model.DefaultCurrency
	}

	id, err := u.ids.NewID(idgen.OrderPrefix)
	if err != nil {
		return nil, domainErrors.NewInternal("failed to generate order id", err)
	}

	now := time.Now()
	order := &model.Order{
		ID:         id,
		MerchantID: merchantID,
		Amount:     amount,
		Currency:   currency,
		Receipt:    input.Receipt,
		Notes:      notesJSON(input.Notes),
		Status:     model.OrderStatusCreated,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	if err := u.orderRepo.Create(ctx, order); err != nil {
		return nil, domainErrors.NewInternal("failed to create order", err)
	}

	u.logger.Info("Order created",
		zap.String("order_id", order.ID),
		zap.String("merchant_id", merchantID.String()),
		zap.Int64("amount", order.Amount),
		zap.String("currency", order.Currency),
	)

	return order, nil
}

// GetOrder returns an order owned by the merchant
func (u *OrderUsecase) GetOrder(ctx context.Context, merchantID uuid.UUID, orderID string) (*model.Order, error) {
	order, err := u.orderRepo.GetByID(ctx, orderID)
	if err != nil {
		return nil, domainErrors.NewInternal("failed to get order", err)
	}
	if order == nil || order.MerchantID != merchantID {
		return nil, domainErrors.ErrOrderNotFound
	}
	return order, nil
}

// GetOrderPublic returns the checkout projection of any order
func (u *OrderUsecase) GetOrderPublic(ctx context.Context, orderID string) (*model.OrderPublic, error) {
	if cached := u.cachedPublicOrder(ctx, orderID); cached != nil {
		return cached, nil
	}

	order, err := u.orderRepo.GetByID(ctx, orderID)
	if err != nil {
		return nil, domainErrors.NewInternal("failed to get order", err)
	}
	if order == nil {
		return nil, domainErrors.ErrOrderNotFound
	}

	public := order.Public()
	u.cachePublicOrder(ctx, public)
	return public, nil
}

func (u *OrderUsecase) cachedPublicOrder(ctx context.Context, orderID string) *model.OrderPublic {
	if u.cacheRepo == nil {
		return nil
	}

	value, err := u.cacheRepo.Get(ctx, publicOrderCachePrefix+orderID)
	if err != nil {
		if !u.cacheRepo.IsNotFound(err) {
			u.logger.Warn("Failed to read order cache", zap.String("order_id", orderID), zap.Error(err))
		}
		return nil
	}

	var public model.OrderPublic
	if err := json.Unmarshal([]byte(value), &public); err != nil {
		u.logger.Warn("Discarding malformed order cache entry", zap.String("order_id", orderID), zap.Error(err))
		return nil
	}
	return &public
}

func (u *OrderUsecase) cachePublicOrder(ctx context.Context, public *model.OrderPublic) {
	if u.cacheRepo == nil {
		return
	}

	data, err := json.Marshal(public)
	if err != nil {
		return
	}
	if err := u.cacheRepo.Set(ctx, publicOrderCachePrefix+public.ID, string(data), u.cacheTTL); err != nil {
		u.logger.Warn("Failed to write order cache", zap.String("order_id", public.ID), zap.Error(err))
	}
}

// notesJSON keeps absent or null notes as SQL NULL
func notesJSON(raw json.RawMessage) datatypes.JSON {
	if len(raw) == 0 || string(raw) == "null" {
		return nil
	}
	return datatypes.JSON(raw)
}

// orderAmount accepts JSON numbers with an integral value, including forms like 100.0.
// Strings, fractions and out-of-range values are rejected.
func orderAmount(raw json.RawMessage) (int64, bool) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()

	var v interface{}
	if err := dec.Decode(&v); err != nil {
		return 0, false
	}
	n, ok := v.(json.Number)
	if !ok {
		return 0, false
	}

	if i, err := n.Int64(); err == nil {
		return i, true
	}
	f, err := n.Float64()
	if err != nil || f != math.Trunc(f) || math.Abs(f) >= 1<<63 {
		return 0, false
	}
	return int64(f), true
}
