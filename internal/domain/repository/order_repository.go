package repository

import (
	"context"

	"github.com/wekeepgrowing/semo-payment-gateway/internal/domain/model"
)

// OrderRepository persists orders. GetByID returns (nil, nil) when the order does not exist.
type OrderRepository interface {
	Create(ctx context.Context, order *model.Order) error
	GetByID(ctx context.Context, id string) (*model.Order, error)
}
