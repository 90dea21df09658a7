package repository

import (
	"context"

	"github.com/wekeepgrowing/semo-payment-gateway/internal/domain/model"
)

// MerchantRepository looks up merchants. Lookups return (nil, nil) when nothing matches.
type MerchantRepository interface {
	// GetByCredentials returns the active merchant owning the key/secret pair
	GetByCredentials(ctx context.Context, apiKey, apiSecret string) (*model.Merchant, error)
	GetByEmail(ctx context.Context, email string) (*model.Merchant, error)
	// Ping checks that the backing store is reachable
	Ping(ctx context.Context) error
}
