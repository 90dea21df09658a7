package repository

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/wekeepgrowing/semo-payment-gateway/internal/domain/model"
	"github.com/wekeepgrowing/semo-payment-gateway/internal/domain/repository"
)

type merchantRepository struct {
	db     *gorm.DB
	logger *zap.Logger
}

// NewMerchantRepository creates a new merchant repository
func NewMerchantRepository(db *gorm.DB, logger *zap.Logger) repository.MerchantRepository {
	return &merchantRepository{
		db:     db,
		logger: logger,
	}
}

// GetByCredentials finds an active merchant by API key and secret
func (r *merchantRepository) GetByCredentials(ctx context.Context, apiKey, apiSecret string) (*model.Merchant, error) {
	var merchant model.Merchant

	err := r.db.WithContext(ctx).
		Where("api_key = ? AND api_secret = ? AND is_active = ?", apiKey, apiSecret, true).
		First(&merchant).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		r.logger.Error("Failed to get merchant by credentials", zap.Error(err))
		return nil, fmt.Errorf("failed to get merchant: %w", err)
	}

	return &merchant, nil
}

// GetByEmail finds a merchant by email
func (r *merchantRepository) GetByEmail(ctx context.Context, email string) (*model.Merchant, error) {
	var merchant model.Merchant

	err := r.db.WithContext(ctx).
		Where("email = ?", email).
		First(&merchant).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		r.logger.Error("Failed to get merchant by email",
			zap.String("email", email),
			zap.Error(err))
		return nil, fmt.Errorf("failed to get merchant: %w", err)
	}

	return &merchant, nil
}

// Ping checks the database connection
func (r *merchantRepository) Ping(ctx context.Context) error {
	sqlDB, err := r.db.DB()
	if err != nil {
		return fmt.Errorf("failed to get underlying SQL database: %w", err)
	}
	return sqlDB.PingContext(ctx)
}
