package database

import (
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/wekeepgrowing/semo-payment-gateway/internal/domain/model"
)

// TestMerchant is the merchant inserted for local development and automated checks
var TestMerchant = model.Merchant{
	ID:        uuid.MustParse("550e8400-e29b-41d4-a716-446655440000"),
	Name:      "Test Merchant",
	Email:     "test@example.com",
	APIKey:    "key_test_abc123",
	APISecret: "secret_test_xyz789",
	IsActive:  true,
}

// SeedTestMerchant inserts TestMerchant unless a merchant with its email already exists
func SeedTestMerchant(db *gorm.DB, logger *zap.Logger) error {
	merchant := TestMerchant

	res := db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "email"}},
		DoNothing: true,
	}).Create(&merchant)
	if res.Error != nil {
		logger.Error("Failed to seed test merchant", zap.Error(res.Error))
		return res.Error
	}

	if res.RowsAffected > 0 {
		logger.Info("Seeded test merchant", zap.String("merchant_id", merchant.ID.String()))
	}
	return nil
}
