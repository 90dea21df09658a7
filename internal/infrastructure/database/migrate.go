package database

import (
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/wekeepgrowing/semo-payment-gateway/internal/domain/model"
)

// Migrate runs database migrations
func Migrate(db *gorm.DB, logger *zap.Logger) error {
	logger.Info("Running database migrations...")

	// Create extensions first
	logger.Info("Creating PostgreSQL extensions...")
	if err := createExtensions(db); err != nil {
		logger.Error("Failed to create extensions", zap.Error(err))
		return err
	}

	// Auto-migrate all models
	logger.Info("Running GORM auto-migrations...")
	err := db.AutoMigrate(
		&model.Merchant{},
		&model.Order{},
		&model.Payment{},
	)
	if err != nil {
		logger.Error("Failed to run migrations", zap.Error(err))
		return err
	}
	logger.Info("GORM auto-migrations completed successfully")

	logger.Info("Creating check constraints...")
	if err := createCheckConstraints(db, logger); err != nil {
		logger.Error("Failed to create check constraints", zap.Error(err))
		return err
	}

	// Create custom indexes that GORM doesn't handle automatically
	logger.Info("Creating custom indexes...")
	if err := createCustomIndexes(db); err != nil {
		logger.Error("Failed to create custom indexes", zap.Error(err))
		return err
	}

	logger.Info("Database migrations completed successfully")
	return nil
}

// createExtensions creates required PostgreSQL extensions
func createExtensions(db *gorm.DB) error {
	return db.Exec(`CREATE EXTENSION IF NOT EXISTS "uuid-ossp"`).Error
}

type checkConstraint struct {
	table      string
	name       string
	expression string
}

var checkConstraints = []checkConstraint{
	{"orders", "chk_orders_amount", "amount >= 100"},
	{"payments", "chk_payments_method", "method IN ('upi', 'card')"},
	{"payments", "chk_payments_status", "status IN ('processing', 'success', 'failed')"},
}

// createCheckConstraints adds each constraint once; PostgreSQL has no ADD CONSTRAINT IF NOT EXISTS
func createCheckConstraints(db *gorm.DB, logger *zap.Logger) error {
	for _, c := range checkConstraints {
		var exists bool
		if err := db.Raw(`SELECT EXISTS (SELECT 1 FROM pg_constraint WHERE conname = ?)`, c.name).Scan(&exists).Error; err != nil {
			return err
		}
		if exists {
			continue
		}

		if err := db.Exec(`ALTER TABLE ` + c.table + ` ADD CONSTRAINT ` + c.name + ` CHECK (` + c.expression + `)`).Error; err != nil {
			return err
		}
		logger.Info("Created check constraint", zap.String("table", c.table), zap.String("constraint", c.name))
	}
	return nil
}

// createCustomIndexes creates custom indexes that GORM doesn't handle automatically
func createCustomIndexes(db *gorm.DB) error {
	// Attempts stuck in processing are looked up by age
	return db.Exec(`CREATE INDEX IF NOT EXISTS idx_payments_processing ON payments (created_at) WHERE status = 'processing'`).Error
}
