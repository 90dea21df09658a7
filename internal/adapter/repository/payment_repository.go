package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/wekeepgrowing/semo-payment-gateway/internal/domain/model"
	"github.com/wekeepgrowing/semo-payment-gateway/internal/domain/repository"
)

type paymentRepository struct {
	db     *gorm.DB
	logger *zap.Logger
}

// NewPaymentRepository creates a new payment repository
func NewPaymentRepository(db *gorm.DB, logger *zap.Logger) repository.PaymentRepository {
	return &paymentRepository{
		db:     db,
		logger: logger,
	}
}

// Create inserts a new payment row
func (r *paymentRepository) Create(ctx context.Context, payment *model.Payment) error {
	if err := r.db.WithContext(ctx).Create(payment).Error; err != nil {
		r.logger.Error("Failed to create payment",
			zap.String("payment_id", payment.ID),
			zap.String("order_id", payment.OrderID),
			zap.Error(err))
		return fmt.Errorf("failed to create payment: %w", err)
	}
	return nil
}

// GetByID retrieves a payment by id
func (r *paymentRepository) GetByID(ctx context.Context, id string) (*model.Payment, error) {
	var payment model.Payment

	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&payment).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		r.logger.Error("Failed to get payment",
			zap.String("payment_id", id),
			zap.Error(err))
		return nil, fmt.Errorf("failed to get payment: %w", err)
	}

	return &payment, nil
}

// UpdateStatus writes the terminal state in a single statement guarded on status = processing
func (r *paymentRepository) UpdateStatus(ctx context.Context, id string, result model.SettlementResult) (*model.Payment, error) {
	var payment model.Payment

	res := r.db.WithContext(ctx).
		Model(&payment).
		Clauses(clause.Returning{}).
		Where("id = ? AND status = ?", id, model.PaymentStatusProcessing).
		Updates(map[string]interface{}{
			"status":            result.Status,
			"error_code":        result.ErrorCode,
			"error_description": result.ErrorDescription,
			"updated_at":        time.Now(),
		})

	if res.Error != nil {
		r.logger.Error("Failed to update payment status",
			zap.String("payment_id", id),
			zap.String("status", string(result.Status)),
			zap.Error(res.Error))
		return nil, fmt.Errorf("failed to update payment status: %w", res.Error)
	}

	if res.RowsAffected == 0 {
		r.logger.Warn("No processing payment to update",
			zap.String("payment_id", id))
		return nil, nil
	}

	return &payment, nil
}

// ListByMerchant returns all payments of a merchant, newest first
func (r *paymentRepository) ListByMerchant(ctx context.Context, merchantID uuid.UUID) ([]*model.Payment, error) {
	var payments []*model.Payment

	err := r.db.WithContext(ctx).
		Where("merchant_id = ?", merchantID).
		Order("created_at DESC").
		Find(&payments).Error

	if err != nil {
		r.logger.Error("Failed to list payments",
			zap.String("merchant_id", merchantID.String()),
			zap.Error(err))
		return nil, fmt.Errorf("failed to list payments: %w", err)
	}

	return payments, nil
}
