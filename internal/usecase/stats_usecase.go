package usecase

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	domainErrors "github.com/wekeepgrowing/semo-payment-gateway/internal/domain/errors"
	"github.com/wekeepgrowing/semo-payment-gateway/internal/domain/model"
	"github.com/wekeepgrowing/semo-payment-gateway/internal/domain/repository"
)

// MerchantStats summarizes a merchant's payments for the dashboard
type MerchantStats struct {
	TotalTransactions      int     `json:"total_transactions"`
	SuccessfulTransactions int     `json:"successful_transactions"`
	TotalAmount            int64   `json:"total_amount"`
	SuccessRate            float64 `json:"success_rate"`
}

type StatsUsecase struct {
	paymentRepo repository.PaymentRepository
	logger      *zap.Logger
}

func NewStatsUsecase(paymentRepo repository.PaymentRepository, logger *zap.Logger) *StatsUsecase {
	return &StatsUsecase{
		paymentRepo: paymentRepo,
		logger:      logger,
	}
}

// GetStats counts the merchant's payments. TotalAmount sums successful payments only and
// SuccessRate is a percentage rounded to two decimals.
func (u *StatsUsecase) GetStats(ctx context.Context, merchantID uuid.UUID) (*MerchantStats, error) {
	payments, err := u.paymentRepo.ListByMerchant(ctx, merchantID)
	if err != nil {
		return nil, domainErrors.NewInternal("failed to list payments", err)
	}

	stats := &MerchantStats{TotalTransactions: len(payments)}
	for _, p := range payments {
		if p.Status != model.PaymentStatusSuccess {
			continue
		}
		stats.SuccessfulTransactions++
		stats.TotalAmount += p.Amount
	}

	if stats.TotalTransactions > 0 {
		rate := decimal.NewFromInt(int64(stats.SuccessfulTransactions)).
			Mul(decimal.NewFromInt(100)).
			Div(decimal.NewFromInt(int64(stats.TotalTransactions))).
			Round(2)
		stats.SuccessRate = rate.InexactFloat64()
	}

	u.logger.Debug("Computed merchant stats",
		zap.String("merchant_id", merchantID.String()),
		zap.Int("total_transactions", stats.TotalTransactions),
	)

	return stats, nil
}
