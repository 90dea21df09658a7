package database

import (
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/wekeepgrowing/semo-payment-gateway/internal/adapter/repository"
	domainRepo "github.com/wekeepgrowing/semo-payment-gateway/internal/domain/repository"
)

// Repositories holds all repository instances
type Repositories struct {
	Order    domainRepo.OrderRepository
	Payment  domainRepo.PaymentRepository
	Merchant domainRepo.MerchantRepository
}

// NewRepositories creates new repository instances with database connection
func NewRepositories(db *gorm.DB, logger *zap.Logger) *Repositories {
	return &Repositories{
		Order:    repository.NewOrderRepository(db, logger),
		Payment:  repository.NewPaymentRepository(db, logger),
		Merchant: repository.NewMerchantRepository(db, logger),
	}
}
