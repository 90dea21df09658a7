package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// OrderStatus is the lifecycle state of an order
type OrderStatus string

const (
	OrderStatusCreated OrderStatus = "created"
)

const (
	// DefaultCurrency is applied when an order is created without a currency
	DefaultCurrency = "INR"
	// MinOrderAmount is the smallest accepted order amount in minor units
	MinOrderAmount int64 = 100
)

// Order represents a payable intent created by a merchant
type Order struct {
	ID         string         `gorm:"primaryKey;size:64" json:"id"`
	MerchantID uuid.UUID      `gorm:"type:uuid;not null;index" json:"merchant_id"`
	Amount     int64          `gorm:"not null" json:"amount"`
	Currency   string         `gorm:"size:3;not null;default:'INR'" json:"currency"`
	Receipt    *string        `gorm:"size:255" json:"receipt"`
	Notes      datatypes.JSON `gorm:"type:jsonb" json:"notes"`
	Status     OrderStatus    `gorm:"size:20;not null;default:'created'" json:"status"`
	CreatedAt  time.Time      `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt  time.Time      `gorm:"not null;default:now()" json:"updated_at"`

	// Relations
	Merchant *Merchant `gorm:"foreignKey:MerchantID" json:"-"`
}

// TableName specifies the table name for GORM
func (Order) TableName() string {
	return "orders"
}

// OrderPublic is the projection of an order that unauthenticated checkout callers may see
type OrderPublic struct {
	ID         string      `json:"id"`
	Amount     int64       `json:"amount"`
	Currency   string      `json:"currency"`
	Status     OrderStatus `json:"status"`
	MerchantID uuid.UUID   `json:"merchant_id"`
}

// Public returns the redacted projection of the order
func (o *Order) Public() *OrderPublic {
	return &OrderPublic{
		ID:         o.ID,
		Amount:     o.Amount,
		Currency:   o.Currency,
		Status:     o.Status,
		MerchantID: o.MerchantID,
	}
}
