package model

import (
	"time"

	"github.com/google/uuid"
)

// PaymentMethod is the instrument family used for a payment attempt
type PaymentMethod string

const (
	PaymentMethodUPI  PaymentMethod = "upi"
	PaymentMethodCard PaymentMethod = "card"
)

// PaymentStatus is the state of a payment attempt. processing is the only
// non-terminal state.
type PaymentStatus string

const (
	PaymentStatusProcessing PaymentStatus = "processing"
	PaymentStatusSuccess    PaymentStatus = "success"
	PaymentStatusFailed     PaymentStatus = "failed"
)

// Payment represents one settlement attempt against an order
type Payment struct {
	ID               string        `gorm:"primaryKey;size:64" json:"id"`
	OrderID          string        `gorm:"size:64;not null;index" json:"order_id"`
	MerchantID       uuid.UUID     `gorm:"type:uuid;not null;index:idx_payments_merchant_created,priority:1" json:"merchant_id"`
	Amount           int64         `gorm:"not null" json:"amount"`
	Currency         string        `gorm:"size:3;not null" json:"currency"`
	Method           PaymentMethod `gorm:"size:20;not null" json:"method"`
	Status           PaymentStatus `gorm:"size:20;not null;default:'processing'" json:"status"`
	VPA              *string       `gorm:"column:vpa;size:255" json:"vpa"`
	CardNetwork      *string       `gorm:"size:20" json:"card_network"`
	CardLast4        *string       `gorm:"column:card_last4;size:4" json:"card_last4"`
	ErrorCode        *string       `gorm:"size:50" json:"error_code"`
	ErrorDescription *string       `json:"error_description"`
	CreatedAt        time.Time     `gorm:"not null;default:now();index:idx_payments_merchant_created,priority:2,sort:desc" json:"created_at"`
	UpdatedAt        time.Time     `gorm:"not null;default:now()" json:"updated_at"`

	// Relations
	Order *Order `gorm:"foreignKey:OrderID" json:"-"`
}

// TableName specifies the table name for GORM
func (Payment) TableName() string {
	return "payments"
}

// IsTerminal reports whether the payment has left the processing state
func (p *Payment) IsTerminal() bool {
	return p.Status == PaymentStatusSuccess || p.Status == PaymentStatusFailed
}

// SettlementResult is the single terminal write applied to a processing payment
type SettlementResult struct {
	Status           PaymentStatus
	ErrorCode        *string
	ErrorDescription *string
}
