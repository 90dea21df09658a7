package model

import (
	"time"

	"github.com/google/uuid"
)

// Merchant owns orders and authenticates with an API key/secret pair
type Merchant struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:uuid_generate_v4()" json:"id"`
	Name      string    `gorm:"size:255;not null" json:"name"`
	Email     string    `gorm:"size:255;not null;uniqueIndex" json:"email"`
	APIKey    string    `gorm:"column:api_key;size:64;not null;uniqueIndex" json:"api_key"`
	APISecret string    `gorm:"column:api_secret;size:64;not null" json:"-"`
	IsActive  bool      `gorm:"not null;default:true" json:"is_active"`
	CreatedAt time.Time `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;default:now()" json:"updated_at"`
}

// TableName specifies the table name for GORM
func (Merchant) TableName() string {
	return "merchants"
}
