package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Product is the purchasable catalog entry. The catalog itself is managed
// elsewhere; checkout only reads name and price.
type Product struct {
	ID        uuid.UUID       `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Name      string          `gorm:"column:name;not null"`
	Price     decimal.Decimal `gorm:"column:price;type:numeric(12,2);not null"`
	CreatedAt time.Time       `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time       `gorm:"column:updated_at;autoUpdateTime"`
}
