package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/angelmondragon/storefront-backend/pkg/enums"
)

// Order is one checkout attempt. Total snapshots the product price at
// creation and never tracks later catalog changes. CheckoutSessionID binds
// the row 1:1 to the payment provider's session and is set exactly once.
type Order struct {
	ID                uuid.UUID         `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	UserID            uuid.UUID         `gorm:"column:user_id;type:uuid;not null;index"`
	ProductID         uuid.UUID         `gorm:"column:product_id;type:uuid;not null"`
	Total             decimal.Decimal   `gorm:"column:total;type:numeric(12,2);not null"`
	Currency          enums.Currency    `gorm:"column:currency;type:text;not null;default:'USD'"`
	CheckoutSessionID string            `gorm:"column:checkout_session_id;not null;uniqueIndex:idx_orders_checkout_session"`
	Status            enums.OrderStatus `gorm:"column:status;type:text;not null;default:'unpaid'"`
	CreatedAt         time.Time         `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt         time.Time         `gorm:"column:updated_at;autoUpdateTime"`
}
