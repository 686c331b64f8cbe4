package orders

import (
	"time"

	"github.com/google/uuid"

	"github.com/angelmondragon/storefront-backend/pkg/db/models"
)

// OrderDTO is the sanitized order representation returned to clients. It
// never includes another user's data and exposes totals as decimal strings.
type OrderDTO struct {
	ID                uuid.UUID `json:"id"`
	ProductID         uuid.UUID `json:"product_id"`
	Total             string    `json:"total"`
	Currency          string    `json:"currency"`
	CheckoutSessionID string    `json:"checkout_session_id"`
	Status            string    `json:"status"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

// NewOrderDTO maps a ledger row into its transport representation.
func NewOrderDTO(order models.Order) OrderDTO {
	return OrderDTO{
		ID:                order.ID,
		ProductID:         order.ProductID,
		Total:             order.Total.StringFixed(2),
		Currency:          string(order.Currency),
		CheckoutSessionID: order.CheckoutSessionID,
		Status:            string(order.Status),
		CreatedAt:         order.CreatedAt,
		UpdatedAt:         order.UpdatedAt,
	}
}

// NewOrderDTOs maps a page of ledger rows.
func NewOrderDTOs(rows []models.Order) []OrderDTO {
	out := make([]OrderDTO, 0, len(rows))
	for _, row := range rows {
		out = append(out, NewOrderDTO(row))
	}
	return out
}
