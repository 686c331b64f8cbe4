package orders

import (
	"context"

	"github.com/google/uuid"

	"github.com/angelmondragon/storefront-backend/pkg/db/models"
	"github.com/angelmondragon/storefront-backend/pkg/pagination"
)

// ListFilter narrows the user-scoped order listing.
type ListFilter struct {
	// Query enables free-text search over the product name and session id.
	Query      string
	Pagination pagination.Params
}

// ListResult is one page of scoped orders plus the cursor for the next one.
type ListResult struct {
	Orders     []models.Order
	NextCursor string
}

// Repository is the order ledger. Every read is scoped to an owner where a
// caller identity applies; MarkPaid is the single atomic compare-and-set
// used for payment reconciliation.
type Repository interface {
	Create(ctx context.Context, order *models.Order) (*models.Order, error)
	FindByIDForUser(ctx context.Context, userID, orderID uuid.UUID) (*models.Order, error)
	FindByCheckoutSession(ctx context.Context, sessionID string) (*models.Order, error)
	ListForUser(ctx context.Context, userID uuid.UUID, filter ListFilter) (*ListResult, error)
	// MarkPaid flips the order bound to sessionID from unpaid to paid in one
	// statement and reports how many rows changed (0 when already settled).
	MarkPaid(ctx context.Context, sessionID string) (int64, error)
}
