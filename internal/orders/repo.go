package orders

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/angelmondragon/storefront-backend/pkg/db"
	"github.com/angelmondragon/storefront-backend/pkg/db/models"
	"github.com/angelmondragon/storefront-backend/pkg/enums"
	pkgerrors "github.com/angelmondragon/storefront-backend/pkg/errors"
	"github.com/angelmondragon/storefront-backend/pkg/pagination"
)

type repository struct {
	db *gorm.DB
}

// NewRepository builds an orders repository bound to the provided DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, order *models.Order) (*models.Order, error) {
	if err := r.db.WithContext(ctx).Create(order).Error; err != nil {
		if db.IsUniqueViolation(err, "checkout_session") {
			return nil, pkgerrors.Wrap(pkgerrors.CodeConflict, err, "checkout session already recorded")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "record order")
	}
	return order, nil
}

func (r *repository) FindByIDForUser(ctx context.Context, userID, orderID uuid.UUID) (*models.Order, error) {
	var order models.Order
	err := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", orderID, userID).
		First(&order).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// foreign-owned orders are indistinguishable from missing ones
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load order")
	}
	return &order, nil
}

func (r *repository) FindByCheckoutSession(ctx context.Context, sessionID string) (*models.Order, error) {
	var order models.Order
	err := r.db.WithContext(ctx).
		Where("checkout_session_id = ?", sessionID).
		First(&order).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load order")
	}
	return &order, nil
}

func (r *repository) ListForUser(ctx context.Context, userID uuid.UUID, filter ListFilter) (*ListResult, error) {
	limit := pagination.NormalizeLimit(filter.Pagination.Limit)

	query := r.db.WithContext(ctx).
		Model(&models.Order{}).
		Where("orders.user_id = ?", userID)

	if q := strings.TrimSpace(filter.Query); q != "" {
		pattern := "%" + strings.ToLower(q) + "%"
		query = query.
			Joins("JOIN products ON products.id = orders.product_id").
			Where("lower(products.name) LIKE ? OR lower(orders.checkout_session_id) LIKE ?", pattern, pattern)
	}

	cursor, err := pagination.ParseCursor(filter.Pagination.Cursor)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid cursor")
	}
	if cursor != nil {
		query = query.Where(
			"orders.created_at < ? OR (orders.created_at = ? AND orders.id < ?)",
			cursor.CreatedAt, cursor.CreatedAt, cursor.ID,
		)
	}

	var rows []models.Order
	err = query.
		Order("orders.created_at DESC, orders.id DESC").
		Limit(pagination.LimitWithBuffer(filter.Pagination.Limit)).
		Find(&rows).Error
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list orders")
	}

	result := &ListResult{Orders: rows}
	if len(rows) > limit {
		result.Orders = rows[:limit]
		last := result.Orders[limit-1]
		result.NextCursor = pagination.EncodeCursor(pagination.Cursor{
			CreatedAt: last.CreatedAt,
			ID:        last.ID,
		})
	}
	return result, nil
}

func (r *repository) MarkPaid(ctx context.Context, sessionID string) (int64, error) {
	res := r.db.WithContext(ctx).
		Model(&models.Order{}).
		Where("checkout_session_id = ? AND status = ?", sessionID, enums.OrderStatusUnpaid).
		Update("status", enums.OrderStatusPaid)
	if res.Error != nil {
		return 0, pkgerrors.Wrap(pkgerrors.CodeDependency, res.Error, "mark order paid")
	}
	return res.RowsAffected, nil
}
