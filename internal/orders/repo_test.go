package orders

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/angelmondragon/storefront-backend/pkg/db/models"
	"github.com/angelmondragon/storefront-backend/pkg/enums"
	pkgerrors "github.com/angelmondragon/storefront-backend/pkg/errors"
	"github.com/angelmondragon/storefront-backend/pkg/pagination"
)

func setupOrdersTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{})
	require.NoError(t, err)

	products := `
CREATE TABLE IF NOT EXISTS products (
  id TEXT PRIMARY KEY,
  name TEXT NOT NULL,
  price NUMERIC NOT NULL,
  created_at DATETIME,
  updated_at DATETIME
);`
	orders := `
CREATE TABLE IF NOT EXISTS orders (
  id TEXT PRIMARY KEY,
  user_id TEXT NOT NULL,
  product_id TEXT NOT NULL,
  total NUMERIC NOT NULL,
  currency TEXT NOT NULL DEFAULT 'USD',
  checkout_session_id TEXT NOT NULL UNIQUE,
  status TEXT NOT NULL DEFAULT 'unpaid',
  created_at DATETIME,
  updated_at DATETIME
);`
	require.NoError(t, db.Exec(products).Error)
	require.NoError(t, db.Exec(orders).Error)
	return db
}

func newProduct(t *testing.T, db *gorm.DB, name string, price string) *models.Product {
	t.Helper()

	product := &models.Product{
		ID:    uuid.New(),
		Name:  name,
		Price: decimal.RequireFromString(price),
	}
	require.NoError(t, db.Create(product).Error)
	return product
}

func newOrder(t *testing.T, db *gorm.DB, userID uuid.UUID, product *models.Product, sessionID string, status enums.OrderStatus, created time.Time) *models.Order {
	t.Helper()

	order := &models.Order{
		ID:                uuid.New(),
		UserID:            userID,
		ProductID:         product.ID,
		Total:             product.Price,
		Currency:          enums.CurrencyUSD,
		CheckoutSessionID: sessionID,
		Status:            status,
		CreatedAt:         created,
		UpdatedAt:         created,
	}
	require.NoError(t, db.Create(order).Error)
	return order
}

func TestRepositoryFindByIDForUserScopesToOwner(t *testing.T) {
	db := setupOrdersTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	owner := uuid.New()
	stranger := uuid.New()
	product := newProduct(t, db, "widget", "19.99")
	order := newOrder(t, db, owner, product, "cs_"+uuid.NewString(), enums.OrderStatusUnpaid, time.Now().UTC())

	found, err := repo.FindByIDForUser(ctx, owner, order.ID)
	require.NoError(t, err)
	assert.Equal(t, order.ID, found.ID)

	_, err = repo.FindByIDForUser(ctx, stranger, order.ID)
	require.Error(t, err)
	var coded *pkgerrors.Error
	require.ErrorAs(t, err, &coded)
	assert.Equal(t, pkgerrors.CodeNotFound, coded.Code())
}

func TestRepositoryFindByCheckoutSession(t *testing.T) {
	db := setupOrdersTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	product := newProduct(t, db, "widget", "19.99")
	order := newOrder(t, db, uuid.New(), product, "cs_"+uuid.NewString(), enums.OrderStatusUnpaid, time.Now().UTC())

	found, err := repo.FindByCheckoutSession(ctx, order.CheckoutSessionID)
	require.NoError(t, err)
	assert.Equal(t, order.ID, found.ID)

	_, err = repo.FindByCheckoutSession(ctx, "cs_missing_"+uuid.NewString())
	var coded *pkgerrors.Error
	require.ErrorAs(t, err, &coded)
	assert.Equal(t, pkgerrors.CodeNotFound, coded.Code())
}

func TestRepositoryMarkPaidFlipsExactlyOnce(t *testing.T) {
	db := setupOrdersTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	product := newProduct(t, db, "widget", "19.99")
	order := newOrder(t, db, uuid.New(), product, "cs_"+uuid.NewString(), enums.OrderStatusUnpaid, time.Now().UTC())

	affected, err := repo.MarkPaid(ctx, order.CheckoutSessionID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), affected)

	// already settled rows are a no-op
	affected, err = repo.MarkPaid(ctx, order.CheckoutSessionID)
	require.NoError(t, err)
	assert.Equal(t, int64(0), affected)

	reloaded, err := repo.FindByCheckoutSession(ctx, order.CheckoutSessionID)
	require.NoError(t, err)
	assert.Equal(t, enums.OrderStatusPaid, reloaded.Status)
}

func TestRepositoryCreateRejectsDuplicateSession(t *testing.T) {
	db := setupOrdersTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	product := newProduct(t, db, "widget", "19.99")
	sessionID := "cs_dup_" + uuid.NewString()
	newOrder(t, db, uuid.New(), product, sessionID, enums.OrderStatusUnpaid, time.Now().UTC())

	_, err := repo.Create(ctx, &models.Order{
		ID:                uuid.New(),
		UserID:            uuid.New(),
		ProductID:         product.ID,
		Total:             product.Price,
		Currency:          enums.CurrencyUSD,
		CheckoutSessionID: sessionID,
		Status:            enums.OrderStatusUnpaid,
	})
	var coded *pkgerrors.Error
	require.ErrorAs(t, err, &coded)
	assert.Equal(t, pkgerrors.CodeConflict, coded.Code())
}

func TestRepositoryMarkPaidUnknownSession(t *testing.T) {
	db := setupOrdersTestDB(t)
	repo := NewRepository(db)

	affected, err := repo.MarkPaid(context.Background(), "cs_unknown_"+uuid.NewString())
	require.NoError(t, err)
	assert.Equal(t, int64(0), affected)
}

func TestRepositoryListForUserNewestFirstWithCursor(t *testing.T) {
	db := setupOrdersTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	owner := uuid.New()
	product := newProduct(t, db, "widget", "19.99")
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	for i := 0; i < 5; i++ {
		newOrder(t, db, owner, product, fmt.Sprintf("cs_%s_%d", owner, i), enums.OrderStatusUnpaid, base.Add(time.Duration(i)*time.Minute))
	}
	// another user's order never leaks into the page
	newOrder(t, db, uuid.New(), product, "cs_other_"+uuid.NewString(), enums.OrderStatusUnpaid, base.Add(time.Hour))

	page1, err := repo.ListForUser(ctx, owner, ListFilter{Pagination: pagination.Params{Limit: 3}})
	require.NoError(t, err)
	require.Len(t, page1.Orders, 3)
	require.NotEmpty(t, page1.NextCursor)
	assert.Equal(t, fmt.Sprintf("cs_%s_4", owner), page1.Orders[0].CheckoutSessionID)
	assert.Equal(t, fmt.Sprintf("cs_%s_2", owner), page1.Orders[2].CheckoutSessionID)

	page2, err := repo.ListForUser(ctx, owner, ListFilter{Pagination: pagination.Params{Limit: 3, Cursor: page1.NextCursor}})
	require.NoError(t, err)
	require.Len(t, page2.Orders, 2)
	assert.Empty(t, page2.NextCursor)
	assert.Equal(t, fmt.Sprintf("cs_%s_1", owner), page2.Orders[0].CheckoutSessionID)
	assert.Equal(t, fmt.Sprintf("cs_%s_0", owner), page2.Orders[1].CheckoutSessionID)

	for _, row := range append(page1.Orders, page2.Orders...) {
		assert.Equal(t, owner, row.UserID)
	}
}

func TestRepositoryListForUserSearch(t *testing.T) {
	db := setupOrdersTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	owner := uuid.New()
	widget := newProduct(t, db, "Blue Widget", "10.00")
	gadget := newProduct(t, db, "Red Gadget", "20.00")
	now := time.Now().UTC()
	newOrder(t, db, owner, widget, "cs_widget_"+owner.String(), enums.OrderStatusUnpaid, now)
	newOrder(t, db, owner, gadget, "cs_gadget_"+owner.String(), enums.OrderStatusUnpaid, now.Add(time.Second))

	result, err := repo.ListForUser(ctx, owner, ListFilter{Query: "widget"})
	require.NoError(t, err)
	require.Len(t, result.Orders, 1)
	assert.Equal(t, widget.ID, result.Orders[0].ProductID)
}

func TestRepositoryListForUserInvalidCursor(t *testing.T) {
	db := setupOrdersTestDB(t)
	repo := NewRepository(db)

	_, err := repo.ListForUser(context.Background(), uuid.New(), ListFilter{Pagination: pagination.Params{Cursor: "not-base64!"}})
	var coded *pkgerrors.Error
	require.ErrorAs(t, err, &coded)
	assert.Equal(t, pkgerrors.CodeValidation, coded.Code())
}
