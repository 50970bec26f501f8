package store_test

import (
	"context"
	"database/sql"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/kirana/internal/apperror"
	"github.com/MrJamesThe3rd/kirana/internal/inventory"
	"github.com/MrJamesThe3rd/kirana/internal/inventory/store"
)

var itemColumns = []string{
	"id", "name", "category", "quantity", "unit", "purchase_price", "selling_price",
	"seller_id", "low_stock_alert", "created_at",
}

func newMock(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	return db, mock
}

func TestStore_GetItem(t *testing.T) {
	db, mock := newMock(t)
	id := uuid.New()

	mock.ExpectQuery("SELECT .* FROM inventory_items WHERE id = \\$1").
		WithArgs(id).
		WillReturnRows(sqlmock.NewRows(itemColumns).
			AddRow(id.String(), "Rice", "Grains", "7.500", "kg", 80, 95, nil, false, time.Now()))

	item, err := store.New(db).GetItem(context.Background(), id)
	require.NoError(t, err)

	assert.Equal(t, id, item.ID)
	assert.Equal(t, "7.5", item.Quantity.String())
	assert.Nil(t, item.SellerID)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestStore_GetItem_NotFound(t *testing.T) {
	db, mock := newMock(t)

	mock.ExpectQuery("SELECT .* FROM inventory_items").WillReturnError(sql.ErrNoRows)

	_, err := store.New(db).GetItem(context.Background(), uuid.New())
	assert.ErrorIs(t, err, inventory.ErrNotFound)
	assert.True(t, apperror.IsNotFound(err))
}

func TestStore_DeleteItem_MissingRowIsNotAnError(t *testing.T) {
	db, mock := newMock(t)
	id := uuid.New()

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM inventory_items WHERE id = $1")).
		WithArgs(id).
		WillReturnResult(sqlmock.NewResult(0, 0))

	require.NoError(t, store.New(db).DeleteItem(context.Background(), id))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestStore_DeleteItem_ReferencedByBill(t *testing.T) {
	db, mock := newMock(t)

	mock.ExpectExec("DELETE FROM inventory_items").
		WillReturnError(&pgconn.PgError{Code: "23503"})

	err := store.New(db).DeleteItem(context.Background(), uuid.New())
	assert.ErrorIs(t, err, inventory.ErrItemInUse)
	assert.True(t, apperror.IsValidation(err))
}

func TestStore_ListItems(t *testing.T) {
	db, mock := newMock(t)
	seller := uuid.New()

	mock.ExpectQuery("SELECT .* FROM inventory_items ORDER BY created_at DESC").
		WillReturnRows(sqlmock.NewRows(itemColumns).
			AddRow(uuid.NewString(), "Oil", "Oils", "3", "liters", 120, 140, seller.String(), true, time.Now()).
			AddRow(uuid.NewString(), "Soap", "Care", "12", "pieces", 20, 25, nil, false, time.Now()))

	items, err := store.New(db).ListItems(context.Background())
	require.NoError(t, err)
	require.Len(t, items, 2)

	require.NotNil(t, items[0].SellerID)
	assert.Equal(t, seller, *items[0].SellerID)
	assert.True(t, items[0].LowStockAlert)
}

func TestStore_UpdateItem_NotFound(t *testing.T) {
	db, mock := newMock(t)

	mock.ExpectQuery("UPDATE inventory_items SET").WillReturnError(sql.ErrNoRows)

	name := "Rice"

	_, err := store.New(db).UpdateItem(context.Background(), uuid.New(), inventory.Patch{Name: &name})
	assert.ErrorIs(t, err, inventory.ErrNotFound)
}
