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
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/kirana/internal/apperror"
	"github.com/MrJamesThe3rd/kirana/internal/billing"
	"github.com/MrJamesThe3rd/kirana/internal/billing/store"
)

var billColumns = []string{
	"id", "bill_number", "customer_id", "subtotal", "total_amount", "amount_paid", "balance_due",
	"status", "date", "created_at",
}

func newMock(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	return db, mock
}

func begin(t *testing.T, db *sql.DB, mock sqlmock.Sqlmock) billing.BillTx {
	t.Helper()

	mock.ExpectBegin()

	btx, err := store.New(db).BeginBill(context.Background())
	require.NoError(t, err)

	return btx
}

func TestBillTx_CreateBill_NumbersLines(t *testing.T) {
	db, mock := newMock(t)
	btx := begin(t, db, mock)

	billID := uuid.New()
	riceID := uuid.New()
	oilID := uuid.New()

	mock.ExpectQuery("INSERT INTO bills").
		WithArgs("BILL-20240315-000001", nil, "455", "455", "0", "455", "due", sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at"}).AddRow(billID.String(), time.Now()))
	mock.ExpectQuery("INSERT INTO bill_items").
		WithArgs(billID.String(), 1, riceID.String(), "Rice", "3", "kg", "95", "285").
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(uuid.NewString()))
	mock.ExpectQuery("INSERT INTO bill_items").
		WithArgs(billID.String(), 2, oilID.String(), "Oil", "1", "liters", "170", "170").
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(uuid.NewString()))
	mock.ExpectCommit()

	bill := &billing.Bill{
		BillNumber:  "BILL-20240315-000001",
		Subtotal:    decimal.RequireFromString("455"),
		TotalAmount: decimal.RequireFromString("455"),
		AmountPaid:  decimal.Zero,
		BalanceDue:  decimal.RequireFromString("455"),
		Status:      billing.StatusDue,
		Date:        time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC),
		Items: []*billing.Item{
			{InventoryItemID: riceID, ItemName: "Rice", Quantity: decimal.NewFromInt(3), Unit: "kg",
				Rate: decimal.NewFromInt(95), Total: decimal.NewFromInt(285)},
			{InventoryItemID: oilID, ItemName: "Oil", Quantity: decimal.NewFromInt(1), Unit: "liters",
				Rate: decimal.NewFromInt(170), Total: decimal.NewFromInt(170)},
		},
	}

	require.NoError(t, btx.CreateBill(context.Background(), bill))
	require.NoError(t, btx.Commit())

	assert.Equal(t, billID, bill.ID)
	assert.Equal(t, billID, bill.Items[1].BillID)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestBillTx_CreateBill_DuplicateNumber(t *testing.T) {
	db, mock := newMock(t)
	btx := begin(t, db, mock)

	mock.ExpectQuery("INSERT INTO bills").WillReturnError(&pgconn.PgError{Code: "23505"})
	mock.ExpectRollback()

	err := btx.CreateBill(context.Background(), &billing.Bill{BillNumber: "BILL-1", Status: billing.StatusDue})
	require.NoError(t, btx.Rollback())

	assert.ErrorIs(t, err, billing.ErrDuplicateBillNumber)
	assert.True(t, apperror.IsValidation(err))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestBillTx_LockInventoryItem_NotFound(t *testing.T) {
	db, mock := newMock(t)
	btx := begin(t, db, mock)

	id := uuid.New()

	mock.ExpectQuery(regexp.QuoteMeta("FROM inventory_items WHERE id = $1 FOR UPDATE")).
		WithArgs(id).
		WillReturnError(sql.ErrNoRows)

	_, err := btx.LockInventoryItem(context.Background(), id)
	assert.ErrorIs(t, err, billing.ErrItemNotFound)
	assert.True(t, apperror.IsNotFound(err))
	assert.Contains(t, err.Error(), id.String())
}

func TestBillTx_LockBill(t *testing.T) {
	db, mock := newMock(t)
	btx := begin(t, db, mock)

	id := uuid.New()
	customerID := uuid.New()

	mock.ExpectQuery(regexp.QuoteMeta("FROM bills WHERE id = $1 FOR UPDATE")).
		WithArgs(id).
		WillReturnRows(sqlmock.NewRows(billColumns).AddRow(
			id.String(), "BILL-7", customerID.String(), "100.00", "100.00", "40.00", "60.00",
			"partially_paid", time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC), time.Now(),
		))

	bill, err := btx.LockBill(context.Background(), id)
	require.NoError(t, err)

	assert.Equal(t, billing.StatusPartiallyPaid, bill.Status)
	assert.True(t, decimal.NewFromInt(60).Equal(bill.BalanceDue))
	require.NotNil(t, bill.CustomerID)
	assert.Equal(t, customerID, *bill.CustomerID)

	mock.ExpectQuery("FROM bills WHERE id").WillReturnError(sql.ErrNoRows)

	_, err = btx.LockBill(context.Background(), uuid.New())
	assert.ErrorIs(t, err, billing.ErrNotFound)
}

func TestBillTx_SavePaymentFields(t *testing.T) {
	db, mock := newMock(t)
	btx := begin(t, db, mock)

	id := uuid.New()

	mock.ExpectExec(regexp.QuoteMeta("UPDATE bills SET amount_paid = $1, balance_due = $2, status = $3 WHERE id = $4")).
		WithArgs("100", "0", "paid", id.String()).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := btx.SavePaymentFields(context.Background(), &billing.Bill{
		ID:         id,
		AmountPaid: decimal.NewFromInt(100),
		BalanceDue: decimal.Zero,
		Status:     billing.StatusPaid,
	})
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestStore_ListOutstandingBills(t *testing.T) {
	db, mock := newMock(t)

	mock.ExpectQuery("FROM bills WHERE status IN").
		WithArgs("due", "partially_paid").
		WillReturnRows(sqlmock.NewRows(billColumns).
			AddRow(uuid.NewString(), "BILL-1", nil, "50", "50", "0", "50", "due", time.Now(), time.Now()).
			AddRow(uuid.NewString(), "BILL-2", nil, "80", "80", "30", "50", "partially_paid", time.Now(), time.Now()))

	bills, err := store.New(db).ListOutstandingBills(context.Background())
	require.NoError(t, err)

	require.Len(t, bills, 2)
	assert.Nil(t, bills[0].CustomerID)
	assert.Equal(t, billing.StatusPartiallyPaid, bills[1].Status)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestStore_GetBill_NotFound(t *testing.T) {
	db, mock := newMock(t)

	mock.ExpectQuery("FROM bills WHERE id").WillReturnError(sql.ErrNoRows)

	_, err := store.New(db).GetBill(context.Background(), uuid.New())
	assert.ErrorIs(t, err, billing.ErrNotFound)
}
