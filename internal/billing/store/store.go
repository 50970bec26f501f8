package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/kirana/internal/apperror"
	"github.com/MrJamesThe3rd/kirana/internal/billing"
	"github.com/MrJamesThe3rd/kirana/internal/database"
	"github.com/MrJamesThe3rd/kirana/internal/inventory"
	inventoryStore "github.com/MrJamesThe3rd/kirana/internal/inventory/store"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// scanner is satisfied by both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

const billColumns = `
	id, bill_number, customer_id, subtotal, total_amount, amount_paid, balance_due, status, date, created_at
`

func scanBill(s scanner) (*billing.Bill, error) {
	var (
		b      billing.Bill
		status string
	)

	if err := s.Scan(
		&b.ID, &b.BillNumber, &b.CustomerID, &b.Subtotal, &b.TotalAmount,
		&b.AmountPaid, &b.BalanceDue, &status, &b.Date, &b.CreatedAt,
	); err != nil {
		return nil, err
	}

	b.Status = billing.Status(status)

	return &b, nil
}

const itemColumns = `id, bill_id, inventory_item_id, item_name, quantity, unit, rate, total`

func scanItem(s scanner) (*billing.Item, error) {
	var it billing.Item

	if err := s.Scan(
		&it.ID, &it.BillID, &it.InventoryItemID, &it.ItemName, &it.Quantity, &it.Unit, &it.Rate, &it.Total,
	); err != nil {
		return nil, err
	}

	return &it, nil
}

const paymentColumns = `id, bill_id, amount, remarks, created_at`

func scanPayment(s scanner) (*billing.Payment, error) {
	var (
		p       billing.Payment
		remarks sql.NullString
	)

	if err := s.Scan(&p.ID, &p.BillID, &p.Amount, &remarks, &p.CreatedAt); err != nil {
		return nil, err
	}

	p.Remarks = remarks.String

	return &p, nil
}

func collect[T any](rows *sql.Rows, scan func(scanner) (T, error)) ([]T, error) {
	defer rows.Close()

	var out []T

	for rows.Next() {
		v, err := scan(rows)
		if err != nil {
			return nil, err
		}

		out = append(out, v)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return out, nil
}

func (s *Store) queryBills(ctx context.Context, query string, args ...any) ([]*billing.Bill, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing bills: %w", err)
	}

	bills, err := collect(rows, scanBill)
	if err != nil {
		return nil, fmt.Errorf("scanning bills: %w", err)
	}

	return bills, nil
}

func (s *Store) ListBills(ctx context.Context) ([]*billing.Bill, error) {
	return s.queryBills(ctx, `SELECT `+billColumns+` FROM bills ORDER BY created_at DESC`)
}

func (s *Store) ListBillsByCustomer(ctx context.Context, customerID uuid.UUID) ([]*billing.Bill, error) {
	return s.queryBills(ctx,
		`SELECT `+billColumns+` FROM bills WHERE customer_id = $1 ORDER BY created_at DESC`, customerID)
}

func (s *Store) ListOutstandingBills(ctx context.Context) ([]*billing.Bill, error) {
	return s.queryBills(ctx,
		`SELECT `+billColumns+` FROM bills WHERE status IN ($1, $2) ORDER BY created_at DESC`,
		string(billing.StatusDue), string(billing.StatusPartiallyPaid))
}

func (s *Store) GetBill(ctx context.Context, id uuid.UUID) (*billing.Bill, error) {
	b, err := scanBill(s.db.QueryRowContext(ctx, `SELECT `+billColumns+` FROM bills WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, billing.ErrNotFound
		}

		return nil, fmt.Errorf("getting bill: %w", err)
	}

	return b, nil
}

func (s *Store) ListItems(ctx context.Context, billID uuid.UUID) ([]*billing.Item, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+itemColumns+` FROM bill_items WHERE bill_id = $1 ORDER BY line_no`, billID)
	if err != nil {
		return nil, fmt.Errorf("listing bill items: %w", err)
	}

	items, err := collect(rows, scanItem)
	if err != nil {
		return nil, fmt.Errorf("scanning bill items: %w", err)
	}

	return items, nil
}

func (s *Store) ListPayments(ctx context.Context, billID uuid.UUID) ([]*billing.Payment, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+paymentColumns+` FROM payments WHERE bill_id = $1 ORDER BY created_at DESC`, billID)
	if err != nil {
		return nil, fmt.Errorf("listing payments: %w", err)
	}

	payments, err := collect(rows, scanPayment)
	if err != nil {
		return nil, fmt.Errorf("scanning payments: %w", err)
	}

	return payments, nil
}

type billTx struct {
	tx *sql.Tx
}

func (s *Store) BeginBill(ctx context.Context) (billing.BillTx, error) {
	dbTx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("beginning bill tx: %w", err)
	}

	return &billTx{tx: dbTx}, nil
}

func (btx *billTx) Commit() error   { return btx.tx.Commit() }
func (btx *billTx) Rollback() error { return btx.tx.Rollback() }

func (btx *billTx) CustomerExists(ctx context.Context, id uuid.UUID) (bool, error) {
	var exists bool

	err := btx.tx.QueryRowContext(ctx, `SELECT EXISTS (SELECT 1 FROM customers WHERE id = $1)`, id).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("checking customer: %w", err)
	}

	return exists, nil
}

func (btx *billTx) LockInventoryItem(ctx context.Context, id uuid.UUID) (*inventory.Item, error) {
	query := `SELECT ` + inventoryStore.ItemColumns + ` FROM inventory_items WHERE id = $1 FOR UPDATE`

	item, err := inventoryStore.ScanItem(btx.tx.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: %s", billing.ErrItemNotFound, id)
		}

		return nil, fmt.Errorf("locking inventory item: %w", err)
	}

	return item, nil
}

func (btx *billTx) SetInventoryQuantity(ctx context.Context, id uuid.UUID, quantity decimal.Decimal) error {
	_, err := btx.tx.ExecContext(ctx, `UPDATE inventory_items SET quantity = $1 WHERE id = $2`, quantity, id)
	if err != nil {
		return fmt.Errorf("setting inventory quantity: %w", err)
	}

	return nil
}

func (btx *billTx) NextBillSequence(ctx context.Context) (int64, error) {
	var seq int64
	if err := btx.tx.QueryRowContext(ctx, `SELECT nextval('bill_number_seq')`).Scan(&seq); err != nil {
		return 0, fmt.Errorf("reading bill sequence: %w", err)
	}

	return seq, nil
}

// CreateBill inserts the bill and then its lines, filling generated ids.
func (btx *billTx) CreateBill(ctx context.Context, b *billing.Bill) error {
	billQuery := `
		INSERT INTO bills (bill_number, customer_id, subtotal, total_amount, amount_paid, balance_due, status, date)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, created_at
	`

	err := btx.tx.QueryRowContext(ctx, billQuery,
		b.BillNumber,
		b.CustomerID,
		b.Subtotal,
		b.TotalAmount,
		b.AmountPaid,
		b.BalanceDue,
		string(b.Status),
		b.Date,
	).Scan(&b.ID, &b.CreatedAt)
	if err != nil {
		if database.IsUniqueViolation(err) {
			return apperror.Invalid(billing.ErrDuplicateBillNumber, b.BillNumber)
		}

		return fmt.Errorf("creating bill: %w", err)
	}

	itemQuery := `
		INSERT INTO bill_items (bill_id, line_no, inventory_item_id, item_name, quantity, unit, rate, total)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id
	`

	for i, it := range b.Items {
		it.BillID = b.ID

		err := btx.tx.QueryRowContext(ctx, itemQuery,
			it.BillID,
			i+1,
			it.InventoryItemID,
			it.ItemName,
			it.Quantity,
			it.Unit,
			it.Rate,
			it.Total,
		).Scan(&it.ID)
		if err != nil {
			return fmt.Errorf("creating bill item: %w", err)
		}
	}

	return nil
}

func (btx *billTx) LockBill(ctx context.Context, id uuid.UUID) (*billing.Bill, error) {
	b, err := scanBill(btx.tx.QueryRowContext(ctx, `SELECT `+billColumns+` FROM bills WHERE id = $1 FOR UPDATE`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, billing.ErrNotFound
		}

		return nil, fmt.Errorf("locking bill: %w", err)
	}

	return b, nil
}

func (btx *billTx) CreatePayment(ctx context.Context, p *billing.Payment) error {
	query := `
		INSERT INTO payments (bill_id, amount, remarks)
		VALUES ($1, $2, $3)
		RETURNING id, created_at
	`

	err := btx.tx.QueryRowContext(ctx, query,
		p.BillID,
		p.Amount,
		sql.NullString{String: p.Remarks, Valid: p.Remarks != ""},
	).Scan(&p.ID, &p.CreatedAt)
	if err != nil {
		return fmt.Errorf("creating payment: %w", err)
	}

	return nil
}

func (btx *billTx) SavePaymentFields(ctx context.Context, b *billing.Bill) error {
	query := `UPDATE bills SET amount_paid = $1, balance_due = $2, status = $3 WHERE id = $4`

	if _, err := btx.tx.ExecContext(ctx, query, b.AmountPaid, b.BalanceDue, string(b.Status), b.ID); err != nil {
		return fmt.Errorf("saving bill payment fields: %w", err)
	}

	return nil
}
