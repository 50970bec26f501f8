package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"hash/fnv"
	"strings"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/kirana/internal/apperror"
	"github.com/MrJamesThe3rd/kirana/internal/database"
	"github.com/MrJamesThe3rd/kirana/internal/inventory"
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

// Column order must match ItemColumns.
func ScanItem(s scanner) (*inventory.Item, error) {
	var item inventory.Item

	if err := s.Scan(
		&item.ID, &item.Name, &item.Category, &item.Quantity, &item.Unit,
		&item.PurchasePrice, &item.SellingPrice, &item.SellerID, &item.LowStockAlert, &item.CreatedAt,
	); err != nil {
		return nil, err
	}

	return &item, nil
}

const ItemColumns = `
	id, name, category, quantity, unit, purchase_price, selling_price, seller_id, low_stock_alert, created_at
`

const insertItemQuery = `
	INSERT INTO inventory_items (name, category, quantity, unit, purchase_price, selling_price, seller_id, low_stock_alert)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	RETURNING id, created_at
`

type rowQuerier interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

func insertItem(ctx context.Context, q rowQuerier, item *inventory.Item) error {
	return q.QueryRowContext(ctx, insertItemQuery,
		item.Name,
		item.Category,
		item.Quantity,
		item.Unit,
		item.PurchasePrice,
		item.SellingPrice,
		item.SellerID,
		item.LowStockAlert,
	).Scan(&item.ID, &item.CreatedAt)
}

var errUnknownSeller = apperror.Invalid(inventory.ErrInvalidItem, "seller does not exist")

func (s *Store) CreateItem(ctx context.Context, item *inventory.Item) error {
	if err := insertItem(ctx, s.db, item); err != nil {
		if database.IsForeignKeyViolation(err) {
			return errUnknownSeller
		}

		return fmt.Errorf("creating inventory item: %w", err)
	}

	return nil
}

func (s *Store) GetItem(ctx context.Context, id uuid.UUID) (*inventory.Item, error) {
	query := `SELECT ` + ItemColumns + ` FROM inventory_items WHERE id = $1`

	item, err := ScanItem(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, inventory.ErrNotFound
		}

		return nil, fmt.Errorf("getting inventory item: %w", err)
	}

	return item, nil
}

func (s *Store) ListItems(ctx context.Context) ([]*inventory.Item, error) {
	query := `SELECT ` + ItemColumns + ` FROM inventory_items ORDER BY created_at DESC`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing inventory items: %w", err)
	}
	defer rows.Close()

	var items []*inventory.Item

	for rows.Next() {
		item, err := ScanItem(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning inventory item: %w", err)
		}

		items = append(items, item)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating inventory items: %w", err)
	}

	return items, nil
}

func (s *Store) UpdateItem(ctx context.Context, id uuid.UUID, patch inventory.Patch) (*inventory.Item, error) {
	query := `
		UPDATE inventory_items SET
			name = COALESCE($1, name),
			category = COALESCE($2, category),
			quantity = COALESCE($3, quantity),
			unit = COALESCE($4, unit),
			purchase_price = COALESCE($5, purchase_price),
			selling_price = COALESCE($6, selling_price),
			seller_id = CASE WHEN $7 THEN NULL ELSE COALESCE($8, seller_id) END,
			low_stock_alert = COALESCE($9, low_stock_alert)
		WHERE id = $10
		RETURNING ` + ItemColumns

	item, err := ScanItem(s.db.QueryRowContext(ctx, query,
		patch.Name,
		patch.Category,
		patch.Quantity,
		patch.Unit,
		patch.PurchasePrice,
		patch.SellingPrice,
		patch.ClearSeller,
		patch.SellerID,
		patch.LowStockAlert,
		id,
	))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, inventory.ErrNotFound
		}

		if database.IsForeignKeyViolation(err) {
			return nil, errUnknownSeller
		}

		return nil, fmt.Errorf("updating inventory item: %w", err)
	}

	return item, nil
}

// DeleteItem is a no-op for unknown ids. Items still referenced by bill lines
// cannot be removed.
func (s *Store) DeleteItem(ctx context.Context, id uuid.UUID) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM inventory_items WHERE id = $1`, id)
	if err != nil {
		if database.IsForeignKeyViolation(err) {
			return apperror.Invalid(inventory.ErrItemInUse, id.String())
		}

		return fmt.Errorf("deleting inventory item: %w", err)
	}

	return nil
}

var importLockKey = func() int64 {
	h := fnv.New64a()
	h.Write([]byte("inventory_items:import"))

	return int64(h.Sum64())
}()

type importTx struct {
	tx *sql.Tx
}

func (s *Store) BeginImport(ctx context.Context) (inventory.ImportTx, error) {
	dbTx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("beginning import tx: %w", err)
	}

	if _, err := dbTx.ExecContext(ctx, "SELECT pg_advisory_xact_lock($1)", importLockKey); err != nil {
		dbTx.Rollback()
		return nil, fmt.Errorf("acquiring import lock: %w", err)
	}

	return &importTx{tx: dbTx}, nil
}

func (itx *importTx) Commit() error   { return itx.tx.Commit() }
func (itx *importTx) Rollback() error { return itx.tx.Rollback() }

func (itx *importTx) FindDuplicates(ctx context.Context, params []inventory.CreateParams) ([]*inventory.Item, error) {
	if len(params) == 0 {
		return nil, nil
	}

	keySet := make(map[string]struct{}, len(params))
	names := make([]string, 0, len(params))

	for _, p := range params {
		keySet[inventory.DedupeKey(p.Name, p.Unit)] = struct{}{}
		names = append(names, strings.ToLower(strings.TrimSpace(p.Name)))
	}

	query := `SELECT ` + ItemColumns + `
		FROM inventory_items
		WHERE LOWER(name) = ANY($1)
		ORDER BY created_at DESC`

	rows, err := itx.tx.QueryContext(ctx, query, names)
	if err != nil {
		return nil, fmt.Errorf("finding duplicates: %w", err)
	}
	defer rows.Close()

	var duplicates []*inventory.Item

	for rows.Next() {
		item, err := ScanItem(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning inventory item: %w", err)
		}

		if _, found := keySet[inventory.DedupeKey(item.Name, item.Unit)]; !found {
			continue
		}

		duplicates = append(duplicates, item)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating duplicate rows: %w", err)
	}

	return duplicates, nil
}

func (itx *importTx) CreateItems(ctx context.Context, items []*inventory.Item) error {
	for _, item := range items {
		if err := insertItem(ctx, itx.tx, item); err != nil {
			return fmt.Errorf("creating inventory item: %w", err)
		}
	}

	return nil
}
