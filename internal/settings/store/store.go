package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/MrJamesThe3rd/kirana/internal/settings"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

const settingsColumns = `
	shop_name, owner_name, shop_phone, shop_address, language, dark_mode,
	low_stock_limit_kg, low_stock_limit_liters, low_stock_limit_pack,
	low_stock_limit_pieces, low_stock_limit_default, updated_at
`

const ensureRowQuery = `INSERT INTO settings (id) VALUES ($1) ON CONFLICT (id) DO NOTHING`

type scanner interface {
	Scan(dest ...any) error
}

func scanSettings(s scanner) (*settings.Settings, error) {
	var st settings.Settings

	if err := s.Scan(
		&st.ShopName, &st.OwnerName, &st.ShopPhone, &st.ShopAddress, &st.Language, &st.DarkMode,
		&st.LowStockLimitKg, &st.LowStockLimitLiters, &st.LowStockLimitPack,
		&st.LowStockLimitPieces, &st.LowStockLimitDefault, &st.UpdatedAt,
	); err != nil {
		return nil, err
	}

	return &st, nil
}

// GetSettings inserts the singleton row when absent and reads it back. The
// insert is a no-op on conflict, so concurrent first reads do not race.
func (s *Store) GetSettings(ctx context.Context) (*settings.Settings, error) {
	if _, err := s.db.ExecContext(ctx, ensureRowQuery, settings.SingletonID); err != nil {
		return nil, fmt.Errorf("ensuring settings row: %w", err)
	}

	query := `SELECT ` + settingsColumns + ` FROM settings WHERE id = $1`

	st, err := scanSettings(s.db.QueryRowContext(ctx, query, settings.SingletonID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, settings.ErrNotFound
		}

		return nil, fmt.Errorf("getting settings: %w", err)
	}

	return st, nil
}

func (s *Store) UpdateSettings(ctx context.Context, patch settings.Patch) (*settings.Settings, error) {
	if _, err := s.db.ExecContext(ctx, ensureRowQuery, settings.SingletonID); err != nil {
		return nil, fmt.Errorf("ensuring settings row: %w", err)
	}

	query := `
		UPDATE settings SET
			shop_name = COALESCE($1, shop_name),
			owner_name = COALESCE($2, owner_name),
			shop_phone = COALESCE($3, shop_phone),
			shop_address = COALESCE($4, shop_address),
			language = COALESCE($5, language),
			dark_mode = COALESCE($6, dark_mode),
			low_stock_limit_kg = COALESCE($7, low_stock_limit_kg),
			low_stock_limit_liters = COALESCE($8, low_stock_limit_liters),
			low_stock_limit_pack = COALESCE($9, low_stock_limit_pack),
			low_stock_limit_pieces = COALESCE($10, low_stock_limit_pieces),
			low_stock_limit_default = COALESCE($11, low_stock_limit_default),
			updated_at = NOW()
		WHERE id = $12
		RETURNING ` + settingsColumns

	st, err := scanSettings(s.db.QueryRowContext(ctx, query,
		patch.ShopName,
		patch.OwnerName,
		patch.ShopPhone,
		patch.ShopAddress,
		patch.Language,
		patch.DarkMode,
		patch.LowStockLimitKg,
		patch.LowStockLimitLiters,
		patch.LowStockLimitPack,
		patch.LowStockLimitPieces,
		patch.LowStockLimitDefault,
		settings.SingletonID,
	))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, settings.ErrNotFound
		}

		return nil, fmt.Errorf("updating settings: %w", err)
	}

	return st, nil
}
