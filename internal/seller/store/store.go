package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/kirana/internal/seller"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

type scanner interface {
	Scan(dest ...any) error
}

const sellerColumns = `id, name, phone, product_type, address, notes, created_at`

func scanSeller(s scanner) (*seller.Seller, error) {
	var (
		sel            seller.Seller
		address, notes sql.NullString
	)

	if err := s.Scan(&sel.ID, &sel.Name, &sel.Phone, &sel.ProductType, &address, &notes, &sel.CreatedAt); err != nil {
		return nil, err
	}

	sel.Address = address.String
	sel.Notes = notes.String

	return &sel, nil
}

func nullable(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

func (s *Store) CreateSeller(ctx context.Context, sel *seller.Seller) error {
	query := `
		INSERT INTO sellers (name, phone, product_type, address, notes)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at
	`

	err := s.db.QueryRowContext(ctx, query,
		sel.Name, sel.Phone, sel.ProductType, nullable(sel.Address), nullable(sel.Notes),
	).Scan(&sel.ID, &sel.CreatedAt)
	if err != nil {
		return fmt.Errorf("creating seller: %w", err)
	}

	return nil
}

func (s *Store) GetSeller(ctx context.Context, id uuid.UUID) (*seller.Seller, error) {
	query := `SELECT ` + sellerColumns + ` FROM sellers WHERE id = $1`

	sel, err := scanSeller(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, seller.ErrNotFound
		}

		return nil, fmt.Errorf("getting seller: %w", err)
	}

	return sel, nil
}

func (s *Store) ListSellers(ctx context.Context) ([]*seller.Seller, error) {
	query := `SELECT ` + sellerColumns + ` FROM sellers ORDER BY created_at DESC`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing sellers: %w", err)
	}
	defer rows.Close()

	var sellers []*seller.Seller

	for rows.Next() {
		sel, err := scanSeller(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning seller: %w", err)
		}

		sellers = append(sellers, sel)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating sellers: %w", err)
	}

	return sellers, nil
}

func (s *Store) UpdateSeller(ctx context.Context, id uuid.UUID, patch seller.Patch) (*seller.Seller, error) {
	query := `
		UPDATE sellers SET
			name = COALESCE($1, name),
			phone = COALESCE($2, phone),
			product_type = COALESCE($3, product_type),
			address = COALESCE($4, address),
			notes = COALESCE($5, notes)
		WHERE id = $6
		RETURNING ` + sellerColumns

	sel, err := scanSeller(s.db.QueryRowContext(ctx, query,
		patch.Name, patch.Phone, patch.ProductType, patch.Address, patch.Notes, id,
	))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, seller.ErrNotFound
		}

		return nil, fmt.Errorf("updating seller: %w", err)
	}

	return sel, nil
}

func (s *Store) DeleteSeller(ctx context.Context, id uuid.UUID) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM sellers WHERE id = $1`, id); err != nil {
		return fmt.Errorf("deleting seller: %w", err)
	}

	return nil
}
