package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/kirana/internal/transaction"
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

// scanTransaction reads a transaction row from the scanner and returns a populated Transaction.
// Expected column order: id, type, category, amount, date, notes, created_at
func scanTransaction(s scanner) (*transaction.Transaction, error) {
	var tx transaction.Transaction

	var typeStr string

	var notes sql.NullString

	if err := s.Scan(&tx.ID, &typeStr, &tx.Category, &tx.Amount, &tx.Date, &notes, &tx.CreatedAt); err != nil {
		return nil, err
	}

	tx.Type = transaction.Type(typeStr)
	tx.Notes = notes.String

	return &tx, nil
}

const selectTransactionColumns = `id, type, category, amount, date, notes, created_at`

func (s *Store) CreateTransaction(ctx context.Context, tx *transaction.Transaction) error {
	query := `
		INSERT INTO transactions (type, category, amount, date, notes)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at
	`

	err := s.db.QueryRowContext(ctx, query,
		tx.Type,
		tx.Category,
		tx.Amount,
		tx.Date,
		sql.NullString{String: tx.Notes, Valid: tx.Notes != ""},
	).Scan(&tx.ID, &tx.CreatedAt)
	if err != nil {
		return fmt.Errorf("creating transaction: %w", err)
	}

	return nil
}

func (s *Store) GetTransaction(ctx context.Context, id uuid.UUID) (*transaction.Transaction, error) {
	query := `SELECT ` + selectTransactionColumns + ` FROM transactions WHERE id = $1`

	tx, err := scanTransaction(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, transaction.ErrNotFound
		}

		return nil, fmt.Errorf("getting transaction: %w", err)
	}

	return tx, nil
}

func (s *Store) ListTransactions(ctx context.Context, filter transaction.ListFilter) ([]*transaction.Transaction, error) {
	query := `SELECT ` + selectTransactionColumns + ` FROM transactions WHERE TRUE`

	var args []any

	argIdx := 1

	if filter.Type != nil {
		query += fmt.Sprintf(" AND type = $%d", argIdx)

		args = append(args, string(*filter.Type))
		argIdx++
	}

	if filter.StartDate != nil {
		query += fmt.Sprintf(" AND date >= $%d", argIdx)

		args = append(args, *filter.StartDate)
		argIdx++
	}

	if filter.EndDate != nil {
		query += fmt.Sprintf(" AND date <= $%d", argIdx)

		args = append(args, *filter.EndDate)
	}

	query += " ORDER BY date DESC, created_at DESC"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing transactions: %w", err)
	}
	defer rows.Close()

	var txs []*transaction.Transaction

	for rows.Next() {
		tx, err := scanTransaction(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning transaction: %w", err)
		}

		txs = append(txs, tx)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating transactions: %w", err)
	}

	return txs, nil
}

func (s *Store) UpdateTransaction(ctx context.Context, id uuid.UUID, patch transaction.Patch) (*transaction.Transaction, error) {
	query := `
		UPDATE transactions SET
			type = COALESCE($1, type),
			category = COALESCE($2, category),
			amount = COALESCE($3, amount),
			date = COALESCE($4, date),
			notes = COALESCE($5, notes)
		WHERE id = $6
		RETURNING ` + selectTransactionColumns

	var typeArg *string
	if patch.Type != nil {
		typeArg = new(string(*patch.Type))
	}

	tx, err := scanTransaction(s.db.QueryRowContext(ctx, query,
		typeArg,
		patch.Category,
		patch.Amount,
		patch.Date,
		patch.Notes,
		id,
	))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, transaction.ErrNotFound
		}

		return nil, fmt.Errorf("updating transaction: %w", err)
	}

	return tx, nil
}

// DeleteTransaction removes the row; unknown ids are not an error.
func (s *Store) DeleteTransaction(ctx context.Context, id uuid.UUID) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM transactions WHERE id = $1`, id); err != nil {
		return fmt.Errorf("deleting transaction: %w", err)
	}

	return nil
}
