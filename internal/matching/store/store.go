package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/MrJamesThe3rd/kirana/internal/matching"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

func (s *Store) FindMatch(ctx context.Context, raw string) (string, error) {
	query := `
		SELECT item_name
		FROM item_aliases
		WHERE $1 ILIKE '%' || raw_pattern || '%'
		ORDER BY LENGTH(raw_pattern) DESC, created_at DESC
		LIMIT 1
	`

	var itemName string

	err := s.db.QueryRowContext(ctx, query, raw).Scan(&itemName)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", nil
		}

		return "", fmt.Errorf("finding alias: %w", err)
	}

	return itemName, nil
}

func (s *Store) SaveAlias(ctx context.Context, rawPattern, itemName string) (*matching.Alias, error) {
	query := `
		INSERT INTO item_aliases (raw_pattern, item_name)
		VALUES ($1, $2)
		ON CONFLICT (raw_pattern) DO UPDATE SET item_name = EXCLUDED.item_name
		RETURNING id, raw_pattern, item_name, created_at
	`

	var a matching.Alias

	err := s.db.QueryRowContext(ctx, query, rawPattern, itemName).
		Scan(&a.ID, &a.RawPattern, &a.ItemName, &a.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("saving alias: %w", err)
	}

	return &a, nil
}

func (s *Store) ListAliases(ctx context.Context) ([]*matching.Alias, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, raw_pattern, item_name, created_at FROM item_aliases ORDER BY raw_pattern`)
	if err != nil {
		return nil, fmt.Errorf("listing aliases: %w", err)
	}
	defer rows.Close()

	var aliases []*matching.Alias

	for rows.Next() {
		var a matching.Alias
		if err := rows.Scan(&a.ID, &a.RawPattern, &a.ItemName, &a.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning alias: %w", err)
		}

		aliases = append(aliases, &a)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating aliases: %w", err)
	}

	return aliases, nil
}
