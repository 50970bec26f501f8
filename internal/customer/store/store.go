package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/kirana/internal/apperror"
	"github.com/MrJamesThe3rd/kirana/internal/customer"
	"github.com/MrJamesThe3rd/kirana/internal/database"
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

const customerColumns = `id, name, phone, notes, created_at`

func scanCustomer(s scanner) (*customer.Customer, error) {
	var (
		c            customer.Customer
		phone, notes sql.NullString
	)

	if err := s.Scan(&c.ID, &c.Name, &phone, &notes, &c.CreatedAt); err != nil {
		return nil, err
	}

	c.Phone = phone.String
	c.Notes = notes.String

	return &c, nil
}

func nullable(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

func (s *Store) CreateCustomer(ctx context.Context, c *customer.Customer) error {
	query := `
		INSERT INTO customers (name, phone, notes)
		VALUES ($1, $2, $3)
		RETURNING id, created_at
	`

	err := s.db.QueryRowContext(ctx, query, c.Name, nullable(c.Phone), nullable(c.Notes)).
		Scan(&c.ID, &c.CreatedAt)
	if err != nil {
		if database.IsUniqueViolation(err) {
			return apperror.Invalid(customer.ErrDuplicateName, c.Name)
		}

		return fmt.Errorf("creating customer: %w", err)
	}

	return nil
}

func (s *Store) GetCustomer(ctx context.Context, id uuid.UUID) (*customer.Customer, error) {
	query := `SELECT ` + customerColumns + ` FROM customers WHERE id = $1`

	return s.getOne(ctx, query, id)
}

func (s *Store) GetCustomerByName(ctx context.Context, name string) (*customer.Customer, error) {
	query := `SELECT ` + customerColumns + ` FROM customers WHERE name = $1`

	return s.getOne(ctx, query, name)
}

func (s *Store) getOne(ctx context.Context, query string, arg any) (*customer.Customer, error) {
	c, err := scanCustomer(s.db.QueryRowContext(ctx, query, arg))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, customer.ErrNotFound
		}

		return nil, fmt.Errorf("getting customer: %w", err)
	}

	return c, nil
}

func (s *Store) ListCustomers(ctx context.Context) ([]*customer.Customer, error) {
	query := `SELECT ` + customerColumns + ` FROM customers ORDER BY created_at DESC`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing customers: %w", err)
	}
	defer rows.Close()

	var customers []*customer.Customer

	for rows.Next() {
		c, err := scanCustomer(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning customer: %w", err)
		}

		customers = append(customers, c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating customers: %w", err)
	}

	return customers, nil
}
