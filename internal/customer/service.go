package customer

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/kirana/internal/apperror"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=customer
type Repository interface {
	CreateCustomer(ctx context.Context, c *Customer) error
	GetCustomer(ctx context.Context, id uuid.UUID) (*Customer, error)
	GetCustomerByName(ctx context.Context, name string) (*Customer, error)
	ListCustomers(ctx context.Context) ([]*Customer, error)
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Create rejects a name that is already taken. The unique constraint backs the
// pre-check for concurrent creates.
func (s *Service) Create(ctx context.Context, params CreateParams) (*Customer, error) {
	name := strings.TrimSpace(params.Name)
	if name == "" {
		return nil, apperror.Invalid(ErrInvalidCustomer, "name is required")
	}

	_, err := s.repo.GetCustomerByName(ctx, name)
	if err == nil {
		return nil, apperror.Invalid(ErrDuplicateName, name)
	}

	if !errors.Is(err, ErrNotFound) {
		return nil, err
	}

	c := &Customer{
		Name:  name,
		Phone: strings.TrimSpace(params.Phone),
		Notes: params.Notes,
	}
	if err := s.repo.CreateCustomer(ctx, c); err != nil {
		return nil, err
	}

	return c, nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Customer, error) {
	return s.repo.GetCustomer(ctx, id)
}

func (s *Service) List(ctx context.Context) ([]*Customer, error) {
	return s.repo.ListCustomers(ctx)
}
