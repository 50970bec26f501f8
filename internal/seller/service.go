package seller

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/kirana/internal/apperror"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=seller
type Repository interface {
	CreateSeller(ctx context.Context, s *Seller) error
	GetSeller(ctx context.Context, id uuid.UUID) (*Seller, error)
	ListSellers(ctx context.Context) ([]*Seller, error)
	UpdateSeller(ctx context.Context, id uuid.UUID, patch Patch) (*Seller, error)
	DeleteSeller(ctx context.Context, id uuid.UUID) error
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) Create(ctx context.Context, params CreateParams) (*Seller, error) {
	sel := &Seller{
		Name:        strings.TrimSpace(params.Name),
		Phone:       strings.TrimSpace(params.Phone),
		ProductType: strings.TrimSpace(params.ProductType),
		Address:     params.Address,
		Notes:       params.Notes,
	}

	switch {
	case sel.Name == "":
		return nil, apperror.Invalid(ErrInvalidSeller, "name is required")
	case sel.Phone == "":
		return nil, apperror.Invalid(ErrInvalidSeller, "phone is required")
	case sel.ProductType == "":
		return nil, apperror.Invalid(ErrInvalidSeller, "productType is required")
	}

	if err := s.repo.CreateSeller(ctx, sel); err != nil {
		return nil, err
	}

	return sel, nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Seller, error) {
	return s.repo.GetSeller(ctx, id)
}

func (s *Service) List(ctx context.Context) ([]*Seller, error) {
	return s.repo.ListSellers(ctx)
}

func (s *Service) Update(ctx context.Context, id uuid.UUID, patch Patch) (*Seller, error) {
	if patch.Name != nil && strings.TrimSpace(*patch.Name) == "" {
		return nil, apperror.Invalid(ErrInvalidSeller, "name must not be empty")
	}

	return s.repo.UpdateSeller(ctx, id, patch)
}

// Delete clears the seller from inventory items and succeeds for unknown ids.
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.DeleteSeller(ctx, id)
}
