package transaction

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/kirana/internal/apperror"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=transaction
type Repository interface {
	CreateTransaction(ctx context.Context, tx *Transaction) error
	GetTransaction(ctx context.Context, id uuid.UUID) (*Transaction, error)
	ListTransactions(ctx context.Context, filter ListFilter) ([]*Transaction, error)
	UpdateTransaction(ctx context.Context, id uuid.UUID, patch Patch) (*Transaction, error)
	DeleteTransaction(ctx context.Context, id uuid.UUID) error
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

type CreateParams struct {
	Type     Type
	Category string
	Amount   int64
	Date     time.Time
	Notes    string
}

type ListFilter struct {
	Type      *Type
	StartDate *time.Time
	EndDate   *time.Time
}

// Patch is a partial update; nil fields keep their stored value.
type Patch struct {
	Type     *Type
	Category *string
	Amount   *int64
	Date     *time.Time
	Notes    *string
}

func (s *Service) Create(ctx context.Context, params CreateParams) (*Transaction, error) {
	tx := &Transaction{
		Type:     params.Type,
		Category: strings.TrimSpace(params.Category),
		Amount:   params.Amount,
		Date:     params.Date,
		Notes:    params.Notes,
	}

	switch {
	case !tx.Type.Valid():
		return nil, apperror.Invalidf(ErrInvalidTransaction, "type must be income or expense, got %q", tx.Type)
	case tx.Category == "":
		return nil, apperror.Invalid(ErrInvalidTransaction, "category is required")
	case tx.Date.IsZero():
		return nil, apperror.Invalid(ErrInvalidTransaction, "date is required")
	}

	if err := s.repo.CreateTransaction(ctx, tx); err != nil {
		return nil, err
	}

	return tx, nil
}

// List returns entries newest first by date, then by creation time.
func (s *Service) List(ctx context.Context, filter ListFilter) ([]*Transaction, error) {
	return s.repo.ListTransactions(ctx, filter)
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Transaction, error) {
	return s.repo.GetTransaction(ctx, id)
}

func (s *Service) Update(ctx context.Context, id uuid.UUID, patch Patch) (*Transaction, error) {
	if patch.Type != nil && !patch.Type.Valid() {
		return nil, apperror.Invalidf(ErrInvalidTransaction, "type must be income or expense, got %q", *patch.Type)
	}

	if patch.Category != nil && strings.TrimSpace(*patch.Category) == "" {
		return nil, apperror.Invalid(ErrInvalidTransaction, "category must not be empty")
	}

	return s.repo.UpdateTransaction(ctx, id, patch)
}

// Delete succeeds when the entry does not exist.
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.DeleteTransaction(ctx, id)
}
