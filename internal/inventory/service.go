package inventory

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/kirana/internal/apperror"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=inventory
type Repository interface {
	CreateItem(ctx context.Context, item *Item) error
	GetItem(ctx context.Context, id uuid.UUID) (*Item, error)
	ListItems(ctx context.Context) ([]*Item, error)
	UpdateItem(ctx context.Context, id uuid.UUID, patch Patch) (*Item, error)
	DeleteItem(ctx context.Context, id uuid.UUID) error

	BeginImport(ctx context.Context) (ImportTx, error)
}

// ImportTx serializes price-list imports so duplicate detection and inserts
// see a consistent catalogue.
type ImportTx interface {
	FindDuplicates(ctx context.Context, params []CreateParams) ([]*Item, error)
	CreateItems(ctx context.Context, items []*Item) error
	Commit() error
	Rollback() error
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) Create(ctx context.Context, params CreateParams) (*Item, error) {
	if err := validateParams(params); err != nil {
		return nil, err
	}

	item := paramsToItem(params)
	if err := s.repo.CreateItem(ctx, item); err != nil {
		return nil, err
	}

	return item, nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Item, error) {
	return s.repo.GetItem(ctx, id)
}

func (s *Service) List(ctx context.Context) ([]*Item, error) {
	return s.repo.ListItems(ctx)
}

func (s *Service) Update(ctx context.Context, id uuid.UUID, patch Patch) (*Item, error) {
	if err := validatePatch(patch); err != nil {
		return nil, err
	}

	return s.repo.UpdateItem(ctx, id, patch)
}

// Delete succeeds when the item does not exist.
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.DeleteItem(ctx, id)
}

type ImportResult struct {
	Imported  []*Item
	New       []CreateParams
	Conflicts []Conflict
}

// Conflict pairs an incoming price-list row with the catalogue item that has
// the same name and unit.
type Conflict struct {
	Incoming CreateParams
	Existing *Item
}

// ImportBatch creates every row unless some of them already exist. When
// conflicts are found nothing is written and the caller decides via CreateBatch.
func (s *Service) ImportBatch(ctx context.Context, params []CreateParams) (*ImportResult, error) {
	if len(params) == 0 {
		return &ImportResult{}, nil
	}

	for _, p := range params {
		if err := validateParams(p); err != nil {
			return nil, err
		}
	}

	itx, err := s.repo.BeginImport(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin import: %w", err)
	}
	defer itx.Rollback()

	duplicates, err := itx.FindDuplicates(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("find duplicates: %w", err)
	}

	lookup := make(map[string]*Item, len(duplicates))
	for _, d := range duplicates {
		lookup[DedupeKey(d.Name, d.Unit)] = d
	}

	var newParams []CreateParams

	var conflicts []Conflict

	for _, p := range params {
		existing, found := lookup[DedupeKey(p.Name, p.Unit)]
		if found {
			conflicts = append(conflicts, Conflict{Incoming: p, Existing: existing})
			continue
		}

		newParams = append(newParams, p)
	}

	if len(conflicts) > 0 {
		return &ImportResult{New: newParams, Conflicts: conflicts}, nil
	}

	items := paramsToItems(newParams)
	if err := itx.CreateItems(ctx, items); err != nil {
		return nil, fmt.Errorf("create items: %w", err)
	}

	if err := itx.Commit(); err != nil {
		return nil, fmt.Errorf("commit import: %w", err)
	}

	return &ImportResult{Imported: items}, nil
}

// CreateBatch writes rows the caller already reviewed, skipping duplicate checks.
func (s *Service) CreateBatch(ctx context.Context, params []CreateParams) ([]*Item, error) {
	if len(params) == 0 {
		return nil, nil
	}

	for _, p := range params {
		if err := validateParams(p); err != nil {
			return nil, err
		}
	}

	itx, err := s.repo.BeginImport(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin import: %w", err)
	}
	defer itx.Rollback()

	items := paramsToItems(params)
	if err := itx.CreateItems(ctx, items); err != nil {
		return nil, fmt.Errorf("create items: %w", err)
	}

	if err := itx.Commit(); err != nil {
		return nil, fmt.Errorf("commit import: %w", err)
	}

	return items, nil
}

// DedupeKey identifies an item by case-insensitive name and unit.
func DedupeKey(name, unit string) string {
	return strings.ToLower(strings.TrimSpace(name)) + "\x00" + strings.ToLower(strings.TrimSpace(unit))
}

func validateParams(p CreateParams) error {
	switch {
	case strings.TrimSpace(p.Name) == "":
		return apperror.Invalid(ErrInvalidItem, "name is required")
	case strings.TrimSpace(p.Category) == "":
		return apperror.Invalid(ErrInvalidItem, "category is required")
	case strings.TrimSpace(p.Unit) == "":
		return apperror.Invalid(ErrInvalidItem, "unit is required")
	case p.Quantity.IsNegative():
		return apperror.Invalid(ErrInvalidItem, "quantity must not be negative")
	case p.PurchasePrice < 0 || p.SellingPrice < 0:
		return apperror.Invalid(ErrInvalidItem, "prices must not be negative")
	}

	return nil
}

func validatePatch(p Patch) error {
	switch {
	case p.Name != nil && strings.TrimSpace(*p.Name) == "":
		return apperror.Invalid(ErrInvalidItem, "name must not be empty")
	case p.Unit != nil && strings.TrimSpace(*p.Unit) == "":
		return apperror.Invalid(ErrInvalidItem, "unit must not be empty")
	case p.Quantity != nil && p.Quantity.IsNegative():
		return apperror.Invalid(ErrInvalidItem, "quantity must not be negative")
	case p.PurchasePrice != nil && *p.PurchasePrice < 0, p.SellingPrice != nil && *p.SellingPrice < 0:
		return apperror.Invalid(ErrInvalidItem, "prices must not be negative")
	}

	return nil
}

func paramsToItem(p CreateParams) *Item {
	return &Item{
		Name:          strings.TrimSpace(p.Name),
		Category:      strings.TrimSpace(p.Category),
		Quantity:      p.Quantity,
		Unit:          strings.TrimSpace(p.Unit),
		PurchasePrice: p.PurchasePrice,
		SellingPrice:  p.SellingPrice,
		SellerID:      p.SellerID,
		LowStockAlert: p.LowStockAlert,
	}
}

func paramsToItems(params []CreateParams) []*Item {
	items := make([]*Item, len(params))
	for i, p := range params {
		items[i] = paramsToItem(p)
	}

	return items
}
