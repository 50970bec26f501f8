// Package matching learns how suppliers name the shop's items and suggests
// the shop's own name for a supplier's raw product name.
package matching

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/kirana/internal/apperror"
	"github.com/MrJamesThe3rd/kirana/internal/inventory"
)

var ErrInvalidAlias = errors.New("invalid alias")

// Alias maps a raw pattern found in supplier names to the shop's item name.
type Alias struct {
	ID         uuid.UUID
	RawPattern string
	ItemName   string
	CreatedAt  time.Time
}

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=matching
type Repository interface {
	// FindMatch returns the item name of the longest pattern contained in raw,
	// case-insensitively, or "" when none matches.
	FindMatch(ctx context.Context, raw string) (string, error)
	SaveAlias(ctx context.Context, rawPattern, itemName string) (*Alias, error)
	ListAliases(ctx context.Context) ([]*Alias, error)
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Suggest returns the preferred item name for raw, or "" if nothing matches.
func (s *Service) Suggest(ctx context.Context, raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", nil
	}

	return s.repo.FindMatch(ctx, raw)
}

// Learn remembers a pattern. Learning an existing pattern replaces its item name.
func (s *Service) Learn(ctx context.Context, rawPattern, itemName string) (*Alias, error) {
	rawPattern = strings.TrimSpace(rawPattern)
	itemName = strings.TrimSpace(itemName)

	if rawPattern == "" || itemName == "" {
		return nil, apperror.Invalid(ErrInvalidAlias, "rawPattern and itemName are required")
	}

	return s.repo.SaveAlias(ctx, rawPattern, itemName)
}

func (s *Service) List(ctx context.Context) ([]*Alias, error) {
	return s.repo.ListAliases(ctx)
}

// Apply renames imported rows whose names match a learned alias and returns
// how many were renamed.
func (s *Service) Apply(ctx context.Context, params []inventory.CreateParams) (int, error) {
	renamed := 0

	for i := range params {
		name, err := s.Suggest(ctx, params[i].Name)
		if err != nil {
			return renamed, err
		}

		if name != "" && name != params[i].Name {
			params[i].Name = name
			renamed++
		}
	}

	return renamed, nil
}
