package settings

import (
	"context"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=settings
type Repository interface {
	GetSettings(ctx context.Context) (*Settings, error)
	UpdateSettings(ctx context.Context, patch Patch) (*Settings, error)
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Get returns the settings row, creating it with defaults if it is missing.
func (s *Service) Get(ctx context.Context) (*Settings, error) {
	return s.repo.GetSettings(ctx)
}

func (s *Service) Update(ctx context.Context, patch Patch) (*Settings, error) {
	return s.repo.UpdateSettings(ctx, patch)
}
