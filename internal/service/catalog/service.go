package catalog

import (
	"context"

	"github.com/jwalitptl/clinic-api/internal/model"
	"github.com/jwalitptl/clinic-api/internal/repository"
)

// Service serves the read-only doctor roster and slot catalog.
type Service struct {
	repo repository.CatalogRepository
}

func NewService(repo repository.CatalogRepository) *Service {
	return &Service{repo: repo}
}

func (s *Service) ListDoctors(ctx context.Context) ([]*model.Doctor, error) {
	return s.repo.ListDoctors(ctx)
}

func (s *Service) GetDoctor(ctx context.Context, id string) (*model.Doctor, error) {
	return s.repo.GetDoctor(ctx, id)
}

func (s *Service) Slots(ctx context.Context) []string {
	return s.repo.Slots(ctx)
}
