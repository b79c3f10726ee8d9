package memory

import (
	"context"

	"github.com/jwalitptl/clinic-api/internal/model"
	"github.com/jwalitptl/clinic-api/pkg/errors"
)

// CatalogRepository reads the seeded doctor roster and slot catalog.
// Everything it serves is immutable after NewStore, so no locking.
type CatalogRepository struct {
	store *Store
}

func NewCatalogRepository(store *Store) *CatalogRepository {
	return &CatalogRepository{store: store}
}

func (r *CatalogRepository) ListDoctors(ctx context.Context) ([]*model.Doctor, error) {
	doctors := make([]*model.Doctor, 0, len(r.store.doctors))
	for i := range r.store.doctors {
		doctor := r.store.doctors[i]
		doctors = append(doctors, &doctor)
	}
	return doctors, nil
}

func (r *CatalogRepository) GetDoctor(ctx context.Context, id string) (*model.Doctor, error) {
	for i := range r.store.doctors {
		if r.store.doctors[i].ID == id {
			doctor := r.store.doctors[i]
			return &doctor, nil
		}
	}
	return nil, errors.NotFound("doctor")
}

func (r *CatalogRepository) Slots(ctx context.Context) []string {
	slots := make([]string, len(r.store.slots))
	copy(slots, r.store.slots)
	return slots
}
