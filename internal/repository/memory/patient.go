package memory

import (
	"context"
	"strings"

	"github.com/jwalitptl/clinic-api/internal/model"
	"github.com/jwalitptl/clinic-api/pkg/errors"
)

type PatientRepository struct {
	store *Store
}

func NewPatientRepository(store *Store) *PatientRepository {
	return &PatientRepository{store: store}
}

// Create stores the patient, lower-casing the email first. The uniqueness
// check and the append happen under one write lock.
func (r *PatientRepository) Create(ctx context.Context, patient *model.Patient) error {
	patient.Email = strings.ToLower(patient.Email)

	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	for _, existing := range r.store.patients {
		if existing.Email == patient.Email {
			return errors.Conflict("a patient with this email is already registered")
		}
	}

	stored := *patient
	r.store.patients = append(r.store.patients, &stored)
	return nil
}

func (r *PatientRepository) Get(ctx context.Context, id string) (*model.Patient, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	for _, patient := range r.store.patients {
		if patient.ID == id {
			found := *patient
			return &found, nil
		}
	}
	return nil, errors.NotFound("patient")
}

func (r *PatientRepository) GetByEmail(ctx context.Context, email string) (*model.Patient, error) {
	email = strings.ToLower(email)

	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	for _, patient := range r.store.patients {
		if patient.Email == email {
			found := *patient
			return &found, nil
		}
	}
	return nil, errors.NotFound("patient")
}

// List returns a snapshot in insertion order.
func (r *PatientRepository) List(ctx context.Context) ([]*model.Patient, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	patients := make([]*model.Patient, 0, len(r.store.patients))
	for _, patient := range r.store.patients {
		found := *patient
		patients = append(patients, &found)
	}
	return patients, nil
}
