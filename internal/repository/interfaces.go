package repository

import (
	"context"

	"github.com/jwalitptl/clinic-api/internal/model"
)

// PatientRepository owns patient records. Email uniqueness is enforced
// atomically by Create against the lower-cased email.
type PatientRepository interface {
	Create(ctx context.Context, patient *model.Patient) error
	Get(ctx context.Context, id string) (*model.Patient, error)
	GetByEmail(ctx context.Context, email string) (*model.Patient, error)
	List(ctx context.Context) ([]*model.Patient, error)
}

// AppointmentRepository owns the appointment ledger and is the sole
// mutator of appointment status.
type AppointmentRepository interface {
	// Book inserts the appointment unless a scheduled appointment already
	// holds the same (doctorId, date, time) triple. The check and the
	// insert are a single atomic step.
	Book(ctx context.Context, appointment *model.Appointment) error
	Get(ctx context.Context, id string) (*model.Appointment, error)
	ListActive(ctx context.Context) ([]*model.Appointment, error)
	ListByPatient(ctx context.Context, patientID string) ([]*model.Appointment, error)
	ListByDoctor(ctx context.Context, doctorID string) ([]*model.Appointment, error)
	// Cancel flips a scheduled appointment to cancelled and stamps
	// cancelledAt. Cancelling twice is an InvalidState error.
	Cancel(ctx context.Context, id string) (*model.Appointment, error)
	// BookedTimes returns the slot times held by scheduled appointments
	// for the doctor on the given date.
	BookedTimes(ctx context.Context, doctorID, date string) ([]string, error)
}

// CatalogRepository serves the immutable doctor roster and slot catalog.
type CatalogRepository interface {
	ListDoctors(ctx context.Context) ([]*model.Doctor, error)
	GetDoctor(ctx context.Context, id string) (*model.Doctor, error)
	Slots(ctx context.Context) []string
}
