package appointment

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/jwalitptl/clinic-api/internal/model"
	"github.com/jwalitptl/clinic-api/internal/repository"
	"github.com/jwalitptl/clinic-api/pkg/errors"
	"github.com/jwalitptl/clinic-api/pkg/validator"
)

// Service owns the booking workflow over the appointment ledger. The
// precondition order in Book is fixed: patient, doctor, slot validity,
// then the conflict check inside the repository.
type Service struct {
	repo        repository.AppointmentRepository
	patientRepo repository.PatientRepository
	catalogRepo repository.CatalogRepository
}

func NewService(repo repository.AppointmentRepository, patientRepo repository.PatientRepository, catalogRepo repository.CatalogRepository) *Service {
	return &Service{
		repo:        repo,
		patientRepo: patientRepo,
		catalogRepo: catalogRepo,
	}
}

func (s *Service) Book(ctx context.Context, req *model.CreateAppointmentRequest) (*model.EnrichedAppointment, error) {
	patient, err := s.patientRepo.Get(ctx, req.PatientID)
	if err != nil {
		return nil, err
	}

	doctor, err := s.catalogRepo.GetDoctor(ctx, req.DoctorID)
	if err != nil {
		return nil, err
	}

	if !validator.ValidTime(req.Time, s.catalogRepo.Slots(ctx)) {
		return nil, errors.Validation("invalid time slot", errors.FieldError{
			Field:   "time",
			Message: "time is not one of the offered slots",
		})
	}

	appointment := &model.Appointment{
		ID:        uuid.New().String(),
		PatientID: req.PatientID,
		DoctorID:  req.DoctorID,
		Date:      req.Date,
		Time:      req.Time,
		Status:    model.AppointmentStatusScheduled,
		CreatedAt: time.Now(),
	}

	if err := s.repo.Book(ctx, appointment); err != nil {
		return nil, err
	}

	return &model.EnrichedAppointment{
		Appointment: *appointment,
		Patient:     &model.PatientRef{ID: patient.ID, Name: patient.Name},
		Doctor:      &model.DoctorRef{ID: doctor.ID, Name: doctor.Name, Specialty: doctor.Specialty},
	}, nil
}

func (s *Service) GetAppointment(ctx context.Context, id string) (*model.EnrichedAppointment, error) {
	appointment, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.enrich(ctx, appointment), nil
}

// ListAppointments returns active appointments, optionally filtered by
// patient or doctor, enriched for display.
func (s *Service) ListAppointments(ctx context.Context, patientID, doctorID string) ([]*model.EnrichedAppointment, error) {
	var (
		appointments []*model.Appointment
		err          error
	)

	switch {
	case patientID != "":
		appointments, err = s.repo.ListByPatient(ctx, patientID)
	case doctorID != "":
		appointments, err = s.repo.ListByDoctor(ctx, doctorID)
	default:
		appointments, err = s.repo.ListActive(ctx)
	}
	if err != nil {
		return nil, err
	}

	enriched := make([]*model.EnrichedAppointment, 0, len(appointments))
	for _, appointment := range appointments {
		enriched = append(enriched, s.enrich(ctx, appointment))
	}
	return enriched, nil
}

func (s *Service) Cancel(ctx context.Context, id string) (*model.Appointment, error) {
	return s.repo.Cancel(ctx, id)
}

// Availability lists the catalog slots still free for the doctor on the
// date, preserving catalog order.
func (s *Service) Availability(ctx context.Context, doctorID, date string) (*model.DoctorAvailability, error) {
	doctor, err := s.catalogRepo.GetDoctor(ctx, doctorID)
	if err != nil {
		return nil, err
	}

	booked, err := s.repo.BookedTimes(ctx, doctorID, date)
	if err != nil {
		return nil, err
	}

	taken := make(map[string]struct{}, len(booked))
	for _, t := range booked {
		taken[t] = struct{}{}
	}

	available := make([]string, 0)
	for _, slot := range s.catalogRepo.Slots(ctx) {
		if _, ok := taken[slot]; !ok {
			available = append(available, slot)
		}
	}

	return &model.DoctorAvailability{
		Doctor:         model.DoctorRef{ID: doctor.ID, Name: doctor.Name},
		Date:           date,
		AvailableSlots: available,
	}, nil
}

// enrich decorates the record with participant summaries. A vanished
// reference yields a nil summary rather than an error.
func (s *Service) enrich(ctx context.Context, appointment *model.Appointment) *model.EnrichedAppointment {
	enriched := &model.EnrichedAppointment{Appointment: *appointment}

	if patient, err := s.patientRepo.Get(ctx, appointment.PatientID); err == nil {
		enriched.Patient = &model.PatientRef{ID: patient.ID, Name: patient.Name}
	}
	if doctor, err := s.catalogRepo.GetDoctor(ctx, appointment.DoctorID); err == nil {
		enriched.Doctor = &model.DoctorRef{ID: doctor.ID, Name: doctor.Name, Specialty: doctor.Specialty}
	}
	return enriched
}
