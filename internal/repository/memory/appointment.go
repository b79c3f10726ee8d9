package memory

import (
	"context"
	"time"

	"github.com/jwalitptl/clinic-api/internal/model"
	"github.com/jwalitptl/clinic-api/pkg/errors"
)

type AppointmentRepository struct {
	store *Store
}

func NewAppointmentRepository(store *Store) *AppointmentRepository {
	return &AppointmentRepository{store: store}
}

// Book appends the appointment unless its (doctorId, date, time) triple
// is already held by a scheduled appointment. Both steps run under one
// write lock so concurrent bookings for the same triple cannot both
// succeed.
func (r *AppointmentRepository) Book(ctx context.Context, appointment *model.Appointment) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if r.slotTaken(appointment.DoctorID, appointment.Date, appointment.Time) {
		return errors.Conflict("the selected slot is already booked")
	}

	stored := *appointment
	r.store.appointments = append(r.store.appointments, &stored)
	return nil
}

// slotTaken is the conflict check. Callers must hold the store lock.
func (r *AppointmentRepository) slotTaken(doctorID, date, timeOfDay string) bool {
	for _, appt := range r.store.appointments {
		if appt.DoctorID == doctorID &&
			appt.Date == date &&
			appt.Time == timeOfDay &&
			appt.Status == model.AppointmentStatusScheduled {
			return true
		}
	}
	return false
}

func (r *AppointmentRepository) Get(ctx context.Context, id string) (*model.Appointment, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	appt := r.find(id)
	if appt == nil {
		return nil, errors.NotFound("appointment")
	}
	found := *appt
	return &found, nil
}

func (r *AppointmentRepository) ListActive(ctx context.Context) ([]*model.Appointment, error) {
	return r.listWhere(func(appt *model.Appointment) bool {
		return appt.Status == model.AppointmentStatusScheduled
	})
}

func (r *AppointmentRepository) ListByPatient(ctx context.Context, patientID string) ([]*model.Appointment, error) {
	return r.listWhere(func(appt *model.Appointment) bool {
		return appt.PatientID == patientID && appt.Status == model.AppointmentStatusScheduled
	})
}

func (r *AppointmentRepository) ListByDoctor(ctx context.Context, doctorID string) ([]*model.Appointment, error) {
	return r.listWhere(func(appt *model.Appointment) bool {
		return appt.DoctorID == doctorID && appt.Status == model.AppointmentStatusScheduled
	})
}

// Cancel flips the appointment to cancelled. The lookup, the state check
// and the mutation are one atomic step.
func (r *AppointmentRepository) Cancel(ctx context.Context, id string) (*model.Appointment, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	appt := r.find(id)
	if appt == nil {
		return nil, errors.NotFound("appointment")
	}
	if appt.Status == model.AppointmentStatusCancelled {
		return nil, errors.InvalidState("appointment is already cancelled")
	}

	now := time.Now()
	appt.Status = model.AppointmentStatusCancelled
	appt.CancelledAt = &now

	cancelled := *appt
	return &cancelled, nil
}

// BookedTimes returns the slot times held by scheduled appointments for
// the doctor on the date. Same definition of "occupied" as the conflict
// check in Book, so cancelling reopens a slot for both paths at once.
func (r *AppointmentRepository) BookedTimes(ctx context.Context, doctorID, date string) ([]string, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	var times []string
	for _, appt := range r.store.appointments {
		if appt.DoctorID == doctorID &&
			appt.Date == date &&
			appt.Status == model.AppointmentStatusScheduled {
			times = append(times, appt.Time)
		}
	}
	return times, nil
}

// find returns the live record. Callers must hold the store lock.
func (r *AppointmentRepository) find(id string) *model.Appointment {
	for _, appt := range r.store.appointments {
		if appt.ID == id {
			return appt
		}
	}
	return nil
}

func (r *AppointmentRepository) listWhere(keep func(*model.Appointment) bool) ([]*model.Appointment, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	appointments := make([]*model.Appointment, 0)
	for _, appt := range r.store.appointments {
		if keep(appt) {
			found := *appt
			appointments = append(appointments, &found)
		}
	}
	return appointments, nil
}
