package model

import (
	"time"
)

type AppointmentStatus string

const (
	AppointmentStatusScheduled AppointmentStatus = "scheduled"
	AppointmentStatusCancelled AppointmentStatus = "cancelled"
)

// Appointment is a booking for one doctor/date/time slot. Cancellation is
// a one-way status flip; records are never removed from the ledger.
type Appointment struct {
	ID          string            `json:"id"`
	PatientID   string            `json:"patientId"`
	DoctorID    string            `json:"doctorId"`
	Date        string            `json:"date"`
	Time        string            `json:"time"`
	Status      AppointmentStatus `json:"status"`
	CreatedAt   time.Time         `json:"createdAt"`
	CancelledAt *time.Time        `json:"cancelledAt,omitempty"`
}

// EnrichedAppointment decorates an appointment with patient and doctor
// summaries for display.
type EnrichedAppointment struct {
	Appointment
	Patient *PatientRef `json:"patient"`
	Doctor  *DoctorRef  `json:"doctor"`
}

type CreateAppointmentRequest struct {
	PatientID string `json:"patientId"`
	DoctorID  string `json:"doctorId"`
	Date      string `json:"date"`
	Time      string `json:"time"`
}

// DoctorAvailability is the payload for the available-slots query.
type DoctorAvailability struct {
	Doctor         DoctorRef `json:"doctor"`
	Date           string    `json:"date"`
	AvailableSlots []string  `json:"availableSlots"`
}
