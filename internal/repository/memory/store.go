package memory

import (
	"sync"

	"github.com/jwalitptl/clinic-api/internal/model"
)

// seeded doctor roster; created at startup, never mutated
var seedDoctors = []model.Doctor{
	{ID: "1", Name: "Dr. María García", Specialty: "Medicina General"},
	{ID: "2", Name: "Dr. Carlos Rodríguez", Specialty: "Pediatría"},
	{ID: "3", Name: "Dr. Ana Martínez", Specialty: "Cardiología"},
	{ID: "4", Name: "Dr. Luis Hernández", Specialty: "Dermatología"},
}

// timeSlots is the fixed half-hour catalog every doctor offers per day,
// with a lunch gap between 11:30 and 14:00.
var timeSlots = []string{
	"08:00", "08:30", "09:00", "09:30", "10:00", "10:30",
	"11:00", "11:30", "14:00", "14:30", "15:00", "15:30",
	"16:00", "16:30", "17:00", "17:30",
}

// Store holds every collection behind one mutex so the booking conflict
// check, the insert it guards, and cancellation are serialized.
type Store struct {
	mu           sync.RWMutex
	patients     []*model.Patient
	appointments []*model.Appointment
	doctors      []model.Doctor
	slots        []string
}

func NewStore() *Store {
	return &Store{
		doctors: seedDoctors,
		slots:   timeSlots,
	}
}

// Reset drops all patients and appointments. Test hook; the doctor
// roster and slot catalog survive.
func (s *Store) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.patients = nil
	s.appointments = nil
}
