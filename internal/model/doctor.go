package model

// Doctor is a pre-seeded, immutable clinic doctor.
type Doctor struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Specialty string `json:"specialty"`
}

// DoctorRef is the summary embedded in enriched appointment responses.
type DoctorRef struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Specialty string `json:"specialty,omitempty"`
}
