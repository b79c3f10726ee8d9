package model

import (
	"time"
)

// Patient is a registered patient. Email is stored lower-cased and is
// unique across the registry.
type Patient struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	CreatedAt time.Time `json:"createdAt"`
}

// PatientRef is the summary embedded in enriched appointment responses.
type PatientRef struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type RegisterPatientRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}
