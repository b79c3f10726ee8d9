package validator

import (
	"regexp"
	"strings"
	"time"

	v10 "github.com/go-playground/validator/v10"

	"github.com/jwalitptl/clinic-api/pkg/errors"
)

var (
	validate   = v10.New()
	dateShape  = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
	phoneShape = regexp.MustCompile(`^\d{7,15}$`)
)

// ValidName reports whether name is non-empty after trimming whitespace.
func ValidName(name string) bool {
	return strings.TrimSpace(name) != ""
}

// ValidEmail reports whether email has a plausible local@domain.tld shape.
func ValidEmail(email string) bool {
	email = strings.TrimSpace(email)
	if email == "" || strings.ContainsAny(email, " \t") {
		return false
	}
	return validate.Var(email, "email") == nil
}

// ValidPhone reports whether phone contains 7 to 15 digits once interior
// spaces and dashes are stripped.
func ValidPhone(phone string) bool {
	cleaned := strings.NewReplacer(" ", "", "-", "").Replace(phone)
	return phoneShape.MatchString(cleaned)
}

// ValidDate reports whether date is a literal YYYY-MM-DD calendar date no
// earlier than today. "Today" is the server-local calendar day.
func ValidDate(date string) bool {
	if !dateShape.MatchString(date) {
		return false
	}
	parsed, err := time.ParseInLocation("2006-01-02", date, time.Local)
	if err != nil {
		return false
	}
	now := time.Now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.Local)
	return !parsed.Before(today)
}

// ValidTime reports whether t is one of the supplied slots.
func ValidTime(t string, slots []string) bool {
	for _, slot := range slots {
		if slot == t {
			return true
		}
	}
	return false
}

// ValidatePatientInput collects field errors for a registration payload.
func ValidatePatientInput(name, email, phone string) []errors.FieldError {
	var fieldErrs []errors.FieldError

	if !ValidName(name) {
		fieldErrs = append(fieldErrs, errors.FieldError{Field: "name", Message: "name is required"})
	}
	if !ValidEmail(email) {
		fieldErrs = append(fieldErrs, errors.FieldError{Field: "email", Message: "email is not valid"})
	}
	if !ValidPhone(phone) {
		fieldErrs = append(fieldErrs, errors.FieldError{Field: "phone", Message: "phone must contain 7 to 15 digits"})
	}

	return fieldErrs
}

// ValidateAppointmentInput collects field errors for a booking payload.
// Slot membership is a business check left to the ledger, which owns the
// catalog; only shape and presence are verified here.
func ValidateAppointmentInput(patientID, doctorID, date, timeOfDay string) []errors.FieldError {
	var fieldErrs []errors.FieldError

	if strings.TrimSpace(patientID) == "" {
		fieldErrs = append(fieldErrs, errors.FieldError{Field: "patientId", Message: "patient id is required"})
	}
	if strings.TrimSpace(doctorID) == "" {
		fieldErrs = append(fieldErrs, errors.FieldError{Field: "doctorId", Message: "doctor id is required"})
	}
	if !ValidDate(date) {
		fieldErrs = append(fieldErrs, errors.FieldError{Field: "date", Message: "date is not valid or is before today"})
	}
	if strings.TrimSpace(timeOfDay) == "" {
		fieldErrs = append(fieldErrs, errors.FieldError{Field: "time", Message: "time is required"})
	}

	return fieldErrs
}
