package router_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appointmentHandler "github.com/jwalitptl/clinic-api/internal/handler/appointment"
	doctorHandler "github.com/jwalitptl/clinic-api/internal/handler/doctor"
	healthHandler "github.com/jwalitptl/clinic-api/internal/handler/health"
	patientHandler "github.com/jwalitptl/clinic-api/internal/handler/patient"
	"github.com/jwalitptl/clinic-api/internal/repository/memory"
	"github.com/jwalitptl/clinic-api/internal/router"
	appointmentService "github.com/jwalitptl/clinic-api/internal/service/appointment"
	catalogService "github.com/jwalitptl/clinic-api/internal/service/catalog"
	patientService "github.com/jwalitptl/clinic-api/internal/service/patient"
)

type apiResponse struct {
	Success bool                `json:"success"`
	Message string              `json:"message"`
	Data    json.RawMessage     `json:"data"`
	Errors  []map[string]string `json:"errors"`
}

func (r *apiResponse) dataMap(t *testing.T) map[string]interface{} {
	t.Helper()
	fields := map[string]interface{}{}
	require.NoError(t, json.Unmarshal(r.Data, &fields))
	return fields
}

func (r *apiResponse) errorFields() []string {
	var fields []string
	for _, fe := range r.Errors {
		fields = append(fields, fe["field"])
	}
	return fields
}

func newTestServer() http.Handler {
	store := memory.NewStore()
	patientRepo := memory.NewPatientRepository(store)
	appointmentRepo := memory.NewAppointmentRepository(store)
	catalogRepo := memory.NewCatalogRepository(store)

	patientSvc := patientService.NewService(patientRepo)
	catalogSvc := catalogService.NewService(catalogRepo)
	appointmentSvc := appointmentService.NewService(appointmentRepo, patientRepo, catalogRepo)

	cfg := router.DefaultConfig()
	cfg.RateLimit.Enabled = false

	r := router.New(
		cfg,
		patientHandler.NewHandler(patientSvc),
		doctorHandler.NewHandler(catalogSvc),
		appointmentHandler.NewHandler(appointmentSvc),
		healthHandler.NewHandler(),
	)
	return r.Engine()
}

func doRequest(t *testing.T, server http.Handler, method, path string, body interface{}) (int, *apiResponse) {
	t.Helper()

	var reqBody *bytes.Buffer
	if body != nil {
		encoded, err := json.Marshal(body)
		require.NoError(t, err)
		reqBody = bytes.NewBuffer(encoded)
	} else {
		reqBody = &bytes.Buffer{}
	}

	req := httptest.NewRequest(method, path, reqBody)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	server.ServeHTTP(rec, req)

	var resp apiResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return rec.Code, &resp
}

func futureDate(days int) string {
	return time.Now().AddDate(0, 0, days).Format("2006-01-02")
}

func registerPatient(t *testing.T, server http.Handler, email string) string {
	t.Helper()
	status, resp := doRequest(t, server, http.MethodPost, "/patients", map[string]string{
		"name":  "Test Patient",
		"email": email,
		"phone": "3001234567",
	})
	require.Equal(t, http.StatusCreated, status)
	return resp.dataMap(t)["id"].(string)
}

func TestHealthEndpoint(t *testing.T) {
	server := newTestServer()

	status, resp := doRequest(t, server, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, status)
	assert.True(t, resp.Success)
	assert.Equal(t, "up", resp.dataMap(t)["status"])
}

func TestUnmatchedRouteReturns404(t *testing.T) {
	server := newTestServer()

	status, resp := doRequest(t, server, http.MethodGet, "/nope", nil)
	assert.Equal(t, http.StatusNotFound, status)
	assert.False(t, resp.Success)
}

func TestRegisterPatient(t *testing.T) {
	server := newTestServer()

	status, resp := doRequest(t, server, http.MethodPost, "/patients", map[string]string{
		"name":  "Juan Pérez",
		"email": "juan@email.com",
		"phone": "3001234567",
	})
	require.Equal(t, http.StatusCreated, status)
	assert.True(t, resp.Success)

	data := resp.dataMap(t)
	assert.NotEmpty(t, data["id"])
	assert.Equal(t, "Juan Pérez", data["name"])
	assert.Equal(t, "juan@email.com", data["email"])
	assert.NotEmpty(t, data["createdAt"])
}

func TestRegisterPatientNormalizesEmail(t *testing.T) {
	server := newTestServer()

	status, resp := doRequest(t, server, http.MethodPost, "/patients", map[string]string{
		"name":  "Shouty",
		"email": "TEST@EMAIL.COM",
		"phone": "3001234567",
	})
	require.Equal(t, http.StatusCreated, status)
	assert.Equal(t, "test@email.com", resp.dataMap(t)["email"])
}

func TestRegisterPatientValidation(t *testing.T) {
	server := newTestServer()

	status, resp := doRequest(t, server, http.MethodPost, "/patients", map[string]string{
		"name":  "",
		"email": "not-an-email",
		"phone": "123",
	})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.False(t, resp.Success)
	assert.ElementsMatch(t, []string{"name", "email", "phone"}, resp.errorFields())
}

func TestRegisterPatientDuplicateEmail(t *testing.T) {
	server := newTestServer()
	registerPatient(t, server, "a@b.com")

	status, resp := doRequest(t, server, http.MethodPost, "/patients", map[string]string{
		"name":  "Copycat",
		"email": "A@B.COM",
		"phone": "3009876543",
	})
	assert.Equal(t, http.StatusConflict, status)
	assert.False(t, resp.Success)
}

func TestGetPatient(t *testing.T) {
	server := newTestServer()
	id := registerPatient(t, server, "a@b.com")

	status, resp := doRequest(t, server, http.MethodGet, "/patients/"+id, nil)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, id, resp.dataMap(t)["id"])

	status, _ = doRequest(t, server, http.MethodGet, "/patients/unknown", nil)
	assert.Equal(t, http.StatusNotFound, status)
}

func TestListDoctors(t *testing.T) {
	server := newTestServer()

	status, resp := doRequest(t, server, http.MethodGet, "/doctors", nil)
	assert.Equal(t, http.StatusOK, status)

	var doctors []map[string]interface{}
	require.NoError(t, json.Unmarshal(resp.Data, &doctors))
	require.Len(t, doctors, 4)
	assert.Equal(t, "Dr. María García", doctors[0]["name"])
	assert.Equal(t, "Medicina General", doctors[0]["specialty"])
}

func TestGetDoctor(t *testing.T) {
	server := newTestServer()

	status, resp := doRequest(t, server, http.MethodGet, "/doctors/2", nil)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "Pediatría", resp.dataMap(t)["specialty"])

	status, _ = doRequest(t, server, http.MethodGet, "/doctors/99", nil)
	assert.Equal(t, http.StatusNotFound, status)
}

func TestBookingFlow(t *testing.T) {
	server := newTestServer()
	patientID := registerPatient(t, server, "juan@email.com")
	otherID := registerPatient(t, server, "other@email.com")
	date := futureDate(7)

	// book
	status, resp := doRequest(t, server, http.MethodPost, "/appointments", map[string]string{
		"patientId": patientID,
		"doctorId":  "1",
		"date":      date,
		"time":      "09:00",
	})
	require.Equal(t, http.StatusCreated, status)

	data := resp.dataMap(t)
	appointmentID := data["id"].(string)
	assert.Equal(t, "scheduled", data["status"])
	assert.Equal(t, "Dr. María García", data["doctor"].(map[string]interface{})["name"])

	// same triple, different patient: conflict
	status, _ = doRequest(t, server, http.MethodPost, "/appointments", map[string]string{
		"patientId": otherID,
		"doctorId":  "1",
		"date":      date,
		"time":      "09:00",
	})
	assert.Equal(t, http.StatusConflict, status)

	// exactly one active appointment for the triple
	status, resp = doRequest(t, server, http.MethodGet, "/appointments", nil)
	require.Equal(t, http.StatusOK, status)
	var listed []map[string]interface{}
	require.NoError(t, json.Unmarshal(resp.Data, &listed))
	assert.Len(t, listed, 1)

	// cancel
	status, resp = doRequest(t, server, http.MethodDelete, "/appointments/"+appointmentID, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "cancelled", resp.dataMap(t)["status"])

	// the slot shows as available again
	status, resp = doRequest(t, server, http.MethodGet, "/appointments/available?doctorId=1&date="+date, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Contains(t, resp.dataMap(t)["availableSlots"], "09:00")

	// cancelling again is rejected
	status, _ = doRequest(t, server, http.MethodDelete, "/appointments/"+appointmentID, nil)
	assert.Equal(t, http.StatusBadRequest, status)

	// but the record is still retrievable
	status, resp = doRequest(t, server, http.MethodGet, "/appointments/"+appointmentID, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "cancelled", resp.dataMap(t)["status"])
}

func TestBookingRejectsInvalidSlot(t *testing.T) {
	server := newTestServer()
	patientID := registerPatient(t, server, "juan@email.com")

	status, resp := doRequest(t, server, http.MethodPost, "/appointments", map[string]string{
		"patientId": patientID,
		"doctorId":  "1",
		"date":      futureDate(7),
		"time":      "13:00",
	})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Contains(t, resp.errorFields(), "time")
}

func TestBookingRejectsPastDate(t *testing.T) {
	server := newTestServer()
	patientID := registerPatient(t, server, "juan@email.com")

	status, resp := doRequest(t, server, http.MethodPost, "/appointments", map[string]string{
		"patientId": patientID,
		"doctorId":  "1",
		"date":      futureDate(-1),
		"time":      "09:00",
	})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Contains(t, resp.errorFields(), "date")
}

func TestBookingUnknownParticipants(t *testing.T) {
	server := newTestServer()
	patientID := registerPatient(t, server, "juan@email.com")
	date := futureDate(7)

	status, _ := doRequest(t, server, http.MethodPost, "/appointments", map[string]string{
		"patientId": "missing", "doctorId": "1", "date": date, "time": "09:00",
	})
	assert.Equal(t, http.StatusNotFound, status)

	status, _ = doRequest(t, server, http.MethodPost, "/appointments", map[string]string{
		"patientId": patientID, "doctorId": "99", "date": date, "time": "09:00",
	})
	assert.Equal(t, http.StatusNotFound, status)
}

func TestAvailableSlotsEndpoint(t *testing.T) {
	server := newTestServer()
	date := futureDate(7)

	status, resp := doRequest(t, server, http.MethodGet, "/appointments/available?doctorId=1&date="+date, nil)
	require.Equal(t, http.StatusOK, status)

	data := resp.dataMap(t)
	assert.Equal(t, date, data["date"])
	slots := data["availableSlots"].([]interface{})
	assert.Len(t, slots, 16)
	assert.Equal(t, "08:00", slots[0])

	// missing params
	status, _ = doRequest(t, server, http.MethodGet, "/appointments/available?doctorId=1", nil)
	assert.Equal(t, http.StatusBadRequest, status)

	// unknown doctor
	status, _ = doRequest(t, server, http.MethodGet, "/appointments/available?doctorId=99&date="+date, nil)
	assert.Equal(t, http.StatusNotFound, status)
}

func TestResponseEnvelopeShape(t *testing.T) {
	server := newTestServer()

	rec := httptest.NewRecorder()
	server.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/patients", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var envelope map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	assert.Equal(t, true, envelope["success"])
}
