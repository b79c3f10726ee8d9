package appointment

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jwalitptl/clinic-api/internal/model"
	"github.com/jwalitptl/clinic-api/internal/service/appointment"
	"github.com/jwalitptl/clinic-api/pkg/errors"
	"github.com/jwalitptl/clinic-api/pkg/httputil"
	"github.com/jwalitptl/clinic-api/pkg/validator"
)

type Handler struct {
	service *appointment.Service
}

func NewHandler(service *appointment.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	appointments := r.Group("/appointments")
	{
		appointments.POST("", h.CreateAppointment)
		appointments.GET("", h.ListAppointments)
		appointments.GET("/available", h.GetAvailableSlots)
		appointments.GET("/:id", h.GetAppointment)
		appointments.DELETE("/:id", h.CancelAppointment)
	}
}

func (h *Handler) CreateAppointment(c *gin.Context) {
	var req model.CreateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.RespondWithError(c, errors.Validation("invalid request body"))
		return
	}

	if fieldErrs := validator.ValidateAppointmentInput(req.PatientID, req.DoctorID, req.Date, req.Time); len(fieldErrs) > 0 {
		httputil.RespondWithError(c, errors.Validation("validation errors", fieldErrs...))
		return
	}

	booked, err := h.service.Book(c.Request.Context(), &req)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	httputil.RespondWithMessage(c, http.StatusCreated, "appointment booked successfully", booked)
}

func (h *Handler) ListAppointments(c *gin.Context) {
	appointments, err := h.service.ListAppointments(c.Request.Context(), c.Query("patientId"), c.Query("doctorId"))
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	httputil.RespondWithData(c, http.StatusOK, appointments)
}

func (h *Handler) GetAvailableSlots(c *gin.Context) {
	doctorID := c.Query("doctorId")
	date := c.Query("date")
	if doctorID == "" || date == "" {
		httputil.RespondWithError(c, errors.Validation("doctorId and date are required"))
		return
	}

	availability, err := h.service.Availability(c.Request.Context(), doctorID, date)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	httputil.RespondWithData(c, http.StatusOK, availability)
}

func (h *Handler) GetAppointment(c *gin.Context) {
	found, err := h.service.GetAppointment(c.Request.Context(), c.Param("id"))
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	httputil.RespondWithData(c, http.StatusOK, found)
}

func (h *Handler) CancelAppointment(c *gin.Context) {
	cancelled, err := h.service.Cancel(c.Request.Context(), c.Param("id"))
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	httputil.RespondWithMessage(c, http.StatusOK, "appointment cancelled successfully", cancelled)
}
