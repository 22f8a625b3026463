package handlers

import (
	"errors"
	"net/http"
	"time"

	"clinic_agenda_go/db"
	"clinic_agenda_go/middleware"
	"clinic_agenda_go/models"
	"clinic_agenda_go/services"

	"github.com/labstack/echo/v4"
)

// CreateAppointmentRequest is the booking payload
type CreateAppointmentRequest struct {
	PatientID          string   `json:"patient_id"`
	ProfessionalID     string   `json:"professional_id"`
	StartTime          string   `json:"start_time"` // RFC3339
	EndTime            string   `json:"end_time"`   // RFC3339
	ServiceType        string   `json:"service_type"`
	AdditionalServices []string `json:"additional_services"`
	Value              *float64 `json:"value"`
	Observations       *string  `json:"observations"`
	Origin             string   `json:"origin"`
}

// CreateAppointmentHandler books a new appointment at a free slot
func CreateAppointmentHandler(c echo.Context) error {
	var req CreateAppointmentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body")
	}

	start, err := time.Parse(time.RFC3339, req.StartTime)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid start_time format")
	}
	end, err := time.Parse(time.RFC3339, req.EndTime)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid end_time format")
	}

	professionalID := req.ProfessionalID
	if professionalID == "" {
		professionalID = middleware.CurrentProfessionalID(c)
	}

	apt := &models.Appointment{
		PatientID:          req.PatientID,
		ProfessionalID:     professionalID,
		StartTime:          start.UTC(),
		EndTime:            end.UTC(),
		ServiceType:        req.ServiceType,
		AdditionalServices: req.AdditionalServices,
		Value:              req.Value,
		Observations:       req.Observations,
		Origin:             req.Origin,
	}

	if err := services.CreateAppointment(db.DB, apt); err != nil {
		user := middleware.GetCurrentUser(c)
		var userID *string
		if user != nil {
			userID = &user.ID
		}
		services.RecordError(db.DB, "appointments", "create", err, userID)
		notifier.Error("Could not book the appointment")
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	notifier.Success("Appointment booked")
	return c.JSON(http.StatusCreated, apt)
}

// ListAppointmentsHandler returns a professional's appointments in a range.
// Pass include_cancelled=true to also get cancelled records.
func ListAppointmentsHandler(c echo.Context) error {
	start, end, err := parseRangeParams(c)
	if err != nil {
		return err
	}

	includeCancelled := c.QueryParam("include_cancelled") == "true"

	if c.QueryParam("patient_id") != "" {
		appointments, err := services.ListPatientAppointments(db.DB, c.QueryParam("patient_id"))
		if err != nil {
			return echo.NewHTTPError(http.StatusInternalServerError, "Failed to load appointments")
		}
		return c.JSON(http.StatusOK, appointments)
	}

	professionalID, err := resolveProfessionalID(c)
	if err != nil {
		return err
	}

	appointments, err := services.ListAppointments(db.DB, professionalID, start, end, includeCancelled)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to load appointments")
	}
	return c.JSON(http.StatusOK, appointments)
}

// GetAppointmentHandler returns a single appointment with display names
func GetAppointmentHandler(c echo.Context) error {
	apt, err := services.GetAppointmentByID(db.DB, c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "Appointment not found")
	}
	return c.JSON(http.StatusOK, apt)
}

// UpdateAppointmentRequest is the payload for editing appointment details
type UpdateAppointmentRequest struct {
	ServiceType        string   `json:"service_type"`
	AdditionalServices []string `json:"additional_services"`
	Value              *float64 `json:"value"`
	Observations       *string  `json:"observations"`
}

// UpdateAppointmentHandler edits the service fields of an appointment
func UpdateAppointmentHandler(c echo.Context) error {
	var req UpdateAppointmentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body")
	}

	id := c.Param("id")
	if err := services.UpdateAppointmentDetails(db.DB, id, req.ServiceType, req.AdditionalServices, req.Value, req.Observations); err != nil {
		services.RecordError(db.DB, "appointments", "update", err, nil)
		notifier.Error("Could not update the appointment")
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	apt, err := services.GetAppointmentByID(db.DB, id)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to reload appointment")
	}

	notifier.Success("Appointment updated")
	return c.JSON(http.StatusOK, apt)
}

// RescheduleAppointmentRequest is the payload for moving an appointment
type RescheduleAppointmentRequest struct {
	StartTime string `json:"start_time"` // RFC3339
	EndTime   string `json:"end_time"`   // RFC3339
}

// RescheduleAppointmentHandler moves an appointment to a new time
func RescheduleAppointmentHandler(c echo.Context) error {
	var req RescheduleAppointmentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body")
	}

	start, err := time.Parse(time.RFC3339, req.StartTime)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid start_time format")
	}
	end, err := time.Parse(time.RFC3339, req.EndTime)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid end_time format")
	}

	id := c.Param("id")
	if err := services.RescheduleAppointment(db.DB, id, start.UTC(), end.UTC()); err != nil {
		services.RecordError(db.DB, "appointments", "reschedule", err, nil)
		notifier.Error("Could not reschedule the appointment")
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	notifier.Success("Appointment rescheduled")
	return c.NoContent(http.StatusNoContent)
}

func lifecycleStatusCode(err error) int {
	switch {
	case errors.Is(err, services.ErrNotPending),
		errors.Is(err, services.ErrNotConfirmed),
		errors.Is(err, services.ErrNotCancellable),
		errors.Is(err, services.ErrAlreadyCancelled):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

func appointmentEmailData(c echo.Context, apt *models.Appointment) services.AppointmentEmailData {
	cfg := getConfig(c)
	return services.AppointmentEmailData{
		PatientName:      apt.Patient.Name,
		ProfessionalName: apt.Professional.Name,
		ClinicName:       cfg.ClinicName,
		ServiceType:      apt.ServiceType,
		Date:             apt.StartTime.Format("Monday, January 2, 2006"),
		Time:             apt.StartTime.Format("3:04 PM"),
		Duration:         apt.Duration(),
	}
}

// ConfirmAppointmentHandler moves a pending appointment to confirmed and
// emails the patient
func ConfirmAppointmentHandler(c echo.Context) error {
	apt, err := services.ConfirmAppointment(db.DB, c.Param("id"))
	if err != nil {
		services.RecordError(db.DB, "appointments", "confirm", err, nil)
		notifier.Error("Could not confirm the appointment")
		return echo.NewHTTPError(lifecycleStatusCode(err), err.Error())
	}

	if apt.Patient.Email != "" {
		services.SendEmailAsync(getConfig(c), services.BuildAppointmentConfirmedEmail(apt.Patient.Email, appointmentEmailData(c, apt)))
	}

	notifier.Success("Appointment confirmed")
	return c.JSON(http.StatusOK, apt)
}

// CompleteAppointmentHandler marks a confirmed appointment as completed
func CompleteAppointmentHandler(c echo.Context) error {
	apt, err := services.CompleteAppointment(db.DB, c.Param("id"))
	if err != nil {
		services.RecordError(db.DB, "appointments", "complete", err, nil)
		notifier.Error("Could not complete the appointment")
		return echo.NewHTTPError(lifecycleStatusCode(err), err.Error())
	}

	notifier.Success("Appointment completed")
	return c.JSON(http.StatusOK, apt)
}

// NoShowAppointmentHandler marks a confirmed appointment as a no-show
func NoShowAppointmentHandler(c echo.Context) error {
	apt, err := services.MarkAppointmentNoShow(db.DB, c.Param("id"))
	if err != nil {
		services.RecordError(db.DB, "appointments", "noshow", err, nil)
		notifier.Error("Could not mark the appointment as no-show")
		return echo.NewHTTPError(lifecycleStatusCode(err), err.Error())
	}

	notifier.Success("Appointment marked as no-show")
	return c.JSON(http.StatusOK, apt)
}

// CancelAppointmentRequest carries the optional cancellation reason
type CancelAppointmentRequest struct {
	Reason string `json:"reason"`
}

// CancelAppointmentHandler soft-cancels an appointment and emails the patient
func CancelAppointmentHandler(c echo.Context) error {
	var req CancelAppointmentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body")
	}

	var cancelledByID *string
	if user := middleware.GetCurrentUser(c); user != nil {
		cancelledByID = &user.ID
	}

	apt, err := services.CancelAppointment(db.DB, c.Param("id"), req.Reason, cancelledByID)
	if err != nil {
		services.RecordError(db.DB, "appointments", "cancel", err, cancelledByID)
		notifier.Error("Could not cancel the appointment")
		return echo.NewHTTPError(lifecycleStatusCode(err), err.Error())
	}

	if apt.Patient.Email != "" {
		data := appointmentEmailData(c, apt)
		data.Reason = req.Reason
		services.SendEmailAsync(getConfig(c), services.BuildAppointmentCancelledEmail(apt.Patient.Email, data))
	}

	notifier.Success("Appointment cancelled")
	return c.JSON(http.StatusOK, apt)
}

// AppointmentICSHandler downloads an appointment as an ICS calendar file
func AppointmentICSHandler(c echo.Context) error {
	apt, err := services.GetAppointmentByID(db.DB, c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "Appointment not found")
	}

	cfg := getConfig(c)
	ics, err := services.GenerateAppointmentICS(apt, cfg.ClinicName, cfg.ClinicEmail)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to generate calendar file")
	}

	c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="appointment.ics"`)
	return c.Blob(http.StatusOK, "text/calendar", ics)
}
