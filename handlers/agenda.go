package handlers

import (
	"net/http"
	"time"

	"clinic_agenda_go/db"
	"clinic_agenda_go/middleware"
	"clinic_agenda_go/models"
	"clinic_agenda_go/services"

	"github.com/labstack/echo/v4"
)

func timelineOptions(c echo.Context) services.TimelineOptions {
	return services.TimelineOptions{
		MultiProfessional: c.QueryParam("multi") == "true",
	}
}

// resolveProfessionalID picks the agenda owner: an explicit query parameter
// when present, otherwise the acting professional
func resolveProfessionalID(c echo.Context) (string, error) {
	if id := c.QueryParam("professional_id"); id != "" {
		return id, nil
	}
	if id := middleware.CurrentProfessionalID(c); id != "" {
		return id, nil
	}
	return "", echo.NewHTTPError(http.StatusBadRequest, "professional_id is required")
}

// DayAgendaHandler returns the composited timeline for one date
func DayAgendaHandler(c echo.Context) error {
	date, err := parseDateParam(c, "date")
	if err != nil {
		return err
	}

	opts := timelineOptions(c)

	var appointments []models.Appointment
	var blocks []models.Block
	var virtuals []models.VirtualBlock

	dayStart := services.DayStart(date)
	dayEnd := dayStart.AddDate(0, 0, 1)

	if opts.MultiProfessional {
		appointments, err = services.ListClinicAppointments(db.DB, dayStart, dayEnd, true)
		if err != nil {
			return echo.NewHTTPError(http.StatusInternalServerError, "Failed to load appointments")
		}
		// The clinic-wide view has no single schedule to derive closed
		// periods from, so it renders no virtual blocks at all; an empty
		// schedule would instead read as a fully closed day.
		professionals, err := services.ListProfessionals(db.DB)
		if err != nil {
			return echo.NewHTTPError(http.StatusInternalServerError, "Failed to load professionals")
		}
		for _, professional := range professionals {
			professionalBlocks, err := services.ListBlocks(db.DB, professional.ID, dayStart, dayEnd)
			if err != nil {
				return echo.NewHTTPError(http.StatusInternalServerError, "Failed to load blocks")
			}
			blocks = append(blocks, professionalBlocks...)
		}
	} else {
		professionalID, err := resolveProfessionalID(c)
		if err != nil {
			return err
		}
		appointments, err = services.ListAppointments(db.DB, professionalID, dayStart, dayEnd, true)
		if err != nil {
			return echo.NewHTTPError(http.StatusInternalServerError, "Failed to load appointments")
		}
		blocks, err = services.ListBlocks(db.DB, professionalID, dayStart, dayEnd)
		if err != nil {
			return echo.NewHTTPError(http.StatusInternalServerError, "Failed to load blocks")
		}
		schedule, err := services.GetWeekSchedule(db.DB, professionalID)
		if err != nil {
			return echo.NewHTTPError(http.StatusInternalServerError, "Failed to load working hours")
		}
		virtuals = services.VirtualBlocksForDay(schedule, dayStart)
	}

	timeline := services.ComposeDayTimeline(dayStart, appointments, blocks, virtuals, opts)

	return c.JSON(http.StatusOK, timeline)
}

// WeekAgendaHandler returns the composited timelines for the 7 days
// starting at week_start
func WeekAgendaHandler(c echo.Context) error {
	weekStart, err := parseDateParam(c, "week_start")
	if err != nil {
		return err
	}

	professionalID, err := resolveProfessionalID(c)
	if err != nil {
		return err
	}

	opts := timelineOptions(c)

	rangeStart := services.DayStart(weekStart)
	rangeEnd := rangeStart.AddDate(0, 0, 7)

	appointments, err := services.ListAppointments(db.DB, professionalID, rangeStart, rangeEnd, true)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to load appointments")
	}
	blocks, err := services.ListBlocks(db.DB, professionalID, rangeStart, rangeEnd)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to load blocks")
	}
	schedule, err := services.GetWeekSchedule(db.DB, professionalID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to load working hours")
	}

	days := services.ComposeWeekTimeline(rangeStart, schedule, appointments, blocks, opts)
	return c.JSON(http.StatusOK, days)
}

// AgendaEventsHandler returns agenda entries as calendar events for the
// date range the calendar widget asks for
func AgendaEventsHandler(c echo.Context) error {
	start, end, err := parseRangeParams(c)
	if err != nil {
		return err
	}

	professionalID, err := resolveProfessionalID(c)
	if err != nil {
		return err
	}

	appointments, err := services.ListAppointments(db.DB, professionalID, start, end, true)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to fetch events")
	}
	blocks, err := services.ListBlocks(db.DB, professionalID, start, end)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to fetch blocks")
	}

	events := make([]map[string]interface{}, 0)
	for _, apt := range appointments {
		color := "#3B82F6" // Default blue
		switch {
		case apt.Cancelled:
			color = "#9CA3AF"
		case apt.Status == models.AppointmentStatusCompleted:
			color = "#10B981"
		case apt.Status == models.AppointmentStatusNoShow:
			color = "#F59E0B"
		}

		title := apt.ServiceType
		if apt.Patient.Name != "" {
			title = apt.Patient.Name + " - " + apt.ServiceType
		}

		events = append(events, map[string]interface{}{
			"id":              apt.ID,
			"title":           title,
			"start":           apt.StartTime.Format(time.RFC3339),
			"end":             apt.EndTime.Format(time.RFC3339),
			"backgroundColor": color,
			"borderColor":     color,
			"extendedProps": map[string]interface{}{
				"kind":      "appointment",
				"status":    apt.Status,
				"cancelled": apt.Cancelled,
			},
		})
	}

	for _, block := range blocks {
		events = append(events, map[string]interface{}{
			"id":              block.ID,
			"title":           block.Title,
			"start":           block.StartAt.Format(time.RFC3339),
			"end":             block.EndAt.Format(time.RFC3339),
			"backgroundColor": "#6B7280",
			"borderColor":     "#6B7280",
			"extendedProps": map[string]interface{}{
				"kind": "block",
			},
		})
	}

	return c.JSON(http.StatusOK, events)
}
