package handlers

import (
	"net/http"

	"clinic_agenda_go/db"
	"clinic_agenda_go/services"

	"github.com/labstack/echo/v4"
)

// ListWorkingHoursHandler returns the configured weekday windows for a
// professional
func ListWorkingHoursHandler(c echo.Context) error {
	professionalID, err := resolveProfessionalID(c)
	if err != nil {
		return err
	}

	rows, err := services.GetWorkingHours(db.DB, professionalID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to load working hours")
	}
	return c.JSON(http.StatusOK, rows)
}

// WeekScheduleHandler returns the working hours folded into a weekday map
func WeekScheduleHandler(c echo.Context) error {
	professionalID, err := resolveProfessionalID(c)
	if err != nil {
		return err
	}

	schedule, err := services.GetWeekSchedule(db.DB, professionalID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to load schedule")
	}
	return c.JSON(http.StatusOK, schedule)
}

// SetWorkingHoursRequest is the payload for one weekday window
type SetWorkingHoursRequest struct {
	Weekday   int    `json:"weekday"` // 0 = Sunday
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
	Active    *bool  `json:"active"`
}

// SetWorkingHoursHandler creates or replaces the window for one weekday
func SetWorkingHoursHandler(c echo.Context) error {
	professionalID, err := resolveProfessionalID(c)
	if err != nil {
		return err
	}

	var req SetWorkingHoursRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body")
	}

	active := true
	if req.Active != nil {
		active = *req.Active
	}

	hours, err := services.SetDayWorkingHours(db.DB, professionalID, req.Weekday, req.StartTime, req.EndTime, active)
	if err != nil {
		services.RecordError(db.DB, "working_hours", "set", err, nil)
		notifier.Error("Could not save working hours")
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	notifier.Success("Working hours saved")
	return c.JSON(http.StatusOK, hours)
}

// DeactivateWorkingHoursHandler marks a weekday as closed
func DeactivateWorkingHoursHandler(c echo.Context) error {
	professionalID, err := resolveProfessionalID(c)
	if err != nil {
		return err
	}

	var req struct {
		Weekday int `json:"weekday"`
	}
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body")
	}

	if err := services.DeactivateDayWorkingHours(db.DB, professionalID, req.Weekday); err != nil {
		services.RecordError(db.DB, "working_hours", "deactivate", err, nil)
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to deactivate working hours")
	}

	notifier.Success("Day marked as closed")
	return c.NoContent(http.StatusNoContent)
}

// SeedDefaultWorkingHoursHandler seeds Mon-Fri 08:00-18:00 for a
// professional that has no hours yet
func SeedDefaultWorkingHoursHandler(c echo.Context) error {
	professionalID, err := resolveProfessionalID(c)
	if err != nil {
		return err
	}

	has, err := services.HasWorkingHours(db.DB, professionalID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to check working hours")
	}
	if has {
		return echo.NewHTTPError(http.StatusConflict, "Working hours already configured")
	}

	if err := services.CreateDefaultWorkingHours(db.DB, professionalID); err != nil {
		services.RecordError(db.DB, "working_hours", "seed", err, nil)
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to seed working hours")
	}
	services.InvalidateScheduleCache()

	rows, err := services.GetWorkingHours(db.DB, professionalID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to load working hours")
	}

	notifier.Success("Default working hours created")
	return c.JSON(http.StatusCreated, rows)
}

// SlotFreeHandler probes whether a candidate time range is bookable for a
// professional
func SlotFreeHandler(c echo.Context) error {
	professionalID, err := resolveProfessionalID(c)
	if err != nil {
		return err
	}

	start, end, err := parseRangeParams(c)
	if err != nil {
		return err
	}

	free, err := services.IsSlotFree(db.DB, professionalID, start, end)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to check slot")
	}

	return c.JSON(http.StatusOK, map[string]bool{"free": free})
}

// ListProfessionalsHandler returns active professionals, optionally limited
// to those with configured working hours
func ListProfessionalsHandler(c echo.Context) error {
	if c.QueryParam("with_hours") == "true" {
		professionals, err := services.ListProfessionalsWithWorkingHours(db.DB)
		if err != nil {
			return echo.NewHTTPError(http.StatusInternalServerError, "Failed to load professionals")
		}
		return c.JSON(http.StatusOK, professionals)
	}

	professionals, err := services.ListProfessionals(db.DB)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to load professionals")
	}
	return c.JSON(http.StatusOK, professionals)
}
