package handlers

import (
	"net/http"
	"time"

	"clinic_agenda_go/config"
	"clinic_agenda_go/services"

	"github.com/labstack/echo/v4"
)

// notifier surfaces store-operation outcomes to the user. The presentation
// layer can swap in its own implementation at startup.
var notifier services.Notifier = services.NewLogNotifier()

// SetNotifier replaces the notifier used by all handlers
func SetNotifier(n services.Notifier) {
	if n != nil {
		notifier = n
	}
}

// getConfig retrieves the application config injected by main
func getConfig(c echo.Context) *config.Config {
	cfg, ok := c.Get("config").(*config.Config)
	if !ok {
		return config.Load()
	}
	return cfg
}

// parseDateParam parses a required YYYY-MM-DD query parameter
func parseDateParam(c echo.Context, name string) (time.Time, error) {
	value := c.QueryParam(name)
	if value == "" {
		return time.Time{}, echo.NewHTTPError(http.StatusBadRequest, name+" is required")
	}
	date, err := services.ParseDate(value)
	if err != nil {
		return time.Time{}, echo.NewHTTPError(http.StatusBadRequest, "Invalid "+name+" format, expected YYYY-MM-DD")
	}
	return date, nil
}

// parseRangeParams parses the start/end query parameters used by list
// endpoints. Accepts RFC3339 or YYYY-MM-DD.
func parseRangeParams(c echo.Context) (time.Time, time.Time, error) {
	startStr := c.QueryParam("start")
	endStr := c.QueryParam("end")

	if startStr == "" || endStr == "" {
		return time.Time{}, time.Time{}, echo.NewHTTPError(http.StatusBadRequest, "start and end dates are required")
	}

	start, err := parseFlexibleTime(startStr)
	if err != nil {
		return time.Time{}, time.Time{}, echo.NewHTTPError(http.StatusBadRequest, "Invalid start date format")
	}
	end, err := parseFlexibleTime(endStr)
	if err != nil {
		return time.Time{}, time.Time{}, echo.NewHTTPError(http.StatusBadRequest, "Invalid end date format")
	}

	return start, end, nil
}

func parseFlexibleTime(value string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", value)
}
