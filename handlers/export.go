package handlers

import (
	"bytes"
	"fmt"
	"net/http"
	"time"

	"clinic_agenda_go/db"
	"clinic_agenda_go/services"

	"github.com/labstack/echo/v4"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

func exportWeekStart(c echo.Context) (time.Time, error) {
	param := c.QueryParam("week_start")
	if param == "" {
		// Default to the Monday of the current week
		now := time.Now().UTC()
		offset := (int(now.Weekday()) + 6) % 7
		return services.DayStart(now.AddDate(0, 0, -offset)), nil
	}
	return parseFlexibleTime(param)
}

// ExportWeekAgendaXLSXHandler downloads one professional's weekly agenda as
// a spreadsheet
func ExportWeekAgendaXLSXHandler(c echo.Context) error {
	professionalID, err := resolveProfessionalID(c)
	if err != nil {
		return err
	}

	weekStart, err := exportWeekStart(c)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid week_start format")
	}

	buf, err := services.BuildWeekAgendaXLSX(db.DB, professionalID, weekStart)
	if err != nil {
		services.RecordError(db.DB, "exports", "xlsx", err, nil)
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to generate spreadsheet")
	}

	filename := fmt.Sprintf("agenda_%s.xlsx", weekStart.Format("2006-01-02"))

	if c.QueryParam("upload") == "true" {
		return uploadExport(c, buf.Bytes(), filename, xlsxContentType)
	}

	c.Response().Header().Set(echo.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="%s"`, filename))
	return c.Blob(http.StatusOK, xlsxContentType, buf.Bytes())
}

// ExportWeekAgendaPDFHandler downloads one professional's weekly agenda as a
// printable PDF
func ExportWeekAgendaPDFHandler(c echo.Context) error {
	professionalID, err := resolveProfessionalID(c)
	if err != nil {
		return err
	}

	weekStart, err := exportWeekStart(c)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid week_start format")
	}

	pdf, err := services.BuildWeekAgendaPDF(db.DB, professionalID, weekStart)
	if err != nil {
		services.RecordError(db.DB, "exports", "pdf", err, nil)
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to generate PDF")
	}

	filename := fmt.Sprintf("agenda_%s.pdf", weekStart.Format("2006-01-02"))

	if c.QueryParam("upload") == "true" {
		return uploadExport(c, pdf, filename, "application/pdf")
	}

	c.Response().Header().Set(echo.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="%s"`, filename))
	return c.Blob(http.StatusOK, "application/pdf", pdf)
}

// uploadExport pushes a generated export to the configured storage provider
// and returns its URL instead of streaming the file
func uploadExport(c echo.Context, content []byte, filename, contentType string) error {
	if services.Storage == nil || !services.Storage.IsConfigured() {
		return echo.NewHTTPError(http.StatusServiceUnavailable, "Export storage is not configured")
	}

	key := fmt.Sprintf("exports/%s/%s", time.Now().UTC().Format("2006/01"), filename)
	result, err := services.Storage.UploadReader(c.Request().Context(), bytes.NewReader(content), key, contentType, int64(len(content)))
	if err != nil {
		services.RecordError(db.DB, "exports", "upload", err, nil)
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to store export")
	}

	url := result.URL
	if url == "" {
		signed, err := services.Storage.GetSignedURL(c.Request().Context(), key, 24*time.Hour)
		if err != nil {
			return echo.NewHTTPError(http.StatusInternalServerError, "Failed to sign export URL")
		}
		url = signed
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"key":       result.Key,
		"file_name": result.FileName,
		"file_size": result.FileSize,
		"url":       url,
	})
}
