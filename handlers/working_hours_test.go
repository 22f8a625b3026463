package handlers

import (
	"encoding/json"
	"net/http"
	"strings"
	"testing"

	"clinic_agenda_go/models"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
)

func TestSetWorkingHoursHandler(t *testing.T) {
	database := setupTestDB(t)

	t.Run("Success", func(t *testing.T) {
		body := `{"weekday": 6, "start_time": "09:00", "end_time": "13:00"}`
		_, c, rec := setupEcho(http.MethodPut, "/api/working-hours", strings.NewReader(body))
		professional := createTestProfessional(t, database, c)

		err := SetWorkingHoursHandler(c)
		assert.NoError(t, err)
		assert.Equal(t, http.StatusOK, rec.Code)

		var hours models.WorkingHours
		assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &hours))
		assert.Equal(t, 6, hours.Weekday)
		assert.True(t, hours.Active)
		assert.Equal(t, professional.ID, hours.ProfessionalID)
	})

	t.Run("Invalid window", func(t *testing.T) {
		body := `{"weekday": 1, "start_time": "18:00", "end_time": "09:00"}`
		_, c, _ := setupEcho(http.MethodPut, "/api/working-hours", strings.NewReader(body))
		createTestProfessional(t, database, c)

		err := SetWorkingHoursHandler(c)
		assert.Error(t, err)
		assert.Equal(t, http.StatusUnprocessableEntity, err.(*echo.HTTPError).Code)
	})
}

func TestListWorkingHoursHandler(t *testing.T) {
	database := setupTestDB(t)

	_, c, rec := setupEcho(http.MethodGet, "/api/working-hours", nil)
	createTestProfessional(t, database, c)

	err := ListWorkingHoursHandler(c)
	assert.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code)

	var rows []models.WorkingHours
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &rows))
	assert.Len(t, rows, 5) // default Mon-Fri seeded by the helper
}

func TestWeekScheduleHandler(t *testing.T) {
	database := setupTestDB(t)

	_, c, rec := setupEcho(http.MethodGet, "/api/working-hours/schedule", nil)
	createTestProfessional(t, database, c)

	err := WeekScheduleHandler(c)
	assert.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code)

	var schedule map[string]models.DayHours
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &schedule))
	assert.Len(t, schedule, 5)
}

func TestSeedDefaultWorkingHoursHandler(t *testing.T) {
	database := setupTestDB(t)

	t.Run("Conflict when already configured", func(t *testing.T) {
		_, c, _ := setupEcho(http.MethodPost, "/api/working-hours/defaults", nil)
		createTestProfessional(t, database, c)

		err := SeedDefaultWorkingHoursHandler(c)
		assert.Error(t, err)
		assert.Equal(t, http.StatusConflict, err.(*echo.HTTPError).Code)
	})

	t.Run("Seeds for a fresh professional", func(t *testing.T) {
		fresh := &models.User{Name: "Dr. New", Email: "new@test", Role: models.RoleProfessional, IsActive: true}
		assert.NoError(t, database.Create(fresh).Error)

		_, c, rec := setupEcho(http.MethodPost, "/api/working-hours/defaults", nil)
		c.Set("user", fresh)

		err := SeedDefaultWorkingHoursHandler(c)
		assert.NoError(t, err)
		assert.Equal(t, http.StatusCreated, rec.Code)

		var rows []models.WorkingHours
		assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &rows))
		assert.Len(t, rows, 5)
	})
}

func TestSlotFreeHandler(t *testing.T) {
	database := setupTestDB(t)

	_, c, rec := setupEcho(http.MethodGet, "/api/slots/free?start=2026-03-16T09:00:00Z&end=2026-03-16T10:00:00Z", nil)
	professional := createTestProfessional(t, database, c)

	err := SlotFreeHandler(c)
	assert.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code)

	var result map[string]bool
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	assert.True(t, result["free"])

	// Book the slot and probe again
	patient := createTestPatient(t, database)
	createTestAppointment(t, database, patient.ID, professional.ID, 9, 10)

	_, c2, rec2 := setupEcho(http.MethodGet, "/api/slots/free?start=2026-03-16T09:00:00Z&end=2026-03-16T10:00:00Z", nil)
	c2.Set("user", professional)

	err = SlotFreeHandler(c2)
	assert.NoError(t, err)
	assert.NoError(t, json.Unmarshal(rec2.Body.Bytes(), &result))
	assert.False(t, result["free"])
}

func TestListProfessionalsHandler(t *testing.T) {
	database := setupTestDB(t)

	_, c, rec := setupEcho(http.MethodGet, "/api/professionals?with_hours=true", nil)
	createTestProfessional(t, database, c)

	// A professional without configured hours is filtered out
	fresh := &models.User{Name: "Dr. New", Email: "new2@test", Role: models.RoleProfessional, IsActive: true}
	assert.NoError(t, database.Create(fresh).Error)

	err := ListProfessionalsHandler(c)
	assert.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code)

	var professionals []models.User
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &professionals))
	assert.Len(t, professionals, 1)
	assert.Equal(t, "Dr. Smith", professionals[0].Name)

	// Without the filter both show up
	_, c2, rec2 := setupEcho(http.MethodGet, "/api/professionals", nil)
	err = ListProfessionalsHandler(c2)
	assert.NoError(t, err)
	assert.NoError(t, json.Unmarshal(rec2.Body.Bytes(), &professionals))
	assert.Len(t, professionals, 2)
}
