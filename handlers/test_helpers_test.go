package handlers

import (
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"clinic_agenda_go/config"
	"clinic_agenda_go/db"
	"clinic_agenda_go/models"
	"clinic_agenda_go/services"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupTestDB(t *testing.T) *gorm.DB {
	// Use unique shared memory name to isolate tests while allowing shared cache for async tasks
	dbName := "mem_" + uuid.New().String()
	testDB, err := gorm.Open(sqlite.Open("file:"+dbName+"?mode=memory&cache=shared&_busy_timeout=5000"), &gorm.Config{})
	assert.NoError(t, err)

	err = testDB.Exec("PRAGMA journal_mode=WAL;").Error
	assert.NoError(t, err)

	err = testDB.AutoMigrate(
		&models.User{},
		&models.Session{},
		&models.WorkingHours{},
		&models.Block{},
		&models.Appointment{},
		&models.ErrorLog{},
	)
	assert.NoError(t, err)

	// Set global DB
	db.DB = testDB

	services.InvalidateScheduleCache()

	return testDB
}

func setupEcho(method, path string, body io.Reader) (*echo.Echo, echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	req := httptest.NewRequest(method, path, body)
	if body != nil {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	// Add config to context
	c.Set("config", &config.Config{
		Environment:   "test",
		EmailTestMode: true,
		ClinicName:    "Test Clinic",
		ClinicEmail:   "clinic@test",
	})

	return e, c, rec
}

// createTestProfessional seeds a professional with default Mon-Fri hours and
// puts them on the context as the authenticated user
func createTestProfessional(t *testing.T, testDB *gorm.DB, c echo.Context) *models.User {
	user := &models.User{
		Name:     "Dr. Smith",
		Email:    "smith-" + uuid.New().String() + "@test",
		Role:     models.RoleProfessional,
		IsActive: true,
	}
	assert.NoError(t, testDB.Create(user).Error)
	assert.NoError(t, services.CreateDefaultWorkingHours(testDB, user.ID))
	services.InvalidateScheduleCache()

	c.Set("user", user)
	return user
}

func createTestPatient(t *testing.T, testDB *gorm.DB) *models.User {
	user := &models.User{
		Name:     "Ana Gomez",
		Email:    "ana-" + uuid.New().String() + "@test",
		Role:     models.RolePatient,
		IsActive: true,
	}
	assert.NoError(t, testDB.Create(user).Error)
	return user
}

// testMonday is a Monday inside the default working hours
var testMonday = time.Date(2026, 3, 16, 0, 0, 0, 0, time.UTC)

func createTestAppointment(t *testing.T, testDB *gorm.DB, patientID, professionalID string, startHour, endHour int) *models.Appointment {
	apt := &models.Appointment{
		PatientID:      patientID,
		ProfessionalID: professionalID,
		StartTime:      testMonday.Add(time.Duration(startHour) * time.Hour),
		EndTime:        testMonday.Add(time.Duration(endHour) * time.Hour),
		ServiceType:    "Consultation",
	}
	assert.NoError(t, services.CreateAppointment(testDB, apt))
	return apt
}
