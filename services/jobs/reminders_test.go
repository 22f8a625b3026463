package jobs

import (
	"testing"
	"time"

	"clinic_agenda_go/config"
	"clinic_agenda_go/models"

	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// SetupReminderTestDB initializes a fresh in-memory DB for these tests
func SetupReminderTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{})
	assert.NoError(t, err)

	// Migrate schemas
	err = db.AutoMigrate(&models.User{}, &models.Appointment{})
	assert.NoError(t, err)

	return db
}

func seedReminderAppointment(t *testing.T, db *gorm.DB, startIn time.Duration, status string, cancelled bool) *models.Appointment {
	patient := &models.User{Name: "Ana", Email: "ana@test-" + time.Now().Format("150405.000000000"), Role: models.RolePatient}
	assert.NoError(t, db.Create(patient).Error)
	professional := &models.User{Name: "Dr. Smith", Email: "smith@test-" + time.Now().Format("150405.000000000"), Role: models.RoleProfessional}
	assert.NoError(t, db.Create(professional).Error)

	start := time.Now().UTC().Add(startIn)
	apt := &models.Appointment{
		PatientID:      patient.ID,
		ProfessionalID: professional.ID,
		StartTime:      start,
		EndTime:        start.Add(time.Hour),
		ServiceType:    "Consultation",
		Status:         status,
	}
	assert.NoError(t, db.Create(apt).Error)
	if cancelled {
		assert.NoError(t, db.Model(apt).Update("cancelled", true).Error)
	}
	return apt
}

func TestSendAppointmentReminders(t *testing.T) {
	db := SetupReminderTestDB(t)
	cfg := &config.Config{EmailTestMode: true, ClinicName: "Sunrise Clinic"}

	due := seedReminderAppointment(t, db, 30*time.Hour, models.AppointmentStatusConfirmed, false)
	tooSoon := seedReminderAppointment(t, db, 2*time.Hour, models.AppointmentStatusConfirmed, false)
	tooFar := seedReminderAppointment(t, db, 72*time.Hour, models.AppointmentStatusConfirmed, false)
	cancelled := seedReminderAppointment(t, db, 30*time.Hour, models.AppointmentStatusConfirmed, true)

	SendAppointmentReminders(db, cfg)

	reloaded := func(id string) *models.Appointment {
		var apt models.Appointment
		assert.NoError(t, db.First(&apt, "id = ?", id).Error)
		return &apt
	}

	assert.NotNil(t, reloaded(due.ID).ReminderSentAt)
	assert.Nil(t, reloaded(tooSoon.ID).ReminderSentAt)
	assert.Nil(t, reloaded(tooFar.ID).ReminderSentAt)
	assert.Nil(t, reloaded(cancelled.ID).ReminderSentAt)
}

func TestSendAppointmentReminders_OnlyOnce(t *testing.T) {
	db := SetupReminderTestDB(t)
	cfg := &config.Config{EmailTestMode: true, ClinicName: "Sunrise Clinic"}

	due := seedReminderAppointment(t, db, 30*time.Hour, models.AppointmentStatusPending, false)

	SendAppointmentReminders(db, cfg)

	var first models.Appointment
	assert.NoError(t, db.First(&first, "id = ?", due.ID).Error)
	assert.NotNil(t, first.ReminderSentAt)
	sentAt := *first.ReminderSentAt

	// A second run leaves the timestamp untouched
	SendAppointmentReminders(db, cfg)

	var second models.Appointment
	assert.NoError(t, db.First(&second, "id = ?", due.ID).Error)
	assert.Equal(t, sentAt.Unix(), second.ReminderSentAt.Unix())
}
