package services

import (
	"testing"
	"time"

	"clinic_agenda_go/models"

	"github.com/stretchr/testify/assert"
)

func TestGenerateAppointmentICS(t *testing.T) {
	apt := &models.Appointment{
		ID:           "apt-1",
		ServiceType:  "Consultation",
		StartTime:    time.Date(2026, 3, 16, 9, 0, 0, 0, time.UTC),
		EndTime:      time.Date(2026, 3, 16, 10, 0, 0, 0, time.UTC),
		Status:       models.AppointmentStatusPending,
		Professional: models.User{Name: "Dr. Smith"},
	}

	ics, err := GenerateAppointmentICS(apt, "Sunrise Clinic", "hello@sunrise.test")
	assert.NoError(t, err)

	content := string(ics)
	assert.Contains(t, content, "BEGIN:VCALENDAR")
	assert.Contains(t, content, "UID:apt-1")
	assert.Contains(t, content, "DTSTART:20260316T090000Z")
	assert.Contains(t, content, "DTEND:20260316T100000Z")
	assert.Contains(t, content, "SUMMARY:Consultation: Sunrise Clinic")
	assert.Contains(t, content, "Dr. Smith")
	assert.Contains(t, content, "mailto:hello@sunrise.test")
	assert.Contains(t, content, "STATUS:TENTATIVE")
	assert.Contains(t, content, "END:VCALENDAR")
}

func TestGenerateAppointmentICS_Status(t *testing.T) {
	apt := &models.Appointment{
		ID:          "apt-1",
		ServiceType: "Consultation",
		StartTime:   time.Date(2026, 3, 16, 9, 0, 0, 0, time.UTC),
		EndTime:     time.Date(2026, 3, 16, 10, 0, 0, 0, time.UTC),
		Status:      models.AppointmentStatusConfirmed,
	}

	ics, err := GenerateAppointmentICS(apt, "Sunrise Clinic", "hello@sunrise.test")
	assert.NoError(t, err)
	assert.Contains(t, string(ics), "STATUS:CONFIRMED")

	// Cancellation wins over whatever status the appointment held
	apt.Cancelled = true
	ics, err = GenerateAppointmentICS(apt, "Sunrise Clinic", "hello@sunrise.test")
	assert.NoError(t, err)
	assert.Contains(t, string(ics), "STATUS:CANCELLED")
}

func TestGenerateAppointmentICS_Observations(t *testing.T) {
	observations := "Bring previous X-rays"
	apt := &models.Appointment{
		ID:           "apt-1",
		ServiceType:  "Consultation",
		StartTime:    time.Date(2026, 3, 16, 9, 0, 0, 0, time.UTC),
		EndTime:      time.Date(2026, 3, 16, 10, 0, 0, 0, time.UTC),
		Observations: &observations,
	}

	ics, err := GenerateAppointmentICS(apt, "Sunrise Clinic", "hello@sunrise.test")
	assert.NoError(t, err)
	assert.Contains(t, string(ics), "Bring previous X-rays")
}
