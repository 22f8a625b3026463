package services

import (
	"fmt"
	"time"

	"clinic_agenda_go/models"
)

// GenerateAppointmentICS generates an ICS file content for an appointment.
// Appointment times are stored in UTC in the database.
func GenerateAppointmentICS(apt *models.Appointment, clinicName, clinicEmail string) ([]byte, error) {
	// Format dates for ICS (YYYYMMDDTHHMMSSZ)
	dateFormat := "20060102T150405Z"
	dtStamp := time.Now().UTC().Format(dateFormat)
	dtStart := apt.StartTime.UTC().Format(dateFormat)
	dtEnd := apt.EndTime.UTC().Format(dateFormat)

	summary := fmt.Sprintf("%s: %s", apt.ServiceType, clinicName)

	description := fmt.Sprintf("%s appointment at %s.", apt.ServiceType, clinicName)
	if apt.Professional.Name != "" {
		description = fmt.Sprintf("%s appointment with %s at %s.", apt.ServiceType, apt.Professional.Name, clinicName)
	}
	if apt.Observations != nil && *apt.Observations != "" {
		description += fmt.Sprintf("\\nNotes: %s", *apt.Observations)
	}

	status := "TENTATIVE"
	if apt.Status == models.AppointmentStatusConfirmed {
		status = "CONFIRMED"
	}
	if apt.Cancelled {
		status = "CANCELLED"
	}

	const icsTemplate = `BEGIN:VCALENDAR
VERSION:2.0
PRODID:-//ClinicAgenda//Appointment//EN
CALSCALE:GREGORIAN
METHOD:REQUEST
BEGIN:VEVENT
UID:%s
DTSTAMP:%s
DTSTART:%s
DTEND:%s
SUMMARY:%s
DESCRIPTION:%s
ORGANIZER;CN="%s":mailto:%s
STATUS:%s
END:VEVENT
END:VCALENDAR`

	icsContent := fmt.Sprintf(icsTemplate,
		apt.ID,
		dtStamp,
		dtStart,
		dtEnd,
		summary,
		description,
		clinicName,
		clinicEmail,
		status,
	)

	return []byte(icsContent), nil
}
