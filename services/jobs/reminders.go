package jobs

import (
	"log"
	"time"

	"clinic_agenda_go/config"
	"clinic_agenda_go/models"
	"clinic_agenda_go/services"

	"gorm.io/gorm"
)

// SendAppointmentReminders checks for appointments tomorrow and sends reminders
func SendAppointmentReminders(database *gorm.DB, cfg *config.Config) {
	log.Println("Starting appointment reminder job...")

	// Appointments starting in the next 24-48 hours window ("tomorrow")
	now := time.Now().UTC()
	tomorrowStart := now.Add(24 * time.Hour)
	tomorrowEnd := now.Add(48 * time.Hour)

	var appointments []models.Appointment

	// Find appointments:
	// 1. Pending or confirmed, not cancelled
	// 2. StartTime between tomorrowStart and tomorrowEnd
	// 3. ReminderSentAt is NULL
	err := database.Preload("Patient").Preload("Professional").
		Where("status IN (?)", []string{models.AppointmentStatusPending, models.AppointmentStatusConfirmed}).
		Where("cancelled = ?", false).
		Where("start_time >= ? AND start_time <= ?", tomorrowStart, tomorrowEnd).
		Where("reminder_sent_at IS NULL").
		Find(&appointments).Error

	if err != nil {
		log.Printf("Error fetching appointments for reminders: %v", err)
		return
	}

	log.Printf("Found %d appointments to remind", len(appointments))

	for _, apt := range appointments {
		if apt.Patient.Email == "" {
			continue
		}

		email := services.BuildAppointmentReminderEmail(apt.Patient.Email, services.AppointmentEmailData{
			PatientName:      apt.Patient.Name,
			ProfessionalName: apt.Professional.Name,
			ClinicName:       cfg.ClinicName,
			ServiceType:      apt.ServiceType,
			Date:             apt.StartTime.Format("Monday, January 2, 2006"),
			Time:             apt.StartTime.Format("3:04 PM"),
			Duration:         apt.Duration(),
		})

		if err := services.SendEmail(cfg, email); err != nil {
			log.Printf("Failed to send reminder for appointment %s: %v", apt.ID, err)
			continue
		}

		// Update ReminderSentAt
		now := time.Now().UTC()
		database.Model(&apt).Update("reminder_sent_at", now)
		log.Printf("Sent reminder for appointment %s", apt.ID)
	}

	log.Println("Appointment reminder job completed")
}
