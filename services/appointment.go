package services

import (
	"errors"
	"strings"
	"time"

	"clinic_agenda_go/models"

	"gorm.io/gorm"
)

func validateAppointment(apt *models.Appointment) error {
	if apt.PatientID == "" {
		return errors.New("appointment patient is required")
	}
	if apt.ProfessionalID == "" {
		return errors.New("appointment professional is required")
	}
	if strings.TrimSpace(apt.ServiceType) == "" {
		return errors.New("appointment service type is required")
	}
	if apt.StartTime.IsZero() || apt.EndTime.IsZero() {
		return errors.New("appointment start and end are required")
	}
	if !apt.StartTime.Before(apt.EndTime) {
		return errors.New("appointment start must be before end")
	}
	return nil
}

// CreateAppointment creates a new appointment after checking for conflicts.
// Double-booking is rejected here, at the store, not only by the calendar
// disabling occupied slots.
func CreateAppointment(db *gorm.DB, apt *models.Appointment) error {
	if err := validateAppointment(apt); err != nil {
		return err
	}

	hasConflict, err := CheckAppointmentConflict(db, apt.ProfessionalID, apt.StartTime, apt.EndTime, "")
	if err != nil {
		return err
	}
	if hasConflict {
		return errors.New("appointment time conflicts with an existing appointment")
	}

	isFree, err := IsSlotFree(db, apt.ProfessionalID, apt.StartTime, apt.EndTime)
	if err != nil {
		return err
	}
	if !isFree {
		return errors.New("selected time is not within the professional's availability")
	}

	apt.Observations = SanitizeTextPtr(apt.Observations)
	return db.Create(apt).Error
}

// GetAppointmentByID fetches a single appointment with relationships
func GetAppointmentByID(db *gorm.DB, id string) (*models.Appointment, error) {
	var apt models.Appointment
	err := db.Preload("Patient").Preload("Professional").
		First(&apt, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &apt, nil
}

// ListAppointments fetches a professional's appointments within a date
// range. Cancelled appointments are included only when requested: the
// agenda still renders them struck through, but availability math must
// never see them.
func ListAppointments(db *gorm.DB, professionalID string, startDate, endDate time.Time, includeCancelled bool) ([]models.Appointment, error) {
	var appointments []models.Appointment
	query := db.Preload("Patient").
		Where("professional_id = ? AND start_time < ? AND end_time > ?", professionalID, endDate, startDate)
	if !includeCancelled {
		query = query.Where("cancelled = ?", false)
	}
	err := query.Order("start_time asc").Find(&appointments).Error
	return appointments, err
}

// ListClinicAppointments fetches appointments for every professional within
// a date range, for the multi-professional calendar view
func ListClinicAppointments(db *gorm.DB, startDate, endDate time.Time, includeCancelled bool) ([]models.Appointment, error) {
	var appointments []models.Appointment
	query := db.Preload("Patient").Preload("Professional").
		Where("start_time < ? AND end_time > ?", endDate, startDate)
	if !includeCancelled {
		query = query.Where("cancelled = ?", false)
	}
	err := query.Order("start_time asc").Find(&appointments).Error
	return appointments, err
}

// ListPatientAppointments fetches all appointments for a patient
func ListPatientAppointments(db *gorm.DB, patientID string) ([]models.Appointment, error) {
	var appointments []models.Appointment
	err := db.Preload("Professional").
		Where("patient_id = ?", patientID).
		Order("start_time desc").
		Find(&appointments).Error
	return appointments, err
}

// UpdateAppointmentDetails updates the editable fields of an appointment
// (service, value, observations). Schedule changes go through Reschedule.
func UpdateAppointmentDetails(db *gorm.DB, id string, serviceType string, additionalServices []string, value *float64, observations *string) error {
	apt, err := GetAppointmentByID(db, id)
	if err != nil {
		return err
	}
	if !apt.IsEditable() {
		return errors.New("appointment cannot be modified")
	}
	if strings.TrimSpace(serviceType) == "" {
		return errors.New("appointment service type is required")
	}

	apt.ServiceType = serviceType
	apt.AdditionalServices = additionalServices
	apt.Value = value
	apt.Observations = SanitizeTextPtr(observations)
	return db.Save(apt).Error
}

// RescheduleAppointment moves an appointment to a new time
func RescheduleAppointment(db *gorm.DB, id string, newStart, newEnd time.Time) error {
	apt, err := GetAppointmentByID(db, id)
	if err != nil {
		return err
	}
	if !apt.IsEditable() {
		return errors.New("appointment cannot be rescheduled")
	}
	if !newStart.Before(newEnd) {
		return errors.New("appointment start must be before end")
	}

	// Check for conflicts (excluding this appointment)
	hasConflict, err := CheckAppointmentConflict(db, apt.ProfessionalID, newStart, newEnd, id)
	if err != nil {
		return err
	}
	if hasConflict {
		return errors.New("new time conflicts with an existing appointment")
	}

	err = db.Model(&models.Appointment{}).Where("id = ?", id).
		Updates(map[string]interface{}{
			"start_time":       newStart,
			"end_time":         newEnd,
			"duration_minutes": int(newEnd.Sub(newStart).Minutes()),
		}).Error
	if err != nil {
		return err
	}

	InvalidateScheduleCache()
	return nil
}

// CheckAppointmentConflict checks if a time slot conflicts with existing
// non-cancelled appointments for a professional
func CheckAppointmentConflict(db *gorm.DB, professionalID string, startTime, endTime time.Time, excludeID string) (bool, error) {
	var count int64
	query := db.Model(&models.Appointment{}).
		Where("professional_id = ?", professionalID).
		Where("cancelled = ?", false).
		Where("status != ?", models.AppointmentStatusNoShow).
		Where("start_time < ? AND end_time > ?", endTime, startTime) // Overlap check

	if excludeID != "" {
		query = query.Where("id != ?", excludeID)
	}

	err := query.Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// IsSlotFree checks if a time slot is bookable for a professional.
// It considers weekly working hours, manual blocks, and existing appointments.
func IsSlotFree(db *gorm.DB, professionalID string, checkStart, checkEnd time.Time) (bool, error) {
	// 1. Check if the time falls within regular working hours
	withinHours, err := IsWithinWorkingHours(db, professionalID, checkStart, checkEnd)
	if err != nil {
		return false, err
	}
	if !withinHours {
		return false, nil
	}

	// 2. Check for manual blocks
	blocks, err := ListBlocks(db, professionalID, checkStart, checkEnd)
	if err != nil {
		return false, err
	}
	for _, block := range blocks {
		if block.IsBlocking(checkStart, checkEnd) {
			return false, nil
		}
	}

	// 3. Check for existing appointments
	hasConflict, err := CheckAppointmentConflict(db, professionalID, checkStart, checkEnd, "")
	if err != nil {
		return false, err
	}
	return !hasConflict, nil
}
