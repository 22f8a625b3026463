package services

import (
	"errors"
	"time"

	"clinic_agenda_go/models"

	"gorm.io/gorm"
)

// Default working hours: Mon-Fri, 8:00-18:00
var defaultWorkingHours = []struct {
	Weekday   int
	StartTime string
	EndTime   string
}{
	{1, "08:00", "18:00"},
	{2, "08:00", "18:00"},
	{3, "08:00", "18:00"},
	{4, "08:00", "18:00"},
	{5, "08:00", "18:00"},
}

// CreateDefaultWorkingHours seeds the default weekly hours for a professional
func CreateDefaultWorkingHours(db *gorm.DB, professionalID string) error {
	for _, day := range defaultWorkingHours {
		hours := &models.WorkingHours{
			ProfessionalID: professionalID,
			Weekday:        day.Weekday,
			StartTime:      day.StartTime,
			EndTime:        day.EndTime,
			Active:         true,
		}
		if err := db.Create(hours).Error; err != nil {
			return err
		}
	}
	return nil
}

// GetWorkingHours fetches all configured weekday windows for a professional
func GetWorkingHours(db *gorm.DB, professionalID string) ([]models.WorkingHours, error) {
	var rows []models.WorkingHours
	err := db.Where("professional_id = ?", professionalID).
		Order("weekday, start_time").
		Find(&rows).Error
	return rows, err
}

// GetWeekSchedule loads a professional's working hours as a WeekSchedule
func GetWeekSchedule(db *gorm.DB, professionalID string) (models.WeekSchedule, error) {
	rows, err := GetWorkingHours(db, professionalID)
	if err != nil {
		return nil, err
	}
	return models.BuildWeekSchedule(rows), nil
}

// HasWorkingHours checks if a professional has any weekly hours configured
func HasWorkingHours(db *gorm.DB, professionalID string) (bool, error) {
	var count int64
	err := db.Model(&models.WorkingHours{}).Where("professional_id = ?", professionalID).Count(&count).Error
	return count > 0, err
}

// validateDayWindow enforces the HH:MM format and start < end
func validateDayWindow(startTime, endTime string) error {
	startMin, err := ClockMinutes(startTime)
	if err != nil {
		return errors.New("invalid start time, expected HH:MM")
	}
	endMin, err := ClockMinutes(endTime)
	if err != nil {
		return errors.New("invalid end time, expected HH:MM")
	}
	if startMin >= endMin {
		return errors.New("start time must be before end time")
	}
	return nil
}

// SetDayWorkingHours creates or replaces the window for one weekday.
// Each weekday holds at most one window, so an existing row is updated in
// place rather than duplicated.
func SetDayWorkingHours(db *gorm.DB, professionalID string, weekday int, startTime, endTime string, active bool) (*models.WorkingHours, error) {
	if weekday < 0 || weekday > 6 {
		return nil, errors.New("weekday must be between 0 (Sunday) and 6 (Saturday)")
	}
	if err := validateDayWindow(startTime, endTime); err != nil {
		return nil, err
	}

	var hours models.WorkingHours
	err := db.Where("professional_id = ? AND weekday = ?", professionalID, weekday).First(&hours).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		hours = models.WorkingHours{
			ProfessionalID: professionalID,
			Weekday:        weekday,
			StartTime:      startTime,
			EndTime:        endTime,
			Active:         active,
		}
		if err := db.Create(&hours).Error; err != nil {
			return nil, err
		}
	case err != nil:
		return nil, err
	default:
		hours.StartTime = startTime
		hours.EndTime = endTime
		hours.Active = active
		if err := db.Save(&hours).Error; err != nil {
			return nil, err
		}
	}

	InvalidateScheduleCache()
	return &hours, nil
}

// DeactivateDayWorkingHours marks a weekday as closed without losing its window
func DeactivateDayWorkingHours(db *gorm.DB, professionalID string, weekday int) error {
	err := db.Model(&models.WorkingHours{}).
		Where("professional_id = ? AND weekday = ?", professionalID, weekday).
		Update("active", false).Error
	if err != nil {
		return err
	}
	InvalidateScheduleCache()
	return nil
}

// DeleteWorkingHours removes a weekday window entirely
func DeleteWorkingHours(db *gorm.DB, id string) error {
	if err := db.Delete(&models.WorkingHours{}, "id = ?", id).Error; err != nil {
		return err
	}
	InvalidateScheduleCache()
	return nil
}

// IsWithinWorkingHours checks if a datetime range falls inside the
// professional's configured window for that weekday. Windows and the range
// are compared in minutes since midnight, so a range ending at midnight of
// the next day matches a window closing at 24:00.
func IsWithinWorkingHours(db *gorm.DB, professionalID string, checkStart, checkEnd time.Time) (bool, error) {
	startMin := checkStart.Hour()*60 + checkStart.Minute()
	endMin := checkEnd.Hour()*60 + checkEnd.Minute()
	if endMin == 0 && checkEnd.After(checkStart) {
		endMin = 24 * 60
	}

	var rows []models.WorkingHours
	err := db.Where("professional_id = ? AND weekday = ? AND active = ?",
		professionalID, int(checkStart.Weekday()), true).
		Find(&rows).Error
	if err != nil {
		return false, err
	}

	for _, row := range rows {
		windowStart, err := ClockMinutes(row.StartTime)
		if err != nil {
			continue
		}
		windowEnd, err := ClockMinutes(row.EndTime)
		if err != nil {
			continue
		}
		if windowStart <= startMin && windowEnd >= endMin {
			return true, nil
		}
	}
	return false, nil
}
