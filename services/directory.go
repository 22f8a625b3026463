package services

import (
	"errors"

	"clinic_agenda_go/models"

	"gorm.io/gorm"
)

// Placeholder labels when a directory lookup misses. A missing reference
// degrades the label, never the whole view.
const (
	UnknownPatientLabel      = "Unknown patient"
	UnknownProfessionalLabel = "Unknown professional"
)

// GetUserByID fetches a directory entry
func GetUserByID(db *gorm.DB, id string) (*models.User, error) {
	var user models.User
	err := db.First(&user, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// DisplayName resolves a user id to a name for display, falling back to the
// given placeholder when the id has no directory entry
func DisplayName(db *gorm.DB, id, placeholder string) string {
	user, err := GetUserByID(db, id)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			RecordError(db, "directory", "lookup", err, nil)
		}
		return placeholder
	}
	return user.Name
}

// ListProfessionals fetches active users who can own an agenda
func ListProfessionals(db *gorm.DB) ([]models.User, error) {
	var professionals []models.User
	err := db.Where("role IN (?) AND is_active = ?", []string{models.RoleProfessional, models.RoleAdmin}, true).
		Order("name asc").
		Find(&professionals).Error
	return professionals, err
}

// ListProfessionalsWithWorkingHours fetches professionals who have at least
// one active weekly window configured
func ListProfessionalsWithWorkingHours(db *gorm.DB) ([]models.User, error) {
	var professionals []models.User
	err := db.Where("role IN (?) AND is_active = ?", []string{models.RoleProfessional, models.RoleAdmin}, true).
		Where("id IN (SELECT DISTINCT professional_id FROM working_hours WHERE active = ?)", true).
		Order("name asc").
		Find(&professionals).Error
	return professionals, err
}
