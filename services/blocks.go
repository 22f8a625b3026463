package services

import (
	"errors"
	"strings"
	"time"

	"clinic_agenda_go/models"

	"gorm.io/gorm"
)

// validateBlock enforces the fields a block cannot be saved without.
// Missing fields are rejected explicitly instead of silently dropped.
func validateBlock(block *models.Block) error {
	if strings.TrimSpace(block.Title) == "" {
		return errors.New("block title is required")
	}
	if block.ProfessionalID == "" {
		return errors.New("block professional is required")
	}
	if block.StartAt.IsZero() || block.EndAt.IsZero() {
		return errors.New("block start and end are required")
	}
	if !block.StartAt.Before(block.EndAt) {
		return errors.New("block start must be before end")
	}
	return nil
}

// ListBlocks fetches blocks for a professional that overlap a date range
func ListBlocks(db *gorm.DB, professionalID string, startDate, endDate time.Time) ([]models.Block, error) {
	var blocks []models.Block
	// Find blocks that overlap with the requested window: (StartA < EndB) AND (EndA > StartB)
	err := db.Where("professional_id = ? AND start_at < ? AND end_at > ?", professionalID, endDate, startDate).
		Order("start_at asc").
		Find(&blocks).Error
	return blocks, err
}

// ListUpcomingBlocks fetches all blocks for a professional that end today or later
func ListUpcomingBlocks(db *gorm.DB, professionalID string) ([]models.Block, error) {
	var blocks []models.Block
	err := db.Where("professional_id = ? AND end_at >= ?", professionalID, time.Now().Truncate(24*time.Hour)).
		Order("start_at asc").
		Find(&blocks).Error
	return blocks, err
}

// GetBlockByID fetches a single block
func GetBlockByID(db *gorm.DB, id string) (*models.Block, error) {
	var block models.Block
	err := db.First(&block, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &block, nil
}

// CreateBlock adds a new block to a professional's agenda
func CreateBlock(db *gorm.DB, block *models.Block) error {
	if err := validateBlock(block); err != nil {
		return err
	}
	block.Title = SanitizeText(block.Title)
	block.Description = SanitizeTextPtr(block.Description)
	return db.Create(block).Error
}

// UpdateBlock updates an existing block
func UpdateBlock(db *gorm.DB, block *models.Block) error {
	if err := validateBlock(block); err != nil {
		return err
	}
	block.Title = SanitizeText(block.Title)
	block.Description = SanitizeTextPtr(block.Description)
	return db.Save(block).Error
}

// DeleteBlock removes a block
func DeleteBlock(db *gorm.DB, id string) error {
	return db.Delete(&models.Block{}, "id = ?", id).Error
}

// CheckBlockOverlap checks if a time range overlaps existing blocks for a professional
func CheckBlockOverlap(db *gorm.DB, professionalID string, startAt, endAt time.Time, excludeID string) (bool, error) {
	var count int64
	query := db.Model(&models.Block{}).Where("professional_id = ?", professionalID)

	if excludeID != "" {
		query = query.Where("id != ?", excludeID)
	}

	// Simple overlap check: (StartA < EndB) and (EndA > StartB)
	err := query.Where("start_at < ? AND end_at > ?", endAt, startAt).Count(&count).Error
	if err != nil {
		return false, err
	}

	return count > 0, nil
}
