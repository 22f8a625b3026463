package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Block represents a manually created closed period on a professional's
// agenda (lunch, personal commitment, vacation day).
type Block struct {
	ID        string         `gorm:"type:uuid;primarykey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	ProfessionalID string    `gorm:"type:uuid;index;not null" json:"professional_id"`
	StartAt        time.Time `gorm:"not null;index" json:"start_at"`
	EndAt          time.Time `gorm:"not null;index" json:"end_at"`
	Title          string    `gorm:"size:200;not null" json:"title"`
	Description    *string   `gorm:"type:text" json:"description,omitempty"`

	// Relationships
	Professional User `gorm:"foreignKey:ProfessionalID" json:"professional,omitempty"`
}

// BeforeCreate hook to generate UUID
func (b *Block) BeforeCreate(tx *gorm.DB) error {
	if b.ID == "" {
		b.ID = uuid.New().String()
	}
	return nil
}

// TableName specifies the table name for Block model
func (Block) TableName() string {
	return "blocks"
}

// IsBlocking checks if this block covers any part of a given time range
func (b *Block) IsBlocking(checkStart, checkEnd time.Time) bool {
	// Simple range overlap check: (StartA < EndB) and (EndA > StartB)
	return b.StartAt.Before(checkEnd) && b.EndAt.After(checkStart)
}
