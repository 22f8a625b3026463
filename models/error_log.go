package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ErrorLog records a failed store or export operation. Inserts are
// best-effort: a failure to log never surfaces to the user.
type ErrorLog struct {
	ID        string    `gorm:"type:uuid;primarykey" json:"id"`
	CreatedAt time.Time `json:"created_at"`

	Scope     string  `gorm:"size:50;index" json:"scope"` // "appointments", "blocks", "export"
	Operation string  `gorm:"size:50" json:"operation"`   // "create", "update", "delete"
	Message   string  `gorm:"type:text" json:"message"`
	UserID    *string `gorm:"type:uuid;index" json:"user_id,omitempty"`
}

// BeforeCreate hook to generate UUID
func (e *ErrorLog) BeforeCreate(tx *gorm.DB) error {
	if e.ID == "" {
		e.ID = uuid.New().String()
	}
	return nil
}

// TableName specifies the table name for ErrorLog model
func (ErrorLog) TableName() string {
	return "error_logs"
}
