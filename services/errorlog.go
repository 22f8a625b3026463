package services

import (
	"log"

	"clinic_agenda_go/models"

	"gorm.io/gorm"
)

// RecordError stores a failed operation for later inspection. Recording is
// best-effort: if the insert itself fails the error is only logged, never
// returned, so a broken error log can't take a working feature down with it.
func RecordError(db *gorm.DB, scope, operation string, opErr error, userID *string) {
	if opErr == nil {
		return
	}
	entry := &models.ErrorLog{
		Scope:     scope,
		Operation: operation,
		Message:   opErr.Error(),
		UserID:    userID,
	}
	if err := db.Create(entry).Error; err != nil {
		log.Printf("[WARNING] Failed to record error log (%s/%s): %v", scope, operation, err)
	}
}
