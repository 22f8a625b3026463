package services

import (
	"errors"
	"fmt"
	"time"

	"clinic_agenda_go/models"

	"gorm.io/gorm"
)

// Lifecycle precondition errors. Storage itself carries no transition
// guard, so every status mutation funnels through this controller.
var (
	ErrNotPending       = errors.New("appointment can only be confirmed while pending")
	ErrNotConfirmed     = errors.New("appointment must be confirmed first")
	ErrNotCancellable   = errors.New("appointment can no longer be cancelled")
	ErrAlreadyCancelled = errors.New("appointment is already cancelled")
)

func setAppointmentStatus(db *gorm.DB, apt *models.Appointment, status string) error {
	if err := db.Model(&models.Appointment{}).Where("id = ?", apt.ID).Update("status", status).Error; err != nil {
		return fmt.Errorf("failed to update appointment status: %w", err)
	}
	apt.Status = status
	InvalidateScheduleCache()
	return nil
}

// ConfirmAppointment moves a pending appointment to confirmed
func ConfirmAppointment(db *gorm.DB, id string) (*models.Appointment, error) {
	apt, err := GetAppointmentByID(db, id)
	if err != nil {
		return nil, err
	}
	if apt.Cancelled {
		return nil, ErrAlreadyCancelled
	}
	if apt.Status != models.AppointmentStatusPending {
		return nil, ErrNotPending
	}
	if err := setAppointmentStatus(db, apt, models.AppointmentStatusConfirmed); err != nil {
		return nil, err
	}
	return apt, nil
}

// CompleteAppointment marks a confirmed appointment as completed
func CompleteAppointment(db *gorm.DB, id string) (*models.Appointment, error) {
	apt, err := GetAppointmentByID(db, id)
	if err != nil {
		return nil, err
	}
	if apt.Cancelled {
		return nil, ErrAlreadyCancelled
	}
	if apt.Status != models.AppointmentStatusConfirmed {
		return nil, ErrNotConfirmed
	}
	if err := setAppointmentStatus(db, apt, models.AppointmentStatusCompleted); err != nil {
		return nil, err
	}
	return apt, nil
}

// MarkAppointmentNoShow marks a confirmed appointment as a no-show
func MarkAppointmentNoShow(db *gorm.DB, id string) (*models.Appointment, error) {
	apt, err := GetAppointmentByID(db, id)
	if err != nil {
		return nil, err
	}
	if apt.Cancelled {
		return nil, ErrAlreadyCancelled
	}
	if apt.Status != models.AppointmentStatusConfirmed {
		return nil, ErrNotConfirmed
	}
	if err := setAppointmentStatus(db, apt, models.AppointmentStatusNoShow); err != nil {
		return nil, err
	}
	return apt, nil
}

// CancelAppointment soft-cancels an appointment. The status field is left
// untouched so the record still shows what it was when it got cancelled;
// only the flag flips, and it never flips back. Allowed from pending or
// confirmed only, which closes the otherwise unguarded completed+cancelled
// combination at the single mutation point.
func CancelAppointment(db *gorm.DB, id string, reason string, cancelledByID *string) (*models.Appointment, error) {
	apt, err := GetAppointmentByID(db, id)
	if err != nil {
		return nil, err
	}
	if apt.Cancelled {
		return nil, ErrAlreadyCancelled
	}
	if !apt.IsCancellable() {
		return nil, ErrNotCancellable
	}

	now := time.Now().UTC()
	updates := map[string]interface{}{
		"cancelled":    true,
		"cancelled_at": now,
	}
	if reason != "" {
		updates["cancellation_reason"] = SanitizeText(reason)
	}
	if cancelledByID != nil {
		updates["cancelled_by_id"] = *cancelledByID
	}

	if err := db.Model(&models.Appointment{}).Where("id = ?", id).Updates(updates).Error; err != nil {
		return nil, fmt.Errorf("failed to cancel appointment: %w", err)
	}

	apt.Cancelled = true
	apt.CancelledAt = &now
	InvalidateScheduleCache()
	return apt, nil
}
