package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Appointment status constants
const (
	AppointmentStatusPending   = "PENDING"
	AppointmentStatusConfirmed = "CONFIRMED"
	AppointmentStatusCompleted = "COMPLETED"
	AppointmentStatusNoShow    = "NO_SHOW"
)

// Appointment origin constants
const (
	AppointmentOriginClinic = "clinic"
	AppointmentOriginOnline = "online"
)

// Appointment represents a booking between a patient and a professional.
// Cancellation is a soft flag orthogonal to Status: a cancelled appointment
// keeps the status it had when it was cancelled and is never deleted.
type Appointment struct {
	ID        string         `gorm:"type:uuid;primarykey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	// Patient relationship
	PatientID string `gorm:"type:uuid;index;not null" json:"patient_id"`
	Patient   User   `gorm:"foreignKey:PatientID" json:"patient,omitempty"`

	// Professional relationship
	ProfessionalID string `gorm:"type:uuid;index;not null" json:"professional_id"`
	Professional   User   `gorm:"foreignKey:ProfessionalID" json:"professional,omitempty"`

	// Schedule
	StartTime       time.Time `gorm:"not null;index" json:"start_time"` // Full datetime (UTC)
	EndTime         time.Time `gorm:"not null;index" json:"end_time"`   // Full datetime (UTC)
	DurationMinutes int       `gorm:"not null" json:"duration_minutes"`

	// Service
	ServiceType        string   `gorm:"size:100;not null" json:"service_type"`
	AdditionalServices []string `gorm:"serializer:json" json:"additional_services,omitempty"`
	Value              *float64 `json:"value,omitempty"`
	Observations       *string  `gorm:"type:text" json:"observations,omitempty"`

	// Status (lifecycle) and the orthogonal soft-cancel flag
	Status             string     `gorm:"size:20;default:'PENDING';index" json:"status"`
	Cancelled          bool       `gorm:"default:false;index" json:"cancelled"`
	CancellationReason *string    `gorm:"type:text" json:"cancellation_reason,omitempty"`
	CancelledAt        *time.Time `json:"cancelled_at,omitempty"`
	CancelledByID      *string    `gorm:"type:uuid" json:"cancelled_by_id,omitempty"`

	Origin string `gorm:"size:20;default:'clinic'" json:"origin"`

	// Reminder System
	ReminderSentAt *time.Time `json:"reminder_sent_at,omitempty"`
}

// BeforeCreate hook to generate UUID and derived fields
func (a *Appointment) BeforeCreate(tx *gorm.DB) error {
	if a.ID == "" {
		a.ID = uuid.New().String()
	}
	if a.Status == "" {
		a.Status = AppointmentStatusPending
	}
	if a.Origin == "" {
		a.Origin = AppointmentOriginClinic
	}
	// Calculate duration if not set
	if a.DurationMinutes == 0 && !a.EndTime.IsZero() && !a.StartTime.IsZero() {
		a.DurationMinutes = int(a.EndTime.Sub(a.StartTime).Minutes())
	}
	return nil
}

// TableName specifies the table name for Appointment model
func (Appointment) TableName() string {
	return "appointments"
}

// IsValidAppointmentStatus checks if the status is valid
func IsValidAppointmentStatus(status string) bool {
	validStatuses := []string{
		AppointmentStatusPending,
		AppointmentStatusConfirmed,
		AppointmentStatusCompleted,
		AppointmentStatusNoShow,
	}
	for _, s := range validStatuses {
		if s == status {
			return true
		}
	}
	return false
}

// IsCancellable checks if the appointment can still be soft-cancelled
func (a *Appointment) IsCancellable() bool {
	if a.Cancelled {
		return false
	}
	return a.Status == AppointmentStatusPending || a.Status == AppointmentStatusConfirmed
}

// IsEditable checks if the appointment can be modified or rescheduled
func (a *Appointment) IsEditable() bool {
	if a.Cancelled {
		return false
	}
	return a.Status == AppointmentStatusPending || a.Status == AppointmentStatusConfirmed
}

// Occupies reports whether the appointment still claims its time slot.
// Cancelled appointments remain visible but no longer occupy the agenda.
func (a *Appointment) Occupies() bool {
	return !a.Cancelled
}

// Duration returns the duration of the appointment in minutes
func (a *Appointment) Duration() int {
	if a.DurationMinutes > 0 {
		return a.DurationMinutes
	}
	return int(a.EndTime.Sub(a.StartTime).Minutes())
}
