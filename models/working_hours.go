package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// WorkingHours represents a professional's configured open window for one
// weekday. At most one row per (professional, weekday); days without a row
// or with Active=false are closed.
type WorkingHours struct {
	ID        string         `gorm:"type:uuid;primarykey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	ProfessionalID string `gorm:"type:uuid;index;not null" json:"professional_id"` // References User
	Weekday        int    `gorm:"not null" json:"weekday"`                         // 0=Sunday...6=Saturday
	StartTime      string `gorm:"not null" json:"start_time"`                      // "08:00"
	EndTime        string `gorm:"not null" json:"end_time"`                        // "18:00"
	Active         bool   `gorm:"default:true" json:"active"`

	// Relationships
	Professional User `gorm:"foreignKey:ProfessionalID" json:"professional,omitempty"`
}

// BeforeCreate hook to generate UUID
func (w *WorkingHours) BeforeCreate(tx *gorm.DB) error {
	if w.ID == "" {
		w.ID = uuid.New().String()
	}
	return nil
}

// TableName specifies the table name for WorkingHours model
func (WorkingHours) TableName() string {
	return "working_hours"
}

// DayName returns the name of the day
func (w *WorkingHours) DayName() string {
	days := []string{"Sunday", "Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday"}
	if w.Weekday >= 0 && w.Weekday < 7 {
		return days[w.Weekday]
	}
	return ""
}

// DayHours is the open window for a single weekday.
type DayHours struct {
	Active bool   `json:"active"`
	Start  string `json:"start"` // "08:00"
	End    string `json:"end"`   // "18:00", "24:00" means end of day
}

// WeekSchedule maps each weekday to its configured hours. Missing weekdays
// are treated the same as inactive ones.
type WeekSchedule map[time.Weekday]DayHours

// BuildWeekSchedule folds WorkingHours rows into a WeekSchedule.
func BuildWeekSchedule(rows []WorkingHours) WeekSchedule {
	schedule := make(WeekSchedule, len(rows))
	for _, row := range rows {
		if row.Weekday < 0 || row.Weekday > 6 {
			continue
		}
		schedule[time.Weekday(row.Weekday)] = DayHours{
			Active: row.Active,
			Start:  row.StartTime,
			End:    row.EndTime,
		}
	}
	return schedule
}

// VirtualBlock is a derived closed period outside working hours. It is
// computed on demand for a day or week and never persisted.
type VirtualBlock struct {
	StartAt     time.Time `json:"start_at"`
	EndAt       time.Time `json:"end_at"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
}
