package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// User roles
const (
	RoleAdmin        = "admin"
	RoleProfessional = "professional"
	RoleReceptionist = "receptionist"
	RolePatient      = "patient"
)

// User is a directory entry for anyone known to the clinic: staff,
// professionals and patients. The scheduling engine only reads it to
// resolve names for display and to scope entries to a professional;
// account management lives elsewhere.
type User struct {
	ID        string         `gorm:"type:uuid;primarykey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	Name     string `gorm:"not null" json:"name"`
	Email    string `gorm:"uniqueIndex;not null" json:"email"`
	Role     string `gorm:"not null;default:receptionist" json:"role"` // admin, professional, receptionist, patient
	IsActive bool   `gorm:"not null;default:true" json:"is_active"`
}

// BeforeCreate hook to generate UUID
func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == "" {
		u.ID = uuid.New().String()
	}
	return nil
}

// TableName specifies the table name for User model
func (User) TableName() string {
	return "users"
}

// IsProfessional checks if the user can own an agenda
func (u *User) IsProfessional() bool {
	return u.Role == RoleProfessional || u.Role == RoleAdmin
}
