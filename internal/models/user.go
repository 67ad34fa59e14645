package models

import (
	"time"

	"gorm.io/datatypes"
)

// Role values a user account can hold.
const (
	RoleStudent = "student"
	RoleTeacher = "teacher"
)

// User represents a platform account. Points accumulate only through the
// grading transaction and never decrease.
type User struct {
	ID             uint         `gorm:"primaryKey" json:"id"`
	Email          string       `gorm:"size:255;uniqueIndex;not null" json:"email"`
	Name           string       `gorm:"size:255" json:"name"`
	HashedPassword string       `gorm:"size:255" json:"-"`
	Role           string       `gorm:"size:32;not null;default:student" json:"role"`
	Points         int          `gorm:"not null;default:0" json:"points"`
	Profile        *UserProfile `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"profile,omitempty"`
	CreatedAt      time.Time    `json:"created_at"`
	UpdatedAt      time.Time    `json:"updated_at"`
}

// IsTeacher reports whether the account holds the teacher role.
func (u User) IsTeacher() bool {
	return u.Role == RoleTeacher
}

// UserProfile stores optional demographic details for a user.
type UserProfile struct {
	ID             uint            `gorm:"primaryKey" json:"id"`
	UserID         uint            `gorm:"uniqueIndex;not null" json:"user_id"`
	RegisterNumber string          `gorm:"size:64" json:"register_number"`
	DateOfBirth    *datatypes.Date `json:"date_of_birth"`
	Gender         string          `gorm:"size:32" json:"gender"`
	Address        string          `gorm:"size:512" json:"address"`
	Residence      string          `gorm:"size:255" json:"residence"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
}

// Age derives the user's age from the stored date of birth at the given
// reference time. Returns nil when no date of birth is recorded.
func (p UserProfile) Age(reference time.Time) *int {
	if p.DateOfBirth == nil {
		return nil
	}

	dob := time.Time(*p.DateOfBirth)
	age := reference.Year() - dob.Year()
	if reference.Month() < dob.Month() || (reference.Month() == dob.Month() && reference.Day() < dob.Day()) {
		age--
	}
	if age < 0 {
		age = 0
	}

	return &age
}
