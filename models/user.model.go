package models

import "gorm.io/gorm"

// User roles. The set is closed: every authorization gate compares
// against these two values only.
const (
	RoleStudent    = "student"
	RoleInstructor = "instructor"
)

type User struct {
	gorm.Model
	Name     string `json:"name" gorm:"default:''"`
	Email    string `json:"email" gorm:"unique;not null"`
	Password string `json:"-" gorm:"not null"`
	Role     string `json:"role" gorm:"default:'student'"` // student or instructor
}

// IsValidRole reports whether role is one of the two known roles.
func IsValidRole(role string) bool {
	return role == RoleStudent || role == RoleInstructor
}
