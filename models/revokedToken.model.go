package models

import (
	"time"

	"gorm.io/gorm"
)

// RevokedToken blacklists a refresh token after logout. Rows are kept
// until the token would have expired anyway; a scheduler purges the rest.
type RevokedToken struct {
	gorm.Model
	Token     string    `json:"-" gorm:"uniqueIndex;not null"`
	ExpiresAt time.Time `json:"expires_at" gorm:"index"`
}
