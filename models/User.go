package models

import "gorm.io/gorm"

// User represents an account that can authenticate with the service.
// Users double as the worker roster shown on the work-log form, so
// Name is the display label recorded on work logs.
type User struct {
	gorm.Model
	Email        string `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash string `gorm:"not null" json:"-"`
	Name         string `json:"name"`
}
