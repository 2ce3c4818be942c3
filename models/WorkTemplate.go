package models

import "gorm.io/gorm"

// WorkTemplate is a named partial work-log draft an owner can apply to
// the form in one tap. Fields holds a subset of recognized draft field
// names mapped to their string form values.
type WorkTemplate struct {
	gorm.Model
	OwnerID uint              `gorm:"index;not null" json:"owner_id"`
	Name    string            `gorm:"not null" json:"name"`
	Fields  map[string]string `gorm:"serializer:json" json:"fields"`
}
