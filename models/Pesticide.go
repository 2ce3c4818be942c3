package models

import "gorm.io/gorm"

// Pesticide is an owner-scoped lookup entity for pest-control records.
type Pesticide struct {
	gorm.Model
	OwnerID            uint   `gorm:"index;not null" json:"owner_id"`
	Name               string `gorm:"not null" json:"name"`
	RegistrationNumber string `json:"registration_number"`
	ActiveIngredient   string `json:"active_ingredient"`
	Type               string `json:"type"`
}
