package models

import "gorm.io/gorm"

// Seed is an owner-scoped lookup entity for planting records.
type Seed struct {
	gorm.Model
	OwnerID uint   `gorm:"index;not null" json:"owner_id"`
	Name    string `gorm:"not null" json:"name"`
	Variety string `json:"variety"`
	Maker   string `json:"maker"`
}
