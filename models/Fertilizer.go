package models

import "gorm.io/gorm"

// Fertilizer is an owner-scoped lookup entity. The nutrient
// composition is copied onto fertilizer-use records at write time.
type Fertilizer struct {
	gorm.Model
	OwnerID           uint    `gorm:"index;not null" json:"owner_id"`
	Name              string  `gorm:"not null" json:"name"`
	Maker             string  `json:"maker"`
	NitrogenContent   float64 `json:"nitrogen_content"`
	PhosphorusContent float64 `json:"phosphorus_content"`
	PotassiumContent  float64 `json:"potassium_content"`
}
