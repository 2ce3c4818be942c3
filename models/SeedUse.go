package models

import "gorm.io/gorm"

// SeedUse is the planting record derived from a seeding work log.
type SeedUse struct {
	gorm.Model
	WorkLogID uint     `gorm:"index;not null" json:"work_log_id"`
	OwnerID   uint     `gorm:"index;not null" json:"owner_id"`
	Date      string   `gorm:"size:10;index" json:"date"`
	FieldName string   `json:"field_name"`
	SeedID    *uint    `json:"seed_id"`
	SeedName  string   `json:"seed_name"`
	Amount    *float64 `json:"amount"`
	Method    string   `json:"method"`
}
