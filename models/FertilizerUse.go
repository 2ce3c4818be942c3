package models

import "gorm.io/gorm"

// FertilizerUse is the compliance record derived from a fertilizing
// work log. WorkLogID is a back-reference only; the name and nutrient
// columns are snapshots taken when the record was written and do not
// follow later edits to the fertilizer master.
type FertilizerUse struct {
	gorm.Model
	WorkLogID      uint     `gorm:"index;not null" json:"work_log_id"`
	OwnerID        uint     `gorm:"index;not null" json:"owner_id"`
	Date           string   `gorm:"size:10;index" json:"date"`
	FieldName      string   `json:"field_name"`
	FertilizerID   *uint    `json:"fertilizer_id"`
	FertilizerName string   `json:"fertilizer_name"`
	Amount         *float64 `json:"amount"`
	Unit           string   `gorm:"size:8" json:"unit"`
	Method         string   `json:"method"`
	Nitrogen       *float64 `json:"nitrogen"`
	Phosphorus     *float64 `json:"phosphorus"`
	Potassium      *float64 `json:"potassium"`
}
