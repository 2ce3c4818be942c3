package models

import "gorm.io/gorm"

// PesticideUse is the pesticide application record derived from a
// pest-control work log.
type PesticideUse struct {
	gorm.Model
	WorkLogID     uint     `gorm:"index;not null" json:"work_log_id"`
	OwnerID       uint     `gorm:"index;not null" json:"owner_id"`
	Date          string   `gorm:"size:10;index" json:"date"`
	FieldName     string   `json:"field_name"`
	PesticideID   *uint    `json:"pesticide_id"`
	PesticideName string   `json:"pesticide_name"`
	TargetPest    string   `json:"target_pest"`
	DilutionRate  *float64 `json:"dilution_rate"`
	Amount        *float64 `json:"amount"`
	Method        string   `json:"method"`
	Weather       string   `json:"weather"`
	Temperature   *float64 `json:"temperature"`
	WindSpeed     *float64 `json:"wind_speed"`
}
