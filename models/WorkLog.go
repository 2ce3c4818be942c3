package models

import (
	"gorm.io/gorm"
)

// Work types recognized by the record keeper. The values are the
// Japanese labels farmers select on the work-log form and are stored
// verbatim.
const (
	WorkTypeTillage     = "耕起"
	WorkTypeFertilizing = "施肥"
	WorkTypeSeeding     = "播種"
	WorkTypePestControl = "防除"
	WorkTypeWeeding     = "除草"
	WorkTypeHarvest     = "収穫"
	WorkTypeOther       = "その他"
)

// WorkTypes lists every selectable work type in form order.
func WorkTypes() []string {
	return []string{
		WorkTypeTillage,
		WorkTypeFertilizing,
		WorkTypeSeeding,
		WorkTypePestControl,
		WorkTypeWeeding,
		WorkTypeHarvest,
		WorkTypeOther,
	}
}

// ValidWorkType reports whether value is one of the recognized work types.
func ValidWorkType(value string) bool {
	for _, workType := range WorkTypes() {
		if workType == value {
			return true
		}
	}
	return false
}

// WorkLog is the primary record of one work session on one field. The
// type-specific columns hold values only while WorkType matches the
// owning type; every other type's columns are kept NULL so that a
// work-type change on edit leaves no stale payload behind.
type WorkLog struct {
	gorm.Model
	OwnerID     uint     `gorm:"index;not null" json:"owner_id"`
	Date        string   `gorm:"size:10;index;not null" json:"date"`
	FieldID     *uint    `gorm:"index" json:"field_id"`
	FieldName   string   `json:"field_name"`
	WorkType    string   `gorm:"size:16;not null" json:"work_type"`
	WorkerIDs   []uint   `gorm:"serializer:json" json:"worker_ids"`
	WorkerNames []string `gorm:"serializer:json" json:"worker_names"`
	Details     string   `gorm:"type:text" json:"details"`
	WorkHours   float64  `gorm:"not null" json:"work_hours"`

	HarvestAmount *float64 `json:"harvest_amount"`
	WasteAmount   *float64 `json:"waste_amount"`

	// 施肥 (fertilizing) payload.
	FertilizerID     *uint    `json:"fertilizer_id"`
	FertilizerAmount *float64 `json:"fertilizer_amount"`
	FertilizerUnit   *string  `json:"fertilizer_unit"`
	FertilizerMethod *string  `json:"fertilizer_method"`

	// 播種 (seeding) payload.
	SeedID     *uint    `json:"seed_id"`
	SeedAmount *float64 `json:"seed_amount"`
	SeedMethod *string  `json:"seed_method"`

	// 防除 (pest control) payload.
	PesticideID     *uint    `json:"pesticide_id"`
	TargetPest      *string  `json:"target_pest"`
	DilutionRate    *float64 `json:"dilution_rate"`
	PesticideAmount *float64 `json:"pesticide_amount"`
	PesticideMethod *string  `json:"pesticide_method"`
	Weather         *string  `json:"weather"`
	Temperature     *float64 `json:"temperature"`
	WindSpeed       *float64 `json:"wind_speed"`
}
