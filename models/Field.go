package models

import "gorm.io/gorm"

// Field is a plot of farmland owned by one account. Work logs
// reference fields and snapshot the name at write time.
type Field struct {
	gorm.Model
	OwnerID  uint    `gorm:"index;not null" json:"owner_id"`
	Name     string  `gorm:"not null" json:"name"`
	Area     float64 `json:"area"`
	AreaUnit string  `gorm:"size:8" json:"area_unit"`
	Location string  `json:"location"`
	Crop     string  `json:"crop"`
}
