package entities

import "time"

type Land struct {
	ID     uint   `gorm:"primaryKey" json:"-"`
	LandID string `gorm:"uniqueIndex" json:"land_id"`

	Name           string  `json:"name"`
	AreaAcres      float64 `json:"area_acres"`
	SoilType       string  `json:"soil_type"`       // black|red|alluvial|sandy|loamy|clay
	IrrigationType string  `json:"irrigation_type"` // rainfed|canal|borewell|drip|sprinkler
	Village        string  `json:"village"`
	District       string  `json:"district"`
	State          string  `json:"state"`

	CropCycles []CropCycle `gorm:"foreignKey:LandRef;constraint:OnDelete:CASCADE" json:"-"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"-"`
}
