package entities

import "time"

type MarketPrice struct {
	ID uint `gorm:"primaryKey" json:"-"`

	Crop  string `gorm:"index" json:"crop"`
	Mandi string `json:"mandi"`
	State string `json:"state"`

	MinPrice   *float64 `json:"min_price,omitempty"`
	MaxPrice   *float64 `json:"max_price,omitempty"`
	ModalPrice float64  `json:"modal_price"` // ₹ per quintal

	RecordedDate time.Time `gorm:"index" json:"recorded_date"`
	CreatedAt    time.Time `json:"-"`
}
