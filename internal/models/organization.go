package models

import "time"

type Organization struct {
	ID   uint   `gorm:"primaryKey" json:"id"`
	Name string `gorm:"size:100;not null" json:"name"`
	Slug string `gorm:"size:100;uniqueIndex;not null" json:"slug"`

	Timezone        string `gorm:"size:64;default:'UTC'" json:"timezone"`
	SlotIntervalMin int    `gorm:"default:30" json:"slot_interval_min"`

	// Daily booking window used by the availability grid.
	DayStart string `gorm:"size:5;default:'09:00'" json:"day_start"`
	DayEnd   string `gorm:"size:5;default:'20:00'" json:"day_end"`

	IsActive bool `gorm:"default:true" json:"is_active"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
