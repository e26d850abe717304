package models

import "time"

// History rows are append-only; nothing in the codebase updates or deletes
// them after Create.
type History struct {
	ID             uint `gorm:"primaryKey" json:"id"`
	OrganizationID uint `gorm:"index" json:"organization_id"`

	UserID *uint `json:"user_id"`
	// Snapshot so the row stays meaningful after the user is deleted.
	Username string `gorm:"size:100" json:"username"`

	Action     string `gorm:"size:50;not null" json:"action"`
	EntityType string `gorm:"size:50" json:"entity_type"`
	EntityID   *uint  `json:"entity_id"`
	Details    string `gorm:"type:text" json:"details"`

	CreatedAt time.Time `json:"created_at"`
}
