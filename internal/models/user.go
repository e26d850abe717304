package models

import "time"

type User struct {
	ID uint `gorm:"primaryKey" json:"id"`

	// Null for superadmins, which are not bound to a tenant.
	OrganizationID *uint         `json:"organization_id"`
	Organization   *Organization `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"organization,omitempty"`

	Username     string `gorm:"size:100;uniqueIndex;not null" json:"username"`
	PasswordHash string `gorm:"size:255;not null" json:"-"`
	Name         string `gorm:"size:100" json:"name"`
	Role         string `gorm:"size:20;default:'user'" json:"role"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
