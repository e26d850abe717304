package models

import "time"

type Client struct {
	ID             uint `gorm:"primaryKey" json:"id"`
	OrganizationID uint `gorm:"not null;index:idx_clients_org_phone,unique" json:"organization_id"`

	FullName string `gorm:"size:100;not null" json:"full_name"`
	Phone    string `gorm:"size:20;not null;index:idx_clients_org_phone,unique" json:"phone"`
	Notes    string `gorm:"size:500" json:"notes"`
	Status   string `gorm:"size:10;default:'active'" json:"status"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
