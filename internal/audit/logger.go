package audit

import (
	"encoding/json"

	"gorm.io/gorm"

	"github.com/salonkit/salon-admin/internal/models"
)

type Logger struct {
	db *gorm.DB
}

func New(db *gorm.DB) *Logger {
	return &Logger{db: db}
}

func (l *Logger) Write(ev Event) error {
	var details string
	if ev.Details != nil {
		if b, err := json.Marshal(ev.Details); err == nil {
			details = string(b)
		}
	}

	row := models.History{
		OrganizationID: ev.OrganizationID,
		UserID:         ev.UserID,
		Username:       ev.Username,
		Action:         ev.Action,
		EntityType:     ev.EntityType,
		EntityID:       ev.EntityID,
		Details:        details,
	}

	return l.db.Create(&row).Error
}
