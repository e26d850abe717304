package handlers

import (
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/salonkit/salon-admin/internal/httperr"
	"github.com/salonkit/salon-admin/internal/httpresp"
	"github.com/salonkit/salon-admin/internal/models"
)

type HistoryHandler struct {
	db *gorm.DB
}

func NewHistoryHandler(db *gorm.DB) *HistoryHandler {
	return &HistoryHandler{db: db}
}

func (h *HistoryHandler) List(c *gin.Context) {
	act := currentActor(c)
	page, limit, offset := pagination(c)

	// Always scoped to the caller's organization; filters are additive.
	q := h.db.
		Model(&models.History{}).
		Where("organization_id = ?", act.OrganizationID)

	if action := c.Query("action"); action != "" {
		q = q.Where("action = ?", action)
	}

	if entityType := c.Query("entity_type"); entityType != "" {
		q = q.Where("entity_type = ?", entityType)
	}

	if fromStr := c.Query("from"); fromStr != "" {
		if from, err := time.Parse("2006-01-02", fromStr); err == nil {
			q = q.Where("created_at >= ?", from)
		}
	}

	if toStr := c.Query("to"); toStr != "" {
		if to, err := time.Parse("2006-01-02", toStr); err == nil {
			q = q.Where("created_at < ?", to.Add(24*time.Hour))
		}
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		httperr.Internal(c, "history_count_failed", "Could not count history entries.")
		return
	}

	var entries []models.History
	if err := q.
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&entries).Error; err != nil {

		httperr.Internal(c, "history_list_failed", "Could not list history entries.")
		return
	}

	httpresp.Page(c, entries, total, page, limit)
}
