package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/salonkit/salon-admin/internal/audit"
	"github.com/salonkit/salon-admin/internal/cache"
	"github.com/salonkit/salon-admin/internal/httperr"
	"github.com/salonkit/salon-admin/internal/httpresp"
	"github.com/salonkit/salon-admin/internal/models"
	"github.com/salonkit/salon-admin/internal/timezone"
	"github.com/salonkit/salon-admin/internal/validators"
)

// OrganizationHandler is superadmin-only.
type OrganizationHandler struct {
	db    *gorm.DB
	cache *cache.Cache
	audit *audit.Dispatcher
}

func NewOrganizationHandler(db *gorm.DB, c *cache.Cache, audit *audit.Dispatcher) *OrganizationHandler {
	return &OrganizationHandler{db: db, cache: c, audit: audit}
}

// --------- Requests ---------

type CreateOrganizationRequest struct {
	Name     string `json:"name" binding:"required"`
	Slug     string `json:"slug" binding:"required"`
	Timezone string `json:"timezone"`
}

type UpdateOrganizationRequest struct {
	Name            *string `json:"name,omitempty"`
	Timezone        *string `json:"timezone,omitempty"`
	SlotIntervalMin *int    `json:"slot_interval_min,omitempty"`
	DayStart        *string `json:"day_start,omitempty"`
	DayEnd          *string `json:"day_end,omitempty"`
	IsActive        *bool   `json:"is_active,omitempty"`
}

// --------- Handlers ---------

func (h *OrganizationHandler) List(c *gin.Context) {
	var orgs []models.Organization
	if err := h.db.Order("name ASC").Find(&orgs).Error; err != nil {
		httperr.Internal(c, "organization_list_failed", "Could not list organizations.")
		return
	}

	httpresp.List(c, orgs)
}

func (h *OrganizationHandler) Get(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	var org models.Organization
	if err := h.db.First(&org, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			httperr.NotFound(c, "organization_not_found", "Organization not found.")
			return
		}
		httperr.Internal(c, "organization_get_failed", "Could not load organization.")
		return
	}

	httpresp.OK(c, org)
}

func (h *OrganizationHandler) Create(c *gin.Context) {
	act := currentActor(c)

	var req CreateOrganizationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error_code": "invalid_request",
			"message":    err.Error(),
		})
		return
	}

	slug := validators.Slugify(req.Slug)
	if !validators.IsValidSlug(slug) {
		httperr.BadRequest(c, "invalid_slug", "Slug may only contain lowercase letters, digits and dashes.")
		return
	}

	tz := req.Timezone
	if tz == "" {
		tz = timezone.DefaultTimezone
	}
	if !timezone.IsValid(tz) {
		httperr.BadRequest(c, "invalid_timezone", "Unknown timezone.")
		return
	}

	var count int64
	h.db.Model(&models.Organization{}).Where("slug = ?", slug).Count(&count)
	if count > 0 {
		httperr.BadRequest(c, "slug_taken", "This slug is already in use.")
		return
	}

	org := models.Organization{
		Name:            strings.TrimSpace(req.Name),
		Slug:            slug,
		Timezone:        tz,
		SlotIntervalMin: 30,
		DayStart:        "09:00",
		DayEnd:          "20:00",
		IsActive:        true,
	}

	if err := h.db.Create(&org).Error; err != nil {
		if isUniqueViolation(err) {
			httperr.BadRequest(c, "slug_taken", "This slug is already in use.")
			return
		}
		httperr.Internal(c, "organization_create_failed", "Could not create organization.")
		return
	}

	h.audit.Dispatch(audit.Event{
		OrganizationID: org.ID,
		UserID:         &act.UserID,
		Username:       act.Username,
		Action:         "organization_created",
		EntityType:     "organization",
		EntityID:       &org.ID,
		Details:        map[string]any{"name": org.Name, "slug": org.Slug},
	})

	httpresp.Created(c, org)
}

func (h *OrganizationHandler) Update(c *gin.Context) {
	act := currentActor(c)

	id, ok := idParam(c)
	if !ok {
		return
	}

	var org models.Organization
	if err := h.db.First(&org, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			httperr.NotFound(c, "organization_not_found", "Organization not found.")
			return
		}
		httperr.Internal(c, "organization_get_failed", "Could not load organization.")
		return
	}

	var req UpdateOrganizationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error_code": "invalid_request",
			"message":    err.Error(),
		})
		return
	}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			httperr.BadRequest(c, "name_required", "Organization name is required.")
			return
		}
		org.Name = name
	}
	if req.Timezone != nil {
		if !timezone.IsValid(*req.Timezone) {
			httperr.BadRequest(c, "invalid_timezone", "Unknown timezone.")
			return
		}
		org.Timezone = *req.Timezone
	}
	if req.SlotIntervalMin != nil {
		if *req.SlotIntervalMin < 5 || *req.SlotIntervalMin > 240 {
			httperr.BadRequest(c, "invalid_slot_interval", "Slot interval must be between 5 and 240 minutes.")
			return
		}
		org.SlotIntervalMin = *req.SlotIntervalMin
	}
	if req.DayStart != nil {
		if !isValidClock(*req.DayStart) {
			httperr.BadRequest(c, "invalid_day_start", "day_start must be HH:MM.")
			return
		}
		org.DayStart = *req.DayStart
	}
	if req.DayEnd != nil {
		if !isValidClock(*req.DayEnd) {
			httperr.BadRequest(c, "invalid_day_end", "day_end must be HH:MM.")
			return
		}
		org.DayEnd = *req.DayEnd
	}
	if req.IsActive != nil {
		org.IsActive = *req.IsActive
	}

	if err := h.db.Save(&org).Error; err != nil {
		httperr.Internal(c, "organization_update_failed", "Could not update organization.")
		return
	}

	// Booking validation reads org settings through the cache.
	h.cache.Del(c.Request.Context(), cache.OrgKey(org.ID))

	h.audit.Dispatch(audit.Event{
		OrganizationID: org.ID,
		UserID:         &act.UserID,
		Username:       act.Username,
		Action:         "organization_updated",
		EntityType:     "organization",
		EntityID:       &org.ID,
	})

	httpresp.OK(c, org)
}
