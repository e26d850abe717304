package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/salonkit/salon-admin/internal/audit"
	"github.com/salonkit/salon-admin/internal/httperr"
	"github.com/salonkit/salon-admin/internal/httpresp"
	"github.com/salonkit/salon-admin/internal/models"
)

// SuperadminUserHandler manages users across all tenants.
type SuperadminUserHandler struct {
	db    *gorm.DB
	audit *audit.Dispatcher
}

func NewSuperadminUserHandler(db *gorm.DB, audit *audit.Dispatcher) *SuperadminUserHandler {
	return &SuperadminUserHandler{db: db, audit: audit}
}

// --------- Requests ---------

type SuperadminCreateUserRequest struct {
	Username       string `json:"username" binding:"required,min=3"`
	Password       string `json:"password" binding:"required,min=6"`
	Name           string `json:"name"`
	Role           string `json:"role" binding:"required"`
	OrganizationID *uint  `json:"organization_id"`
}

type SuperadminUpdateUserRequest struct {
	Name           *string `json:"name,omitempty"`
	Role           *string `json:"role,omitempty"`
	Password       *string `json:"password,omitempty"`
	OrganizationID *uint   `json:"organization_id,omitempty"`
}

// --------- Handlers ---------

func (h *SuperadminUserHandler) List(c *gin.Context) {
	q := h.db.Preload("Organization").Order("username ASC")

	if raw := c.Query("organization_id"); raw != "" {
		orgID, err := strconv.ParseUint(raw, 10, 32)
		if err != nil {
			httperr.BadRequest(c, "invalid_organization_id", "Invalid organization_id parameter.")
			return
		}
		q = q.Where("organization_id = ?", uint(orgID))
	}

	var users []models.User
	if err := q.Find(&users).Error; err != nil {
		httperr.Internal(c, "user_list_failed", "Could not list users.")
		return
	}

	httpresp.List(c, users)
}

func (h *SuperadminUserHandler) Create(c *gin.Context) {
	act := currentActor(c)

	var req SuperadminCreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error_code": "invalid_request",
			"message":    err.Error(),
		})
		return
	}

	if err := validateRoleOrg(req.Role, req.OrganizationID); err != "" {
		httperr.BadRequest(c, err, "Role and organization do not match.")
		return
	}

	if req.OrganizationID != nil {
		var count int64
		h.db.Model(&models.Organization{}).Where("id = ?", *req.OrganizationID).Count(&count)
		if count == 0 {
			httperr.BadRequest(c, "organization_not_found", "Organization does not exist.")
			return
		}
	}

	username := strings.ToLower(strings.TrimSpace(req.Username))

	var count int64
	h.db.Model(&models.User{}).Where("username = ?", username).Count(&count)
	if count > 0 {
		httperr.BadRequest(c, "username_taken", "This username is already in use.")
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		httperr.Internal(c, "password_hash_failed", "Something went wrong.")
		return
	}

	user := models.User{
		OrganizationID: req.OrganizationID,
		Username:       username,
		PasswordHash:   string(hashed),
		Name:           strings.TrimSpace(req.Name),
		Role:           req.Role,
	}

	if err := h.db.Create(&user).Error; err != nil {
		if isUniqueViolation(err) {
			httperr.BadRequest(c, "username_taken", "This username is already in use.")
			return
		}
		httperr.Internal(c, "user_create_failed", "Could not create user.")
		return
	}

	h.audit.Dispatch(audit.Event{
		OrganizationID: orgOrZero(user.OrganizationID),
		UserID:         &act.UserID,
		Username:       act.Username,
		Action:         "user_created",
		EntityType:     "user",
		EntityID:       &user.ID,
		Details:        map[string]any{"username": user.Username, "role": user.Role},
	})

	httpresp.Created(c, user)
}

func (h *SuperadminUserHandler) Update(c *gin.Context) {
	act := currentActor(c)

	id, ok := idParam(c)
	if !ok {
		return
	}

	var user models.User
	if err := h.db.First(&user, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			httperr.NotFound(c, "user_not_found", "User not found.")
			return
		}
		httperr.Internal(c, "user_get_failed", "Could not load user.")
		return
	}

	var req SuperadminUpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error_code": "invalid_request",
			"message":    err.Error(),
		})
		return
	}

	if req.Name != nil {
		user.Name = strings.TrimSpace(*req.Name)
	}
	if req.OrganizationID != nil {
		var count int64
		h.db.Model(&models.Organization{}).Where("id = ?", *req.OrganizationID).Count(&count)
		if count == 0 {
			httperr.BadRequest(c, "organization_not_found", "Organization does not exist.")
			return
		}
		user.OrganizationID = req.OrganizationID
	}
	if req.Role != nil {
		if err := validateRoleOrg(*req.Role, user.OrganizationID); err != "" {
			httperr.BadRequest(c, err, "Role and organization do not match.")
			return
		}
		user.Role = *req.Role
	}
	if req.Password != nil {
		if len(*req.Password) < 6 {
			httperr.BadRequest(c, "password_too_short", "Password must be at least 6 characters.")
			return
		}
		hashed, err := bcrypt.GenerateFromPassword([]byte(*req.Password), bcrypt.DefaultCost)
		if err != nil {
			httperr.Internal(c, "password_hash_failed", "Something went wrong.")
			return
		}
		user.PasswordHash = string(hashed)
	}

	if err := h.db.Save(&user).Error; err != nil {
		httperr.Internal(c, "user_update_failed", "Could not update user.")
		return
	}

	h.audit.Dispatch(audit.Event{
		OrganizationID: orgOrZero(user.OrganizationID),
		UserID:         &act.UserID,
		Username:       act.Username,
		Action:         "user_updated",
		EntityType:     "user",
		EntityID:       &user.ID,
	})

	httpresp.OK(c, user)
}

func (h *SuperadminUserHandler) Delete(c *gin.Context) {
	act := currentActor(c)

	id, ok := idParam(c)
	if !ok {
		return
	}

	if id == act.UserID {
		httperr.BadRequest(c, "cannot_delete_self", "You cannot delete your own account.")
		return
	}

	var user models.User
	if err := h.db.First(&user, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			httperr.NotFound(c, "user_not_found", "User not found.")
			return
		}
		httperr.Internal(c, "user_get_failed", "Could not load user.")
		return
	}

	if err := h.db.Delete(&user).Error; err != nil {
		httperr.Internal(c, "user_delete_failed", "Could not delete user.")
		return
	}

	h.audit.Dispatch(audit.Event{
		OrganizationID: orgOrZero(user.OrganizationID),
		UserID:         &act.UserID,
		Username:       act.Username,
		Action:         "user_deleted",
		EntityType:     "user",
		EntityID:       &user.ID,
		Details:        map[string]any{"username": user.Username},
	})

	httpresp.OK(c, gin.H{"ok": true})
}

// Superadmins float above tenants; everyone else must belong to one.
func validateRoleOrg(role string, orgID *uint) string {
	switch role {
	case models.RoleSuperadmin:
		if orgID != nil {
			return "superadmin_has_organization"
		}
	case models.RoleUser, models.RoleAdmin:
		if orgID == nil {
			return "organization_required"
		}
	default:
		return "invalid_role"
	}
	return ""
}

func orgOrZero(orgID *uint) uint {
	if orgID == nil {
		return 0
	}
	return *orgID
}
