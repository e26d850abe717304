package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/salonkit/salon-admin/internal/audit"
	"github.com/salonkit/salon-admin/internal/httperr"
	"github.com/salonkit/salon-admin/internal/httpresp"
	"github.com/salonkit/salon-admin/internal/models"
)

// UserHandler manages users inside the caller's own organization. Cross-tenant
// management lives in SuperadminUserHandler.
type UserHandler struct {
	db    *gorm.DB
	audit *audit.Dispatcher
}

func NewUserHandler(db *gorm.DB, audit *audit.Dispatcher) *UserHandler {
	return &UserHandler{db: db, audit: audit}
}

// --------- Requests ---------

type CreateUserRequest struct {
	Username string `json:"username" binding:"required,min=3"`
	Password string `json:"password" binding:"required,min=6"`
	Name     string `json:"name"`
	Role     string `json:"role"`
}

type UpdateUserRequest struct {
	Name     *string `json:"name,omitempty"`
	Role     *string `json:"role,omitempty"`
	Password *string `json:"password,omitempty"`
}

// --------- Handlers ---------

func (h *UserHandler) List(c *gin.Context) {
	act := currentActor(c)

	var users []models.User
	if err := h.db.
		Where("organization_id = ?", act.OrganizationID).
		Order("username ASC").
		Find(&users).Error; err != nil {

		httperr.Internal(c, "user_list_failed", "Could not list users.")
		return
	}

	httpresp.List(c, users)
}

func (h *UserHandler) Create(c *gin.Context) {
	act := currentActor(c)

	var req CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error_code": "invalid_request",
			"message":    err.Error(),
		})
		return
	}

	role := req.Role
	if role == "" {
		role = models.RoleUser
	}
	// Org admins can never mint superadmins.
	if role != models.RoleUser && role != models.RoleAdmin {
		httperr.BadRequest(c, "invalid_role", "Role must be user or admin.")
		return
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

	orgID := act.OrganizationID
	user := models.User{
		OrganizationID: &orgID,
		Username:       username,
		PasswordHash:   string(hashed),
		Name:           strings.TrimSpace(req.Name),
		Role:           role,
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
		OrganizationID: act.OrganizationID,
		UserID:         &act.UserID,
		Username:       act.Username,
		Action:         "user_created",
		EntityType:     "user",
		EntityID:       &user.ID,
		Details:        map[string]any{"username": user.Username, "role": user.Role},
	})

	httpresp.Created(c, user)
}

func (h *UserHandler) Update(c *gin.Context) {
	act := currentActor(c)

	id, ok := idParam(c)
	if !ok {
		return
	}

	var user models.User
	if err := h.db.
		Where("id = ? AND organization_id = ?", id, act.OrganizationID).
		First(&user).Error; err != nil {

		if err == gorm.ErrRecordNotFound {
			httperr.NotFound(c, "user_not_found", "User not found.")
			return
		}
		httperr.Internal(c, "user_get_failed", "Could not load user.")
		return
	}

	var req UpdateUserRequest
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
	if req.Role != nil {
		if *req.Role != models.RoleUser && *req.Role != models.RoleAdmin {
			httperr.BadRequest(c, "invalid_role", "Role must be user or admin.")
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
		OrganizationID: act.OrganizationID,
		UserID:         &act.UserID,
		Username:       act.Username,
		Action:         "user_updated",
		EntityType:     "user",
		EntityID:       &user.ID,
	})

	httpresp.OK(c, user)
}

func (h *UserHandler) Delete(c *gin.Context) {
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
	if err := h.db.
		Where("id = ? AND organization_id = ?", id, act.OrganizationID).
		First(&user).Error; err != nil {

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
		OrganizationID: act.OrganizationID,
		UserID:         &act.UserID,
		Username:       act.Username,
		Action:         "user_deleted",
		EntityType:     "user",
		EntityID:       &user.ID,
		Details:        map[string]any{"username": user.Username},
	})

	httpresp.OK(c, gin.H{"ok": true})
}
