package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/salonkit/salon-admin/internal/config"
	"github.com/salonkit/salon-admin/internal/httperr"
	"github.com/salonkit/salon-admin/internal/middleware"
	"github.com/salonkit/salon-admin/internal/models"
)

type AuthHandler struct {
	db     *gorm.DB
	config *config.Config
}

func NewAuthHandler(db *gorm.DB, cfg *config.Config) *AuthHandler {
	return &AuthHandler{db: db, config: cfg}
}

// --------- Requests ---------

type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// --------- Handlers ---------

func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error_code": "invalid_request",
			"message":    err.Error(),
		})
		return
	}

	username := strings.ToLower(strings.TrimSpace(req.Username))

	var user models.User
	if err := h.db.Preload("Organization").
		Where("username = ?", username).
		First(&user).Error; err != nil {

		if err == gorm.ErrRecordNotFound {
			httperr.Unauthorized(c, "invalid_credentials", "Invalid username or password.")
			return
		}
		httperr.Internal(c, "internal_error", "Something went wrong.")
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		httperr.Unauthorized(c, "invalid_credentials", "Invalid username or password.")
		return
	}

	if user.Organization != nil && !user.Organization.IsActive {
		httperr.Forbidden(c, "organization_inactive", "This organization is deactivated.")
		return
	}

	token, err := middleware.IssueToken(h.config.JWTSecret, &user)
	if err != nil {
		httperr.Internal(c, "token_generation_failed", "Something went wrong.")
		return
	}

	middleware.SetAuthCookie(c, h.config, token)

	c.JSON(http.StatusOK, gin.H{"user": userPayload(&user)})
}

func (h *AuthHandler) Logout(c *gin.Context) {
	middleware.ClearAuthCookie(c, h.config)
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

// Session and Me both run behind the auth middleware; the SPA uses Session
// on boot and Me for the account screen.

func (h *AuthHandler) Session(c *gin.Context) {
	h.Me(c)
}

func (h *AuthHandler) Me(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)

	var user models.User
	if err := h.db.Preload("Organization").First(&user, userID).Error; err != nil {
		httperr.Unauthorized(c, "user_not_found", "Authentication required.")
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": userPayload(&user)})
}

func userPayload(user *models.User) gin.H {
	payload := gin.H{
		"id":              user.ID,
		"username":        user.Username,
		"name":            user.Name,
		"role":            user.Role,
		"organization_id": user.OrganizationID,
	}
	if user.Organization != nil {
		payload["organization"] = gin.H{
			"id":       user.Organization.ID,
			"name":     user.Organization.Name,
			"slug":     user.Organization.Slug,
			"timezone": user.Organization.Timezone,
		}
	}
	return payload
}
