package middleware

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"github.com/salonkit/salon-admin/internal/config"
	"github.com/salonkit/salon-admin/internal/models"
)

const (
	ContextUserID         = "userID"
	ContextOrganizationID = "organizationID"
	ContextUserRole       = "userRole"
	ContextUsername       = "username"

	CookieName = "token"

	// Sliding session: every authenticated request reissues the cookie with
	// this expiry.
	TokenTTL = 72 * time.Hour
)

// UserLoader resolves a token subject to a live user. Implemented by
// repository.UserGormRepository; faked in tests.
type UserLoader interface {
	GetUserByID(ctx context.Context, id uint) (*models.User, error)
}

func IssueToken(secret string, user *models.User) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":  user.ID,
		"role": user.Role,
		"exp":  now.Add(TokenTTL).Unix(),
		"iat":  now.Unix(),
	}
	if user.OrganizationID != nil {
		claims["orgId"] = *user.OrganizationID
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

func SetAuthCookie(c *gin.Context, cfg *config.Config, token string) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(
		CookieName,
		token,
		int(TokenTTL/time.Second),
		"/",
		"",
		cfg.CookieSecure(),
		true,
	)
}

func ClearAuthCookie(c *gin.Context, cfg *config.Config) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(CookieName, "", -1, "/", "", cfg.CookieSecure(), true)
}

func AuthMiddleware(cfg *config.Config, users UserLoader) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString, err := c.Cookie(CookieName)
		if err != nil || tokenString == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error_code": "missing_token", "message": "Authentication required."})
			return
		}

		token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrTokenMalformed
			}
			return []byte(cfg.JWTSecret), nil
		})
		if err != nil || !token.Valid {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error_code": "invalid_token", "message": "Authentication required."})
			return
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error_code": "invalid_token_claims", "message": "Authentication required."})
			return
		}

		sub, ok := claims["sub"].(float64)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error_code": "invalid_token_payload", "message": "Authentication required."})
			return
		}

		// Role and tenant come from the store, not the token, so role
		// changes and deletions take effect immediately.
		user, err := users.GetUserByID(c.Request.Context(), uint(sub))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error_code": "user_not_found", "message": "Authentication required."})
			return
		}

		var orgID uint
		if user.OrganizationID != nil {
			orgID = *user.OrganizationID
		}

		c.Set(ContextUserID, user.ID)
		c.Set(ContextOrganizationID, orgID)
		c.Set(ContextUserRole, user.Role)
		c.Set(ContextUsername, user.Username)

		if refreshed, err := IssueToken(cfg.JWTSecret, user); err == nil {
			SetAuthCookie(c, cfg, refreshed)
		}

		c.Next()
	}
}
