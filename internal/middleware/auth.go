// internal/middleware/auth.go
package middleware

import (
	"errors"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Abhi-Verma2005/healthBackend/internal/models"
	"github.com/Abhi-Verma2005/healthBackend/internal/utils"
)

// extractToken pulls the session token from the Authorization header,
// falling back to the session cookie (the deployed web client uses the
// cookie; API clients send the bearer header).
func extractToken(c *gin.Context) string {
	authHeader := c.GetHeader("Authorization")
	if authHeader != "" {
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) == 2 && parts[0] == "Bearer" {
			return parts[1]
		}
		return ""
	}

	cookie, err := c.Cookie(utils.SessionCookieName)
	if err != nil {
		return ""
	}
	return cookie
}

// AuthRequired verifies the session token, resolves it to an existing user,
// and attaches {id, username} to the request context. The user lookup keeps
// tokens for deleted accounts from passing.
func AuthRequired(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := extractToken(c)
		if token == "" {
			utils.UnauthorizedResponse(c, "No token provided")
			c.Abort()
			return
		}

		claims, err := utils.ValidateJWT(token)
		if err != nil {
			utils.UnauthorizedResponse(c, "Invalid or expired token")
			c.Abort()
			return
		}

		userID, err := uuid.Parse(claims.UserID)
		if err != nil {
			utils.UnauthorizedResponse(c, "Invalid or expired token")
			c.Abort()
			return
		}

		var user models.User
		if err := db.Select("id", "username").First(&user, "id = ?", userID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				utils.UnauthorizedResponse(c, "Invalid token")
			} else {
				utils.InternalErrorResponse(c, "")
			}
			c.Abort()
			return
		}

		c.Set("user_id", user.ID.String())
		c.Set("username", user.Username)
		c.Next()
	}
}

// OptionalAuth attaches identity when a valid token is present and continues
// anonymously otherwise.
func OptionalAuth(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := extractToken(c)
		if token == "" {
			c.Next()
			return
		}

		claims, err := utils.ValidateJWT(token)
		if err != nil {
			c.Next()
			return
		}

		userID, err := uuid.Parse(claims.UserID)
		if err != nil {
			c.Next()
			return
		}

		var user models.User
		if err := db.Select("id", "username").First(&user, "id = ?", userID).Error; err != nil {
			c.Next()
			return
		}

		c.Set("user_id", user.ID.String())
		c.Set("username", user.Username)
		c.Next()
	}
}
