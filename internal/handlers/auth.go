// internal/handlers/auth.go
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Abhi-Verma2005/healthBackend/internal/config"
	"github.com/Abhi-Verma2005/healthBackend/internal/services"
	"github.com/Abhi-Verma2005/healthBackend/internal/utils"
)

type AuthHandler struct {
	authService *services.AuthService
	cfg         *config.Config
}

func NewAuthHandler(authService *services.AuthService, cfg *config.Config) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		cfg:         cfg,
	}
}

// setSessionCookie attaches the httpOnly auth cookie; Secure only in
// production so local development over http still works.
func (h *AuthHandler) setSessionCookie(c *gin.Context, token string, maxAge int) {
	c.SetSameSite(http.SameSiteStrictMode)
	c.SetCookie(
		utils.SessionCookieName,
		token,
		maxAge,
		"/",
		"",
		h.cfg.Environment == "production",
		true,
	)
}

// POST /signup
func (h *AuthHandler) Signup(c *gin.Context) {
	var req services.SignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid request body", err.Error())
		return
	}

	if validationErrors := utils.GetValidationErrors(utils.ValidateStruct(&req)); len(validationErrors) > 0 {
		utils.ValidationErrorResponse(c, validationErrors)
		return
	}

	authResponse, err := h.authService.Signup(&req)
	if err != nil {
		if errors.Is(err, services.ErrDuplicateIdentity) {
			utils.DuplicateIdentityResponse(c, "User with this email or username already exists")
			return
		}
		utils.InternalErrorResponse(c, "Failed to create account")
		return
	}

	utils.CreatedResponse(c, gin.H{
		"username": authResponse.User.Username,
	})
}

// POST /signin
func (h *AuthHandler) Signin(c *gin.Context) {
	var req services.SigninRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid request body", err.Error())
		return
	}

	if validationErrors := utils.GetValidationErrors(utils.ValidateStruct(&req)); len(validationErrors) > 0 {
		utils.ValidationErrorResponse(c, validationErrors)
		return
	}

	authResponse, err := h.authService.Signin(&req)
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			utils.UnauthorizedResponse(c, "Invalid email or password")
			return
		}
		utils.InternalErrorResponse(c, "Failed to sign in")
		return
	}

	h.setSessionCookie(c, authResponse.Token, authResponse.ExpiresIn)

	utils.SuccessResponse(c, gin.H{
		"token":    authResponse.Token,
		"username": authResponse.User.Username,
		"email":    authResponse.User.Email,
	})
}

// POST /logout
func (h *AuthHandler) Logout(c *gin.Context) {
	h.setSessionCookie(c, "", -1)
	utils.SuccessResponse(c, gin.H{
		"message": "Logged out successfully",
	})
}

// GET /verify-auth
func (h *AuthHandler) VerifyAuth(c *gin.Context) {
	userID, _ := utils.GetUserIDFromContext(c)
	username, _ := utils.GetUsernameFromContext(c)

	utils.SuccessResponse(c, gin.H{
		"id":       userID,
		"username": username,
	})
}
