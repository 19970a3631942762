// internal/handlers/user.go
package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/Abhi-Verma2005/healthBackend/internal/models"
	"github.com/Abhi-Verma2005/healthBackend/internal/services"
	"github.com/Abhi-Verma2005/healthBackend/internal/utils"
)

type UserHandler struct {
	userService    *services.UserService
	storageService *services.StorageService
	authHandler    *AuthHandler
}

func NewUserHandler(userService *services.UserService, storageService *services.StorageService, authHandler *AuthHandler) *UserHandler {
	return &UserHandler{
		userService:    userService,
		storageService: storageService,
		authHandler:    authHandler,
	}
}

// GET /profile
func (h *UserHandler) GetProfile(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		utils.UnauthorizedResponse(c, "")
		return
	}

	profile, err := h.userService.GetProfile(userID)
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			utils.NotFoundResponse(c, "User not found")
			return
		}
		utils.InternalErrorResponse(c, "Failed to fetch profile")
		return
	}
	utils.SuccessResponse(c, profile)
}

// PUT /profile
func (h *UserHandler) UpdateProfile(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		utils.UnauthorizedResponse(c, "")
		return
	}

	var req services.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid request body", err.Error())
		return
	}

	if validationErrors := utils.GetValidationErrors(utils.ValidateStruct(&req)); len(validationErrors) > 0 {
		utils.ValidationErrorResponse(c, validationErrors)
		return
	}

	user, err := h.userService.UpdateProfile(userID, &req)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrUsernameTaken):
			utils.BadRequestResponse(c, "Username already taken", nil)
		case errors.Is(err, services.ErrNotFound):
			utils.NotFoundResponse(c, "User not found")
		default:
			utils.InternalErrorResponse(c, "Failed to update profile")
		}
		return
	}
	utils.SuccessResponse(c, user)
}

// DELETE /profile
func (h *UserHandler) DeleteAccount(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		utils.UnauthorizedResponse(c, "")
		return
	}

	if err := h.userService.DeleteAccount(userID); err != nil {
		if errors.Is(err, services.ErrNotFound) {
			utils.NotFoundResponse(c, "User not found")
			return
		}
		utils.InternalErrorResponse(c, "Failed to delete account")
		return
	}

	h.authHandler.setSessionCookie(c, "", -1)
	utils.SuccessResponse(c, gin.H{
		"message": "Account deleted",
	})
}

// POST /profile/avatar
func (h *UserHandler) UploadAvatar(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		utils.UnauthorizedResponse(c, "")
		return
	}

	file, header, err := c.Request.FormFile("avatar")
	if err != nil {
		utils.BadRequestResponse(c, "Avatar file is required", nil)
		return
	}
	defer file.Close()

	if err := h.storageService.ValidateImage(file); err != nil {
		utils.BadRequestResponse(c, "File is not a valid image", nil)
		return
	}

	result, err := h.storageService.UploadFile(file, header, services.AvatarUploadOptions())
	if err != nil {
		utils.BadRequestResponse(c, err.Error(), nil)
		return
	}

	if err := h.userService.SetAvatar(userID, result.URL); err != nil {
		utils.InternalErrorResponse(c, "Failed to store avatar")
		return
	}

	utils.SuccessResponse(c, gin.H{
		"url": result.URL,
	})
}

type healthGoalRequest struct {
	Goal          models.Goal `json:"goal" validate:"required,oneof='Lose weight' 'Improve sleep' 'Gain muscle' 'Manage stress'"`
	Age           int         `json:"age" validate:"required,min=1,max=120"`
	Weight        float64     `json:"weight" validate:"required,gt=0"`
	Gender        string      `json:"gender" validate:"required,oneof=male female other"`
	ActivityLevel string      `json:"activityLevel" validate:"required,oneof=sedentary light moderate active 'very active'"`
	Symptoms      string      `json:"symptoms"`
}

// POST /health-goal
func (h *UserHandler) SetHealthGoal(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		utils.UnauthorizedResponse(c, "")
		return
	}

	var req healthGoalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid request body", err.Error())
		return
	}

	if validationErrors := utils.GetValidationErrors(utils.ValidateStruct(&req)); len(validationErrors) > 0 {
		utils.ValidationErrorResponse(c, validationErrors)
		return
	}

	user, plan, err := h.userService.SetHealthGoal(userID, services.PlanInput{
		Goal:          req.Goal,
		Age:           req.Age,
		Weight:        req.Weight,
		Gender:        req.Gender,
		ActivityLevel: req.ActivityLevel,
		Symptoms:      req.Symptoms,
	})
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			utils.NotFoundResponse(c, "User not found")
			return
		}
		utils.InternalErrorResponse(c, "Failed to update health goal")
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message": "Health goal updated successfully",
		"user": gin.H{
			"id":       user.ID,
			"username": user.Username,
			"goal":     user.Goal,
		},
		"healthPlan": plan,
	})
}

// GET /health-goal
func (h *UserHandler) GetHealthGoal(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		utils.UnauthorizedResponse(c, "")
		return
	}

	goal, plan, err := h.userService.GetHealthGoal(userID)
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			utils.NotFoundResponse(c, "No health goal set")
			return
		}
		utils.InternalErrorResponse(c, "Failed to fetch health goal")
		return
	}

	utils.SuccessResponse(c, gin.H{
		"goal":       goal,
		"healthPlan": plan,
	})
}
