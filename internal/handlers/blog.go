// internal/handlers/blog.go
package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/Abhi-Verma2005/healthBackend/internal/services"
	"github.com/Abhi-Verma2005/healthBackend/internal/utils"
)

type BlogHandler struct {
	blogService *services.BlogService
}

func NewBlogHandler(blogService *services.BlogService) *BlogHandler {
	return &BlogHandler{
		blogService: blogService,
	}
}

func parseIDParam(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid "+name, nil)
		return uuid.Nil, false
	}
	return id, true
}

// POST /blogs
func (h *BlogHandler) Create(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		utils.UnauthorizedResponse(c, "")
		return
	}
	username, _ := utils.GetUsernameFromContext(c)

	var req services.CreateBlogRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid request body", err.Error())
		return
	}

	if validationErrors := utils.GetValidationErrors(utils.ValidateStruct(&req)); len(validationErrors) > 0 {
		utils.ValidationErrorResponse(c, validationErrors)
		return
	}

	blog, err := h.blogService.Create(userID, username, &req)
	if err != nil {
		utils.InternalErrorResponse(c, "Failed to create blog")
		return
	}
	utils.CreatedResponse(c, blog)
}

// GET /blogs
func (h *BlogHandler) List(c *gin.Context) {
	params := utils.GetPaginationParams(c)

	result, err := h.blogService.List(params)
	if err != nil {
		utils.InternalErrorResponse(c, "Failed to list blogs")
		return
	}
	utils.PaginatedResponse(c, *result)
}

// GET /blogs/:id
func (h *BlogHandler) Get(c *gin.Context) {
	blogID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	// Optional identity: signed-in viewers additionally get their own
	// liked state; anonymous viewers resolve to uuid.Nil.
	viewerID, _ := currentUserID(c)

	blog, err := h.blogService.Get(blogID, viewerID)
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			utils.NotFoundResponse(c, "Blog not found")
			return
		}
		utils.InternalErrorResponse(c, "Failed to fetch blog")
		return
	}
	utils.SuccessResponse(c, blog)
}

// PUT /blogs/:id
func (h *BlogHandler) Update(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		utils.UnauthorizedResponse(c, "")
		return
	}

	blogID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req services.UpdateBlogRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid request body", err.Error())
		return
	}

	if validationErrors := utils.GetValidationErrors(utils.ValidateStruct(&req)); len(validationErrors) > 0 {
		utils.ValidationErrorResponse(c, validationErrors)
		return
	}

	blog, err := h.blogService.Update(blogID, userID, &req)
	if err != nil {
		switch {
		// Ownership failures read as not-found so the endpoint doesn't
		// confirm which blog ids exist.
		case errors.Is(err, services.ErrNotFound), errors.Is(err, services.ErrNotOwner):
			utils.NotFoundResponse(c, "Blog not found")
		default:
			utils.InternalErrorResponse(c, "Failed to update blog")
		}
		return
	}
	utils.SuccessResponse(c, blog)
}

// DELETE /blogs/:id
func (h *BlogHandler) Delete(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		utils.UnauthorizedResponse(c, "")
		return
	}

	blogID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.blogService.Delete(blogID, userID); err != nil {
		switch {
		case errors.Is(err, services.ErrNotFound), errors.Is(err, services.ErrNotOwner):
			utils.NotFoundResponse(c, "Blog not found")
		default:
			utils.InternalErrorResponse(c, "Failed to delete blog")
		}
		return
	}
	utils.SuccessResponse(c, gin.H{
		"message": "Blog deleted",
	})
}

// POST /blogs/:id/like
func (h *BlogHandler) ToggleLike(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		utils.UnauthorizedResponse(c, "")
		return
	}

	blogID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	liked, count, err := h.blogService.ToggleLike(blogID, userID)
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			utils.NotFoundResponse(c, "Blog not found")
			return
		}
		utils.InternalErrorResponse(c, "Failed to toggle like")
		return
	}
	utils.SuccessResponse(c, gin.H{
		"liked":      liked,
		"like_count": count,
	})
}

// POST /blogs/:id/comments
func (h *BlogHandler) AddComment(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		utils.UnauthorizedResponse(c, "")
		return
	}
	username, _ := utils.GetUsernameFromContext(c)

	blogID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req services.CreateCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid request body", err.Error())
		return
	}

	if validationErrors := utils.GetValidationErrors(utils.ValidateStruct(&req)); len(validationErrors) > 0 {
		utils.ValidationErrorResponse(c, validationErrors)
		return
	}

	comment, err := h.blogService.AddComment(blogID, userID, username, &req)
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			utils.NotFoundResponse(c, "Blog not found")
			return
		}
		utils.InternalErrorResponse(c, "Failed to create comment")
		return
	}
	utils.CreatedResponse(c, comment)
}

// GET /blogs/:id/comments
func (h *BlogHandler) ListComments(c *gin.Context) {
	blogID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	comments, err := h.blogService.ListComments(blogID)
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			utils.NotFoundResponse(c, "Blog not found")
			return
		}
		utils.InternalErrorResponse(c, "Failed to list comments")
		return
	}
	utils.SuccessResponse(c, comments)
}

// DELETE /comments/:id
func (h *BlogHandler) DeleteComment(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		utils.UnauthorizedResponse(c, "")
		return
	}

	commentID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.blogService.DeleteComment(commentID, userID); err != nil {
		switch {
		case errors.Is(err, services.ErrNotFound), errors.Is(err, services.ErrNotOwner):
			utils.NotFoundResponse(c, "Comment not found")
		default:
			utils.InternalErrorResponse(c, "Failed to delete comment")
		}
		return
	}
	utils.SuccessResponse(c, gin.H{
		"message": "Comment deleted",
	})
}
