// internal/services/blog_service.go
package services

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Abhi-Verma2005/healthBackend/internal/models"
	"github.com/Abhi-Verma2005/healthBackend/internal/utils"
)

type BlogService struct {
	db *gorm.DB
}

func NewBlogService(db *gorm.DB) *BlogService {
	return &BlogService{db: db}
}

type CreateBlogRequest struct {
	Title       string `json:"title" validate:"required,max=255"`
	Description string `json:"description" validate:"required"`
}

type UpdateBlogRequest struct {
	Title       string `json:"title" validate:"omitempty,max=255"`
	Description string `json:"description"`
}

type CreateCommentRequest struct {
	Content string `json:"content" validate:"required,max=2000"`
}

// BlogListItem is a blog row plus its aggregate counts for list views. Liked
// is set only when the request carried a verified identity.
type BlogListItem struct {
	models.Blog
	LikeCount    int64 `json:"like_count"`
	CommentCount int64 `json:"comment_count"`
	Liked        *bool `json:"liked,omitempty" gorm:"-"`
}

// Create stores a blog owned by the verified identity. The author name is
// taken from the session, never from the request body.
func (s *BlogService) Create(userID uuid.UUID, username string, req *CreateBlogRequest) (*models.Blog, error) {
	blog := &models.Blog{
		UserID:      userID,
		Username:    username,
		Title:       req.Title,
		Description: req.Description,
	}
	if err := s.db.Create(blog).Error; err != nil {
		return nil, fmt.Errorf("failed to create blog: %w", err)
	}
	return blog, nil
}

// List returns a page of blogs with like and comment counts.
func (s *BlogService) List(params utils.PaginationParams) (*utils.PaginationResult, error) {
	query := s.db.Model(&models.Blog{})
	if params.Search != "" {
		search := "%" + params.Search + "%"
		query = query.Where("title ILIKE ? OR description ILIKE ?", search, search)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, fmt.Errorf("failed to count blogs: %w", err)
	}

	var items []BlogListItem
	err := utils.ApplyPagination(utils.ApplySort(query, params, []string{"created_at", "title"}), params).
		Select("blogs.*",
			"(SELECT COUNT(*) FROM likes WHERE likes.blog_id = blogs.id AND likes.deleted_at IS NULL) AS like_count",
			"(SELECT COUNT(*) FROM comments WHERE comments.blog_id = blogs.id AND comments.deleted_at IS NULL) AS comment_count").
		Find(&items).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list blogs: %w", err)
	}

	result := utils.CreatePaginationResult(items, total, params)
	return &result, nil
}

// Get returns one blog with its comments and like count. A non-nil viewerID
// also reports whether that viewer has liked the blog; anonymous requests
// pass uuid.Nil and get no liked flag.
func (s *BlogService) Get(blogID, viewerID uuid.UUID) (*BlogListItem, error) {
	var blog models.Blog
	err := s.db.Preload("Comments", func(db *gorm.DB) *gorm.DB {
		return db.Order("created_at DESC")
	}).First(&blog, "id = ?", blogID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	item := &BlogListItem{Blog: blog, CommentCount: int64(len(blog.Comments))}
	if err := s.db.Model(&models.Like{}).Where("blog_id = ?", blogID).
		Count(&item.LikeCount).Error; err != nil {
		return nil, fmt.Errorf("failed to count likes: %w", err)
	}

	if viewerID != uuid.Nil {
		var mine int64
		if err := s.db.Model(&models.Like{}).
			Where("blog_id = ? AND user_id = ?", blogID, viewerID).
			Count(&mine).Error; err != nil {
			return nil, fmt.Errorf("failed to check viewer like: %w", err)
		}
		liked := mine > 0
		item.Liked = &liked
	}
	return item, nil
}

// Update rewrites title/description. Only the owner may update; anyone else
// gets ErrNotOwner regardless of what username they claim.
func (s *BlogService) Update(blogID, userID uuid.UUID, req *UpdateBlogRequest) (*models.Blog, error) {
	var blog models.Blog
	if err := s.db.First(&blog, "id = ?", blogID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	if blog.UserID != userID {
		return nil, ErrNotOwner
	}

	if req.Title != "" {
		blog.Title = req.Title
	}
	if req.Description != "" {
		blog.Description = req.Description
	}

	if err := s.db.Save(&blog).Error; err != nil {
		return nil, fmt.Errorf("failed to update blog: %w", err)
	}
	return &blog, nil
}

// Delete removes a blog and its likes/comments. Owner only.
func (s *BlogService) Delete(blogID, userID uuid.UUID) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		var blog models.Blog
		if err := tx.First(&blog, "id = ?", blogID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return fmt.Errorf("database error: %w", err)
		}
		if blog.UserID != userID {
			return ErrNotOwner
		}

		if err := tx.Unscoped().Where("blog_id = ?", blogID).Delete(&models.Like{}).Error; err != nil {
			return fmt.Errorf("failed to delete likes: %w", err)
		}
		if err := tx.Unscoped().Where("blog_id = ?", blogID).Delete(&models.Comment{}).Error; err != nil {
			return fmt.Errorf("failed to delete comments: %w", err)
		}
		if err := tx.Unscoped().Delete(&blog).Error; err != nil {
			return fmt.Errorf("failed to delete blog: %w", err)
		}
		return nil
	})
}

// ToggleLike likes the blog if the user hasn't, or removes their like if they
// have. Returns the new liked state and the resulting count. The unique
// (blog_id, user_id) index backstops concurrent double-likes.
func (s *BlogService) ToggleLike(blogID, userID uuid.UUID) (liked bool, count int64, err error) {
	err = s.db.Transaction(func(tx *gorm.DB) error {
		var blog models.Blog
		if err := tx.Select("id").First(&blog, "id = ?", blogID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return fmt.Errorf("database error: %w", err)
		}

		var existing models.Like
		findErr := tx.Where("blog_id = ? AND user_id = ?", blogID, userID).First(&existing).Error
		switch {
		case findErr == nil:
			if err := tx.Unscoped().Delete(&existing).Error; err != nil {
				return fmt.Errorf("failed to remove like: %w", err)
			}
			liked = false
		case errors.Is(findErr, gorm.ErrRecordNotFound):
			like := models.Like{BlogID: blogID, UserID: userID}
			if err := tx.Create(&like).Error; err != nil {
				if isUniqueViolation(err) {
					// Concurrent like won; treat as already liked.
					liked = true
					return nil
				}
				return fmt.Errorf("failed to create like: %w", err)
			}
			liked = true
		default:
			return fmt.Errorf("database error: %w", findErr)
		}
		return nil
	})
	if err != nil {
		return false, 0, err
	}

	if err := s.db.Model(&models.Like{}).Where("blog_id = ?", blogID).Count(&count).Error; err != nil {
		return liked, 0, fmt.Errorf("failed to count likes: %w", err)
	}
	return liked, count, nil
}

// AddComment attaches a comment to a blog; author identity comes from the
// session.
func (s *BlogService) AddComment(blogID, userID uuid.UUID, username string, req *CreateCommentRequest) (*models.Comment, error) {
	var blog models.Blog
	if err := s.db.Select("id").First(&blog, "id = ?", blogID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	comment := &models.Comment{
		BlogID:   blogID,
		UserID:   userID,
		Username: username,
		Content:  req.Content,
	}
	if err := s.db.Create(comment).Error; err != nil {
		return nil, fmt.Errorf("failed to create comment: %w", err)
	}
	return comment, nil
}

// ListComments returns a blog's comments, newest first.
func (s *BlogService) ListComments(blogID uuid.UUID) ([]models.Comment, error) {
	var blog models.Blog
	if err := s.db.Select("id").First(&blog, "id = ?", blogID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	var comments []models.Comment
	if err := s.db.Where("blog_id = ?", blogID).
		Order("created_at DESC").
		Find(&comments).Error; err != nil {
		return nil, fmt.Errorf("failed to list comments: %w", err)
	}
	return comments, nil
}

// DeleteComment removes a comment; only its author may do so.
func (s *BlogService) DeleteComment(commentID, userID uuid.UUID) error {
	var comment models.Comment
	if err := s.db.First(&comment, "id = ?", commentID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("database error: %w", err)
	}
	if comment.UserID != userID {
		return ErrNotOwner
	}
	if err := s.db.Unscoped().Delete(&comment).Error; err != nil {
		return fmt.Errorf("failed to delete comment: %w", err)
	}
	return nil
}
