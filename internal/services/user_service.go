// internal/services/user_service.go
package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Abhi-Verma2005/healthBackend/internal/models"
)

type UserService struct {
	db *gorm.DB
}

func NewUserService(db *gorm.DB) *UserService {
	return &UserService{db: db}
}

// ProfileStats are lifetime aggregates over the user's daily logs.
type ProfileStats struct {
	LogCount         int64   `json:"logCount"`
	AvgSleepDuration float64 `json:"avgSleepDuration"`
	AvgWaterScore    float64 `json:"avgWaterScore"`
	AvgMoodScore     float64 `json:"avgMoodScore"`
}

type Profile struct {
	User     *models.User     `json:"user"`
	TodayLog *models.DailyLog `json:"todayLog,omitempty"`
	Stats    ProfileStats     `json:"stats"`
}

type UpdateProfileRequest struct {
	Username string      `json:"username" validate:"omitempty,username"`
	Goal     models.Goal `json:"goal" validate:"omitempty,oneof='Lose weight' 'Improve sleep' 'Gain muscle' 'Manage stress'"`
}

// GetProfile returns the user, today's log when one exists, and lifetime
// aggregates computed in the database.
func (s *UserService) GetProfile(userID uuid.UUID) (*Profile, error) {
	var user models.User
	if err := s.db.First(&user, "id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	profile := &Profile{User: &user}

	today := models.NormalizeDate(time.Now())
	var todayLog models.DailyLog
	err := withChildren(s.db).Where("user_id = ? AND date = ?", userID, today).First(&todayLog).Error
	if err == nil {
		profile.TodayLog = &todayLog
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to load today's log: %w", err)
	}

	stats, err := s.computeStats(userID)
	if err != nil {
		return nil, err
	}
	profile.Stats = *stats

	return profile, nil
}

func (s *UserService) computeStats(userID uuid.UUID) (*ProfileStats, error) {
	var stats ProfileStats

	if err := s.db.Model(&models.DailyLog{}).
		Where("user_id = ?", userID).
		Count(&stats.LogCount).Error; err != nil {
		return nil, fmt.Errorf("failed to count logs: %w", err)
	}

	row := s.db.Model(&models.Sleep{}).
		Joins("JOIN daily_logs ON daily_logs.id = sleeps.daily_log_id").
		Where("daily_logs.user_id = ?", userID).
		Select("COALESCE(AVG(sleeps.duration), 0)").
		Row()
	if err := row.Scan(&stats.AvgSleepDuration); err != nil {
		return nil, fmt.Errorf("failed to average sleep duration: %w", err)
	}

	row = s.db.Model(&models.Water{}).
		Joins("JOIN daily_logs ON daily_logs.id = waters.daily_log_id").
		Where("daily_logs.user_id = ?", userID).
		Select("COALESCE(AVG(waters.final_score), 0)").
		Row()
	if err := row.Scan(&stats.AvgWaterScore); err != nil {
		return nil, fmt.Errorf("failed to average water score: %w", err)
	}

	row = s.db.Model(&models.Mood{}).
		Joins("JOIN daily_logs ON daily_logs.id = moods.daily_log_id").
		Where("daily_logs.user_id = ?", userID).
		Select("COALESCE(AVG(moods.final_score), 0)").
		Row()
	if err := row.Scan(&stats.AvgMoodScore); err != nil {
		return nil, fmt.Errorf("failed to average mood score: %w", err)
	}

	return &stats, nil
}

// UpdateProfile changes the username and/or goal. A username already held by
// another user returns ErrUsernameTaken.
func (s *UserService) UpdateProfile(userID uuid.UUID, req *UpdateProfileRequest) (*models.User, error) {
	var user models.User
	if err := s.db.First(&user, "id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	if req.Username != "" && req.Username != user.Username {
		var count int64
		if err := s.db.Model(&models.User{}).
			Where("username = ? AND id <> ?", req.Username, userID).
			Count(&count).Error; err != nil {
			return nil, fmt.Errorf("failed to check username: %w", err)
		}
		if count > 0 {
			return nil, ErrUsernameTaken
		}
		user.Username = req.Username
	}

	if req.Goal != "" {
		user.Goal = req.Goal
	}

	if err := s.db.Save(&user).Error; err != nil {
		if isUniqueViolation(err) {
			return nil, ErrUsernameTaken
		}
		return nil, fmt.Errorf("failed to update profile: %w", err)
	}

	// Denormalized author name on blogs and comments follows the rename.
	if req.Username != "" {
		if err := s.db.Model(&models.Blog{}).Where("user_id = ?", userID).
			Update("username", user.Username).Error; err != nil {
			return nil, fmt.Errorf("failed to propagate username: %w", err)
		}
		if err := s.db.Model(&models.Comment{}).Where("user_id = ?", userID).
			Update("username", user.Username).Error; err != nil {
			return nil, fmt.Errorf("failed to propagate username: %w", err)
		}
	}

	return &user, nil
}

// SetHealthGoal stores the goal and returns the generated plan for the
// submitted profile numbers.
func (s *UserService) SetHealthGoal(userID uuid.UUID, in PlanInput) (*models.User, *HealthPlan, error) {
	var user models.User
	if err := s.db.First(&user, "id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, ErrNotFound
		}
		return nil, nil, fmt.Errorf("database error: %w", err)
	}

	user.Goal = in.Goal
	if err := s.db.Save(&user).Error; err != nil {
		return nil, nil, fmt.Errorf("failed to update goal: %w", err)
	}

	plan := GenerateHealthPlan(in)
	return &user, &plan, nil
}

// GetHealthGoal returns the stored goal with a regenerated baseline plan, or
// ErrNotFound when the user never set one.
func (s *UserService) GetHealthGoal(userID uuid.UUID) (models.Goal, *HealthPlan, error) {
	var user models.User
	if err := s.db.First(&user, "id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.GoalNone, nil, ErrNotFound
		}
		return models.GoalNone, nil, fmt.Errorf("database error: %w", err)
	}

	if user.Goal == models.GoalNone {
		return models.GoalNone, nil, ErrNotFound
	}

	plan := GenerateHealthPlan(PlanInput{Goal: user.Goal})
	return user.Goal, &plan, nil
}

// SetAvatar stores the uploaded avatar URL on the user.
func (s *UserService) SetAvatar(userID uuid.UUID, url string) error {
	res := s.db.Model(&models.User{}).Where("id = ?", userID).Update("avatar_url", url)
	if res.Error != nil {
		return fmt.Errorf("failed to update avatar: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteAccount removes the user and everything they own in one transaction.
// Sub-records and likes/comments go first so foreign keys never dangle even
// without database-level cascade.
func (s *UserService) DeleteAccount(userID uuid.UUID) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		var logIDs []uuid.UUID
		if err := tx.Model(&models.DailyLog{}).Where("user_id = ?", userID).
			Pluck("id", &logIDs).Error; err != nil {
			return fmt.Errorf("failed to collect daily logs: %w", err)
		}

		if len(logIDs) > 0 {
			for _, m := range []interface{}{&models.Nutrition{}, &models.Sleep{}, &models.Mood{}, &models.Water{}} {
				if err := tx.Unscoped().Where("daily_log_id IN ?", logIDs).Delete(m).Error; err != nil {
					return fmt.Errorf("failed to delete sub-records: %w", err)
				}
			}
		}
		if err := tx.Unscoped().Where("user_id = ?", userID).Delete(&models.DailyLog{}).Error; err != nil {
			return fmt.Errorf("failed to delete daily logs: %w", err)
		}

		var blogIDs []uuid.UUID
		if err := tx.Model(&models.Blog{}).Where("user_id = ?", userID).
			Pluck("id", &blogIDs).Error; err != nil {
			return fmt.Errorf("failed to collect blogs: %w", err)
		}
		if len(blogIDs) > 0 {
			if err := tx.Unscoped().Where("blog_id IN ?", blogIDs).Delete(&models.Like{}).Error; err != nil {
				return fmt.Errorf("failed to delete blog likes: %w", err)
			}
			if err := tx.Unscoped().Where("blog_id IN ?", blogIDs).Delete(&models.Comment{}).Error; err != nil {
				return fmt.Errorf("failed to delete blog comments: %w", err)
			}
		}
		// Likes and comments the user left on other people's blogs.
		if err := tx.Unscoped().Where("user_id = ?", userID).Delete(&models.Like{}).Error; err != nil {
			return fmt.Errorf("failed to delete likes: %w", err)
		}
		if err := tx.Unscoped().Where("user_id = ?", userID).Delete(&models.Comment{}).Error; err != nil {
			return fmt.Errorf("failed to delete comments: %w", err)
		}
		if err := tx.Unscoped().Where("user_id = ?", userID).Delete(&models.Blog{}).Error; err != nil {
			return fmt.Errorf("failed to delete blogs: %w", err)
		}

		res := tx.Unscoped().Where("id = ?", userID).Delete(&models.User{})
		if res.Error != nil {
			return fmt.Errorf("failed to delete user: %w", res.Error)
		}
		if res.RowsAffected == 0 {
			return ErrNotFound
		}
		return nil
	})
}
