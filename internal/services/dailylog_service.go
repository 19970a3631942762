// internal/services/dailylog_service.go
package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"

	"github.com/Abhi-Verma2005/healthBackend/internal/models"
)

type DailyLogService struct {
	db *gorm.DB
}

func NewDailyLogService(db *gorm.DB) *DailyLogService {
	return &DailyLogService{db: db}
}

// Per-category score payloads. Handlers validate presence before these are
// constructed, so the service treats every field as settled.
type NutritionInput struct {
	FinalScore float64
	Protein    float64
	Carbs      float64
	Fats       float64
	Vitamins   float64
	Calories   float64
}

type SleepInput struct {
	FinalScore  float64
	Quality     float64
	Duration    float64
	Consistency float64
	Environment float64
	Habits      float64
}

type MoodInput struct {
	FinalScore float64
	Happiness  float64
	Energy     float64
	Focus      float64
	Calm       float64
	Optimism   float64
}

type WaterInput struct {
	FinalScore float64
	Intake     float64
	Target     float64
}

// DailyLogInput is one submission for a single calendar date. Nil category
// pointers are skipped; present ones are written whole.
type DailyLogInput struct {
	Date      time.Time
	Nutrition *NutritionInput
	Sleep     *SleepInput
	Mood      *MoodInput
	Water     *WaterInput
}

type UpsertResult struct {
	DailyLogID uuid.UUID `json:"dailyLogId"`
	Created    bool      `json:"created"`
}

// Upsert writes the submitted categories for (user, date) in one transaction.
// The parent log is found or created; each present category is updated in
// place or inserted, with its recommendation list regenerated from the
// submitted score and the user's stored goal. Any failure rolls everything
// back.
func (s *DailyLogService) Upsert(userID uuid.UUID, in *DailyLogInput) (*UpsertResult, error) {
	date := in.Date
	if date.IsZero() {
		date = time.Now()
	}
	date = models.NormalizeDate(date)

	var result UpsertResult
	err := s.db.Transaction(func(tx *gorm.DB) error {
		log, created, err := s.findOrCreateLog(tx, userID, date)
		if err != nil {
			return err
		}
		result.DailyLogID = log.ID
		result.Created = created

		var user models.User
		if err := tx.Select("id", "goal").First(&user, "id = ?", userID).Error; err != nil {
			return fmt.Errorf("failed to load user: %w", err)
		}
		goal := user.Goal

		if in.Nutrition != nil {
			recs := RecommendationsFor(models.CategoryNutrition, in.Nutrition.FinalScore, goal)
			if err := upsertSubRecord(tx, log.ID, func(r *models.Nutrition) {
				r.DailyLogID = log.ID
				r.FinalScore = in.Nutrition.FinalScore
				r.Protein = in.Nutrition.Protein
				r.Carbs = in.Nutrition.Carbs
				r.Fats = in.Nutrition.Fats
				r.Vitamins = in.Nutrition.Vitamins
				r.Calories = in.Nutrition.Calories
				r.Recommendations = pq.StringArray(recs)
			}); err != nil {
				return fmt.Errorf("failed to save nutrition record: %w", err)
			}
		}

		if in.Sleep != nil {
			recs := RecommendationsFor(models.CategorySleep, in.Sleep.FinalScore, goal)
			if err := upsertSubRecord(tx, log.ID, func(r *models.Sleep) {
				r.DailyLogID = log.ID
				r.FinalScore = in.Sleep.FinalScore
				r.Quality = in.Sleep.Quality
				r.Duration = in.Sleep.Duration
				r.Consistency = in.Sleep.Consistency
				r.Environment = in.Sleep.Environment
				r.Habits = in.Sleep.Habits
				r.Recommendations = pq.StringArray(recs)
			}); err != nil {
				return fmt.Errorf("failed to save sleep record: %w", err)
			}
		}

		if in.Mood != nil {
			recs := RecommendationsFor(models.CategoryMood, in.Mood.FinalScore, goal)
			if err := upsertSubRecord(tx, log.ID, func(r *models.Mood) {
				r.DailyLogID = log.ID
				r.FinalScore = in.Mood.FinalScore
				r.Happiness = in.Mood.Happiness
				r.Energy = in.Mood.Energy
				r.Focus = in.Mood.Focus
				r.Calm = in.Mood.Calm
				r.Optimism = in.Mood.Optimism
				r.Recommendations = pq.StringArray(recs)
			}); err != nil {
				return fmt.Errorf("failed to save mood record: %w", err)
			}
		}

		if in.Water != nil {
			recs := RecommendationsFor(models.CategoryWater, in.Water.FinalScore, goal)
			if err := upsertSubRecord(tx, log.ID, func(r *models.Water) {
				r.DailyLogID = log.ID
				r.FinalScore = in.Water.FinalScore
				r.Intake = in.Water.Intake
				r.Target = in.Water.Target
				r.Recommendations = pq.StringArray(recs)
			}); err != nil {
				return fmt.Errorf("failed to save water record: %w", err)
			}
		}

		return nil
	})
	if err != nil {
		return nil, err
	}
	return &result, nil
}

// findOrCreateLog resolves the parent row for (user, date). When a concurrent
// request wins the insert race, the unique violation is swallowed and the
// winner's row is used instead.
func (s *DailyLogService) findOrCreateLog(tx *gorm.DB, userID uuid.UUID, date time.Time) (*models.DailyLog, bool, error) {
	var log models.DailyLog
	err := tx.Where("user_id = ? AND date = ?", userID, date).First(&log).Error
	if err == nil {
		return &log, false, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, fmt.Errorf("failed to query daily log: %w", err)
	}

	log = models.DailyLog{UserID: userID, Date: date}
	if err := tx.Create(&log).Error; err != nil {
		if isUniqueViolation(err) {
			var existing models.DailyLog
			if err := tx.Where("user_id = ? AND date = ?", userID, date).First(&existing).Error; err != nil {
				return nil, false, fmt.Errorf("failed to re-read daily log after conflict: %w", err)
			}
			return &existing, false, nil
		}
		return nil, false, fmt.Errorf("failed to create daily log: %w", err)
	}
	return &log, true, nil
}

// upsertSubRecord is the one parameterized write path shared by all four
// categories: find the row keyed by daily_log_id, create it if absent,
// otherwise overwrite it in place.
func upsertSubRecord[T any](tx *gorm.DB, logID uuid.UUID, assign func(*T)) error {
	var rec T
	err := tx.Where("daily_log_id = ?", logID).First(&rec).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		assign(&rec)
		return tx.Create(&rec).Error
	case err != nil:
		return err
	default:
		assign(&rec)
		return tx.Save(&rec).Error
	}
}

func withChildren(db *gorm.DB) *gorm.DB {
	return db.Preload("Nutrition").Preload("Sleep").Preload("Mood").Preload("Water")
}

// Today returns the log for the current UTC date with all four children.
func (s *DailyLogService) Today(userID uuid.UUID) (*models.DailyLog, error) {
	today := models.NormalizeDate(time.Now())

	var log models.DailyLog
	err := withChildren(s.db).Where("user_id = ? AND date = ?", userID, today).First(&log).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to query daily log: %w", err)
	}
	return &log, nil
}

// Weekly returns the last 7 days of logs, newest first.
func (s *DailyLogService) Weekly(userID uuid.UUID) ([]models.DailyLog, error) {
	since := models.NormalizeDate(time.Now().AddDate(0, 0, -6))

	var logs []models.DailyLog
	err := withChildren(s.db).
		Where("user_id = ? AND date >= ?", userID, since).
		Order("date DESC").
		Find(&logs).Error
	if err != nil {
		return nil, fmt.Errorf("failed to query weekly logs: %w", err)
	}
	return logs, nil
}

// Range returns logs between start and end inclusive, newest first.
func (s *DailyLogService) Range(userID uuid.UUID, start, end time.Time) ([]models.DailyLog, error) {
	start = models.NormalizeDate(start)
	end = models.NormalizeDate(end)

	var logs []models.DailyLog
	err := withChildren(s.db).
		Where("user_id = ? AND date >= ? AND date <= ?", userID, start, end).
		Order("date DESC").
		Find(&logs).Error
	if err != nil {
		return nil, fmt.Errorf("failed to query logs: %w", err)
	}
	return logs, nil
}

// DailyProgress reports which categories have been logged for a date and the
// resulting completion percentage. A missing log is not an error; every flag
// is simply false.
type DailyProgress struct {
	Date       time.Time                `json:"date"`
	Completed  map[models.Category]bool `json:"completed"`
	Percentage float64                  `json:"percentage"`
}

func (s *DailyLogService) Progress(userID uuid.UUID, date time.Time) (*DailyProgress, error) {
	date = models.NormalizeDate(date)

	progress := &DailyProgress{
		Date:      date,
		Completed: make(map[models.Category]bool, len(models.Categories)),
	}
	for _, c := range models.Categories {
		progress.Completed[c] = false
	}

	var log models.DailyLog
	err := withChildren(s.db).Where("user_id = ? AND date = ?", userID, date).First(&log).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return progress, nil
		}
		return nil, fmt.Errorf("failed to query daily log: %w", err)
	}

	progress.Completed[models.CategoryNutrition] = log.Nutrition != nil
	progress.Completed[models.CategorySleep] = log.Sleep != nil
	progress.Completed[models.CategoryMood] = log.Mood != nil
	progress.Completed[models.CategoryWater] = log.Water != nil

	done := 0
	for _, ok := range progress.Completed {
		if ok {
			done++
		}
	}
	progress.Percentage = float64(done) / float64(len(models.Categories)) * 100

	return progress, nil
}

// CategoryEntry pairs a log date with that date's record for one category.
type CategoryEntry struct {
	Date   time.Time   `json:"date"`
	Record interface{} `json:"record"`
}

// CategoryHistory returns the entries for a single category between start and
// end inclusive, newest first. Days where the category was not logged are
// omitted.
func (s *DailyLogService) CategoryHistory(userID uuid.UUID, category models.Category, start, end time.Time) ([]CategoryEntry, error) {
	start = models.NormalizeDate(start)
	end = models.NormalizeDate(end)

	var logs []models.DailyLog
	err := s.db.Preload(category.PreloadName()).
		Where("user_id = ? AND date >= ? AND date <= ?", userID, start, end).
		Order("date DESC").
		Find(&logs).Error
	if err != nil {
		return nil, fmt.Errorf("failed to query %s history: %w", category, err)
	}

	entries := make([]CategoryEntry, 0, len(logs))
	for i := range logs {
		var rec interface{}
		switch category {
		case models.CategoryNutrition:
			if logs[i].Nutrition != nil {
				rec = logs[i].Nutrition
			}
		case models.CategorySleep:
			if logs[i].Sleep != nil {
				rec = logs[i].Sleep
			}
		case models.CategoryMood:
			if logs[i].Mood != nil {
				rec = logs[i].Mood
			}
		case models.CategoryWater:
			if logs[i].Water != nil {
				rec = logs[i].Water
			}
		}
		if rec != nil {
			entries = append(entries, CategoryEntry{Date: logs[i].Date, Record: rec})
		}
	}
	return entries, nil
}
