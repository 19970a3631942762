// internal/models/daily_log.go
package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// DailyLog is the per-user, per-calendar-date parent record. Date is stored
// normalized to midnight UTC so repeated submissions for the same day collide
// on the (user_id, date) unique index instead of creating duplicates.
type DailyLog struct {
	BaseModel
	UserID uuid.UUID `json:"user_id" gorm:"type:uuid;not null;uniqueIndex:idx_daily_logs_user_date"`
	Date   time.Time `json:"date" gorm:"type:date;not null;uniqueIndex:idx_daily_logs_user_date"`

	// 1:1 optional children, one per category
	Nutrition *Nutrition `json:"nutrition,omitempty" gorm:"foreignKey:DailyLogID;constraint:OnDelete:CASCADE"`
	Sleep     *Sleep     `json:"sleep,omitempty" gorm:"foreignKey:DailyLogID;constraint:OnDelete:CASCADE"`
	Mood      *Mood      `json:"mood,omitempty" gorm:"foreignKey:DailyLogID;constraint:OnDelete:CASCADE"`
	Water     *Water     `json:"water,omitempty" gorm:"foreignKey:DailyLogID;constraint:OnDelete:CASCADE"`
}

// NormalizeDate strips the time-of-day component.
func NormalizeDate(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

type Nutrition struct {
	BaseModel
	DailyLogID uuid.UUID `json:"daily_log_id" gorm:"type:uuid;not null;uniqueIndex"`

	FinalScore float64 `json:"final_score" gorm:"not null"`
	Protein    float64 `json:"protein"`
	Carbs      float64 `json:"carbs"`
	Fats       float64 `json:"fats"`
	Vitamins   float64 `json:"vitamins"`
	Calories   float64 `json:"calories"`

	Recommendations pq.StringArray `json:"recommendations" gorm:"type:text[]"`
}

type Sleep struct {
	BaseModel
	DailyLogID uuid.UUID `json:"daily_log_id" gorm:"type:uuid;not null;uniqueIndex"`

	FinalScore  float64 `json:"final_score" gorm:"not null"`
	Quality     float64 `json:"quality"`
	Duration    float64 `json:"duration"`
	Consistency float64 `json:"consistency"`
	Environment float64 `json:"environment"`
	Habits      float64 `json:"habits"`

	Recommendations pq.StringArray `json:"recommendations" gorm:"type:text[]"`
}

type Mood struct {
	BaseModel
	DailyLogID uuid.UUID `json:"daily_log_id" gorm:"type:uuid;not null;uniqueIndex"`

	FinalScore float64 `json:"final_score" gorm:"not null"`
	Happiness  float64 `json:"happiness"`
	Energy     float64 `json:"energy"`
	Focus      float64 `json:"focus"`
	Calm       float64 `json:"calm"`
	Optimism   float64 `json:"optimism"`

	Recommendations pq.StringArray `json:"recommendations" gorm:"type:text[]"`
}

type Water struct {
	BaseModel
	DailyLogID uuid.UUID `json:"daily_log_id" gorm:"type:uuid;not null;uniqueIndex"`

	FinalScore float64 `json:"final_score" gorm:"not null"`
	Intake     float64 `json:"intake"` // liters consumed
	Target     float64 `json:"target"` // liters targeted

	Recommendations pq.StringArray `json:"recommendations" gorm:"type:text[]"`
}
