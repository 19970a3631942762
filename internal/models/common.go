// internal/models/common.go
package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Base model with common fields
type BaseModel struct {
	ID        uuid.UUID      `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"deleted_at,omitempty" gorm:"index"`
}

// Goal is the user-level health goal driving recommendation text.
type Goal string

const (
	GoalLoseWeight   Goal = "Lose weight"
	GoalImproveSleep Goal = "Improve sleep"
	GoalGainMuscle   Goal = "Gain muscle"
	GoalManageStress Goal = "Manage stress"
	GoalNone         Goal = ""
)

func (g Goal) Valid() bool {
	switch g {
	case GoalLoseWeight, GoalImproveSleep, GoalGainMuscle, GoalManageStress:
		return true
	}
	return false
}

// Category tags the four daily-log sub-record kinds. Per-category behavior
// (payload shape, recommendation rules, preloads) dispatches on this tag.
type Category string

const (
	CategoryNutrition Category = "nutrition"
	CategorySleep     Category = "sleep"
	CategoryMood      Category = "mood"
	CategoryWater     Category = "water"
)

// Categories lists all sub-record categories in a fixed order.
var Categories = []Category{CategoryNutrition, CategorySleep, CategoryMood, CategoryWater}

func ParseCategory(s string) (Category, bool) {
	c := Category(s)
	for _, known := range Categories {
		if c == known {
			return c, true
		}
	}
	return "", false
}

// PreloadName is the GORM association name on DailyLog for this category.
func (c Category) PreloadName() string {
	switch c {
	case CategoryNutrition:
		return "Nutrition"
	case CategorySleep:
		return "Sleep"
	case CategoryMood:
		return "Mood"
	case CategoryWater:
		return "Water"
	}
	return ""
}
