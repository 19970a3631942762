// internal/services/recommendation_test.go
package services

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Abhi-Verma2005/healthBackend/internal/models"
)

func TestRecommendationsForLowScoreUsesGoalAdvice(t *testing.T) {
	recs := RecommendationsFor(models.CategoryNutrition, 40, models.GoalLoseWeight)

	assert.NotEmpty(t, recs)
	assert.Equal(t, improvementAdvice[models.CategoryNutrition][models.GoalLoseWeight], recs)
}

func TestRecommendationsForHighScoreUsesMaintenance(t *testing.T) {
	recs := RecommendationsFor(models.CategoryNutrition, 70, models.GoalLoseWeight)

	assert.Equal(t, maintenanceAdvice[models.CategoryNutrition], recs)
}

func TestRecommendationsForThresholdIsMaintenance(t *testing.T) {
	recs := RecommendationsFor(models.CategorySleep, 50, models.GoalImproveSleep)

	assert.Equal(t, maintenanceAdvice[models.CategorySleep], recs)
}

func TestRecommendationsForUnsetGoalFallsBack(t *testing.T) {
	recs := RecommendationsFor(models.CategoryWater, 30, models.GoalNone)

	assert.Equal(t, improvementFallback[models.CategoryWater], recs)
}

func TestRecommendationsForIsDeterministic(t *testing.T) {
	for _, category := range models.Categories {
		for _, goal := range []models.Goal{models.GoalLoseWeight, models.GoalImproveSleep, models.GoalGainMuscle, models.GoalManageStress, models.GoalNone} {
			for _, score := range []float64{0, 25, 49.9, 50, 75, 100} {
				first := RecommendationsFor(category, score, goal)
				second := RecommendationsFor(category, score, goal)
				assert.Equal(t, first, second)
				assert.NotEmpty(t, first, "category %s goal %q score %v", category, goal, score)
			}
		}
	}
}

func TestRecommendationsForReturnsCopy(t *testing.T) {
	recs := RecommendationsFor(models.CategoryMood, 80, models.GoalNone)
	recs[0] = "mutated"

	again := RecommendationsFor(models.CategoryMood, 80, models.GoalNone)
	assert.NotEqual(t, "mutated", again[0])
}
