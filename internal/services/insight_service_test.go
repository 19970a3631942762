// internal/services/insight_service_test.go
package services

import (
	"testing"
	"time"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"

	"github.com/Abhi-Verma2005/healthBackend/internal/models"
)

func logOn(daysAgo int, sleepScore, moodScore float64) models.DailyLog {
	return models.DailyLog{
		Date:  models.NormalizeDate(time.Now().AddDate(0, 0, -daysAgo)),
		Sleep: &models.Sleep{FinalScore: sleepScore},
		Mood:  &models.Mood{FinalScore: moodScore},
	}
}

func TestCalculateProgressComparesTwoLatestLogs(t *testing.T) {
	logs := []models.DailyLog{
		logOn(0, 60, 75),
		logOn(1, 50, 100),
		logOn(2, 10, 10),
	}

	progress := calculateProgress(logs)

	assert.InDelta(t, 20.0, progress.Sleep, 0.001)
	assert.InDelta(t, -25.0, progress.Mood, 0.001)
	// Categories never logged report no change.
	assert.Equal(t, 0.0, progress.Water)
	assert.Equal(t, 0.0, progress.Nutrition)
}

func TestCalculateProgressNeedsTwoLogs(t *testing.T) {
	progress := calculateProgress([]models.DailyLog{logOn(0, 80, 80)})
	assert.Equal(t, CategoryProgress{}, progress)
}

func TestCalculateProgressZeroPreviousIsNoChange(t *testing.T) {
	logs := []models.DailyLog{
		logOn(0, 60, 75),
		logOn(1, 0, 75),
	}
	progress := calculateProgress(logs)
	assert.Equal(t, 0.0, progress.Sleep)
}

func TestCommonRecommendationsTopFiveByFrequency(t *testing.T) {
	rec := func(names ...string) *models.Sleep {
		return &models.Sleep{Recommendations: pq.StringArray(names)}
	}

	logs := []models.DailyLog{
		{Sleep: rec("a", "b", "c")},
		{Sleep: rec("a", "b", "d")},
		{Sleep: rec("a", "e", "f")},
		// Fourth log is outside the 3-log window and must be ignored.
		{Sleep: rec("z", "z", "z")},
	}

	top := commonRecommendations(logs)

	assert.Len(t, top, 5)
	assert.Equal(t, "a", top[0])
	assert.Equal(t, "b", top[1])
	assert.NotContains(t, top, "z")
}

func TestCommonRecommendationsStableTieBreak(t *testing.T) {
	logs := []models.DailyLog{
		{Mood: &models.Mood{Recommendations: pq.StringArray{"beta", "alpha"}}},
	}

	top := commonRecommendations(logs)
	assert.Equal(t, []string{"alpha", "beta"}, top)
}

func TestBuildTimeSeriesReversesToOldestFirst(t *testing.T) {
	logs := []models.DailyLog{
		logOn(0, 90, 90),
		logOn(1, 80, 80),
		logOn(2, 70, 70),
	}

	points := buildTimeSeries(logs)

	assert.Len(t, points, 3)
	assert.Equal(t, 70.0, points[0].Sleep)
	assert.Equal(t, 90.0, points[2].Sleep)
	// Missing categories render as zero in the chart.
	assert.Equal(t, 0.0, points[0].Water)
}
