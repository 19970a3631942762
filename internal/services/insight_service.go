// internal/services/insight_service.go
package services

import (
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Abhi-Verma2005/healthBackend/internal/models"
)

type InsightService struct {
	db *gorm.DB
}

func NewInsightService(db *gorm.DB) *InsightService {
	return &InsightService{db: db}
}

// ScorePoint is one chart row. Score pointers are nil for days with no
// matching sub-record so the client can render gaps instead of zeros.
type ScorePoint struct {
	Date      string   `json:"date"`
	Nutrition *float64 `json:"nutrition"`
	Sleep     *float64 `json:"sleep"`
	Mood      *float64 `json:"mood"`
}

// HealthScores returns one point per calendar day over the trailing window,
// oldest first, including days the user never logged.
func (s *InsightService) HealthScores(userID uuid.UUID, days int) ([]ScorePoint, error) {
	if days < 1 {
		days = 7
	}

	end := models.NormalizeDate(time.Now())
	start := end.AddDate(0, 0, -(days - 1))

	var logs []models.DailyLog
	err := s.db.Preload("Nutrition").Preload("Sleep").Preload("Mood").
		Where("user_id = ? AND date >= ? AND date <= ?", userID, start, end).
		Order("date ASC").
		Find(&logs).Error
	if err != nil {
		return nil, fmt.Errorf("failed to query logs: %w", err)
	}

	byDate := make(map[string]*models.DailyLog, len(logs))
	for i := range logs {
		byDate[logs[i].Date.Format("2006-01-02")] = &logs[i]
	}

	points := make([]ScorePoint, 0, days)
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		key := d.Format("2006-01-02")
		point := ScorePoint{Date: key}
		if log, ok := byDate[key]; ok {
			if log.Nutrition != nil {
				point.Nutrition = &log.Nutrition.FinalScore
			}
			if log.Sleep != nil {
				point.Sleep = &log.Sleep.FinalScore
			}
			if log.Mood != nil {
				point.Mood = &log.Mood.FinalScore
			}
		}
		points = append(points, point)
	}
	return points, nil
}

// TimeSeriesPoint reports all four final scores for one logged day; missing
// sub-records count as zero here, matching the profile-page chart contract.
type TimeSeriesPoint struct {
	Date      time.Time `json:"date"`
	Sleep     float64   `json:"sleep"`
	Mood      float64   `json:"mood"`
	Water     float64   `json:"water"`
	Nutrition float64   `json:"nutrition"`
}

// CategoryProgress is the percent change per category between the two most
// recent logs.
type CategoryProgress struct {
	Sleep     float64 `json:"sleep"`
	Mood      float64 `json:"mood"`
	Water     float64 `json:"water"`
	Nutrition float64 `json:"nutrition"`
}

type HealthInsights struct {
	TimeSeriesData        []TimeSeriesPoint `json:"timeSeriesData"`
	Progress              CategoryProgress  `json:"progress"`
	CommonRecommendations []string          `json:"commonRecommendations"`
}

// HealthInsights assembles the profile-page insight block: the last 7 logged
// days as a series, percent change between the two latest logs, and the five
// most frequent recommendations across the last three logs.
func (s *InsightService) HealthInsights(userID uuid.UUID) (*HealthInsights, error) {
	var logs []models.DailyLog
	err := withChildren(s.db).
		Where("user_id = ?", userID).
		Order("date DESC").
		Find(&logs).Error
	if err != nil {
		return nil, fmt.Errorf("failed to query logs: %w", err)
	}

	insights := &HealthInsights{
		TimeSeriesData:        buildTimeSeries(logs),
		Progress:              calculateProgress(logs),
		CommonRecommendations: commonRecommendations(logs),
	}
	return insights, nil
}

func buildTimeSeries(logs []models.DailyLog) []TimeSeriesPoint {
	n := len(logs)
	if n > 7 {
		n = 7
	}

	// logs are newest-first; the chart wants oldest-first.
	points := make([]TimeSeriesPoint, 0, n)
	for i := n - 1; i >= 0; i-- {
		log := logs[i]
		point := TimeSeriesPoint{Date: log.Date}
		if log.Sleep != nil {
			point.Sleep = log.Sleep.FinalScore
		}
		if log.Mood != nil {
			point.Mood = log.Mood.FinalScore
		}
		if log.Water != nil {
			point.Water = log.Water.FinalScore
		}
		if log.Nutrition != nil {
			point.Nutrition = log.Nutrition.FinalScore
		}
		points = append(points, point)
	}
	return points
}

func calculateProgress(logs []models.DailyLog) CategoryProgress {
	if len(logs) < 2 {
		return CategoryProgress{}
	}

	current, previous := logs[0], logs[1]

	score := func(cur, prev *float64) float64 {
		if cur == nil || prev == nil || *prev == 0 {
			return 0
		}
		return (*cur - *prev) / *prev * 100
	}

	finalScore := func(log models.DailyLog, c models.Category) *float64 {
		switch c {
		case models.CategorySleep:
			if log.Sleep != nil {
				return &log.Sleep.FinalScore
			}
		case models.CategoryMood:
			if log.Mood != nil {
				return &log.Mood.FinalScore
			}
		case models.CategoryWater:
			if log.Water != nil {
				return &log.Water.FinalScore
			}
		case models.CategoryNutrition:
			if log.Nutrition != nil {
				return &log.Nutrition.FinalScore
			}
		}
		return nil
	}

	return CategoryProgress{
		Sleep:     score(finalScore(current, models.CategorySleep), finalScore(previous, models.CategorySleep)),
		Mood:      score(finalScore(current, models.CategoryMood), finalScore(previous, models.CategoryMood)),
		Water:     score(finalScore(current, models.CategoryWater), finalScore(previous, models.CategoryWater)),
		Nutrition: score(finalScore(current, models.CategoryNutrition), finalScore(previous, models.CategoryNutrition)),
	}
}

// commonRecommendations counts every recommendation across the three most
// recent logs and returns the top five. Ties break alphabetically so the
// output is stable.
func commonRecommendations(logs []models.DailyLog) []string {
	n := len(logs)
	if n > 3 {
		n = 3
	}

	counts := make(map[string]int)
	for i := 0; i < n; i++ {
		log := logs[i]
		if log.Sleep != nil {
			for _, r := range log.Sleep.Recommendations {
				counts[r]++
			}
		}
		if log.Mood != nil {
			for _, r := range log.Mood.Recommendations {
				counts[r]++
			}
		}
		if log.Water != nil {
			for _, r := range log.Water.Recommendations {
				counts[r]++
			}
		}
		if log.Nutrition != nil {
			for _, r := range log.Nutrition.Recommendations {
				counts[r]++
			}
		}
	}

	recs := make([]string, 0, len(counts))
	for r := range counts {
		recs = append(recs, r)
	}
	sort.Slice(recs, func(i, j int) bool {
		if counts[recs[i]] != counts[recs[j]] {
			return counts[recs[i]] > counts[recs[j]]
		}
		return recs[i] < recs[j]
	})

	if len(recs) > 5 {
		recs = recs[:5]
	}
	return recs
}
