// internal/services/health_plan.go
package services

import (
	"strings"

	"github.com/Abhi-Verma2005/healthBackend/internal/models"
)

// PlanMetrics echoes the profile inputs the plan was generated from.
type PlanMetrics struct {
	StartingWeight float64 `json:"startingWeight"`
	Age            int     `json:"age"`
	Gender         string  `json:"gender"`
	ActivityLevel  string  `json:"activityLevel"`
}

// HealthPlan is the personalized plan returned when a user sets a goal.
type HealthPlan struct {
	Goal            models.Goal `json:"goal"`
	Recommendations []string    `json:"recommendations"`
	DailyTasks      []string    `json:"dailyTasks"`
	Metrics         PlanMetrics `json:"metrics"`
}

// PlanInput carries the profile data used to tailor the plan.
type PlanInput struct {
	Goal          models.Goal
	Age           int
	Weight        float64
	Gender        string
	ActivityLevel string
	Symptoms      string
}

// GenerateHealthPlan builds a plan from the base lists for the goal, then
// layers on activity-level, age, and symptom adjustments. It is pure and
// deterministic.
func GenerateHealthPlan(in PlanInput) HealthPlan {
	var recommendations, dailyTasks []string

	switch in.Goal {
	case models.GoalLoseWeight:
		recommendations = []string{
			"Maintain a calorie deficit of 500 calories per day",
			"Focus on protein-rich foods to maintain muscle mass",
			"Incorporate strength training 3 times per week",
			"Add 30 minutes of cardio 4-5 times per week",
		}
		dailyTasks = []string{
			"Track food intake in a journal or app",
			"Drink at least 2 liters of water",
			"Get at least 7 hours of sleep",
			"Take 10,000 steps",
		}
	case models.GoalImproveSleep:
		recommendations = []string{
			"Establish a consistent sleep schedule",
			"Create a relaxing bedtime routine",
			"Limit screen time 1 hour before bed",
			"Optimize your bedroom environment",
		}
		dailyTasks = []string{
			"Go to bed at the same time each night",
			"Avoid caffeine after 2pm",
			"Practice a 10-minute relaxation technique before sleep",
			"Keep your bedroom cool and dark",
		}
	case models.GoalGainMuscle:
		recommendations = []string{
			"Consume 1.6-2.2g of protein per kg of body weight",
			"Maintain a slight calorie surplus (200-300 calories)",
			"Focus on progressive overload in training",
			"Prioritize compound exercises",
		}
		dailyTasks = []string{
			"Complete your strength training program",
			"Eat 3-4 protein-rich meals",
			"Get 7-9 hours of quality sleep",
			"Stay hydrated throughout the day",
		}
	case models.GoalManageStress:
		recommendations = []string{
			"Practice mindfulness meditation daily",
			"Incorporate regular physical activity",
			"Establish healthy boundaries in work and relationships",
			"Consider limiting social media consumption",
		}
		dailyTasks = []string{
			"Complete a 10-minute meditation session",
			"Take three 5-minute breathing breaks",
			"Get at least 30 minutes of physical activity",
			"Write down three things you're grateful for",
		}
	default:
		recommendations = []string{"Work with a health professional to create a custom plan"}
		dailyTasks = []string{"Consult with your healthcare provider"}
	}

	if in.ActivityLevel == "sedentary" && (in.Goal == models.GoalLoseWeight || in.Goal == models.GoalGainMuscle) {
		recommendations = append(recommendations, "Start with light exercise and gradually increase intensity")
	}

	if in.Age > 50 {
		recommendations = append(recommendations, "Include joint-friendly exercises like swimming or cycling")
	}

	symptoms := parseSymptoms(in.Symptoms)
	if symptomsContain(symptoms, "joint pain", "arthritis") {
		recommendations = append(recommendations, "Consider low-impact exercises like swimming, cycling, or elliptical training")
	}
	if symptomsContain(symptoms, "insomnia", "trouble sleeping") {
		recommendations = append(recommendations,
			"Limit caffeine intake, especially in the afternoon and evening",
			"Consider a magnesium supplement before bed (consult with a healthcare provider)",
		)
	}

	return HealthPlan{
		Goal:            in.Goal,
		Recommendations: recommendations,
		DailyTasks:      dailyTasks,
		Metrics: PlanMetrics{
			StartingWeight: in.Weight,
			Age:            in.Age,
			Gender:         in.Gender,
			ActivityLevel:  in.ActivityLevel,
		},
	}
}

func parseSymptoms(raw string) []string {
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if s := strings.ToLower(strings.TrimSpace(p)); s != "" {
			out = append(out, s)
		}
	}
	return out
}

func symptomsContain(symptoms []string, needles ...string) bool {
	for _, s := range symptoms {
		for _, n := range needles {
			if strings.Contains(s, n) {
				return true
			}
		}
	}
	return false
}
