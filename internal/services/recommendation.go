// internal/services/recommendation.go
package services

import (
	"github.com/Abhi-Verma2005/healthBackend/internal/models"
)

// ImprovementThreshold splits scores into the improvement branch (below) and
// the maintenance branch (at or above).
const ImprovementThreshold = 50.0

// improvementAdvice holds the below-threshold recommendation lists, keyed by
// category then goal. Lists are ordered; they are returned as-is so the
// output is fully deterministic.
var improvementAdvice = map[models.Category]map[models.Goal][]string{
	models.CategoryNutrition: {
		models.GoalLoseWeight: {
			"Maintain a calorie deficit of about 500 calories per day",
			"Build meals around lean protein to preserve muscle mass",
			"Swap sugary drinks for water or unsweetened tea",
			"Plan tomorrow's meals tonight to avoid impulse eating",
		},
		models.GoalImproveSleep: {
			"Finish your last meal at least 3 hours before bed",
			"Cut caffeine after 2pm",
			"Prefer a light, balanced dinner over heavy or spicy food",
		},
		models.GoalGainMuscle: {
			"Aim for 1.6-2.2g of protein per kg of body weight",
			"Add a protein-rich snack after training",
			"Keep a slight calorie surplus of 200-300 calories",
		},
		models.GoalManageStress: {
			"Include omega-3 rich foods like fish or walnuts",
			"Limit caffeine, especially in the afternoon",
			"Eat at regular times to keep energy stable",
		},
	},
	models.CategorySleep: {
		models.GoalLoseWeight: {
			"Aim for at least 7 hours of sleep to support appetite regulation",
			"Keep a consistent bedtime, even on weekends",
			"Avoid late-night snacking before bed",
		},
		models.GoalImproveSleep: {
			"Set a fixed sleep and wake time and stick to it",
			"No screens for the hour before bed",
			"Keep the bedroom cool, dark, and quiet",
			"Build a 20-minute wind-down routine",
		},
		models.GoalGainMuscle: {
			"Target 8-9 hours of sleep on training days for recovery",
			"Keep your sleep schedule consistent to protect recovery windows",
		},
		models.GoalManageStress: {
			"Try a 10-minute relaxation exercise before sleep",
			"Write down tomorrow's worries before getting into bed",
			"Keep work out of the bedroom",
		},
	},
	models.CategoryMood: {
		models.GoalLoseWeight: {
			"Take a 15-minute walk when motivation dips",
			"Track small wins instead of the scale alone",
		},
		models.GoalImproveSleep: {
			"Low mood and poor sleep reinforce each other; get morning daylight",
			"Avoid napping late in the day",
		},
		models.GoalGainMuscle: {
			"Schedule rest days; overtraining drags mood down",
			"Train with a partner for accountability",
		},
		models.GoalManageStress: {
			"Complete a 10-minute meditation session",
			"Take three 5-minute breathing breaks through the day",
			"Write down three things you're grateful for",
		},
	},
	models.CategoryWater: {
		models.GoalLoseWeight: {
			"Drink a glass of water before every meal",
			"Target at least 3 liters today",
			"Replace one sugary drink with water",
		},
		models.GoalImproveSleep: {
			"Front-load your water intake; taper after dinner",
			"Aim for 2.5 liters, mostly before the evening",
		},
		models.GoalGainMuscle: {
			"Target 4 liters on training days",
			"Drink 500ml around each workout",
		},
		models.GoalManageStress: {
			"Keep a filled bottle at your desk",
			"Swap one coffee for a glass of water",
		},
	},
}

// improvementFallback is used below the threshold when the user has no
// stored goal or no rule exists for the (category, goal) pair.
var improvementFallback = map[models.Category][]string{
	models.CategoryNutrition: {
		"Build balanced plates: half vegetables, a quarter protein, a quarter whole grains",
		"Eat at regular times and avoid skipping meals",
	},
	models.CategorySleep: {
		"Keep a consistent sleep schedule",
		"Get 7-8 hours per night",
	},
	models.CategoryMood: {
		"Get at least 30 minutes of physical activity",
		"Take regular breaks during focused work",
	},
	models.CategoryWater: {
		"Aim for 2.5 liters spread across the day",
		"Start the morning with a glass of water",
	},
}

// maintenanceAdvice is the at-or-above-threshold branch, per category.
var maintenanceAdvice = map[models.Category][]string{
	models.CategoryNutrition: {
		"Solid day of eating; keep the same meal structure tomorrow",
		"Stay consistent with your protein intake",
	},
	models.CategorySleep: {
		"Good sleep; protect tonight's bedtime to keep the streak",
		"Keep your wind-down routine unchanged",
	},
	models.CategoryMood: {
		"Good headspace today; note what worked and repeat it",
		"Keep your activity and break rhythm going",
	},
	models.CategoryWater: {
		"Hydration on track; keep the bottle within reach tomorrow",
	},
}

// RecommendationsFor maps (category, score, goal) to an ordered advice list.
// It is a pure function: identical inputs always yield identical lists.
// Recommendation lists on sub-records are overwritten with this output on
// every upsert, never appended to.
func RecommendationsFor(category models.Category, score float64, goal models.Goal) []string {
	var source []string
	if score < ImprovementThreshold {
		if byGoal, ok := improvementAdvice[category]; ok {
			source = byGoal[goal]
		}
		if source == nil {
			source = improvementFallback[category]
		}
	} else {
		source = maintenanceAdvice[category]
	}

	// Copy so callers can't mutate the shared tables.
	out := make([]string, len(source))
	copy(out, source)
	return out
}
