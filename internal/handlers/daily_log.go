// internal/handlers/daily_log.go
package handlers

import (
	"errors"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/Abhi-Verma2005/healthBackend/internal/models"
	"github.com/Abhi-Verma2005/healthBackend/internal/services"
	"github.com/Abhi-Verma2005/healthBackend/internal/utils"
)

type DailyLogHandler struct {
	dailyLogService *services.DailyLogService
}

func NewDailyLogHandler(dailyLogService *services.DailyLogService) *DailyLogHandler {
	return &DailyLogHandler{
		dailyLogService: dailyLogService,
	}
}

// currentUserID pulls the verified identity the auth middleware attached.
func currentUserID(c *gin.Context) (uuid.UUID, bool) {
	idStr, ok := utils.GetUserIDFromContext(c)
	if !ok {
		return uuid.Nil, false
	}
	id, err := uuid.Parse(idStr)
	if err != nil {
		return uuid.Nil, false
	}
	return id, true
}

// Category payloads are strict: once a category object is present, every one
// of its numeric fields must be too. Pointer fields make an explicit zero
// distinguishable from an omitted field.
type nutritionPayload struct {
	FinalScore *float64 `json:"finalScore" validate:"required"`
	Protein    *float64 `json:"protein" validate:"required"`
	Carbs      *float64 `json:"carbs" validate:"required"`
	Fats       *float64 `json:"fats" validate:"required"`
	Vitamins   *float64 `json:"vitamins" validate:"required"`
	Calories   *float64 `json:"calories" validate:"required"`
}

type sleepPayload struct {
	FinalScore  *float64 `json:"finalScore" validate:"required"`
	Quality     *float64 `json:"quality" validate:"required"`
	Duration    *float64 `json:"duration" validate:"required"`
	Consistency *float64 `json:"consistency" validate:"required"`
	Environment *float64 `json:"environment" validate:"required"`
	Habits      *float64 `json:"habits" validate:"required"`
}

type moodPayload struct {
	FinalScore *float64 `json:"finalScore" validate:"required"`
	Happiness  *float64 `json:"happiness" validate:"required"`
	Energy     *float64 `json:"energy" validate:"required"`
	Focus      *float64 `json:"focus" validate:"required"`
	Calm       *float64 `json:"calm" validate:"required"`
	Optimism   *float64 `json:"optimism" validate:"required"`
}

type waterPayload struct {
	FinalScore *float64 `json:"finalScore" validate:"required"`
	Intake     *float64 `json:"intake" validate:"required"`
	Target     *float64 `json:"target" validate:"required"`
}

type upsertDailyLogRequest struct {
	Date          string            `json:"date" validate:"omitempty,datetime=2006-01-02"`
	NutritionData *nutritionPayload `json:"nutritionData"`
	SleepData     *sleepPayload     `json:"sleepData"`
	MoodData      *moodPayload      `json:"moodData"`
	WaterData     *waterPayload     `json:"waterData"`
}

// POST /daily-log
func (h *DailyLogHandler) Upsert(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		utils.UnauthorizedResponse(c, "")
		return
	}

	var req upsertDailyLogRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid request body", err.Error())
		return
	}

	if validationErrors := utils.GetValidationErrors(utils.ValidateStruct(&req)); len(validationErrors) > 0 {
		utils.ValidationErrorResponse(c, validationErrors)
		return
	}

	input := &services.DailyLogInput{}
	if req.Date != "" {
		// Format already validated above.
		input.Date, _ = time.Parse("2006-01-02", req.Date)
	}
	if p := req.NutritionData; p != nil {
		input.Nutrition = &services.NutritionInput{
			FinalScore: *p.FinalScore,
			Protein:    *p.Protein,
			Carbs:      *p.Carbs,
			Fats:       *p.Fats,
			Vitamins:   *p.Vitamins,
			Calories:   *p.Calories,
		}
	}
	if p := req.SleepData; p != nil {
		input.Sleep = &services.SleepInput{
			FinalScore:  *p.FinalScore,
			Quality:     *p.Quality,
			Duration:    *p.Duration,
			Consistency: *p.Consistency,
			Environment: *p.Environment,
			Habits:      *p.Habits,
		}
	}
	if p := req.MoodData; p != nil {
		input.Mood = &services.MoodInput{
			FinalScore: *p.FinalScore,
			Happiness:  *p.Happiness,
			Energy:     *p.Energy,
			Focus:      *p.Focus,
			Calm:       *p.Calm,
			Optimism:   *p.Optimism,
		}
	}
	if p := req.WaterData; p != nil {
		input.Water = &services.WaterInput{
			FinalScore: *p.FinalScore,
			Intake:     *p.Intake,
			Target:     *p.Target,
		}
	}

	result, err := h.dailyLogService.Upsert(userID, input)
	if err != nil {
		utils.InternalErrorResponse(c, "Failed to save daily log")
		return
	}

	if result.Created {
		utils.CreatedResponse(c, result)
		return
	}
	utils.SuccessResponse(c, result)
}

// GET /daily-log/today
func (h *DailyLogHandler) Today(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		utils.UnauthorizedResponse(c, "")
		return
	}

	log, err := h.dailyLogService.Today(userID)
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			utils.NotFoundResponse(c, "No log for today")
			return
		}
		utils.InternalErrorResponse(c, "Failed to fetch daily log")
		return
	}
	utils.SuccessResponse(c, log)
}

// GET /daily-log/weekly
func (h *DailyLogHandler) Weekly(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		utils.UnauthorizedResponse(c, "")
		return
	}

	logs, err := h.dailyLogService.Weekly(userID)
	if err != nil {
		utils.InternalErrorResponse(c, "Failed to fetch weekly logs")
		return
	}
	utils.SuccessResponse(c, logs)
}

// GET /daily-logs?startDate=&endDate=
func (h *DailyLogHandler) Range(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		utils.UnauthorizedResponse(c, "")
		return
	}

	start, end, err := parseDateRange(c, 7)
	if err != nil {
		utils.BadRequestResponse(c, err.Error(), nil)
		return
	}

	logs, err := h.dailyLogService.Range(userID, start, end)
	if err != nil {
		utils.InternalErrorResponse(c, "Failed to fetch logs")
		return
	}
	utils.SuccessResponse(c, logs)
}

// GET /daily-progress?date=
func (h *DailyLogHandler) Progress(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		utils.UnauthorizedResponse(c, "")
		return
	}

	date := time.Now()
	if raw := c.Query("date"); raw != "" {
		parsed, err := time.Parse("2006-01-02", raw)
		if err != nil {
			utils.BadRequestResponse(c, "Invalid date, expected YYYY-MM-DD", nil)
			return
		}
		date = parsed
	}

	progress, err := h.dailyLogService.Progress(userID, date)
	if err != nil {
		utils.InternalErrorResponse(c, "Failed to fetch progress")
		return
	}
	utils.SuccessResponse(c, progress)
}

// GET /daily-log/:category?date=|startDate=&endDate=
func (h *DailyLogHandler) CategoryHistory(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		utils.UnauthorizedResponse(c, "")
		return
	}

	category, ok := models.ParseCategory(c.Param("category"))
	if !ok {
		utils.BadRequestResponse(c, "Unknown category", nil)
		return
	}

	var start, end time.Time
	if raw := c.Query("date"); raw != "" {
		parsed, err := time.Parse("2006-01-02", raw)
		if err != nil {
			utils.BadRequestResponse(c, "Invalid date, expected YYYY-MM-DD", nil)
			return
		}
		start, end = parsed, parsed
	} else {
		var err error
		start, end, err = parseDateRange(c, 7)
		if err != nil {
			utils.BadRequestResponse(c, err.Error(), nil)
			return
		}
	}

	entries, err := h.dailyLogService.CategoryHistory(userID, category, start, end)
	if err != nil {
		utils.InternalErrorResponse(c, "Failed to fetch history")
		return
	}
	utils.SuccessResponse(c, entries)
}

// parseDateRange reads startDate/endDate query params; absent ones default to
// the trailing windowDays window ending today.
func parseDateRange(c *gin.Context, windowDays int) (time.Time, time.Time, error) {
	end := time.Now()
	start := end.AddDate(0, 0, -(windowDays - 1))

	if raw := c.Query("startDate"); raw != "" {
		parsed, err := time.Parse("2006-01-02", raw)
		if err != nil {
			return time.Time{}, time.Time{}, errInvalidDate("startDate")
		}
		start = parsed
	}
	if raw := c.Query("endDate"); raw != "" {
		parsed, err := time.Parse("2006-01-02", raw)
		if err != nil {
			return time.Time{}, time.Time{}, errInvalidDate("endDate")
		}
		end = parsed
	}
	if start.After(end) {
		return time.Time{}, time.Time{}, errors.New("startDate must not be after endDate")
	}
	return start, end, nil
}

func errInvalidDate(field string) error {
	return errors.New("Invalid " + field + ", expected YYYY-MM-DD")
}
