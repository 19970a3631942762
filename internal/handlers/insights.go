// internal/handlers/insights.go
package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/Abhi-Verma2005/healthBackend/internal/services"
	"github.com/Abhi-Verma2005/healthBackend/internal/utils"
)

type InsightHandler struct {
	insightService *services.InsightService
}

func NewInsightHandler(insightService *services.InsightService) *InsightHandler {
	return &InsightHandler{
		insightService: insightService,
	}
}

// GET /health-scores?days=N
func (h *InsightHandler) HealthScores(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		utils.UnauthorizedResponse(c, "")
		return
	}

	days := 7
	if raw := c.Query("days"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 || parsed > 365 {
			utils.BadRequestResponse(c, "days must be a number between 1 and 365", nil)
			return
		}
		days = parsed
	}

	points, err := h.insightService.HealthScores(userID, days)
	if err != nil {
		utils.InternalErrorResponse(c, "Failed to fetch health scores")
		return
	}
	utils.SuccessResponse(c, points)
}

// GET /health-insights
func (h *InsightHandler) HealthInsights(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		utils.UnauthorizedResponse(c, "")
		return
	}

	insights, err := h.insightService.HealthInsights(userID)
	if err != nil {
		utils.InternalErrorResponse(c, "Failed to fetch health insights")
		return
	}
	utils.SuccessResponse(c, insights)
}
