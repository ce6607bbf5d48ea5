package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"finpet/internal/services"
)

// InsightHandler handles budget and insight requests.
type InsightHandler struct {
	insightService services.InsightServicer
	auditService   services.AuditServicer
}

// NewInsightHandler creates a new InsightHandler.
func NewInsightHandler(insightService services.InsightServicer, auditService services.AuditServicer) *InsightHandler {
	return &InsightHandler{insightService: insightService, auditService: auditService}
}

// GetBudgetStatus returns the weekly wants budget status
// @Summary     Get budget status
// @Description Get the trailing week's wants spending against the weekly budget
// @Tags        insights
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Success     200 {object} services.WeeklyWantsStatus "Budget status"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /insights/budget [get]
func (h *InsightHandler) GetBudgetStatus(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	status, err := h.insightService.WeeklyWantsStatus(userID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, status)
}

// GetSummary returns spending trend and needs/wants split
// @Summary     Get spending summary
// @Description Get the week-over-week spending trend and the all-time needs/wants split
// @Tags        insights
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Success     200 {object} map[string]interface{} "Spending summary"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /insights/summary [get]
func (h *InsightHandler) GetSummary(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	trend, err := h.insightService.ExpenseTrend(userID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	ratio, err := h.insightService.NeedsWantsRatio(userID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"trend_percent": trend,
		"needs_wants":   ratio,
	})
}

// GetTips returns rule-based savings tips
// @Summary     Get savings tips
// @Description Get up to five savings tips derived from the trailing week's spending
// @Tags        insights
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Success     200 {object} map[string][]string "Tips"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /insights/tips [get]
func (h *InsightHandler) GetTips(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	tips, err := h.insightService.GenerateTips(userID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"tips": tips})
}

// ClaimBudgetReward claims the weekly under-budget reward
// @Summary     Claim budget reward
// @Description Claim XP for staying inside the weekly wants budget; staying under half also earns Budget Champion
// @Tags        insights
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Success     200 {object} services.BudgetRewardClaim "Reward claimed"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     409 {object} ErrorResponse "Budget already used up"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /insights/budget/claim [post]
func (h *InsightHandler) ClaimBudgetReward(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	claim, err := h.insightService.ClaimWeeklyBudgetReward(userID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "claim_budget_reward", "pet", userID, c.ClientIP(),
		map[string]interface{}{"xp_awarded": claim.XPAwarded})

	c.JSON(http.StatusOK, claim)
}
