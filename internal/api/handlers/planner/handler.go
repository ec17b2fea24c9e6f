package planner

import (
	"net/http"
	"strings"

	"lazyfood/internal/api/handlers"
	plannerService "lazyfood/internal/core/planner"
	"lazyfood/internal/pkg/common"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Handler serves the weekly meal-planning endpoints.
type Handler struct {
	planning *plannerService.PlanningService
}

// NewHandler creates the planner handler.
func NewHandler(planning *plannerService.PlanningService) *Handler {
	return &Handler{planning: planning}
}

type suggestRequest struct {
	UserID      string             `json:"usuario_id"`
	WeekStart   string             `json:"semana"`
	Pantry      []string           `json:"ingredientes"`
	Preferences common.Preferences `json:"preferencias"`
	SkillLevel  int                `json:"nivel_cocina"`
}

// HandleSuggest generates and stores a 7-day meal plan for the user.
// POST /api/v1/planner/suggest
func (h *Handler) HandleSuggest(c *gin.Context) {
	var req suggestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handlers.WriteError(c, common.NewValidationError("invalid request body: "+err.Error()))
		return
	}
	userID := userOrAnonymous(req.UserID)

	ctx := c.Request.Context()
	candidates, err := h.planning.CandidateRecipes(ctx, userID)
	if err != nil {
		common.LogError("loading plan candidates failed",
			zap.String("user_id", userID),
			zap.Error(err))
		handlers.WriteError(c, err)
		return
	}

	plan, err := h.planning.GenerateWeeklyPlan(ctx, userID, req.WeekStart, req.Pantry, req.Preferences, req.SkillLevel, candidates)
	if err != nil {
		common.LogError("plan generation failed",
			zap.String("user_id", userID),
			zap.Error(err))
		handlers.WriteError(c, err)
		return
	}

	c.JSON(http.StatusOK, plan)
}

// HandlePlan returns the stored plan for a week.
// GET /api/v1/planner/plan?usuario_id=...&semana=YYYY-MM-DD
func (h *Handler) HandlePlan(c *gin.Context) {
	userID := userOrAnonymous(c.Query("usuario_id"))
	week := strings.TrimSpace(c.Query("semana"))
	if week == "" {
		handlers.WriteError(c, common.NewValidationError("semana query parameter is required"))
		return
	}

	plan, err := h.planning.Plan(c.Request.Context(), userID, week)
	if err != nil {
		handlers.WriteError(c, err)
		return
	}
	if plan == nil {
		handlers.WriteError(c, common.ErrNotFound)
		return
	}

	c.JSON(http.StatusOK, plan)
}

func userOrAnonymous(userID string) string {
	if strings.TrimSpace(userID) == "" {
		return "anonimo"
	}
	return userID
}
