package recipe

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"lazyfood/internal/api/handlers"
	recipeService "lazyfood/internal/core/recipe"
	"lazyfood/internal/pkg/common"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// StepsNotSavedWarning annotates a steps response whose rows could not be
// persisted. The steps themselves are still usable.
const StepsNotSavedWarning = "No se pudieron guardar los pasos en la base de datos"

// Handler serves the recipe recommendation and cooking-steps endpoints.
type Handler struct {
	recommendations *recipeService.RecommendationService
	steps           *recipeService.StepService
}

// NewHandler creates the recipe handler.
func NewHandler(recommendations *recipeService.RecommendationService, steps *recipeService.StepService) *Handler {
	return &Handler{
		recommendations: recommendations,
		steps:           steps,
	}
}

type recommendRequest struct {
	UserID      string             `json:"usuario_id"`
	Count       int                `json:"cantidad"`
	Pantry      []string           `json:"ingredientes"`
	Preferences common.Preferences `json:"preferencias"`
	SkillLevel  int                `json:"nivel_cocina"`
}

type stepsRequest struct {
	Ingredients []string           `json:"ingredientes"`
	Preferences common.Preferences `json:"preferencias"`
	SkillLevel  int                `json:"nivel_cocina"`
	MaxSteps    int                `json:"max_pasos"`
}

// HandleRecommend generates recipe candidates from the caller's pantry.
// POST /api/v1/recipes/recommend
func (h *Handler) HandleRecommend(c *gin.Context) {
	var req recommendRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handlers.WriteError(c, common.NewValidationError("invalid request body: "+err.Error()))
		return
	}

	recipes, err := h.recommendations.GenerateRecipeCandidates(
		c.Request.Context(), userOrAnonymous(req.UserID), req.Count, req.Pantry, req.Preferences, req.SkillLevel)
	if err != nil {
		common.LogError("recommendation failed",
			zap.String("user_id", req.UserID),
			zap.Error(err))
		handlers.WriteError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"recetas": recipes})
}

// HandleGenerateSteps generates and stores cooking steps for a recipe.
// POST /api/v1/recipes/:id/steps
func (h *Handler) HandleGenerateSteps(c *gin.Context) {
	recipeID, err := recipeIDParam(c)
	if err != nil {
		handlers.WriteError(c, err)
		return
	}

	// The body is optional; an absent one means default skill level.
	var req stepsRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			handlers.WriteError(c, common.NewValidationError("invalid request body: "+err.Error()))
			return
		}
	}

	steps, err := h.steps.GenerateSteps(c.Request.Context(), recipeID, req.Ingredients, req.Preferences, req.SkillLevel, req.MaxSteps)
	if err != nil {
		// Generation succeeded but the save did not: the caller still gets
		// the steps, flagged with a warning.
		if errors.Is(err, common.ErrStepsNotSaved) {
			c.JSON(http.StatusOK, gin.H{
				"receta_id": recipeID,
				"pasos":     steps,
				"warning":   StepsNotSavedWarning,
			})
			return
		}
		common.LogError("step generation failed",
			zap.Int64("recipe_id", recipeID),
			zap.Error(err))
		handlers.WriteError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"receta_id": recipeID,
		"pasos":     steps,
	})
}

// HandleSteps returns the stored steps of a recipe.
// GET /api/v1/recipes/:id/steps
func (h *Handler) HandleSteps(c *gin.Context) {
	recipeID, err := recipeIDParam(c)
	if err != nil {
		handlers.WriteError(c, err)
		return
	}

	steps, err := h.steps.Steps(c.Request.Context(), recipeID)
	if err != nil {
		handlers.WriteError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"receta_id": recipeID,
		"pasos":     steps,
	})
}

// HandleHistory returns the user's recent recommendation history.
// GET /api/v1/recipes/history?usuario_id=...&limite=10
func (h *Handler) HandleHistory(c *gin.Context) {
	userID := userOrAnonymous(c.Query("usuario_id"))

	limit := 0
	if raw := c.Query("limite"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 {
			handlers.WriteError(c, common.NewValidationError("limite must be a non-negative integer"))
			return
		}
		limit = parsed
	}

	history, err := h.recommendations.History(c.Request.Context(), userID, limit)
	if err != nil {
		handlers.WriteError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"usuario_id":  userID,
		"sugerencias": history,
	})
}

func recipeIDParam(c *gin.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, common.NewValidationError("recipe id must be a positive integer")
	}
	return id, nil
}

func userOrAnonymous(userID string) string {
	if strings.TrimSpace(userID) == "" {
		return "anonimo"
	}
	return userID
}
