package recipe

import (
	"context"
	"fmt"

	"lazyfood/internal/core/catalog"
	"lazyfood/internal/core/pipeline"
	"lazyfood/internal/infrastructure/config"
	"lazyfood/internal/pkg/common"

	"go.uber.org/zap"
)

// DefaultMaxSteps caps step generation when the caller does not say.
const DefaultMaxSteps = 20

// StepService generates and stores cooking steps for cataloged recipes.
type StepService struct {
	model ModelCaller
	store catalog.Store
	cfg   *config.Config
}

// NewStepService wires the steps flow.
func NewStepService(model ModelCaller, store catalog.Store, cfg *config.Config) *StepService {
	return &StepService{model: model, store: store, cfg: cfg}
}

// GenerateSteps asks the model for the recipe's preparation steps and
// replaces any stored ones. Unlike recommendations there is no default floor:
// a response with no recoverable steps yields an empty list, and a failed
// model call degrades the same way — callers read empty steps as "not yet
// available", never as an error. Previously stored steps stay untouched on
// that path. When generation succeeds but persistence fails, the steps are
// returned together with common.ErrStepsNotSaved so the caller can report
// partial success.
func (s *StepService) GenerateSteps(ctx context.Context, recipeID int64, ingredients []string, prefs common.Preferences, skillLevel int, maxSteps int) ([]common.RecipeStep, error) {
	recipe, err := s.store.RecipeByID(ctx, recipeID)
	if err != nil {
		return nil, fmt.Errorf("load recipe %d: %w", recipeID, err)
	}
	if recipe == nil {
		return nil, common.ErrNotFound
	}

	if maxSteps <= 0 {
		maxSteps = DefaultMaxSteps
	}

	prompt := BuildStepsPrompt(*recipe, ingredients, prefs, skillLevel, maxSteps)
	resp, err := s.model.Generate(ctx, prompt, s.cfg.Gemini.MaxOutputTokens)
	if err != nil {
		common.LogError("model call failed, steps unavailable",
			zap.Int64("recipe_id", recipeID),
			zap.Error(err))
		return []common.RecipeStep{}, nil
	}

	text := pipeline.ExtractText(resp)
	steps := pipeline.ParseSteps(text)
	if len(steps) == 0 {
		steps = pipeline.ParseStepsPlaintext(text)
		if len(steps) > 0 {
			common.LogWarn("structured step parse failed, recovered steps from plaintext",
				zap.Int64("recipe_id", recipeID),
				zap.Int("count", len(steps)))
		}
	}
	pipeline.NumberSteps(steps)

	if err := s.store.ReplaceSteps(ctx, recipeID, steps); err != nil {
		common.LogError("generated steps could not be saved",
			zap.Int64("recipe_id", recipeID),
			zap.Error(err))
		return steps, common.ErrStepsNotSaved
	}

	common.LogInfo("recipe steps generated",
		zap.Int64("recipe_id", recipeID),
		zap.Int("count", len(steps)),
	)
	return steps, nil
}

// Steps reads the stored steps of a recipe.
func (s *StepService) Steps(ctx context.Context, recipeID int64) ([]common.RecipeStep, error) {
	recipe, err := s.store.RecipeByID(ctx, recipeID)
	if err != nil {
		return nil, fmt.Errorf("load recipe %d: %w", recipeID, err)
	}
	if recipe == nil {
		return nil, common.ErrNotFound
	}
	return s.store.Steps(ctx, recipeID)
}
