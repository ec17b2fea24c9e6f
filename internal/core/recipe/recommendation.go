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

const (
	// MinRecipeCount..MaxRecipeCount bound how many candidates one request
	// may ask the model for.
	MinRecipeCount = 1
	MaxRecipeCount = 20
)

// ModelCaller is the outbound model boundary. The AI service implements it;
// tests substitute a fake.
type ModelCaller interface {
	Generate(ctx context.Context, prompt string, maxOutputTokens int) (any, error)
}

// RecommendationService produces recipe candidates from pantry contents and
// preferences, normalizes whatever the model returns, and persists the
// results.
type RecommendationService struct {
	model ModelCaller
	store catalog.Store
	cfg   *config.Config
}

// NewRecommendationService wires the recommendation flow.
func NewRecommendationService(model ModelCaller, store catalog.Store, cfg *config.Config) *RecommendationService {
	return &RecommendationService{model: model, store: store, cfg: cfg}
}

// GenerateRecipeCandidates runs the full recommendation pipeline. It always
// produces at least one recipe: structured parse, one enlarged-budget retry
// when the first response was truncated, plaintext fallback, then the
// deterministic default. Every returned recipe has a catalog id and a
// pantry-match percentage, and is recorded in the user's suggestion history.
func (s *RecommendationService) GenerateRecipeCandidates(ctx context.Context, userID string, count int, pantry []string, prefs common.Preferences, skillLevel int) ([]common.RecipeMetadata, error) {
	count = clampCount(count)
	prompt := BuildRecipePrompt(count, pantry, prefs, skillLevel)

	recipes := s.generateWithFallbacks(ctx, prompt)

	for i := range recipes {
		recipes[i].MatchPercent = MatchPercent(pantry, recipes[i].Ingredients)
		if recipes[i].Reason == "" {
			recipes[i].Reason = fmt.Sprintf("Coincide %.0f%% con tus ingredientes disponibles", recipes[i].MatchPercent)
		}

		id, err := s.store.EnsureRecipe(ctx, recipes[i])
		if err != nil {
			return nil, fmt.Errorf("persist recipe %q: %w", recipes[i].Name, err)
		}
		recipes[i].ID = id

		if err := s.store.SaveSuggestion(ctx, userID, common.Suggestion{
			RecipeID:     id,
			RecipeName:   recipes[i].Name,
			MatchPercent: recipes[i].MatchPercent,
		}); err != nil {
			return nil, fmt.Errorf("record suggestion for recipe %q: %w", recipes[i].Name, err)
		}
	}

	common.LogInfo("recipe candidates generated",
		zap.Int("requested", count),
		zap.Int("returned", len(recipes)),
	)
	return recipes, nil
}

// generateWithFallbacks walks the degradation ladder and never returns an
// empty slice.
func (s *RecommendationService) generateWithFallbacks(ctx context.Context, prompt string) []common.RecipeMetadata {
	resp, err := s.model.Generate(ctx, prompt, s.cfg.Gemini.MaxOutputTokens)
	if err != nil {
		common.LogError("model call failed, using default recipes", zap.Error(err))
		return pipeline.DefaultRecipes()
	}

	text := pipeline.ExtractText(resp)
	recipes := pipeline.ParseRecipeArray(text)
	if len(recipes) > 0 {
		return recipes
	}

	if pipeline.IsTruncated(resp, text) {
		common.LogWarn("model response truncated, retrying with larger budget",
			zap.Int("retry_max_output_tokens", s.cfg.Gemini.RetryMaxOutputTokens))

		if retryResp, err := s.model.Generate(ctx, prompt, s.cfg.Gemini.RetryMaxOutputTokens); err == nil {
			text = pipeline.ExtractText(retryResp)
			if recipes := pipeline.ParseRecipeArray(text); len(recipes) > 0 {
				return recipes
			}
		} else {
			common.LogError("truncation retry failed", zap.Error(err))
		}
	}

	if recipes := pipeline.ParseRecipesPlaintext(text); len(recipes) > 0 {
		common.LogWarn("structured parse failed, recovered recipes from plaintext",
			zap.Int("count", len(recipes)))
		return recipes
	}

	common.LogWarn("no recipes recoverable from model output, using defaults")
	return pipeline.DefaultRecipes()
}

// History returns the user's most recent suggestions, newest first.
func (s *RecommendationService) History(ctx context.Context, userID string, limit int) ([]common.Suggestion, error) {
	if limit <= 0 {
		limit = 10
	}
	return s.store.RecentSuggestions(ctx, userID, limit)
}

func clampCount(count int) int {
	if count < MinRecipeCount {
		return MinRecipeCount
	}
	if count > MaxRecipeCount {
		return MaxRecipeCount
	}
	return count
}
