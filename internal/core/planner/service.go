package planner

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"

	"lazyfood/internal/core/catalog"
	"lazyfood/internal/core/pipeline"
	"lazyfood/internal/infrastructure/config"
	"lazyfood/internal/pkg/common"

	"go.uber.org/zap"
)

const dateLayout = "2006-01-02"

// PlanPersistWarning annotates a returned plan whose rows could not be saved.
const PlanPersistWarning = "No se pudo guardar la planificación en la base de datos"

var embeddedDatePattern = regexp.MustCompile(`\d{4}-\d{2}-\d{2}`)

// ModelCaller is the outbound model boundary of the planning flow.
type ModelCaller interface {
	Generate(ctx context.Context, prompt string, maxOutputTokens int) (any, error)
}

// PlanningService turns candidate recipes into a persisted 7-day meal plan.
type PlanningService struct {
	model ModelCaller
	store catalog.Store
	cfg   *config.Config
}

// NewPlanningService wires the planning flow.
func NewPlanningService(model ModelCaller, store catalog.Store, cfg *config.Config) *PlanningService {
	return &PlanningService{model: model, store: store, cfg: cfg}
}

// GenerateWeeklyPlan produces a structurally complete 7-day, 3-slot plan
// anchored at weekStart. Every slot value the model emitted goes through the
// recipe-id resolver; unresolvable slots become null rather than failing the
// plan. A model or parse failure degrades to the deterministic cyclic default
// over the candidate ids. Persistence failure does not fail the operation:
// the plan comes back with a warning attached.
func (s *PlanningService) GenerateWeeklyPlan(ctx context.Context, userID string, weekStart string, pantry []string, prefs common.Preferences, skillLevel int, candidates []common.CatalogRecipe) (common.WeeklyPlan, error) {
	week := anchorWeek(weekStart)
	candidateIDs := make([]int64, 0, len(candidates))
	for _, recipe := range candidates {
		candidateIDs = append(candidateIDs, recipe.ID)
	}

	prompt := BuildPlanPrompt(pantry, prefs, skillLevel, candidates, week)
	resp, err := s.model.Generate(ctx, prompt, s.cfg.Gemini.MaxOutputTokens)
	if err != nil {
		common.LogError("model call failed, using default plan", zap.Error(err))
		return pipeline.DefaultWeeklyPlan(week, candidateIDs), nil
	}

	text := pipeline.ExtractText(resp)
	raw := pipeline.ParseWeeklyPlan(text)
	if raw == nil {
		common.LogWarn("no plan recoverable from model output, using default plan")
		return pipeline.DefaultWeeklyPlan(week, candidateIDs), nil
	}

	byID, byName, err := s.resolutionMaps(ctx, candidates)
	if err != nil {
		return common.WeeklyPlan{}, fmt.Errorf("load catalog for resolution: %w", err)
	}

	plan := s.resolvePlan(raw, week, byID, byName)

	if err := s.store.ReplacePlanWeek(ctx, userID, plan); err != nil {
		common.LogError("generated plan could not be saved",
			zap.String("week", plan.Week),
			zap.Error(err))
		plan.Warning = PlanPersistWarning
	}
	return plan, nil
}

// resolvePlan re-anchors whatever day keys the model used onto exactly seven
// consecutive dates from week start and resolves every slot. Days the model
// skipped, or slots that resolve to nothing, stay null.
func (s *PlanningService) resolvePlan(raw *pipeline.RawWeeklyPlan, week string, byID map[int64]string, byName map[string]int64) common.WeeklyPlan {
	days := normalizeDayKeys(raw.Days)

	start, err := time.Parse(dateLayout, week)
	if err != nil {
		start = time.Now()
	}

	plan := common.WeeklyPlan{
		Week: start.Format(dateLayout),
		Days: make(map[string]common.DayMeals, 7),
	}
	for day := 0; day < 7; day++ {
		date := start.AddDate(0, 0, day).Format(dateLayout)
		slots := days[date]
		plan.Days[date] = common.DayMeals{
			Breakfast: ResolveRecipeID(slotValue(slots, "desayuno", "breakfast"), byID, byName),
			Lunch:     ResolveRecipeID(slotValue(slots, "almuerzo", "lunch"), byID, byName),
			Dinner:    ResolveRecipeID(slotValue(slots, "cena", "dinner"), byID, byName),
		}
	}
	return plan
}

// normalizeDayKeys keeps only keys carrying a YYYY-MM-DD date, extracting it
// from decorated keys like "lunes 2025-12-01".
func normalizeDayKeys(days map[string]map[string]any) map[string]map[string]any {
	normalized := make(map[string]map[string]any, len(days))
	for key, slots := range days {
		date := strings.TrimSpace(key)
		if _, err := time.Parse(dateLayout, date); err != nil {
			date = embeddedDatePattern.FindString(key)
			if date == "" {
				common.LogDebug("ignoring unparsable plan day key", zap.String("key", key))
				continue
			}
		}
		normalized[date] = slots
	}
	return normalized
}

func slotValue(slots map[string]any, keys ...string) any {
	for _, key := range keys {
		if v, ok := slots[key]; ok {
			return v
		}
	}
	return nil
}

// resolutionMaps builds the id set from the whole catalog and the name map
// from the candidate list only, so free-text names bind to recipes the model
// was actually offered.
func (s *PlanningService) resolutionMaps(ctx context.Context, candidates []common.CatalogRecipe) (map[int64]string, map[string]int64, error) {
	recipes, err := s.store.Recipes(ctx)
	if err != nil {
		return nil, nil, err
	}

	byID := make(map[int64]string, len(recipes))
	for _, recipe := range recipes {
		byID[recipe.ID] = recipe.Name
	}

	byName := make(map[string]int64, len(candidates))
	for _, recipe := range candidates {
		byName[strings.ToLower(strings.TrimSpace(recipe.Name))] = recipe.ID
	}
	return byID, byName, nil
}

// CandidateRecipes gathers the plan's candidate set from the user's recent
// suggestions, falling back to the whole catalog for users without history.
func (s *PlanningService) CandidateRecipes(ctx context.Context, userID string) ([]common.CatalogRecipe, error) {
	suggestions, err := s.store.RecentSuggestions(ctx, userID, maxPromptCandidates)
	if err != nil {
		return nil, fmt.Errorf("load suggestions: %w", err)
	}

	seen := make(map[int64]bool, len(suggestions))
	candidates := make([]common.CatalogRecipe, 0, len(suggestions))
	for _, suggestion := range suggestions {
		if seen[suggestion.RecipeID] {
			continue
		}
		seen[suggestion.RecipeID] = true

		recipe, err := s.store.RecipeByID(ctx, suggestion.RecipeID)
		if err != nil {
			return nil, fmt.Errorf("load recipe %d: %w", suggestion.RecipeID, err)
		}
		if recipe != nil {
			candidates = append(candidates, *recipe)
		}
	}

	if len(candidates) > 0 {
		return candidates, nil
	}
	return s.store.Recipes(ctx)
}

// Plan reads a stored week back; nil when nothing is stored for it.
func (s *PlanningService) Plan(ctx context.Context, userID string, week string) (*common.WeeklyPlan, error) {
	return s.store.PlanWeek(ctx, userID, week)
}

func anchorWeek(weekStart string) string {
	if _, err := time.Parse(dateLayout, weekStart); err != nil {
		common.LogWarn("unparsable week start date, using today", zap.String("week_start", weekStart))
		return time.Now().Format(dateLayout)
	}
	return weekStart
}
