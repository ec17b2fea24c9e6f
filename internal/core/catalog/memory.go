package catalog

import (
	"context"
	"sort"
	"sync"
	"time"

	"lazyfood/internal/pkg/common"
)

// MemoryStore keeps the catalog in process memory. Used by tests and by
// deployments that run without a database file.
type MemoryStore struct {
	mu          sync.RWMutex
	nextID      int64
	recipes     map[int64]common.CatalogRecipe
	nameIndex   map[string]int64
	steps       map[int64][]common.RecipeStep
	suggestions map[string][]common.Suggestion
	plans       map[string]common.WeeklyPlan
}

// NewMemoryStore creates an empty in-memory catalog.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		nextID:      1,
		recipes:     make(map[int64]common.CatalogRecipe),
		nameIndex:   make(map[string]int64),
		steps:       make(map[int64][]common.RecipeStep),
		suggestions: make(map[string][]common.Suggestion),
		plans:       make(map[string]common.WeeklyPlan),
	}
}

func (s *MemoryStore) EnsureRecipe(_ context.Context, recipe common.RecipeMetadata) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if id, ok := s.nameIndex[recipe.Name]; ok {
		return id, nil
	}

	id := s.nextID
	s.nextID++
	s.recipes[id] = common.CatalogRecipe{
		ID:              id,
		Name:            recipe.Name,
		PrepTimeMinutes: recipe.PrepTimeMinutes,
		Calories:        recipe.Calories,
		Difficulty:      recipe.Difficulty,
		Emoji:           recipe.Emoji,
	}
	s.nameIndex[recipe.Name] = id
	return id, nil
}

func (s *MemoryStore) RecipeByID(_ context.Context, id int64) (*common.CatalogRecipe, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	recipe, ok := s.recipes[id]
	if !ok {
		return nil, nil
	}
	return &recipe, nil
}

func (s *MemoryStore) FindRecipeByName(_ context.Context, name string) (*common.CatalogRecipe, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	id, ok := s.nameIndex[name]
	if !ok {
		return nil, nil
	}
	recipe := s.recipes[id]
	return &recipe, nil
}

func (s *MemoryStore) Recipes(_ context.Context) ([]common.CatalogRecipe, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	recipes := make([]common.CatalogRecipe, 0, len(s.recipes))
	for _, recipe := range s.recipes {
		recipes = append(recipes, recipe)
	}
	sort.Slice(recipes, func(i, j int) bool { return recipes[i].ID < recipes[j].ID })
	return recipes, nil
}

func (s *MemoryStore) ReplaceSteps(_ context.Context, recipeID int64, steps []common.RecipeStep) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	copied := make([]common.RecipeStep, len(steps))
	copy(copied, steps)
	s.steps[recipeID] = copied
	return nil
}

func (s *MemoryStore) Steps(_ context.Context, recipeID int64) ([]common.RecipeStep, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stored := s.steps[recipeID]
	steps := make([]common.RecipeStep, len(stored))
	copy(steps, stored)
	return steps, nil
}

func (s *MemoryStore) SaveSuggestion(_ context.Context, userID string, suggestion common.Suggestion) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if suggestion.CreatedAt == "" {
		suggestion.CreatedAt = time.Now().Format(time.RFC3339)
	}
	s.suggestions[userID] = append(s.suggestions[userID], suggestion)
	return nil
}

func (s *MemoryStore) RecentSuggestions(_ context.Context, userID string, limit int) ([]common.Suggestion, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stored := s.suggestions[userID]
	recent := make([]common.Suggestion, 0, limit)
	for i := len(stored) - 1; i >= 0 && len(recent) < limit; i-- {
		recent = append(recent, stored[i])
	}
	return recent, nil
}

func (s *MemoryStore) ReplacePlanWeek(_ context.Context, userID string, plan common.WeeklyPlan) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	days := make(map[string]common.DayMeals, len(plan.Days))
	for date, meals := range plan.Days {
		days[date] = meals
	}
	s.plans[userID+"|"+plan.Week] = common.WeeklyPlan{Week: plan.Week, Days: days}
	return nil
}

func (s *MemoryStore) PlanWeek(_ context.Context, userID string, week string) (*common.WeeklyPlan, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	plan, ok := s.plans[userID+"|"+week]
	if !ok {
		return nil, nil
	}

	days := make(map[string]common.DayMeals, len(plan.Days))
	for date, meals := range plan.Days {
		days[date] = meals
	}
	return &common.WeeklyPlan{Week: plan.Week, Days: days}, nil
}

func (s *MemoryStore) Close() error {
	return nil
}
