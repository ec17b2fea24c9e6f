package catalog

import (
	"context"

	"lazyfood/internal/pkg/common"
)

// Store is the persistence boundary of the pipeline. Recipe name is the
// dedup key: EnsureRecipe returns the existing row's id when a recipe with
// the same name is already stored.
type Store interface {
	// EnsureRecipe inserts the recipe if no row with the same name exists
	// and returns the catalog id either way.
	EnsureRecipe(ctx context.Context, recipe common.RecipeMetadata) (int64, error)

	// RecipeByID returns nil without error when the id is unknown.
	RecipeByID(ctx context.Context, id int64) (*common.CatalogRecipe, error)

	// FindRecipeByName matches on the exact stored name.
	FindRecipeByName(ctx context.Context, name string) (*common.CatalogRecipe, error)

	// Recipes returns every catalog row; the planner builds its resolution
	// maps from this.
	Recipes(ctx context.Context) ([]common.CatalogRecipe, error)

	// ReplaceSteps drops any stored steps for the recipe and saves the given
	// ones in order.
	ReplaceSteps(ctx context.Context, recipeID int64, steps []common.RecipeStep) error

	Steps(ctx context.Context, recipeID int64) ([]common.RecipeStep, error)

	// SaveSuggestion records one recommended recipe for a user.
	SaveSuggestion(ctx context.Context, userID string, suggestion common.Suggestion) error

	// RecentSuggestions returns the newest suggestions first, at most limit.
	RecentSuggestions(ctx context.Context, userID string, limit int) ([]common.Suggestion, error)

	// ReplacePlanWeek clears the user's rows for the plan's week and stores
	// the new assignments.
	ReplacePlanWeek(ctx context.Context, userID string, plan common.WeeklyPlan) error

	// PlanWeek reads a stored week back; nil when nothing is stored.
	PlanWeek(ctx context.Context, userID string, week string) (*common.WeeklyPlan, error)

	Close() error
}
