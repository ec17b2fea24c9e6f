package catalog

import (
	"context"
	"path/filepath"
	"testing"

	"lazyfood/internal/pkg/common"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intp(v int) *int       { return &v }
func int64p(v int64) *int64 { return &v }

// Both implementations must satisfy the same contract, so every case runs
// against both.
func runStoreTests(t *testing.T, open func(t *testing.T) Store) {
	ctx := context.Background()

	t.Run("ensure recipe dedups by name", func(t *testing.T) {
		store := open(t)
		defer store.Close()

		first, err := store.EnsureRecipe(ctx, common.RecipeMetadata{Name: "Paella", Difficulty: 2, Emoji: "🥘"})
		require.NoError(t, err)

		again, err := store.EnsureRecipe(ctx, common.RecipeMetadata{Name: "Paella", Difficulty: 3, Emoji: "🍚"})
		require.NoError(t, err)
		assert.Equal(t, first, again)

		other, err := store.EnsureRecipe(ctx, common.RecipeMetadata{Name: "Gazpacho", Difficulty: 1, Emoji: "🍅"})
		require.NoError(t, err)
		assert.NotEqual(t, first, other)

		recipes, err := store.Recipes(ctx)
		require.NoError(t, err)
		assert.Len(t, recipes, 2)
	})

	t.Run("recipe lookups", func(t *testing.T) {
		store := open(t)
		defer store.Close()

		id, err := store.EnsureRecipe(ctx, common.RecipeMetadata{
			Name: "Paella", PrepTimeMinutes: intp(60), Calories: intp(700), Difficulty: 3, Emoji: "🥘",
		})
		require.NoError(t, err)

		byID, err := store.RecipeByID(ctx, id)
		require.NoError(t, err)
		require.NotNil(t, byID)
		assert.Equal(t, "Paella", byID.Name)
		require.NotNil(t, byID.PrepTimeMinutes)
		assert.Equal(t, 60, *byID.PrepTimeMinutes)

		byName, err := store.FindRecipeByName(ctx, "Paella")
		require.NoError(t, err)
		require.NotNil(t, byName)
		assert.Equal(t, id, byName.ID)

		missing, err := store.RecipeByID(ctx, 9999)
		require.NoError(t, err)
		assert.Nil(t, missing)

		missing, err = store.FindRecipeByName(ctx, "Fabada")
		require.NoError(t, err)
		assert.Nil(t, missing)
	})

	t.Run("replace steps", func(t *testing.T) {
		store := open(t)
		defer store.Close()

		id, err := store.EnsureRecipe(ctx, common.RecipeMetadata{Name: "Paella", Difficulty: 3, Emoji: "🥘"})
		require.NoError(t, err)

		err = store.ReplaceSteps(ctx, id, []common.RecipeStep{
			{Number: intp(1), Instruction: "Sofreír el arroz", TimerSeconds: intp(120)},
			{Number: intp(2), Instruction: "Añadir el caldo"},
		})
		require.NoError(t, err)

		err = store.ReplaceSteps(ctx, id, []common.RecipeStep{
			{Number: intp(1), Instruction: "Versión nueva"},
		})
		require.NoError(t, err)

		steps, err := store.Steps(ctx, id)
		require.NoError(t, err)
		require.Len(t, steps, 1)
		assert.Equal(t, "Versión nueva", steps[0].Instruction)
		assert.Nil(t, steps[0].TimerSeconds)
	})

	t.Run("suggestion history newest first", func(t *testing.T) {
		store := open(t)
		defer store.Close()

		for i, name := range []string{"Paella", "Gazpacho", "Tortilla"} {
			err := store.SaveSuggestion(ctx, "user-1", common.Suggestion{
				RecipeID: int64(i + 1), RecipeName: name, MatchPercent: float64(i) * 10,
			})
			require.NoError(t, err)
		}
		err := store.SaveSuggestion(ctx, "user-2", common.Suggestion{RecipeID: 9, RecipeName: "Fabada"})
		require.NoError(t, err)

		recent, err := store.RecentSuggestions(ctx, "user-1", 2)
		require.NoError(t, err)
		require.Len(t, recent, 2)
		assert.Equal(t, "Tortilla", recent[0].RecipeName)
		assert.Equal(t, "Gazpacho", recent[1].RecipeName)
		assert.NotEmpty(t, recent[0].CreatedAt)
	})

	t.Run("plan week roundtrip and replacement", func(t *testing.T) {
		store := open(t)
		defer store.Close()

		plan := common.WeeklyPlan{
			Week: "2025-12-01",
			Days: map[string]common.DayMeals{
				"2025-12-01": {Breakfast: int64p(1), Lunch: int64p(2), Dinner: nil},
				"2025-12-02": {},
			},
		}
		require.NoError(t, store.ReplacePlanWeek(ctx, "user-1", plan))

		loaded, err := store.PlanWeek(ctx, "user-1", "2025-12-01")
		require.NoError(t, err)
		require.NotNil(t, loaded)
		assert.Equal(t, "2025-12-01", loaded.Week)
		require.Contains(t, loaded.Days, "2025-12-01")
		require.NotNil(t, loaded.Days["2025-12-01"].Breakfast)
		assert.Equal(t, int64(1), *loaded.Days["2025-12-01"].Breakfast)
		assert.Nil(t, loaded.Days["2025-12-01"].Dinner)
		assert.Nil(t, loaded.Days["2025-12-02"].Breakfast)

		replacement := common.WeeklyPlan{
			Week: "2025-12-01",
			Days: map[string]common.DayMeals{
				"2025-12-01": {Breakfast: int64p(5)},
			},
		}
		require.NoError(t, store.ReplacePlanWeek(ctx, "user-1", replacement))

		loaded, err = store.PlanWeek(ctx, "user-1", "2025-12-01")
		require.NoError(t, err)
		require.NotNil(t, loaded)
		assert.Len(t, loaded.Days, 1)
		assert.Equal(t, int64(5), *loaded.Days["2025-12-01"].Breakfast)

		none, err := store.PlanWeek(ctx, "user-1", "2026-01-05")
		require.NoError(t, err)
		assert.Nil(t, none)
	})
}

func TestMemoryStore(t *testing.T) {
	runStoreTests(t, func(t *testing.T) Store {
		return NewMemoryStore()
	})
}

func TestSQLiteStore(t *testing.T) {
	runStoreTests(t, func(t *testing.T) Store {
		store, err := NewSQLiteStore(filepath.Join(t.TempDir(), "catalog.db"))
		require.NoError(t, err)
		return store
	})
}
