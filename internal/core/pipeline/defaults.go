package pipeline

import (
	"time"

	"lazyfood/internal/pkg/common"

	"go.uber.org/zap"
)

const dateLayout = "2006-01-02"

// DefaultRecipes is the deterministic floor of the recommendation flow: a
// single basic recipe that needs no model output at all.
func DefaultRecipes() []common.RecipeMetadata {
	return []common.RecipeMetadata{
		{
			Name:            "Ensalada de Tomate",
			PrepTimeMinutes: intPtr(10),
			Calories:        intPtr(150),
			Difficulty:      1,
			Reason:          "Receta básica usando ingredientes disponibles",
			Emoji:           "🥗",
			Ingredients: []common.IngredientRef{
				{Name: "Tomate", Quantity: 2, Unit: "unidades", Emoji: "🍅", InPantry: true},
				{Name: "Aceite de Oliva", Quantity: 1, Unit: "cucharada", Emoji: "🫗", InPantry: true},
			},
		},
	}
}

// DefaultWeeklyPlan builds a structurally complete 7-day plan by cycling the
// given recipe ids across the 21 meal slots. An empty id list yields all-null
// slots; an unparsable start date is replaced by today.
func DefaultWeeklyPlan(weekStart string, recipeIDs []int64) common.WeeklyPlan {
	start, err := time.Parse(dateLayout, weekStart)
	if err != nil {
		common.LogWarn("unparsable week start date, using today",
			zap.String("week_start", weekStart), zap.Error(err))
		start = time.Now()
	}

	plan := common.WeeklyPlan{
		Week: start.Format(dateLayout),
		Days: make(map[string]common.DayMeals, 7),
	}

	for day := 0; day < 7; day++ {
		date := start.AddDate(0, 0, day).Format(dateLayout)
		plan.Days[date] = common.DayMeals{
			Breakfast: cycledID(recipeIDs, day*3+0),
			Lunch:     cycledID(recipeIDs, day*3+1),
			Dinner:    cycledID(recipeIDs, day*3+2),
		}
	}
	return plan
}

func cycledID(ids []int64, slot int) *int64 {
	if len(ids) == 0 {
		return nil
	}
	id := ids[slot%len(ids)]
	return &id
}
