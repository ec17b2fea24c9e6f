package common

import (
	"fmt"
	"strings"
)

// Wire format note: the model is prompted in Spanish and answers with Spanish
// JSON keys (nombre, tiempo, calorias, ...). The public API keeps the same
// keys so that existing clients keep working.

const (
	// DefaultEmoji is used when the model omits a recipe emoji.
	DefaultEmoji = "🍽️"

	// DefaultDifficulty is the level assigned when the model omits one or
	// sends something outside 1..3.
	DefaultDifficulty = 1

	MinDifficulty = 1
	MaxDifficulty = 3
)

// RecipeMetadata is a normalized recipe as produced by the recommendation
// pipeline. ID is zero until the catalog assigns one.
type RecipeMetadata struct {
	ID              int64           `json:"id,omitempty"`
	Name            string          `json:"nombre"`
	PrepTimeMinutes *int            `json:"tiempo"`
	Calories        *int            `json:"calorias"`
	Difficulty      int             `json:"nivel"`
	Reason          string          `json:"razon"`
	Emoji           string          `json:"emoji"`
	Ingredients     []IngredientRef `json:"ingredientes"`
	MatchPercent    float64         `json:"porcentaje_coincidencia,omitempty"`
}

// IngredientRef is one ingredient line of a recipe.
type IngredientRef struct {
	Name     string  `json:"nombre"`
	Quantity float64 `json:"cantidad"`
	Unit     string  `json:"unidad"`
	Emoji    string  `json:"emoji,omitempty"`
	InPantry bool    `json:"en_inventario"`
}

// RecipeStep is one normalized cooking step. Number is nil when the model
// did not supply a usable value; callers assign sequential numbers before
// persisting.
type RecipeStep struct {
	Number       *int   `json:"n"`
	Instruction  string `json:"instruccion"`
	TimerSeconds *int   `json:"timer"`
}

// DayMeals holds the three meal slots of one plan day. A nil slot means no
// recipe was assigned.
type DayMeals struct {
	Breakfast *int64 `json:"desayuno"`
	Lunch     *int64 `json:"almuerzo"`
	Dinner    *int64 `json:"cena"`
}

// WeeklyPlan is a complete 7-day meal plan. Days always holds exactly seven
// consecutive dates (YYYY-MM-DD) starting at Week.
type WeeklyPlan struct {
	Week    string              `json:"semana"`
	Days    map[string]DayMeals `json:"sugerencias"`
	Warning string              `json:"warning,omitempty"`
}

// Preferences carries the dietary context for prompt building.
type Preferences struct {
	Diet      string   `json:"dieta"`
	Allergies []string `json:"alergias"`
	Likes     []string `json:"gustos"`
}

// CatalogRecipe is a persisted recipe row, used as a resolution target by
// the planner. The catalog owns it; the pipeline only reads it.
type CatalogRecipe struct {
	ID              int64  `json:"id"`
	Name            string `json:"nombre"`
	PrepTimeMinutes *int   `json:"tiempo"`
	Calories        *int   `json:"calorias"`
	Difficulty      int    `json:"nivel"`
	Emoji           string `json:"emoji"`
}

// Suggestion records one recommended recipe for a user.
type Suggestion struct {
	RecipeID     int64   `json:"receta_id"`
	RecipeName   string  `json:"nombre"`
	MatchPercent float64 `json:"porcentaje_coincidencia"`
	CreatedAt    string  `json:"fecha"`
}

// SkillLevelText maps a 1..3 skill level to the Spanish label used in
// prompts. Out-of-range values fall back to beginner.
func SkillLevelText(level int) string {
	switch level {
	case 2:
		return "intermedio"
	case 3:
		return "avanzado"
	default:
		return "principiante"
	}
}

// ClampDifficulty forces a difficulty level into the documented 1..3 range.
func ClampDifficulty(level int) int {
	if level < MinDifficulty || level > MaxDifficulty {
		return DefaultDifficulty
	}
	return level
}

// Clamp01 clamps confidence-style values into [0,1].
func Clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// FormatPantry renders pantry item names for a prompt.
func FormatPantry(items []string) string {
	if len(items) == 0 {
		return "ninguno"
	}
	return strings.Join(items, ", ")
}

// FormatIngredientRefs renders recipe ingredients for a prompt.
func FormatIngredientRefs(ingredients []IngredientRef) string {
	if len(ingredients) == 0 {
		return "ninguno"
	}
	parts := make([]string, 0, len(ingredients))
	for _, ing := range ingredients {
		part := ing.Name
		if ing.Quantity > 0 {
			part = fmt.Sprintf("%s (%g %s)", ing.Name, ing.Quantity, strings.TrimSpace(ing.Unit))
		}
		parts = append(parts, strings.TrimSpace(part))
	}
	return strings.Join(parts, ", ")
}

// FormatAllergies renders the allergy list for a prompt.
func FormatAllergies(prefs Preferences) string {
	if len(prefs.Allergies) == 0 {
		return "ninguna"
	}
	return strings.Join(prefs.Allergies, ", ")
}

// FormatLikes renders the likes list for a prompt.
func FormatLikes(prefs Preferences) string {
	if len(prefs.Likes) == 0 {
		return "ninguno"
	}
	return strings.Join(prefs.Likes, ", ")
}

// DietOrDefault returns the diet or the omnivore default used by prompts.
func DietOrDefault(prefs Preferences) string {
	if strings.TrimSpace(prefs.Diet) == "" {
		return "omnivoro"
	}
	return prefs.Diet
}
