package recipe

import (
	"math"
	"strings"

	"lazyfood/internal/pkg/common"
)

// MatchPercent scores how much of a recipe the pantry covers: the share of
// recipe ingredients whose name contains, or is contained in, some pantry
// item name. Returned as 0..100 rounded to 2 decimals.
func MatchPercent(pantry []string, ingredients []common.IngredientRef) float64 {
	if len(ingredients) == 0 {
		return 0
	}

	pantryNorm := make([]string, 0, len(pantry))
	for _, item := range pantry {
		pantryNorm = append(pantryNorm, strings.ToLower(strings.TrimSpace(item)))
	}

	matched := 0
	for _, ing := range ingredients {
		name := strings.ToLower(strings.TrimSpace(ing.Name))
		if name == "" {
			continue
		}
		for _, item := range pantryNorm {
			if item == "" {
				continue
			}
			if strings.Contains(item, name) || strings.Contains(name, item) {
				matched++
				break
			}
		}
	}

	percent := float64(matched) / float64(len(ingredients)) * 100
	return math.Round(percent*100) / 100
}
