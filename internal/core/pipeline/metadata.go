package pipeline

import (
	"lazyfood/internal/pkg/common"

	"go.uber.org/zap"
)

// PlaceholderRecipeName is assigned when the model omits a recipe name.
const PlaceholderRecipeName = "Sin nombre"

// ParseRecipeArray extracts the first JSON array from text and normalizes it
// into recipe metadata records. Returns nil when no array can be decoded;
// individual bad fields are defaulted, never fatal for the whole recipe.
func ParseRecipeArray(text string) []common.RecipeMetadata {
	block, ok := ExtractFirstJSON(text)
	if !ok {
		return nil
	}

	var raw []any
	if err := common.ParseJSON(block, &raw); err != nil {
		common.LogDebug("recipe array decode failed", zap.Error(err), zap.Int("block_length", len(block)))
		return nil
	}

	recipes := make([]common.RecipeMetadata, 0, len(raw))
	for _, item := range raw {
		entry, ok := item.(map[string]any)
		if !ok {
			continue
		}
		recipes = append(recipes, normalizeRecipe(entry))
	}
	return recipes
}

func normalizeRecipe(entry map[string]any) common.RecipeMetadata {
	recipe := common.RecipeMetadata{
		Difficulty: common.DefaultDifficulty,
		Emoji:      common.DefaultEmoji,
	}

	if name, ok := asString(entry["nombre"]); ok && name != "" {
		recipe.Name = name
	} else {
		recipe.Name = PlaceholderRecipeName
	}

	recipe.PrepTimeMinutes = asIntPtr(entry["tiempo"])
	recipe.Calories = asIntPtr(entry["calorias"])

	if level, ok := asInt(entry["nivel"]); ok {
		recipe.Difficulty = common.ClampDifficulty(level)
	}
	if reason, ok := asString(entry["razon"]); ok {
		recipe.Reason = reason
	}
	if emoji, ok := asString(entry["emoji"]); ok && emoji != "" {
		recipe.Emoji = emoji
	}

	recipe.Ingredients = normalizeIngredients(entry["ingredientes"])
	return recipe
}

func normalizeIngredients(v any) []common.IngredientRef {
	list, ok := v.([]any)
	if !ok {
		return []common.IngredientRef{}
	}

	ingredients := make([]common.IngredientRef, 0, len(list))
	for _, item := range list {
		entry, ok := item.(map[string]any)
		if !ok {
			continue
		}

		ing := common.IngredientRef{InPantry: true}
		if name, ok := firstKey(entry, "nombre", "name"); ok {
			ing.Name, _ = asString(name)
		}
		if qty, ok := firstKey(entry, "cantidad", "quantity"); ok {
			if f, ok := asFloat(qty); ok {
				ing.Quantity = f
			}
		}
		if unit, ok := firstKey(entry, "unidad", "unit"); ok {
			ing.Unit, _ = asString(unit)
		}
		if emoji, ok := asString(entry["emoji"]); ok {
			ing.Emoji = emoji
		}
		if flag, ok := entry["en_inventario"]; ok {
			ing.InPantry = asBool(flag, true)
		}

		ingredients = append(ingredients, ing)
	}
	return ingredients
}
