package pipeline

import (
	"regexp"
	"strconv"
	"strings"

	"lazyfood/internal/pkg/common"
)

// Last-resort parsers for model output that never produced decodable JSON.
// Each heuristic is an independent regex so tightening one cannot regress
// another; they are deliberately permissive.

var (
	recipeBlockStartPattern = regexp.MustCompile(`(?i)^\s*(?:-\s*)?nombre\s*[:=]`)

	recipeNamePattern     = regexp.MustCompile(`(?i)nombre\s*[:=]\s*(.+)`)
	recipeTimePattern     = regexp.MustCompile(`(?i)tiempo\s*[:=]\s*(\d+)`)
	recipeCaloriesPattern = regexp.MustCompile(`(?i)calor[ií]as?\s*[:=]\s*(\d+)`)
	recipeLevelPattern    = regexp.MustCompile(`(?i)nivel\s*[:=]\s*(\d+)`)
	recipeEmojiPattern    = regexp.MustCompile(`(?i)emoji\s*[:=]\s*(\S+)`)
	recipeReasonPattern   = regexp.MustCompile(`(?i)raz[oó]n\s*[:=]\s*(.+)`)

	ingredientListPattern = regexp.MustCompile(`(?is)ingredientes\s*[:=]\s*(.+)`)
	ingredientItemPattern = regexp.MustCompile(`^\s*(\d+(?:\.\d+)?)\s*([a-zA-Z%]+)?\s+(.+)$`)

	// Single-block rescue when no "nombre:" line exists anywhere, e.g.
	// "Tortilla Española - tiempo: 20".
	looseRecipePattern = regexp.MustCompile(`([A-ZÁÉÍÓÚÑ][\wÁÉÍÓÚÑáéíóúñ' ]+?)\s*-\s*tiempo\s*[:=]\s*(\d+)`)

	stepLinePattern  = regexp.MustCompile(`(?i)^\s*(?:\d+\s*[.)]\s*|paso\s*\d+\s*:?\s*|-+\s*)(.*)$`)
	stepTimerPattern = regexp.MustCompile(`(?i)(\d+)\s*(segundos?|seg|secs?|s|minutos?|mins?|m)\b`)
)

// ParseRecipesPlaintext recovers recipe metadata from free-form text. Lines
// matching a "nombre:" prefix open a new block; subsequent lines belong to it.
// When no block opens at all, one loose "Name - tiempo: N" scan over the first
// lines is attempted before giving up.
func ParseRecipesPlaintext(text string) []common.RecipeMetadata {
	lines := strings.Split(text, "\n")

	var blocks [][]string
	for _, line := range lines {
		if recipeBlockStartPattern.MatchString(line) {
			blocks = append(blocks, []string{line})
			continue
		}
		if len(blocks) > 0 {
			blocks[len(blocks)-1] = append(blocks[len(blocks)-1], line)
		}
	}

	recipes := make([]common.RecipeMetadata, 0, len(blocks))
	for _, block := range blocks {
		if r, ok := recipeFromBlock(strings.Join(block, "\n")); ok {
			recipes = append(recipes, r)
		}
	}
	if len(recipes) > 0 {
		return recipes
	}

	return looseRecipeScan(lines)
}

func recipeFromBlock(block string) (common.RecipeMetadata, bool) {
	recipe := common.RecipeMetadata{
		Difficulty:  common.DefaultDifficulty,
		Emoji:       common.DefaultEmoji,
		Ingredients: []common.IngredientRef{},
	}

	m := recipeNamePattern.FindStringSubmatch(block)
	if m == nil {
		return recipe, false
	}
	recipe.Name = strings.TrimSpace(m[1])
	if recipe.Name == "" {
		recipe.Name = PlaceholderRecipeName
	}

	if m := recipeTimePattern.FindStringSubmatch(block); m != nil {
		if n, err := strconv.Atoi(m[1]); err == nil {
			recipe.PrepTimeMinutes = intPtr(n)
		}
	}
	if m := recipeCaloriesPattern.FindStringSubmatch(block); m != nil {
		if n, err := strconv.Atoi(m[1]); err == nil {
			recipe.Calories = intPtr(n)
		}
	}
	if m := recipeLevelPattern.FindStringSubmatch(block); m != nil {
		if n, err := strconv.Atoi(m[1]); err == nil {
			recipe.Difficulty = common.ClampDifficulty(n)
		}
	}
	if m := recipeEmojiPattern.FindStringSubmatch(block); m != nil {
		recipe.Emoji = m[1]
	}
	if m := recipeReasonPattern.FindStringSubmatch(block); m != nil {
		recipe.Reason = strings.TrimSpace(m[1])
	}
	if m := ingredientListPattern.FindStringSubmatch(block); m != nil {
		recipe.Ingredients = parseIngredientList(m[1])
	}

	return recipe, true
}

func parseIngredientList(list string) []common.IngredientRef {
	items := regexp.MustCompile(`[,;\n]`).Split(list, -1)
	ingredients := make([]common.IngredientRef, 0, len(items))

	for _, item := range items {
		item = strings.TrimSpace(item)
		if item == "" {
			continue
		}
		// The capture runs to the end of the block, so labeled lines that
		// follow the ingredient list leak in; drop anything that looks like
		// another field.
		if strings.ContainsAny(item, ":=") {
			continue
		}

		ing := common.IngredientRef{InPantry: true}
		if m := ingredientItemPattern.FindStringSubmatch(item); m != nil {
			qty, err := strconv.ParseFloat(m[1], 64)
			if err == nil {
				ing.Quantity = qty
			}
			ing.Unit = m[2]
			ing.Name = strings.TrimSpace(m[3])
		} else {
			ing.Name = item
		}
		ingredients = append(ingredients, ing)
	}
	return ingredients
}

func looseRecipeScan(lines []string) []common.RecipeMetadata {
	limit := len(lines)
	if limit > 40 {
		limit = 40
	}
	head := strings.Join(lines[:limit], "\n")

	m := looseRecipePattern.FindStringSubmatch(head)
	if m == nil {
		return nil
	}

	recipe := common.RecipeMetadata{
		Name:        strings.TrimSpace(m[1]),
		Difficulty:  common.DefaultDifficulty,
		Emoji:       common.DefaultEmoji,
		Ingredients: []common.IngredientRef{},
	}
	if n, err := strconv.Atoi(m[2]); err == nil {
		recipe.PrepTimeMinutes = intPtr(n)
	}
	return []common.RecipeMetadata{recipe}
}

// ParseStepsPlaintext recovers cooking steps from free-form text. A line
// opening with "1." / "2)" / "Paso N:" / a dash starts a new step; other
// lines extend the previous step's instruction. An inline duration on a step
// line becomes its timer, minutes converted to seconds. Numbers found in the
// text are discarded and steps are renumbered sequentially from 1.
func ParseStepsPlaintext(text string) []common.RecipeStep {
	var steps []common.RecipeStep

	for _, line := range strings.Split(text, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}
		// Leftover JSON debris from a failed structured parse.
		if strings.HasPrefix(trimmed, "[") || strings.HasPrefix(trimmed, "{") {
			continue
		}

		if m := stepLinePattern.FindStringSubmatch(trimmed); m != nil && strings.TrimSpace(m[1]) != "" {
			step := common.RecipeStep{Instruction: strings.TrimSpace(m[1])}
			step.TimerSeconds = extractTimerSeconds(trimmed)
			steps = append(steps, step)
			continue
		}

		if len(steps) > 0 {
			last := &steps[len(steps)-1]
			last.Instruction = strings.TrimSpace(last.Instruction + " " + trimmed)
			if last.TimerSeconds == nil {
				last.TimerSeconds = extractTimerSeconds(trimmed)
			}
		} else {
			steps = append(steps, common.RecipeStep{
				Instruction:  trimmed,
				TimerSeconds: extractTimerSeconds(trimmed),
			})
		}
	}

	kept := steps[:0]
	for _, step := range steps {
		if step.Instruction == "" {
			continue
		}
		kept = append(kept, step)
	}
	for i := range kept {
		kept[i].Number = intPtr(i + 1)
	}
	return kept
}

func extractTimerSeconds(line string) *int {
	m := stepTimerPattern.FindStringSubmatch(line)
	if m == nil {
		return nil
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		return nil
	}
	if strings.HasPrefix(strings.ToLower(m[2]), "m") {
		n *= 60
	}
	return intPtr(n)
}
