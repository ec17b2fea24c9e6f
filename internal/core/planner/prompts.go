package planner

import (
	"fmt"
	"strings"

	"lazyfood/internal/pkg/common"
)

// maxPromptCandidates caps how many candidate recipes the plan prompt lists.
const maxPromptCandidates = 10

// BuildPlanPrompt asks for a 7-day meal plan assigning candidate recipe ids
// to the three daily slots.
func BuildPlanPrompt(pantry []string, prefs common.Preferences, skillLevel int, candidates []common.CatalogRecipe, weekStart string) string {
	if len(candidates) > maxPromptCandidates {
		candidates = candidates[:maxPromptCandidates]
	}

	var lines strings.Builder
	for _, recipe := range candidates {
		prepTime := "?"
		if recipe.PrepTimeMinutes != nil {
			prepTime = fmt.Sprintf("%d", *recipe.PrepTimeMinutes)
		}
		calories := "?"
		if recipe.Calories != nil {
			calories = fmt.Sprintf("%d", *recipe.Calories)
		}
		fmt.Fprintf(&lines, "- %s (ID: %d, Tiempo: %smin, Calorías: %s, Nivel: %d)\n",
			recipe.Name, recipe.ID, prepTime, calories, recipe.Difficulty)
	}

	return fmt.Sprintf(`
Eres un nutricionista y chef experto. Genera una planificación semanal de menús personalizada en español.

CONTEXTO DEL USUARIO:
- Ingredientes disponibles: %s
- Dieta: %s
- Alergias: %s
- Gustos: %s
- Nivel de cocina: %s
- Fecha de inicio de la semana: %s

RECETAS DISPONIBLES (usa estos IDs para asignar):
%s
INSTRUCCIONES ESTRICTAS:
1. Genera una planificación para 7 días completos (de lunes a domingo)
2. Incluye TRES comidas por día: 'desayuno', 'almuerzo', 'cena'
3. Usa PRINCIPALMENTE ingredientes de la lista disponible
4. Respeta ESTRICTAMENTE las alergias y dieta del usuario
5. Asigna recetas existentes por su ID cuando sea posible
6. Varía los menús para evitar repetir platos consecutivos
7. Devuelve SOLO JSON válido, sin texto adicional

FORMATO JSON REQUERIDO:
{
  "semana": "%s",
  "sugerencias": {
    "YYYY-MM-DD": {
      "desayuno": ID_RECETA_O_NULL,
      "almuerzo": ID_RECETA_O_NULL,
      "cena": ID_RECETA_O_NULL
    }
  }
}

REGLAS IMPORTANTES:
- Usa %s como primer día y calcula los 6 días siguientes
- Si no hay receta adecuada para una comida, usa null
- Considera que el desayuno suele ser más simple que almuerzo/cena

RESPUESTA (SOLO JSON, sin explicaciones):
`,
		common.FormatPantry(pantry),
		common.DietOrDefault(prefs),
		common.FormatAllergies(prefs),
		common.FormatLikes(prefs),
		common.SkillLevelText(skillLevel),
		weekStart,
		lines.String(),
		weekStart,
		weekStart,
	)
}
