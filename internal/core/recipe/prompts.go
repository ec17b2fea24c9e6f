package recipe

import (
	"fmt"

	"lazyfood/internal/pkg/common"
)

// Prompts are in Spanish end to end: the product serves Spanish-speaking
// users and the parsers expect Spanish JSON keys back.

// BuildRecipePrompt asks for count recipe candidates as a JSON array of
// metadata objects. Steps are requested separately per recipe.
func BuildRecipePrompt(count int, pantry []string, prefs common.Preferences, skillLevel int) string {
	return fmt.Sprintf(`
Eres un chef experto y nutricionista. Genera %d recetas de cocina personalizadas en español.

CONTEXTO:
- Ingredientes disponibles: %s
- Dieta: %s
- Alergias: %s
- Gustos: %s
- Nivel de cocina: %s

INSTRUCCIONES ESTRICTAS:
1. Genera EXACTAMENTE %d recetas
2. Usa SOLO ingredientes de la lista disponible
3. Respeta las alergias y dieta
4. Adapta la dificultad al nivel de cocina
5. Devuelve SOLO JSON válido, sin texto adicional

FORMATO JSON REQUERIDO (array de objetos):
[
  {
    "nombre": "Nombre de la receta",
    "tiempo": minutos enteros,
    "calorias": calorías enteras por porción,
    "nivel": 1, 2 o 3 (fácil, medio, difícil),
    "razon": "Explicación breve de por qué se recomienda",
    "emoji": "un emoji representativo",
    "ingredientes": [
      {
        "nombre": "nombre ingrediente",
        "cantidad": cantidad numérica,
        "unidad": "unidad de medida",
        "emoji": "emoji del ingrediente",
        "en_inventario": true
      }
    ]
  }
]

IMPORTANTE:
- Para 'razon', explica brevemente: "Coincide X%% con tus ingredientes y es apta para [dieta]"
- Los tiempos de preparación deben ser realistas

RESPUESTA (SOLO JSON):
`,
		count,
		common.FormatPantry(pantry),
		common.DietOrDefault(prefs),
		common.FormatAllergies(prefs),
		common.FormatLikes(prefs),
		common.SkillLevelText(skillLevel),
		count,
	)
}

// BuildStepsPrompt asks for the cooking steps of one known recipe as a JSON
// array, capped at maxSteps.
func BuildStepsPrompt(recipe common.CatalogRecipe, ingredients []string, prefs common.Preferences, skillLevel int, maxSteps int) string {
	timeLine := "realista"
	if recipe.PrepTimeMinutes != nil {
		timeLine = fmt.Sprintf("%d minutos en total", *recipe.PrepTimeMinutes)
	}

	return fmt.Sprintf(`
Eres un chef experto. Genera los pasos de preparación de la receta "%s" en español.

CONTEXTO:
- Ingredientes: %s
- Dieta: %s
- Alergias: %s
- Nivel de dificultad de la receta: %d
- Nivel de cocina del usuario: %s
- Tiempo de preparación: %s

INSTRUCCIONES ESTRICTAS:
1. Los pasos deben ser claros, secuenciales y completos
2. Numera los pasos consecutivamente a partir de 1
3. Incluye un temporizador en segundos cuando el paso requiera esperar
4. Máximo %d pasos
5. Respeta las alergias y dieta del usuario
6. Devuelve SOLO JSON válido, sin texto adicional

FORMATO JSON REQUERIDO (array de objetos):
[
  {
    "n": número de paso,
    "instruccion": "Instrucción clara",
    "timer": segundos o null
  }
]

RESPUESTA (SOLO JSON):
`,
		recipe.Name,
		common.FormatPantry(ingredients),
		common.DietOrDefault(prefs),
		common.FormatAllergies(prefs),
		recipe.Difficulty,
		common.SkillLevelText(skillLevel),
		timeLine,
		maxSteps,
	)
}
