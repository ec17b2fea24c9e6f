package pipeline

import (
	"testing"

	"lazyfood/internal/pkg/common"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRecipeArrayFullRecord(t *testing.T) {
	text := "```json\n" + `[
		{
			"nombre": "Tacos al Pastor",
			"tiempo": 45,
			"calorias": 520,
			"nivel": 2,
			"razon": "Usa el cerdo y la piña de tu despensa",
			"emoji": "🌮",
			"ingredientes": [
				{"nombre": "Cerdo", "cantidad": 500, "unidad": "g", "emoji": "🥩", "en_inventario": true},
				{"name": "Piña", "quantity": 0.5, "unit": "unidades", "en_inventario": false}
			]
		}
	]` + "\n```"

	recipes := ParseRecipeArray(text)
	require.Len(t, recipes, 1)

	r := recipes[0]
	assert.Equal(t, "Tacos al Pastor", r.Name)
	require.NotNil(t, r.PrepTimeMinutes)
	assert.Equal(t, 45, *r.PrepTimeMinutes)
	require.NotNil(t, r.Calories)
	assert.Equal(t, 520, *r.Calories)
	assert.Equal(t, 2, r.Difficulty)
	assert.Equal(t, "🌮", r.Emoji)

	require.Len(t, r.Ingredients, 2)
	assert.Equal(t, "Cerdo", r.Ingredients[0].Name)
	assert.Equal(t, 500.0, r.Ingredients[0].Quantity)
	assert.Equal(t, "g", r.Ingredients[0].Unit)
	assert.True(t, r.Ingredients[0].InPantry)
	assert.Equal(t, "Piña", r.Ingredients[1].Name)
	assert.Equal(t, 0.5, r.Ingredients[1].Quantity)
	assert.False(t, r.Ingredients[1].InPantry)
}

func TestParseRecipeArrayDefaults(t *testing.T) {
	recipes := ParseRecipeArray(`[{"nombre": "X"}]`)
	require.Len(t, recipes, 1)

	r := recipes[0]
	assert.Equal(t, "X", r.Name)
	assert.Nil(t, r.PrepTimeMinutes)
	assert.Nil(t, r.Calories)
	assert.Equal(t, common.DefaultDifficulty, r.Difficulty)
	assert.Equal(t, common.DefaultEmoji, r.Emoji)
	assert.Empty(t, r.Ingredients)
	assert.NotNil(t, r.Ingredients)
}

func TestParseRecipeArrayMissingName(t *testing.T) {
	recipes := ParseRecipeArray(`[{"tiempo": 10}]`)
	require.Len(t, recipes, 1)
	assert.Equal(t, PlaceholderRecipeName, recipes[0].Name)
}

func TestParseRecipeArrayOutOfRangeLevel(t *testing.T) {
	recipes := ParseRecipeArray(`[{"nombre": "X", "nivel": 7}]`)
	require.Len(t, recipes, 1)
	assert.Equal(t, common.DefaultDifficulty, recipes[0].Difficulty)
}

func TestParseRecipeArrayNumericStrings(t *testing.T) {
	recipes := ParseRecipeArray(`[{"nombre": "X", "tiempo": "30", "nivel": "3"}]`)
	require.Len(t, recipes, 1)
	require.NotNil(t, recipes[0].PrepTimeMinutes)
	assert.Equal(t, 30, *recipes[0].PrepTimeMinutes)
	assert.Equal(t, 3, recipes[0].Difficulty)
}

func TestParseRecipeArraySkipsNonObjectElements(t *testing.T) {
	recipes := ParseRecipeArray(`[{"nombre": "X"}, "basura", 7]`)
	assert.Len(t, recipes, 1)
}

func TestParseRecipeArrayNotAnArray(t *testing.T) {
	assert.Nil(t, ParseRecipeArray(`{"nombre": "X"}`))
}

func TestParseRecipeArrayNoJSON(t *testing.T) {
	assert.Nil(t, ParseRecipeArray("lo siento, no puedo generar recetas"))
}
