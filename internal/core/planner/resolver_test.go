package planner

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	testByID   = map[int64]string{7: "Pasta Carbonara", 12: "Gazpacho"}
	testByName = map[string]int64{"pasta carbonara": 7, "gazpacho": 12}
)

func resolve(t *testing.T, raw any) *int64 {
	t.Helper()
	return ResolveRecipeID(raw, testByID, testByName)
}

func assertResolves(t *testing.T, raw any, want int64) {
	t.Helper()
	got := resolve(t, raw)
	require.NotNil(t, got)
	assert.Equal(t, want, *got)
}

func TestResolveRecipeIDNil(t *testing.T) {
	assert.Nil(t, resolve(t, nil))
}

func TestResolveRecipeIDNumbers(t *testing.T) {
	assertResolves(t, 7, 7)
	assertResolves(t, int64(12), 12)
	assertResolves(t, json.Number("7"), 7)
	assertResolves(t, float64(7), 7)

	assert.Nil(t, resolve(t, 99))
	assert.Nil(t, resolve(t, json.Number("99")))
}

func TestResolveRecipeIDNumericStrings(t *testing.T) {
	assertResolves(t, "7", 7)
	assertResolves(t, "  12  ", 12)
	assert.Nil(t, resolve(t, "99"))
}

func TestResolveRecipeIDPlaceholders(t *testing.T) {
	assertResolves(t, "ID_RECETA_7", 7)
	assertResolves(t, "receta_id_12", 12)
	assertResolves(t, "la receta 7 por favor", 7)

	assert.Nil(t, resolve(t, "ID_RECETA_99"))
}

func TestResolveRecipeIDNames(t *testing.T) {
	assertResolves(t, "Pasta Carbonara", 7)
	assertResolves(t, "GAZPACHO", 12)
	// Partial names bind via substring containment in either direction.
	assertResolves(t, "pasta", 7)
	assertResolves(t, "una pasta carbonara casera", 7)

	assert.Nil(t, resolve(t, "sopa de ajo"))
}

func TestResolveRecipeIDObjects(t *testing.T) {
	assertResolves(t, map[string]any{"id": json.Number("7")}, 7)
	assertResolves(t, map[string]any{"receta_id": "12"}, 12)
	assertResolves(t, map[string]any{"recipe_id": float64(7)}, 7)
	assertResolves(t, map[string]any{"nombre": "Gazpacho"}, 12)
	assertResolves(t, map[string]any{"name": "pasta"}, 7)

	// A bad id inside the object falls through to the name.
	assertResolves(t, map[string]any{"id": json.Number("99"), "nombre": "Gazpacho"}, 12)

	assert.Nil(t, resolve(t, map[string]any{"id": json.Number("99")}))
	assert.Nil(t, resolve(t, map[string]any{"otro": "campo"}))
}

func TestResolveRecipeIDUnsupportedShapes(t *testing.T) {
	assert.Nil(t, resolve(t, true))
	assert.Nil(t, resolve(t, []any{7}))
	assert.Nil(t, resolve(t, ""))
}
