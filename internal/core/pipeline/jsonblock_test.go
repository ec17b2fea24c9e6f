package pipeline

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractFirstJSONFencedBlock(t *testing.T) {
	text := "Aquí tienes las recetas:\n```json\n[{\"nombre\": \"Tacos\"}]\n```\n¡Buen provecho!"

	block, ok := ExtractFirstJSON(text)
	require.True(t, ok)
	assert.Equal(t, `[{"nombre": "Tacos"}]`, block)
}

func TestExtractFirstJSONFencedObject(t *testing.T) {
	text := "```json\n{\"semana\": \"2025-12-01\", \"sugerencias\": {}}\n```"

	block, ok := ExtractFirstJSON(text)
	require.True(t, ok)
	assert.Equal(t, `{"semana": "2025-12-01", "sugerencias": {}}`, block)
}

func TestExtractFirstJSONNestedArray(t *testing.T) {
	text := "prefix [[1,2],[3,[4,5]]] suffix"

	block, ok := ExtractFirstJSON(text)
	require.True(t, ok)
	assert.Equal(t, "[[1,2],[3,[4,5]]]", block)
}

func TestExtractFirstJSONArrayBeatsObject(t *testing.T) {
	text := `texto {"a": 1} más texto [1, 2, 3] final`

	block, ok := ExtractFirstJSON(text)
	require.True(t, ok)
	assert.Equal(t, "[1, 2, 3]", block)
}

func TestExtractFirstJSONObjectFallback(t *testing.T) {
	text := `la respuesta es {"a": {"b": 1}} y nada más`

	block, ok := ExtractFirstJSON(text)
	require.True(t, ok)
	assert.Equal(t, `{"a": {"b": 1}}`, block)
}

func TestExtractFirstJSONNone(t *testing.T) {
	_, ok := ExtractFirstJSON("no hay nada estructurado aquí")
	assert.False(t, ok)
}

func TestExtractFirstJSONUnbalanced(t *testing.T) {
	_, ok := ExtractFirstJSON(`[{"a": 1`)
	assert.False(t, ok)
}
