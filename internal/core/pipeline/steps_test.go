package pipeline

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseStepsOrderingAndFiltering(t *testing.T) {
	text := `[
		{"n": 3, "instruccion": "Servir caliente"},
		{"instruccion": "   "},
		{"n": 1, "instruccion": "Picar la cebolla", "timer": 120},
		{"instruccion": "Remover de vez en cuando"}
	]`

	steps := ParseSteps(text)
	require.Len(t, steps, 3)

	assert.Equal(t, "Picar la cebolla", steps[0].Instruction)
	require.NotNil(t, steps[0].Number)
	assert.Equal(t, 1, *steps[0].Number)
	require.NotNil(t, steps[0].TimerSeconds)
	assert.Equal(t, 120, *steps[0].TimerSeconds)

	assert.Equal(t, "Servir caliente", steps[1].Instruction)

	assert.Equal(t, "Remover de vez en cuando", steps[2].Instruction)
	assert.Nil(t, steps[2].Number)
	assert.Nil(t, steps[2].TimerSeconds)
}

func TestParseStepsKeyAliases(t *testing.T) {
	text := `[
		{"numero_paso": 2, "instruction": "Segundo"},
		{"numero": 1, "texto": "Primero", "temporizador_segundos": 30}
	]`

	steps := ParseSteps(text)
	require.Len(t, steps, 2)
	assert.Equal(t, "Primero", steps[0].Instruction)
	require.NotNil(t, steps[0].TimerSeconds)
	assert.Equal(t, 30, *steps[0].TimerSeconds)
	assert.Equal(t, "Segundo", steps[1].Instruction)
}

func TestParseStepsAllEmpty(t *testing.T) {
	steps := ParseSteps(`[{"instruccion": ""}, {"n": 1}]`)
	assert.Empty(t, steps)
}

func TestParseStepsNoJSON(t *testing.T) {
	assert.Nil(t, ParseSteps("sin pasos"))
}

func TestNumberSteps(t *testing.T) {
	steps := ParseSteps(`[{"n": 5, "instruccion": "a"}, {"instruccion": "b"}]`)
	require.Len(t, steps, 2)

	NumberSteps(steps)
	require.NotNil(t, steps[0].Number)
	assert.Equal(t, 5, *steps[0].Number)
	require.NotNil(t, steps[1].Number)
	assert.Equal(t, 2, *steps[1].Number)
}
