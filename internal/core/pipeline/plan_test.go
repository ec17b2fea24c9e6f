package pipeline

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseWeeklyPlanBasic(t *testing.T) {
	text := "```json\n" + `{
		"semana": "2025-12-01",
		"sugerencias": {
			"2025-12-01": {"desayuno": 7, "almuerzo": null, "cena": "Pasta Carbonara"}
		}
	}` + "\n```"

	plan := ParseWeeklyPlan(text)
	require.NotNil(t, plan)
	assert.Equal(t, "2025-12-01", plan.Week)
	require.Contains(t, plan.Days, "2025-12-01")

	breakfast := plan.Slot("2025-12-01", "desayuno")
	require.NotNil(t, breakfast)
	assert.Nil(t, plan.Slot("2025-12-01", "almuerzo"))
	assert.Equal(t, "Pasta Carbonara", plan.Slot("2025-12-01", "cena"))
}

func TestParseWeeklyPlanSuggestionAliases(t *testing.T) {
	plan := ParseWeeklyPlan(`{"week": "2025-12-01", "menus": {"2025-12-01": {"desayuno": 1}}}`)
	require.NotNil(t, plan)
	assert.Equal(t, "2025-12-01", plan.Week)
	assert.Len(t, plan.Days, 1)

	plan = ParseWeeklyPlan(`{"planificacion": {"2025-12-02": {"cena": 3}}}`)
	require.NotNil(t, plan)
	assert.Len(t, plan.Days, 1)
}

func TestParseWeeklyPlanMissingSuggestionsKey(t *testing.T) {
	assert.Nil(t, ParseWeeklyPlan(`{"semana": "2025-12-01"}`))
}

func TestParseWeeklyPlanWrongShape(t *testing.T) {
	assert.Nil(t, ParseWeeklyPlan(`[1, 2, 3]`))
	assert.Nil(t, ParseWeeklyPlan(`{"sugerencias": [1, 2]}`))
	assert.Nil(t, ParseWeeklyPlan("nada de json"))
}

func TestParseWeeklyPlanSkipsMalformedDays(t *testing.T) {
	plan := ParseWeeklyPlan(`{"sugerencias": {"2025-12-01": {"desayuno": 1}, "2025-12-02": "texto"}}`)
	require.NotNil(t, plan)
	assert.Len(t, plan.Days, 1)
}
