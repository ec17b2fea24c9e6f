package pipeline

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultRecipes(t *testing.T) {
	recipes := DefaultRecipes()
	require.Len(t, recipes, 1)

	r := recipes[0]
	assert.Equal(t, "Ensalada de Tomate", r.Name)
	require.NotNil(t, r.PrepTimeMinutes)
	assert.Equal(t, 10, *r.PrepTimeMinutes)
	assert.Equal(t, 1, r.Difficulty)
	assert.Len(t, r.Ingredients, 2)
}

func TestDefaultWeeklyPlanCycling(t *testing.T) {
	plan := DefaultWeeklyPlan("2025-12-01", []int64{10, 20})

	assert.Equal(t, "2025-12-01", plan.Week)
	require.Len(t, plan.Days, 7)

	day0 := plan.Days["2025-12-01"]
	require.NotNil(t, day0.Breakfast)
	assert.Equal(t, int64(10), *day0.Breakfast)
	assert.Equal(t, int64(20), *day0.Lunch)
	assert.Equal(t, int64(10), *day0.Dinner)

	day1 := plan.Days["2025-12-02"]
	assert.Equal(t, int64(20), *day1.Breakfast)
	assert.Equal(t, int64(10), *day1.Lunch)
	assert.Equal(t, int64(20), *day1.Dinner)

	_, ok := plan.Days["2025-12-07"]
	assert.True(t, ok)
	_, ok = plan.Days["2025-12-08"]
	assert.False(t, ok)
}

func TestDefaultWeeklyPlanEmptyCatalog(t *testing.T) {
	plan := DefaultWeeklyPlan("2025-12-01", nil)

	require.Len(t, plan.Days, 7)
	for _, meals := range plan.Days {
		assert.Nil(t, meals.Breakfast)
		assert.Nil(t, meals.Lunch)
		assert.Nil(t, meals.Dinner)
	}
}

func TestDefaultWeeklyPlanBadDate(t *testing.T) {
	plan := DefaultWeeklyPlan("no es una fecha", []int64{1})

	require.Len(t, plan.Days, 7)
	_, err := time.Parse("2006-01-02", plan.Week)
	assert.NoError(t, err)
	_, ok := plan.Days[plan.Week]
	assert.True(t, ok)
}
