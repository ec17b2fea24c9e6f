package recipe

import (
	"context"
	"errors"
	"testing"

	"lazyfood/internal/core/catalog"
	"lazyfood/internal/pkg/common"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const paellaStepsJSON = `[
  {"n": 2, "instruccion": "Añadir el caldo y el azafrán", "timer": 1200},
  {"n": 1, "instruccion": "Sofreír el arroz"},
  {"instruccion": "Dejar reposar antes de servir", "timer": 300}
]`

func seedRecipe(t *testing.T, store catalog.Store, name string) int64 {
	t.Helper()
	id, err := store.EnsureRecipe(context.Background(), common.RecipeMetadata{Name: name, Difficulty: 2, Emoji: "🥘"})
	require.NoError(t, err)
	return id
}

func TestGenerateStepsHappyPath(t *testing.T) {
	store := catalog.NewMemoryStore()
	id := seedRecipe(t, store, "Paella")

	model := &fakeModel{responses: []any{textResponse("```json\n" + paellaStepsJSON + "\n```")}}
	svc := NewStepService(model, store, testRecipeConfig())

	steps, err := svc.GenerateSteps(context.Background(), id, nil, common.Preferences{}, 2, 0)
	require.NoError(t, err)
	require.Len(t, steps, 3)

	assert.Equal(t, "Sofreír el arroz", steps[0].Instruction)
	assert.Equal(t, 1, *steps[0].Number)
	assert.Equal(t, "Añadir el caldo y el azafrán", steps[1].Instruction)
	assert.Equal(t, 1200, *steps[1].TimerSeconds)
	// The unnumbered step sorted last and got the next sequential number.
	assert.Equal(t, "Dejar reposar antes de servir", steps[2].Instruction)
	assert.Equal(t, 3, *steps[2].Number)

	assert.Contains(t, model.prompts[0], `"Paella"`)

	stored, err := svc.Steps(context.Background(), id)
	require.NoError(t, err)
	assert.Len(t, stored, 3)
}

func TestGenerateStepsPlaintextFallback(t *testing.T) {
	store := catalog.NewMemoryStore()
	id := seedRecipe(t, store, "Paella")

	model := &fakeModel{responses: []any{textResponse("1. Sofreír el arroz\n2. Cocer 18 min")}}
	svc := NewStepService(model, store, testRecipeConfig())

	steps, err := svc.GenerateSteps(context.Background(), id, nil, common.Preferences{}, 1, 0)
	require.NoError(t, err)
	require.Len(t, steps, 2)
	assert.Equal(t, 1080, *steps[1].TimerSeconds)
}

func TestGenerateStepsPromptContext(t *testing.T) {
	store := catalog.NewMemoryStore()
	id := seedRecipe(t, store, "Paella")

	model := &fakeModel{responses: []any{textResponse(paellaStepsJSON)}}
	svc := NewStepService(model, store, testRecipeConfig())

	prefs := common.Preferences{Diet: "vegetariana", Allergies: []string{"marisco"}}
	_, err := svc.GenerateSteps(context.Background(), id, []string{"arroz", "azafrán"}, prefs, 2, 8)
	require.NoError(t, err)

	require.Len(t, model.prompts, 1)
	prompt := model.prompts[0]
	assert.Contains(t, prompt, "arroz, azafrán")
	assert.Contains(t, prompt, "vegetariana")
	assert.Contains(t, prompt, "marisco")
	assert.Contains(t, prompt, "Máximo 8 pasos")
}

func TestGenerateStepsDefaultMaxSteps(t *testing.T) {
	store := catalog.NewMemoryStore()
	id := seedRecipe(t, store, "Paella")

	model := &fakeModel{responses: []any{textResponse(paellaStepsJSON)}}
	svc := NewStepService(model, store, testRecipeConfig())

	_, err := svc.GenerateSteps(context.Background(), id, nil, common.Preferences{}, 1, 0)
	require.NoError(t, err)
	assert.Contains(t, model.prompts[0], "Máximo 20 pasos")
}

func TestGenerateStepsModelErrorYieldsEmpty(t *testing.T) {
	store := catalog.NewMemoryStore()
	id := seedRecipe(t, store, "Paella")

	one := 1
	existing := []common.RecipeStep{{Number: &one, Instruction: "Sofreír el arroz"}}
	require.NoError(t, store.ReplaceSteps(context.Background(), id, existing))

	model := &fakeModel{errs: []error{errors.New("model unavailable")}}
	svc := NewStepService(model, store, testRecipeConfig())

	steps, err := svc.GenerateSteps(context.Background(), id, nil, common.Preferences{}, 1, 0)
	require.NoError(t, err)
	assert.Empty(t, steps)

	// The failed call never reached the store; prior steps survive.
	stored, err := store.Steps(context.Background(), id)
	require.NoError(t, err)
	require.Len(t, stored, 1)
	assert.Equal(t, "Sofreír el arroz", stored[0].Instruction)
}

func TestGenerateStepsEmptyResult(t *testing.T) {
	store := catalog.NewMemoryStore()
	id := seedRecipe(t, store, "Paella")

	model := &fakeModel{responses: []any{textResponse("")}}
	svc := NewStepService(model, store, testRecipeConfig())

	steps, err := svc.GenerateSteps(context.Background(), id, nil, common.Preferences{}, 1, 0)
	require.NoError(t, err)
	assert.Empty(t, steps)
}

func TestGenerateStepsUnknownRecipe(t *testing.T) {
	svc := NewStepService(&fakeModel{}, catalog.NewMemoryStore(), testRecipeConfig())

	_, err := svc.GenerateSteps(context.Background(), 42, nil, common.Preferences{}, 1, 0)
	assert.ErrorIs(t, err, common.ErrNotFound)
}

type stepsSaveFailingStore struct {
	catalog.Store
}

func (s *stepsSaveFailingStore) ReplaceSteps(context.Context, int64, []common.RecipeStep) error {
	return errors.New("disk full")
}

func TestGenerateStepsSurfacesSaveFailure(t *testing.T) {
	inner := catalog.NewMemoryStore()
	id := seedRecipe(t, inner, "Paella")
	store := &stepsSaveFailingStore{Store: inner}

	model := &fakeModel{responses: []any{textResponse(paellaStepsJSON)}}
	svc := NewStepService(model, store, testRecipeConfig())

	steps, err := svc.GenerateSteps(context.Background(), id, nil, common.Preferences{}, 1, 0)
	require.ErrorIs(t, err, common.ErrStepsNotSaved)
	// Generation itself succeeded; the steps still come back.
	assert.Len(t, steps, 3)
}
