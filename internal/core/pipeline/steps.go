package pipeline

import (
	"math"
	"sort"
	"strings"

	"lazyfood/internal/pkg/common"

	"go.uber.org/zap"
)

// ParseSteps extracts the first JSON array from text and normalizes it into
// cooking steps. Steps whose instruction is empty after trimming are dropped
// entirely. The result is sorted ascending by step number, steps without a
// usable number last.
func ParseSteps(text string) []common.RecipeStep {
	block, ok := ExtractFirstJSON(text)
	if !ok {
		return nil
	}

	var raw []any
	if err := common.ParseJSON(block, &raw); err != nil {
		common.LogDebug("step array decode failed", zap.Error(err), zap.Int("block_length", len(block)))
		return nil
	}

	steps := make([]common.RecipeStep, 0, len(raw))
	for _, item := range raw {
		entry, ok := item.(map[string]any)
		if !ok {
			continue
		}

		step := common.RecipeStep{}
		if n, ok := firstKey(entry, "n", "numero", "numero_paso"); ok {
			step.Number = asIntPtr(n)
		}
		if instr, ok := firstKey(entry, "instruccion", "instruction", "texto"); ok {
			s, _ := asString(instr)
			step.Instruction = strings.TrimSpace(s)
		}
		if timer, ok := firstKey(entry, "timer", "temporizador_segundos"); ok {
			step.TimerSeconds = asIntPtr(timer)
		}

		if step.Instruction == "" {
			continue
		}
		steps = append(steps, step)
	}

	SortSteps(steps)
	return steps
}

// SortSteps orders steps ascending by number, treating a missing number as
// effectively +inf so unnumbered steps sort last. The sort is stable so
// same-numbered steps keep their emitted order.
func SortSteps(steps []common.RecipeStep) {
	sort.SliceStable(steps, func(i, j int) bool {
		return stepSortKey(steps[i]) < stepSortKey(steps[j])
	})
}

func stepSortKey(step common.RecipeStep) int {
	if step.Number == nil {
		return math.MaxInt
	}
	return *step.Number
}

// NumberSteps assigns sequential numbers starting at 1 to steps that carry
// none, preserving externally supplied numbers as given.
func NumberSteps(steps []common.RecipeStep) {
	next := 1
	for i := range steps {
		if steps[i].Number == nil {
			steps[i].Number = intPtr(next)
		}
		next++
	}
}
