package pipeline

import (
	"lazyfood/internal/pkg/common"

	"go.uber.org/zap"
)

// RawWeeklyPlan is the shape of a plan as the model emitted it, before any
// slot value has been resolved against the catalog. Day keys are date strings
// as given; slot values stay untyped because the model mixes ids, strings,
// placeholders and nested objects freely.
type RawWeeklyPlan struct {
	Week string
	Days map[string]map[string]any
}

// ParseWeeklyPlan extracts the first JSON object from text and reads it as a
// weekly plan. The object must carry a suggestions map under "sugerencias"
// (aliases "menus", "planificacion"); anything else is a parse failure and
// returns nil so the caller can fall back.
func ParseWeeklyPlan(text string) *RawWeeklyPlan {
	block, ok := ExtractFirstJSON(text)
	if !ok {
		return nil
	}

	var raw map[string]any
	if err := common.ParseJSON(block, &raw); err != nil {
		common.LogDebug("plan object decode failed", zap.Error(err), zap.Int("block_length", len(block)))
		return nil
	}

	suggestions, ok := firstKey(raw, "sugerencias", "menus", "planificacion")
	if !ok {
		return nil
	}
	dayMap, ok := suggestions.(map[string]any)
	if !ok {
		return nil
	}

	plan := &RawWeeklyPlan{Days: make(map[string]map[string]any, len(dayMap))}
	if week, ok := firstKey(raw, "semana", "week"); ok {
		plan.Week, _ = asString(week)
	}

	for date, meals := range dayMap {
		slots, ok := meals.(map[string]any)
		if !ok {
			continue
		}
		plan.Days[date] = slots
	}
	return plan
}

// Slot returns the raw value for one meal slot of a parsed day, trying the
// Spanish key then its English alias.
func (p *RawWeeklyPlan) Slot(date string, keys ...string) any {
	if p == nil {
		return nil
	}
	slots, ok := p.Days[date]
	if !ok {
		return nil
	}
	v, _ := firstKey(slots, keys...)
	return v
}
