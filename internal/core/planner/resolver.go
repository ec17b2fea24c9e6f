package planner

import (
	"encoding/json"
	"regexp"
	"strconv"
	"strings"
)

var (
	digitsOnlyPattern  = regexp.MustCompile(`^\d+$`)
	firstNumberPattern = regexp.MustCompile(`(\d+)`)
	placeholderPattern = regexp.MustCompile(`(?i)receta[_\-]?\s*id[_\-]?\s*(\d+)`)
)

// ResolveRecipeID maps one model-emitted meal-slot value to a known catalog
// id. The model mixes plain ids, numeric strings, placeholder tokens like
// "ID_RECETA_7", bare recipe names and nested objects; each shape gets a rule,
// tried in order. A value that matches no rule, or names an id the catalog
// does not contain, resolves to nil. Ids are never invented.
//
// byID holds every catalog id; byName maps normalized (lowercased, trimmed)
// candidate names to ids. Substring ties resolve to whichever candidate the
// map yields first.
func ResolveRecipeID(raw any, byID map[int64]string, byName map[string]int64) *int64 {
	switch v := raw.(type) {
	case nil:
		return nil

	case json.Number:
		if id, err := v.Int64(); err == nil {
			return validateID(id, byID)
		}
		return nil
	case float64:
		return validateID(int64(v), byID)
	case int:
		return validateID(int64(v), byID)
	case int64:
		return validateID(v, byID)

	case map[string]any:
		return resolveFromObject(v, byID, byName)

	case string:
		return resolveFromString(v, byID, byName)
	}

	return nil
}

func resolveFromObject(obj map[string]any, byID map[int64]string, byName map[string]int64) *int64 {
	for _, key := range []string{"id", "receta_id", "recipe_id"} {
		if id, ok := intValue(obj[key]); ok {
			if resolved := validateID(id, byID); resolved != nil {
				return resolved
			}
		}
	}

	for _, key := range []string{"nombre", "name"} {
		if name, ok := obj[key].(string); ok && name != "" {
			if resolved := resolveByName(name, byName); resolved != nil {
				return resolved
			}
		}
	}
	return nil
}

func resolveFromString(s string, byID map[int64]string, byName map[string]int64) *int64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}

	if digitsOnlyPattern.MatchString(s) {
		if id, err := strconv.ParseInt(s, 10, 64); err == nil {
			if resolved := validateID(id, byID); resolved != nil {
				return resolved
			}
		}
	}

	if m := firstNumberPattern.FindStringSubmatch(s); m != nil {
		if id, err := strconv.ParseInt(m[1], 10, 64); err == nil {
			if resolved := validateID(id, byID); resolved != nil {
				return resolved
			}
		}
	}

	if m := placeholderPattern.FindStringSubmatch(s); m != nil {
		if id, err := strconv.ParseInt(m[1], 10, 64); err == nil {
			if resolved := validateID(id, byID); resolved != nil {
				return resolved
			}
		}
	}

	return resolveByName(s, byName)
}

func resolveByName(name string, byName map[string]int64) *int64 {
	norm := strings.ToLower(strings.TrimSpace(name))
	if norm == "" {
		return nil
	}

	if id, ok := byName[norm]; ok {
		return &id
	}
	for candidate, id := range byName {
		if strings.Contains(candidate, norm) || strings.Contains(norm, candidate) {
			id := id
			return &id
		}
	}
	return nil
}

func validateID(id int64, byID map[int64]string) *int64 {
	if _, ok := byID[id]; ok {
		return &id
	}
	return nil
}

func intValue(v any) (int64, bool) {
	switch n := v.(type) {
	case json.Number:
		if id, err := n.Int64(); err == nil {
			return id, true
		}
	case float64:
		return int64(n), true
	case int:
		return int64(n), true
	case int64:
		return n, true
	case string:
		if id, err := strconv.ParseInt(strings.TrimSpace(n), 10, 64); err == nil {
			return id, true
		}
	}
	return 0, false
}
