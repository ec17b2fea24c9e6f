package pipeline

import (
	"fmt"
	"strings"
)

// IsTruncated decides whether a model response was cut off. Three signals,
// checked in order, any positive match wins:
//
//  1. a finish-reason field on the first candidate (several key spellings)
//     carrying a token-limit indicator;
//  2. the same indicator anywhere in a string dump of the whole response,
//     for SDK shapes that hide the field;
//  3. an extracted JSON block that opens with [ or { but never closes —
//     a syntactic signal independent of any SDK metadata.
func IsTruncated(resp any, text string) bool {
	if hasTokenLimitFinishReason(resp) {
		return true
	}

	if resp != nil {
		dump := strings.ToUpper(fmt.Sprintf("%v", resp))
		if strings.Contains(dump, "MAX_TOKENS") || strings.Contains(dump, "MAXTOKENS") {
			return true
		}
	}

	if block, ok := ExtractFirstJSON(text); ok {
		trimmed := strings.TrimSpace(block)
		if strings.HasPrefix(trimmed, "[") && !strings.HasSuffix(trimmed, "]") {
			return true
		}
		if strings.HasPrefix(trimmed, "{") && !strings.HasSuffix(trimmed, "}") {
			return true
		}
	} else {
		// No balanced block at all: if the text opens a JSON value that
		// never closes, treat it as truncated output.
		trimmed := strings.TrimSpace(text)
		if strings.HasPrefix(trimmed, "[") || strings.HasPrefix(trimmed, "{") {
			return true
		}
	}

	return false
}

func hasTokenLimitFinishReason(resp any) bool {
	m, ok := resp.(map[string]any)
	if !ok {
		return false
	}
	candidates, ok := m["candidates"].([]any)
	if !ok || len(candidates) == 0 {
		return false
	}
	first, ok := candidates[0].(map[string]any)
	if !ok {
		return false
	}

	reason, ok := firstKey(first, "finish_reason", "finishReason", "finish")
	if !ok {
		return false
	}
	s, ok := asString(reason)
	if !ok {
		return false
	}

	upper := strings.ToUpper(s)
	return strings.Contains(upper, "MAX_TOKENS") ||
		strings.Contains(upper, "MAXTOKENS") ||
		strings.Contains(upper, "MAX")
}
