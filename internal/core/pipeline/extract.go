package pipeline

import (
	"fmt"
	"strings"
)

// ExtractText pulls the best-effort human-readable payload out of a model
// response of unknown shape. SDK response layouts differ between providers
// and versions, so this is a sequence of independent access attempts rather
// than a typed union: a top-level text field, then the first candidate's
// content (string, part list, or nested parts object), then an alternate
// output structure, then a plain stringification of the whole value. It
// never fails; the worst case is an empty string.
func ExtractText(resp any) string {
	if resp == nil {
		return ""
	}

	m, ok := resp.(map[string]any)
	if !ok {
		if s, ok := resp.(string); ok {
			return s
		}
		return fmt.Sprintf("%v", resp)
	}

	if s, ok := asString(m["text"]); ok && s != "" {
		return s
	}

	if candidates, ok := m["candidates"].([]any); ok && len(candidates) > 0 {
		if text := textFromCandidate(candidates[0]); text != "" {
			return text
		}
	}

	if output, ok := m["output"].(map[string]any); ok {
		if text := textFromContent(output["content"]); text != "" {
			return text
		}
	}

	return fmt.Sprintf("%v", resp)
}

func textFromCandidate(candidate any) string {
	cm, ok := candidate.(map[string]any)
	if !ok {
		if s, ok := candidate.(string); ok {
			return s
		}
		return fmt.Sprintf("%v", candidate)
	}

	if text := textFromContent(cm["content"]); text != "" {
		return text
	}
	if s, ok := asString(cm["text"]); ok && s != "" {
		return s
	}
	return ""
}

// textFromContent handles the three observed content shapes: a plain string,
// a list of text-bearing parts, and an object wrapping a "parts" list.
func textFromContent(content any) string {
	switch c := content.(type) {
	case string:
		return c
	case []any:
		return joinParts(c)
	case map[string]any:
		if parts, ok := c["parts"].([]any); ok {
			return joinParts(parts)
		}
	}
	return ""
}

func joinParts(parts []any) string {
	collected := make([]string, 0, len(parts))
	for _, p := range parts {
		switch part := p.(type) {
		case string:
			collected = append(collected, part)
		case map[string]any:
			if s, ok := asString(part["text"]); ok && s != "" {
				collected = append(collected, s)
			} else if s, ok := asString(part["content"]); ok && s != "" {
				collected = append(collected, s)
			}
		}
	}
	return strings.Join(collected, "\n")
}
