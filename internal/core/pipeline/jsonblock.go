package pipeline

import (
	"regexp"
	"strings"
)

// fencedJSONPattern matches the first ```json fenced block, non-greedy.
var fencedJSONPattern = regexp.MustCompile("(?is)```json\\s*(\\{.*?\\}|\\[.*?\\])\\s*```")

// ExtractFirstJSON locates the first JSON array or object embedded in
// arbitrary text. Priority: a ```json fence, then the first depth-balanced
// [...] block, then the first depth-balanced {...} block. This is a bracket
// counter, not a JSON tokenizer: brackets inside string literals are counted
// too, which is accepted as best-effort.
func ExtractFirstJSON(text string) (string, bool) {
	if m := fencedJSONPattern.FindStringSubmatch(text); m != nil {
		return m[1], true
	}

	if block, ok := balancedBlock(text, '[', ']'); ok {
		return block, true
	}
	if block, ok := balancedBlock(text, '{', '}'); ok {
		return block, true
	}

	return "", false
}

// balancedBlock scans forward from the first open bracket, counting nesting,
// and returns the substring up to the bracket that closes depth 0.
func balancedBlock(text string, open, close byte) (string, bool) {
	start := strings.IndexByte(text, open)
	if start == -1 {
		return "", false
	}

	depth := 0
	for i := start; i < len(text); i++ {
		switch text[i] {
		case open:
			depth++
		case close:
			depth--
			if depth == 0 {
				return text[start : i+1], true
			}
		}
	}

	return "", false
}
