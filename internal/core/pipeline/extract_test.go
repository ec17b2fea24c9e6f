package pipeline

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractTextTopLevelField(t *testing.T) {
	resp := map[string]any{"text": "hola"}
	assert.Equal(t, "hola", ExtractText(resp))
}

func TestExtractTextCandidateParts(t *testing.T) {
	resp := map[string]any{
		"candidates": []any{
			map[string]any{
				"content": map[string]any{
					"parts": []any{
						map[string]any{"text": "línea uno"},
						map[string]any{"text": "línea dos"},
					},
				},
			},
		},
	}
	assert.Equal(t, "línea uno\nlínea dos", ExtractText(resp))
}

func TestExtractTextCandidateStringContent(t *testing.T) {
	resp := map[string]any{
		"candidates": []any{
			map[string]any{"content": "directo"},
		},
	}
	assert.Equal(t, "directo", ExtractText(resp))
}

func TestExtractTextCandidatePartList(t *testing.T) {
	resp := map[string]any{
		"candidates": []any{
			map[string]any{"content": []any{"a", "b"}},
		},
	}
	assert.Equal(t, "a\nb", ExtractText(resp))
}

func TestExtractTextOutputContent(t *testing.T) {
	resp := map[string]any{
		"output": map[string]any{"content": "desde output"},
	}
	assert.Equal(t, "desde output", ExtractText(resp))
}

func TestExtractTextPlainString(t *testing.T) {
	assert.Equal(t, "crudo", ExtractText("crudo"))
}

func TestExtractTextNil(t *testing.T) {
	assert.Equal(t, "", ExtractText(nil))
}

func TestExtractTextUnknownShapeStringifies(t *testing.T) {
	assert.Equal(t, "42", ExtractText(42))
}
