package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"github.com/deikotec/socialflow/internal/utils/platformerrors"
)

var jsonFence = regexp.MustCompile("(?i)```json")

const previewLength = 500

// ParseFencedJSON decodes a model reply into T after stripping markdown code fences.
func ParseFencedJSON[T any](ctx context.Context, raw string) (T, error) {
	var out T
	cleaned := strings.TrimSpace(strings.ReplaceAll(jsonFence.ReplaceAllString(raw, ""), "```", ""))
	if err := json.Unmarshal([]byte(cleaned), &out); err != nil {
		return out, platformerrors.NewErrorWithContext(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeExternal,
			"AI response was not valid JSON", fmt.Errorf("%w: %w", platformerrors.ErrAIResponseParse, err),
			"c1d3e5f7-9a1b-4c3d-8e8f-0b2c4d6e8a47", map[string]any{"preview": preview(raw)})
	}
	return out, nil
}

func preview(s string) string {
	if len(s) <= previewLength {
		return s
	}
	return s[:previewLength]
}
