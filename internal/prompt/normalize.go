package prompt

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/Masty1988/my-social-flow/internal/domain"
)

// Normalize parses the raw model payload and coerces it into a fully-typed
// GeneratedContent. Parsing is attempted as-is first, then once more after
// stripping a markdown code fence the model may have wrapped the JSON in.
// Coercion is total: every requested platform key ends up a string slice and
// imagePrompt a string, no matter what the model put there. The only failure
// mode is ErrUnparseableResponse when the payload is not a JSON object at
// all.
func Normalize(raw string, platforms []domain.Platform) (domain.GeneratedContent, error) {
	parsed, err := parseObject(raw)
	if err != nil {
		parsed, err = parseObject(trimCodeFence(raw))
	}
	if err != nil {
		return domain.GeneratedContent{}, fmt.Errorf("%w: %v", domain.ErrUnparseableResponse, err)
	}

	content := domain.GeneratedContent{Posts: make(map[domain.Platform][]string, len(platforms))}
	for _, p := range platforms {
		content.Posts[p] = coerceStringSlice(parsed[string(p)])
	}
	content.ImagePrompt = coerceString(parsed[SchemaKeyImagePrompt])
	content.ImageDescription = coerceString(parsed[SchemaKeyImageDescription])
	return content, nil
}

func parseObject(raw string) (map[string]any, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return nil, fmt.Errorf("empty payload")
	}
	var out map[string]any
	if err := json.Unmarshal([]byte(trimmed), &out); err != nil {
		return nil, err
	}
	if out == nil {
		return nil, fmt.Errorf("null payload")
	}
	return out, nil
}

// trimCodeFence removes a leading ``` or ```json marker and the trailing
// fence, if present.
func trimCodeFence(text string) string {
	trimmed := strings.TrimSpace(text)
	if !strings.HasPrefix(trimmed, "```") {
		return trimmed
	}
	trimmed = strings.TrimPrefix(trimmed, "```json")
	trimmed = strings.TrimPrefix(trimmed, "```JSON")
	trimmed = strings.TrimPrefix(trimmed, "```")
	trimmed = strings.TrimSpace(trimmed)
	if idx := strings.LastIndex(trimmed, "```"); idx >= 0 {
		trimmed = trimmed[:idx]
	}
	return strings.TrimSpace(trimmed)
}

// coerceStringSlice accepts only a list of strings; anything else (missing
// key, scalar, mixed-type array) becomes an empty slice so one malformed
// field never poisons the rest of the payload.
func coerceStringSlice(v any) []string {
	items, ok := v.([]any)
	if !ok {
		return []string{}
	}
	out := make([]string, 0, len(items))
	for _, item := range items {
		s, ok := item.(string)
		if !ok {
			return []string{}
		}
		out = append(out, s)
	}
	return out
}

func coerceString(v any) string {
	if s, ok := v.(string); ok {
		return s
	}
	return ""
}

// Serialize renders a GeneratedContent back to the JSON object shape the
// model is asked to produce. It is the inverse of Normalize for well-formed
// content and is what HTTP handlers send to clients.
func Serialize(content domain.GeneratedContent) map[string]any {
	out := make(map[string]any, len(content.Posts)+2)
	for p, variants := range content.Posts {
		if variants == nil {
			variants = []string{}
		}
		out[string(p)] = variants
	}
	out[SchemaKeyImagePrompt] = content.ImagePrompt
	if content.ImageDescription != "" {
		out[SchemaKeyImageDescription] = content.ImageDescription
	}
	return out
}
