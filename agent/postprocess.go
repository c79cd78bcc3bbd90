package agent

import (
	"encoding/json"
	"strings"

	"github.com/tidwall/gjson"
)

// extractJSON locates a JSON value inside raw model output. Models often wrap
// the payload in markdown fences or lead-in prose, so after stripping fences
// the candidate is narrowed to the outermost brace or bracket pair and
// checked with gjson before decoding.
func extractJSON(raw string) (string, bool) {
	s := strings.TrimSpace(raw)
	s = stripFences(s)

	if gjson.Valid(s) && (strings.HasPrefix(s, "{") || strings.HasPrefix(s, "[")) {
		return s, true
	}
	for _, pair := range [2][2]string{{"{", "}"}, {"[", "]"}} {
		start := strings.Index(s, pair[0])
		end := strings.LastIndex(s, pair[1])
		if start >= 0 && end > start {
			candidate := s[start : end+1]
			if gjson.Valid(candidate) {
				return candidate, true
			}
		}
	}
	return "", false
}

func stripFences(s string) string {
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}

// postprocessBrief parses the brief as a JSON object. Anything else keeps the
// raw text under a tagged fallback field rather than discarding it.
func postprocessBrief(raw string) StageResult {
	if candidate, ok := extractJSON(raw); ok {
		var obj map[string]any
		if err := json.Unmarshal([]byte(candidate), &obj); err == nil {
			return ObjectResult(obj)
		}
	}
	return ObjectResult(map[string]any{"raw_brief": raw})
}

// postprocessVisual parses an ordered list of scene-prompt objects, with the
// same fallback policy as the brief.
func postprocessVisual(raw string) StageResult {
	if candidate, ok := extractJSON(raw); ok {
		var list []any
		if err := json.Unmarshal([]byte(candidate), &list); err == nil {
			return ListResult(list)
		}
	}
	return ObjectResult(map[string]any{"raw_visuals": raw})
}

// postprocessText passes free-text stages (writer, publisher) through.
func postprocessText(raw string) StageResult {
	return TextResult(raw)
}

// postprocessReview enforces the review contract: downstream consumers need
// the exact verdict shape, so parse and validation failures are hard errors
// rather than fallbacks.
func postprocessReview(raw string) StageResult {
	candidate, ok := extractJSON(raw)
	if !ok {
		return ErrorResult(StageError{
			Type:    ErrMalformedOutput,
			Message: "reviewer did not return valid JSON",
			Raw:     raw,
		})
	}
	var obj map[string]any
	if err := json.Unmarshal([]byte(candidate), &obj); err != nil {
		return ErrorResult(StageError{
			Type:    ErrMalformedOutput,
			Message: "reviewer output is not a JSON object",
			Raw:     raw,
		})
	}
	if err := ValidateReviewVerdict(obj); err != nil {
		return ErrorResult(StageError{
			Type:      ErrSchemaValidation,
			Message:   err.Error(),
			Candidate: obj,
		})
	}
	return ObjectResult(obj)
}
