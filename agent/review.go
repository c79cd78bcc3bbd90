package agent

import (
	"fmt"
	"sort"
)

// ReviewVerdict is the required shape of a successful reviewer output. Score
// is canonically a number in [0,100]; string scores fail validation rather
// than being coerced.
type ReviewVerdict struct {
	Verdict         string   `json:"verdict"`
	Score           float64  `json:"score"`
	Issues          []string `json:"issues"`
	Recommendations string   `json:"recommendations"`
	Summary         string   `json:"summary"`
}

var reviewFields = map[string]bool{
	"verdict":         true,
	"score":           true,
	"issues":          true,
	"recommendations": true,
	"summary":         true,
}

// ValidateReviewVerdict checks a decoded JSON object against the review
// shape: all five fields required and correctly typed, score within [0,100],
// no extra fields.
func ValidateReviewVerdict(obj map[string]any) error {
	var extras []string
	for k := range obj {
		if !reviewFields[k] {
			extras = append(extras, k)
		}
	}
	if len(extras) > 0 {
		sort.Strings(extras)
		return fmt.Errorf("unexpected fields %v", extras)
	}
	for _, k := range []string{"verdict", "score", "issues", "recommendations", "summary"} {
		if _, ok := obj[k]; !ok {
			return fmt.Errorf("missing required field %q", k)
		}
	}
	for _, k := range []string{"verdict", "recommendations", "summary"} {
		if _, ok := obj[k].(string); !ok {
			return fmt.Errorf("field %q must be a string", k)
		}
	}
	score, ok := obj["score"].(float64)
	if !ok {
		return fmt.Errorf("field \"score\" must be a number")
	}
	if score < 0 || score > 100 {
		return fmt.Errorf("score %v outside [0,100]", score)
	}
	issues, ok := obj["issues"].([]any)
	if !ok {
		return fmt.Errorf("field \"issues\" must be an array")
	}
	for i, item := range issues {
		if _, ok := item.(string); !ok {
			return fmt.Errorf("issues[%d] must be a string", i)
		}
	}
	return nil
}

// DecodeReviewVerdict converts a validated object into the typed verdict.
func DecodeReviewVerdict(obj map[string]any) (ReviewVerdict, error) {
	if err := ValidateReviewVerdict(obj); err != nil {
		return ReviewVerdict{}, err
	}
	v := ReviewVerdict{
		Verdict:         obj["verdict"].(string),
		Score:           obj["score"].(float64),
		Recommendations: obj["recommendations"].(string),
		Summary:         obj["summary"].(string),
	}
	for _, item := range obj["issues"].([]any) {
		v.Issues = append(v.Issues, item.(string))
	}
	return v, nil
}
