package pipeline

import (
	"testing"

	"storycraft/agent"
)

func reviewObject(score float64) map[string]any {
	return map[string]any{
		"verdict":         "approve",
		"score":           score,
		"issues":          []any{},
		"recommendations": "none",
		"summary":         "solid story",
	}
}

func TestComputeMetricsQualityFromVerdict(t *testing.T) {
	run := NewRun("idea")
	run.Results[agent.StageWriter] = agent.TextResult("one two three four five")
	run.Results[agent.StageReviewer] = agent.ObjectResult(reviewObject(87))

	m := ComputeMetrics(run)
	if m.Quality == nil || *m.Quality != 87 {
		t.Fatalf("Quality = %v, want 87", m.Quality)
	}
	if m.Words != 5 {
		t.Errorf("Words = %d, want 5", m.Words)
	}
	if m.ReadMinutes != 1 {
		t.Errorf("ReadMinutes = %d, want 1", m.ReadMinutes)
	}
}

func TestComputeMetricsQualityNilOnBadVerdict(t *testing.T) {
	cases := []struct {
		name string
		obj  map[string]any
	}{
		{"string score", map[string]any{
			"verdict": "approve", "score": "8/10", "issues": []any{},
			"recommendations": "none", "summary": "s",
		}},
		{"score out of range", reviewObject(140)},
		{"missing fields", map[string]any{"score": float64(90)}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			run := NewRun("idea")
			run.Results[agent.StageWriter] = agent.TextResult("short story")
			run.Results[agent.StageReviewer] = agent.ObjectResult(tc.obj)

			m := ComputeMetrics(run)
			if m.Quality != nil {
				t.Fatalf("Quality = %v, want nil", *m.Quality)
			}
			if m.QualityLabel() != "N/A" {
				t.Errorf("QualityLabel = %q, want N/A", m.QualityLabel())
			}
		})
	}
}

func TestComputeMetricsNoReviewer(t *testing.T) {
	run := NewRun("idea")
	run.Results[agent.StageWriter] = agent.TextResult("just the story")

	m := ComputeMetrics(run)
	if m.Quality != nil {
		t.Fatalf("Quality = %v, want nil", *m.Quality)
	}
}
