package pipeline

import (
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	"storycraft/agent"
)

// Status is the lifecycle of one stage within a run.
type Status string

const (
	StatusPending  Status = "pending"
	StatusRunning  Status = "running"
	StatusComplete Status = "complete"
	StatusError    Status = "error"
)

// Metrics are derived from a fully successful run.
type Metrics struct {
	Words       int `json:"words"`
	Chars       int `json:"chars"`
	ReadMinutes int `json:"read_minutes"`
	// Quality is the reviewer's score; nil when unavailable.
	Quality *float64 `json:"quality,omitempty"`
}

// QualityLabel renders the score for display, with an explicit marker when
// no score was produced.
func (m Metrics) QualityLabel() string {
	if m.Quality == nil {
		return "N/A"
	}
	return strconv.FormatFloat(*m.Quality, 'g', -1, 64)
}

// PipelineRun aggregates the five stage results for one idea. Once a stage's
// result is written it is never mutated; snapshots copy the maps so callers
// can hold them across later transitions.
type PipelineRun struct {
	ID          string                            `json:"id"`
	Idea        string                            `json:"idea"`
	Results     map[agent.Stage]agent.StageResult `json:"results"`
	Statuses    map[agent.Stage]Status            `json:"statuses"`
	Metrics     *Metrics                          `json:"metrics,omitempty"`
	CreatedAt   time.Time                         `json:"created_at"`
	CompletedAt time.Time                         `json:"completed_at,omitempty"`
}

// NewRun initializes a run for a trimmed idea with every stage pending.
func NewRun(idea string) *PipelineRun {
	statuses := make(map[agent.Stage]Status, len(agent.Stages()))
	for _, s := range agent.Stages() {
		statuses[s] = StatusPending
	}
	return &PipelineRun{
		ID:        uuid.NewString(),
		Idea:      idea,
		Results:   make(map[agent.Stage]agent.StageResult),
		Statuses:  statuses,
		CreatedAt: time.Now().UTC(),
	}
}

// Clone returns an independent copy safe to expose while the run is
// mid-flight.
func (r *PipelineRun) Clone() PipelineRun {
	out := *r
	out.Results = make(map[agent.Stage]agent.StageResult, len(r.Results))
	for k, v := range r.Results {
		out.Results[k] = v
	}
	out.Statuses = make(map[agent.Stage]Status, len(r.Statuses))
	for k, v := range r.Statuses {
		out.Statuses[k] = v
	}
	if r.Metrics != nil {
		m := *r.Metrics
		out.Metrics = &m
	}
	return out
}

// FailedAt returns the stage a halted run stopped at, if any.
func (r *PipelineRun) FailedAt() (agent.Stage, bool) {
	for _, s := range agent.Stages() {
		if res, ok := r.Results[s]; ok && res.IsError() {
			return s, true
		}
	}
	return "", false
}

// Snapshot is one element of the progress stream. The stream is a finite
// ordered sequence ending in exactly one snapshot with Terminal set.
type Snapshot struct {
	Stage    agent.Stage `json:"stage"`
	Status   Status      `json:"status"`
	Run      PipelineRun `json:"run"`
	Cached   bool        `json:"cached"`
	Terminal bool        `json:"terminal"`
}

// ComputeMetrics derives word/char counts and reading time from the writer's
// story text, and the quality score from the reviewer's verdict.
func ComputeMetrics(run *PipelineRun) Metrics {
	var story string
	if res, ok := run.Results[agent.StageWriter]; ok && res.Kind == agent.KindText {
		story = res.Text
	}
	words := len(strings.Fields(story))
	read := words / 200
	if read < 1 {
		read = 1
	}
	m := Metrics{
		Words:       words,
		Chars:       utf8.RuneCountInString(story),
		ReadMinutes: read,
	}
	if res, ok := run.Results[agent.StageReviewer]; ok && res.Kind == agent.KindObject {
		if verdict, err := agent.DecodeReviewVerdict(res.Object); err == nil {
			m.Quality = &verdict.Score
		}
	}
	return m
}
