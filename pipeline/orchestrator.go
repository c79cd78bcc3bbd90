package pipeline

import (
	"context"
	"strings"
	"time"

	"storycraft/agent"
)

// Orchestrator sequences the five stages, threading each stage's output into
// the next stage's input, and records completed runs in the store. All
// failures are carried as StageResult values; nothing panics or errors
// across the run boundary.
type Orchestrator struct {
	agents agent.Set
	store  RunStore
}

func NewOrchestrator(agents agent.Set, store RunStore) *Orchestrator {
	if store == nil {
		store = NewMemoryStore()
	}
	return &Orchestrator{agents: agents, store: store}
}

// Store exposes the run cache, mainly for read-only lookups by callers.
func (o *Orchestrator) Store() RunStore { return o.store }

// Stream executes the pipeline and emits progress snapshots: a running
// snapshot before each stage, a completion snapshot after it, and exactly
// one terminal snapshot at the end. A cached idea produces a single terminal
// snapshot with no model calls. The channel closes after the terminal
// element; the sequence is not restartable.
func (o *Orchestrator) Stream(ctx context.Context, idea string) <-chan Snapshot {
	ch := make(chan Snapshot)
	go func() {
		defer close(ch)
		emit := func(s Snapshot) bool {
			select {
			case ch <- s:
				return true
			case <-ctx.Done():
				return false
			}
		}
		o.execute(ctx, idea, emit)
	}()
	return ch
}

// Run is the blocking variant for non-interactive callers: all five stages,
// no incremental progress, always a well-formed (possibly partially-errored)
// run.
func (o *Orchestrator) Run(ctx context.Context, idea string) *PipelineRun {
	var last *PipelineRun
	o.execute(ctx, idea, func(s Snapshot) bool {
		if s.Terminal {
			run := s.Run
			last = &run
		}
		return true
	})
	return last
}

func (o *Orchestrator) execute(ctx context.Context, idea string, emit func(Snapshot) bool) {
	key := strings.TrimSpace(idea)

	if cached, ok := o.store.Get(key); ok {
		emit(Snapshot{
			Stage:    agent.StagePublisher,
			Status:   StatusComplete,
			Run:      cached.Clone(),
			Cached:   true,
			Terminal: true,
		})
		return
	}

	run := NewRun(key)
	for _, stage := range agent.Stages() {
		run.Statuses[stage] = StatusRunning
		if !emit(Snapshot{Stage: stage, Status: StatusRunning, Run: run.Clone()}) {
			return
		}

		res := o.agents[stage].Run(ctx, o.stageInput(stage, key, run))
		run.Results[stage] = res

		if res.IsError() {
			run.Statuses[stage] = StatusError
			o.markRemaining(run, stage)
			emit(Snapshot{Stage: stage, Status: StatusError, Run: run.Clone(), Terminal: true})
			return
		}
		run.Statuses[stage] = StatusComplete
		if stage == agent.StagePublisher {
			break
		}
		if !emit(Snapshot{Stage: stage, Status: StatusComplete, Run: run.Clone()}) {
			return
		}
	}

	metrics := ComputeMetrics(run)
	run.Metrics = &metrics
	run.CompletedAt = time.Now().UTC()
	o.store.Put(key, run)

	emit(Snapshot{
		Stage:    agent.StagePublisher,
		Status:   StatusComplete,
		Run:      run.Clone(),
		Terminal: true,
	})
}

// stageInput combines prior results per the forward data-flow graph.
func (o *Orchestrator) stageInput(stage agent.Stage, idea string, run *PipelineRun) string {
	switch stage {
	case agent.StageBrief:
		return agent.BriefInput(idea)
	case agent.StageWriter:
		return agent.WriterInput(run.Results[agent.StageBrief])
	case agent.StageVisual:
		return agent.VisualInput(run.Results[agent.StageWriter])
	case agent.StageReviewer:
		return agent.ReviewerInput(
			run.Results[agent.StageBrief],
			run.Results[agent.StageWriter],
			run.Results[agent.StageVisual],
		)
	default:
		return agent.PublisherInput(
			run.Results[agent.StageBrief],
			run.Results[agent.StageWriter],
			run.Results[agent.StageVisual],
			run.Results[agent.StageReviewer],
		)
	}
}

// markRemaining flags every stage after failed as errored; their agents are
// never invoked.
func (o *Orchestrator) markRemaining(run *PipelineRun, failed agent.Stage) {
	past := false
	for _, s := range agent.Stages() {
		if past {
			run.Statuses[s] = StatusError
		}
		if s == failed {
			past = true
		}
	}
}

// QuickRun executes only the first two stages: a fast brief plus draft for
// interactive use. It reads through the cache but never writes it, since
// cache entries hold complete five-stage runs only. A failed brief halts the
// writer.
func (o *Orchestrator) QuickRun(ctx context.Context, idea string) (brief, story agent.StageResult) {
	key := strings.TrimSpace(idea)
	if cached, ok := o.store.Get(key); ok {
		return cached.Results[agent.StageBrief], cached.Results[agent.StageWriter]
	}

	brief = o.agents[agent.StageBrief].Run(ctx, agent.BriefInput(key))
	if brief.IsError() {
		story = agent.ErrorResult(agent.StageError{
			Type:    agent.ErrStageExecution,
			Message: "writer skipped: brief failed",
		})
		return brief, story
	}
	story = o.agents[agent.StageWriter].Run(ctx, agent.WriterInput(brief))
	return brief, story
}
