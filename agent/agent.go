package agent

import (
	"context"
	"fmt"

	"storycraft/llm"
	"storycraft/logbook"
)

// Agent wraps one pipeline stage: a fixed system instruction and model,
// delegation to the model caller, stage-specific post-processing, and the
// two side effects every invocation carries (durable slot, logbook line).
type Agent struct {
	stage  Stage
	model  string
	system string
	caller *llm.Caller
	post   func(raw string) StageResult
	mem    *Memory
	log    *logbook.Logbook
}

// Set holds the five agents keyed by stage.
type Set map[Stage]*Agent

// NewSet builds all five agents over a shared caller. mem and log may be nil
// when persistence is not wanted (tests).
func NewSet(caller *llm.Caller, model string, mem *Memory, log *logbook.Logbook) Set {
	if model == "" {
		model = DefaultModel
	}
	mk := func(stage Stage, system string, post func(string) StageResult) *Agent {
		return &Agent{
			stage:  stage,
			model:  model,
			system: system,
			caller: caller,
			post:   post,
			mem:    mem,
			log:    log,
		}
	}
	return Set{
		StageBrief:     mk(StageBrief, briefSystem, postprocessBrief),
		StageWriter:    mk(StageWriter, writerSystem, postprocessText),
		StageVisual:    mk(StageVisual, visualSystem, postprocessVisual),
		StageReviewer:  mk(StageReviewer, reviewerSystem, postprocessReview),
		StagePublisher: mk(StagePublisher, publisherSystem, postprocessText),
	}
}

// Stage returns the stage this agent implements.
func (a *Agent) Stage() Stage { return a.stage }

// Run executes the stage against an already-shaped user prompt and returns
// exactly one StageResult. Failures never escape: model-call failure markers
// and panics in post-processing both become error results, and the durable
// slot is written in every case so the latest state stays observable.
func (a *Agent) Run(ctx context.Context, user string) (res StageResult) {
	defer func() {
		if r := recover(); r != nil {
			res = ErrorResult(StageError{
				Type:    ErrStageExecution,
				Message: fmt.Sprintf("%s agent panicked: %v", a.stage, r),
			})
		}
		a.persist(res)
	}()

	raw := a.caller.Invoke(ctx, a.model, a.system, user)
	if llm.IsFailure(raw) {
		return ErrorResult(StageError{
			Type:    ErrModelCall,
			Message: raw,
		})
	}
	return a.post(raw)
}

// persist writes the slot and logbook line. Both are best-effort side
// channels and must not turn a finished stage into a failure.
func (a *Agent) persist(res StageResult) {
	if a.mem != nil {
		if err := a.mem.Write(a.stage, res); err != nil && a.log != nil {
			a.log.Step(string(a.stage), "slot write failed: "+err.Error())
		}
	}
	if a.log != nil {
		a.log.Step(string(a.stage), res.Summary())
	}
}
