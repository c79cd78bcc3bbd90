package agent

import (
	"encoding/json"
	"strings"
)

// Stage names the five pipeline steps, in execution order.
type Stage string

const (
	StageBrief     Stage = "brief"
	StageWriter    Stage = "writer"
	StageVisual    Stage = "visual"
	StageReviewer  Stage = "reviewer"
	StagePublisher Stage = "publisher"
)

// Stages returns the execution order.
func Stages() []Stage {
	return []Stage{StageBrief, StageWriter, StageVisual, StageReviewer, StagePublisher}
}

// Kind tags the variant held by a StageResult.
type Kind string

const (
	KindText   Kind = "text"
	KindObject Kind = "object"
	KindList   Kind = "list"
	KindError  Kind = "error"
)

// ErrorType classifies stage failures.
type ErrorType string

const (
	ErrModelCall        ErrorType = "model_call"
	ErrMalformedOutput  ErrorType = "malformed_output"
	ErrSchemaValidation ErrorType = "schema_validation"
	ErrStageExecution   ErrorType = "stage_execution"
)

// StageError is the error variant payload. Raw preserves the model text that
// failed to parse; Candidate preserves a parsed value that failed validation.
type StageError struct {
	Type      ErrorType      `json:"type"`
	Message   string         `json:"message"`
	Raw       string         `json:"raw,omitempty"`
	Candidate map[string]any `json:"candidate,omitempty"`
}

// StageResult is the tagged outcome of one stage. Exactly one of the payload
// fields is populated, selected by Kind. Values are never mutated after a
// stage writes them.
type StageResult struct {
	Kind   Kind           `json:"kind"`
	Text   string         `json:"text,omitempty"`
	Object map[string]any `json:"object,omitempty"`
	List   []any          `json:"list,omitempty"`
	Error  *StageError    `json:"error,omitempty"`
}

func TextResult(s string) StageResult {
	return StageResult{Kind: KindText, Text: s}
}

func ObjectResult(m map[string]any) StageResult {
	return StageResult{Kind: KindObject, Object: m}
}

func ListResult(l []any) StageResult {
	return StageResult{Kind: KindList, List: l}
}

func ErrorResult(e StageError) StageResult {
	return StageResult{Kind: KindError, Error: &e}
}

func (r StageResult) IsError() bool { return r.Kind == KindError }

// Payload returns the variant value in a form suitable for composite
// serialization into a downstream prompt.
func (r StageResult) Payload() any {
	switch r.Kind {
	case KindText:
		return r.Text
	case KindObject:
		return r.Object
	case KindList:
		return r.List
	case KindError:
		return map[string]any{"error": string(r.Error.Type), "message": r.Error.Message}
	default:
		return nil
	}
}

const summaryLimit = 120

// Summary renders a one-line description for the logbook, truncated to 120
// characters with newlines flattened.
func (r StageResult) Summary() string {
	var s string
	switch r.Kind {
	case KindText:
		s = r.Text
	case KindObject:
		if title, ok := r.Object["title"].(string); ok && title != "" {
			s = title
		} else {
			s = compactJSON(r.Object)
		}
	case KindList:
		s = compactJSON(r.List)
	case KindError:
		s = "ERROR: " + r.Error.Message
	}
	s = strings.Join(strings.Fields(s), " ")
	if runes := []rune(s); len(runes) > summaryLimit {
		s = string(runes[:summaryLimit])
	}
	return s
}

func compactJSON(v any) string {
	b, err := json.Marshal(v)
	if err != nil {
		return ""
	}
	return string(b)
}
