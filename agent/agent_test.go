package agent

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"strings"
	"testing"
	"time"

	"storycraft/llm"
)

type cannedCompleter struct {
	out string
	err error
}

func (c cannedCompleter) Complete(context.Context, string, llm.Prompt) (string, error) {
	return c.out, c.err
}

func testAgents(t *testing.T, c llm.Completer) (Set, *Memory) {
	t.Helper()
	mem, err := NewMemory(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	caller := llm.NewCaller(c, 1, time.Second)
	return NewSet(caller, "", mem, nil), mem
}

func TestBriefParsesJSONObject(t *testing.T) {
	agents, _ := testAgents(t, cannedCompleter{out: `{"title": "The Last Flower", "logline": "x"}`})
	res := agents[StageBrief].Run(context.Background(), BriefInput("a robot"))
	if res.Kind != KindObject {
		t.Fatalf("kind = %s", res.Kind)
	}
	if res.Object["title"] != "The Last Flower" {
		t.Fatalf("object = %v", res.Object)
	}
}

func TestBriefFallbackWrapsRawText(t *testing.T) {
	agents, _ := testAgents(t, cannedCompleter{out: "Sure! Here is an idea about a robot."})
	res := agents[StageBrief].Run(context.Background(), BriefInput("a robot"))
	if res.Kind != KindObject {
		t.Fatalf("kind = %s", res.Kind)
	}
	raw, ok := res.Object["raw_brief"].(string)
	if !ok || !strings.Contains(raw, "robot") {
		t.Fatalf("raw text not preserved: %v", res.Object)
	}
}

func TestBriefStripsMarkdownFences(t *testing.T) {
	agents, _ := testAgents(t, cannedCompleter{out: "```json\n{\"title\": \"Fenced\"}\n```"})
	res := agents[StageBrief].Run(context.Background(), BriefInput("x"))
	if res.Kind != KindObject || res.Object["title"] != "Fenced" {
		t.Fatalf("fences not handled: %+v", res)
	}
}

func TestVisualParsesList(t *testing.T) {
	agents, _ := testAgents(t, cannedCompleter{out: `[{"id":1},{"id":2},{"id":3}]`})
	res := agents[StageVisual].Run(context.Background(), VisualInput(TextResult("story")))
	if res.Kind != KindList || len(res.List) != 3 {
		t.Fatalf("list = %+v", res)
	}
}

func TestVisualFallbackWrapsRawText(t *testing.T) {
	agents, _ := testAgents(t, cannedCompleter{out: "scene one: a field of ash"})
	res := agents[StageVisual].Run(context.Background(), VisualInput(TextResult("story")))
	if res.Kind != KindObject {
		t.Fatalf("kind = %s", res.Kind)
	}
	if _, ok := res.Object["raw_visuals"]; !ok {
		t.Fatalf("fallback field missing: %v", res.Object)
	}
}

func TestWriterIsAlwaysText(t *testing.T) {
	agents, _ := testAgents(t, cannedCompleter{out: `{"looks":"like json"}`})
	res := agents[StageWriter].Run(context.Background(), WriterInput(ObjectResult(map[string]any{"title": "t"})))
	if res.Kind != KindText || res.Text != `{"looks":"like json"}` {
		t.Fatalf("writer output must pass through: %+v", res)
	}
}

func TestModelFailureBecomesErrorResult(t *testing.T) {
	agents, _ := testAgents(t, cannedCompleter{err: errors.New("connection refused")})
	res := agents[StageWriter].Run(context.Background(), "prompt")
	if !res.IsError() || res.Error.Type != ErrModelCall {
		t.Fatalf("expected model_call error, got %+v", res)
	}
	if !strings.Contains(res.Error.Message, llm.FailurePrefix) {
		t.Fatalf("marker text not carried: %q", res.Error.Message)
	}
}

func TestRunWritesDurableSlot(t *testing.T) {
	agents, mem := testAgents(t, cannedCompleter{out: `{"title": "Persisted"}`})
	agents[StageBrief].Run(context.Background(), BriefInput("x"))

	stored, err := mem.Read(StageBrief)
	if err != nil {
		t.Fatal(err)
	}
	if stored.Kind != KindObject || stored.Object["title"] != "Persisted" {
		t.Fatalf("slot = %+v", stored)
	}
}

func TestSlotOverwrittenNotAppended(t *testing.T) {
	mem, err := NewMemory(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	for _, title := range []string{"first", "second"} {
		c := cannedCompleter{out: `{"title": "` + title + `"}`}
		caller := llm.NewCaller(c, 1, time.Second)
		agents := NewSet(caller, "", mem, nil)
		agents[StageBrief].Run(context.Background(), BriefInput("x"))
	}

	data, err := os.ReadFile(mem.SlotPath(StageBrief))
	if err != nil {
		t.Fatal(err)
	}
	var res StageResult
	if err := json.Unmarshal(data, &res); err != nil {
		t.Fatalf("slot is not a single JSON document: %v", err)
	}
	if res.Object["title"] != "second" {
		t.Fatalf("slot not overwritten: %v", res.Object)
	}
}

func TestErrorResultStillWritesSlot(t *testing.T) {
	agents, mem := testAgents(t, cannedCompleter{err: errors.New("boom")})
	agents[StageReviewer].Run(context.Background(), "prompt")

	stored, err := mem.Read(StageReviewer)
	if err != nil {
		t.Fatal(err)
	}
	if !stored.IsError() {
		t.Fatalf("slot should hold the error record, got %+v", stored)
	}
}

func TestSummaryTruncatesAndFlattens(t *testing.T) {
	res := TextResult(strings.Repeat("line one\nline two ", 30))
	s := res.Summary()
	if len([]rune(s)) > 120 {
		t.Fatalf("summary too long: %d", len(s))
	}
	if strings.Contains(s, "\n") {
		t.Fatal("summary must be one line")
	}
}

func TestObjectSummaryPrefersTitle(t *testing.T) {
	res := ObjectResult(map[string]any{"title": "A Short Title", "logline": "x"})
	if res.Summary() != "A Short Title" {
		t.Fatalf("summary = %q", res.Summary())
	}
}
