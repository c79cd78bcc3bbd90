package llm

import (
	"context"
	"strings"
)

// MockClient is an offline Completer for local runs. It keys on the system
// instruction to return a well-formed canned response for each stage, so the
// full pipeline can be exercised without an API key.
type MockClient struct{}

func (MockClient) Complete(_ context.Context, _ string, prompt Prompt) (string, error) {
	switch {
	case strings.Contains(prompt.System, "Brief Agent"):
		return `{"title": "The Mock Expedition", "logline": "A placeholder brief for offline runs.", "themes": ["testing"], "characters": [{"name": "Sam", "role": "protagonist", "traits": ["curious"]}], "setting": "a quiet workshop", "tone": "light", "target_audience": "developers", "key_scenes": ["the first build"], "image_requirements": ["workshop interior"]}`, nil
	case strings.Contains(prompt.System, "Writer Agent"):
		var sb strings.Builder
		sb.WriteString("Sam tightened the last screw and stepped back from the bench. ")
		sb.WriteString("The machine hummed, uncertain at first, then steady. ")
		sb.WriteString("Outside, the workshop lights flickered against the early dark, ")
		sb.WriteString("and for the first time in weeks the plan felt possible.")
		return sb.String(), nil
	case strings.Contains(prompt.System, "Visual Agent"):
		return `[{"id": 1, "scene_description": "a cluttered workshop at dusk", "camera": "wide", "lighting": "warm tungsten", "mood": "hopeful", "style": "storybook watercolor", "safety_notes": "none"}, {"id": 2, "scene_description": "hands adjusting a small machine", "camera": "close-up", "lighting": "lamp glow", "mood": "focused", "style": "storybook watercolor", "safety_notes": "none"}, {"id": 3, "scene_description": "lights flickering over the bench", "camera": "medium", "lighting": "low key", "mood": "quiet triumph", "style": "storybook watercolor", "safety_notes": "none"}]`, nil
	case strings.Contains(prompt.System, "Reviewer Agent"):
		return `{"verdict": "Approved", "score": 82, "issues": ["pacing is brisk in the middle"], "recommendations": "Slow the second act down by a beat.", "summary": "A tidy draft with a clear arc."}`, nil
	case strings.Contains(prompt.System, "Publisher Agent"):
		return "# The Mock Expedition\n\n*by StoryCraft*\n\nSam tightened the last screw and stepped back from the bench.\n\n![Scene 1](placeholder)\n*a cluttered workshop at dusk*\n", nil
	default:
		// An unrecognized instruction should be obvious in output, not pass
		// for a publisher draft.
		return "mock response for unrecognized instruction", nil
	}
}
