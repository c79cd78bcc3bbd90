package agent

import (
	"encoding/json"
	"fmt"
)

// DefaultModel is the chat model used by every stage unless overridden.
const DefaultModel = "llama-3.1-8b-instant"

const (
	briefSystem = "You are the Brief Agent. Given a short idea, produce a concise JSON brief " +
		"with fields: title, logline, themes (list), characters (list of {name, role, traits}), " +
		"setting, tone, target_audience, key_scenes (list), image_requirements (list). " +
		"Only output valid JSON."

	writerSystem = "You are the Writer Agent. Turn the structured brief into a compelling short story (~800-1200 words). " +
		"Use vivid description and clear character voice. Output only the story text."

	visualSystem = "You are the Visual Agent. From the story, produce 3 image-generation prompts for key scenes. " +
		"For each, include: id, scene_description, camera, lighting, mood, style (artistic references), " +
		"and safety_notes. Output JSON list."

	reviewerSystem = "You are the Reviewer Agent. Evaluate the brief, story, and visuals. Produce a strict JSON matching the schema: " +
		"verdict (Approved/Needs Work/Rejected), score (0-100), issues (list), recommendations (string), summary (string). " +
		"Output only JSON that validates against the schema."

	publisherSystem = "You are the Publisher Agent. Assemble a final polished Markdown story using the brief, story text, visuals, and reviewer notes. " +
		"Include image placeholders with labels and the visual prompts as captions. Output only Markdown."
)

// BriefInput shapes the raw idea into the brief prompt.
func BriefInput(idea string) string {
	return fmt.Sprintf("Idea: %s\nReturn a single JSON object as described.", idea)
}

// WriterInput shapes the brief result into the writer prompt.
func WriterInput(brief StageResult) string {
	return "Brief:\n" + canonical(brief.Payload())
}

// VisualInput shapes the writer's story into the visual prompt.
func VisualInput(story StageResult) string {
	return "Story:\n" + canonical(story.Payload())
}

// ReviewerInput combines the three upstream results.
func ReviewerInput(brief, story, visuals StageResult) string {
	return "Context:\n" + canonical(map[string]any{
		"brief":   brief.Payload(),
		"story":   story.Payload(),
		"visuals": visuals.Payload(),
	})
}

// PublisherInput combines everything produced so far.
func PublisherInput(brief, story, visuals, review StageResult) string {
	return "Context:\n" + canonical(map[string]any{
		"brief":    brief.Payload(),
		"story":    story.Payload(),
		"visuals":  visuals.Payload(),
		"reviewer": review.Payload(),
	})
}

// canonical serializes structured values to a deterministic text encoding
// (json.Marshal sorts object keys); free text passes through unchanged.
func canonical(v any) string {
	if s, ok := v.(string); ok {
		return s
	}
	b, err := json.Marshal(v)
	if err != nil {
		return fmt.Sprint(v)
	}
	return string(b)
}
