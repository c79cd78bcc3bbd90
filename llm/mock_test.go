package llm

import (
	"context"
	"strings"
	"testing"
)

func TestMockClientRoutesBySystemInstruction(t *testing.T) {
	cases := []struct {
		system string
		want   string
	}{
		{"You are the Brief Agent.", `"title": "The Mock Expedition"`},
		{"You are the Writer Agent.", "Sam tightened the last screw"},
		{"You are the Visual Agent.", `"scene_description"`},
		{"You are the Reviewer Agent.", `"score": 82`},
		{"You are the Publisher Agent.", "# The Mock Expedition"},
	}
	var m MockClient
	for _, tc := range cases {
		out, err := m.Complete(context.Background(), "any-model", Prompt{System: tc.system, User: "idea"})
		if err != nil {
			t.Fatalf("%s: %v", tc.system, err)
		}
		if !strings.Contains(out, tc.want) {
			t.Errorf("%s: output %q missing %q", tc.system, out, tc.want)
		}
	}
}

func TestMockClientUnrecognizedInstruction(t *testing.T) {
	var m MockClient
	out, err := m.Complete(context.Background(), "any-model", Prompt{System: "You are a Weather Agent.", User: "idea"})
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(out, "# The Mock Expedition") {
		t.Fatalf("unrecognized instruction got publisher output: %q", out)
	}
	if !strings.Contains(out, "unrecognized instruction") {
		t.Fatalf("output = %q", out)
	}
}
