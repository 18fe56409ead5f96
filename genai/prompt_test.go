package genai

import (
	"strings"
	"testing"
)

func TestWorkspaceContent_Empty(t *testing.T) {
	if got := workspaceContent(nil); got != "" {
		t.Fatalf("workspaceContent(nil) = %q, want empty", got)
	}
	if got := workspaceContent([]string{}); got != "" {
		t.Fatalf("workspaceContent([]) = %q, want empty", got)
	}
}

func TestWorkspaceContent_NumbersFromOne(t *testing.T) {
	got := workspaceContent([]string{"alpha", "beta", "gamma"})

	if !strings.HasPrefix(got, "\n=== CONTENT SECTIONS ===\n") {
		t.Fatalf("missing header: %q", got)
	}
	for _, want := range []string{"\n1. alpha\n", "\n2. beta\n", "\n3. gamma\n"} {
		if !strings.Contains(got, want) {
			t.Errorf("workspaceContent missing %q in %q", want, got)
		}
	}
}

func TestSystemPrompt_CoversFewShotExamples(t *testing.T) {
	for _, name := range []string{
		"Strategy & Resource Mobilization",
		"Program Execution & Financial Management",
		"Performance & Assurance",
	} {
		if !strings.Contains(systemPrompt, name) {
			t.Errorf("system prompt lacks few-shot example for %q", name)
		}
	}
	if !strings.Contains(systemPrompt, "This capability is not defined in the current framework.") {
		t.Error("system prompt lacks the not-found instruction")
	}
}
