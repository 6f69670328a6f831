package commands

import (
	"strings"
	"testing"

	"github.com/varbhar/llm-council/internal/models"
)

func TestRootCommandMetadata(t *testing.T) {
	if rootCmd.Use != "council [question]" {
		t.Errorf("unexpected Use: %q", rootCmd.Use)
	}
	if rootCmd.RunE == nil {
		t.Error("root command should be runnable")
	}
}

func TestSubcommandsRegistered(t *testing.T) {
	want := map[string]bool{
		"sources": false,
		"members": false,
		"config":  false,
	}
	for _, cmd := range rootCmd.Commands() {
		if _, ok := want[cmd.Name()]; ok {
			want[cmd.Name()] = true
		}
	}
	for name, found := range want {
		if !found {
			t.Errorf("subcommand %q not registered", name)
		}
	}
}

func TestRootFlags(t *testing.T) {
	for _, name := range []string{"file", "output", "raw", "no-context", "copy", "model", "context-limit", "version"} {
		if rootCmd.Flags().Lookup(name) == nil {
			t.Errorf("flag %q not registered", name)
		}
	}
}

func TestCombineResponses(t *testing.T) {
	responses := []models.Response{
		{Model: "openai/gpt-4", Response: "First answer.\n"},
		{Model: "x-ai/grok-4", Response: "Second answer."},
	}

	combined := combineResponses(responses)

	for _, want := range []string{"## openai/gpt-4", "First answer.", "## x-ai/grok-4", "Second answer."} {
		if !strings.Contains(combined, want) {
			t.Errorf("combined output missing %q:\n%s", want, combined)
		}
	}
	if strings.Index(combined, "openai/gpt-4") > strings.Index(combined, "x-ai/grok-4") {
		t.Error("combined output should preserve council order")
	}
}

func TestCombineResponsesEmpty(t *testing.T) {
	if got := combineResponses(nil); got != "" {
		t.Errorf("no responses should combine to nothing, got %q", got)
	}
}

func TestRootSilencesCobraErrorOutput(t *testing.T) {
	if !rootCmd.SilenceErrors {
		t.Error("errors should be rendered once by Execute, not echoed by cobra")
	}
}
