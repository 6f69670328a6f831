package commands

import (
	"bytes"
	"strings"
	"testing"
)

func TestPrintMembers(t *testing.T) {
	var buf bytes.Buffer
	printMembers(&buf, []string{"openai/gpt-5.1", "local-model"})

	out := buf.String()
	for _, want := range []string{"1.", "gpt-5.1", "openai/gpt-5.1", "2.", "local-model"} {
		if !strings.Contains(out, want) {
			t.Errorf("members listing missing %q:\n%s", want, out)
		}
	}
}

func TestPrintMembersEmpty(t *testing.T) {
	var buf bytes.Buffer
	printMembers(&buf, nil)
	if buf.Len() != 0 {
		t.Errorf("empty council should print nothing, got %q", buf.String())
	}
}
