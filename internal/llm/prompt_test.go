package llm

import (
	"strings"
	"testing"

	"github.com/examgen/examgen-backend/internal/model"
)

func TestBuildDocumentPrompt_TruncatesSource(t *testing.T) {
	source := strings.Repeat("ж", 50000)
	meta := model.DraftMeta{ClassName: "10", Subject: "Physics", Chapter: "Motion", Unit: "1"}

	prompt := BuildDocumentPrompt(source, meta)

	if got := strings.Count(prompt, "ж"); got != MaxSourceRunes {
		t.Fatalf("embedded %d source characters, want %d", got, MaxSourceRunes)
	}
	for _, want := range []string{"- Class: 10", "- Subject: Physics", "- Chapter: Motion", "- Unit: 1", "NEVER return an empty array", "Raw Material:"} {
		if !strings.Contains(prompt, want) {
			t.Errorf("prompt missing %q", want)
		}
	}
}

func TestBuildDocumentPrompt_ShortSourceKeptWhole(t *testing.T) {
	prompt := BuildDocumentPrompt("Newton's first law states...", model.DraftMeta{})
	if !strings.Contains(prompt, "Newton's first law states...") {
		t.Fatal("short source should be embedded unchanged")
	}
}

func TestBuildDocumentPrompt_Deterministic(t *testing.T) {
	meta := model.DraftMeta{ClassName: "8", Subject: "Biology"}
	if BuildDocumentPrompt("cells", meta) != BuildDocumentPrompt("cells", meta) {
		t.Fatal("prompt should be deterministic")
	}
}

func TestBuildFreeformPrompt(t *testing.T) {
	tests := []struct {
		count int
		want  string
	}{
		{3, "Generate exactly 3 exam questions for Class 9 Chemistry."},
		{9, "Generate exactly 5 exam questions"},
		{-2, "Generate exactly 1 exam questions"},
	}
	for _, tt := range tests {
		prompt := BuildFreeformPrompt(FreeformRequest{ClassName: "9", Subject: "Chemistry", Instruction: "Acids and bases, MCQ only", Count: tt.count})
		if !strings.Contains(prompt, tt.want) {
			t.Errorf("count %d: prompt missing %q\n%s", tt.count, tt.want, prompt)
		}
		if !strings.Contains(prompt, "Instructions: Acids and bases, MCQ only") {
			t.Errorf("count %d: instruction not embedded", tt.count)
		}
	}
}

func TestTruncateRunes(t *testing.T) {
	if got := truncateRunes("héllo", 2); got != "hé" {
		t.Errorf("got %q", got)
	}
	if got := truncateRunes("abc", 10); got != "abc" {
		t.Errorf("got %q", got)
	}
}
