package llm

import (
	"fmt"
	"strings"

	"github.com/examgen/examgen-backend/internal/model"
)

const (
	// MaxSourceRunes is how much of an extracted document is sent to the model.
	MaxSourceRunes = 20000

	minFreeformCount = 1
	maxFreeformCount = 5
)

// SystemPrompt is the system turn sent with every generation request.
const SystemPrompt = "You are an expert academic examiner. Generate clear, high-quality school exam questions based on user instructions."

// FreeformRequest is the input of a teacher's free-form generation.
type FreeformRequest struct {
	ClassName   string
	Subject     string
	Instruction string
	Count       int
}

// BuildDocumentPrompt builds the extraction prompt for a source document.
// Only the first MaxSourceRunes characters of text are embedded.
func BuildDocumentPrompt(text string, meta model.DraftMeta) string {
	var b strings.Builder

	b.WriteString("You are an expert exam setter. Your goal is to generate high-quality exam questions based on the provided material.\n\n")
	b.WriteString("Context:\n")
	fmt.Fprintf(&b, "- Class: %s\n", meta.ClassName)
	fmt.Fprintf(&b, "- Subject: %s\n", meta.Subject)
	fmt.Fprintf(&b, "- Chapter: %s\n", meta.Chapter)
	fmt.Fprintf(&b, "- Unit: %s\n\n", meta.Unit)

	b.WriteString("Instructions:\n")
	b.WriteString("1. Analyze the \"Raw Material\" below.\n")
	b.WriteString("2. Extract concepts, definitions, and facts.\n")
	b.WriteString("3. Generate a set of questions (approx 5-10) covering these concepts.\n")
	b.WriteString("4. VARIETY: Generate a mix of 60% MCQs, 30% Short Answers, and 10% Long Answers.\n")
	b.WriteString("5. If the text is sparse or unclear, use the Chapter/Unit metadata to generate topically relevant questions. NEVER return an empty array.\n\n")

	b.WriteString("Output Format (Strict JSON):\n")
	b.WriteString("[\n  {\n")
	b.WriteString("    \"text\": \"Question content...\",\n")
	b.WriteString("    \"type\": \"MCQ\", // or \"SHORT\", \"LONG\"\n")
	b.WriteString("    \"options\": [\"A\", \"B\", \"C\", \"D\"], // Required for MCQs\n")
	b.WriteString("    \"answer\": \"Correct Answer\",\n")
	fmt.Fprintf(&b, "    \"className\": %q,\n", meta.ClassName)
	fmt.Fprintf(&b, "    \"subject\": %q,\n", meta.Subject)
	fmt.Fprintf(&b, "    \"chapter\": %q,\n", meta.Chapter)
	fmt.Fprintf(&b, "    \"unit\": %q\n", meta.Unit)
	b.WriteString("  }\n]\n\n")

	b.WriteString("Raw Material:\n")
	b.WriteString(truncateRunes(text, MaxSourceRunes))
	b.WriteString("\n")

	return b.String()
}

// BuildFreeformPrompt builds the prompt for instruction-driven generation.
// The question type is left to the instruction.
func BuildFreeformPrompt(req FreeformRequest) string {
	count := ClampCount(req.Count)

	var b strings.Builder
	fmt.Fprintf(&b, "Generate exactly %d exam questions for Class %s %s.\n", count, req.ClassName, req.Subject)
	fmt.Fprintf(&b, "Instructions: %s\n\n", req.Instruction)
	b.WriteString("IMPORTANT: Follow the instruction's requested question type (MCQ, Short, or Long).\n")
	b.WriteString("Respond ONLY with a valid JSON array of objects. No intro, no outro.\n")
	b.WriteString("Format:\n")
	b.WriteString("[\n  {\n")
	b.WriteString("    \"type\": \"MCQ or SHORT or LONG\",\n")
	b.WriteString("    \"question\": \"Question text here\",\n")
	b.WriteString("    \"options\": [\"Option 1\", \"Option 2\", \"Option 3\", \"Option 4\"],\n")
	b.WriteString("    \"answer\": \"Option 1\"\n")
	b.WriteString("  }\n]\n")

	return b.String()
}

// ClampCount bounds a free-form question count to [1,5].
func ClampCount(n int) int {
	if n < minFreeformCount {
		return minFreeformCount
	}
	if n > maxFreeformCount {
		return maxFreeformCount
	}
	return n
}

func truncateRunes(s string, n int) string {
	if len(s) <= n {
		return s
	}
	count := 0
	for i := range s {
		if count == n {
			return s[:i]
		}
		count++
	}
	return s
}
