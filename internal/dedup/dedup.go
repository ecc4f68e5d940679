// Package dedup decides which question drafts are new to the question bank.
package dedup

import (
	"strings"

	"github.com/examgen/examgen-backend/internal/model"
)

const trailingPunct = ".,!?;:"

// Normalize is the comparison key for question text: lower-cased, whitespace
// collapsed and trailing punctuation removed. Normalize(Normalize(s)) == Normalize(s).
func Normalize(s string) string {
	s = strings.Join(strings.Fields(strings.ToLower(s)), " ")
	for {
		trimmed := strings.TrimRight(strings.TrimRight(s, trailingPunct), " ")
		if trimmed == s {
			return s
		}
		s = trimmed
	}
}

// Result is the outcome of filtering one batch.
type Result struct {
	Accepted              []model.QuestionDraft
	SkippedExisting       int
	SkippedBatchDuplicate int
}

// Skipped is the total number of drafts rejected as duplicates.
func (r Result) Skipped() int {
	return r.SkippedExisting + r.SkippedBatchDuplicate
}

// Filter keeps drafts whose normalized text is neither in existing nor seen
// earlier in the batch. Drafts with empty text are dropped without counting.
// existing must already hold normalized keys.
func Filter(drafts []model.QuestionDraft, existing map[string]struct{}) Result {
	res := Result{Accepted: make([]model.QuestionDraft, 0, len(drafts))}
	seen := make(map[string]struct{}, len(drafts))

	for _, d := range drafts {
		key := Normalize(d.Text)
		if key == "" {
			continue
		}
		if _, ok := existing[key]; ok {
			res.SkippedExisting++
			continue
		}
		if _, ok := seen[key]; ok {
			res.SkippedBatchDuplicate++
			continue
		}
		seen[key] = struct{}{}
		res.Accepted = append(res.Accepted, d)
	}
	return res
}

// KeySet normalizes a list of stored texts into a lookup set.
func KeySet(texts []string) map[string]struct{} {
	set := make(map[string]struct{}, len(texts))
	for _, t := range texts {
		if k := Normalize(t); k != "" {
			set[k] = struct{}{}
		}
	}
	return set
}
