package llm

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/examgen/examgen-backend/internal/model"
)

const (
	untitledQuestion = "Untitled Question"
	fallbackRunes    = 500
	minLineRunes     = 3
)

var (
	reQuestionStart = regexp.MustCompile(`(?i)^(\d+\.|\d+\)|Q:|###|Question|\*\*Question)`)
	reQuestionMark  = regexp.MustCompile(`(?i)^(?:###|\*\*|\d+\.|\d+\))?\s*(?:Q:)?\s*(?:\*\*)?\s*(?:Question\b\s*\d*\s*[:.)]?)?\s*(?:\*\*)?\s*`)
	reOption        = regexp.MustCompile(`(?i)^[A-D][.)]\s*`)
	reAnswer        = regexp.MustCompile(`(?i)^(?:\*\*)?\s*(?:(?:✅|✔\x{FE0F}?)\s*(?:(?:Correct\s*)?Ans(?:wer)?|Correct)?|(?:Correct\s*)?Ans(?:wer)?|Correct)\s*:\s*(?:\*\*)?\s*`)
)

// ExtractJSONArray strips markdown fences, slices from the first '[' to the
// last ']' and decodes the result as a JSON array.
func ExtractJSONArray(text string) ([]json.RawMessage, bool) {
	cleaned := strings.ReplaceAll(text, "```json", "")
	cleaned = strings.ReplaceAll(cleaned, "```", "")
	cleaned = strings.TrimSpace(cleaned)

	first := strings.IndexByte(cleaned, '[')
	last := strings.LastIndexByte(cleaned, ']')
	if first != -1 && last > first {
		cleaned = cleaned[first : last+1]
	}

	var arr []json.RawMessage
	if err := json.Unmarshal([]byte(cleaned), &arr); err != nil {
		return nil, false
	}
	return arr, true
}

// ParseStrict decodes a document-extraction reply. Anything that is not a
// JSON array yields ErrInvalidAIResponse.
func ParseStrict(raw string, meta model.DraftMeta) ([]model.QuestionDraft, error) {
	arr, ok := ExtractJSONArray(raw)
	if !ok {
		return nil, fmt.Errorf("%w: AI response is not a JSON array", ErrInvalidAIResponse)
	}

	drafts := make([]model.QuestionDraft, 0, len(arr))
	for _, el := range arr {
		var obj map[string]any
		if err := json.Unmarshal(el, &obj); err != nil || obj == nil {
			continue
		}

		qType := model.NormalizeQuestionType(stringField(obj, "type"))
		if qType == "" {
			qType = model.QuestionTypeMCQ
		}

		drafts = append(drafts, model.QuestionDraft{
			Text:      stringField(obj, "text", "question"),
			Type:      qType,
			Options:   optionsField(obj),
			Answer:    stringField(obj, "answer"),
			ClassName: firstNonEmpty(stringField(obj, "className", "class"), meta.ClassName),
			Subject:   firstNonEmpty(stringField(obj, "subject"), meta.Subject),
			Chapter:   firstNonEmpty(stringField(obj, "chapter"), meta.Chapter),
			Unit:      firstNonEmpty(stringField(obj, "unit"), meta.Unit),
		})
	}
	return drafts, nil
}

// ParseTolerant turns any model reply into at least one and at most count
// drafts. It tries a JSON array, then a line heuristic, then falls back to
// the leading text of the reply.
func ParseTolerant(raw, requestedType string, count int) []model.QuestionDraft {
	if count < 1 {
		count = 1
	}
	reqType := model.NormalizeQuestionType(requestedType)

	if drafts := parseJSONTier(raw, reqType); len(drafts) > 0 {
		return limit(drafts, count)
	}
	if drafts := parseLineTier(raw, reqType); len(drafts) > 0 {
		return limit(drafts, count)
	}

	text := truncateRunes(strings.TrimSpace(raw), fallbackRunes)
	if text == "" {
		text = untitledQuestion
	}
	return []model.QuestionDraft{{
		Text:    text,
		Type:    orDefault(reqType, model.QuestionTypeLong),
		Options: []string{},
	}}
}

func parseJSONTier(raw string, reqType model.QuestionType) []model.QuestionDraft {
	arr, ok := ExtractJSONArray(raw)
	if !ok {
		return nil
	}

	drafts := make([]model.QuestionDraft, 0, len(arr))
	for _, el := range arr {
		var obj map[string]any
		if err := json.Unmarshal(el, &obj); err != nil {
			var s string
			if json.Unmarshal(el, &s) == nil && strings.TrimSpace(s) != "" {
				obj = map[string]any{"question": s}
			}
		}

		draft := model.QuestionDraft{
			Text:    firstNonEmpty(stringField(obj, "question", "text"), untitledQuestion),
			Type:    orDefault(model.NormalizeQuestionType(stringField(obj, "type")), orDefault(reqType, model.QuestionTypeShort)),
			Options: []string{},
			Answer:  stringField(obj, "answer"),
		}
		if opts, ok := obj["options"].([]any); ok {
			draft.Options = toStrings(opts)
		}
		drafts = append(drafts, draft)
	}
	return drafts
}

func parseLineTier(raw string, reqType model.QuestionType) []model.QuestionDraft {
	var drafts []model.QuestionDraft
	var cur *model.QuestionDraft

	flush := func() {
		if cur != nil && cur.Text != "" {
			drafts = append(drafts, *cur)
		}
		cur = nil
	}

	for _, line := range strings.Split(raw, "\n") {
		line = strings.TrimSpace(line)
		if utf8.RuneCountInString(line) < minLineRunes {
			continue
		}

		switch {
		case reQuestionStart.MatchString(line):
			flush()
			cur = &model.QuestionDraft{
				Text:    cleanLine(reQuestionMark.ReplaceAllString(line, "")),
				Type:    orDefault(reqType, model.QuestionTypeShort),
				Options: []string{},
			}
		case cur == nil:
		case reOption.MatchString(line):
			cur.Type = model.QuestionTypeMCQ
			cur.Options = append(cur.Options, cleanLine(reOption.ReplaceAllString(line, "")))
		case reAnswer.MatchString(line):
			cur.Answer = cleanLine(reAnswer.ReplaceAllString(line, ""))
		case cur.Text == "":
			// "### Question 1" headings put the body on the next line.
			cur.Text = cleanLine(line)
		}
	}
	flush()
	return drafts
}

func cleanLine(s string) string {
	return strings.TrimSpace(strings.TrimRight(strings.TrimSpace(s), "*"))
}

func limit(drafts []model.QuestionDraft, n int) []model.QuestionDraft {
	if len(drafts) > n {
		return drafts[:n]
	}
	return drafts
}

func orDefault(t, fallback model.QuestionType) model.QuestionType {
	if t == "" {
		return fallback
	}
	return t
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}

// stringField returns the first key holding a non-empty scalar, rendered as text.
func stringField(obj map[string]any, keys ...string) string {
	for _, k := range keys {
		if s := scalarString(obj[k]); strings.TrimSpace(s) != "" {
			return s
		}
	}
	return ""
}

func scalarString(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(t)
	}
	return ""
}

func optionsField(obj map[string]any) []string {
	opts, ok := obj["options"].([]any)
	if !ok {
		return []string{}
	}
	return toStrings(opts)
}

func toStrings(vals []any) []string {
	out := make([]string, 0, len(vals))
	for _, v := range vals {
		if s := scalarString(v); s != "" {
			out = append(out, s)
		}
	}
	return out
}
