package model

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"
)

// QuestionDraft is a generated question that has not been persisted yet.
type QuestionDraft struct {
	Text      string       `json:"text" binding:"max=5000"`
	Type      QuestionType `json:"type"`
	Options   []string     `json:"options" binding:"omitempty,dive,max=1000"`
	Answer    string       `json:"answer" binding:"max=2000"`
	ClassName string       `json:"className" binding:"max=100"`
	Subject   string       `json:"subject" binding:"max=100"`
	Chapter   string       `json:"chapter" binding:"max=255"`
	Unit      string       `json:"unit" binding:"max=255"`
}

// DraftMeta is the topic context a generation request runs under.
type DraftMeta struct {
	ClassName string
	Subject   string
	Chapter   string
	Unit      string
}

// UploadMetaRequest holds the form fields sent with a source document.
type UploadMetaRequest struct {
	ClassName string `form:"className" binding:"required,max=100"`
	Subject   string `form:"subject" binding:"required,max=100"`
	Chapter   string `form:"chapter" binding:"required,max=255"`
	Unit      string `form:"unit" binding:"required,max=255"`
}

// Meta converts the form fields into a DraftMeta.
func (r UploadMetaRequest) Meta() DraftMeta {
	return DraftMeta{
		ClassName: strings.TrimSpace(r.ClassName),
		Subject:   strings.TrimSpace(r.Subject),
		Chapter:   strings.TrimSpace(r.Chapter),
		Unit:      strings.TrimSpace(r.Unit),
	}
}

// UploadResult is returned after a document has been turned into drafts.
type UploadResult struct {
	Count     int             `json:"count"`
	Questions []QuestionDraft `json:"questions"`
}

// SaveBatchRequest is the payload for committing reviewed drafts to the bank.
type SaveBatchRequest struct {
	Questions []QuestionDraft `json:"questions" binding:"required,min=1,dive"`
}

// SaveBatchResult summarizes a save-batch call.
type SaveBatchResult struct {
	Count   int    `json:"count"`
	Skipped int    `json:"skipped"`
	Message string `json:"message"`
}

// TeacherGenerateRequest is the payload for free-form question generation.
type TeacherGenerateRequest struct {
	ClassName    string  `json:"className" binding:"required,max=100"`
	Subject      string  `json:"subject" binding:"required,max=100"`
	Instruction  string  `json:"instruction" binding:"required,max=4000"`
	QuestionType string  `json:"questionType" binding:"omitempty,max=20"`
	Count        FlexInt `json:"count"`
}

const (
	defaultFreeformCount = 3
	maxFreeformCount     = 5
)

// RequestedCount clamps the requested count to [1,5], defaulting to 3.
func (r TeacherGenerateRequest) RequestedCount() int {
	n := int(r.Count)
	switch {
	case n == 0:
		return defaultFreeformCount
	case n < 1:
		return 1
	case n > maxFreeformCount:
		return maxFreeformCount
	}
	return n
}

// TeacherGenerateResult is returned by free-form generation.
type TeacherGenerateResult struct {
	Questions []QuestionDraft `json:"questions"`
	Model     string          `json:"model"`
	Provider  string          `json:"provider"`
}

// FlexInt accepts a JSON number or a numeric string. Anything else decodes to 0.
type FlexInt int

func (f *FlexInt) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		*f = 0
		return nil
	}
	var s string
	if b[0] == '"' {
		if err := json.Unmarshal(b, &s); err != nil {
			*f = 0
			return nil
		}
	} else {
		s = string(b)
	}
	s = strings.TrimSpace(s)
	if n, err := strconv.Atoi(s); err == nil {
		*f = FlexInt(n)
		return nil
	}
	if v, err := strconv.ParseFloat(s, 64); err == nil {
		*f = FlexInt(int(v))
		return nil
	}
	*f = 0
	return nil
}
