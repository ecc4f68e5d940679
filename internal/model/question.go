package model

import (
	"strings"
	"time"
)

// QuestionType is one of the three paper sections.
type QuestionType string

const (
	QuestionTypeMCQ   QuestionType = "MCQ"
	QuestionTypeShort QuestionType = "SHORT"
	QuestionTypeLong  QuestionType = "LONG"
)

// NormalizeQuestionType upper-cases and trims a raw type label. Labels
// outside MCQ/SHORT/LONG come back empty so callers apply their default.
func NormalizeQuestionType(raw string) QuestionType {
	t := QuestionType(strings.ToUpper(strings.TrimSpace(raw)))
	if !t.Valid() {
		return ""
	}
	return t
}

// Valid reports whether t is one of the known question types.
func (t QuestionType) Valid() bool {
	switch t {
	case QuestionTypeMCQ, QuestionTypeShort, QuestionTypeLong:
		return true
	}
	return false
}

// Question is a question placed on a specific exam paper.
type Question struct {
	ID        int          `json:"id"`
	ExamID    int          `json:"examId"`
	Text      string       `json:"text"`
	Type      QuestionType `json:"type"`
	Options   []string     `json:"options"`
	CreatedAt time.Time    `json:"createdAt"`
}

// AddQuestionRequest is the payload for adding a question to an exam.
type AddQuestionRequest struct {
	ExamID  int      `json:"examId" binding:"required,min=1"`
	Text    string   `json:"text" binding:"required,min=1,max=5000"`
	Type    string   `json:"type" binding:"required,oneof=MCQ SHORT LONG"`
	Options []string `json:"options" binding:"omitempty,max=10,dive,max=1000"`
}
