package model

import "time"

// QuestionBankRecord is a reusable question stored in the shared bank.
// NormalizedText backs the unique index that deduplicates the bank.
type QuestionBankRecord struct {
	ID             int          `json:"id"`
	Text           string       `json:"text"`
	NormalizedText string       `json:"-"`
	Type           QuestionType `json:"type"`
	Options        []string     `json:"options"`
	Answer         *string      `json:"answer"`
	ClassName      *string      `json:"className"`
	Subject        *string      `json:"subject"`
	Chapter        *string      `json:"chapter"`
	Topic          *string      `json:"topic"`
	Unit           *string      `json:"unit"`
	CreatedAt      time.Time    `json:"createdAt"`
}

// QuestionBankFilter narrows bank listings. Empty fields are ignored.
type QuestionBankFilter struct {
	Subject   string `form:"subject"`
	Chapter   string `form:"chapter"`
	Topic     string `form:"topic"`
	Unit      string `form:"unit"`
	ClassName string `form:"className"`
	Type      string `form:"type"`
}

// QuestionBankRequest is the payload for manually creating or editing a bank entry.
type QuestionBankRequest struct {
	Text      string   `json:"text" binding:"required,min=1,max=5000"`
	Type      string   `json:"type" binding:"required,oneof=MCQ SHORT LONG"`
	Options   []string `json:"options" binding:"omitempty,max=10,dive,max=1000"`
	Answer    *string  `json:"answer" binding:"omitempty,max=2000"`
	ClassName *string  `json:"className" binding:"omitempty,max=100"`
	Subject   *string  `json:"subject" binding:"omitempty,max=100"`
	Chapter   *string  `json:"chapter" binding:"omitempty,max=255"`
	Topic     *string  `json:"topic" binding:"omitempty,max=255"`
	Unit      *string  `json:"unit" binding:"omitempty,max=255"`
}
