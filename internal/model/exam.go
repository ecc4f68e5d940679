package model

import "time"

// ExamTypeMonthly is applied when an exam is created without a type.
const ExamTypeMonthly = "Monthly"

// Exam represents an exam paper inside a class.
type Exam struct {
	ID            int       `json:"id"`
	Title         string    `json:"title"`
	Type          string    `json:"type"`
	ClassID       int       `json:"classId"`
	SessionID     *int      `json:"sessionId"`
	SubjectID     *int      `json:"subjectId"`
	Time          *string   `json:"time"`
	Date          *string   `json:"date"`
	MaxMarks      *int      `json:"maxMarks"`
	SectionAMarks *int      `json:"sectionAMarks"`
	SectionBMarks *int      `json:"sectionBMarks"`
	SectionCMarks *int      `json:"sectionCMarks"`
	QuestionCount int       `json:"questionCount"`
	CreatedAt     time.Time `json:"createdAt"`
}

// ExamDetail is an exam together with everything needed to lay out the paper.
type ExamDetail struct {
	Exam
	Questions []Question `json:"questions"`
	Subject   *Subject   `json:"subject"`
	Class     *Class     `json:"class"`
}

// ExamFilter narrows the exams listed for a class.
type ExamFilter struct {
	Type      string
	SessionID *int
	SubjectID *int
}

// CreateExamRequest is the payload for creating a new exam.
type CreateExamRequest struct {
	Title     string `json:"title" binding:"required,min=1,max=255"`
	ClassID   int    `json:"classId" binding:"required,min=1"`
	Type      string `json:"type" binding:"omitempty,max=50"`
	SessionID *int   `json:"sessionId" binding:"omitempty,min=1"`
	SubjectID *int   `json:"subjectId" binding:"omitempty,min=1"`
}

// UpdateExamRequest is the payload for editing the printable header of an exam.
// Nil fields are left untouched.
type UpdateExamRequest struct {
	Title         *string `json:"title" binding:"omitempty,min=1,max=255"`
	Time          *string `json:"time" binding:"omitempty,max=50"`
	Date          *string `json:"date" binding:"omitempty,max=50"`
	MaxMarks      *int    `json:"maxMarks" binding:"omitempty,min=0"`
	SectionAMarks *int    `json:"sectionAMarks" binding:"omitempty,min=0"`
	SectionBMarks *int    `json:"sectionBMarks" binding:"omitempty,min=0"`
	SectionCMarks *int    `json:"sectionCMarks" binding:"omitempty,min=0"`
}
