package model

import "time"

// Subject represents an academic subject taught within a session.
type Subject struct {
	ID        int       `json:"id"`
	Name      string    `json:"name"`
	SessionID int       `json:"sessionId"`
	ExamCount int       `json:"examCount"`
	CreatedAt time.Time `json:"createdAt"`
}

// CreateSubjectRequest is the payload for creating a subject.
type CreateSubjectRequest struct {
	Name      string `json:"name" binding:"required,min=1,max=100"`
	SessionID int    `json:"sessionId" binding:"required,min=1"`
}
