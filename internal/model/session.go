package model

import "time"

// Session is an academic session (e.g. "2025-26") inside a class.
type Session struct {
	ID        int       `json:"id"`
	Name      string    `json:"name"`
	ClassID   int       `json:"classId"`
	ExamCount int       `json:"examCount"`
	CreatedAt time.Time `json:"createdAt"`
}

// CreateSessionRequest is the payload for creating a session.
type CreateSessionRequest struct {
	Name    string `json:"name" binding:"required,min=1,max=100"`
	ClassID int    `json:"classId" binding:"required,min=1"`
}

// RenameRequest is the payload for renaming a session or subject.
type RenameRequest struct {
	Name string `json:"name" binding:"required,min=1,max=100"`
}
