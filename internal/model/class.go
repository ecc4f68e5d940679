package model

import "time"

// Class represents a school class owned by the teacher who created it.
type Class struct {
	ID        int       `json:"id"`
	Name      string    `json:"name"`
	TeacherID int       `json:"teacherId"`
	ExamCount int       `json:"examCount"`
	CreatedAt time.Time `json:"createdAt"`
}

// ClassRequest is the payload for creating or renaming a class.
type ClassRequest struct {
	Name string `json:"name" binding:"required,min=1,max=100"`
}
