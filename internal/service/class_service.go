package service

import (
	"context"

	"github.com/examgen/examgen-backend/internal/model"
	"github.com/examgen/examgen-backend/internal/repository"
)

// ClassService handles class business logic.
type ClassService struct {
	classRepo *repository.ClassRepository
}

// NewClassService creates a new ClassService.
func NewClassService(classRepo *repository.ClassRepository) *ClassService {
	return &ClassService{classRepo: classRepo}
}

// GetByID retrieves a class by its ID.
func (s *ClassService) GetByID(ctx context.Context, id int) (*model.Class, error) {
	return s.classRepo.GetByID(ctx, id)
}

// List retrieves all classes with their exam counts.
func (s *ClassService) List(ctx context.Context) ([]model.Class, error) {
	return s.classRepo.List(ctx)
}

// Create creates a new class owned by teacherID.
func (s *ClassService) Create(ctx context.Context, name string, teacherID int) (*model.Class, error) {
	class := &model.Class{Name: name, TeacherID: teacherID}
	if err := s.classRepo.Create(ctx, class); err != nil {
		return nil, err
	}
	return class, nil
}

// Rename changes a class name and returns the updated class.
func (s *ClassService) Rename(ctx context.Context, id int, name string) (*model.Class, error) {
	if err := s.classRepo.Rename(ctx, id, name); err != nil {
		return nil, err
	}
	return s.classRepo.GetByID(ctx, id)
}

// Delete removes a class. Sessions, subjects and exams under it cascade.
func (s *ClassService) Delete(ctx context.Context, id int) error {
	return s.classRepo.Delete(ctx, id)
}
