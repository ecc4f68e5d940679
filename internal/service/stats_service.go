package service

import (
	"context"
	"fmt"

	"github.com/examgen/examgen-backend/internal/model"
	"github.com/examgen/examgen-backend/internal/repository"
)

// StatsService builds the public landing-page counters.
type StatsService struct {
	examRepo *repository.ExamRepository
	userRepo *repository.UserRepository
}

func NewStatsService(examRepo *repository.ExamRepository, userRepo *repository.UserRepository) *StatsService {
	return &StatsService{examRepo: examRepo, userRepo: userRepo}
}

func (s *StatsService) Get(ctx context.Context) (*model.PlatformStats, error) {
	exams, err := s.examRepo.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("count exams: %w", err)
	}
	teachers, err := s.userRepo.CountStaff(ctx)
	if err != nil {
		return nil, fmt.Errorf("count teachers: %w", err)
	}
	return &model.PlatformStats{TotalExams: exams, ActiveTeachers: teachers}, nil
}
