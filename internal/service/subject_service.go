package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/examgen/examgen-backend/internal/model"
	"github.com/examgen/examgen-backend/internal/repository"
)

type SubjectService struct {
	subjectRepo *repository.SubjectRepository
	log         zerolog.Logger
}

func NewSubjectService(subjectRepo *repository.SubjectRepository, log zerolog.Logger) *SubjectService {
	return &SubjectService{
		subjectRepo: subjectRepo,
		log:         log.With().Str("component", "subject_service").Logger(),
	}
}

func (s *SubjectService) ListBySession(ctx context.Context, sessionID int, examType string) ([]model.Subject, error) {
	return s.subjectRepo.ListBySession(ctx, sessionID, examType)
}

func (s *SubjectService) GetByID(ctx context.Context, id int) (*model.Subject, error) {
	return s.subjectRepo.GetByID(ctx, id)
}

func (s *SubjectService) Create(ctx context.Context, req model.CreateSubjectRequest) (*model.Subject, error) {
	sub := &model.Subject{Name: req.Name, SessionID: req.SessionID}
	if err := s.subjectRepo.Create(ctx, sub); err != nil {
		return nil, err
	}
	return sub, nil
}

func (s *SubjectService) Rename(ctx context.Context, id int, name string) (*model.Subject, error) {
	if err := s.subjectRepo.Rename(ctx, id, name); err != nil {
		return nil, err
	}
	return s.subjectRepo.GetByID(ctx, id)
}

func (s *SubjectService) Delete(ctx context.Context, id int) error {
	if err := s.subjectRepo.Delete(ctx, id); err != nil {
		return err
	}
	s.log.Info().Int("subject_id", id).Msg("subject deleted")
	return nil
}
