package service

import (
	"context"

	"github.com/examgen/examgen-backend/internal/model"
	"github.com/examgen/examgen-backend/internal/repository"
)

type SessionService struct {
	sessionRepo *repository.SessionRepository
}

func NewSessionService(sessionRepo *repository.SessionRepository) *SessionService {
	return &SessionService{sessionRepo: sessionRepo}
}

func (s *SessionService) ListByClass(ctx context.Context, classID int, examType string) ([]model.Session, error) {
	return s.sessionRepo.ListByClass(ctx, classID, examType)
}

func (s *SessionService) GetByID(ctx context.Context, id int) (*model.Session, error) {
	return s.sessionRepo.GetByID(ctx, id)
}

func (s *SessionService) Create(ctx context.Context, req model.CreateSessionRequest) (*model.Session, error) {
	sess := &model.Session{Name: req.Name, ClassID: req.ClassID}
	if err := s.sessionRepo.Create(ctx, sess); err != nil {
		return nil, err
	}
	return sess, nil
}

func (s *SessionService) Rename(ctx context.Context, id int, name string) (*model.Session, error) {
	if err := s.sessionRepo.Rename(ctx, id, name); err != nil {
		return nil, err
	}
	return s.sessionRepo.GetByID(ctx, id)
}

func (s *SessionService) Delete(ctx context.Context, id int) error {
	return s.sessionRepo.Delete(ctx, id)
}
