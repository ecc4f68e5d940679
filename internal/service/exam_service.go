package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/examgen/examgen-backend/internal/model"
	"github.com/examgen/examgen-backend/internal/repository"
)

// ExamService handles exam papers and the questions placed on them.
type ExamService struct {
	examRepo     *repository.ExamRepository
	questionRepo *repository.QuestionRepository
	subjectRepo  *repository.SubjectRepository
	classRepo    *repository.ClassRepository
	log          zerolog.Logger
}

// NewExamService creates a new ExamService.
func NewExamService(
	examRepo *repository.ExamRepository,
	questionRepo *repository.QuestionRepository,
	subjectRepo *repository.SubjectRepository,
	classRepo *repository.ClassRepository,
	log zerolog.Logger,
) *ExamService {
	return &ExamService{
		examRepo:     examRepo,
		questionRepo: questionRepo,
		subjectRepo:  subjectRepo,
		classRepo:    classRepo,
		log:          log.With().Str("component", "exam_service").Logger(),
	}
}

// ListByClass retrieves a class's exams with their question counts.
func (s *ExamService) ListByClass(ctx context.Context, classID int, f model.ExamFilter) ([]model.Exam, error) {
	return s.examRepo.ListByClass(ctx, classID, f)
}

// Create creates an exam. An empty type becomes Monthly.
func (s *ExamService) Create(ctx context.Context, req model.CreateExamRequest) (*model.Exam, error) {
	examType := strings.TrimSpace(req.Type)
	if examType == "" {
		examType = model.ExamTypeMonthly
	}
	exam := &model.Exam{
		Title:     req.Title,
		Type:      examType,
		ClassID:   req.ClassID,
		SessionID: req.SessionID,
		SubjectID: req.SubjectID,
	}
	if err := s.examRepo.Create(ctx, exam); err != nil {
		return nil, err
	}
	return exam, nil
}

// GetDetail returns an exam with its questions, subject and class.
func (s *ExamService) GetDetail(ctx context.Context, id int) (*model.ExamDetail, error) {
	exam, err := s.examRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	questions, err := s.questionRepo.ListByExam(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("list questions: %w", err)
	}

	detail := &model.ExamDetail{Exam: *exam, Questions: questions}

	if exam.SubjectID != nil {
		subject, err := s.subjectRepo.GetByID(ctx, *exam.SubjectID)
		if err != nil {
			return nil, fmt.Errorf("get subject: %w", err)
		}
		detail.Subject = subject
	}

	class, err := s.classRepo.GetByID(ctx, exam.ClassID)
	if err != nil {
		return nil, fmt.Errorf("get class: %w", err)
	}
	detail.Class = class

	return detail, nil
}

// Update edits the paper header and returns the updated exam.
func (s *ExamService) Update(ctx context.Context, id int, req model.UpdateExamRequest) (*model.Exam, error) {
	if err := s.examRepo.Update(ctx, id, req); err != nil {
		return nil, err
	}
	return s.examRepo.GetByID(ctx, id)
}

// Delete removes an exam and its questions.
func (s *ExamService) Delete(ctx context.Context, id int) error {
	if err := s.examRepo.Delete(ctx, id); err != nil {
		return err
	}
	s.log.Info().Int("exam_id", id).Msg("exam deleted")
	return nil
}

// AddQuestion places a question on an exam.
func (s *ExamService) AddQuestion(ctx context.Context, req model.AddQuestionRequest) (*model.Question, error) {
	q := &model.Question{
		ExamID:  req.ExamID,
		Text:    strings.TrimSpace(req.Text),
		Type:    model.NormalizeQuestionType(req.Type),
		Options: req.Options,
	}
	if q.Type != model.QuestionTypeMCQ {
		q.Options = nil
	}
	if err := s.questionRepo.Create(ctx, q); err != nil {
		return nil, err
	}
	return q, nil
}

// DeleteQuestion removes a question from its exam.
func (s *ExamService) DeleteQuestion(ctx context.Context, id int) error {
	return s.questionRepo.Delete(ctx, id)
}
