package service

import (
	"context"
	"strings"

	"github.com/examgen/examgen-backend/internal/dedup"
	"github.com/examgen/examgen-backend/internal/model"
	"github.com/examgen/examgen-backend/internal/repository"
)

// QuestionBankService handles manual management of the shared bank.
type QuestionBankService struct {
	bankRepo *repository.QuestionBankRepository
}

func NewQuestionBankService(bankRepo *repository.QuestionBankRepository) *QuestionBankService {
	return &QuestionBankService{bankRepo: bankRepo}
}

func (s *QuestionBankService) List(ctx context.Context, f model.QuestionBankFilter) ([]model.QuestionBankRecord, error) {
	return s.bankRepo.List(ctx, f)
}

func (s *QuestionBankService) GetByID(ctx context.Context, id int) (*model.QuestionBankRecord, error) {
	return s.bankRepo.GetByID(ctx, id)
}

// Create stores a bank entry. Text that normalizes to an existing entry
// fails with a unique violation.
func (s *QuestionBankService) Create(ctx context.Context, req model.QuestionBankRequest) (*model.QuestionBankRecord, error) {
	rec := bankRecordFromRequest(req)
	if err := s.bankRepo.Create(ctx, rec); err != nil {
		return nil, err
	}
	return rec, nil
}

func (s *QuestionBankService) Update(ctx context.Context, id int, req model.QuestionBankRequest) (*model.QuestionBankRecord, error) {
	rec := bankRecordFromRequest(req)
	rec.ID = id
	if err := s.bankRepo.Update(ctx, rec); err != nil {
		return nil, err
	}
	return s.bankRepo.GetByID(ctx, id)
}

func (s *QuestionBankService) Delete(ctx context.Context, id int) error {
	return s.bankRepo.Delete(ctx, id)
}

func bankRecordFromRequest(req model.QuestionBankRequest) *model.QuestionBankRecord {
	text := strings.TrimSpace(req.Text)
	return &model.QuestionBankRecord{
		Text:           text,
		NormalizedText: dedup.Normalize(text),
		Type:           model.NormalizeQuestionType(req.Type),
		Options:        req.Options,
		Answer:         req.Answer,
		ClassName:      req.ClassName,
		Subject:        req.Subject,
		Chapter:        req.Chapter,
		Topic:          req.Topic,
		Unit:           req.Unit,
	}
}
