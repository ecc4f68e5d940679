package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/examgen/examgen-backend/internal/llm"
	"github.com/examgen/examgen-backend/internal/model"
)

// ErrAIEmptyResponse is returned when the model replies with (almost) nothing.
var ErrAIEmptyResponse = errors.New("AI returned an empty response")

const minReplyLength = 5

// TeacherAIService generates questions from a teacher's free-form instruction.
type TeacherAIService struct {
	gen llm.Generator
	log zerolog.Logger
}

func NewTeacherAIService(gen llm.Generator, log zerolog.Logger) *TeacherAIService {
	return &TeacherAIService{
		gen: gen,
		log: log.With().Str("component", "teacher_ai_service").Logger(),
	}
}

// Generate makes a single model call and salvages whatever questions the
// reply contains.
func (s *TeacherAIService) Generate(ctx context.Context, req model.TeacherGenerateRequest) (*model.TeacherGenerateResult, error) {
	count := req.RequestedCount()
	prompt := llm.BuildFreeformPrompt(llm.FreeformRequest{
		ClassName:   req.ClassName,
		Subject:     req.Subject,
		Instruction: req.Instruction,
		Count:       count,
	})

	raw, err := s.gen.Generate(ctx, prompt)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", llm.ErrGenerationFailed, err)
	}
	if len(strings.TrimSpace(raw)) < minReplyLength {
		return nil, ErrAIEmptyResponse
	}

	drafts := llm.ParseTolerant(raw, req.QuestionType, count)
	for i := range drafts {
		drafts[i].ClassName = req.ClassName
		drafts[i].Subject = req.Subject
	}

	s.log.Info().
		Int("requested", count).
		Int("returned", len(drafts)).
		Str("provider", s.gen.Provider()).
		Msg("Freeform questions generated")

	return &model.TeacherGenerateResult{
		Questions: drafts,
		Model:     s.gen.Model(),
		Provider:  s.gen.Provider(),
	}, nil
}
