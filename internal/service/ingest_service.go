package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"strings"
	"unicode/utf8"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/rs/zerolog"

	"github.com/examgen/examgen-backend/internal/dedup"
	"github.com/examgen/examgen-backend/internal/extract"
	"github.com/examgen/examgen-backend/internal/llm"
	"github.com/examgen/examgen-backend/internal/model"
	"github.com/examgen/examgen-backend/internal/storage"
)

// MinSourceRunes is the shortest extracted text worth sending to the model.
const MinSourceRunes = 50

// Sentinel errors for document ingestion.
var (
	ErrDocumentTooSparse = errors.New("document text is too short")
	ErrZeroQuestions     = errors.New("AI returned 0 questions")
	ErrNoQuestions       = errors.New("no questions provided")
)

// SaveError reports a database failure that aborted a save batch.
type SaveError struct {
	Cause error
}

func (e *SaveError) Error() string { return "failed to save questions: " + e.Cause.Error() }
func (e *SaveError) Unwrap() error { return e.Cause }

// TextExtractor turns document bytes into plain text.
type TextExtractor interface {
	Extract(data []byte, ext string) (string, error)
}

// SourceArchiver keeps a copy of an uploaded document.
type SourceArchiver interface {
	Put(ctx context.Context, userID int, uploadID, filename string, data []byte) (string, error)
}

// BankStore is the question-bank persistence the ingestion flow needs.
type BankStore interface {
	ListTexts(ctx context.Context) ([]string, error)
	Create(ctx context.Context, q *model.QuestionBankRecord) error
}

// IngestService turns uploaded documents into question drafts and commits
// reviewed drafts to the question bank.
type IngestService struct {
	stager    *storage.Stager
	extractor TextExtractor
	archive   SourceArchiver
	retrier   *llm.Retrier
	bank      BankStore
	log       zerolog.Logger
}

// NewIngestService creates a new IngestService. archive may be nil.
func NewIngestService(
	stager *storage.Stager,
	extractor TextExtractor,
	archive SourceArchiver,
	retrier *llm.Retrier,
	bank BankStore,
	log zerolog.Logger,
) *IngestService {
	return &IngestService{
		stager:    stager,
		extractor: extractor,
		archive:   archive,
		retrier:   retrier,
		bank:      bank,
		log:       log.With().Str("component", "ingest_service").Logger(),
	}
}

// ProcessUpload stages the file, extracts its text and asks the model for
// question drafts. The staged copy is removed on every path.
func (s *IngestService) ProcessUpload(
	ctx context.Context,
	userID int,
	file io.Reader,
	header *multipart.FileHeader,
	meta model.DraftMeta,
) (*model.UploadResult, error) {
	if _, err := extract.ParseFormat(extensionOf(header.Filename)); err != nil {
		return nil, err
	}

	staged, err := s.stager.Stage(file, header)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err := staged.Remove(); err != nil {
			s.log.Warn().Err(err).Str("path", staged.Path).Msg("Failed to remove staged upload")
		}
	}()

	data, err := staged.Read()
	if err != nil {
		return nil, fmt.Errorf("read staged file: %w", err)
	}

	text, err := s.extractor.Extract(data, staged.Ext)
	if err != nil {
		return nil, err
	}

	text = strings.TrimSpace(text)
	if n := utf8.RuneCountInString(text); n < MinSourceRunes {
		return nil, fmt.Errorf("%w: %d characters", ErrDocumentTooSparse, n)
	}

	s.log.Info().
		Str("file", staged.OriginalName).
		Int("chars", utf8.RuneCountInString(text)).
		Msg("Document text extracted")

	if s.archive != nil {
		if key, err := s.archive.Put(ctx, userID, staged.ID, staged.OriginalName, data); err != nil {
			s.log.Warn().Err(err).Msg("Failed to archive source document")
		} else {
			s.log.Debug().Str("key", key).Msg("Source document archived")
		}
	}

	prompt := llm.BuildDocumentPrompt(text, meta)
	drafts, err := llm.GenerateParsed(ctx, s.retrier, prompt, func(raw string) ([]model.QuestionDraft, error) {
		return llm.ParseStrict(raw, meta)
	})
	if err != nil {
		return nil, err
	}
	if len(drafts) == 0 {
		return nil, ErrZeroQuestions
	}

	return &model.UploadResult{Count: len(drafts), Questions: drafts}, nil
}

// SaveBatch stores the drafts that are new to the bank. Duplicates of stored
// questions, repeats within the batch and unique violations raised by
// concurrent saves are all counted as skipped.
func (s *IngestService) SaveBatch(ctx context.Context, drafts []model.QuestionDraft) (*model.SaveBatchResult, error) {
	if len(drafts) == 0 {
		return nil, ErrNoQuestions
	}

	texts, err := s.bank.ListTexts(ctx)
	if err != nil {
		return nil, &SaveError{Cause: err}
	}

	res := dedup.Filter(drafts, dedup.KeySet(texts))
	inDB := res.SkippedExisting

	saved := 0
	for _, d := range res.Accepted {
		if err := s.bank.Create(ctx, bankRecordFromDraft(d)); err != nil {
			var pgErr *pgconn.PgError
			if errors.As(err, &pgErr) && pgErr.Code == "23505" {
				inDB++
				continue
			}
			return nil, &SaveError{Cause: err}
		}
		saved++
	}

	skipped := inDB + res.SkippedBatchDuplicate
	s.log.Info().Int("saved", saved).Int("skipped", skipped).Msg("Question batch saved")

	var msg string
	if saved == 0 {
		msg = fmt.Sprintf("All questions already exist in the bank. %d duplicate(s) found in database, %d duplicate(s) in batch.",
			inDB, res.SkippedBatchDuplicate)
	} else {
		msg = fmt.Sprintf("Successfully saved %d new question(s).", saved)
		if skipped > 0 {
			msg += fmt.Sprintf(" Skipped %d duplicate(s).", skipped)
		}
	}

	return &model.SaveBatchResult{Count: saved, Skipped: skipped, Message: msg}, nil
}

func bankRecordFromDraft(d model.QuestionDraft) *model.QuestionBankRecord {
	text := strings.TrimSpace(d.Text)
	qType := model.NormalizeQuestionType(string(d.Type))
	if qType == "" {
		qType = model.QuestionTypeMCQ
	}
	return &model.QuestionBankRecord{
		Text:           text,
		NormalizedText: dedup.Normalize(text),
		Type:           qType,
		Options:        d.Options,
		Answer:         optString(d.Answer),
		ClassName:      optString(d.ClassName),
		Subject:        optString(d.Subject),
		Chapter:        optString(d.Chapter),
		Topic:          optString(d.Unit),
		Unit:           optString(d.Unit),
	}
}

func optString(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}

func extensionOf(filename string) string {
	i := strings.LastIndexByte(filename, '.')
	if i < 0 {
		return ""
	}
	return filename[i:]
}
