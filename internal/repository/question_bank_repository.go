package repository

import (
	"context"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/examgen/examgen-backend/internal/model"
)

const bankColumns = `id, text, normalized_text, type, options, answer, class_name, subject, chapter, topic, unit, created_at`

// QuestionBankRepository handles the shared question bank.
type QuestionBankRepository struct {
	pool *pgxpool.Pool
}

func NewQuestionBankRepository(pool *pgxpool.Pool) *QuestionBankRepository {
	return &QuestionBankRepository{pool: pool}
}

func scanBankRecord(row pgx.Row) (*model.QuestionBankRecord, error) {
	q := &model.QuestionBankRecord{}
	err := row.Scan(&q.ID, &q.Text, &q.NormalizedText, &q.Type, &q.Options, &q.Answer,
		&q.ClassName, &q.Subject, &q.Chapter, &q.Topic, &q.Unit, &q.CreatedAt)
	if err != nil {
		return nil, err
	}
	q.Options = nonNilOptions(q.Options)
	return q, nil
}

// List returns bank entries matching f, newest first. Subject and topic
// match as case-insensitive substrings, chapter and unit case-insensitively
// in full, class name and type exactly.
func (r *QuestionBankRepository) List(ctx context.Context, f model.QuestionBankFilter) ([]model.QuestionBankRecord, error) {
	var conds []string
	var args []interface{}
	add := func(cond string, v interface{}) {
		args = append(args, v)
		conds = append(conds, strings.ReplaceAll(cond, "?", placeholder(len(args))))
	}

	if f.Subject != "" {
		add("subject ILIKE '%' || ? || '%'", f.Subject)
	}
	if f.Chapter != "" {
		add("LOWER(chapter) = LOWER(?)", f.Chapter)
	}
	if f.Topic != "" {
		add("topic ILIKE '%' || ? || '%'", f.Topic)
	}
	if f.Unit != "" {
		add("LOWER(unit) = LOWER(?)", f.Unit)
	}
	if f.ClassName != "" {
		add("class_name = ?", f.ClassName)
	}
	if f.Type != "" {
		add("type = ?", strings.ToUpper(f.Type))
	}

	query := `SELECT ` + bankColumns + ` FROM question_bank`
	if len(conds) > 0 {
		query += ` WHERE ` + strings.Join(conds, " AND ")
	}
	query += ` ORDER BY created_at DESC`

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	records := []model.QuestionBankRecord{}
	for rows.Next() {
		q, err := scanBankRecord(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, *q)
	}
	return records, rows.Err()
}

// ListTexts returns the text of every bank entry.
func (r *QuestionBankRepository) ListTexts(ctx context.Context) ([]string, error) {
	rows, err := r.pool.Query(ctx, `SELECT text FROM question_bank`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var texts []string
	for rows.Next() {
		var t string
		if err := rows.Scan(&t); err != nil {
			return nil, err
		}
		texts = append(texts, t)
	}
	return texts, rows.Err()
}

func (r *QuestionBankRepository) GetByID(ctx context.Context, id int) (*model.QuestionBankRecord, error) {
	return scanBankRecord(r.pool.QueryRow(ctx, `SELECT `+bankColumns+` FROM question_bank WHERE id = $1`, id))
}

// Create inserts q. A duplicate normalized_text fails with 23505.
func (r *QuestionBankRepository) Create(ctx context.Context, q *model.QuestionBankRecord) error {
	q.Options = nonNilOptions(q.Options)
	return r.pool.QueryRow(ctx,
		`INSERT INTO question_bank (text, normalized_text, type, options, answer, class_name, subject, chapter, topic, unit)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		 RETURNING id, created_at`,
		q.Text, q.NormalizedText, q.Type, q.Options, q.Answer, q.ClassName, q.Subject, q.Chapter, q.Topic, q.Unit,
	).Scan(&q.ID, &q.CreatedAt)
}

// Update overwrites every editable column of q.
func (r *QuestionBankRepository) Update(ctx context.Context, q *model.QuestionBankRecord) error {
	q.Options = nonNilOptions(q.Options)
	return execOne(ctx, r.pool,
		`UPDATE question_bank
		 SET text = $1, normalized_text = $2, type = $3, options = $4, answer = $5,
		     class_name = $6, subject = $7, chapter = $8, topic = $9, unit = $10
		 WHERE id = $11`,
		q.Text, q.NormalizedText, q.Type, q.Options, q.Answer, q.ClassName, q.Subject, q.Chapter, q.Topic, q.Unit, q.ID,
	)
}

func (r *QuestionBankRepository) Delete(ctx context.Context, id int) error {
	return execOne(ctx, r.pool, `DELETE FROM question_bank WHERE id = $1`, id)
}
