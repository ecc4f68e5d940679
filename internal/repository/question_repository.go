package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/examgen/examgen-backend/internal/model"
)

// QuestionRepository handles exam question data access.
type QuestionRepository struct {
	pool *pgxpool.Pool
}

// NewQuestionRepository creates a new QuestionRepository.
func NewQuestionRepository(pool *pgxpool.Pool) *QuestionRepository {
	return &QuestionRepository{pool: pool}
}

// ListByExam retrieves all questions of an exam in insertion order.
func (r *QuestionRepository) ListByExam(ctx context.Context, examID int) ([]model.Question, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, exam_id, text, type, options, created_at
		 FROM questions WHERE exam_id = $1
		 ORDER BY id`, examID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	questions := []model.Question{}
	for rows.Next() {
		var q model.Question
		if err := rows.Scan(&q.ID, &q.ExamID, &q.Text, &q.Type, &q.Options, &q.CreatedAt); err != nil {
			return nil, err
		}
		q.Options = nonNilOptions(q.Options)
		questions = append(questions, q)
	}
	return questions, rows.Err()
}

// Create inserts a new question.
func (r *QuestionRepository) Create(ctx context.Context, q *model.Question) error {
	q.Options = nonNilOptions(q.Options)
	return r.pool.QueryRow(ctx,
		`INSERT INTO questions (exam_id, text, type, options)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id, created_at`,
		q.ExamID, q.Text, q.Type, q.Options,
	).Scan(&q.ID, &q.CreatedAt)
}

// Delete removes a question by its ID.
func (r *QuestionRepository) Delete(ctx context.Context, id int) error {
	return execOne(ctx, r.pool, `DELETE FROM questions WHERE id = $1`, id)
}
