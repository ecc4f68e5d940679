package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/examgen/examgen-backend/internal/model"
)

type SubjectRepository struct {
	pool *pgxpool.Pool
}

func NewSubjectRepository(pool *pgxpool.Pool) *SubjectRepository {
	return &SubjectRepository{pool: pool}
}

func (r *SubjectRepository) Create(ctx context.Context, s *model.Subject) error {
	return r.pool.QueryRow(ctx,
		`INSERT INTO subjects (name, session_id) VALUES ($1, $2) RETURNING id, created_at`,
		s.Name, s.SessionID).Scan(&s.ID, &s.CreatedAt)
}

// ListBySession lists a session's subjects, newest first, with exam counts
// optionally restricted to one exam type.
func (r *SubjectRepository) ListBySession(ctx context.Context, sessionID int, examType string) ([]model.Subject, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT s.id, s.name, s.session_id, s.created_at,
		        (SELECT COUNT(*) FROM exams e WHERE e.subject_id = s.id AND ($2::text = '' OR e.type = $2::text))
		 FROM subjects s WHERE s.session_id = $1
		 ORDER BY s.created_at DESC`, sessionID, examType)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	subjects := []model.Subject{}
	for rows.Next() {
		var s model.Subject
		if err := rows.Scan(&s.ID, &s.Name, &s.SessionID, &s.CreatedAt, &s.ExamCount); err != nil {
			return nil, err
		}
		subjects = append(subjects, s)
	}
	return subjects, rows.Err()
}

func (r *SubjectRepository) GetByID(ctx context.Context, id int) (*model.Subject, error) {
	s := &model.Subject{}
	err := r.pool.QueryRow(ctx,
		`SELECT s.id, s.name, s.session_id, s.created_at,
		        (SELECT COUNT(*) FROM exams e WHERE e.subject_id = s.id)
		 FROM subjects s WHERE s.id = $1`, id,
	).Scan(&s.ID, &s.Name, &s.SessionID, &s.CreatedAt, &s.ExamCount)
	if err != nil {
		return nil, err
	}
	return s, nil
}

func (r *SubjectRepository) Rename(ctx context.Context, id int, name string) error {
	return execOne(ctx, r.pool, `UPDATE subjects SET name = $1 WHERE id = $2`, name, id)
}

func (r *SubjectRepository) Delete(ctx context.Context, id int) error {
	return execOne(ctx, r.pool, `DELETE FROM subjects WHERE id = $1`, id)
}
