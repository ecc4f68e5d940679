package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/examgen/examgen-backend/internal/model"
)

// SessionRepository handles academic session data access.
type SessionRepository struct {
	pool *pgxpool.Pool
}

func NewSessionRepository(pool *pgxpool.Pool) *SessionRepository {
	return &SessionRepository{pool: pool}
}

// ListByClass lists a class's sessions, newest first. When examType is not
// empty the exam count only includes exams of that type.
func (r *SessionRepository) ListByClass(ctx context.Context, classID int, examType string) ([]model.Session, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT s.id, s.name, s.class_id, s.created_at,
		        (SELECT COUNT(*) FROM exams e WHERE e.session_id = s.id AND ($2::text = '' OR e.type = $2::text))
		 FROM sessions s WHERE s.class_id = $1
		 ORDER BY s.created_at DESC`, classID, examType)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	sessions := []model.Session{}
	for rows.Next() {
		var s model.Session
		if err := rows.Scan(&s.ID, &s.Name, &s.ClassID, &s.CreatedAt, &s.ExamCount); err != nil {
			return nil, err
		}
		sessions = append(sessions, s)
	}
	return sessions, rows.Err()
}

func (r *SessionRepository) GetByID(ctx context.Context, id int) (*model.Session, error) {
	s := &model.Session{}
	err := r.pool.QueryRow(ctx,
		`SELECT s.id, s.name, s.class_id, s.created_at,
		        (SELECT COUNT(*) FROM exams e WHERE e.session_id = s.id)
		 FROM sessions s WHERE s.id = $1`, id,
	).Scan(&s.ID, &s.Name, &s.ClassID, &s.CreatedAt, &s.ExamCount)
	if err != nil {
		return nil, err
	}
	return s, nil
}

func (r *SessionRepository) Create(ctx context.Context, s *model.Session) error {
	return r.pool.QueryRow(ctx,
		`INSERT INTO sessions (name, class_id) VALUES ($1, $2) RETURNING id, created_at`,
		s.Name, s.ClassID,
	).Scan(&s.ID, &s.CreatedAt)
}

func (r *SessionRepository) Rename(ctx context.Context, id int, name string) error {
	return execOne(ctx, r.pool, `UPDATE sessions SET name = $1 WHERE id = $2`, name, id)
}

func (r *SessionRepository) Delete(ctx context.Context, id int) error {
	return execOne(ctx, r.pool, `DELETE FROM sessions WHERE id = $1`, id)
}
