package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/examgen/examgen-backend/internal/model"
)

// ClassRepository handles class data access.
type ClassRepository struct {
	pool *pgxpool.Pool
}

// NewClassRepository creates a new ClassRepository.
func NewClassRepository(pool *pgxpool.Pool) *ClassRepository {
	return &ClassRepository{pool: pool}
}

// GetByID retrieves a class by its ID.
func (r *ClassRepository) GetByID(ctx context.Context, id int) (*model.Class, error) {
	c := &model.Class{}
	err := r.pool.QueryRow(ctx,
		`SELECT c.id, c.name, c.teacher_id, c.created_at,
		        (SELECT COUNT(*) FROM exams e WHERE e.class_id = c.id)
		 FROM classes c WHERE c.id = $1`, id,
	).Scan(&c.ID, &c.Name, &c.TeacherID, &c.CreatedAt, &c.ExamCount)
	if err != nil {
		return nil, err
	}
	return c, nil
}

// List retrieves all classes with their exam counts.
func (r *ClassRepository) List(ctx context.Context) ([]model.Class, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT c.id, c.name, c.teacher_id, c.created_at,
		        (SELECT COUNT(*) FROM exams e WHERE e.class_id = c.id)
		 FROM classes c ORDER BY c.created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	classes := []model.Class{}
	for rows.Next() {
		var c model.Class
		if err := rows.Scan(&c.ID, &c.Name, &c.TeacherID, &c.CreatedAt, &c.ExamCount); err != nil {
			return nil, err
		}
		classes = append(classes, c)
	}
	return classes, rows.Err()
}

// Create inserts a new class owned by c.TeacherID.
func (r *ClassRepository) Create(ctx context.Context, c *model.Class) error {
	return r.pool.QueryRow(ctx,
		`INSERT INTO classes (name, teacher_id) VALUES ($1, $2)
		 RETURNING id, created_at`,
		c.Name, c.TeacherID,
	).Scan(&c.ID, &c.CreatedAt)
}

// Rename changes a class name.
func (r *ClassRepository) Rename(ctx context.Context, id int, name string) error {
	return execOne(ctx, r.pool, `UPDATE classes SET name = $1 WHERE id = $2`, name, id)
}

// Delete removes a class. Sessions, subjects, exams and questions cascade.
func (r *ClassRepository) Delete(ctx context.Context, id int) error {
	return execOne(ctx, r.pool, `DELETE FROM classes WHERE id = $1`, id)
}
