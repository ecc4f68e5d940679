package repository

import (
	"context"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/examgen/examgen-backend/internal/model"
)

const examColumns = `e.id, e.title, e.type, e.class_id, e.session_id, e.subject_id, e.time, e.date,
	e.max_marks, e.section_a_marks, e.section_b_marks, e.section_c_marks, e.created_at,
	(SELECT COUNT(*) FROM questions q WHERE q.exam_id = e.id)`

// ExamRepository handles exam data access.
type ExamRepository struct {
	pool *pgxpool.Pool
}

// NewExamRepository creates a new ExamRepository.
func NewExamRepository(pool *pgxpool.Pool) *ExamRepository {
	return &ExamRepository{pool: pool}
}

func scanExam(row pgx.Row) (*model.Exam, error) {
	e := &model.Exam{}
	err := row.Scan(&e.ID, &e.Title, &e.Type, &e.ClassID, &e.SessionID, &e.SubjectID, &e.Time, &e.Date,
		&e.MaxMarks, &e.SectionAMarks, &e.SectionBMarks, &e.SectionCMarks, &e.CreatedAt, &e.QuestionCount)
	if err != nil {
		return nil, err
	}
	return e, nil
}

// GetByID retrieves an exam by its ID.
func (r *ExamRepository) GetByID(ctx context.Context, id int) (*model.Exam, error) {
	return scanExam(r.pool.QueryRow(ctx, `SELECT `+examColumns+` FROM exams e WHERE e.id = $1`, id))
}

// ListByClass retrieves a class's exams, narrowed by the optional filter fields.
func (r *ExamRepository) ListByClass(ctx context.Context, classID int, f model.ExamFilter) ([]model.Exam, error) {
	conds := []string{"e.class_id = $1"}
	args := []interface{}{classID}

	if f.Type != "" {
		args = append(args, f.Type)
		conds = append(conds, "e.type = "+placeholder(len(args)))
	}
	if f.SessionID != nil {
		args = append(args, *f.SessionID)
		conds = append(conds, "e.session_id = "+placeholder(len(args)))
	}
	if f.SubjectID != nil {
		args = append(args, *f.SubjectID)
		conds = append(conds, "e.subject_id = "+placeholder(len(args)))
	}

	query := `SELECT ` + examColumns + ` FROM exams e WHERE ` + strings.Join(conds, " AND ") + ` ORDER BY e.created_at DESC`
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	exams := []model.Exam{}
	for rows.Next() {
		e, err := scanExam(rows)
		if err != nil {
			return nil, err
		}
		exams = append(exams, *e)
	}
	return exams, rows.Err()
}

// Create inserts a new exam.
func (r *ExamRepository) Create(ctx context.Context, e *model.Exam) error {
	return r.pool.QueryRow(ctx,
		`INSERT INTO exams (title, type, class_id, session_id, subject_id)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING id, created_at`,
		e.Title, e.Type, e.ClassID, e.SessionID, e.SubjectID,
	).Scan(&e.ID, &e.CreatedAt)
}

// Update applies the non-nil fields of req.
func (r *ExamRepository) Update(ctx context.Context, id int, req model.UpdateExamRequest) error {
	sets := []string{}
	args := []interface{}{}
	add := func(col string, v interface{}) {
		args = append(args, v)
		sets = append(sets, col+" = "+placeholder(len(args)))
	}

	if req.Title != nil {
		add("title", *req.Title)
	}
	if req.Time != nil {
		add("time", *req.Time)
	}
	if req.Date != nil {
		add("date", *req.Date)
	}
	if req.MaxMarks != nil {
		add("max_marks", *req.MaxMarks)
	}
	if req.SectionAMarks != nil {
		add("section_a_marks", *req.SectionAMarks)
	}
	if req.SectionBMarks != nil {
		add("section_b_marks", *req.SectionBMarks)
	}
	if req.SectionCMarks != nil {
		add("section_c_marks", *req.SectionCMarks)
	}

	if len(sets) == 0 {
		// Nothing to change; still report a missing exam.
		var exists bool
		if err := r.pool.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM exams WHERE id = $1)`, id).Scan(&exists); err != nil {
			return err
		}
		if !exists {
			return pgx.ErrNoRows
		}
		return nil
	}

	args = append(args, id)
	query := `UPDATE exams SET ` + strings.Join(sets, ", ") + ` WHERE id = ` + placeholder(len(args))
	return execOne(ctx, r.pool, query, args...)
}

// Delete removes an exam and its questions.
func (r *ExamRepository) Delete(ctx context.Context, id int) error {
	return execOne(ctx, r.pool, `DELETE FROM exams WHERE id = $1`, id)
}

// Count returns the total number of exams.
func (r *ExamRepository) Count(ctx context.Context) (int, error) {
	var n int
	err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM exams`).Scan(&n)
	return n, err
}
