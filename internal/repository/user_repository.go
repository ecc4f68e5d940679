package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/examgen/examgen-backend/internal/model"
)

const userColumns = `id, username, email, password_hash, google_id, role, is_email_verified, created_at`

// UserRepository handles user data access.
type UserRepository struct {
	pool *pgxpool.Pool
}

// NewUserRepository creates a new UserRepository.
func NewUserRepository(pool *pgxpool.Pool) *UserRepository {
	return &UserRepository{pool: pool}
}

func scanUser(row pgx.Row) (*model.User, error) {
	u := &model.User{}
	err := row.Scan(&u.ID, &u.Username, &u.Email, &u.PasswordHash, &u.GoogleID, &u.Role, &u.IsEmailVerified, &u.CreatedAt)
	if err != nil {
		return nil, err
	}
	return u, nil
}

// GetByID retrieves a user by ID.
func (r *UserRepository) GetByID(ctx context.Context, id int) (*model.User, error) {
	return scanUser(r.pool.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id))
}

// GetByUsername retrieves a user by their unique username.
func (r *UserRepository) GetByUsername(ctx context.Context, username string) (*model.User, error) {
	return scanUser(r.pool.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE username = $1`, username))
}

// List retrieves all users, newest first.
func (r *UserRepository) List(ctx context.Context) ([]model.User, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+userColumns+` FROM users ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []model.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, *u)
	}
	return users, rows.Err()
}

// Create inserts a new user.
func (r *UserRepository) Create(ctx context.Context, u *model.User) error {
	return r.pool.QueryRow(ctx,
		`INSERT INTO users (username, email, password_hash, google_id, role, is_email_verified)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING id, created_at`,
		u.Username, u.Email, u.PasswordHash, u.GoogleID, u.Role, u.IsEmailVerified,
	).Scan(&u.ID, &u.CreatedAt)
}

// LinkGoogle attaches a Google subject to an existing password account.
func (r *UserRepository) LinkGoogle(ctx context.Context, id int, googleID string) error {
	return execOne(ctx, r.pool,
		`UPDATE users SET google_id = $1, is_email_verified = TRUE WHERE id = $2`, googleID, id)
}

// UpdatePassword replaces a user's password hash.
func (r *UserRepository) UpdatePassword(ctx context.Context, id int, hash string) error {
	return execOne(ctx, r.pool, `UPDATE users SET password_hash = $1 WHERE id = $2`, hash, id)
}

// UpsertAdmin creates or promotes the account with the given username to ADMIN.
func (r *UserRepository) UpsertAdmin(ctx context.Context, username, hash string) (*model.User, error) {
	return scanUser(r.pool.QueryRow(ctx,
		`INSERT INTO users (username, email, password_hash, role, is_email_verified)
		 VALUES ($1, $1, $2, 'ADMIN', TRUE)
		 ON CONFLICT (username) DO UPDATE SET password_hash = EXCLUDED.password_hash, role = 'ADMIN'
		 RETURNING `+userColumns,
		username, hash,
	))
}

// Delete removes a user. Their classes and everything under them cascade.
func (r *UserRepository) Delete(ctx context.Context, id int) error {
	return execOne(ctx, r.pool, `DELETE FROM users WHERE id = $1`, id)
}

// CountStaff counts teacher and admin accounts.
func (r *UserRepository) CountStaff(ctx context.Context) (int, error) {
	var n int
	err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM users WHERE role IN ('TEACHER', 'ADMIN')`).Scan(&n)
	return n, err
}
