package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/lanexam/lanexam-backend/internal/model"
)

// UserRepository handles user data access.
type UserRepository struct {
	pool *pgxpool.Pool
}

// NewUserRepository creates a new UserRepository.
func NewUserRepository(pool *pgxpool.Pool) *UserRepository {
	return &UserRepository{pool: pool}
}

// Create inserts a new user.
func (r *UserRepository) Create(ctx context.Context, u *model.User) error {
	return r.pool.QueryRow(ctx,
		`INSERT INTO users (username, password_hash, full_name, student_id, role)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING id, is_online, created_at, updated_at`,
		u.Username, u.PasswordHash, u.FullName, u.StudentID, u.Role,
	).Scan(&u.ID, &u.IsOnline, &u.CreatedAt, &u.UpdatedAt)
}

// GetByID retrieves a user by primary key.
func (r *UserRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.User, error) {
	u := &model.User{}
	err := r.pool.QueryRow(ctx,
		`SELECT id, username, password_hash, full_name, student_id, role, is_online, created_at, updated_at
		 FROM users WHERE id = $1`, id,
	).Scan(&u.ID, &u.Username, &u.PasswordHash, &u.FullName, &u.StudentID,
		&u.Role, &u.IsOnline, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return u, nil
}

// GetByUsername retrieves a user by unique username.
func (r *UserRepository) GetByUsername(ctx context.Context, username string) (*model.User, error) {
	u := &model.User{}
	err := r.pool.QueryRow(ctx,
		`SELECT id, username, password_hash, full_name, student_id, role, is_online, created_at, updated_at
		 FROM users WHERE username = $1`, username,
	).Scan(&u.ID, &u.Username, &u.PasswordHash, &u.FullName, &u.StudentID,
		&u.Role, &u.IsOnline, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return u, nil
}

// ExistsByStudentID reports whether any user carries the given roll number.
func (r *UserRepository) ExistsByStudentID(ctx context.Context, studentID string) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM users WHERE student_id = $1)`, studentID,
	).Scan(&exists)
	return exists, err
}

// ListStudents retrieves all student accounts sorted by full name.
func (r *UserRepository) ListStudents(ctx context.Context) ([]model.User, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, username, password_hash, full_name, student_id, role, is_online, created_at, updated_at
		 FROM users WHERE role = $1
		 ORDER BY full_name`, model.RoleStudent,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []model.User
	for rows.Next() {
		var u model.User
		if err := rows.Scan(&u.ID, &u.Username, &u.PasswordHash, &u.FullName, &u.StudentID,
			&u.Role, &u.IsOnline, &u.CreatedAt, &u.UpdatedAt); err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

// SetOnline updates a user's online flag.
func (r *UserRepository) SetOnline(ctx context.Context, id uuid.UUID, online bool) error {
	_, err := r.pool.Exec(ctx,
		`UPDATE users SET is_online = $1, updated_at = NOW() WHERE id = $2`,
		online, id)
	return err
}
