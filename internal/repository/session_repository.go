package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/lanexam/lanexam-backend/internal/model"
)

// SessionRepository handles bearer-token session rows.
type SessionRepository struct {
	pool *pgxpool.Pool
}

// NewSessionRepository creates a new SessionRepository.
func NewSessionRepository(pool *pgxpool.Pool) *SessionRepository {
	return &SessionRepository{pool: pool}
}

// Create inserts a new session.
func (r *SessionRepository) Create(ctx context.Context, s *model.Session) error {
	return r.pool.QueryRow(ctx,
		`INSERT INTO sessions (user_id, session_token, ip_address, user_agent, expires_at)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING id, created_at`,
		s.UserID, s.SessionToken, s.IPAddress, s.UserAgent, s.ExpiresAt,
	).Scan(&s.ID, &s.CreatedAt)
}

// GetByToken retrieves a session by its unique token.
func (r *SessionRepository) GetByToken(ctx context.Context, token string) (*model.Session, error) {
	s := &model.Session{}
	err := r.pool.QueryRow(ctx,
		`SELECT id, user_id, session_token, ip_address, user_agent, created_at, expires_at
		 FROM sessions WHERE session_token = $1`, token,
	).Scan(&s.ID, &s.UserID, &s.SessionToken, &s.IPAddress, &s.UserAgent, &s.CreatedAt, &s.ExpiresAt)
	if err != nil {
		return nil, err
	}
	return s, nil
}

// DeleteByToken removes a single session (logout).
func (r *SessionRepository) DeleteByToken(ctx context.Context, token string) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM sessions WHERE session_token = $1`, token)
	return err
}

// DeleteExpired removes all sessions past their expiry. Returns rows removed.
func (r *SessionRepository) DeleteExpired(ctx context.Context) (int64, error) {
	tag, err := r.pool.Exec(ctx, `DELETE FROM sessions WHERE expires_at <= NOW()`)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

// MarkAbandonedOffline flips is_online off for users with no live session.
// Returns the number of users updated.
func (r *SessionRepository) MarkAbandonedOffline(ctx context.Context) (int64, error) {
	tag, err := r.pool.Exec(ctx,
		`UPDATE users SET is_online = FALSE, updated_at = NOW()
		 WHERE is_online
		   AND NOT EXISTS (
		       SELECT 1 FROM sessions
		       WHERE sessions.user_id = users.id AND sessions.expires_at > NOW()
		   )`)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}
