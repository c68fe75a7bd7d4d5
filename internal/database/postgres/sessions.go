package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/osse101/RestoLoyalty_Go/internal/domain"
	"github.com/osse101/RestoLoyalty_Go/internal/repository"
)

// SessionRepository implements repository.Sessions on PostgreSQL
type SessionRepository struct {
	db *pgxpool.Pool
}

var _ repository.Sessions = (*SessionRepository)(nil)

// NewSessionRepository creates a new session repository
func NewSessionRepository(db *pgxpool.Pool) *SessionRepository {
	return &SessionRepository{db: db}
}

// GetSession resolves a bearer token
func (r *SessionRepository) GetSession(ctx context.Context, token string) (*domain.Session, error) {
	var s domain.Session
	err := r.db.QueryRow(ctx, `
		SELECT token, user_id::text, expires_at, created_at
		FROM sessions
		WHERE token = $1`, token,
	).Scan(&s.Token, &s.UserID, &s.ExpiresAt, &s.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrUnauthorized
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToGetSession, err)
	}
	return &s, nil
}

// CreateSession stores a session
func (r *SessionRepository) CreateSession(ctx context.Context, session *domain.Session) error {
	id, err := parseUserUUID(session.UserID)
	if err != nil {
		return err
	}
	err = r.db.QueryRow(ctx, `
		INSERT INTO sessions (token, user_id, expires_at)
		VALUES ($1, $2, $3)
		RETURNING created_at`,
		session.Token, id, session.ExpiresAt,
	).Scan(&session.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == PgErrorCodeForeignKeyViolation {
			return domain.ErrUserNotFound
		}
		return fmt.Errorf("%s: %w", ErrMsgFailedToSaveSession, err)
	}
	return nil
}

// DeleteExpiredSessions removes sessions that expired before the cutoff
func (r *SessionRepository) DeleteExpiredSessions(ctx context.Context, before time.Time) (int64, error) {
	tag, err := r.db.Exec(ctx, `DELETE FROM sessions WHERE expires_at < $1`, before)
	if err != nil {
		return 0, fmt.Errorf("failed to delete expired sessions: %w", err)
	}
	return tag.RowsAffected(), nil
}
