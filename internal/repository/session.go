package repository

import (
	"context"
	"errors"
	"fmt"

	"gizindir-panel/internal/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// SessionRepository handles database operations for sessions
type SessionRepository struct {
	db *pgxpool.Pool
}

// NewSessionRepository creates a new session repository
func NewSessionRepository(db *pgxpool.Pool) *SessionRepository {
	return &SessionRepository{db: db}
}

func sessionSelect(source string) string {
	return `
		SELECT s.id, s.user_id, s.session_token, s.created_at, ` + userColumns("u") + `
		FROM ` + source + ` s
		JOIN users u ON u.id = s.user_id`
}

func scanSession(row pgx.Row) (*models.Session, error) {
	session := models.Session{User: &models.User{}}
	err := row.Scan(scanTargets(
		[]any{&session.ID, &session.UserID, &session.SessionToken, &session.CreatedAt},
		userTargets(session.User),
	)...)
	if err != nil {
		return nil, err
	}
	return &session, nil
}

// List returns all sessions with their owner, newest first
func (r *SessionRepository) List(ctx context.Context) ([]*models.Session, error) {
	rows, err := r.db.Query(ctx, sessionSelect("sessions")+` ORDER BY s.created_at DESC, s.id DESC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list sessions: %w", err)
	}
	defer rows.Close()

	sessions := []*models.Session{}
	for rows.Next() {
		session, err := scanSession(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan session: %w", err)
		}
		sessions = append(sessions, session)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating sessions: %w", err)
	}

	return sessions, nil
}

// GetByID retrieves a session by ID
func (r *SessionRepository) GetByID(ctx context.Context, id int64) (*models.Session, error) {
	session, err := scanSession(r.db.QueryRow(ctx, sessionSelect("sessions")+` WHERE s.id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("session %d: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get session: %w", err)
	}
	return session, nil
}

// Create creates a new session
func (r *SessionRepository) Create(ctx context.Context, in *models.CreateSessionInput) (*models.Session, error) {
	query := `
		WITH inserted AS (
			INSERT INTO sessions (user_id, session_token)
			VALUES ($1, $2)
			RETURNING *
		)` + sessionSelect("inserted")

	session, err := scanSession(r.db.QueryRow(ctx, query, in.UserID, in.SessionToken))
	if err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}
	return session, nil
}

// Delete deletes a session by ID
func (r *SessionRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.Exec(ctx, `DELETE FROM sessions WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("session %d: %w", id, ErrNotFound)
	}
	return nil
}

// Count returns the number of sessions
func (r *SessionRepository) Count(ctx context.Context) (int64, error) {
	return count(ctx, r.db, "sessions")
}
