package repository

import (
	"context"
	"errors"
	"fmt"

	"gizindir-panel/internal/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// MatchRepository handles database operations for matches
type MatchRepository struct {
	db *pgxpool.Pool
}

// NewMatchRepository creates a new match repository
func NewMatchRepository(db *pgxpool.Pool) *MatchRepository {
	return &MatchRepository{db: db}
}

// matchSelect joins both users onto rows read from source
func matchSelect(source string) string {
	return `
		SELECT m.id, m.user1_id, m.user2_id, m.matched_at, ` + userColumns("u1") + `, ` + userColumns("u2") + `
		FROM ` + source + ` m
		JOIN users u1 ON u1.id = m.user1_id
		JOIN users u2 ON u2.id = m.user2_id`
}

func scanMatch(row pgx.Row) (*models.Match, error) {
	match := models.Match{User1: &models.User{}, User2: &models.User{}}
	err := row.Scan(scanTargets(
		[]any{&match.ID, &match.User1ID, &match.User2ID, &match.MatchedAt},
		userTargets(match.User1),
		userTargets(match.User2),
	)...)
	if err != nil {
		return nil, err
	}
	return &match, nil
}

// List returns all matches with both users, most recent first
func (r *MatchRepository) List(ctx context.Context) ([]*models.Match, error) {
	rows, err := r.db.Query(ctx, matchSelect("matches")+` ORDER BY m.matched_at DESC, m.id DESC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list matches: %w", err)
	}
	defer rows.Close()

	matches := []*models.Match{}
	for rows.Next() {
		match, err := scanMatch(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan match: %w", err)
		}
		matches = append(matches, match)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating matches: %w", err)
	}

	return matches, nil
}

// GetByID retrieves a match by ID
func (r *MatchRepository) GetByID(ctx context.Context, id int64) (*models.Match, error) {
	match, err := scanMatch(r.db.QueryRow(ctx, matchSelect("matches")+` WHERE m.id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("match %d: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get match: %w", err)
	}
	return match, nil
}

// Create creates a new match
func (r *MatchRepository) Create(ctx context.Context, in *models.CreateMatchInput) (*models.Match, error) {
	query := `
		WITH inserted AS (
			INSERT INTO matches (user1_id, user2_id)
			VALUES ($1, $2)
			RETURNING *
		)` + matchSelect("inserted")

	match, err := scanMatch(r.db.QueryRow(ctx, query, in.User1ID, in.User2ID))
	if err != nil {
		return nil, fmt.Errorf("failed to create match: %w", err)
	}
	return match, nil
}

// Delete deletes a match by ID
func (r *MatchRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.Exec(ctx, `DELETE FROM matches WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete match: %w", err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("match %d: %w", id, ErrNotFound)
	}
	return nil
}

// Count returns the number of matches
func (r *MatchRepository) Count(ctx context.Context) (int64, error) {
	return count(ctx, r.db, "matches")
}
