package repository

import (
	"context"
	"errors"
	"fmt"

	"gizindir-panel/internal/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// InteractionRepository handles database operations for user interactions.
// Interactions reference users by email rather than id.
type InteractionRepository struct {
	db *pgxpool.Pool
}

// NewInteractionRepository creates a new interaction repository
func NewInteractionRepository(db *pgxpool.Pool) *InteractionRepository {
	return &InteractionRepository{db: db}
}

func interactionSelect(source string) string {
	return `
		SELECT i.id, i.user_email, i.shown_user_email, i.is_liked, i.created_at, ` +
		userColumns("u") + `, ` + userColumns("su") + `
		FROM ` + source + ` i
		JOIN users u ON u.email = i.user_email
		JOIN users su ON su.email = i.shown_user_email`
}

func scanInteraction(row pgx.Row) (*models.Interaction, error) {
	in := models.Interaction{User: &models.User{}, ShownUser: &models.User{}}
	err := row.Scan(scanTargets(
		[]any{&in.ID, &in.UserEmail, &in.ShownUserEmail, &in.IsLiked, &in.CreatedAt},
		userTargets(in.User),
		userTargets(in.ShownUser),
	)...)
	if err != nil {
		return nil, err
	}
	return &in, nil
}

// List returns all interactions with both users, newest first
func (r *InteractionRepository) List(ctx context.Context) ([]*models.Interaction, error) {
	rows, err := r.db.Query(ctx, interactionSelect("user_interactions")+` ORDER BY i.created_at DESC, i.id DESC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list interactions: %w", err)
	}
	defer rows.Close()

	interactions := []*models.Interaction{}
	for rows.Next() {
		in, err := scanInteraction(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan interaction: %w", err)
		}
		interactions = append(interactions, in)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating interactions: %w", err)
	}

	return interactions, nil
}

// GetByID retrieves an interaction by ID
func (r *InteractionRepository) GetByID(ctx context.Context, id int64) (*models.Interaction, error) {
	in, err := scanInteraction(r.db.QueryRow(ctx, interactionSelect("user_interactions")+` WHERE i.id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("interaction %d: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get interaction: %w", err)
	}
	return in, nil
}

// Create creates a new interaction
func (r *InteractionRepository) Create(ctx context.Context, input *models.CreateInteractionInput) (*models.Interaction, error) {
	query := `
		WITH inserted AS (
			INSERT INTO user_interactions (user_email, shown_user_email, is_liked)
			VALUES ($1, $2, $3)
			RETURNING *
		)` + interactionSelect("inserted")

	in, err := scanInteraction(r.db.QueryRow(ctx, query, input.UserEmail, input.ShownUserEmail, input.IsLiked))
	if err != nil {
		return nil, fmt.Errorf("failed to create interaction: %w", err)
	}
	return in, nil
}

// Update merges the supplied fields into an existing interaction
func (r *InteractionRepository) Update(ctx context.Context, id int64, input *models.UpdateInteractionInput) (*models.Interaction, error) {
	var set setClause
	addOptional(&set, "user_email", input.UserEmail)
	addOptional(&set, "shown_user_email", input.ShownUserEmail)
	addOptional(&set, "is_liked", input.IsLiked)

	if set.empty() {
		return r.GetByID(ctx, id)
	}

	update, args := set.update("user_interactions", id)
	query := `WITH updated AS (` + update + ` RETURNING *)` + interactionSelect("updated")

	in, err := scanInteraction(r.db.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("interaction %d: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to update interaction: %w", err)
	}
	return in, nil
}

// Delete deletes an interaction by ID
func (r *InteractionRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.Exec(ctx, `DELETE FROM user_interactions WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete interaction: %w", err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("interaction %d: %w", id, ErrNotFound)
	}
	return nil
}

// Count returns the number of interactions
func (r *InteractionRepository) Count(ctx context.Context) (int64, error) {
	return count(ctx, r.db, "user_interactions")
}
