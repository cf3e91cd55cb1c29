package repository

import (
	"context"
	"errors"
	"fmt"

	"gizindir-panel/internal/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// UserRepository handles database operations for users
type UserRepository struct {
	db *pgxpool.Pool
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *pgxpool.Pool) *UserRepository {
	return &UserRepository{db: db}
}

// List returns all users, newest first
func (r *UserRepository) List(ctx context.Context) ([]*models.User, error) {
	query := `SELECT ` + userColumns("u") + ` FROM users u ORDER BY u.created_at DESC, u.id DESC`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	defer rows.Close()

	users := []*models.User{}
	for rows.Next() {
		var user models.User
		if err := rows.Scan(userTargets(&user)...); err != nil {
			return nil, fmt.Errorf("failed to scan user: %w", err)
		}
		users = append(users, &user)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating users: %w", err)
	}

	return users, nil
}

// GetByID retrieves a user by ID
func (r *UserRepository) GetByID(ctx context.Context, id int64) (*models.User, error) {
	query := `SELECT ` + userColumns("u") + ` FROM users u WHERE u.id = $1`

	var user models.User
	err := r.db.QueryRow(ctx, query, id).Scan(userTargets(&user)...)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("user %d: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return &user, nil
}

// Create inserts a user and returns the stored row
func (r *UserRepository) Create(ctx context.Context, in *models.CreateUserInput) (*models.User, error) {
	query := `
		INSERT INTO users (name, email, password, full_name, gender, interested_in, birth_date, bio, profile_image_url)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING ` + userColumns("users")

	var user models.User
	err := r.db.QueryRow(ctx, query,
		in.Name, in.Email, in.Password, in.FullName, in.Gender,
		in.InterestedIn, in.BirthDate.Ptr(), in.Bio, in.ProfileImageURL,
	).Scan(userTargets(&user)...)
	if err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	return &user, nil
}

// Update merges the supplied fields into an existing user
func (r *UserRepository) Update(ctx context.Context, id int64, in *models.UpdateUserInput) (*models.User, error) {
	var set setClause
	addOptional(&set, "name", in.Name)
	addOptional(&set, "email", in.Email)
	addOptional(&set, "password", in.Password)
	addOptional(&set, "full_name", in.FullName)
	addOptional(&set, "gender", in.Gender)
	addOptional(&set, "interested_in", in.InterestedIn)
	if in.BirthDate.Set {
		set.add("birth_date", in.BirthDate.Value.Ptr())
	}
	addOptional(&set, "bio", in.Bio)
	addOptional(&set, "profile_image_url", in.ProfileImageURL)

	if set.empty() {
		return r.GetByID(ctx, id)
	}

	query, args := set.update("users", id)
	query += ` RETURNING ` + userColumns("users")

	var user models.User
	err := r.db.QueryRow(ctx, query, args...).Scan(userTargets(&user)...)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("user %d: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to update user: %w", err)
	}
	return &user, nil
}

// UpdateProfileImageURL sets the profile image URL for a user
func (r *UserRepository) UpdateProfileImageURL(ctx context.Context, id int64, url string) error {
	query := `UPDATE users SET profile_image_url = $1 WHERE id = $2`
	result, err := r.db.Exec(ctx, query, url, id)
	if err != nil {
		return fmt.Errorf("failed to update profile image url: %w", err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("user %d: %w", id, ErrNotFound)
	}
	return nil
}

// Delete deletes a user by ID
func (r *UserRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.Exec(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("user %d: %w", id, ErrNotFound)
	}
	return nil
}

// Count returns the number of users
func (r *UserRepository) Count(ctx context.Context) (int64, error) {
	return count(ctx, r.db, "users")
}

// count returns the row count of table
func count(ctx context.Context, db *pgxpool.Pool, table string) (int64, error) {
	var n int64
	if err := db.QueryRow(ctx, `SELECT COUNT(*) FROM `+table).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count %s: %w", table, err)
	}
	return n, nil
}

