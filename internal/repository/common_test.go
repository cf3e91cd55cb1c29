package repository

import (
	"errors"
	"fmt"
	"testing"

	"gizindir-panel/internal/models"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestUserColumns(t *testing.T) {
	cols := userColumns("su")
	assert.Equal(t, "su.id, su.name, su.email, su.password, su.full_name, su.gender, su.interested_in, su.birth_date, su.bio, su.profile_image_url, su.created_at", cols)
	assert.Len(t, userTargets(&models.User{}), len(userFields))
}

func TestSetClause(t *testing.T) {
	var set setClause
	assert.True(t, set.empty())

	addOptional(&set, "content", models.Some("merhaba"))
	addOptional(&set, "sender_id", models.Optional[int64]{})
	addOptional(&set, "is_liked", models.Null[bool]())

	query, args := set.update("messages", 7)
	assert.Equal(t, "UPDATE messages SET content = $1, is_liked = $2 WHERE id = $3", query)
	assert.Len(t, args, 3)
	assert.Equal(t, "merhaba", *args[0].(*string))
	assert.Nil(t, args[1].(*bool))
	assert.Equal(t, int64(7), args[2])
}

func TestConstraintName(t *testing.T) {
	err := fmt.Errorf("failed to create user: %w", &pgconn.PgError{Code: "23505", ConstraintName: "users_email_key"})
	name, ok := ConstraintName(err)
	assert.True(t, ok)
	assert.Equal(t, "users_email_key", name)

	_, ok = ConstraintName(errors.New("plain"))
	assert.False(t, ok)
}
