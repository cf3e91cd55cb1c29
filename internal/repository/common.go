package repository

import (
	"errors"
	"fmt"
	"strings"

	"gizindir-panel/internal/models"

	"github.com/jackc/pgx/v5/pgconn"
)

// ErrNotFound is returned when a row with the requested id does not exist
var ErrNotFound = errors.New("record not found")

var userFields = []string{
	"id", "name", "email", "password", "full_name", "gender",
	"interested_in", "birth_date", "bio", "profile_image_url", "created_at",
}

// userColumns returns the user column list qualified with alias
func userColumns(alias string) string {
	cols := make([]string, len(userFields))
	for i, f := range userFields {
		cols[i] = alias + "." + f
	}
	return strings.Join(cols, ", ")
}

// userTargets returns scan destinations in userFields order
func userTargets(u *models.User) []any {
	return []any{
		&u.ID, &u.Name, &u.Email, &u.Password, &u.FullName, &u.Gender,
		&u.InterestedIn, &u.BirthDate, &u.Bio, &u.ProfileImageURL, &u.CreatedAt,
	}
}

// scanTargets concatenates scan destination lists
func scanTargets(groups ...[]any) []any {
	var out []any
	for _, g := range groups {
		out = append(out, g...)
	}
	return out
}

// setClause accumulates "col = $n" pairs for partial updates
type setClause struct {
	cols []string
	args []any
}

func (s *setClause) add(col string, value any) {
	s.args = append(s.args, value)
	s.cols = append(s.cols, fmt.Sprintf("%s = $%d", col, len(s.args)))
}

func (s *setClause) empty() bool {
	return len(s.cols) == 0
}

// update renders an UPDATE statement keyed on id; id is bound last
func (s *setClause) update(table string, id int64) (string, []any) {
	args := append(s.args, id)
	query := fmt.Sprintf("UPDATE %s SET %s WHERE id = $%d", table, strings.Join(s.cols, ", "), len(args))
	return query, args
}

// addOptional adds col when the optional was present in the request
func addOptional[T any](s *setClause, col string, o models.Optional[T]) {
	if !o.Set {
		return
	}
	s.add(col, o.Value)
}

// ConstraintName reports the violated constraint of a PostgreSQL error, if any
func ConstraintName(err error) (string, bool) {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.ConstraintName != "" {
		return pgErr.ConstraintName, true
	}
	return "", false
}
