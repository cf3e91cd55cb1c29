package panel

import (
	"context"
	"net/url"
	"time"

	"gizindir-panel/internal/handlers"
	"gizindir-panel/internal/models"
)

// SessionService is the session surface behind the sessions page
type SessionService = handlers.Service[models.Session, models.CreateSessionInput, models.NoUpdate]

// TokenInspector reads the expiry of server-issued session tokens
type TokenInspector interface {
	Expiry(token string) (time.Time, bool)
}

type sessionResource struct {
	sessions SessionService
	users    userLister
	tokens   TokenInspector
}

func (sessionResource) entity() handlers.Entity { return handlers.SessionEntity }

func (sessionResource) labels() Labels {
	return Labels{
		Title:   "Oturumlar",
		New:     "Yeni Oturum",
		Columns: []string{"ID", "Kullanıcı", "Oturum Tokeni", "Oluşturulma Tarihi", "Son Geçerlilik"},
		Confirm: "Bu oturumu silmek istediğinize emin misiniz?",
	}
}

func (r sessionResource) rows(ctx context.Context) ([]Row, error) {
	sessions, err := r.sessions.List(ctx)
	if err != nil {
		return nil, err
	}

	rows := make([]Row, 0, len(sessions))
	for _, s := range sessions {
		rows = append(rows, Row{
			ID: s.ID,
			Cells: []string{
				formatID(s.ID), userLabel(s.User), orDash(abbreviate(s.SessionToken)),
				formatTime(s.CreatedAt), r.expiry(s.SessionToken),
			},
		})
	}
	return rows, nil
}

// expiry is only known for tokens this server issued
func (r sessionResource) expiry(token string) string {
	if r.tokens == nil {
		return dash
	}
	exp, ok := r.tokens.Expiry(token)
	if !ok {
		return dash
	}
	return formatTime(exp)
}

func (r sessionResource) fields(ctx context.Context, _ int64) ([]Field, error) {
	options, err := userOptions(ctx, r.users, false)
	if err != nil {
		return nil, err
	}

	return []Field{
		{Name: "user_id", Label: "Kullanıcı", Type: "select", Options: options, Required: true},
		{Name: "session_token", Label: "Oturum Tokeni", Type: "text", Hint: "Boş bırakılırsa otomatik oluşturulur"},
	}, nil
}

func (r sessionResource) submit(ctx context.Context, _ int64, values url.Values) error {
	in := &models.CreateSessionInput{
		UserID:       intField(values, "user_id"),
		SessionToken: values.Get("session_token"),
	}
	_, err := r.sessions.Create(ctx, in)
	return err
}

func (r sessionResource) remove(ctx context.Context, id int64) error {
	return r.sessions.Delete(ctx, id)
}

// abbreviate shortens long tokens for the table
func abbreviate(token string) string {
	const keep = 24
	runes := []rune(token)
	if len(runes) <= keep {
		return token
	}
	return string(runes[:keep]) + "…"
}
