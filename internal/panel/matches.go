package panel

import (
	"context"
	"net/url"

	"gizindir-panel/internal/handlers"
	"gizindir-panel/internal/models"
)

// MatchService is the match surface behind the matches page
type MatchService = handlers.Service[models.Match, models.CreateMatchInput, models.NoUpdate]

const sameUserMatch formError = "Aynı kullanıcı ile eşleşme oluşturulamaz!"

type matchResource struct {
	matches MatchService
	users   userLister
}

func (matchResource) entity() handlers.Entity { return handlers.MatchEntity }

func (matchResource) labels() Labels {
	return Labels{
		Title:   "Eşleşmeler",
		New:     "Yeni Eşleşme",
		Columns: []string{"ID", "Kullanıcı 1", "Kullanıcı 2", "Eşleşme Tarihi"},
		Confirm: "Bu eşleşmeyi silmek istediğinize emin misiniz?",
	}
}

func (r matchResource) rows(ctx context.Context) ([]Row, error) {
	matches, err := r.matches.List(ctx)
	if err != nil {
		return nil, err
	}

	rows := make([]Row, 0, len(matches))
	for _, m := range matches {
		rows = append(rows, Row{
			ID:    m.ID,
			Cells: []string{formatID(m.ID), userLabel(m.User1), userLabel(m.User2), formatTime(m.MatchedAt)},
		})
	}
	return rows, nil
}

func (r matchResource) fields(ctx context.Context, _ int64) ([]Field, error) {
	options, err := userOptions(ctx, r.users, false)
	if err != nil {
		return nil, err
	}

	return []Field{
		{Name: "user1_id", Label: "Kullanıcı 1", Type: "select", Options: options, Required: true},
		{Name: "user2_id", Label: "Kullanıcı 2", Type: "select", Options: options, Required: true},
	}, nil
}

func (r matchResource) submit(ctx context.Context, _ int64, values url.Values) error {
	in := &models.CreateMatchInput{
		User1ID: intField(values, "user1_id"),
		User2ID: intField(values, "user2_id"),
	}
	if in.User1ID != 0 && in.User1ID == in.User2ID {
		return sameUserMatch
	}

	_, err := r.matches.Create(ctx, in)
	return err
}

func (r matchResource) remove(ctx context.Context, id int64) error {
	return r.matches.Delete(ctx, id)
}
