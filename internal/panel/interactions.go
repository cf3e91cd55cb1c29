package panel

import (
	"context"
	"net/url"
	"strings"

	"gizindir-panel/internal/handlers"
	"gizindir-panel/internal/models"
)

// InteractionService is the interaction surface behind the interactions page
type InteractionService = handlers.Service[models.Interaction, models.CreateInteractionInput, models.UpdateInteractionInput]

const sameUserInteraction formError = "Aynı kullanıcı kendisiyle etkileşimde bulunamaz!"

var likedOptions = []Option{
	{Value: "null", Label: "Henüz Karar Vermedi"},
	{Value: "true", Label: "Evet, Beğendi"},
	{Value: "false", Label: "Hayır, Beğenmedi"},
}

type interactionResource struct {
	interactions InteractionService
	users        userLister
}

func (interactionResource) entity() handlers.Entity { return handlers.InteractionEntity }

func (interactionResource) labels() Labels {
	return Labels{
		Title:   "Etkileşimler",
		New:     "Yeni Etkileşim",
		Edit:    "Etkileşim Düzenle",
		Columns: []string{"ID", "Kullanıcı", "Gösterilen Kullanıcı", "Beğendi mi?", "Oluşturulma Tarihi"},
		Confirm: "Bu etkileşimi silmek istediğinize emin misiniz?",
	}
}

func (r interactionResource) rows(ctx context.Context) ([]Row, error) {
	interactions, err := r.interactions.List(ctx)
	if err != nil {
		return nil, err
	}

	rows := make([]Row, 0, len(interactions))
	for _, in := range interactions {
		rows = append(rows, Row{
			ID: in.ID,
			Cells: []string{
				formatID(in.ID), userLabel(in.User), userLabel(in.ShownUser),
				tristate(in.IsLiked), formatTime(in.CreatedAt),
			},
		})
	}
	return rows, nil
}

func (r interactionResource) fields(ctx context.Context, id int64) ([]Field, error) {
	options, err := userOptions(ctx, r.users, true)
	if err != nil {
		return nil, err
	}

	var in models.Interaction
	if id != 0 {
		found, err := r.interactions.Get(ctx, id)
		if err != nil {
			return nil, err
		}
		in = *found
	}

	return []Field{
		{Name: "user_email", Label: "Kullanıcı", Type: "select", Value: in.UserEmail, Options: options, Required: true},
		{Name: "shown_user_email", Label: "Gösterilen Kullanıcı", Type: "select", Value: in.ShownUserEmail, Options: options, Required: true},
		{Name: "is_liked", Label: "Beğendi mi?", Type: "select", Value: tristateValue(in.IsLiked), Options: likedOptions},
	}, nil
}

func (r interactionResource) submit(ctx context.Context, id int64, values url.Values) error {
	user, shown := values.Get("user_email"), values.Get("shown_user_email")
	if user != "" && strings.EqualFold(user, shown) {
		return sameUserInteraction
	}

	if id == 0 {
		in := &models.CreateInteractionInput{
			UserEmail:      user,
			ShownUserEmail: shown,
			IsLiked:        tristateField(values, "is_liked"),
		}
		_, err := r.interactions.Create(ctx, in)
		return err
	}

	liked := models.Null[bool]()
	if v := tristateField(values, "is_liked"); v != nil {
		liked = models.Some(*v)
	}

	in := &models.UpdateInteractionInput{
		UserEmail:      requiredField(values, "user_email"),
		ShownUserEmail: requiredField(values, "shown_user_email"),
		IsLiked:        liked,
	}
	_, err := r.interactions.Update(ctx, id, in)
	return err
}

func (r interactionResource) remove(ctx context.Context, id int64) error {
	return r.interactions.Delete(ctx, id)
}
