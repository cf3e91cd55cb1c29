package panel

import (
	"context"
	"net/url"
	"strconv"

	"gizindir-panel/internal/handlers"
	"gizindir-panel/internal/models"
)

// MessageService is the message surface behind the messages page
type MessageService = handlers.Service[models.Message, models.CreateMessageInput, models.UpdateMessageInput]

type messageResource struct {
	messages MessageService
	users    userLister
}

func (messageResource) entity() handlers.Entity { return handlers.MessageEntity }

func (messageResource) labels() Labels {
	return Labels{
		Title:   "Mesajlar",
		New:     "Yeni Mesaj",
		Edit:    "Mesaj Düzenle",
		Columns: []string{"ID", "Gönderen", "Alıcı", "İçerik", "Gönderim Tarihi", "Okundu mu?"},
		Confirm: "Bu mesajı silmek istediğinize emin misiniz?",
	}
}

func (r messageResource) rows(ctx context.Context) ([]Row, error) {
	messages, err := r.messages.List(ctx)
	if err != nil {
		return nil, err
	}

	rows := make([]Row, 0, len(messages))
	for _, m := range messages {
		rows = append(rows, Row{
			ID: m.ID,
			Cells: []string{
				formatID(m.ID), userLabel(m.Sender), userLabel(m.Receiver),
				orDash(m.Content), formatTime(m.SentAt), yesNo(m.IsRead),
			},
		})
	}
	return rows, nil
}

func (r messageResource) fields(ctx context.Context, id int64) ([]Field, error) {
	options, err := userOptions(ctx, r.users, false)
	if err != nil {
		return nil, err
	}

	var m models.Message
	if id != 0 {
		found, err := r.messages.Get(ctx, id)
		if err != nil {
			return nil, err
		}
		m = *found
	}

	sender, receiver := "", ""
	if m.ID != 0 {
		sender, receiver = formatID(m.SenderID), formatID(m.ReceiverID)
	}

	return []Field{
		{Name: "sender_id", Label: "Gönderen", Type: "select", Value: sender, Options: options, Required: true},
		{Name: "receiver_id", Label: "Alıcı", Type: "select", Value: receiver, Options: options, Required: true},
		{Name: "content", Label: "Mesaj İçeriği", Type: "textarea", Value: m.Content, Required: true},
		{Name: "is_read", Label: "Okundu olarak işaretle", Type: "checkbox", Value: strconv.FormatBool(m.IsRead)},
	}, nil
}

func (r messageResource) submit(ctx context.Context, id int64, values url.Values) error {
	if id == 0 {
		in := &models.CreateMessageInput{
			SenderID:   intField(values, "sender_id"),
			ReceiverID: intField(values, "receiver_id"),
			Content:    values.Get("content"),
			IsRead:     checked(values, "is_read"),
		}
		_, err := r.messages.Create(ctx, in)
		return err
	}

	in := &models.UpdateMessageInput{
		SenderID:   idField(values, "sender_id"),
		ReceiverID: idField(values, "receiver_id"),
		Content:    requiredField(values, "content"),
		IsRead:     models.Some(checked(values, "is_read")),
	}
	_, err := r.messages.Update(ctx, id, in)
	return err
}

func (r messageResource) remove(ctx context.Context, id int64) error {
	return r.messages.Delete(ctx, id)
}
