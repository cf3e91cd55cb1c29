package services

import (
	"context"

	"gizindir-panel/internal/models"
)

type messageStore interface {
	store[models.Message, models.CreateMessageInput]
	Update(ctx context.Context, id int64, in *models.UpdateMessageInput) (*models.Message, error)
}

// MessageService handles message-related business logic
type MessageService struct {
	crud[models.Message, models.CreateMessageInput]
	messages messageStore
}

// NewMessageService creates a new message service
func NewMessageService(messages messageStore, events Publisher) *MessageService {
	return &MessageService{
		crud:     newCrud[models.Message, models.CreateMessageInput](EntityMessages, messages, events, func(m *models.Message) int64 { return m.ID }),
		messages: messages,
	}
}

// Create validates and stores a new message
func (s *MessageService) Create(ctx context.Context, in *models.CreateMessageInput) (*models.Message, error) {
	if err := validateInput(in); err != nil {
		return nil, err
	}
	return s.create(ctx, in)
}

// Update merges the supplied fields into a message
func (s *MessageService) Update(ctx context.Context, id int64, in *models.UpdateMessageInput) (*models.Message, error) {
	if err := rejectNulls(
		nullCheck{"sender_id", in.SenderID},
		nullCheck{"receiver_id", in.ReceiverID},
		nullCheck{"content", in.Content},
		nullCheck{"is_read", in.IsRead},
	); err != nil {
		return nil, err
	}
	if err := validateInput(in); err != nil {
		return nil, err
	}

	msg, err := s.messages.Update(ctx, id, in)
	if err != nil {
		return nil, err
	}
	s.publish(ActionUpdated, msg.ID)
	return msg, nil
}
