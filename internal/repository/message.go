package repository

import (
	"context"
	"errors"
	"fmt"

	"gizindir-panel/internal/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// MessageRepository handles database operations for messages
type MessageRepository struct {
	db *pgxpool.Pool
}

// NewMessageRepository creates a new message repository
func NewMessageRepository(db *pgxpool.Pool) *MessageRepository {
	return &MessageRepository{db: db}
}

func messageSelect(source string) string {
	return `
		SELECT m.id, m.sender_id, m.receiver_id, m.content, m.sent_at, m.is_read, ` +
		userColumns("s") + `, ` + userColumns("r") + `
		FROM ` + source + ` m
		JOIN users s ON s.id = m.sender_id
		JOIN users r ON r.id = m.receiver_id`
}

func scanMessage(row pgx.Row) (*models.Message, error) {
	msg := models.Message{Sender: &models.User{}, Receiver: &models.User{}}
	err := row.Scan(scanTargets(
		[]any{&msg.ID, &msg.SenderID, &msg.ReceiverID, &msg.Content, &msg.SentAt, &msg.IsRead},
		userTargets(msg.Sender),
		userTargets(msg.Receiver),
	)...)
	if err != nil {
		return nil, err
	}
	return &msg, nil
}

// List returns all messages with sender and receiver, newest first
func (r *MessageRepository) List(ctx context.Context) ([]*models.Message, error) {
	rows, err := r.db.Query(ctx, messageSelect("messages")+` ORDER BY m.sent_at DESC, m.id DESC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list messages: %w", err)
	}
	defer rows.Close()

	messages := []*models.Message{}
	for rows.Next() {
		msg, err := scanMessage(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan message: %w", err)
		}
		messages = append(messages, msg)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating messages: %w", err)
	}

	return messages, nil
}

// GetByID retrieves a message by ID
func (r *MessageRepository) GetByID(ctx context.Context, id int64) (*models.Message, error) {
	msg, err := scanMessage(r.db.QueryRow(ctx, messageSelect("messages")+` WHERE m.id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("message %d: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get message: %w", err)
	}
	return msg, nil
}

// Create creates a new message
func (r *MessageRepository) Create(ctx context.Context, in *models.CreateMessageInput) (*models.Message, error) {
	query := `
		WITH inserted AS (
			INSERT INTO messages (sender_id, receiver_id, content, is_read)
			VALUES ($1, $2, $3, $4)
			RETURNING *
		)` + messageSelect("inserted")

	msg, err := scanMessage(r.db.QueryRow(ctx, query, in.SenderID, in.ReceiverID, in.Content, in.IsRead))
	if err != nil {
		return nil, fmt.Errorf("failed to create message: %w", err)
	}
	return msg, nil
}

// Update merges the supplied fields into an existing message
func (r *MessageRepository) Update(ctx context.Context, id int64, in *models.UpdateMessageInput) (*models.Message, error) {
	var set setClause
	addOptional(&set, "sender_id", in.SenderID)
	addOptional(&set, "receiver_id", in.ReceiverID)
	addOptional(&set, "content", in.Content)
	addOptional(&set, "is_read", in.IsRead)

	if set.empty() {
		return r.GetByID(ctx, id)
	}

	update, args := set.update("messages", id)
	query := `WITH updated AS (` + update + ` RETURNING *)` + messageSelect("updated")

	msg, err := scanMessage(r.db.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("message %d: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to update message: %w", err)
	}
	return msg, nil
}

// Delete deletes a message by ID
func (r *MessageRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.Exec(ctx, `DELETE FROM messages WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete message: %w", err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("message %d: %w", id, ErrNotFound)
	}
	return nil
}

// Count returns the number of messages
func (r *MessageRepository) Count(ctx context.Context) (int64, error) {
	return count(ctx, r.db, "messages")
}
