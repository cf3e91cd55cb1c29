package services

import (
	"context"
	"errors"
	"fmt"

	"gizindir-panel/internal/models"
)

// Entity keys used in routes and change events
const (
	EntityUsers        = "users"
	EntityMatches      = "matches"
	EntityMessages     = "messages"
	EntitySessions     = "sessions"
	EntityInteractions = "interactions"
)

// Change actions carried by entity_changed events
const (
	ActionCreated = "created"
	ActionUpdated = "updated"
	ActionDeleted = "deleted"
)

// ErrImmutable is returned by Update on entities that cannot be edited
var ErrImmutable = errors.New("entity cannot be updated")

// Event is pushed to live dashboard subscribers
type Event struct {
	Type   string         `json:"type"`
	Entity string         `json:"entity,omitempty"`
	Action string         `json:"action,omitempty"`
	ID     int64          `json:"id,omitempty"`
	Counts *models.Counts `json:"counts,omitempty"`
}

// Publisher receives change notifications from services
type Publisher interface {
	Publish(evt Event)
}

type nopPublisher struct{}

func (nopPublisher) Publish(Event) {}

// store is the repository surface shared by every entity
type store[T, C any] interface {
	List(ctx context.Context) ([]*T, error)
	GetByID(ctx context.Context, id int64) (*T, error)
	Create(ctx context.Context, in *C) (*T, error)
	Delete(ctx context.Context, id int64) error
	Count(ctx context.Context) (int64, error)
}

// crud implements the operations that are identical for all entities
type crud[T, C any] struct {
	entity string
	repo   store[T, C]
	events Publisher
	idOf   func(*T) int64
}

func newCrud[T, C any](entity string, repo store[T, C], events Publisher, idOf func(*T) int64) crud[T, C] {
	if events == nil {
		events = nopPublisher{}
	}
	return crud[T, C]{entity: entity, repo: repo, events: events, idOf: idOf}
}

// List returns every record with relations joined
func (c *crud[T, C]) List(ctx context.Context) ([]*T, error) {
	return c.repo.List(ctx)
}

// Get returns one record with relations joined
func (c *crud[T, C]) Get(ctx context.Context, id int64) (*T, error) {
	return c.repo.GetByID(ctx, id)
}

// Count returns the number of records
func (c *crud[T, C]) Count(ctx context.Context) (int64, error) {
	return c.repo.Count(ctx)
}

// Delete removes a record
func (c *crud[T, C]) Delete(ctx context.Context, id int64) error {
	if err := c.repo.Delete(ctx, id); err != nil {
		return err
	}
	c.publish(ActionDeleted, id)
	return nil
}

func (c *crud[T, C]) create(ctx context.Context, in *C) (*T, error) {
	record, err := c.repo.Create(ctx, in)
	if err != nil {
		return nil, err
	}
	c.publish(ActionCreated, c.idOf(record))
	return record, nil
}

func (c *crud[T, C]) publish(action string, id int64) {
	c.events.Publish(Event{Type: "entity_changed", Entity: c.entity, Action: action, ID: id})
}

func immutable(entity string) error {
	return fmt.Errorf("%s: %w", entity, ErrImmutable)
}
