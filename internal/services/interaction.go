package services

import (
	"context"
	"strings"

	"gizindir-panel/internal/models"
)

type interactionStore interface {
	store[models.Interaction, models.CreateInteractionInput]
	Update(ctx context.Context, id int64, in *models.UpdateInteractionInput) (*models.Interaction, error)
}

// InteractionService handles swipe interaction business logic
type InteractionService struct {
	crud[models.Interaction, models.CreateInteractionInput]
	interactions    interactionStore
	enforceDistinct bool
}

// NewInteractionService creates a new interaction service
func NewInteractionService(interactions interactionStore, events Publisher, enforceDistinct bool) *InteractionService {
	return &InteractionService{
		crud:            newCrud[models.Interaction, models.CreateInteractionInput](EntityInteractions, interactions, events, func(i *models.Interaction) int64 { return i.ID }),
		interactions:    interactions,
		enforceDistinct: enforceDistinct,
	}
}

// Create validates and stores a new interaction
func (s *InteractionService) Create(ctx context.Context, in *models.CreateInteractionInput) (*models.Interaction, error) {
	if err := validateInput(in); err != nil {
		return nil, err
	}
	if s.enforceDistinct && strings.EqualFold(in.UserEmail, in.ShownUserEmail) {
		return nil, invalid("shown_user_email", "nefield=user_email")
	}
	return s.create(ctx, in)
}

// Update merges the supplied fields into an interaction
func (s *InteractionService) Update(ctx context.Context, id int64, in *models.UpdateInteractionInput) (*models.Interaction, error) {
	if err := rejectNulls(
		nullCheck{"user_email", in.UserEmail},
		nullCheck{"shown_user_email", in.ShownUserEmail},
	); err != nil {
		return nil, err
	}
	if err := validateInput(in); err != nil {
		return nil, err
	}

	if s.enforceDistinct && (in.UserEmail.Set || in.ShownUserEmail.Set) {
		current, err := s.interactions.GetByID(ctx, id)
		if err != nil {
			return nil, err
		}
		user, shown := current.UserEmail, current.ShownUserEmail
		if in.UserEmail.Value != nil {
			user = *in.UserEmail.Value
		}
		if in.ShownUserEmail.Value != nil {
			shown = *in.ShownUserEmail.Value
		}
		if strings.EqualFold(user, shown) {
			return nil, invalid("shown_user_email", "nefield=user_email")
		}
	}

	interaction, err := s.interactions.Update(ctx, id, in)
	if err != nil {
		return nil, err
	}
	s.publish(ActionUpdated, interaction.ID)
	return interaction, nil
}
