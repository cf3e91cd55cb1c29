package services

import (
	"context"

	"gizindir-panel/internal/models"
)

// MatchService handles match-related business logic
type MatchService struct {
	crud[models.Match, models.CreateMatchInput]
	enforceDistinct bool
}

// NewMatchService creates a new match service. With enforceDistinct a match
// between a user and themselves is rejected.
func NewMatchService(matches store[models.Match, models.CreateMatchInput], events Publisher, enforceDistinct bool) *MatchService {
	return &MatchService{
		crud:            newCrud[models.Match, models.CreateMatchInput](EntityMatches, matches, events, func(m *models.Match) int64 { return m.ID }),
		enforceDistinct: enforceDistinct,
	}
}

// Create validates and stores a new match
func (s *MatchService) Create(ctx context.Context, in *models.CreateMatchInput) (*models.Match, error) {
	if err := validateInput(in); err != nil {
		return nil, err
	}
	if s.enforceDistinct && in.User1ID == in.User2ID {
		return nil, invalid("user2_id", "nefield=user1_id")
	}
	return s.create(ctx, in)
}

// Update always fails: matches are immutable once created
func (s *MatchService) Update(ctx context.Context, id int64, in *models.NoUpdate) (*models.Match, error) {
	return nil, immutable(EntityMatches)
}
