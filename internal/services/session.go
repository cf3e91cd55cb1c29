package services

import (
	"context"
	"fmt"

	"gizindir-panel/internal/models"
)

// SessionService handles session-related business logic
type SessionService struct {
	crud[models.Session, models.CreateSessionInput]
	tokens *TokenIssuer
}

// NewSessionService creates a new session service
func NewSessionService(sessions store[models.Session, models.CreateSessionInput], events Publisher, tokens *TokenIssuer) *SessionService {
	return &SessionService{
		crud:   newCrud[models.Session, models.CreateSessionInput](EntitySessions, sessions, events, func(s *models.Session) int64 { return s.ID }),
		tokens: tokens,
	}
}

// Create stores a new session, issuing a token when none was supplied
func (s *SessionService) Create(ctx context.Context, in *models.CreateSessionInput) (*models.Session, error) {
	if err := validateInput(in); err != nil {
		return nil, err
	}

	if in.SessionToken == "" {
		token, err := s.tokens.Issue(in.UserID)
		if err != nil {
			return nil, fmt.Errorf("failed to issue session token: %w", err)
		}
		in.SessionToken = token
	}

	return s.create(ctx, in)
}

// Update always fails: sessions are immutable once created
func (s *SessionService) Update(ctx context.Context, id int64, in *models.NoUpdate) (*models.Session, error) {
	return nil, immutable(EntitySessions)
}
