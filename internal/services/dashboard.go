package services

import (
	"context"
	"fmt"

	"gizindir-panel/internal/models"

	"golang.org/x/sync/errgroup"
)

// Counter reports the number of records of one entity
type Counter interface {
	Count(ctx context.Context) (int64, error)
}

// DashboardService aggregates record counts across all entities
type DashboardService struct {
	users        Counter
	matches      Counter
	messages     Counter
	sessions     Counter
	interactions Counter
}

// NewDashboardService creates a new dashboard service
func NewDashboardService(users, matches, messages, sessions, interactions Counter) *DashboardService {
	return &DashboardService{
		users:        users,
		matches:      matches,
		messages:     messages,
		sessions:     sessions,
		interactions: interactions,
	}
}

// Counts runs the five counts concurrently. A single failure fails the whole
// aggregation; no partial counts are returned.
func (s *DashboardService) Counts(ctx context.Context) (*models.Counts, error) {
	var counts models.Counts

	g, ctx := errgroup.WithContext(ctx)
	for _, job := range []struct {
		entity string
		src    Counter
		dst    *int64
	}{
		{EntityUsers, s.users, &counts.Users},
		{EntityMatches, s.matches, &counts.Matches},
		{EntityMessages, s.messages, &counts.Messages},
		{EntitySessions, s.sessions, &counts.Sessions},
		{EntityInteractions, s.interactions, &counts.Interactions},
	} {
		job := job
		g.Go(func() error {
			n, err := job.src.Count(ctx)
			if err != nil {
				return fmt.Errorf("failed to count %s: %w", job.entity, err)
			}
			*job.dst = n
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &counts, nil
}
