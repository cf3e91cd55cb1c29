package services

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"gizindir-panel/internal/models"
	"gizindir-panel/internal/repository"
)

var errStoreDown = errors.New("connection refused")

// memStore is an in-memory stand-in for a repository
type memStore[T, C any] struct {
	mu    sync.Mutex
	next  int64
	rows  map[int64]*T
	build func(id int64, in *C) *T
	err   error
}

func newMemStore[T, C any](build func(id int64, in *C) *T) *memStore[T, C] {
	return &memStore[T, C]{rows: make(map[int64]*T), build: build}
}

func (s *memStore[T, C]) List(ctx context.Context) ([]*T, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return nil, s.err
	}

	ids := make([]int64, 0, len(s.rows))
	for id := range s.rows {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] > ids[j] })

	out := make([]*T, 0, len(ids))
	for _, id := range ids {
		out = append(out, s.rows[id])
	}
	return out, nil
}

func (s *memStore[T, C]) GetByID(ctx context.Context, id int64) (*T, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return nil, s.err
	}
	row, ok := s.rows[id]
	if !ok {
		return nil, fmt.Errorf("record %d: %w", id, repository.ErrNotFound)
	}
	return row, nil
}

func (s *memStore[T, C]) Create(ctx context.Context, in *C) (*T, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return nil, s.err
	}
	s.next++
	row := s.build(s.next, in)
	s.rows[s.next] = row
	return row, nil
}

func (s *memStore[T, C]) Delete(ctx context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return s.err
	}
	if _, ok := s.rows[id]; !ok {
		return fmt.Errorf("record %d: %w", id, repository.ErrNotFound)
	}
	delete(s.rows, id)
	return nil
}

func (s *memStore[T, C]) Count(ctx context.Context) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return 0, s.err
	}
	return int64(len(s.rows)), nil
}

// update applies fn to a stored row under the lock
func (s *memStore[T, C]) update(id int64, fn func(*T)) (*T, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return nil, s.err
	}
	row, ok := s.rows[id]
	if !ok {
		return nil, fmt.Errorf("record %d: %w", id, repository.ErrNotFound)
	}
	fn(row)
	return row, nil
}

type fakeUsers struct {
	*memStore[models.User, models.CreateUserInput]
	lastUpdate *models.UpdateUserInput
}

func newFakeUsers() *fakeUsers {
	return &fakeUsers{memStore: newMemStore(func(id int64, in *models.CreateUserInput) *models.User {
		return &models.User{
			ID: id, Name: in.Name, Email: in.Email, Password: in.Password, FullName: in.FullName,
			Gender: in.Gender, InterestedIn: in.InterestedIn, BirthDate: in.BirthDate.Ptr(),
			Bio: in.Bio, ProfileImageURL: in.ProfileImageURL, CreatedAt: time.Now(),
		}
	})}
}

func (f *fakeUsers) Update(ctx context.Context, id int64, in *models.UpdateUserInput) (*models.User, error) {
	f.lastUpdate = in
	return f.update(id, func(u *models.User) {
		if in.Email.Set && in.Email.Value != nil {
			u.Email = *in.Email.Value
		}
		if in.Password.Set && in.Password.Value != nil {
			u.Password = *in.Password.Value
		}
		if in.Name.Set {
			u.Name = in.Name.Value
		}
		if in.Gender.Set {
			u.Gender = in.Gender.Value
		}
	})
}

func (f *fakeUsers) UpdateProfileImageURL(ctx context.Context, id int64, url string) error {
	_, err := f.update(id, func(u *models.User) { u.ProfileImageURL = &url })
	return err
}

func newFakeMatches() *memStore[models.Match, models.CreateMatchInput] {
	return newMemStore(func(id int64, in *models.CreateMatchInput) *models.Match {
		return &models.Match{ID: id, User1ID: in.User1ID, User2ID: in.User2ID, MatchedAt: time.Now()}
	})
}

type fakeMessages struct {
	*memStore[models.Message, models.CreateMessageInput]
}

func newFakeMessages() *fakeMessages {
	return &fakeMessages{newMemStore(func(id int64, in *models.CreateMessageInput) *models.Message {
		return &models.Message{ID: id, SenderID: in.SenderID, ReceiverID: in.ReceiverID, Content: in.Content, IsRead: in.IsRead, SentAt: time.Now()}
	})}
}

func (f *fakeMessages) Update(ctx context.Context, id int64, in *models.UpdateMessageInput) (*models.Message, error) {
	return f.update(id, func(m *models.Message) {
		if in.Content.Value != nil {
			m.Content = *in.Content.Value
		}
		if in.IsRead.Value != nil {
			m.IsRead = *in.IsRead.Value
		}
	})
}

func newFakeSessions() *memStore[models.Session, models.CreateSessionInput] {
	return newMemStore(func(id int64, in *models.CreateSessionInput) *models.Session {
		return &models.Session{ID: id, UserID: in.UserID, SessionToken: in.SessionToken, CreatedAt: time.Now()}
	})
}

type fakeInteractions struct {
	*memStore[models.Interaction, models.CreateInteractionInput]
}

func newFakeInteractions() *fakeInteractions {
	return &fakeInteractions{newMemStore(func(id int64, in *models.CreateInteractionInput) *models.Interaction {
		return &models.Interaction{ID: id, UserEmail: in.UserEmail, ShownUserEmail: in.ShownUserEmail, IsLiked: in.IsLiked, CreatedAt: time.Now()}
	})}
}

func (f *fakeInteractions) Update(ctx context.Context, id int64, in *models.UpdateInteractionInput) (*models.Interaction, error) {
	return f.update(id, func(i *models.Interaction) {
		if in.UserEmail.Value != nil {
			i.UserEmail = *in.UserEmail.Value
		}
		if in.ShownUserEmail.Value != nil {
			i.ShownUserEmail = *in.ShownUserEmail.Value
		}
		if in.IsLiked.Set {
			i.IsLiked = in.IsLiked.Value
		}
	})
}

// recorder collects published events
type recorder struct {
	mu     sync.Mutex
	events []Event
}

func (r *recorder) Publish(evt Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, evt)
}

func (r *recorder) all() []Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Event(nil), r.events...)
}
