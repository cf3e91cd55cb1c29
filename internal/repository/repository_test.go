package repository

import (
	"context"
	"os"
	"testing"
	"time"

	"gizindir-panel/internal/database"
	"gizindir-panel/internal/models"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/suite"
)

// RepositorySuite runs against a real PostgreSQL database named by
// PANEL_TEST_DATABASE_URL. Every test starts from empty tables.
type RepositorySuite struct {
	suite.Suite
	ctx          context.Context
	db           *pgxpool.Pool
	users        *UserRepository
	matches      *MatchRepository
	messages     *MessageRepository
	sessions     *SessionRepository
	interactions *InteractionRepository
}

func TestRepositorySuite(t *testing.T) {
	dsn := os.Getenv("PANEL_TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("PANEL_TEST_DATABASE_URL not set")
	}
	suite.Run(t, &RepositorySuite{})
}

func (s *RepositorySuite) SetupSuite() {
	s.ctx = context.Background()
	db, err := database.Connect(s.ctx, os.Getenv("PANEL_TEST_DATABASE_URL"))
	s.Require().NoError(err)
	s.Require().NoError(database.Migrate(s.ctx, db))

	s.db = db
	s.users = NewUserRepository(db)
	s.matches = NewMatchRepository(db)
	s.messages = NewMessageRepository(db)
	s.sessions = NewSessionRepository(db)
	s.interactions = NewInteractionRepository(db)
}

func (s *RepositorySuite) TearDownSuite() {
	s.db.Close()
}

func (s *RepositorySuite) SetupTest() {
	_, err := s.db.Exec(s.ctx, `TRUNCATE user_interactions, sessions, messages, matches, users RESTART IDENTITY CASCADE`)
	s.Require().NoError(err)
}

func (s *RepositorySuite) createUser(email string) *models.User {
	name := email[:1]
	user, err := s.users.Create(s.ctx, &models.CreateUserInput{Email: email, Password: "x", Name: &name})
	s.Require().NoError(err)
	return user
}

func (s *RepositorySuite) TestUserRoundTrip() {
	birth := models.Date{Time: time.Date(1995, 4, 23, 0, 0, 0, 0, time.UTC)}
	gender := "female"
	created, err := s.users.Create(s.ctx, &models.CreateUserInput{
		Email: "ayse@example.com", Password: "gizli", Gender: &gender, BirthDate: &birth,
	})
	s.Require().NoError(err)
	s.Positive(created.ID)
	s.False(created.CreatedAt.IsZero())

	got, err := s.users.GetByID(s.ctx, created.ID)
	s.Require().NoError(err)
	s.Equal("ayse@example.com", got.Email)
	s.Equal("female", *got.Gender)
	s.Require().NotNil(got.BirthDate)
	s.True(birth.Time.Equal(*got.BirthDate))

	updated, err := s.users.Update(s.ctx, created.ID, &models.UpdateUserInput{
		Gender:    models.Null[string](),
		Bio:       models.Some("Merhaba"),
		BirthDate: models.Null[models.Date](),
	})
	s.Require().NoError(err)
	s.Nil(updated.Gender)
	s.Nil(updated.BirthDate)
	s.Equal("Merhaba", *updated.Bio)
	s.Equal("gizli", updated.Password)

	unchanged, err := s.users.Update(s.ctx, created.ID, &models.UpdateUserInput{})
	s.Require().NoError(err)
	s.Equal(updated.Bio, unchanged.Bio)
}

func (s *RepositorySuite) TestUserEmailUnique() {
	s.createUser("a@b.co")
	_, err := s.users.Create(s.ctx, &models.CreateUserInput{Email: "a@b.co", Password: "x"})
	s.Require().Error(err)

	name, ok := ConstraintName(err)
	s.True(ok)
	s.Equal("users_email_key", name)
}

func (s *RepositorySuite) TestNotFound() {
	_, err := s.users.GetByID(s.ctx, 404)
	s.ErrorIs(err, ErrNotFound)
	s.ErrorIs(s.users.Delete(s.ctx, 404), ErrNotFound)
	_, err = s.users.Update(s.ctx, 404, &models.UpdateUserInput{Name: models.Some("x")})
	s.ErrorIs(err, ErrNotFound)

	_, err = s.matches.GetByID(s.ctx, 404)
	s.ErrorIs(err, ErrNotFound)
	s.ErrorIs(s.sessions.Delete(s.ctx, 404), ErrNotFound)
	_, err = s.messages.Update(s.ctx, 404, &models.UpdateMessageInput{IsRead: models.Some(true)})
	s.ErrorIs(err, ErrNotFound)
	_, err = s.interactions.Update(s.ctx, 404, &models.UpdateInteractionInput{IsLiked: models.Some(true)})
	s.ErrorIs(err, ErrNotFound)
}

func (s *RepositorySuite) TestMatchJoinsUsers() {
	a, b := s.createUser("a@b.co"), s.createUser("c@d.co")

	m, err := s.matches.Create(s.ctx, &models.CreateMatchInput{User1ID: a.ID, User2ID: b.ID})
	s.Require().NoError(err)
	s.Require().NotNil(m.User1)
	s.Equal("a@b.co", m.User1.Email)
	s.Equal("c@d.co", m.User2.Email)

	self, err := s.matches.Create(s.ctx, &models.CreateMatchInput{User1ID: a.ID, User2ID: a.ID})
	s.Require().NoError(err, "the schema accepts self matches")

	list, err := s.matches.List(s.ctx)
	s.Require().NoError(err)
	s.Len(list, 2)
	s.Equal(self.ID, list[0].ID)

	_, err = s.matches.Create(s.ctx, &models.CreateMatchInput{User1ID: a.ID, User2ID: 999})
	s.Error(err)
}

func (s *RepositorySuite) TestMessageUpdate() {
	a, b := s.createUser("a@b.co"), s.createUser("c@d.co")

	msg, err := s.messages.Create(s.ctx, &models.CreateMessageInput{SenderID: a.ID, ReceiverID: b.ID, Content: "Selam"})
	s.Require().NoError(err)
	s.False(msg.IsRead)
	s.Equal("a@b.co", msg.Sender.Email)

	updated, err := s.messages.Update(s.ctx, msg.ID, &models.UpdateMessageInput{
		SenderID:   models.Some(b.ID),
		ReceiverID: models.Some(a.ID),
		IsRead:     models.Some(true),
	})
	s.Require().NoError(err)
	s.True(updated.IsRead)
	s.Equal("Selam", updated.Content)
	s.Equal("c@d.co", updated.Sender.Email)
	s.Equal("a@b.co", updated.Receiver.Email)
}

func (s *RepositorySuite) TestSessionsAndCascade() {
	a := s.createUser("a@b.co")

	session, err := s.sessions.Create(s.ctx, &models.CreateSessionInput{UserID: a.ID, SessionToken: "tok"})
	s.Require().NoError(err)
	s.Equal("a@b.co", session.User.Email)

	s.Require().NoError(s.users.Delete(s.ctx, a.ID))
	_, err = s.sessions.GetByID(s.ctx, session.ID)
	s.ErrorIs(err, ErrNotFound)
}

func (s *RepositorySuite) TestInteractionsByEmail() {
	s.createUser("a@b.co")
	s.createUser("c@d.co")

	in, err := s.interactions.Create(s.ctx, &models.CreateInteractionInput{UserEmail: "a@b.co", ShownUserEmail: "c@d.co"})
	s.Require().NoError(err)
	s.Nil(in.IsLiked)
	s.Equal("c@d.co", in.ShownUser.Email)

	liked, err := s.interactions.Update(s.ctx, in.ID, &models.UpdateInteractionInput{IsLiked: models.Some(false)})
	s.Require().NoError(err)
	s.Require().NotNil(liked.IsLiked)
	s.False(*liked.IsLiked)

	reset, err := s.interactions.Update(s.ctx, in.ID, &models.UpdateInteractionInput{IsLiked: models.Null[bool]()})
	s.Require().NoError(err)
	s.Nil(reset.IsLiked)
}

func (s *RepositorySuite) TestCountsMatchLists() {
	a, b := s.createUser("a@b.co"), s.createUser("c@d.co")
	_, err := s.matches.Create(s.ctx, &models.CreateMatchInput{User1ID: a.ID, User2ID: b.ID})
	s.Require().NoError(err)

	users, err := s.users.List(s.ctx)
	s.Require().NoError(err)
	n, err := s.users.Count(s.ctx)
	s.Require().NoError(err)
	s.Equal(int64(len(users)), n)

	n, err = s.interactions.Count(s.ctx)
	s.Require().NoError(err)
	s.Zero(n)
}
