package services

import (
	"context"
	"fmt"

	"gizindir-panel/internal/models"

	"golang.org/x/crypto/bcrypt"
)

// userStore is the repository surface the user service needs
type userStore interface {
	store[models.User, models.CreateUserInput]
	Update(ctx context.Context, id int64, in *models.UpdateUserInput) (*models.User, error)
	UpdateProfileImageURL(ctx context.Context, id int64, url string) error
}

// UserService handles user-related business logic
type UserService struct {
	crud[models.User, models.CreateUserInput]
	users         userStore
	hashPasswords bool
}

// NewUserService creates a new user service
func NewUserService(users userStore, events Publisher, hashPasswords bool) *UserService {
	return &UserService{
		crud:          newCrud[models.User, models.CreateUserInput](EntityUsers, users, events, func(u *models.User) int64 { return u.ID }),
		users:         users,
		hashPasswords: hashPasswords,
	}
}

// Create validates and stores a new user
func (s *UserService) Create(ctx context.Context, in *models.CreateUserInput) (*models.User, error) {
	if err := validateInput(in); err != nil {
		return nil, err
	}

	password, err := s.password(in.Password)
	if err != nil {
		return nil, err
	}
	in.Password = password

	return s.create(ctx, in)
}

// Update merges the supplied fields into a user. An empty or null password
// leaves the stored one unchanged.
func (s *UserService) Update(ctx context.Context, id int64, in *models.UpdateUserInput) (*models.User, error) {
	if err := rejectNulls(
		nullCheck{"email", in.Email},
	); err != nil {
		return nil, err
	}
	if err := validateInput(in); err != nil {
		return nil, err
	}

	if in.Password.Set {
		if in.Password.Value == nil || *in.Password.Value == "" {
			in.Password = models.Optional[string]{}
		} else {
			password, err := s.password(*in.Password.Value)
			if err != nil {
				return nil, err
			}
			in.Password = models.Some(password)
		}
	}

	user, err := s.users.Update(ctx, id, in)
	if err != nil {
		return nil, err
	}
	s.publish(ActionUpdated, user.ID)
	return user, nil
}

// SetProfileImage points a user's profile image at url
func (s *UserService) SetProfileImage(ctx context.Context, id int64, url string) error {
	if err := s.users.UpdateProfileImageURL(ctx, id, url); err != nil {
		return err
	}
	s.publish(ActionUpdated, id)
	return nil
}

func (s *UserService) password(plain string) (string, error) {
	if !s.hashPasswords {
		return plain, nil
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hash), nil
}
