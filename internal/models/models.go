package models

import "time"

// User represents a dating app account
type User struct {
	ID              int64      `json:"id"`
	Name            *string    `json:"name"`
	Email           string     `json:"email"`
	Password        string     `json:"password"`
	FullName        *string    `json:"full_name"`
	Gender          *string    `json:"gender"`
	InterestedIn    *string    `json:"interested_in"`
	BirthDate       *time.Time `json:"birth_date"`
	Bio             *string    `json:"bio"`
	ProfileImageURL *string    `json:"profile_image_url"`
	CreatedAt       time.Time  `json:"created_at"`
}

// DisplayName returns the label the panel shows for a user reference
func (u *User) DisplayName() string {
	if u == nil {
		return ""
	}
	if u.Name != nil && *u.Name != "" {
		return *u.Name
	}
	return u.Email
}

// Match represents a mutual match between two users
type Match struct {
	ID        int64     `json:"id"`
	User1ID   int64     `json:"user1_id"`
	User2ID   int64     `json:"user2_id"`
	MatchedAt time.Time `json:"matched_at"`

	User1 *User `json:"user1"`
	User2 *User `json:"user2"`
}

// Message represents a direct message between two users
type Message struct {
	ID         int64     `json:"id"`
	SenderID   int64     `json:"sender_id"`
	ReceiverID int64     `json:"receiver_id"`
	Content    string    `json:"content"`
	SentAt     time.Time `json:"sent_at"`
	IsRead     bool      `json:"is_read"`

	Sender   *User `json:"sender"`
	Receiver *User `json:"receiver"`
}

// Session represents a login session issued to a user
type Session struct {
	ID           int64     `json:"id"`
	UserID       int64     `json:"user_id"`
	SessionToken string    `json:"session_token"`
	CreatedAt    time.Time `json:"created_at"`

	User *User `json:"user"`
}

// Interaction records one user being shown another and the swipe result.
// IsLiked is nil until the user decides.
type Interaction struct {
	ID             int64     `json:"id"`
	UserEmail      string    `json:"user_email"`
	ShownUserEmail string    `json:"shown_user_email"`
	IsLiked        *bool     `json:"is_liked"`
	CreatedAt      time.Time `json:"created_at"`

	User      *User `json:"user"`
	ShownUser *User `json:"shown_user"`
}

// Counts holds the number of records per entity
type Counts struct {
	Users        int64 `json:"users"`
	Matches      int64 `json:"matches"`
	Messages     int64 `json:"messages"`
	Sessions     int64 `json:"sessions"`
	Interactions int64 `json:"interactions"`
}
