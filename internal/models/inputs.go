package models

// CreateUserInput is the accepted body for POST /api/users
type CreateUserInput struct {
	Name            *string `json:"name"`
	Email           string  `json:"email" validate:"required,email"`
	Password        string  `json:"password" validate:"required"`
	FullName        *string `json:"full_name"`
	Gender          *string `json:"gender" validate:"omitempty,oneof=male female other"`
	InterestedIn    *string `json:"interested_in" validate:"omitempty,oneof=male female both"`
	BirthDate       *Date   `json:"birth_date"`
	Bio             *string `json:"bio"`
	ProfileImageURL *string `json:"profile_image_url" validate:"omitempty,url"`
}

// UpdateUserInput is the accepted body for PUT /api/users/{id}
type UpdateUserInput struct {
	Name            Optional[string] `json:"name"`
	Email           Optional[string] `json:"email" validate:"omitempty,email"`
	Password        Optional[string] `json:"password"`
	FullName        Optional[string] `json:"full_name"`
	Gender          Optional[string] `json:"gender" validate:"omitempty,oneof=male female other"`
	InterestedIn    Optional[string] `json:"interested_in" validate:"omitempty,oneof=male female both"`
	BirthDate       Optional[Date]   `json:"birth_date"`
	Bio             Optional[string] `json:"bio"`
	ProfileImageURL Optional[string] `json:"profile_image_url" validate:"omitempty,url"`
}

// CreateMatchInput is the accepted body for POST /api/matches
type CreateMatchInput struct {
	User1ID int64 `json:"user1_id" validate:"required,gt=0"`
	User2ID int64 `json:"user2_id" validate:"required,gt=0"`
}

// CreateMessageInput is the accepted body for POST /api/messages
type CreateMessageInput struct {
	SenderID   int64  `json:"sender_id" validate:"required,gt=0"`
	ReceiverID int64  `json:"receiver_id" validate:"required,gt=0"`
	Content    string `json:"content" validate:"required"`
	IsRead     bool   `json:"is_read"`
}

// UpdateMessageInput is the accepted body for PUT /api/messages/{id}
type UpdateMessageInput struct {
	SenderID   Optional[int64]  `json:"sender_id" validate:"omitempty,gt=0"`
	ReceiverID Optional[int64]  `json:"receiver_id" validate:"omitempty,gt=0"`
	Content    Optional[string] `json:"content"`
	IsRead     Optional[bool]   `json:"is_read"`
}

// CreateSessionInput is the accepted body for POST /api/sessions.
// An empty SessionToken asks the server to issue one.
type CreateSessionInput struct {
	UserID       int64  `json:"user_id" validate:"required,gt=0"`
	SessionToken string `json:"session_token"`
}

// CreateInteractionInput is the accepted body for POST /api/interactions
type CreateInteractionInput struct {
	UserEmail      string `json:"user_email" validate:"required,email"`
	ShownUserEmail string `json:"shown_user_email" validate:"required,email"`
	IsLiked        *bool  `json:"is_liked"`
}

// UpdateInteractionInput is the accepted body for PUT /api/interactions/{id}
type UpdateInteractionInput struct {
	UserEmail      Optional[string] `json:"user_email" validate:"omitempty,email"`
	ShownUserEmail Optional[string] `json:"shown_user_email" validate:"omitempty,email"`
	IsLiked        Optional[bool]   `json:"is_liked"`
}

// NoUpdate is the update type of immutable entities
type NoUpdate struct{}
