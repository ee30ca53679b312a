package models

import "time"

// User is a registered account. PasswordHash holds whatever the configured
// hasher produced and is never serialized.
type User struct {
	ID           string    `gorm:"type:text;primaryKey" json:"id"`
	Name         string    `gorm:"type:text;not null" json:"name"`
	Email        string    `gorm:"type:text;uniqueIndex;not null" json:"email"`
	PasswordHash string    `gorm:"column:password_hash;type:text;not null" json:"-"`
	CreatedAt    time.Time `gorm:"autoCreateTime" json:"-"`
	UpdatedAt    time.Time `gorm:"autoUpdateTime" json:"-"`
}

func (User) TableName() string { return "users" }

// UserResponse is the public view of a user.
type UserResponse struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

func (u *User) Response() UserResponse {
	return UserResponse{ID: u.ID, Name: u.Name, Email: u.Email}
}

type RegisterRequest struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// AuthResponse is returned by login and register. Token is only set when
// token issuing is configured.
type AuthResponse struct {
	User    UserResponse `json:"user"`
	Message string       `json:"message"`
	Token   string       `json:"token,omitempty"`
}

// UserRegisteredEvent is published to SNS after registration.
type UserRegisteredEvent struct {
	EventType string    `json:"event_type"`
	UserID    string    `json:"user_id"`
	Email     string    `json:"email"`
	Timestamp time.Time `json:"timestamp"`
}
