package models

import "time"

// User represents a persisted account record.
// The hash is stored under the "password" key so collections written by
// earlier deployments load unchanged.
type User struct {
	ID           string    `json:"id" bson:"id" mapstructure:"id" db:"id"`
	Username     string    `json:"username" bson:"username" mapstructure:"username" db:"username"`
	Email        string    `json:"email" bson:"email" mapstructure:"email" db:"email"`
	PasswordHash string    `json:"password" bson:"password" mapstructure:"password" db:"password_hash"`
	CreatedAt    time.Time `json:"createdAt" bson:"createdAt" mapstructure:"createdAt" db:"created_at"`
}

// PublicUser is the client-facing view of a User. It has no hash field.
type PublicUser struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"createdAt"`
}

// NewUser creates a new User instance.
// Note: No validation is performed here.
func NewUser(id, username, email, passwordHash string, createdAt time.Time) *User {
	return &User{
		ID:           id,
		Username:     username,
		Email:        email,
		PasswordHash: passwordHash,
		CreatedAt:    createdAt,
	}
}

// Public projects the record onto its public view.
func (u User) Public() PublicUser {
	return PublicUser{
		ID:        u.ID,
		Username:  u.Username,
		Email:     u.Email,
		CreatedAt: u.CreatedAt,
	}
}

// PublicUsers projects a whole collection, preserving order. The result is
// never nil so it encodes as an empty JSON array.
func PublicUsers(users []User) []PublicUser {
	out := make([]PublicUser, 0, len(users))
	for _, u := range users {
		out = append(out, u.Public())
	}
	return out
}
