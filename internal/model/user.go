package model

import (
	"time"

	"github.com/google/uuid"
)

// User is the stored user row. Password holds the argon2id hash, never the plain text.
type User struct {
	ID        string
	Username  string
	Password  string
	Name      *string
	Email     *string
	CreatedAt time.Time
}

// NewUser builds a user with a fresh id and creation timestamp.
// The caller must already have hashed the password.
func NewUser(username, passwordHash string, name, email *string) *User {
	return &User{
		ID:        uuid.New().String(),
		Username:  username,
		Password:  passwordHash,
		Name:      name,
		Email:     email,
		CreatedAt: now(),
	}
}

// UserView is the outward representation of a user. It has no password field.
type UserView struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	Name      *string   `json:"name"`
	Email     *string   `json:"email"`
	CreatedAt time.Time `json:"createdAt"`
}

// View returns the outward representation of u.
func (u *User) View() UserView {
	return UserView{
		ID:        u.ID,
		Username:  u.Username,
		Name:      u.Name,
		Email:     u.Email,
		CreatedAt: u.CreatedAt,
	}
}

// UserViews maps a slice of users to their views.
func UserViews(users []User) []UserView {
	views := make([]UserView, len(users))
	for i := range users {
		views[i] = users[i].View()
	}
	return views
}
