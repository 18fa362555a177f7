package request

// CreateUserRequest represents the request body for creating a user
type CreateUserRequest struct {
	Username string  `json:"username"`
	Password string  `json:"password"`
	Name     *string `json:"name,omitempty"`
	Email    *string `json:"email,omitempty"`
}

// UpdateUserRequest replaces a user's username, name and email. Omitting name
// or email clears it. The password is only changed when a non-empty one is sent.
type UpdateUserRequest struct {
	Username string  `json:"username"`
	Password *string `json:"password,omitempty"`
	Name     *string `json:"name,omitempty"`
	Email    *string `json:"email,omitempty"`
}
