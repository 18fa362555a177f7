package validation

import (
	"net/mail"
	"regexp"
	"strings"

	"github.com/ndewijer/Portfolio-Tracker-Backend/internal/api/request"
)

const (
	maxUsernameLength = 50
	minPasswordLength = 8
	maxNameLength     = 100
	maxEmailLength    = 255
)

var usernamePattern = regexp.MustCompile(`^[A-Za-z0-9_.-]+$`)

// ValidateCreateUser validates a user creation request.
//
// Required fields:
//   - username: 1-50 characters of letters, digits, '_', '.', '-'
//   - password: at least 8 characters
//
// Optional fields:
//   - name: at most 100 characters
//   - email: a single address, at most 255 characters
func ValidateCreateUser(req request.CreateUserRequest) error {
	errors := make(map[string]string)

	checkUsername(errors, req.Username)

	if len(req.Password) < minPasswordLength {
		errors["password"] = "password must be at least 8 characters"
	}

	if req.Name != nil {
		checkMaxLen(errors, "name", *req.Name, maxNameLength)
	}
	checkEmail(errors, req.Email)

	return result(errors)
}

// ValidateUpdateUser validates a user update request. The password rule only
// applies when a non-empty password is supplied.
func ValidateUpdateUser(req request.UpdateUserRequest) error {
	errors := make(map[string]string)

	checkUsername(errors, req.Username)

	if req.Password != nil && *req.Password != "" && len(*req.Password) < minPasswordLength {
		errors["password"] = "password must be at least 8 characters"
	}

	if req.Name != nil {
		checkMaxLen(errors, "name", *req.Name, maxNameLength)
	}
	checkEmail(errors, req.Email)

	return result(errors)
}

// NormalizeEmail trims the address and maps a blank one to nil, so that
// "no email" is always stored as NULL and never collides on the unique index.
func NormalizeEmail(email *string) *string {
	if email == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*email)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}

func checkUsername(errors map[string]string, username string) {
	checkRequired(errors, "username", username, maxUsernameLength)
	if _, failed := errors["username"]; !failed && !usernamePattern.MatchString(username) {
		errors["username"] = "username may only contain letters, digits, '_', '.' and '-'"
	}
}

func checkEmail(errors map[string]string, email *string) {
	normalized := NormalizeEmail(email)
	if normalized == nil {
		return
	}
	if len(*normalized) > maxEmailLength {
		errors["email"] = "email must be 255 characters or less"
		return
	}
	addr, err := mail.ParseAddress(*normalized)
	if err != nil || addr.Address != *normalized {
		errors["email"] = "email must be a valid address"
	}
}
