package validation

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ErrInvalidUUID is returned for identifiers that do not parse as UUIDs.
var ErrInvalidUUID = errors.New("invalid UUID format")

// Error reports field-level validation failures keyed by JSON field name.
type Error struct {
	Fields map[string]string
}

func (e *Error) Error() string {
	fields := make([]string, 0, len(e.Fields))
	for field := range e.Fields {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	msgs := make([]string, 0, len(fields))
	for _, field := range fields {
		msgs = append(msgs, fmt.Sprintf("%s: %s", field, e.Fields[field]))
	}
	return strings.Join(msgs, "; ")
}

// ValidateUUID reports whether id parses as a UUID.
func ValidateUUID(id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return fmt.Errorf("%w: %s", ErrInvalidUUID, id)
	}
	return nil
}

// NewError returns a validation Error for a single field.
func NewError(field, msg string) *Error {
	return &Error{Fields: map[string]string{field: msg}}
}

// result returns nil when no field failed.
func result(errors map[string]string) error {
	if len(errors) > 0 {
		return &Error{Fields: errors}
	}
	return nil
}

func checkRequired(errors map[string]string, field, value string, maxLen int) {
	if strings.TrimSpace(value) == "" {
		errors[field] = field + " is required"
	} else if len(value) > maxLen {
		errors[field] = fmt.Sprintf("%s must be %d characters or less", field, maxLen)
	}
}

func checkMaxLen(errors map[string]string, field, value string, maxLen int) {
	if len(value) > maxLen {
		errors[field] = fmt.Sprintf("%s must be %d characters or less", field, maxLen)
	}
}

func checkPositive(errors map[string]string, field string, value decimal.Decimal) {
	if !value.IsPositive() {
		errors[field] = field + " must be positive"
	}
}

func checkUUID(errors map[string]string, field, value string) {
	if strings.TrimSpace(value) == "" {
		errors[field] = field + " is required"
	} else if ValidateUUID(value) != nil {
		errors[field] = field + " must be a valid UUID"
	}
}
