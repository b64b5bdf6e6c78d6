package views

import (
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"unicode/utf8"
)

// ErrValidation matches every *ValidationError.
var ErrValidation = errors.New("invalid form")

// MinPasswordLength is the shortest password accepted at registration.
const MinPasswordLength = 8

// ValidationError rejects a form before any request is sent.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func (e *ValidationError) Is(target error) bool { return target == ErrValidation }

func required(field, value string) error {
	if strings.TrimSpace(value) == "" {
		return &ValidationError{Field: field, Message: "is required"}
	}
	return nil
}

func validEmail(field, value string) error {
	if err := required(field, value); err != nil {
		return err
	}
	addr, err := mail.ParseAddress(strings.TrimSpace(value))
	if err != nil || addr.Name != "" || !strings.Contains(addr.Address, "@") {
		return &ValidationError{Field: field, Message: "is not a valid email address"}
	}
	return nil
}

func minLength(field, value string, n int) error {
	if utf8.RuneCountInString(value) < n {
		return &ValidationError{Field: field, Message: fmt.Sprintf("must be at least %d characters", n)}
	}
	return nil
}
