package repositories

import (
	"errors"
	"fmt"
)

// ConflictError is returned when a write would give two users the same
// username.
type ConflictError struct {
	Username string
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("user '%s' already exists", e.Username)
}

// ErrUnknownUser is returned when a note refers to a user that does not exist.
var ErrUnknownUser = errors.New("user does not exist")
