package repositories

import (
	"errors"

	"coursehub/internal/models"
)

var (
	// ErrEmailTaken is returned by Create when a record with the same email exists.
	ErrEmailTaken = errors.New("email already registered")
	// ErrUserNotFound is returned by GetByEmail when no record matches.
	ErrUserNotFound = errors.New("user not found")
)

// UserRepository defines the interface for mock auth store access.
// Emails are compared as stored; callers normalise them.
type UserRepository interface {
	Create(user *models.User) error
	GetByEmail(email string) (*models.User, error)
	List() ([]models.User, error)
}
