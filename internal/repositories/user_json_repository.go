package repositories

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"coursehub/internal/models"
)

// UserJSONRepository keeps all users in one JSON array file. Every mutation
// rewrites the whole file. The mutex serialises writers of this process only.
type UserJSONRepository struct {
	path string
	mu   sync.Mutex
}

// NewUserJSONRepository creates a repository backed by path. The file is
// created on the first registration.
func NewUserJSONRepository(path string) *UserJSONRepository {
	return &UserJSONRepository{path: path}
}

// read loads the collection. A missing or blank file and a valid document
// that is not an array read as empty. A file that does not parse, or holds an
// item that is not a user record, is an error so the next write cannot
// truncate it.
func (r *UserJSONRepository) read() ([]models.User, error) {
	data, err := os.ReadFile(r.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return []models.User{}, nil
		}
		return nil, fmt.Errorf("failed to read users file %s: %w", r.path, err)
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return []models.User{}, nil
	}
	if !json.Valid(data) {
		return nil, fmt.Errorf("users file %s is not valid JSON", r.path)
	}
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return []models.User{}, nil
	}
	users := make([]models.User, 0, len(raw))
	for i, item := range raw {
		var u models.User
		if err := json.Unmarshal(item, &u); err != nil {
			return nil, fmt.Errorf("users file %s: item %d: %w", r.path, i, err)
		}
		users = append(users, u)
	}
	return users, nil
}

func (r *UserJSONRepository) write(users []models.User) error {
	if err := os.MkdirAll(filepath.Dir(r.path), 0o755); err != nil {
		return fmt.Errorf("failed to create users directory: %w", err)
	}
	data, err := json.MarshalIndent(users, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode users: %w", err)
	}
	if err := os.WriteFile(r.path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write users file %s: %w", r.path, err)
	}
	return nil
}

// Create appends user unless its email is already present (case-insensitive).
func (r *UserJSONRepository) Create(user *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	users, err := r.read()
	if err != nil {
		return err
	}
	for _, u := range users {
		if strings.EqualFold(strings.TrimSpace(u.Email), strings.TrimSpace(user.Email)) {
			return ErrEmailTaken
		}
	}
	users = append(users, *user)
	return r.write(users)
}

// GetByEmail returns the first record with the given email.
func (r *UserJSONRepository) GetByEmail(email string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	users, err := r.read()
	if err != nil {
		return nil, err
	}
	for i := range users {
		if users[i].Email == email {
			return &users[i], nil
		}
	}
	return nil, ErrUserNotFound
}

// List returns every record in file order.
func (r *UserJSONRepository) List() ([]models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.read()
}
