// Package session holds the process-wide authentication context: the opaque
// backend token persisted between invocations and the user profile it
// resolves to. Components receive the session explicitly instead of reading
// ambient globals.
package session

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/username/vacation-tracker-cli/internal/api"
	"go.uber.org/zap"
)

// ErrNotLoggedIn is returned when no persisted token exists
var ErrNotLoggedIn = errors.New("not logged in, run 'login' first")

// Store persists the session token in a local file
type Store struct {
	path   string
	logger *zap.Logger
}

// NewStore creates a token store at the given file path
func NewStore(path string, logger *zap.Logger) *Store {
	return &Store{
		path:   path,
		logger: logger,
	}
}

// Save writes the token to disk, creating parent directories as needed.
// The file is user-readable only.
func (s *Store) Save(token string) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return fmt.Errorf("failed to create token directory: %w", err)
	}

	if err := os.WriteFile(s.path, []byte(token+"\n"), 0o600); err != nil {
		return fmt.Errorf("failed to write token file: %w", err)
	}

	s.logger.Info("Session token saved", zap.String("file", s.path))

	return nil
}

// Load reads the persisted token. Returns ErrNotLoggedIn if no token file
// exists.
func (s *Store) Load() (string, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", ErrNotLoggedIn
		}
		return "", fmt.Errorf("failed to read token file: %w", err)
	}

	token := strings.TrimSpace(string(data))
	if token == "" {
		return "", ErrNotLoggedIn
	}

	return token, nil
}

// Clear removes the persisted token. Clearing an already empty store is not
// an error.
func (s *Store) Clear() error {
	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove token file: %w", err)
	}

	s.logger.Info("Session token cleared", zap.String("file", s.path))

	return nil
}

// Session is a resolved authentication context: a token the backend has
// accepted and the profile it belongs to
type Session struct {
	Token string
	User  *api.User
}

// Resolve loads the persisted token and resolves it into a user profile.
// On success the client is left carrying the token. A rejected token is
// reported as-is; the caller decides whether to clear the store.
func Resolve(ctx context.Context, store *Store, client *api.Client) (*Session, error) {
	token, err := store.Load()
	if err != nil {
		return nil, err
	}

	client.SetToken(token)

	user, err := client.Profile(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve session: %w", err)
	}

	return &Session{
		Token: token,
		User:  user,
	}, nil
}
