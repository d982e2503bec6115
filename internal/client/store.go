package client

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// tokenKey is the fixed storage key the bearer token is persisted under.
const tokenKey = "dogcafe6ix_auth_token"

const credentialsFile = "credentials.json"

// TokenStore persists the bearer token on disk with owner-only permissions.
// The contract is set/get/delete by a fixed key.
type TokenStore struct {
	dir string
}

// NewTokenStore creates a TokenStore rooted at the given directory.
func NewTokenStore(dir string) *TokenStore {
	return &TokenStore{dir: dir}
}

// DefaultStoreDir returns the per-user credential directory.
func DefaultStoreDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user home directory: %w", err)
	}

	return filepath.Join(home, ".dogcafe"), nil
}

// Save persists the token, replacing any previous one.
func (s *TokenStore) Save(token string) error {
	if err := os.MkdirAll(s.dir, 0700); err != nil {
		return fmt.Errorf("failed to create credential directory: %w", err)
	}

	data, err := json.MarshalIndent(map[string]string{tokenKey: token}, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal credentials: %w", err)
	}

	if err := os.WriteFile(filepath.Join(s.dir, credentialsFile), data, 0600); err != nil {
		return fmt.Errorf("failed to write credentials: %w", err)
	}

	return nil
}

// Load returns the persisted token, or the empty string when none exists.
func (s *TokenStore) Load() (string, error) {
	data, err := os.ReadFile(filepath.Join(s.dir, credentialsFile))
	if err != nil {
		if os.IsNotExist(err) {
			return "", nil
		}
		return "", fmt.Errorf("failed to read credentials: %w", err)
	}

	var credentials map[string]string
	if err := json.Unmarshal(data, &credentials); err != nil {
		return "", fmt.Errorf("failed to parse credentials: %w", err)
	}

	return credentials[tokenKey], nil
}

// Delete removes the persisted token. Deleting an absent token is not an
// error.
func (s *TokenStore) Delete() error {
	err := os.Remove(filepath.Join(s.dir, credentialsFile))
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete credentials: %w", err)
	}

	return nil
}
