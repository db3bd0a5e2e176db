package authclient

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// TokenPair is the client-held credential set.
type TokenPair struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

// TokenStorage mirrors the in-memory token pair to durable storage so a
// session survives process restarts. Save with an empty pair clears it.
type TokenStorage interface {
	Load() (TokenPair, error)
	Save(pair TokenPair) error
	Clear() error
}

// FileStorage keeps the token pair in a JSON file, created 0600.
type FileStorage struct {
	Path string
}

func NewFileStorage(path string) *FileStorage {
	return &FileStorage{Path: path}
}

func (s *FileStorage) Load() (TokenPair, error) {
	var pair TokenPair
	data, err := os.ReadFile(s.Path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return pair, nil
		}
		return pair, fmt.Errorf("load tokens: %w", err)
	}
	if err := json.Unmarshal(data, &pair); err != nil {
		return TokenPair{}, fmt.Errorf("load tokens: %w", err)
	}
	return pair, nil
}

func (s *FileStorage) Save(pair TokenPair) error {
	data, err := json.Marshal(pair)
	if err != nil {
		return fmt.Errorf("save tokens: %w", err)
	}
	if dir := filepath.Dir(s.Path); dir != "." {
		if err := os.MkdirAll(dir, 0o700); err != nil {
			return fmt.Errorf("save tokens: %w", err)
		}
	}
	if err := os.WriteFile(s.Path, data, 0o600); err != nil {
		return fmt.Errorf("save tokens: %w", err)
	}
	return nil
}

func (s *FileStorage) Clear() error {
	if err := os.Remove(s.Path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("clear tokens: %w", err)
	}
	return nil
}

// memoryStorage is a TokenStorage for tests and ephemeral sessions.
type memoryStorage struct {
	pair TokenPair
}

func (s *memoryStorage) Load() (TokenPair, error)  { return s.pair, nil }
func (s *memoryStorage) Save(pair TokenPair) error { s.pair = pair; return nil }
func (s *memoryStorage) Clear() error              { s.pair = TokenPair{}; return nil }
