package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/rs/zerolog/log"
)

const sessionFile = "session.json"

// FileStore is the durable store: a single JSON file under the client's
// config directory, written atomically via tmp+rename.
type FileStore struct {
	mu      sync.Mutex
	baseDir string
}

// NewFileStore creates a file-backed store.
// If baseDir is empty, uses ~/.tecai/
func NewFileStore(baseDir string) (*FileStore, error) {
	if baseDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("failed to get home directory: %w", err)
		}
		baseDir = filepath.Join(home, ".tecai")
	}

	if err := os.MkdirAll(baseDir, 0700); err != nil {
		return nil, fmt.Errorf("failed to create session directory: %w", err)
	}

	log.Debug().Str("baseDir", baseDir).Msg("session store initialized")

	return &FileStore{baseDir: baseDir}, nil
}

func (s *FileStore) Write(key, value string) error {
	if err := checkKey(key); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := s.load()
	if err != nil {
		return err
	}

	data[key] = value
	return s.save(data)
}

func (s *FileStore) Read(key string) (string, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := s.load()
	if err != nil {
		return "", false, err
	}

	value, ok := data[key]
	return value, ok, nil
}

func (s *FileStore) Remove(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := s.load()
	if err != nil {
		return err
	}

	if _, ok := data[key]; !ok {
		return nil
	}

	delete(data, key)
	return s.save(data)
}

// RemoveAll removes every key, continuing past individual failures so a
// partially broken store never blocks logout. Failures are logged per key
// and returned joined; the session manager treats that error as advisory.
func (s *FileStore) RemoveAll(keys []string) error {
	var errs []error
	for _, key := range keys {
		if err := s.Remove(key); err != nil {
			log.Warn().Err(err).Str("key", key).Msg("failed to remove session key")
			errs = append(errs, fmt.Errorf("remove %s: %w", key, err))
		}
	}
	return errors.Join(errs...)
}

// load reads the session file. A missing file is an empty store.
func (s *FileStore) load() (map[string]string, error) {
	path := filepath.Join(s.baseDir, sessionFile)

	raw, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return make(map[string]string), nil
		}
		return nil, fmt.Errorf("failed to read session file: %w", err)
	}

	data := make(map[string]string)
	if err := json.Unmarshal(raw, &data); err != nil {
		return nil, fmt.Errorf("failed to parse session file: %w", err)
	}

	return data, nil
}

// save writes the session file atomically.
func (s *FileStore) save(data map[string]string) error {
	raw, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal session data: %w", err)
	}

	path := filepath.Join(s.baseDir, sessionFile)
	tempPath := path + ".tmp"

	if err := os.WriteFile(tempPath, raw, 0600); err != nil {
		return fmt.Errorf("failed to write session file: %w", err)
	}

	if err := os.Rename(tempPath, path); err != nil {
		os.Remove(tempPath)
		return fmt.Errorf("failed to save session file: %w", err)
	}

	return nil
}
