package storage

import (
	"errors"
	"fmt"
	"sync"

	"github.com/rs/zerolog/log"
)

// MemStore is the ephemeral store for platforms without durable storage
// and for tests. Contents do not survive the process.
type MemStore struct {
	mu   sync.RWMutex
	data map[string]string

	// FailRemove, when set, makes Remove fail for the listed keys. Used by
	// tests exercising partial-cleanup behavior.
	FailRemove map[string]bool
}

func NewMemStore() *MemStore {
	return &MemStore{data: make(map[string]string)}
}

func (s *MemStore) Write(key, value string) error {
	if err := checkKey(key); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[key] = value
	return nil
}

func (s *MemStore) Read(key string) (string, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	value, ok := s.data[key]
	return value, ok, nil
}

func (s *MemStore) Remove(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.FailRemove[key] {
		return fmt.Errorf("remove %s: injected failure", key)
	}

	delete(s.data, key)
	return nil
}

func (s *MemStore) RemoveAll(keys []string) error {
	var errs []error
	for _, key := range keys {
		if err := s.Remove(key); err != nil {
			log.Warn().Err(err).Str("key", key).Msg("failed to remove session key")
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
