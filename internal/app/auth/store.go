//go:generate mockgen -source=store.go -destination=store_mock.go -package=auth
package auth

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"siemctl/internal/app/errors"
	"siemctl/internal/config"
)

// Store is a string key/value session store
type Store interface {
	Get(key string) (string, bool)
	Set(key, value string) error
	Remove(key string) error
	Path() string
}

// NewStore creates the store selected by session.storage
func NewStore(cfg *config.Config) Store {
	if cfg.Session.Storage == config.StorageMemory {
		return NewMemoryStore()
	}

	return NewFileStore(filepath.Join(cfg.Session.Dir, config.SessionFile))
}

type memoryStore struct {
	mu     sync.RWMutex
	values map[string]string
}

// NewMemoryStore creates a store that lives as long as the process
func NewMemoryStore() Store {
	return &memoryStore{values: make(map[string]string)}
}

func (s *memoryStore) Get(key string) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	v, ok := s.values[key]

	return v, ok
}

func (s *memoryStore) Set(key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.values[key] = value

	return nil
}

func (s *memoryStore) Remove(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.values, key)

	return nil
}

func (s *memoryStore) Path() string {
	return ""
}

// fileStore keeps values in a JSON object on disk, re-read on every access
// so that another siemctl process logging out is observed immediately
type fileStore struct {
	mu   sync.Mutex
	path string
}

// NewFileStore creates a store backed by the JSON file at path
func NewFileStore(path string) Store {
	return &fileStore{path: path}
}

func (s *fileStore) Get(key string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	values, err := s.read()
	if err != nil {
		return "", false
	}

	v, ok := values[key]

	return v, ok
}

func (s *fileStore) Set(key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	values, err := s.read()
	if err != nil {
		values = make(map[string]string)
	}

	values[key] = value

	return s.write(values)
}

func (s *fileStore) Remove(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	values, err := s.read()
	if err != nil {
		return nil
	}

	if _, ok := values[key]; !ok {
		return nil
	}

	delete(values, key)

	if len(values) == 0 {
		if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("%w: %w", errors.ErrFailedToWriteStore, err)
		}

		return nil
	}

	return s.write(values)
}

func (s *fileStore) Path() string {
	return s.path
}

func (s *fileStore) read() (map[string]string, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return make(map[string]string), nil
		}

		return nil, fmt.Errorf("%w: %w", errors.ErrFailedToReadStore, err)
	}

	values := make(map[string]string)
	if err := json.Unmarshal(data, &values); err != nil {
		return nil, fmt.Errorf("%w: %w", errors.ErrFailedToReadStore, err)
	}

	return values, nil
}

// write replaces the file atomically via a temp file in the same directory
func (s *fileStore) write(values map[string]string) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return fmt.Errorf("%w: %w", errors.ErrFailedToWriteStore, err)
	}

	data, err := json.MarshalIndent(values, "", "  ")
	if err != nil {
		return fmt.Errorf("%w: %w", errors.ErrFailedToWriteStore, err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(s.path), ".session-*")
	if err != nil {
		return fmt.Errorf("%w: %w", errors.ErrFailedToWriteStore, err)
	}

	defer func() { _ = os.Remove(tmp.Name()) }()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("%w: %w", errors.ErrFailedToWriteStore, err)
	}

	if err := tmp.Close(); err != nil {
		return fmt.Errorf("%w: %w", errors.ErrFailedToWriteStore, err)
	}

	if err := os.Chmod(tmp.Name(), 0o600); err != nil {
		return fmt.Errorf("%w: %w", errors.ErrFailedToWriteStore, err)
	}

	if err := os.Rename(tmp.Name(), s.path); err != nil {
		return fmt.Errorf("%w: %w", errors.ErrFailedToWriteStore, err)
	}

	return nil
}
