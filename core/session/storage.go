package session

import (
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/pkg/errors"
)

// Storage is a string key-value store holding the persistence slot.
type Storage interface {
	// GetItem returns ok=false when key is absent.
	GetItem(key string) (value string, ok bool, err error)
	SetItem(key, value string) error
	// RemoveItem is a no-op when key is absent.
	RemoveItem(key string) error
}

// MemoryStorage keeps items in process memory.
type MemoryStorage struct {
	mu    sync.RWMutex
	items map[string]string
}

var _ Storage = (*MemoryStorage)(nil)

func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{items: make(map[string]string)}
}

func (s *MemoryStorage) GetItem(key string) (string, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.items[key]
	return v, ok, nil
}

func (s *MemoryStorage) SetItem(key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items[key] = value
	return nil
}

func (s *MemoryStorage) RemoveItem(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.items, key)
	return nil
}

// FileStorage keeps one file per key under dir, readable by the owner only.
type FileStorage struct {
	dir string
}

var _ Storage = (*FileStorage)(nil)

// NewFileStorage creates dir (0700) if needed.
func NewFileStorage(dir string) (*FileStorage, error) {
	if err := os.MkdirAll(dir, 0700); err != nil {
		return nil, errors.Wrapf(err, "creating session directory %s", dir)
	}
	return &FileStorage{dir: dir}, nil
}

func (s *FileStorage) path(key string) string {
	name := strings.Map(func(r rune) rune {
		if r == '/' || r == '\\' || r == os.PathSeparator {
			return '_'
		}
		return r
	}, key)
	return filepath.Join(s.dir, name+".json")
}

func (s *FileStorage) GetItem(key string) (string, bool, error) {
	data, err := os.ReadFile(s.path(key))
	if err != nil {
		if os.IsNotExist(err) {
			return "", false, nil
		}
		return "", false, errors.Wrap(err, "reading session file")
	}
	return string(data), true, nil
}

func (s *FileStorage) SetItem(key, value string) error {
	return errors.Wrap(os.WriteFile(s.path(key), []byte(value), 0600), "writing session file")
}

func (s *FileStorage) RemoveItem(key string) error {
	if err := os.Remove(s.path(key)); err != nil && !os.IsNotExist(err) {
		return errors.Wrap(err, "removing session file")
	}
	return nil
}
