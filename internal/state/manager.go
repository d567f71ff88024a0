package state

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"
)

// Store is the local, unversioned key-value store that remembers the chosen
// profile. An absent key reads as "".
type Store interface {
	Get(key string) (string, error)
	Set(key, value string) error
}

// FileSystem defines minimum operations required for storage.
// core.FileSystem satisfies it.
type FileSystem interface {
	ReadFile(name string) ([]byte, error)
	WriteFile(name string, data []byte, perm os.FileMode) error
	MkdirAll(path string, perm os.FileMode) error
}

// FileStore keeps values and run history in a JSON file.
// It uses a Mutex for thread-safety.
type FileStore struct {
	FilePath string
	FS       FileSystem

	mu      sync.RWMutex
	current *State
}

// NewFileStore creates a store and loads the existing file. A missing file
// starts an empty state.
func NewFileStore(path string, fsys FileSystem) (*FileStore, error) {
	s := &FileStore{FilePath: path, FS: fsys, current: NewState()}
	if err := s.load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load state %s: %w", path, err)
	}
	return s, nil
}

func (s *FileStore) load() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := s.FS.ReadFile(s.FilePath)
	if err != nil {
		return err
	}
	st := NewState()
	if err := json.Unmarshal(data, st); err != nil {
		return err
	}
	if st.Values == nil {
		st.Values = make(map[string]string)
	}
	s.current = st
	return nil
}

// save writes the state; the caller holds the lock.
func (s *FileStore) save() error {
	s.current.LastRun = time.Now()

	data, err := json.MarshalIndent(s.current, "", "  ")
	if err != nil {
		return err
	}
	if err := s.FS.MkdirAll(filepath.Dir(s.FilePath), 0755); err != nil {
		return err
	}
	return s.FS.WriteFile(s.FilePath, data, 0644)
}

func (s *FileStore) Get(key string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return strings.TrimSpace(s.current.Values[key]), nil
}

func (s *FileStore) Set(key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.current.Values[key] = value
	return s.save()
}
