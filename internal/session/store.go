package session

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// Store is the process-wide holder of the session credential.
type Store interface {
	// Get returns the current credential and whether one is set.
	Get() (Credential, bool)
	// Set replaces the current credential.
	Set(Credential) error
	// Clear removes all session state.
	Clear() error
}

// MemoryStore keeps the credential in memory only.
type MemoryStore struct {
	mu   sync.RWMutex
	cred Credential
	set  bool
}

// NewMemoryStore constructs an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

// Get implements Store.
func (s *MemoryStore) Get() (Credential, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cred, s.set
}

// Set implements Store.
func (s *MemoryStore) Set(cred Credential) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cred = cred
	s.set = !cred.Empty()
	return nil
}

// Clear implements Store.
func (s *MemoryStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cred = Credential{}
	s.set = false
	return nil
}

// FileStore persists the credential as JSON so it survives between CLI runs.
// The file is written with 0600 permissions and removed on Clear.
type FileStore struct {
	mu   sync.RWMutex
	path string
}

// NewFileStore constructs a FileStore backed by path.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// Path returns the backing file location.
func (s *FileStore) Path() string { return s.path }

// Get implements Store. A missing or unreadable file means no session.
func (s *FileStore) Get() (Credential, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	raw, err := os.ReadFile(s.path)
	if err != nil {
		return Credential{}, false
	}
	var cred Credential
	if err := json.Unmarshal(raw, &cred); err != nil || cred.Empty() {
		return Credential{}, false
	}
	return cred, true
}

// Set implements Store.
func (s *FileStore) Set(cred Credential) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if cred.Empty() {
		return s.removeLocked()
	}
	raw, err := json.Marshal(cred)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return fmt.Errorf("create session dir: %w", err)
	}
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, raw, 0o600); err != nil {
		return fmt.Errorf("write session: %w", err)
	}
	return os.Rename(tmp, s.path)
}

// Clear implements Store.
func (s *FileStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.removeLocked()
}

func (s *FileStore) removeLocked() error {
	if err := os.Remove(s.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("remove session: %w", err)
	}
	return nil
}
