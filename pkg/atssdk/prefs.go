package atssdk

import (
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
)

// Preference keys the SDK persists between runs.
const (
	PrefDemo       = "tp_demo"        // "true"/"false" demo mode override
	PrefUser       = "tp_user"        // last signed-in user id
	PrefCurrentOrg = "tp_current_org" // last active organization id
)

// PrefStore is a small string key-value store for user preferences.
// Absence of a key means "unset"; lookups never fail.
type PrefStore interface {
	Get(key string) (string, bool)
	Set(key, value string)
	Delete(key string)
}

// MemPrefStore is an in-memory PrefStore, mainly for tests and ephemeral
// sessions.
type MemPrefStore struct {
	mu   sync.RWMutex
	vals map[string]string
}

func NewMemPrefStore() *MemPrefStore {
	return &MemPrefStore{vals: make(map[string]string)}
}

func (s *MemPrefStore) Get(key string) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.vals[key]
	return v, ok
}

func (s *MemPrefStore) Set(key, value string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.vals[key] = value
}

func (s *MemPrefStore) Delete(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.vals, key)
}

// FilePrefStore persists preferences as a JSON object at path. A missing
// file is an empty store, never an error. Writes are flushed immediately;
// a write failure is swallowed after the in-memory update so preference
// persistence can never take the application down.
type FilePrefStore struct {
	mu   sync.Mutex
	path string
	vals map[string]string
}

func NewFilePrefStore(path string) (*FilePrefStore, error) {
	s := &FilePrefStore{path: path, vals: make(map[string]string)}

	raw, err := os.ReadFile(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return s, nil
	case err != nil:
		return nil, err
	}

	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &s.vals); err != nil {
			// A corrupt preference file is discarded rather than fatal.
			s.vals = make(map[string]string)
		}
	}
	return s, nil
}

func (s *FilePrefStore) Get(key string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.vals[key]
	return v, ok
}

func (s *FilePrefStore) Set(key, value string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.vals[key] = value
	s.flushLocked()
}

func (s *FilePrefStore) Delete(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.vals, key)
	s.flushLocked()
}

func (s *FilePrefStore) flushLocked() {
	raw, err := json.MarshalIndent(s.vals, "", "  ")
	if err != nil {
		return
	}
	_ = os.MkdirAll(filepath.Dir(s.path), 0o755)
	_ = os.WriteFile(s.path, raw, 0o600)
}
