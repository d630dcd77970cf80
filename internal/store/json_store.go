package store

import (
	"encoding/json"
	"errors"
	"log"
	"os"
	"path/filepath"
	"sync"

	"github.com/ab1manyu/PokedexChallenge/internal/model"
)

type fileState struct {
	Caught  model.Collection    `json:"caught"`
	Buddy   *model.CompanionRef `json:"buddy,omitempty"`
	Theme   string              `json:"theme,omitempty"`
	Catalog []model.IndexEntry  `json:"catalog,omitempty"`
}

type JSONStore struct {
	filePath string
	mu       sync.RWMutex
	state    fileState
}

// NewJSONStore opens or creates the JSON-file engine. A missing or
// unparseable file yields an empty state rather than an error; the
// player's save must never refuse to load.
func NewJSONStore(filePath string) (*JSONStore, error) {
	s := &JSONStore{
		filePath: filePath,
		state:    fileState{Caught: make(model.Collection)},
	}
	s.load()
	return s, nil
}

func (s *JSONStore) Collection() (model.Collection, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make(model.Collection, len(s.state.Caught))
	for id, entry := range s.state.Caught {
		out[id] = entry
	}
	return out, nil
}

func (s *JSONStore) SaveCollection(c model.Collection) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.Caught = make(model.Collection, len(c))
	for id, entry := range c {
		s.state.Caught[id] = entry
	}
	return s.persistLocked()
}

func (s *JSONStore) Companion() (*model.CompanionRef, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.state.Buddy == nil {
		return nil, nil
	}
	ref := *s.state.Buddy
	return &ref, nil
}

func (s *JSONStore) SaveCompanion(ref *model.CompanionRef) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if ref == nil {
		s.state.Buddy = nil
	} else {
		copied := *ref
		s.state.Buddy = &copied
	}
	return s.persistLocked()
}

func (s *JSONStore) Theme() (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.Theme, nil
}

func (s *JSONStore) SaveTheme(theme string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.Theme = theme
	return s.persistLocked()
}

func (s *JSONStore) CatalogIndex() ([]model.IndexEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if len(s.state.Catalog) == 0 {
		return nil, nil
	}
	return append([]model.IndexEntry(nil), s.state.Catalog...), nil
}

func (s *JSONStore) SaveCatalogIndex(entries []model.IndexEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.Catalog = append([]model.IndexEntry(nil), entries...)
	return s.persistLocked()
}

func (s *JSONStore) Reset() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.Caught = make(model.Collection)
	s.state.Buddy = nil
	return s.persistLocked()
}

func (s *JSONStore) load() {
	data, err := os.ReadFile(s.filePath)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			log.Printf("read save file %s failed, starting empty: %v", s.filePath, err)
		}
		return
	}
	var state fileState
	if err := json.Unmarshal(data, &state); err != nil {
		log.Printf("save file %s is corrupt, starting empty: %v", s.filePath, err)
		return
	}
	if state.Caught == nil {
		state.Caught = make(model.Collection)
	}
	s.state = state
}

func (s *JSONStore) persistLocked() error {
	if err := os.MkdirAll(filepath.Dir(s.filePath), 0o755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(s.state, "", "  ")
	if err != nil {
		return err
	}

	tmpPath := s.filePath + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0o644); err != nil {
		return err
	}
	return os.Rename(tmpPath, s.filePath)
}
