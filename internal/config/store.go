package config

import (
	"crypto/sha256"
	"os"
	"sync"

	"github.com/muurk/portctl/internal/logging"
)

// Store owns the live Config and its file. Edits persist immediately and
// notify subscribers. Everything except the file-hash bookkeeping used by
// the watcher is meant to be called from one goroutine.
type Store struct {
	path        string
	cfg         *Config
	dirty       bool
	subscribers map[int]func(*Config)
	nextID      int

	mu        sync.Mutex
	knownHash [sha256.Size]byte
}

// NewStore wraps an already loaded Config.
func NewStore(path string, cfg *Config) *Store {
	s := &Store{
		path:        path,
		cfg:         cfg,
		subscribers: make(map[int]func(*Config)),
	}
	if data, err := os.ReadFile(path); err == nil {
		s.remember(data)
	}
	return s
}

// OpenStore loads path and wraps it in a Store.
func OpenStore(path string) (*Store, error) {
	cfg, err := Load(path)
	if err != nil {
		return nil, err
	}
	return NewStore(path, cfg), nil
}

// Path returns the file the store persists to.
func (s *Store) Path() string {
	return s.path
}

// Config returns the live config. Callers must not modify it.
func (s *Store) Config() *Config {
	return s.cfg
}

// Snapshot returns a deep copy of the live config.
func (s *Store) Snapshot() *Config {
	return s.cfg.Clone()
}

// Dirty reports whether the last save failed and an edit is unsaved.
func (s *Store) Dirty() bool {
	return s.dirty
}

// Subscribe registers fn to receive a snapshot after every change. The
// returned func removes the subscription.
func (s *Store) Subscribe(fn func(*Config)) func() {
	id := s.nextID
	s.nextID++
	s.subscribers[id] = fn
	return func() { delete(s.subscribers, id) }
}

func (s *Store) notify() {
	for _, fn := range s.subscribers {
		fn(s.cfg.Clone())
	}
}

// AddUnitType creates an empty unit type and persists.
func (s *Store) AddUnitType(name, description string) error {
	if err := AddUnitType(s.cfg, name, description); err != nil {
		return err
	}
	return s.commit()
}

// AddGroup appends a group and persists. A *WriteError means the edit
// was applied in memory but not saved.
func (s *Store) AddGroup(unitType string, group ButtonGroup) error {
	if err := AppendGroup(s.cfg, unitType, group); err != nil {
		return err
	}
	return s.commit()
}

// AddCommand appends a button and persists. A *WriteError means the edit
// was applied in memory but not saved.
func (s *Store) AddCommand(unitType string, groupIndex int, button Button) error {
	if err := AppendCommand(s.cfg, unitType, groupIndex, button); err != nil {
		return err
	}
	return s.commit()
}

// Persist writes the live config to disk.
func (s *Store) Persist() error {
	data, err := Marshal(s.cfg)
	if err != nil {
		return &WriteError{Path: s.path, Err: err}
	}
	if err := writeFileAtomic(s.path, data); err != nil {
		s.dirty = true
		logging.LogConfig("save failed", s.path, err)
		return &WriteError{Path: s.path, Err: err}
	}
	s.dirty = false
	s.remember(data)
	logging.LogConfig("saved", s.path, nil)
	return nil
}

func (s *Store) commit() error {
	err := s.Persist()
	s.notify()
	return err
}

// Reload re-reads the file. On failure the current config is kept.
func (s *Store) Reload() error {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return &NotFoundError{Path: s.path, Err: err}
		}
		return err
	}
	cfg, err := Decode(data, s.path)
	if err != nil {
		return err
	}
	if err := Validate(cfg); err != nil {
		return err
	}

	s.cfg = cfg
	s.dirty = false
	s.remember(data)
	logging.LogConfig("reloaded", s.path, nil)
	s.notify()
	return nil
}

func (s *Store) remember(data []byte) {
	s.mu.Lock()
	s.knownHash = sha256.Sum256(data)
	s.mu.Unlock()
}

// isKnownContent reports whether data matches what the store last read
// or wrote.
func (s *Store) isKnownContent(data []byte) bool {
	sum := sha256.Sum256(data)
	s.mu.Lock()
	defer s.mu.Unlock()
	return sum == s.knownHash
}
