// Package store provides the durable key-value collaborator moodtrack
// persists into, along with its configuration and change watching.
package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"

	"go.uber.org/zap"
)

// KV is a durable key-value store with an explicit flush. Values are any
// JSON-serializable data. Set and Delete stage changes; Save makes every
// staged change durable; Discard drops them.
type KV interface {
	// Get decodes the value for key into v. Staged changes are visible.
	Get(key string, v any) (bool, error)
	Set(key string, v any) error
	Delete(key string) error
	Save() error
	Discard()
	Close() error
}

// Watcher is implemented by backends that can report changes made to the
// underlying storage, including ones made by other processes.
type Watcher interface {
	Watch(ctx context.Context) (<-chan Event, error)
}

// LogSetter is implemented by backends that log, such as watcher failures.
type LogSetter interface {
	SetLogger(l *zap.Logger)
}

// Describer is implemented by backends that can report where they live.
type Describer interface {
	Describe() Description
}

// Description summarizes a backend for the info command.
type Description struct {
	Backend  string   `json:"backend"`
	Location string   `json:"location,omitempty"`
	Keys     []string `json:"keys"`
}

// ErrClosed is returned by operations on a closed store.
var ErrClosed = errors.New("store: closed")

// Backend names accepted in configuration.
const (
	BackendDisk   = "disk"
	BackendSQLite = "sqlite"
	BackendMemory = "memory"
)

// Open builds the backend selected by cfg. A nil cfg loads configuration
// from the environment.
func Open(cfg Config) (KV, error) {
	if cfg == nil {
		var err error
		cfg, err = LoadConfig()
		if err != nil {
			return nil, err
		}
	}
	switch b := cfg.Backend(); b {
	case "", BackendDisk:
		return OpenDisk(cfg.BasePath())
	case BackendSQLite:
		return OpenSQLite(sqlitePath(cfg.BasePath()))
	case BackendMemory:
		return NewMemory(), nil
	default:
		return nil, fmt.Errorf("store: unknown backend %q", b)
	}
}

// staged holds pending writes shared by every backend. A nil value marks a
// staged deletion.
type staged map[string][]byte

func (s staged) set(key string, v any) error {
	if key == "" {
		return errors.New("store: key required")
	}
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("store: encode %s: %w", key, err)
	}
	s[key] = data
	return nil
}

func (s staged) remove(key string) error {
	if key == "" {
		return errors.New("store: key required")
	}
	s[key] = nil
	return nil
}

// lookup reports whether key is staged and, when it is, whether the staged
// change is a write.
func (s staged) lookup(key string) ([]byte, bool, bool) {
	data, ok := s[key]
	if !ok {
		return nil, false, false
	}
	return data, true, data != nil
}

func (s staged) keys() []string {
	keys := make([]string, 0, len(s))
	for k := range s {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func decode(key string, data []byte, v any) error {
	if v == nil {
		return nil
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("store: decode %s: %w", key, err)
	}
	return nil
}
