package store

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"go.uber.org/zap"
	_ "modernc.org/sqlite"
)

const sqliteFile = "moodtrack.db"

const sqliteSchema = `CREATE TABLE IF NOT EXISTS kv (
	key        TEXT PRIMARY KEY,
	value      BLOB NOT NULL,
	updated_at INTEGER NOT NULL
)`

// SQLite is a KV backed by a single SQLite table. Save commits every staged
// change in one transaction.
type SQLite struct {
	mu      sync.Mutex
	db      *sql.DB
	path    string
	pending staged
	now     func() time.Time
	logger  *zap.Logger
}

func sqlitePath(basePath string) string {
	if filepath.Ext(basePath) == ".db" {
		return basePath
	}
	return filepath.Join(basePath, sqliteFile)
}

// OpenSQLite opens (creating if needed) the database at path.
func OpenSQLite(path string) (*SQLite, error) {
	if path == "" {
		return nil, errors.New("store: sqlite path unknown")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("store: ensure sqlite dir: %w", err)
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("store: open sqlite: %w", err)
	}
	// One process, one writer.
	db.SetMaxOpenConns(1)
	if _, err := db.Exec(sqliteSchema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("store: create schema: %w", err)
	}
	return &SQLite{db: db, path: path, pending: make(staged), now: time.Now, logger: zap.NewNop()}, nil
}

// SetLogger implements LogSetter.
func (s *SQLite) SetLogger(l *zap.Logger) {
	if l == nil {
		l = zap.NewNop()
	}
	s.mu.Lock()
	s.logger = l
	s.mu.Unlock()
}

// Path returns the database file.
func (s *SQLite) Path() string {
	return s.path
}

// Get implements KV.
func (s *SQLite) Get(key string, v any) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.db == nil {
		return false, ErrClosed
	}
	if data, ok, present := s.pending.lookup(key); ok {
		if !present {
			return false, nil
		}
		return true, decode(key, data, v)
	}
	var data []byte
	err := s.db.QueryRow(`SELECT value FROM kv WHERE key = ?`, key).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("store: read %s: %w", key, err)
	}
	return true, decode(key, data, v)
}

// Set implements KV.
func (s *SQLite) Set(key string, v any) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.db == nil {
		return ErrClosed
	}
	return s.pending.set(key, v)
}

// Delete implements KV.
func (s *SQLite) Delete(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.db == nil {
		return ErrClosed
	}
	return s.pending.remove(key)
}

// Save implements KV.
func (s *SQLite) Save() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.db == nil {
		return ErrClosed
	}
	if len(s.pending) == 0 {
		return nil
	}
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("store: begin: %w", err)
	}
	stamp := s.now().UnixMilli()
	for _, key := range s.pending.keys() {
		data := s.pending[key]
		if data == nil {
			_, err = tx.Exec(`DELETE FROM kv WHERE key = ?`, key)
		} else {
			_, err = tx.Exec(`INSERT INTO kv (key, value, updated_at) VALUES (?, ?, ?)
				ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
				key, data, stamp)
		}
		if err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("store: write %s: %w", key, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("store: commit: %w", err)
	}
	s.pending = make(staged)
	return nil
}

// Discard implements KV.
func (s *SQLite) Discard() {
	s.mu.Lock()
	s.pending = make(staged)
	s.mu.Unlock()
}

// Close implements KV.
func (s *SQLite) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.db == nil {
		return nil
	}
	err := s.db.Close()
	s.db = nil
	return err
}

// Describe implements Describer.
func (s *SQLite) Describe() Description {
	desc := Description{Backend: BackendSQLite, Location: s.path, Keys: []string{}}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.db == nil {
		return desc
	}
	rows, err := s.db.Query(`SELECT key FROM kv ORDER BY key`)
	if err != nil {
		return desc
	}
	defer rows.Close()
	for rows.Next() {
		var key string
		if err := rows.Scan(&key); err == nil {
			desc.Keys = append(desc.Keys, key)
		}
	}
	return desc
}
