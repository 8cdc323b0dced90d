package store

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/peterbourgon/diskv/v3"
	"go.uber.org/zap"
)

const tempDirName = ".tmp"

// Disk is a KV backed by a diskv directory. Each top-level key is one file;
// writes go through a temp file and rename so a flush is all-or-nothing per
// key.
type Disk struct {
	mu       sync.Mutex
	d        *diskv.Diskv
	basePath string
	pending  staged
	closed   bool
	logger   *zap.Logger
}

// OpenDisk opens (creating if needed) a diskv store rooted at basePath.
func OpenDisk(basePath string) (*Disk, error) {
	if basePath == "" {
		return nil, errors.New("store: base path unknown")
	}
	if err := os.MkdirAll(basePath, 0o755); err != nil {
		return nil, fmt.Errorf("store: ensure base path: %w", err)
	}
	tmp := filepath.Join(basePath, tempDirName)
	if err := os.MkdirAll(tmp, 0o755); err != nil {
		return nil, fmt.Errorf("store: ensure temp dir: %w", err)
	}
	return &Disk{
		d: diskv.New(diskv.Options{
			BasePath:          basePath,
			TempDir:           tmp,
			AdvancedTransform: keyToPathTransform,
			InverseTransform:  pathToKeyTransform,
			// No read cache: another process may rewrite a key at any time
			// and Refresh must see it.
			CacheSizeMax:      0,
		}),
		basePath: basePath,
		pending:  make(staged),
		logger:   zap.NewNop(),
	}, nil
}

// SetLogger implements LogSetter.
func (p *Disk) SetLogger(l *zap.Logger) {
	if l == nil {
		l = zap.NewNop()
	}
	p.mu.Lock()
	p.logger = l
	p.mu.Unlock()
}

// BasePath returns the directory the store lives in.
func (p *Disk) BasePath() string {
	return p.basePath
}

// Get implements KV.
func (p *Disk) Get(key string, v any) (bool, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return false, ErrClosed
	}
	if data, ok, present := p.pending.lookup(key); ok {
		if !present {
			return false, nil
		}
		return true, decode(key, data, v)
	}
	data, err := p.d.Read(key)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return false, nil
		}
		return false, fmt.Errorf("store: read %s: %w", key, err)
	}
	return true, decode(key, data, v)
}

// Set implements KV.
func (p *Disk) Set(key string, v any) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return ErrClosed
	}
	return p.pending.set(key, v)
}

// Delete implements KV.
func (p *Disk) Delete(key string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return ErrClosed
	}
	return p.pending.remove(key)
}

// Save writes every staged change to disk with fsync. Keys that were flushed
// before a failure stay flushed; the failing key and everything after it stay
// staged.
func (p *Disk) Save() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return ErrClosed
	}
	for _, key := range p.pending.keys() {
		data := p.pending[key]
		if data == nil {
			if err := p.d.Erase(key); err != nil && !errors.Is(err, fs.ErrNotExist) {
				return fmt.Errorf("store: erase %s: %w", key, err)
			}
		} else if err := p.d.WriteStream(key, bytes.NewReader(data), true); err != nil {
			return fmt.Errorf("store: write %s: %w", key, err)
		}
		delete(p.pending, key)
	}
	return nil
}

// Discard implements KV.
func (p *Disk) Discard() {
	p.mu.Lock()
	p.pending = make(staged)
	p.mu.Unlock()
}

// Close implements KV.
func (p *Disk) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.closed = true
	p.pending = make(staged)
	return nil
}

// Describe implements Describer.
func (p *Disk) Describe() Description {
	keys := make([]string, 0)
	cancel := make(chan struct{})
	defer close(cancel)
	for key := range p.d.Keys(cancel) {
		if strings.HasPrefix(key, tempDirName) {
			continue
		}
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return Description{Backend: BackendDisk, Location: p.basePath, Keys: keys}
}

// keyToPathTransform nests dashed keys: "settings-theme" lives at
// settings/theme.
func keyToPathTransform(s string) *diskv.PathKey {
	parts := strings.Split(s, "-")
	return &diskv.PathKey{
		Path:     parts[:len(parts)-1],
		FileName: parts[len(parts)-1],
	}
}

func pathToKeyTransform(pathKey *diskv.PathKey) string {
	if len(pathKey.Path) == 0 {
		return pathKey.FileName
	}
	return fmt.Sprintf("%s-%s", strings.Join(pathKey.Path, "-"), pathKey.FileName)
}
