// Package mirror is the best-effort local cache of the asset collection.
//
// A Mirror serializes collections to JSON and stores them under a key in a
// Backend. Load never fails: a missing key or undecodable content is a
// recoverable miss. Save never propagates errors: a failed write is logged
// and the caller keeps its in-memory state.
package mirror

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/hielopolar/polar/internal/asset"
)

// ErrNotFound is returned by backends for keys that were never written.
var ErrNotFound = errors.New("mirror key not found")

// Backend stores opaque values by key.
type Backend interface {
	Read(key string) ([]byte, error)
	Write(key string, value []byte) error
	Close() error
}

// Backend kinds accepted by Open.
const (
	KindFile   = "file"
	KindSQLite = "sqlite"
	KindMemory = "memory"
)

// Open builds the backend named by kind rooted at dir.
func Open(kind, dir string) (Backend, error) {
	switch strings.ToLower(strings.TrimSpace(kind)) {
	case "", KindFile:
		return NewFileBackend(dir)
	case KindSQLite:
		return NewSQLiteBackend(dir)
	case KindMemory:
		return NewMemoryBackend(), nil
	default:
		return nil, fmt.Errorf("unknown mirror backend %q", kind)
	}
}

// Mirror persists asset collections into a Backend.
type Mirror struct {
	backend Backend
	logger  *zap.Logger
}

// New wraps backend. A nil logger discards log output.
func New(backend Backend, logger *zap.Logger) *Mirror {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Mirror{backend: backend, logger: logger.Named("mirror")}
}

// Load returns the collection stored under key. The boolean is false when the
// key is absent or its content does not decode.
func (m *Mirror) Load(key string) (asset.Collection, bool) {
	data, err := m.backend.Read(key)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			m.logger.Debug("mirror miss", zap.String("key", key))
		} else {
			m.logger.Warn("mirror read failed", zap.String("key", key), zap.Error(err))
		}
		return nil, false
	}
	var c asset.Collection
	if err := json.Unmarshal(data, &c); err != nil {
		m.logger.Warn("mirror content unreadable", zap.String("key", key), zap.Error(err))
		return nil, false
	}
	if c == nil {
		// "null" is not a collection.
		m.logger.Warn("mirror content empty", zap.String("key", key))
		return nil, false
	}
	m.logger.Debug("mirror loaded", zap.String("key", key), zap.Int("assets", len(c)))
	return c.Normalize(), true
}

// Save stores c under key and reports whether the write succeeded.
func (m *Mirror) Save(key string, c asset.Collection) bool {
	if c == nil {
		c = asset.Collection{}
	}
	data, err := json.Marshal(c)
	if err != nil {
		m.logger.Error("mirror encode failed", zap.String("key", key), zap.Error(err))
		return false
	}
	if err := m.backend.Write(key, data); err != nil {
		m.logger.Error("mirror write failed", zap.String("key", key), zap.Error(err))
		return false
	}
	m.logger.Debug("mirror saved", zap.String("key", key), zap.Int("assets", len(c)))
	return true
}

// Close releases the backend.
func (m *Mirror) Close() error {
	return m.backend.Close()
}
