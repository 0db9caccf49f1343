// Package cache persists stems in BoltDB so repeated runs over the same
// vocabulary skip the stemmer. Entries are keyed by word and split by
// variant, and the whole cache is dropped when the rule set changes.
package cache

import (
	"encoding/binary"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"time"

	bolt "go.etcd.io/bbolt"

	"github.com/Kush-Singh-26/stemma/stemmer/porter2"
	"github.com/Kush-Singh-26/stemma/stemmer/utils"
)

// DBName is the BoltDB file inside the cache directory
const DBName = "stems.db"

// DefaultTimeout bounds how long Open waits for the file lock
const DefaultTimeout = 10 * time.Second

// ErrCacheIDMismatch means the stored stems were produced by another rule set
var ErrCacheIDMismatch = errors.New("stem cache ID mismatch")

// Manager provides the main cache interface
type Manager struct {
	db       *bolt.DB
	basePath string
	cacheID  string
	mu       sync.RWMutex
	stats    cacheStatsInternal
}

// cacheStatsInternal holds runtime performance metrics
type cacheStatsInternal struct {
	lastReadTime  time.Duration
	lastWriteTime time.Duration
	readCount     atomic.Int64
	writeCount    atomic.Int64
	hits          atomic.Int64
	misses        atomic.Int64
}

// ExpectedCacheID derives the cache ID from the stemmer rule set revision
func ExpectedCacheID() string {
	return utils.HashString(porter2.Version)
}

// Open opens or creates the cache in basePath. Stems written by a different
// rule set are discarded before Open returns.
func Open(basePath string, timeout time.Duration) (*Manager, error) {
	if err := os.MkdirAll(basePath, 0755); err != nil {
		return nil, fmt.Errorf("failed to create cache directory: %w", err)
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	opts := &bolt.Options{
		Timeout:      timeout,
		FreelistType: bolt.FreelistArrayType,
	}

	dbPath := filepath.Join(basePath, DBName)
	db, err := bolt.Open(dbPath, 0644, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to open BoltDB: %w", err)
	}

	m := &Manager{
		db:       db,
		basePath: basePath,
	}

	if err := m.initSchema(); err != nil {
		_ = m.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	expected := ExpectedCacheID()
	if err := m.VerifyCacheID(expected); err != nil {
		if !errors.Is(err, ErrCacheIDMismatch) {
			_ = m.Close()
			return nil, err
		}
		slog.Debug("Resetting stem cache", "reason", err)
		if err := m.Clear(); err != nil {
			_ = m.Close()
			return nil, err
		}
		if err := m.SetCacheID(expected); err != nil {
			_ = m.Close()
			return nil, fmt.Errorf("failed to store cache ID: %w", err)
		}
	}

	return m, nil
}

// Close closes the cache
func (m *Manager) Close() error {
	if m.db != nil {
		return m.db.Close()
	}
	return nil
}

// initSchema creates all buckets if they don't exist
func (m *Manager) initSchema() error {
	return m.db.Update(func(tx *bolt.Tx) error {
		for _, name := range AllBuckets() {
			if _, err := tx.CreateBucketIfNotExists([]byte(name)); err != nil {
				return fmt.Errorf("failed to create bucket %s: %w", name, err)
			}
		}

		meta := tx.Bucket([]byte(BucketMeta))
		if meta.Get([]byte(KeySchemaVersion)) == nil {
			v := make([]byte, 4)
			binary.BigEndian.PutUint32(v, SchemaVersion)
			if err := meta.Put([]byte(KeySchemaVersion), v); err != nil {
				return err
			}
		}

		return nil
	})
}

// VerifyCacheID returns ErrCacheIDMismatch unless the stored cache ID equals
// expectedID. A cache that has never been stamped also mismatches.
func (m *Manager) VerifyCacheID(expectedID string) error {
	var storedID string
	err := m.db.View(func(tx *bolt.Tx) error {
		meta := tx.Bucket([]byte(BucketMeta))
		storedID = string(meta.Get([]byte(KeyCacheID)))
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to read cache ID: %w", err)
	}

	m.mu.Lock()
	m.cacheID = storedID
	m.mu.Unlock()

	if storedID != expectedID {
		return fmt.Errorf("%w: stored %q, expected %q", ErrCacheIDMismatch, storedID, expectedID)
	}
	return nil
}

// SetCacheID updates the cache ID
func (m *Manager) SetCacheID(id string) error {
	m.mu.Lock()
	m.cacheID = id
	m.mu.Unlock()
	return m.db.Update(func(tx *bolt.Tx) error {
		meta := tx.Bucket([]byte(BucketMeta))
		return meta.Put([]byte(KeyCacheID), []byte(id))
	})
}

// CacheID returns the ID the cache is currently stamped with
func (m *Manager) CacheID() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.cacheID
}

// DB returns the underlying BoltDB instance
func (m *Manager) DB() *bolt.DB {
	return m.db
}

func (m *Manager) recordRead(start time.Time) {
	m.stats.readCount.Add(1)
	m.mu.Lock()
	m.stats.lastReadTime = time.Since(start)
	m.mu.Unlock()
}

func (m *Manager) recordWrite(start time.Time) {
	m.stats.writeCount.Add(1)
	m.mu.Lock()
	m.stats.lastWriteTime = time.Since(start)
	m.mu.Unlock()
}
