package cache

import (
	"time"

	"github.com/vmihailenco/msgpack/v5"
)

// StemEntry is the stored value for one word
type StemEntry struct {
	Stem string `msgpack:"stem"`
	Hits uint64 `msgpack:"hits"` // lookups served since the entry was written
}

// CacheStats describes the persistent cache
type CacheStats struct {
	USEntries     int    `msgpack:"us_entries"`
	GBEntries     int    `msgpack:"gb_entries"`
	TotalHits     uint64 `msgpack:"total_hits"`
	SchemaVersion int    `msgpack:"schema_version"`
	CacheID       string `msgpack:"cache_id"`
	// Performance metrics for this process
	LastReadTime  time.Duration `msgpack:"last_read_time"`
	LastWriteTime time.Duration `msgpack:"last_write_time"`
	ReadCount     int64         `msgpack:"read_count"`
	WriteCount    int64         `msgpack:"write_count"`
	Hits          int64         `msgpack:"hits"`
	Misses        int64         `msgpack:"misses"`
}

// Encode serializes a value to msgpack
func Encode(v interface{}) ([]byte, error) {
	return msgpack.Marshal(v)
}

// Decode deserializes msgpack bytes to a value
func Decode(data []byte, v interface{}) error {
	return msgpack.Unmarshal(data, v)
}
