package cache

import (
	"errors"
	"fmt"
	"time"

	bolt "go.etcd.io/bbolt"

	"github.com/Kush-Singh-26/stemma/stemmer/porter2"
)

// MaxKeySize bounds cached words; longer input is stemmed but not stored
const MaxKeySize = 512

func cacheable(word string) bool {
	return word != "" && len(word) <= MaxKeySize
}

// Get returns the cached stem of word. The boolean is false on a miss.
func (m *Manager) Get(word string, british bool) (string, bool, error) {
	if !cacheable(word) {
		return "", false, nil
	}
	start := time.Now()
	defer m.recordRead(start)

	var (
		entry StemEntry
		found bool
	)
	err := m.db.View(func(tx *bolt.Tx) error {
		data := tx.Bucket(bucketFor(british)).Get([]byte(word))
		if data == nil {
			return nil
		}
		if err := Decode(data, &entry); err != nil {
			return fmt.Errorf("failed to decode entry for %q: %w", word, err)
		}
		found = true
		return nil
	})
	if err != nil {
		return "", false, err
	}
	return entry.Stem, found, nil
}

// PutBatch stores word -> stem pairs in a single transaction
func (m *Manager) PutBatch(entries map[string]string, british bool) error {
	if len(entries) == 0 {
		return nil
	}
	start := time.Now()
	defer m.recordWrite(start)

	return m.db.Update(func(tx *bolt.Tx) error {
		bucket := tx.Bucket(bucketFor(british))
		for word, stem := range entries {
			if !cacheable(word) {
				continue
			}
			data, err := Encode(&StemEntry{Stem: stem})
			if err != nil {
				return fmt.Errorf("failed to encode entry for %q: %w", word, err)
			}
			if err := bucket.Put([]byte(word), data); err != nil {
				return fmt.Errorf("failed to store %q: %w", word, err)
			}
		}
		return nil
	})
}

// Stem is a read-through lookup: a miss runs the stemmer and stores the
// result.
func (m *Manager) Stem(word string, british bool) (string, error) {
	stems, err := m.StemBatch([]string{word}, british)
	if err != nil {
		return "", err
	}
	return stems[0], nil
}

// StemBatch stems words with one read transaction and at most one write
// transaction. Hits bump the stored hit count; misses are stemmed and
// stored.
func (m *Manager) StemBatch(words []string, british bool) ([]string, error) {
	stems := make([]string, len(words))
	hits := make(map[string]uint64)
	misses := make(map[string]string)

	start := time.Now()
	err := m.db.View(func(tx *bolt.Tx) error {
		bucket := tx.Bucket(bucketFor(british))
		for i, word := range words {
			if !cacheable(word) {
				stems[i] = porter2.Stem(word, british)
				continue
			}
			if stem, ok := misses[word]; ok {
				stems[i] = stem
				continue
			}
			data := bucket.Get([]byte(word))
			if data == nil {
				stems[i] = porter2.Stem(word, british)
				misses[word] = stems[i]
				continue
			}
			var entry StemEntry
			if err := Decode(data, &entry); err != nil {
				return fmt.Errorf("failed to decode entry for %q: %w", word, err)
			}
			stems[i] = entry.Stem
			hits[word]++
		}
		return nil
	})
	m.recordRead(start)
	if err != nil {
		return nil, err
	}
	hitCount := sumHits(hits)
	m.stats.hits.Add(hitCount)
	m.stats.misses.Add(int64(len(words)) - hitCount)

	if len(hits) == 0 && len(misses) == 0 {
		return stems, nil
	}

	start = time.Now()
	defer m.recordWrite(start)
	err = m.db.Update(func(tx *bolt.Tx) error {
		bucket := tx.Bucket(bucketFor(british))
		for word, n := range hits {
			var entry StemEntry
			if data := bucket.Get([]byte(word)); data != nil {
				if err := Decode(data, &entry); err != nil {
					return fmt.Errorf("failed to decode entry for %q: %w", word, err)
				}
			}
			entry.Hits += n
			if entry.Stem == "" {
				entry.Stem = porter2.Stem(word, british)
			}
			if err := putEntry(bucket, word, &entry); err != nil {
				return err
			}
		}
		for word, stem := range misses {
			if err := putEntry(bucket, word, &StemEntry{Stem: stem}); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return stems, nil
}

func sumHits(hits map[string]uint64) int64 {
	var total int64
	for _, n := range hits {
		total += int64(n)
	}
	return total
}

func putEntry(bucket *bolt.Bucket, word string, entry *StemEntry) error {
	data, err := Encode(entry)
	if err != nil {
		return fmt.Errorf("failed to encode entry for %q: %w", word, err)
	}
	if err := bucket.Put([]byte(word), data); err != nil {
		return fmt.Errorf("failed to store %q: %w", word, err)
	}
	return nil
}

// Clear drops every cached stem, keeping the metadata
func (m *Manager) Clear() error {
	return m.db.Update(func(tx *bolt.Tx) error {
		for _, name := range stemBuckets {
			if err := tx.DeleteBucket([]byte(name)); err != nil && !errors.Is(err, bolt.ErrBucketNotFound) {
				return fmt.Errorf("failed to delete bucket %s: %w", name, err)
			}
			if _, err := tx.CreateBucket([]byte(name)); err != nil {
				return fmt.Errorf("failed to create bucket %s: %w", name, err)
			}
		}
		return nil
	})
}

// Stats returns entry counts and this process's access metrics. Hits and
// Misses count StemBatch lookups made through this Manager.
func (m *Manager) Stats() (*CacheStats, error) {
	stats := &CacheStats{
		SchemaVersion: SchemaVersion,
		CacheID:       m.CacheID(),
		ReadCount:     m.stats.readCount.Load(),
		WriteCount:    m.stats.writeCount.Load(),
		Hits:          m.stats.hits.Load(),
		Misses:        m.stats.misses.Load(),
	}
	m.mu.RLock()
	stats.LastReadTime = m.stats.lastReadTime
	stats.LastWriteTime = m.stats.lastWriteTime
	m.mu.RUnlock()

	err := m.db.View(func(tx *bolt.Tx) error {
		us := tx.Bucket([]byte(BucketStemsUS))
		gb := tx.Bucket([]byte(BucketStemsGB))
		stats.USEntries = us.Stats().KeyN
		stats.GBEntries = gb.Stats().KeyN

		for _, bucket := range []*bolt.Bucket{us, gb} {
			err := bucket.ForEach(func(k, v []byte) error {
				var entry StemEntry
				if err := Decode(v, &entry); err != nil {
					return fmt.Errorf("failed to decode entry for %q: %w", k, err)
				}
				stats.TotalHits += entry.Hits
				return nil
			})
			if err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return stats, nil
}
