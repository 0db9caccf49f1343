package search

import (
	"sync"
	"sync/atomic"

	"github.com/Kush-Singh-26/stemma/stemmer/porter2"
)

// DefaultMemoSize bounds the in-process stem memo
const DefaultMemoSize = 50000

type memoKey struct {
	word    string
	british bool
}

var (
	memo      = make(map[memoKey]string, 1024)
	memoMu    sync.RWMutex
	memoLimit = DefaultMemoSize

	memoHits   atomic.Int64
	memoMisses atomic.Int64
)

// StemCached stems word through a bounded in-memory memo. When the memo is
// full it is dropped wholesale rather than evicted entry by entry.
func StemCached(word string, british bool) string {
	key := memoKey{word: word, british: british}

	memoMu.RLock()
	stem, ok := memo[key]
	memoMu.RUnlock()
	if ok {
		memoHits.Add(1)
		return stem
	}
	memoMisses.Add(1)

	stem = porter2.Stem(word, british)

	memoMu.Lock()
	if len(memo) >= memoLimit {
		memo = make(map[memoKey]string, 1024)
	}
	memo[key] = stem
	memoMu.Unlock()
	return stem
}

// SetMemoLimit changes the memo bound; values below 1 disable memoization
// beyond a single entry.
func SetMemoLimit(n int) {
	if n < 1 {
		n = 1
	}
	memoMu.Lock()
	memoLimit = n
	if len(memo) > n {
		memo = make(map[memoKey]string, 1024)
	}
	memoMu.Unlock()
}

// MemoStats returns memo hit and miss counts since the last reset
func MemoStats() (hits, misses int64) {
	return memoHits.Load(), memoMisses.Load()
}

// ResetMemo clears the memo and its counters
func ResetMemo() {
	memoMu.Lock()
	memo = make(map[memoKey]string, 1024)
	memoMu.Unlock()
	memoHits.Store(0)
	memoMisses.Store(0)
}
