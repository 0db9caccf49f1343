package utils

import (
	"runtime"
)

// Fixed limits; none of these are configurable.
const (
	MaxIndexBuffer  = 8 * 1024 * 1024  // encoded indexes up to 8MB keep their buffer
	MaxTokenScratch = 1024             // tokens are words; longer scratch is not pooled
	MaxFileSize     = 50 * 1024 * 1024 // 50MB, larger documents are skipped by the indexer
)

// DefaultWorkerCountMax caps the worker count derived from CPU cores
const DefaultWorkerCountMax = 12

// GetDefaultWorkerCount returns the default worker count based on CPU cores
func GetDefaultWorkerCount() int {
	workers := runtime.NumCPU()
	if workers < 2 {
		return 2
	}
	if workers > DefaultWorkerCountMax {
		return DefaultWorkerCountMax
	}
	return workers
}
