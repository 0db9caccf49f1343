package utils

import (
	"bytes"
	"sync"
)

// BufferPool recycles the msgpack buffers used when saving an index.
// Buffers that grew past maxCap are dropped instead of pooled.
type BufferPool struct {
	pool   sync.Pool
	maxCap int
}

// NewBufferPool creates a BufferPool keeping buffers up to maxCap bytes
func NewBufferPool(maxCap int) *BufferPool {
	return &BufferPool{
		pool: sync.Pool{
			New: func() any {
				return new(bytes.Buffer)
			},
		},
		maxCap: maxCap,
	}
}

// Get retrieves an empty buffer
func (p *BufferPool) Get() *bytes.Buffer {
	return p.pool.Get().(*bytes.Buffer)
}

// Put resets buf and returns it to the pool
func (p *BufferPool) Put(buf *bytes.Buffer) {
	if buf.Cap() > p.maxCap {
		return
	}
	buf.Reset()
	p.pool.Put(buf)
}

// TokenPool recycles the byte scratch a tokenizer accumulates runes into.
// Unlike a strings.Builder, whose Reset drops its storage, the scratch keeps
// its capacity across tokens and across pooled uses.
type TokenPool struct {
	pool sync.Pool
}

// NewTokenPool creates a TokenPool
func NewTokenPool() *TokenPool {
	return &TokenPool{
		pool: sync.Pool{
			New: func() any {
				scratch := make([]byte, 0, 64)
				return &scratch
			},
		},
	}
}

// Get retrieves an empty scratch slice
func (p *TokenPool) Get() *[]byte {
	return p.pool.Get().(*[]byte)
}

// Put truncates scratch and returns it, unless a pathological token grew
// it past MaxTokenScratch.
func (p *TokenPool) Put(scratch *[]byte) {
	if cap(*scratch) > MaxTokenScratch {
		return
	}
	*scratch = (*scratch)[:0]
	p.pool.Put(scratch)
}

// Shared pools for index encoding and tokenization
var (
	IndexBufferPool = NewBufferPool(MaxIndexBuffer)
	TokenScratch    = NewTokenPool()
)
