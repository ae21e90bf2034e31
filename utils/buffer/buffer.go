package buffer

import (
	"sync"
)

const (
	defaultBufSize = 4 * 1024        // 4KB
	bigBufSize     = 64 * 1024       // 64KB
	maxBufSize     = 8 * 1024 * 1024 // regions above this are left to the GC
)

var bufPool = sync.Pool{
	New: func() any {
		return &memBuffer{
			buf: make([]byte, 0, defaultBufSize),
		}
	},
}

var bigBufPool = sync.Pool{
	New: func() any {
		return &memBuffer{
			buf: make([]byte, 0, bigBufSize),
		}
	},
}

// Get returns a pooled region of exactly size bytes. Contents are not zeroed.
func Get(size int) PooledBuffer {
	if size < 0 {
		size = 0
	}

	var b *memBuffer
	if size >= bigBufSize {
		b, _ = bigBufPool.Get().(*memBuffer)
	} else {
		b, _ = bufPool.Get().(*memBuffer)
	}

	if cap(b.buf) < size {
		b.buf = make([]byte, size)
	}
	b.buf = b.buf[:size]
	return b
}

type memBuffer struct {
	buf []byte
}

func (b *memBuffer) Data() []byte {
	return b.buf
}

// Release returns the region to its pool.
func (b *memBuffer) Release() {
	if b.buf == nil || cap(b.buf) > maxBufSize {
		b.buf = nil
		return
	}

	b.buf = b.buf[:0]
	if cap(b.buf) >= bigBufSize {
		bigBufPool.Put(b)
	} else {
		bufPool.Put(b)
	}
}
