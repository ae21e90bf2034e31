package buffer

// PooledBuffer is a byte region borrowed from a pool. The stream reader writes access units
// into it and the consumer reads them back through Data.
type PooledBuffer interface {
	Data() []byte

	// Release returns the buffer to the pool. After calling Release,
	// the buffer should not be used.
	Release()
}
