package buffer

import "fmt"

const noSegment = -1

// Arena is a fixed-capacity byte region with three cursors:
//
//	0 <= start <= scan <= fill <= cap
//
// start marks the first byte of the open segment (unset when no segment is open),
// scan is the next byte to inspect and fill is where the next read appends.
// Resident bytes are [scan, fill).
type Arena struct {
	buf   []byte
	start int
	scan  int
	fill  int
}

// NewArena allocates an arena of the given capacity.
func NewArena(capacity int) *Arena {
	if capacity <= 0 {
		panic(fmt.Sprintf("buffer.NewArena: invalid capacity %d", capacity))
	}
	return &Arena{
		buf:   make([]byte, capacity),
		start: noSegment,
	}
}

func (a *Arena) String() string {
	if a.start == noSegment {
		return fmt.Sprintf("ARENA scan=%d fill=%d cap=%d", a.scan, a.fill, len(a.buf))
	}
	return fmt.Sprintf("ARENA start=%d scan=%d fill=%d cap=%d", a.start, a.scan, a.fill, len(a.buf))
}

// Cap returns the arena capacity.
func (a *Arena) Cap() int {
	return len(a.buf)
}

// Resident returns the number of filled but not yet scanned bytes.
func (a *Arena) Resident() int {
	return a.fill - a.scan
}

// Window returns the resident bytes. The slice aliases the arena.
func (a *Arena) Window() []byte {
	return a.buf[a.scan:a.fill]
}

// Tail returns the free space after the fill cursor, for the next read to land in.
func (a *Arena) Tail() []byte {
	return a.buf[a.fill:]
}

// Filled moves the fill cursor past n bytes written into Tail.
func (a *Arena) Filled(n int) {
	if n < 0 || a.fill+n > len(a.buf) {
		panic(fmt.Sprintf("buffer.Arena.Filled: %d bytes do not fit, %s", n, a))
	}
	a.fill += n
}

// Advance moves the scan cursor over n resident bytes.
func (a *Arena) Advance(n int) {
	if n < 0 || a.scan+n > a.fill {
		panic(fmt.Sprintf("buffer.Arena.Advance: %d bytes not resident, %s", n, a))
	}
	a.scan += n
}

// Open starts a segment at the scan cursor.
func (a *Arena) Open() {
	a.start = a.scan
}

// IsOpen reports whether a segment is open.
func (a *Arena) IsOpen() bool {
	return a.start != noSegment
}

// Segment returns the scanned bytes of the open segment, [start, scan).
func (a *Arena) Segment() []byte {
	if a.start == noSegment {
		return nil
	}
	return a.buf[a.start:a.scan]
}

// Span returns every byte of the open segment including the unscanned rest, [start, fill).
func (a *Arena) Span() []byte {
	if a.start == noSegment {
		return nil
	}
	return a.buf[a.start:a.fill]
}

// Cut closes the open segment and returns its bytes, [start, scan).
func (a *Arena) Cut() []byte {
	seg := a.Segment()
	a.start = noSegment
	return seg
}

// Rebase moves the segment start up to the scan cursor once [start, scan) was consumed
// elsewhere. The segment stays open.
func (a *Arena) Rebase() {
	if a.start != noSegment {
		a.start = a.scan
	}
}

// Reclaimable returns how many bytes at the origin a Compact would free.
func (a *Arena) Reclaimable() int {
	if a.start != noSegment {
		return a.start
	}
	return a.scan
}

// Compact moves the bytes that are still needed, the open segment and the resident bytes,
// to the origin and shifts the cursors accordingly. It returns the number of bytes moved.
func (a *Arena) Compact() int {
	off := a.Reclaimable()
	if off == 0 {
		return 0
	}
	n := copy(a.buf, a.buf[off:a.fill])
	if a.start != noSegment {
		a.start -= off
	}
	a.scan -= off
	a.fill -= off
	return n
}

// Reset drops every byte and cursor.
func (a *Arena) Reset() {
	a.start = noSegment
	a.scan = 0
	a.fill = 0
}
