package nal

// Start code prefix lengths.
const (
	ShortPrefixLen = 3 // 00 00 01
	LongPrefixLen  = 4 // 00 00 00 01
)

// HeaderLen is the number of header bytes inspected after a prefix.
const HeaderLen = 1

// MinResident is the number of visible bytes the scanner needs before it can tell a
// 3-byte prefix from the 4-byte one and read the header byte that follows either.
const MinResident = LongPrefixLen + HeaderLen

// StartCode checks if there's a start code (00 00 01 or 00 00 00 01) at pos and returns its
// length. The 4-byte form is tested on the same position, so a 4-byte prefix is always
// reported as one match and never as a 3-byte match one byte later.
func StartCode(b []byte, pos int) (prefixLen int, found bool) {
	if pos < 0 || pos+ShortPrefixLen > len(b) || b[pos] != 0 || b[pos+1] != 0 {
		return 0, false
	}

	switch b[pos+2] {
	case 1:
		return ShortPrefixLen, true
	case 0:
		if pos+LongPrefixLen <= len(b) && b[pos+3] == 1 {
			return LongPrefixLen, true
		}
	}

	return 0, false
}

// Match is a start code found with its header byte visible.
type Match struct {
	PrefixLen int  // 3 or 4.
	Header    byte // First NAL header byte.
}

// Len returns the number of bytes covered by prefix and header.
func (m Match) Len() int {
	return m.PrefixLen + HeaderLen
}

// Detect looks for a start code at pos whose header byte is inside b.
func Detect(b []byte, pos int) (m Match, found bool) {
	prefixLen, ok := StartCode(b, pos)
	if !ok || pos+prefixLen+HeaderLen > len(b) {
		return Match{}, false
	}
	return Match{PrefixLen: prefixLen, Header: b[pos+prefixLen]}, true
}
