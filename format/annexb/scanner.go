// Package annexb splits Annex-B H.265 elementary streams into NAL units, either in one pass over
// a whole file or access unit by access unit over a looping source.
package annexb

import (
	"github.com/ugparu/hevcbs"
	"github.com/ugparu/hevcbs/codec/h265"
	"github.com/ugparu/hevcbs/utils"
	"github.com/ugparu/hevcbs/utils/buffer"
	"github.com/ugparu/hevcbs/utils/logger"
	"github.com/ugparu/hevcbs/utils/nal"
)

// scanner walks the arena byte by byte looking for start codes.
type scanner struct {
	arena   *buffer.Arena
	typ     uint8
	leading int64
	started bool
	name    string
}

func newScanner(capacity int, name string) scanner {
	return scanner{
		arena: buffer.NewArena(capacity),
		name:  name,
	}
}

// count adds a completed unit of the current type to st.
func (s *scanner) count(st *hevcbs.Stats, n int) {
	st.Units++
	st.Bytes += int64(n)
	if h265.IsVCL(s.typ) {
		st.VCLUnits++
	}
	if h265.IsKey(s.typ) {
		st.KeyUnits++
	}
}

func (s *scanner) String() string {
	return s.name
}

// next moves the scan cursor to the next start code whose header byte is resident.
// Without final the scanner keeps nal.MinResident bytes of lookahead, so a prefix split
// between two reads stays unscanned until the next read completes it.
// found is false when the resident bytes run out.
func (s *scanner) next(final bool) (m nal.Match, found bool, err error) {
	for {
		w := s.arena.Window()
		if len(w) == 0 || (!final && len(w) < nal.MinResident) {
			return nal.Match{}, false, nil
		}
		if m, found = nal.Detect(w, 0); found {
			return m, true, nil
		}
		s.arena.Advance(1)
		if !s.started {
			s.leading++
			if s.leading >= int64(s.arena.Cap()) {
				return nal.Match{}, false, &utils.NoStartCodeError{Scanned: s.leading}
			}
		}
	}
}

// open starts a unit at the match and skips its prefix and header byte.
func (s *scanner) open(m nal.Match) {
	if !s.started {
		s.started = true
		if s.leading > 0 {
			logger.Warningf(s, "Skipped %d bytes before the first start code", s.leading)
		}
	}
	s.typ = h265.NalType(m.Header)
	s.arena.Open()
	s.arena.Advance(m.Len())
}
