package annexb

import (
	"errors"
	"io"

	"github.com/ugparu/hevcbs"
	"github.com/ugparu/hevcbs/codec/h265"
	"github.com/ugparu/hevcbs/utils"
	"github.com/ugparu/hevcbs/utils/logger"
	"github.com/ugparu/hevcbs/utils/nal"
)

// StreamScanner cuts a looping source into access units. The source is treated as a ring:
// at end of input it is rewound to offset 0 and scanning continues with the open unit intact.
// The region is refilled only when nal.MinResident or fewer bytes are resident, and leftover
// bytes are moved to the origin once per access unit.
type StreamScanner struct {
	scanner
	src      hevcbs.ByteSource
	maxBatch int
	units    []hevcbs.NalUnit
	rewound  bool
	stats    hevcbs.Stats
}

// NewStreamScanner creates a scanner over src with a scan region of capacity bytes.
// maxBatch caps the number of units per access unit.
func NewStreamScanner(src hevcbs.ByteSource, capacity, maxBatch int) *StreamScanner {
	if maxBatch <= 0 {
		maxBatch = hevcbs.MaxBatchUnits
	}
	return &StreamScanner{
		scanner:  newScanner(capacity, "STREAM"),
		src:      src,
		maxBatch: maxBatch,
		units:    make([]hevcbs.NalUnit, 0, maxBatch),
	}
}

// NextAccessUnit scans until a unit closing an access unit (IDR_W_RADL or TRAIL_R) is
// assembled. Units are copied back to back into dst; the returned batch and its payloads
// alias dst and the scanner, and stay valid until the next call.
func (s *StreamScanner) NextAccessUnit(dst []byte) (*hevcbs.Batch, error) {
	out := 0
	s.units = s.units[:0]

	for {
		if s.arena.Resident() <= nal.MinResident {
			if err := s.refill(); err != nil {
				return nil, err
			}
		}

		for {
			m, found, err := s.next(false)
			if err != nil {
				return nil, err
			}
			if !found {
				break
			}

			if !s.arena.IsOpen() {
				s.open(m)
				continue
			}

			n := len(s.arena.Segment())
			if len(s.units) == s.maxBatch {
				return nil, &utils.BatchOverflowError{Max: s.maxBatch}
			}
			if out+n > len(dst) {
				return nil, &utils.DestinationOverflowError{Need: n, Free: len(dst) - out}
			}
			copy(dst[out:], s.arena.Cut())
			s.units = append(s.units, hevcbs.NalUnit{
				Type:    s.typ,
				Offset:  out,
				Length:  n,
				Payload: dst[out : out+n : out+n],
			})
			out += n
			s.count(&s.stats, n)

			if h265.IsAccessUnitEnd(s.typ) {
				s.arena.Compact()
				s.stats.Batches++
				batch := &hevcbs.Batch{Units: s.units, Region: dst}
				s.dump(batch)
				return batch, nil
			}
		}
	}
}

// refill appends one read at the fill cursor. A full tail is reclaimed early when bytes before
// the open unit can be dropped.
func (s *StreamScanner) refill() error {
	if len(s.arena.Tail()) == 0 {
		if s.arena.Reclaimable() == 0 {
			if s.arena.Resident() >= nal.MinResident {
				return nil
			}
			return &utils.CapacityExceededError{Segment: len(s.arena.Span()), Capacity: s.arena.Cap()}
		}
		logger.Tracef(s, "Region full, moving %d bytes to origin", s.arena.Compact())
	}

	for {
		n, err := readOnce(s.src, s.arena.Tail())
		if err == nil {
			s.arena.Filled(n)
			s.rewound = false
			return nil
		}
		if !errors.Is(err, io.EOF) {
			return &utils.FatalIOError{Err: err}
		}
		if s.rewound {
			return &utils.EmptySourceError{}
		}
		if _, err = s.src.Seek(0, io.SeekStart); err != nil {
			return &utils.FatalIOError{Err: err}
		}
		s.rewound = true
		s.stats.Rewinds++
		logger.Tracef(s, "End of input, rewinding source (%d)", s.stats.Rewinds)
	}
}

func (s *StreamScanner) dump(batch *hevcbs.Batch) {
	logger.Debugf(s, "Access unit #%d: %d units, %d bytes", s.stats.Batches, batch.Len(), batch.Size())
	for i, u := range batch.Units {
		logger.Debugf(s, "[%d] type=%d (%s) offset=%d length=%d", i, u.Type, h265.TypeName(u.Type), u.Offset, u.Length)
	}
}

// Stats returns the counters of the session so far.
func (s *StreamScanner) Stats() hevcbs.Stats {
	st := s.stats
	st.LeadingBytes = s.leading
	return st
}
