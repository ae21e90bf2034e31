package annexb

import (
	"errors"
	"io"

	"github.com/ugparu/hevcbs"
	"github.com/ugparu/hevcbs/codec/h265"
	"github.com/ugparu/hevcbs/utils"
	"github.com/ugparu/hevcbs/utils/logger"
)

// DefaultReadSize is the scan region size used by the file splitter.
const DefaultReadSize = 8192

// Demuxer splits a finite bitstream into units and hands every unit, start code included,
// to a sink. After each read the scanned part of the open unit is written out and the
// unscanned rest is moved to the region origin, so units may be longer than the region.
type Demuxer struct {
	scanner
	src     io.Reader
	sink    hevcbs.Sink
	index   int
	unitLen int
	stats   hevcbs.Stats
}

// NewDemuxer creates a file-mode demuxer scanning src through a region of size bytes.
func NewDemuxer(src io.Reader, sink hevcbs.Sink, size int) *Demuxer {
	if size <= 0 {
		size = DefaultReadSize
	}
	return &Demuxer{
		scanner: newScanner(size, "DEMUXER"),
		src:     src,
		sink:    sink,
	}
}

// Demux runs the whole pass and returns the session counters.
func (dmx *Demuxer) Demux() (hevcbs.Stats, error) {
	for {
		n, err := readOnce(dmx.src, dmx.arena.Tail())
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return dmx.Stats(), &utils.FatalIOError{Err: err}
		}
		logger.Tracef(dmx, "Read %d bytes, %d resident", n, dmx.arena.Resident())
		dmx.arena.Filled(n)

		if err = dmx.scan(false); err != nil {
			return dmx.Stats(), err
		}

		if dmx.arena.IsOpen() {
			if err = dmx.write(dmx.arena.Segment()); err != nil {
				return dmx.Stats(), err
			}
			dmx.arena.Rebase()
		}
		dmx.arena.Compact()
	}

	if err := dmx.scan(true); err != nil {
		return dmx.Stats(), err
	}

	if !dmx.arena.IsOpen() {
		if dmx.leading > 0 {
			return dmx.Stats(), &utils.NoStartCodeError{Scanned: dmx.leading}
		}
		return dmx.Stats(), nil
	}

	// The last unit ends at the end of input.
	if err := dmx.write(dmx.arena.Span()); err != nil {
		return dmx.Stats(), err
	}
	dmx.arena.Reset()
	err := dmx.end()
	return dmx.Stats(), err
}

func (dmx *Demuxer) scan(final bool) error {
	for {
		m, found, err := dmx.next(final)
		if err != nil || !found {
			return err
		}

		if dmx.arena.IsOpen() {
			if err = dmx.write(dmx.arena.Cut()); err != nil {
				return err
			}
			if err = dmx.end(); err != nil {
				return err
			}
			continue
		}

		dmx.open(m)
		dmx.index++
		dmx.unitLen = 0
		if err = dmx.sink.Begin(dmx.index, dmx.typ); err != nil {
			return &utils.ResourceError{Op: "begin unit", Err: err}
		}
	}
}

func (dmx *Demuxer) write(p []byte) error {
	if len(p) == 0 {
		return nil
	}
	dmx.unitLen += len(p)
	if err := dmx.sink.Write(p); err != nil {
		return &utils.ResourceError{Op: "write unit", Err: err}
	}
	return nil
}

func (dmx *Demuxer) end() error {
	dmx.count(&dmx.stats, dmx.unitLen)
	logger.Debugf(dmx, "Unit #%d type %d (%s) %d bytes", dmx.index, dmx.typ, h265.TypeName(dmx.typ), dmx.unitLen)
	if err := dmx.sink.End(); err != nil {
		return &utils.ResourceError{Op: "end unit", Err: err}
	}
	return nil
}

// Stats returns the counters of the pass so far.
func (dmx *Demuxer) Stats() hevcbs.Stats {
	st := dmx.stats
	st.LeadingBytes = dmx.leading
	return st
}
