// Package reader runs the stream-mode scanner on its own goroutine and hands completed
// access units to a single consumer.
package reader

import (
	"github.com/ugparu/hevcbs"
	"github.com/ugparu/hevcbs/format/annexb"
	"github.com/ugparu/hevcbs/utils"
	"github.com/ugparu/hevcbs/utils/lifecycle"
	"github.com/ugparu/hevcbs/utils/logger"
	"go.uber.org/atomic"
)

// stream is the producer side of the handoff. Two channels of capacity one carry the
// two signals: release holds the token that allows the next scan, batches carries the
// scanned access unit. Exactly one side owns the region at any time; held is set while the
// consumer owns it.
type stream struct {
	lifecycle.AsyncManager[*stream] // Embedding an AsyncManager for the producer loop.
	scanner                         *annexb.StreamScanner
	region                          []byte
	release                         chan struct{}
	batches                         chan *hevcbs.Batch
	held                            atomic.Bool
	counters                        counters
	name                            string
}

type counters struct {
	batches, units, vcl, keys, bytes, rewinds, leading atomic.Int64
}

// NewStream creates a stream reader over src. Access units are written into region, which
// the consumer reads between GetBatch and ReleaseBatch. capacity sizes the scan region and
// maxBatch caps the units per access unit.
func NewStream(src hevcbs.ByteSource, region []byte, capacity, maxBatch int) hevcbs.StreamReader {
	rdr := &stream{
		AsyncManager: nil,
		scanner:      annexb.NewStreamScanner(src, capacity, maxBatch),
		region:       region,
		release:      make(chan struct{}, 1),
		batches:      make(chan *hevcbs.Batch, 1),
		name:         "STREAM READER",
	}
	rdr.release <- struct{}{}

	rdr.AsyncManager = lifecycle.NewAsyncManager(rdr)
	return rdr
}

// Step scans one access unit. The stop channel is only checked before a scan starts and
// while waiting, so an access unit in flight is always finished.
func (rdr *stream) Step(stopCh <-chan struct{}) error {
	select {
	case <-stopCh:
		return &lifecycle.BreakError{}
	default:
	}

	select {
	case <-stopCh:
		return &lifecycle.BreakError{}
	case <-rdr.release:
	}

	batch, err := rdr.scanner.NextAccessUnit(rdr.region)
	if err != nil {
		return err
	}
	rdr.publish()

	select {
	case rdr.batches <- batch:
	case <-stopCh:
		return &lifecycle.BreakError{}
	}
	return nil
}

func (rdr *stream) publish() {
	st := rdr.scanner.Stats()
	rdr.counters.batches.Store(st.Batches)
	rdr.counters.units.Store(st.Units)
	rdr.counters.vcl.Store(st.VCLUnits)
	rdr.counters.keys.Store(st.KeyUnits)
	rdr.counters.bytes.Store(st.Bytes)
	rdr.counters.rewinds.Store(st.Rewinds)
	rdr.counters.leading.Store(st.LeadingBytes)
}

// Read starts the producer goroutine.
func (rdr *stream) Read() {
	startFunc := func(*stream) error {
		logger.Infof(rdr, "Starting stream reader, region %d bytes", len(rdr.region))
		return nil
	}
	_ = rdr.Start(startFunc)
}

// GetBatch blocks until the producer has assembled an access unit. The batch stays valid
// until ReleaseBatch. When the producer has stopped the error that stopped it is returned,
// or a StoppedError after a regular Close.
func (rdr *stream) GetBatch() (*hevcbs.Batch, error) {
	select {
	case batch := <-rdr.batches:
		rdr.held.Store(true)
		return batch, nil
	case <-rdr.Done():
	}

	select {
	case batch := <-rdr.batches:
		rdr.held.Store(true)
		return batch, nil
	default:
	}
	if err := rdr.Err(); err != nil {
		return nil, err
	}
	return nil, &utils.StoppedError{}
}

// ReleaseBatch hands the region back to the producer. Calls without a batch held are ignored.
func (rdr *stream) ReleaseBatch() {
	if !rdr.held.CompareAndSwap(true, false) {
		logger.Debug(rdr, "Region already released")
		return
	}
	rdr.release <- struct{}{}
}

// Stats returns a snapshot of the session counters. Safe to call from any goroutine.
func (rdr *stream) Stats() hevcbs.Stats {
	return hevcbs.Stats{
		Batches:      rdr.counters.batches.Load(),
		Units:        rdr.counters.units.Load(),
		VCLUnits:     rdr.counters.vcl.Load(),
		KeyUnits:     rdr.counters.keys.Load(),
		Bytes:        rdr.counters.bytes.Load(),
		Rewinds:      rdr.counters.rewinds.Load(),
		LeadingBytes: rdr.counters.leading.Load(),
	}
}

// Close_ logs the final counters once the producer has exited.
func (rdr *stream) Close_() { //nolint: revive
	st := rdr.Stats()
	logger.Infof(rdr, "Closing stream reader: %d access units, %d units, %d bytes, %d rewinds",
		st.Batches, st.Units, st.Bytes, st.Rewinds)
}

// String returns a string representation of the reader.
func (rdr *stream) String() string {
	return rdr.name
}
