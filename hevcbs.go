package hevcbs

import (
	"io"
)

// MaxBatchUnits is the default number of descriptors a stream-mode batch may carry.
const MaxBatchUnits = 5

// NalUnit describes one coded unit delimited by start codes in an Annex-B bitstream.
type NalUnit struct {
	Type    uint8  // 6-bit nal_unit_type taken from the first header byte.
	Offset  int    // Offset of the unit inside the destination region.
	Length  int    // Number of bytes, start code prefix included.
	Payload []byte // View into the destination region, valid until the next batch.
}

// Batch is an ordered set of units forming one access unit. All payloads share Region.
type Batch struct {
	Units  []NalUnit // Units in bitstream order.
	Region []byte    // Destination region the payloads point into.
}

// Len returns the number of units in the batch.
func (b *Batch) Len() int {
	return len(b.Units)
}

// Size returns the total number of payload bytes in the batch.
func (b *Batch) Size() (n int) {
	for _, u := range b.Units {
		n += u.Length
	}
	return
}

// ByteSource is the sequential input of a scan session. Seek is only used in stream mode
// to rewind the source to its start when it runs out of data.
type ByteSource interface {
	io.Reader
	io.Seeker
}

// Sink receives completed units in file mode. Write may be called several times per unit
// when a unit is larger than the scan region.
type Sink interface {
	Begin(index int, typ uint8) error // Opens the artifact of a new unit.
	Write(p []byte) error             // Appends raw unit bytes.
	End() error                       // Finalizes the current unit.
	Close() error                     // Releases the sink.
}

// StreamReader runs the stream-mode producer and hands access units to a single consumer.
type StreamReader interface {
	Read()                     // Starts the producer.
	GetBatch() (*Batch, error) // Blocks until an access unit is ready.
	ReleaseBatch()             // Returns the destination region to the producer.
	Close()                    // Stops the producer after the in-flight scan.
	Done() <-chan struct{}     // Closed once the producer has exited.
	Stats() Stats              // Snapshot of the session counters.
}

// Stats is a snapshot of scan session counters.
type Stats struct {
	Batches      int64 `json:"batches"`
	Units        int64 `json:"units"`
	VCLUnits     int64 `json:"vcl_units"`
	KeyUnits     int64 `json:"key_units"`
	Bytes        int64 `json:"bytes"`
	Rewinds      int64 `json:"rewinds"`
	LeadingBytes int64 `json:"leading_bytes"`
}
