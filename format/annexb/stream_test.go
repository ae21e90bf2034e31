package annexb

import (
	"bytes"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/ugparu/hevcbs"
	"github.com/ugparu/hevcbs/codec/h265"
	"github.com/ugparu/hevcbs/utils"
)

func gopTypes() []uint8 {
	return []uint8{
		h265.NalUnitVps, h265.NalUnitSps, h265.NalUnitPps, h265.NalUnitCodedSliceIdrWRadl,
		h265.NalUnitCodedSliceTrailR, h265.NalUnitCodedSliceTrailR, h265.NalUnitCodedSliceTrailR,
	}
}

func collect(t *testing.T, s *StreamScanner, dst []byte, count int) ([]byte, [][]uint8) {
	t.Helper()

	var (
		out   []byte
		types [][]uint8
	)
	for i := 0; i < count; i++ {
		batch, err := s.NextAccessUnit(dst)
		require.NoError(t, err)
		require.LessOrEqual(t, batch.Len(), hevcbs.MaxBatchUnits)
		require.True(t, h265.IsAccessUnitEnd(batch.Units[batch.Len()-1].Type))

		offset := 0
		var batchTypes []uint8
		for _, u := range batch.Units {
			require.Equal(t, offset, u.Offset)
			require.Len(t, u.Payload, u.Length)
			require.Equal(t, batch.Region[u.Offset:u.Offset+u.Length], u.Payload)
			offset += u.Length
			out = append(out, u.Payload...)
			batchTypes = append(batchTypes, u.Type)
		}
		types = append(types, batchTypes)
	}
	return out, types
}

func TestStreamAccessUnits(t *testing.T) {
	t.Parallel()

	rnd := rand.New(rand.NewSource(1))
	in, _ := genStream(rnd, gopTypes(), 40)

	s := NewStreamScanner(bytes.NewReader(in), 1024, hevcbs.MaxBatchUnits)
	_, types := collect(t, s, make([]byte, 1024), 5)

	require.Equal(t, [][]uint8{
		{h265.NalUnitVps, h265.NalUnitSps, h265.NalUnitPps, h265.NalUnitCodedSliceIdrWRadl},
		{h265.NalUnitCodedSliceTrailR},
		{h265.NalUnitCodedSliceTrailR},
		{h265.NalUnitCodedSliceTrailR},
		{h265.NalUnitVps, h265.NalUnitSps, h265.NalUnitPps, h265.NalUnitCodedSliceIdrWRadl},
	}, types)
}

func TestStreamRingRoundTrip(t *testing.T) {
	t.Parallel()

	for _, capacity := range []int{64, 100, 4096} {
		for _, chunk := range []int{1, 5, 13, 4096} {
			rnd := rand.New(rand.NewSource(int64(capacity + chunk)))
			in, _ := genStream(rnd, gopTypes(), 40)

			s := NewStreamScanner(newChunkReader(in, chunk), capacity, hevcbs.MaxBatchUnits)
			out, _ := collect(t, s, make([]byte, 4096), 20)

			// 20 access units cover five passes over the four access units of the source.
			require.Equal(t, bytes.Repeat(in, 5), out, "capacity %d chunk %d", capacity, chunk)
			st := s.Stats()
			require.Equal(t, int64(20), st.Batches)
			require.GreaterOrEqual(t, st.Rewinds, int64(5))
			require.Equal(t, int64(35), st.Units)
			require.Equal(t, int64(20), st.VCLUnits)
			require.Equal(t, int64(5), st.KeyUnits)
		}
	}
}

func TestStreamPrefixSplitAcrossReads(t *testing.T) {
	t.Parallel()

	in := []byte{
		0x00, 0x00, 0x01, 0x42, 0x01, 0xaa, 0x00, 0x00,
		0x01, 0x26, 0x01, 0xcc, 0xdd, 0xee,
	}
	s := NewStreamScanner(newChunkReader(in, 8, 6), 64, hevcbs.MaxBatchUnits)
	batch, err := s.NextAccessUnit(make([]byte, 64))
	require.NoError(t, err)

	require.Equal(t, 2, batch.Len())
	require.Equal(t, []byte{0x00, 0x00, 0x01, 0x42, 0x01, 0xaa}, batch.Units[0].Payload)
	require.Equal(t, uint8(h265.NalUnitSps), batch.Units[0].Type)
	// The IDR slice is closed by the first start code of the next pass over the source.
	require.Equal(t, []byte{0x00, 0x00, 0x01, 0x26, 0x01, 0xcc, 0xdd, 0xee}, batch.Units[1].Payload)
	require.Equal(t, int64(1), s.Stats().Rewinds)
}

func TestStreamErrors(t *testing.T) {
	t.Parallel()

	sps := []byte{0x00, 0x00, 0x01, 0x42, 0x01, 0xaa}
	idr := []byte{0x00, 0x00, 0x01, 0x26, 0x01, 0xbb}

	t.Run("batch_overflow", func(t *testing.T) {
		t.Parallel()
		in := append(bytes.Repeat(sps, 6), idr...)
		_, err := NewStreamScanner(bytes.NewReader(in), 256, hevcbs.MaxBatchUnits).NextAccessUnit(make([]byte, 256))
		var target *utils.BatchOverflowError
		require.ErrorAs(t, err, &target)
		require.Equal(t, hevcbs.MaxBatchUnits, target.Max)
	})

	t.Run("destination_overflow", func(t *testing.T) {
		t.Parallel()
		in := append(append([]byte{}, sps...), idr...)
		_, err := NewStreamScanner(bytes.NewReader(in), 256, hevcbs.MaxBatchUnits).NextAccessUnit(make([]byte, 4))
		var target *utils.DestinationOverflowError
		require.ErrorAs(t, err, &target)
		require.Equal(t, len(sps), target.Need)
	})

	t.Run("capacity_exceeded", func(t *testing.T) {
		t.Parallel()
		long := append(append([]byte{}, sps...), bytes.Repeat([]byte{0x11}, 64)...)
		in := append(long, idr...)
		_, err := NewStreamScanner(bytes.NewReader(in), 32, hevcbs.MaxBatchUnits).NextAccessUnit(make([]byte, 256))
		var target *utils.CapacityExceededError
		require.ErrorAs(t, err, &target)
		require.Equal(t, 32, target.Capacity)
	})

	t.Run("empty_source", func(t *testing.T) {
		t.Parallel()
		_, err := NewStreamScanner(bytes.NewReader(nil), 32, hevcbs.MaxBatchUnits).NextAccessUnit(make([]byte, 32))
		var target *utils.EmptySourceError
		require.ErrorAs(t, err, &target)
	})

	t.Run("no_start_code", func(t *testing.T) {
		t.Parallel()
		in := bytes.Repeat([]byte{0x5a}, 10)
		_, err := NewStreamScanner(bytes.NewReader(in), 32, hevcbs.MaxBatchUnits).NextAccessUnit(make([]byte, 32))
		var target *utils.NoStartCodeError
		require.ErrorAs(t, err, &target)
	})

	t.Run("fatal_read", func(t *testing.T) {
		t.Parallel()
		_, err := NewStreamScanner(failingReader{}, 32, hevcbs.MaxBatchUnits).NextAccessUnit(make([]byte, 32))
		var target *utils.FatalIOError
		require.ErrorAs(t, err, &target)
	})
}
