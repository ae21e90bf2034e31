package annexb

import (
	"bytes"
	"math/rand"
	"testing"

	"github.com/bluenviron/mediacommon/pkg/codecs/h264"
	"github.com/stretchr/testify/require"
	"github.com/ugparu/hevcbs/codec/h265"
	"github.com/ugparu/hevcbs/utils/nal"
)

// TestDemuxMatchesAnnexBUnmarshal checks the incremental split against mediacommon's
// whole-buffer Annex-B parser, with the start codes removed from our units.
func TestDemuxMatchesAnnexBUnmarshal(t *testing.T) {
	t.Parallel()

	types := []uint8{
		h265.NalUnitVps, h265.NalUnitSps, h265.NalUnitPps, h265.NalUnitPrefixSei,
		h265.NalUnitCodedSliceIdrWRadl, h265.NalUnitCodedSliceTrailR, h265.NalUnitCodedSliceTrailR,
		h265.NalUnitCodedSliceTsaN, h265.NalUnitSuffixSei, h265.NalUnitAccessUnitDelimiter,
	}

	for _, size := range []int{nal.MinResident, 16, 64, DefaultReadSize} {
		in, _ := genStream(rand.New(rand.NewSource(int64(size))), types, 40)

		want, err := h264.AnnexBUnmarshal(in)
		require.NoError(t, err)

		sink := &memSink{}
		_, err = NewDemuxer(bytes.NewReader(in), sink, size).Demux()
		require.NoError(t, err)
		require.Len(t, sink.units, len(want))

		for i, u := range sink.units {
			prefix, ok := nal.StartCode(u.data, 0)
			require.True(t, ok)
			require.Equal(t, want[i], u.data[prefix:], "unit %d, region %d", i, size)
			require.Equal(t, h265.NalType(want[i][0]), u.typ)
		}
	}
}
