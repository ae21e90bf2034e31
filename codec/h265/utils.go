package h265

import "strconv"

const (
	NalUnitCodedSliceTrailN    = 0
	NalUnitCodedSliceTrailR    = 1
	NalUnitCodedSliceTsaN      = 2
	NalUnitCodedSliceTsaR      = 3
	NalUnitCodedSliceStsaN     = 4
	NalUnitCodedSliceStsaR     = 5
	NalUnitCodedSliceRadlN     = 6
	NalUnitCodedSliceRadlR     = 7
	NalUnitCodedSliceRaslN     = 8
	NalUnitCodedSliceRaslR     = 9
	NalUnitCodedSliceBlaWLp    = 16
	NalUnitCodedSliceBlaWRadl  = 17
	NalUnitCodedSliceBlaNLp    = 18
	NalUnitCodedSliceIdrWRadl  = 19
	NalUnitCodedSliceIdrNLp    = 20
	NalUnitCodedSliceCra       = 21
	NalUnitVps                 = 32
	NalUnitSps                 = 33
	NalUnitPps                 = 34
	NalUnitAccessUnitDelimiter = 35
	NalUnitEos                 = 36
	NalUnitEob                 = 37
	NalUnitFillerData          = 38
	NalUnitPrefixSei           = 39
	NalUnitSuffixSei           = 40
	NalUnitInvalid             = 64

	nalTypeMask = 0x3f
)

var nalTypeNames = map[uint8]string{
	NalUnitCodedSliceTrailN:    "TRAIL_N",
	NalUnitCodedSliceTrailR:    "TRAIL_R",
	NalUnitCodedSliceTsaN:      "TSA_N",
	NalUnitCodedSliceTsaR:      "TSA_R",
	NalUnitCodedSliceStsaN:     "STSA_N",
	NalUnitCodedSliceStsaR:     "STSA_R",
	NalUnitCodedSliceRadlN:     "RADL_N",
	NalUnitCodedSliceRadlR:     "RADL_R",
	NalUnitCodedSliceRaslN:     "RASL_N",
	NalUnitCodedSliceRaslR:     "RASL_R",
	NalUnitCodedSliceBlaWLp:    "BLA_W_LP",
	NalUnitCodedSliceBlaWRadl:  "BLA_W_RADL",
	NalUnitCodedSliceBlaNLp:    "BLA_N_LP",
	NalUnitCodedSliceIdrWRadl:  "IDR_W_RADL",
	NalUnitCodedSliceIdrNLp:    "IDR_N_LP",
	NalUnitCodedSliceCra:       "CRA",
	NalUnitVps:                 "VPS",
	NalUnitSps:                 "SPS",
	NalUnitPps:                 "PPS",
	NalUnitAccessUnitDelimiter: "AUD",
	NalUnitEos:                 "EOS",
	NalUnitEob:                 "EOB",
	NalUnitFillerData:          "FD",
	NalUnitPrefixSei:           "PREFIX_SEI",
	NalUnitSuffixSei:           "SUFFIX_SEI",
}

// NalType extracts nal_unit_type from the first byte of the two-byte NAL header:
// forbidden_zero_bit(1) | nal_unit_type(6) | nuh_layer_id high bit(1).
func NalType(header byte) uint8 {
	return (header >> 1) & nalTypeMask
}

// TypeName returns a short mnemonic for a NAL unit type.
func TypeName(typ uint8) string {
	if name, ok := nalTypeNames[typ]; ok {
		return name
	}
	if typ >= NalUnitInvalid {
		return "INVALID"
	}
	return "RSV_" + strconv.Itoa(int(typ))
}

// IsAccessUnitEnd reports whether a unit of this type closes an access unit when the
// stream is encoded with one slice per picture (IDR_W_RADL keyframes, TRAIL_R otherwise).
func IsAccessUnitEnd(typ uint8) bool {
	return typ == NalUnitCodedSliceIdrWRadl || typ == NalUnitCodedSliceTrailR
}

// IsVCL reports whether the type carries coded slice data.
func IsVCL(typ uint8) bool {
	return typ < NalUnitVps
}

// IsKey reports whether the type is an intra random access point slice (BLA, IDR or CRA).
func IsKey(naluType uint8) bool {
	return naluType >= NalUnitCodedSliceBlaWLp && naluType <= NalUnitCodedSliceCra
}
