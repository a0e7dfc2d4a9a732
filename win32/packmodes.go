package win32

import "errors"

var ErrUnknownPackMode = errors.New("win32: unknown differential pack mode")

// PackMode identifies how a channel record's differential samples are
// encoded, carried in the high 4 bits of the channel's sampleMeta field.
type PackMode uint8

const (
	PackNibble4 PackMode = 0
	PackByte8   PackMode = 1
	PackWord16  PackMode = 2
	PackWord24  PackMode = 3
	PackWord32  PackMode = 4
)

// DiffByteLen returns the number of bytes occupied by diffCount
// differential deltas encoded in mode, or an error for unknown modes.
func DiffByteLen(mode PackMode, diffCount int) (int, error) {
	switch mode {
	case PackNibble4:
		return (diffCount + 1) / 2, nil
	case PackByte8:
		return diffCount, nil
	case PackWord16:
		return 2 * diffCount, nil
	case PackWord24:
		return 3 * diffCount, nil
	case PackWord32:
		return 4 * diffCount, nil
	default:
		return 0, ErrUnknownPackMode
	}
}

// DecodeDeltas reconstructs diffCount signed deltas from their
// differential-packed encoding in mode.
func DecodeDeltas(mode PackMode, diffCount int, buf []byte) ([]int32, error) {
	deltas := make([]int32, diffCount)

	switch mode {
	case PackNibble4:
		for i := 0; i < diffCount; i++ {
			byteIdx := i / 2
			b := buf[byteIdx]
			var nibble byte
			if i%2 == 0 {
				nibble = b >> 4
			} else {
				nibble = b & 0x0F
			}
			deltas[i] = int32(signExtendNibble(nibble))
		}
	case PackByte8:
		for i := 0; i < diffCount; i++ {
			deltas[i] = int32(ReadInt8(buf[i]))
		}
	case PackWord16:
		for i := 0; i < diffCount; i++ {
			deltas[i] = int32(ReadInt16(buf[2*i : 2*i+2]))
		}
	case PackWord24:
		for i := 0; i < diffCount; i++ {
			deltas[i] = ReadInt24(buf[3*i : 3*i+3])
		}
	case PackWord32:
		for i := 0; i < diffCount; i++ {
			deltas[i] = ReadInt32(buf[4*i : 4*i+4])
		}
	default:
		return nil, ErrUnknownPackMode
	}

	return deltas, nil
}

// EncodeDeltas is the inverse of DecodeDeltas, used by round-trip tests
// and by future encoder tooling. Deltas outside mode's dynamic range
// produce a silently truncated encoding, matching the wire format's own
// fixed-width behavior.
func EncodeDeltas(mode PackMode, deltas []int32) ([]byte, error) {
	n, err := DiffByteLen(mode, len(deltas))
	if err != nil {
		return nil, err
	}
	buf := make([]byte, n)

	switch mode {
	case PackNibble4:
		for i, d := range deltas {
			nibble := byte(d) & 0x0F
			byteIdx := i / 2
			if i%2 == 0 {
				buf[byteIdx] |= nibble << 4
			} else {
				buf[byteIdx] |= nibble
			}
		}
	case PackByte8:
		for i, d := range deltas {
			buf[i] = byte(int8(d))
		}
	case PackWord16:
		for i, d := range deltas {
			buf[2*i] = byte(int16(d) >> 8)
			buf[2*i+1] = byte(int16(d))
		}
	case PackWord24:
		for i, d := range deltas {
			buf[3*i] = byte(d >> 16)
			buf[3*i+1] = byte(d >> 8)
			buf[3*i+2] = byte(d)
		}
	case PackWord32:
		for i, d := range deltas {
			buf[4*i] = byte(d >> 24)
			buf[4*i+1] = byte(d >> 16)
			buf[4*i+2] = byte(d >> 8)
			buf[4*i+3] = byte(d)
		}
	default:
		return nil, ErrUnknownPackMode
	}

	return buf, nil
}

// signExtendNibble sign-extends a 4-bit two's-complement value to int8.
func signExtendNibble(n byte) int8 {
	v := int8(n)
	if n&0x08 != 0 {
		v -= 16
	}
	return v
}

// ReconstructSamples rebuilds the full sample sequence from a first value
// and its trailing deltas: samples[0] = first, samples[i] = samples[i-1] + delta[i-1].
func ReconstructSamples(first int32, deltas []int32) []int32 {
	samples := make([]int32, len(deltas)+1)
	samples[0] = first
	for i, d := range deltas {
		samples[i+1] = samples[i] + d
	}
	return samples
}
