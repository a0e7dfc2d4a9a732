package win32

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func buildChannelRecord(org, network byte, channelID uint16, first int32, deltas []int32) []byte {
	mode := PackByte8
	buf, _ := EncodeDeltas(mode, deltas)

	rec := make([]byte, 10+len(buf))
	rec[0] = org
	rec[1] = network
	rec[2] = byte(channelID >> 8)
	rec[3] = byte(channelID)
	meta := uint16(mode)<<12 | uint16(len(deltas)+1)
	rec[4] = byte(meta >> 8)
	rec[5] = byte(meta)
	rec[6] = byte(first >> 24)
	rec[7] = byte(first >> 16)
	rec[8] = byte(first >> 8)
	rec[9] = byte(first)
	copy(rec[10:], buf)
	return rec
}

func TestDecodeSecondBlock(t *testing.T) {
	ch1 := buildChannelRecord('J', 'N', 1, 1000, []int32{1, 1, -2})
	ch2 := buildChannelRecord('J', 'N', 2, 500, []int32{0, 5})

	var dataPayload []byte
	dataPayload = append(dataPayload, ch1...)
	dataPayload = append(dataPayload, ch2...)

	b := make([]byte, bcdTimeBytes+4+4+len(dataPayload))
	copy(b[0:bcdTimeBytes], bcdTimeBytes8(26, 3, 5, 12, 0, 0, 0))
	pos := bcdTimeBytes
	frameTenths := uint32(10) // 1.0 second
	b[pos] = byte(frameTenths >> 24)
	b[pos+1] = byte(frameTenths >> 16)
	b[pos+2] = byte(frameTenths >> 8)
	b[pos+3] = byte(frameTenths)
	pos += 4
	dl := uint32(len(dataPayload))
	b[pos] = byte(dl >> 24)
	b[pos+1] = byte(dl >> 16)
	b[pos+2] = byte(dl >> 8)
	b[pos+3] = byte(dl)
	pos += 4
	copy(b[pos:], dataPayload)

	blk, n, err := DecodeSecondBlock(b, 0)
	require.NoError(t, err)
	require.Equal(t, int64(len(b)), n)
	require.Equal(t, time.Duration(time.Second), blk.FrameDuration)
	require.Equal(t, 2026, blk.SamplingStart.Year())
	require.Len(t, blk.Channels, 2)
	require.Equal(t, uint16(1), blk.Channels[0].ChannelID)
	require.Equal(t, []int32{1000, 1001, 1002, 1000}, blk.Channels[0].Samples)
	require.Equal(t, uint16(2), blk.Channels[1].ChannelID)
	require.Equal(t, []int32{500, 500, 505}, blk.Channels[1].Samples)
}

// A channel record truncated to exactly 8 or 9 bytes has enough to pass
// an 8-byte bounds check but not enough for the 4-byte "first sample"
// field at offset 6; this must surface as a FormatError, not a slice
// panic.
func TestDecodeChannelRecordTruncated(t *testing.T) {
	for _, n := range []int{0, 1, 8, 9} {
		full := buildChannelRecord('J', 'N', 1, 1000, []int32{1, 1, -2})
		short := full[:n]

		_, _, err := decodeChannelRecord(short, 0)
		require.Error(t, err)

		var fe *FormatError
		require.ErrorAs(t, err, &fe)
		require.ErrorIs(t, err, ErrTruncated)
	}
}

func TestDecodeSecondBlockTruncatedChannelRecord(t *testing.T) {
	dataPayload := buildChannelRecord('J', 'N', 1, 1000, []int32{1, 1, -2})[:9]

	b := make([]byte, bcdTimeBytes+4+4+len(dataPayload))
	copy(b[0:bcdTimeBytes], bcdTimeBytes8(26, 3, 5, 12, 0, 0, 0))
	pos := bcdTimeBytes
	pos += 4 // frameTenths left zero
	dl := uint32(len(dataPayload))
	b[pos] = byte(dl >> 24)
	b[pos+1] = byte(dl >> 16)
	b[pos+2] = byte(dl >> 8)
	b[pos+3] = byte(dl)
	pos += 4
	copy(b[pos:], dataPayload)

	_, _, err := DecodeSecondBlock(b, 0)
	require.Error(t, err)

	var fe *FormatError
	require.ErrorAs(t, err, &fe)
	require.ErrorIs(t, err, ErrTruncated)
}
