package win32

import "time"

// ChannelRecord is one channel's reconstructed waveform within a second
// block, plus the raw byte length it occupied for block chaining.
type ChannelRecord struct {
	Organization byte
	Network      byte
	ChannelID    uint16
	Samples      []int32
	ByteLength   int
}

// SecondBlock is one second of multi-channel sample data.
type SecondBlock struct {
	SamplingStart time.Time
	FrameDuration time.Duration
	Channels      []ChannelRecord
}

// DecodeSecondBlock parses one second block starting at the beginning of
// b, returning the block and the number of bytes it consumed.
func DecodeSecondBlock(b []byte, offset int64) (SecondBlock, int64, error) {
	var blk SecondBlock

	if err := must(b, bcdTimeBytes+8, offset); err != nil {
		return blk, 0, err
	}

	var timeRaw [8]byte
	copy(timeRaw[:], b[0:bcdTimeBytes])
	start, err := DecodeBCDTime(timeRaw, time.FixedZone("JST", 9*3600))
	if err != nil {
		return blk, 0, wrapBCDErr(err, offset)
	}
	blk.SamplingStart = start

	pos := bcdTimeBytes
	frameTenths := ReadUint32(b[pos : pos+4])
	blk.FrameDuration = time.Duration(frameTenths) * 100 * time.Millisecond
	pos += 4

	dataLen := ReadUint32(b[pos : pos+4])
	pos += 4

	if err := must(b, pos+int(dataLen), offset+int64(pos)); err != nil {
		return blk, 0, err
	}
	payload := b[pos : pos+int(dataLen)]

	var consumed int
	for consumed < int(dataLen) {
		rec, n, err := decodeChannelRecord(payload[consumed:], offset+int64(pos)+int64(consumed))
		if err != nil {
			return blk, 0, err
		}
		blk.Channels = append(blk.Channels, rec)
		consumed += n
	}

	pos += int(dataLen)
	return blk, int64(pos), nil
}

func decodeChannelRecord(b []byte, offset int64) (ChannelRecord, int, error) {
	const headerBytes = 10
	if err := must(b, headerBytes, offset); err != nil {
		return ChannelRecord{}, 0, err
	}

	org := b[0]
	net := b[1]
	channelID := ReadUint16(b[2:4])
	meta := ReadUint16(b[4:6])
	mode := PackMode(meta >> 12)
	sampleCount := int(meta & 0x0FFF)
	first := ReadInt32(b[6:10])

	diffCount := sampleCount - 1
	if diffCount < 0 {
		diffCount = 0
	}

	diffBytes, err := DiffByteLen(mode, diffCount)
	if err != nil {
		return ChannelRecord{}, 0, &FormatError{Offset: offset, Err: err}
	}

	if err := must(b, headerBytes+diffBytes, offset); err != nil {
		return ChannelRecord{}, 0, err
	}

	deltas, err := DecodeDeltas(mode, diffCount, b[headerBytes:headerBytes+diffBytes])
	if err != nil {
		return ChannelRecord{}, 0, &FormatError{Offset: offset + headerBytes, Err: err}
	}

	samples := ReconstructSamples(first, deltas)
	n := headerBytes + diffBytes

	return ChannelRecord{
		Organization: org,
		Network:      net,
		ChannelID:    channelID,
		Samples:      samples,
		ByteLength:   n,
	}, n, nil
}
