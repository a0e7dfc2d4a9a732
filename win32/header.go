package win32

import (
	"bytes"
	"errors"
	"time"
)

var ErrBadMagic = errors.New("win32: bad magic bytes")
var ErrTruncated = errors.New("win32: truncated stream")

const (
	subrecordStationInfoNoGround = 0xE000
	subrecordStationInfoGround   = 0xE001
	subrecordHypocenterInfo      = 0xE020

	coordinateFieldBytes  = 4 // 8 BCD nibbles
	coordinateIntegral    = 3
	altitudeFieldBytes    = 4 // sign nibble + 7 digit nibbles
	altitudeIntegral      = 3
	magnitudeFieldBytes   = 4
	magnitudeIntegral     = 2
	componentRecordBytes  = 20
	stationCodeBytes      = 12
	bcdTimeBytes          = 8
)

// Component mirrors knet.StationComponent's wire fields, decoded without
// any knowledge of the parent package's types.
type Component struct {
	Organization     byte
	Network          byte
	ChannelID        uint16
	ScaleNumerator   int16
	Gain             uint8
	Unit             byte
	ScaleDenominator int32
	Offset           int32
	MeasurementRange int32
}

// StationInfo mirrors knet.StationInfo's wire fields.
type StationInfo struct {
	Latitude            ScaledField
	Longitude           ScaledField
	Altitude            ScaledField
	UndergroundAltitude *ScaledField

	StationCode string

	DataStartTime     time.Time
	MeasurementTenths uint32
	LastFixingTime    time.Time
	FixingMethod      byte
	GeodeticSystem    byte
	StationType       byte
	SampleRate        uint16
	ComponentCount    byte
	Redeployed        bool

	Components []Component
}

// HypocenterInfo mirrors knet.HypocenterInfo's wire fields.
type HypocenterInfo struct {
	OriginTime     time.Time
	Latitude       *ScaledField
	Longitude      *ScaledField
	Depth          *ScaledField
	Magnitude      *ScaledField
	GeodeticSystem byte
	HypocenterType byte
}

// InfoBlock is the decoded contents of the leading info block: the
// station identification and whichever optional subrecords were present.
type InfoBlock struct {
	Organization byte
	Network      byte
	StationID    uint16

	Station    *StationInfo
	Hypocenter *HypocenterInfo
}

func must(b []byte, n int, offset int64) error {
	if len(b) < n {
		return &FormatError{Offset: offset, Err: ErrTruncated}
	}
	return nil
}

// FormatError wraps a structural decode failure with the byte offset it
// was detected at. The decoder never attempts resynchronization.
type FormatError struct {
	Offset int64
	Err    error
}

func (e *FormatError) Error() string { return "win32: format error" }
func (e *FormatError) Unwrap() error { return e.Err }

// DecodeHeader parses the fixed 4-byte magic and the info block that
// follows it, returning the InfoBlock and the byte offset of the first
// second block.
func DecodeHeader(b []byte) (InfoBlock, int64, error) {
	var blk InfoBlock

	if err := must(b, 4, 0); err != nil {
		return blk, 0, err
	}
	if b[0] != 0x0A || b[1] != 0x02 {
		return blk, 0, &FormatError{Offset: 0, Err: ErrBadMagic}
	}

	offset := int64(4)
	if err := must(b, int(offset)+12, offset); err != nil {
		return blk, 0, err
	}
	if b[offset] != 0x0C {
		return blk, 0, &FormatError{Offset: offset, Err: ErrBadMagic}
	}

	// the three bytes after the 0x0C marker are reserved
	blk.Organization = b[offset+4]
	blk.Network = b[offset+5]
	blk.StationID = ReadUint16(b[offset+6 : offset+8])
	infoLen := ReadUint32(b[offset+8 : offset+12])
	offset += 12

	if err := must(b, int(offset)+int(infoLen), offset); err != nil {
		return blk, 0, err
	}
	payload := b[offset : int64(offset)+int64(infoLen)]

	var consumed uint32
	for consumed < infoLen {
		if err := must(payload, int(consumed)+4, offset+int64(consumed)); err != nil {
			return blk, 0, err
		}
		typ := ReadUint16(payload[consumed : consumed+2])
		plen := ReadUint16(payload[consumed+2 : consumed+4])
		start := consumed + 4
		end := start + uint32(plen)
		if err := must(payload, int(end), offset+int64(start)); err != nil {
			return blk, 0, err
		}
		sub := payload[start:end]

		switch typ {
		case subrecordStationInfoNoGround:
			si, err := decodeStationInfo(sub, false, offset+int64(start))
			if err != nil {
				return blk, 0, err
			}
			blk.Station = si
		case subrecordStationInfoGround:
			si, err := decodeStationInfo(sub, true, offset+int64(start))
			if err != nil {
				return blk, 0, err
			}
			blk.Station = si
		case subrecordHypocenterInfo:
			hi, err := decodeHypocenterInfo(sub, offset+int64(start))
			if err != nil {
				return blk, 0, err
			}
			blk.Hypocenter = hi
		default:
			// unknown subrecord type: skip
		}

		consumed = end
	}

	return blk, offset + int64(infoLen), nil
}

func wrapBCDErr(err error, offset int64) error {
	if err == nil {
		return nil
	}
	return &FormatError{Offset: offset, Err: err}
}

func decodeStationInfo(b []byte, hasUnderground bool, offset int64) (*StationInfo, error) {
	pos := 0
	si := &StationInfo{}

	// Fixed-width prefix up to and including the redeployed flag; the
	// per-component loop below bounds-checks its own variable-length tail.
	fixedLen := 2*coordinateFieldBytes + altitudeFieldBytes + stationCodeBytes +
		2*bcdTimeBytes + 4 + 3 + 2 + 1 + 1
	if hasUnderground {
		fixedLen += altitudeFieldBytes
	}
	if err := must(b, fixedLen, offset); err != nil {
		return nil, err
	}

	lat, err := DecodeLatitude(b[pos:pos+coordinateFieldBytes], coordinateIntegral)
	if err != nil {
		return nil, wrapBCDErr(err, offset+int64(pos))
	}
	if lat != nil {
		si.Latitude = *lat
	}
	pos += coordinateFieldBytes

	lon, err := DecodeLongitude(b[pos:pos+coordinateFieldBytes], coordinateIntegral)
	if err != nil {
		return nil, wrapBCDErr(err, offset+int64(pos))
	}
	if lon != nil {
		si.Longitude = *lon
	}
	pos += coordinateFieldBytes

	alt, err := DecodeBCDAltitude(b[pos:pos+altitudeFieldBytes], altitudeIntegral)
	if err != nil {
		return nil, wrapBCDErr(err, offset+int64(pos))
	}
	if alt != nil {
		si.Altitude = *alt
	}
	pos += altitudeFieldBytes

	if hasUnderground {
		ua, err := DecodeBCDAltitude(b[pos:pos+altitudeFieldBytes], altitudeIntegral)
		if err != nil {
			return nil, wrapBCDErr(err, offset+int64(pos))
		}
		si.UndergroundAltitude = ua
		pos += altitudeFieldBytes
	}

	si.StationCode = string(bytes.TrimRight(b[pos:pos+stationCodeBytes], "\x00"))
	pos += stationCodeBytes

	var startRaw [8]byte
	copy(startRaw[:], b[pos:pos+bcdTimeBytes])
	startTime, err := DecodeBCDTime(startRaw, time.FixedZone("JST", 9*3600))
	if err != nil {
		return nil, wrapBCDErr(err, offset+int64(pos))
	}
	si.DataStartTime = startTime
	pos += bcdTimeBytes

	si.MeasurementTenths = ReadUint32(b[pos : pos+4])
	pos += 4

	var fixRaw [8]byte
	copy(fixRaw[:], b[pos:pos+bcdTimeBytes])
	fixTime, err := DecodeBCDTime(fixRaw, time.FixedZone("JST", 9*3600))
	if err != nil {
		return nil, wrapBCDErr(err, offset+int64(pos))
	}
	si.LastFixingTime = fixTime
	pos += bcdTimeBytes

	si.FixingMethod = b[pos]
	si.GeodeticSystem = b[pos+1]
	si.StationType = b[pos+2]
	pos += 3

	si.SampleRate = ReadUint16(b[pos : pos+2])
	pos += 2
	si.ComponentCount = b[pos]
	pos++
	si.Redeployed = b[pos] != 0
	pos++

	si.Components = make([]Component, 0, si.ComponentCount)
	for i := 0; i < int(si.ComponentCount); i++ {
		if err := must(b, pos+componentRecordBytes, offset+int64(pos)); err != nil {
			return nil, err
		}
		c := Component{
			Organization:     b[pos],
			Network:          b[pos+1],
			ChannelID:        ReadUint16(b[pos+2 : pos+4]),
			ScaleNumerator:   ReadInt16(b[pos+4 : pos+6]),
			Gain:             b[pos+6],
			Unit:             b[pos+7],
			ScaleDenominator: ReadInt32(b[pos+8 : pos+12]),
			Offset:           ReadInt32(b[pos+12 : pos+16]),
			MeasurementRange: ReadInt32(b[pos+16 : pos+20]),
		}
		if c.Gain == 0 || c.ScaleDenominator == 0 {
			return nil, &FormatError{Offset: offset + int64(pos), Err: errors.New("win32: zero gain or scale denominator")}
		}
		si.Components = append(si.Components, c)
		pos += componentRecordBytes
	}

	return si, nil
}

func decodeHypocenterInfo(b []byte, offset int64) (*HypocenterInfo, error) {
	pos := 0
	hi := &HypocenterInfo{}

	const fixedLen = bcdTimeBytes + 3*coordinateFieldBytes + magnitudeFieldBytes + 2
	if err := must(b, fixedLen, offset); err != nil {
		return nil, err
	}

	var originRaw [8]byte
	copy(originRaw[:], b[pos:pos+bcdTimeBytes])
	originTime, err := DecodeBCDTime(originRaw, time.FixedZone("JST", 9*3600))
	if err != nil {
		return nil, wrapBCDErr(err, offset+int64(pos))
	}
	hi.OriginTime = originTime
	pos += bcdTimeBytes

	lat, err := DecodeLatitude(b[pos:pos+coordinateFieldBytes], coordinateIntegral)
	if err != nil {
		return nil, wrapBCDErr(err, offset+int64(pos))
	}
	hi.Latitude = lat
	pos += coordinateFieldBytes

	lon, err := DecodeLongitude(b[pos:pos+coordinateFieldBytes], coordinateIntegral)
	if err != nil {
		return nil, wrapBCDErr(err, offset+int64(pos))
	}
	hi.Longitude = lon
	pos += coordinateFieldBytes

	depth, err := DecodeBCDField(b[pos:pos+coordinateFieldBytes], coordinateIntegral)
	if err != nil {
		return nil, wrapBCDErr(err, offset+int64(pos))
	}
	hi.Depth = depth
	pos += coordinateFieldBytes

	mag, err := DecodeBCDField(b[pos:pos+magnitudeFieldBytes], magnitudeIntegral)
	if err != nil {
		return nil, wrapBCDErr(err, offset+int64(pos))
	}
	hi.Magnitude = mag
	pos += magnitudeFieldBytes

	hi.GeodeticSystem = b[pos]
	hi.HypocenterType = b[pos+1]

	return hi, nil
}
