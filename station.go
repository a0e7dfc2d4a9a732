package knet

import "time"

// JST is Japan Standard Time (UTC+9), the timezone every on-disk Kyoshin
// WIN32 timestamp is expressed in.
var JST = time.FixedZone("JST", 9*3600)

// StationComponent describes one sensor channel's calibration: how a
// digitized sample converts to a physical measurement.
type StationComponent struct {
	Organization     string
	Network          string
	ChannelID        uint16
	ScaleNumerator   int16
	Gain             uint8
	Unit             ComponentUnit
	ScaleDenominator int32
	Offset           int32
	MeasurementRange int32
}

// ToPhysical converts a digitized sample to its physical value:
// scaleNumerator / scaleDenominator * (d - offset) / gain.
// Defined for all int32 d given a validly constructed component (gain and
// scaleDenominator are both guaranteed nonzero by the decoder).
func (c StationComponent) ToPhysical(d int32) float64 {
	return float64(c.ScaleNumerator) / float64(c.ScaleDenominator) *
		float64(d-c.Offset) / float64(c.Gain)
}

// StationInfo carries the per-station metadata decoded from a WIN32 info
// block: location, timing, and the calibration of every channel.
type StationInfo struct {
	Latitude            ScaledNumber
	Longitude           ScaledNumber
	Altitude            ScaledNumber
	UndergroundAltitude *ScaledNumber // nil when the station has no borehole sensor

	StationCode string // ASCII, <=12 chars, trailing NULs trimmed

	DataStartTime      time.Time // JST, ms precision
	MeasurementTenths  uint32    // measurement duration, tenths of a second
	LastFixingTime     time.Time
	FixingMethod       uint8
	GeodeticSystem     uint8
	StationType        uint8
	SampleRate         uint16
	ComponentCount     uint8
	Redeployed         bool

	Components []StationComponent
}

// HypocenterInfo carries the origin parameters of an associated
// earthquake. Absent (nil) for instant/real-time packets.
type HypocenterInfo struct {
	OriginTime     time.Time // JST
	Latitude       *ScaledNumber
	Longitude      *ScaledNumber
	Depth          *ScaledNumber
	Magnitude      *ScaledNumber
	GeodeticSystem uint8
	HypocenterType uint8
}

// ChannelData holds one channel's decoded integer waveform for a single
// second block, plus the raw byte length consumed for block chaining.
type ChannelData struct {
	Organization string
	Network      string
	ChannelID    uint16
	Data         []int32

	byteLength int
}

// SecondBlock is one second of multi-channel sample data.
type SecondBlock struct {
	SamplingStart time.Time // JST
	FrameDuration time.Duration
	Channels      []ChannelData
}

// Data is the fully decoded contents of a Kyoshin WIN32 container.
type Data struct {
	Organization byte
	Network      byte
	StationID    uint16

	StationInfo    *StationInfo
	HypocenterInfo *HypocenterInfo
	Seconds        []SecondBlock
}
