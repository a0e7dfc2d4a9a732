package knet

import "fmt"

// UnitKind identifies the physical quantity a StationComponent measures.
type UnitKind uint8

const (
	UnitNone UnitKind = iota
	UnitMeter
	UnitMeterPerSecond
	UnitMeterPerSecondSquared
)

func (k UnitKind) String() string {
	switch k {
	case UnitMeter:
		return "m"
	case UnitMeterPerSecond:
		return "m/s"
	case UnitMeterPerSecondSquared:
		return "m/s^2"
	default:
		return "none"
	}
}

// ComponentUnit packs a decimal scale (0..15) and a UnitKind into one byte,
// matching the Kyoshin WIN32 on-disk encoding (scale<<4)|kind.
type ComponentUnit struct {
	Scale uint8
	Kind  UnitKind
}

// DecodeComponentUnit unpacks a single calibration byte into a ComponentUnit.
func DecodeComponentUnit(b byte) ComponentUnit {
	return ComponentUnit{
		Scale: b >> 4,
		Kind:  UnitKind(b & 0x0F),
	}
}

// Byte repacks the unit into its one-byte wire encoding.
func (u ComponentUnit) Byte() byte {
	return (u.Scale << 4) | byte(u.Kind)
}

// ScaleFactor is 10^(-Scale), the multiplier that converts a digitized
// measurement expressed at this unit's resolution into the unit's base.
func (u ComponentUnit) ScaleFactor() float64 {
	f := 1.0
	for i := uint8(0); i < u.Scale; i++ {
		f /= 10
	}
	return f
}

func (u ComponentUnit) String() string {
	return fmt.Sprintf("%s x1e-%d", u.Kind, u.Scale)
}
