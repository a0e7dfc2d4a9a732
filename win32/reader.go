// Package win32 decodes the Kyoshin WIN32 (K-NET binary) container: the
// nested big-endian block format, BCD-encoded geodetic and temporal
// fields, and the differential-packed waveform codec.
package win32

import "encoding/binary"

// ReadUint16 reads a big-endian uint16. Callers are expected to have
// already bounds-checked b via must().
func ReadUint16(b []byte) uint16 {
	return binary.BigEndian.Uint16(b)
}

// ReadUint32 reads a big-endian uint32.
func ReadUint32(b []byte) uint32 {
	return binary.BigEndian.Uint32(b)
}

// ReadInt32 reads a big-endian signed 32-bit integer.
func ReadInt32(b []byte) int32 {
	return int32(binary.BigEndian.Uint32(b))
}

// ReadInt24 reads a signed, big-endian 24-bit integer with sign
// extension, without relying on host endianness.
func ReadInt24(b []byte) int32 {
	u := uint32(b[0])<<16 | uint32(b[1])<<8 | uint32(b[2])
	if u&0x800000 != 0 {
		u |= 0xFF000000
	}
	return int32(u)
}

// ReadInt16 reads a signed, big-endian 16-bit integer.
func ReadInt16(b []byte) int16 {
	return int16(binary.BigEndian.Uint16(b))
}

// ReadInt8 reinterprets a byte as a signed 8-bit delta.
func ReadInt8(b byte) int8 {
	return int8(b)
}
