package format

import (
	"encoding/binary"
	"math"
)

// Little-endian append helpers for the bulk wire encoding. Records are built
// by appending into a growing buffer, so these mirror the binary.Append*
// shape rather than offset-based writes. encoding/binary is used directly;
// the compiler inlines these calls well enough that nothing faster is
// needed.

// AppendU8 appends a single byte.
func AppendU8(b []byte, v uint8) []byte {
	return append(b, v)
}

// AppendU16 appends a uint16 in little-endian order.
func AppendU16(b []byte, v uint16) []byte {
	return binary.LittleEndian.AppendUint16(b, v)
}

// AppendU32 appends a uint32 in little-endian order.
func AppendU32(b []byte, v uint32) []byte {
	return binary.LittleEndian.AppendUint32(b, v)
}

// AppendU64 appends a uint64 in little-endian order.
func AppendU64(b []byte, v uint64) []byte {
	return binary.LittleEndian.AppendUint64(b, v)
}

// AppendI64 appends an int64 in little-endian order.
func AppendI64(b []byte, v int64) []byte {
	return binary.LittleEndian.AppendUint64(b, uint64(v))
}

// AppendF64 appends a float64 as its IEEE 754 bits in little-endian order.
func AppendF64(b []byte, v float64) []byte {
	return binary.LittleEndian.AppendUint64(b, math.Float64bits(v))
}
