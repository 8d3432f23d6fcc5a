// Package endian provides the byte order engine used to pack fixed-point raws.
//
// EndianEngine combines binary.ByteOrder and binary.AppendByteOrder so the
// column codec can both write into preallocated slots and append. Columns
// record their byte order as a single header bit; Flag and FromFlag convert
// between the engine and that bit.
//
// All functions in this package are safe for concurrent use. The returned
// engines are immutable and stateless.
package endian

import (
	"encoding/binary"
	"fmt"
)

// EndianEngine combines ByteOrder and AppendByteOrder from encoding/binary.
//
// binary.LittleEndian and binary.BigEndian both satisfy it.
type EndianEngine interface {
	binary.ByteOrder
	binary.AppendByteOrder
}

// Header flag values for the two byte orders.
const (
	FlagLittle byte = 0x0
	FlagBig    byte = 0x1
)

// GetLittleEndianEngine returns the little-endian engine.
func GetLittleEndianEngine() EndianEngine {
	return binary.LittleEndian
}

// GetBigEndianEngine returns the big-endian engine.
func GetBigEndianEngine() EndianEngine {
	return binary.BigEndian
}

// GetNativeEngine returns the engine matching the host byte order.
func GetNativeEngine() EndianEngine {
	if IsNativeBigEndian() {
		return binary.BigEndian
	}

	return binary.LittleEndian
}

// IsNativeBigEndian reports whether the host is big-endian.
func IsNativeBigEndian() bool {
	// {0x00, 0x01} decodes to 1 only on big-endian hosts.
	return binary.NativeEndian.Uint16([]byte{0x00, 0x01}) == 0x0001
}

// IsBigEndian reports whether engine writes the most significant byte first.
func IsBigEndian(engine EndianEngine) bool {
	var b [2]byte
	engine.PutUint16(b[:], 0x0102)

	return b[0] == 0x01
}

// Flag returns the header flag of engine.
func Flag(engine EndianEngine) byte {
	if IsBigEndian(engine) {
		return FlagBig
	}

	return FlagLittle
}

// FromFlag returns the engine for a header flag.
func FromFlag(flag byte) (EndianEngine, error) {
	switch flag {
	case FlagLittle:
		return binary.LittleEndian, nil
	case FlagBig:
		return binary.BigEndian, nil
	default:
		return nil, fmt.Errorf("unknown byte order flag 0x%02x", flag)
	}
}
