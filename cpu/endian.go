package cpu

import (
	"encoding/binary"
)

// Word reads a little-endian 16-bit value from the first two bytes of b.
func Word(b []byte) uint16 {
	return binary.LittleEndian.Uint16(b)
}

// PutWord appends v to b in little-endian order.
func PutWord(b []byte, v uint16) []byte {
	return binary.LittleEndian.AppendUint16(b, v)
}

// SignExtend widens an 8-bit displacement to 16 bits.
func SignExtend(b byte) int16 {
	return int16(int8(b))
}
