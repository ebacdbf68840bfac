package disassembler

import (
	"errors"
	"fmt"
)

var (
	// ErrStreamExhausted is returned when an instruction runs past the end of the input.
	ErrStreamExhausted = errors.New("stream exhausted")
	// ErrUnsupportedOpcode is returned when no MOV encoding matches the leading byte.
	ErrUnsupportedOpcode = errors.New("unsupported opcode")
)

// StreamExhaustedError reports a truncated instruction.
type StreamExhaustedError struct {
	Offset int // offset of the first byte of the instruction
	Need   int // bytes from Offset required by the read that failed
	Have   int // bytes remaining from Offset
}

func (e *StreamExhaustedError) Error() string {
	return fmt.Sprintf("%s at offset %d: needs at least %d bytes, %d left",
		ErrStreamExhausted, e.Offset, e.Need, e.Have)
}

func (e *StreamExhaustedError) Unwrap() error {
	return ErrStreamExhausted
}

// UnsupportedOpcodeError reports a leading byte outside the MOV family.
type UnsupportedOpcodeError struct {
	Offset int
	Opcode byte
}

func (e *UnsupportedOpcodeError) Error() string {
	return fmt.Sprintf("%s 0x%02x (%08b) at offset %d", ErrUnsupportedOpcode, e.Opcode, e.Opcode, e.Offset)
}

func (e *UnsupportedOpcodeError) Unwrap() error {
	return ErrUnsupportedOpcode
}
