package disassembler

import (
	"slices"

	"github.com/Urethramancer/i8086/cpu"
)

// cursor is a forward-only reader over one instruction stream.
// start marks the first byte of the instruction being decoded.
type cursor struct {
	code  []byte
	pos   int
	start int
}

func (c *cursor) done() bool {
	return c.pos >= len(c.code)
}

// begin marks the current position as the start of a new instruction.
func (c *cursor) begin() {
	c.start = c.pos
}

func (c *cursor) exhausted(n int) error {
	return &StreamExhaustedError{
		Offset: c.start,
		Need:   c.pos - c.start + n,
		Have:   max(len(c.code)-c.start, 0),
	}
}

func (c *cursor) readByte() (byte, error) {
	if c.pos+1 > len(c.code) {
		return 0, c.exhausted(1)
	}
	b := c.code[c.pos]
	c.pos++
	return b, nil
}

func (c *cursor) readWord() (uint16, error) {
	if c.pos+2 > len(c.code) {
		return 0, c.exhausted(2)
	}
	w := cpu.Word(c.code[c.pos:])
	c.pos += 2
	return w, nil
}

// readImmediate reads one or two bytes depending on size.
func (c *cursor) readImmediate(s cpu.Size) (uint16, error) {
	if s == cpu.SizeWord {
		return c.readWord()
	}
	b, err := c.readByte()
	return uint16(b), err
}

// consumed returns a copy of the bytes of the current instruction.
func (c *cursor) consumed() []byte {
	return slices.Clone(c.code[c.start:c.pos])
}
