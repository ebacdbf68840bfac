package cpu

// Fields holds the bit fields of one instruction's opcode and addressing byte.
type Fields struct {
	Direction Direction
	Size      Size
	Mode      Mode
	Reg       uint8
	RM        uint8
}

// DecodeOpcode extracts d (bit 1) and w (bit 0) from a register/memory opcode.
func DecodeOpcode(op byte) Fields {
	return Fields{
		Direction: Direction((op >> 1) & 1),
		Size:      Size(op & 1),
	}
}

// DecodeModRM fills mod, reg and r/m from the addressing byte.
func (f *Fields) DecodeModRM(b byte) {
	f.Mode = Mode(b >> 6)
	f.Reg = (b >> 3) & 7
	f.RM = b & 7
}

// ImmediateRegister extracts w (bit 3) and reg (bits 0-2) from 1011 wreg.
func ImmediateRegister(op byte) (Size, uint8) {
	return Size((op >> 3) & 1), op & 7
}

// EncodeModRM packs mod, reg and r/m into an addressing byte.
func EncodeModRM(mod Mode, reg, rm uint8) byte {
	return byte(mod)<<6 | (reg&7)<<3 | rm&7
}
