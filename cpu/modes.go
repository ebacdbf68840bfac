package cpu

// Mode is the 2-bit mod field of the addressing byte.
type Mode uint8

const (
	// 00: memory, no displacement (except r/m 110: direct address)
	ModeMemNoDisp Mode = 0

	// 01: memory, 8-bit signed displacement
	ModeMemDisp8 Mode = 1

	// 10: memory, 16-bit displacement
	ModeMemDisp16 Mode = 2

	// 11: register direct
	ModeRegister Mode = 3
)

// DispBytes returns how many displacement bytes follow the addressing byte.
func DispBytes(mod Mode, rm uint8) int {
	switch mod {
	case ModeMemNoDisp:
		if rm == RMDirect {
			return 2
		}
		return 0
	case ModeMemDisp8:
		return 1
	case ModeMemDisp16:
		return 2
	}
	return 0
}

// RMDirect is the r/m value that means "direct address" under ModeMemNoDisp.
const RMDirect = 6

// Register numbers, shared by the byte and word tables.
const (
	AL, AX = 0, 0
	CL, CX = 1, 1
	DL, DX = 2, 2
	BL, BX = 3, 3
	AH, SP = 4, 4
	CH, BP = 5, 5
	DH, SI = 6, 6
	BH, DI = 7, 7
)

// ByteRegisters names the registers selected when w = 0.
var ByteRegisters = [8]string{"al", "cl", "dl", "bl", "ah", "ch", "dh", "bh"}

// WordRegisters names the registers selected when w = 1.
var WordRegisters = [8]string{"ax", "cx", "dx", "bx", "sp", "bp", "si", "di"}

// EffectiveAddresses are the base expressions for each r/m under memory modes.
var EffectiveAddresses = [8]string{
	"bx + si",
	"bx + di",
	"bp + si",
	"bp + di",
	"si",
	"di",
	"bp",
	"bx",
}

// RegisterTable returns the register names for the given size.
func RegisterTable(s Size) *[8]string {
	if s == SizeWord {
		return &WordRegisters
	}
	return &ByteRegisters
}

// RegisterName returns the register name for a 3-bit index.
func RegisterName(s Size, index uint8) string {
	return RegisterTable(s)[index&7]
}

// LookupRegister maps a register name back to its size and number.
func LookupRegister(name string) (Size, uint8, bool) {
	for i, r := range ByteRegisters {
		if r == name {
			return SizeByte, uint8(i), true
		}
	}
	for i, r := range WordRegisters {
		if r == name {
			return SizeWord, uint8(i), true
		}
	}
	return SizeByte, 0, false
}

// LookupEffectiveAddress maps a base expression to its r/m number.
func LookupEffectiveAddress(expr string) (uint8, bool) {
	for i, e := range EffectiveAddresses {
		if e == expr {
			return uint8(i), true
		}
	}
	return 0, false
}
