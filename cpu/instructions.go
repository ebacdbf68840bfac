package cpu

// Size defines the operand width selected by the w bit.
type Size uint8

const (
	// SizeByte represents 8-bit operands.
	SizeByte Size = iota
	// SizeWord represents 16-bit operands.
	SizeWord
)

// String returns the size qualifier used in listings.
func (s Size) String() string {
	if s == SizeWord {
		return "word"
	}
	return "byte"
}

// Bytes returns the number of bytes an immediate of this size occupies.
func (s Size) Bytes() int {
	if s == SizeWord {
		return 2
	}
	return 1
}

// Direction is the d bit of the register/memory forms.
type Direction uint8

const (
	// FromRegister means the reg field is the source operand.
	FromRegister Direction = iota
	// ToRegister means the reg field is the destination operand.
	ToRegister
)

// Variant is one of the MOV encoding shapes.
type Variant uint8

const (
	// VariantNone is the zero value for an unrecognised opcode.
	VariantNone Variant = iota
	// RegisterToFromRegisterOrMemory is 1000 10dw.
	RegisterToFromRegisterOrMemory
	// ImmediateToRegister is 1011 wreg.
	ImmediateToRegister
	// ImmediateToRegisterOrMemory is 1100 011w.
	ImmediateToRegisterOrMemory
	// MemoryToFromAccumulator is 1010 00dw.
	MemoryToFromAccumulator
)

var variantNames = [...]string{
	VariantNone:                    "none",
	RegisterToFromRegisterOrMemory: "register to/from register or memory",
	ImmediateToRegister:            "immediate to register",
	ImmediateToRegisterOrMemory:    "immediate to register or memory",
	MemoryToFromAccumulator:        "memory to/from accumulator",
}

func (v Variant) String() string {
	if int(v) < len(variantNames) {
		return variantNames[v]
	}
	return "unknown"
}

// Opcode patterns and the masks selecting their fixed bits.
const (
	OPMOVImmToRM   = 0xC6 // 1100 011w
	MaskMOVImmToRM = 0xFE

	OPMOVRegRM   = 0x88 // 1000 10dw
	MaskMOVRegRM = 0xFC

	OPMOVAcc   = 0xA0 // 1010 00dw
	MaskMOVAcc = 0xFC

	OPMOVImmToReg   = 0xB0 // 1011 wreg
	MaskMOVImmToReg = 0xF0
)

// Pattern pairs a mask with the value the masked byte must equal.
type Pattern struct {
	Mask    byte
	Value   byte
	Variant Variant
}

// Match reports whether b carries this pattern's fixed bits.
func (p Pattern) Match(b byte) bool {
	return b&p.Mask == p.Value
}

// Patterns lists every MOV encoding, longest fixed prefix first, so that no
// shorter mask can claim a byte belonging to a more specific one.
var Patterns = []Pattern{
	{MaskMOVImmToRM, OPMOVImmToRM, ImmediateToRegisterOrMemory},
	{MaskMOVRegRM, OPMOVRegRM, RegisterToFromRegisterOrMemory},
	{MaskMOVAcc, OPMOVAcc, MemoryToFromAccumulator},
	{MaskMOVImmToReg, OPMOVImmToReg, ImmediateToRegister},
}
