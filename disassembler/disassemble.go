package disassembler

import (
	"fmt"
	"strings"

	"github.com/Urethramancer/i8086/cpu"
)

// Header is the first line of every listing.
const Header = "bits 16"

// Instruction represents a single decoded instruction at a specific offset.
type Instruction struct {
	Address  int
	Bytes    []byte // copy of the encoding; does not alias the input
	Variant  cpu.Variant
	Mnemonic string
	Operands []string
}

// Size returns the number of bytes the instruction occupies.
func (i Instruction) Size() int {
	return len(i.Bytes)
}

// String renders the instruction as one listing line, without a newline.
func (i Instruction) String() string {
	if len(i.Operands) == 0 {
		return i.Mnemonic
	}
	return i.Mnemonic + " " + strings.Join(i.Operands, ", ")
}

type decodeFunc func(op byte, c *cursor) ([]string, error)

var decoders = [...]decodeFunc{
	cpu.RegisterToFromRegisterOrMemory: decodeMoveRegRM,
	cpu.ImmediateToRegister:            decodeMoveImmToReg,
	cpu.ImmediateToRegisterOrMemory:    decodeMoveImmToRM,
	cpu.MemoryToFromAccumulator:        decodeMoveAccumulator,
}

// Dispatch selects the MOV encoding for a leading byte.
// Patterns are tried from the longest fixed prefix to the shortest.
func Dispatch(op byte) (cpu.Variant, bool) {
	for _, p := range cpu.Patterns {
		if p.Match(op) {
			return p.Variant, true
		}
	}
	return cpu.VariantNone, false
}

// DecodeInstruction decodes the single instruction starting at code[pc].
// An offset outside the input reports ErrStreamExhausted.
func DecodeInstruction(code []byte, pc int) (Instruction, error) {
	if pc < 0 {
		return Instruction{}, &StreamExhaustedError{Offset: pc, Need: 1}
	}
	c := &cursor{code: code, pos: pc}
	return decodeNext(c)
}

// decodeNext decodes one instruction at the cursor. On error the cursor
// position is unspecified and must not be reused.
func decodeNext(c *cursor) (Instruction, error) {
	c.begin()
	op, err := c.readByte()
	if err != nil {
		return Instruction{}, err
	}

	v, ok := Dispatch(op)
	if !ok {
		return Instruction{}, &UnsupportedOpcodeError{Offset: c.start, Opcode: op}
	}

	operands, err := decoders[v](op, c)
	if err != nil {
		return Instruction{}, err
	}

	return Instruction{
		Address:  c.start,
		Bytes:    c.consumed(),
		Variant:  v,
		Mnemonic: "mov",
		Operands: operands,
	}, nil
}

// rawByte wraps a byte the decoder skipped over.
func rawByte(pc int, b byte) Instruction {
	return Instruction{
		Address:  pc,
		Bytes:    []byte{b},
		Variant:  cpu.VariantNone,
		Mnemonic: "db",
		Operands: []string{fmt.Sprintf("0x%02x", b)},
	}
}

// Render writes the header followed by one line per instruction.
func Render(insts []Instruction) string {
	var out strings.Builder
	out.WriteString(Header)
	out.WriteString("\n\n")
	for _, inst := range insts {
		out.WriteString(inst.String())
		out.WriteByte('\n')
	}
	return out.String()
}
