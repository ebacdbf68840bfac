package disassembler

import (
	"errors"
)

// Options control how the stream driver reacts to undecodable input.
type Options struct {
	// SkipUnsupported emits a db line for a byte outside the MOV family and
	// resumes at the next byte instead of stopping.
	SkipUnsupported bool
}

// Disassembler decodes whole instruction streams.
type Disassembler struct {
	opts Options
}

// New creates a Disassembler with the given options.
func New(opts Options) *Disassembler {
	return &Disassembler{opts: opts}
}

// Decode decodes every instruction in code. On failure it returns the
// instructions decoded before the failing one together with the error.
func (d *Disassembler) Decode(code []byte) ([]Instruction, error) {
	var insts []Instruction
	c := &cursor{code: code}
	for !c.done() {
		inst, err := decodeNext(c)
		if err != nil {
			var unsupported *UnsupportedOpcodeError
			if d.opts.SkipUnsupported && errors.As(err, &unsupported) {
				insts = append(insts, rawByte(unsupported.Offset, unsupported.Opcode))
				c.pos = unsupported.Offset + 1
				continue
			}
			return insts, err
		}
		insts = append(insts, inst)
	}
	return insts, nil
}

// Disassemble takes a byte slice of 8086 machine code and returns it as a
// listing. A non-nil error means the listing is incomplete: it holds every
// instruction before the one that failed.
func (d *Disassembler) Disassemble(code []byte) (string, error) {
	insts, err := d.Decode(code)
	return Render(insts), err
}

// Disassemble decodes code with default options.
func Disassemble(code []byte) (string, error) {
	return New(Options{}).Disassemble(code)
}

// Decode decodes code with default options.
func Decode(code []byte) ([]Instruction, error) {
	return New(Options{}).Decode(code)
}
