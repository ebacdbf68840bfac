package disassembler

import (
	"strconv"

	"github.com/Urethramancer/i8086/cpu"
)

// decodeMoveRegRM decodes 1000 10dw, mod reg r/m, [disp-lo], [disp-hi].
func decodeMoveRegRM(op byte, c *cursor) ([]string, error) {
	f := cpu.DecodeOpcode(op)
	modrm, err := c.readByte()
	if err != nil {
		return nil, err
	}
	f.DecodeModRM(modrm)

	reg := cpu.RegisterName(f.Size, f.Reg)
	rm, err := decodeEA(c, f)
	if err != nil {
		return nil, err
	}

	if f.Direction == cpu.ToRegister {
		return []string{reg, rm}, nil
	}
	return []string{rm, reg}, nil
}

// decodeMoveImmToReg decodes 1011 wreg, data, [data].
// Immediates are shown unsigned; the sign of the original literal is not recoverable.
func decodeMoveImmToReg(op byte, c *cursor) ([]string, error) {
	size, reg := cpu.ImmediateRegister(op)
	imm, err := c.readImmediate(size)
	if err != nil {
		return nil, err
	}
	return []string{cpu.RegisterName(size, reg), strconv.Itoa(int(imm))}, nil
}

// decodeMoveImmToRM decodes 1100 011w, mod 000 r/m, [disp-lo], [disp-hi], data, [data].
// The reg field of the addressing byte is ignored.
func decodeMoveImmToRM(op byte, c *cursor) ([]string, error) {
	f := cpu.DecodeOpcode(op)
	modrm, err := c.readByte()
	if err != nil {
		return nil, err
	}
	f.DecodeModRM(modrm)

	dst, err := decodeEA(c, f)
	if err != nil {
		return nil, err
	}
	imm, err := c.readImmediate(f.Size)
	if err != nil {
		return nil, err
	}

	src := strconv.Itoa(int(imm))
	if f.Mode != cpu.ModeRegister {
		src = f.Size.String() + " " + src
	}
	return []string{dst, src}, nil
}

// decodeMoveAccumulator decodes 1010 00dw, addr-lo, addr-hi.
// d = 0 loads the accumulator, d = 1 stores it.
func decodeMoveAccumulator(op byte, c *cursor) ([]string, error) {
	addr, err := c.readWord()
	if err != nil {
		return nil, err
	}

	acc := cpu.WordRegisters[cpu.AX]
	mem := directAddress(addr)
	if op&0x02 != 0 {
		return []string{mem, acc}, nil
	}
	return []string{acc, mem}, nil
}
