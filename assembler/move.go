package assembler

import (
	"fmt"

	"github.com/Urethramancer/i8086/cpu"
)

// assembleMove encodes one MOV in whichever of the four forms fits its operands.
func assembleMove(operands []Operand) ([]byte, error) {
	if len(operands) != 2 {
		return nil, fmt.Errorf("MOV requires 2 operands")
	}
	dst, src := operands[0], operands[1]

	switch {
	case dst.Kind == OperandRegister && src.Kind == OperandRegister:
		if dst.Size != src.Size {
			return nil, fmt.Errorf("operand size mismatch: %s, %s", dst.Raw, src.Raw)
		}
		// nasm's choice: d = 0, destination in r/m.
		return []byte{
			cpu.OPMOVRegRM | byte(dst.Size),
			cpu.EncodeModRM(cpu.ModeRegister, src.Register, dst.Register),
		}, nil

	case dst.Kind == OperandRegister && src.Kind == OperandMemory:
		return assembleRegMem(dst, src, cpu.ToRegister)

	case dst.Kind == OperandMemory && src.Kind == OperandRegister:
		return assembleRegMem(src, dst, cpu.FromRegister)

	case dst.Kind == OperandRegister && src.Kind == OperandImmediate:
		if src.Sized && src.Size != dst.Size {
			return nil, fmt.Errorf("operand size mismatch: %s, %s", dst.Raw, src.Raw)
		}
		imm, err := immediateBytes(src.Disp, dst.Size)
		if err != nil {
			return nil, err
		}
		op := cpu.OPMOVImmToReg | byte(dst.Size)<<3 | dst.Register
		return append([]byte{op}, imm...), nil

	case dst.Kind == OperandMemory && src.Kind == OperandImmediate:
		if !src.Sized {
			return nil, fmt.Errorf("operation size not specified: %s", src.Raw)
		}
		mod, rm, disp, err := memoryEncoding(dst)
		if err != nil {
			return nil, err
		}
		imm, err := immediateBytes(src.Disp, src.Size)
		if err != nil {
			return nil, err
		}
		code := []byte{cpu.OPMOVImmToRM | byte(src.Size), cpu.EncodeModRM(mod, 0, rm)}
		code = append(code, disp...)
		return append(code, imm...), nil
	}

	return nil, fmt.Errorf("invalid operand combination: %s, %s", dst.Raw, src.Raw)
}

// assembleRegMem encodes register <-> memory, preferring the accumulator
// form for ax and a direct address.
func assembleRegMem(reg, mem Operand, d cpu.Direction) ([]byte, error) {
	if mem.Direct && reg.Size == cpu.SizeWord && reg.Register == cpu.AX {
		if mem.Disp < 0 || mem.Disp > 0xFFFF {
			return nil, fmt.Errorf("direct address out of range: %d", mem.Disp)
		}
		op := byte(cpu.OPMOVAcc | 0x01)
		if d == cpu.FromRegister {
			op |= 0x02
		}
		return cpu.PutWord([]byte{op}, uint16(mem.Disp)), nil
	}

	mod, rm, disp, err := memoryEncoding(mem)
	if err != nil {
		return nil, err
	}
	op := cpu.OPMOVRegRM | byte(d)<<1 | byte(reg.Size)
	code := []byte{op, cpu.EncodeModRM(mod, reg.Register, rm)}
	return append(code, disp...), nil
}
