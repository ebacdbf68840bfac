package assembler

import (
	"fmt"

	"github.com/Urethramancer/i8086/cpu"
)

// memoryEncoding picks mod, r/m and displacement bytes for a memory operand.
// The shortest displacement form is used, except that [bp] has no
// zero-displacement encoding and needs an explicit 8-bit zero.
func memoryEncoding(op Operand) (cpu.Mode, uint8, []byte, error) {
	if op.Direct {
		if op.Disp < 0 || op.Disp > 0xFFFF {
			return 0, 0, nil, fmt.Errorf("direct address out of range: %d", op.Disp)
		}
		return cpu.ModeMemNoDisp, cpu.RMDirect, cpu.PutWord(nil, uint16(op.Disp)), nil
	}

	switch {
	case op.Disp == 0 && op.RM != cpu.RMDirect:
		return cpu.ModeMemNoDisp, op.RM, nil, nil
	case op.Disp >= -128 && op.Disp <= 127:
		return cpu.ModeMemDisp8, op.RM, []byte{byte(int8(op.Disp))}, nil
	case op.Disp >= -32768 && op.Disp <= 0xFFFF:
		return cpu.ModeMemDisp16, op.RM, cpu.PutWord(nil, uint16(op.Disp)), nil
	}
	return 0, 0, nil, fmt.Errorf("displacement out of range: %d", op.Disp)
}

// immediateBytes encodes an immediate in the given width.
func immediateBytes(val int64, size cpu.Size) ([]byte, error) {
	if size == cpu.SizeWord {
		if val < -32768 || val > 0xFFFF {
			return nil, fmt.Errorf("word immediate out of range: %d", val)
		}
		return cpu.PutWord(nil, uint16(val)), nil
	}
	if val < -128 || val > 0xFF {
		return nil, fmt.Errorf("byte immediate out of range: %d", val)
	}
	return []byte{byte(val)}, nil
}
