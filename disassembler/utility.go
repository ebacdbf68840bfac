package disassembler

import (
	"fmt"
	"strconv"

	"github.com/Urethramancer/i8086/cpu"
)

// decodeEA resolves the r/m operand and consumes any displacement bytes.
func decodeEA(c *cursor, f cpu.Fields) (string, error) {
	switch f.Mode {
	case cpu.ModeRegister:
		return cpu.RegisterName(f.Size, f.RM), nil
	case cpu.ModeMemNoDisp:
		if f.RM == cpu.RMDirect {
			addr, err := c.readWord()
			if err != nil {
				return "", err
			}
			return directAddress(addr), nil
		}
		return "[" + cpu.EffectiveAddresses[f.RM] + "]", nil
	case cpu.ModeMemDisp8:
		b, err := c.readByte()
		if err != nil {
			return "", err
		}
		return "[" + cpu.EffectiveAddresses[f.RM] + formatDisp(cpu.SignExtend(b)) + "]", nil
	case cpu.ModeMemDisp16:
		w, err := c.readWord()
		if err != nil {
			return "", err
		}
		return "[" + cpu.EffectiveAddresses[f.RM] + formatDisp(int16(w)) + "]", nil
	}
	return "", fmt.Errorf("invalid mode %d", f.Mode)
}

// formatDisp renders a displacement term; zero is dropped.
func formatDisp(v int16) string {
	switch {
	case v == 0:
		return ""
	case v > 0:
		return " + " + strconv.Itoa(int(v))
	default:
		return " - " + strconv.Itoa(-int(v))
	}
}

func directAddress(addr uint16) string {
	return "[" + strconv.Itoa(int(addr)) + "]"
}
