package assembler

import (
	"fmt"
	"strings"
)

// generateDirectiveCode generates the binary data for assembler directives.
func (asm *Assembler) generateDirectiveCode(n *Node) ([]byte, error) {
	dir := strings.TrimPrefix(n.Parts[0], ".")

	switch dir {
	case "bits":
		if len(n.Parts) != 2 {
			return nil, fmt.Errorf("bits requires a single argument")
		}
		val, err := parseConstant(n.Parts[1], asm)
		if err != nil {
			return nil, err
		}
		if val != 16 {
			return nil, fmt.Errorf("only 16-bit mode is supported, got bits %d", val)
		}
		return nil, nil

	case "db":
		if len(n.Parts) < 2 {
			return nil, fmt.Errorf("db requires at least one value")
		}
		var out []byte
		for _, s := range splitOperands(n.Parts[1]) {
			val, err := parseConstant(s, asm)
			if err != nil {
				return nil, err
			}
			if val < -128 || val > 0xFF {
				return nil, fmt.Errorf("byte value out of range: %d", val)
			}
			out = append(out, byte(val))
		}
		return out, nil

	default:
		return nil, fmt.Errorf("unknown directive: %s", n.Parts[0])
	}
}
