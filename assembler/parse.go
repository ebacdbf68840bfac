package assembler

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/Urethramancer/i8086/cpu"
)

// OperandKind says which addressing form an operand uses.
type OperandKind int

const (
	// OperandRegister is a general-purpose register.
	OperandRegister OperandKind = iota
	// OperandMemory is a bracketed memory expression.
	OperandMemory
	// OperandImmediate is a numeric literal, optionally size-qualified.
	OperandImmediate
)

// Operand represents a parsed instruction operand.
type Operand struct {
	Kind     OperandKind
	Size     cpu.Size
	Sized    bool // register operand, or immediate with a byte/word qualifier
	Register uint8
	RM       uint8
	Direct   bool
	Disp     int64 // displacement, direct address or immediate value
	Raw      string
}

var (
	reMemory    = regexp.MustCompile(`^\[\s*(.+?)\s*\]$`)
	reBase      = regexp.MustCompile(`(?i)^(bx|bp|si|di)(?:\s*\+\s*(si|di))?(?:\s*([+-])\s*([a-z0-9_]+))?$`)
	reImmediate = regexp.MustCompile(`(?i)^(?:(byte|word)\s+)?([-+]?[a-z0-9_]+)$`)
)

// parseOperand converts an operand string into a structured Operand.
func parseOperand(s string, asm *Assembler) (Operand, error) {
	s = strings.TrimSpace(s)
	op := Operand{Raw: s}

	if size, reg, ok := cpu.LookupRegister(strings.ToLower(s)); ok {
		op.Kind = OperandRegister
		op.Size = size
		op.Sized = true
		op.Register = reg
		return op, nil
	}

	if m := reMemory.FindStringSubmatch(s); m != nil {
		return parseMemory(op, m[1], asm)
	}

	if m := reImmediate.FindStringSubmatch(s); m != nil {
		val, err := parseConstant(m[2], asm)
		if err != nil {
			return op, err
		}
		op.Kind = OperandImmediate
		op.Disp = val
		switch strings.ToLower(m[1]) {
		case "byte":
			op.Size, op.Sized = cpu.SizeByte, true
		case "word":
			op.Size, op.Sized = cpu.SizeWord, true
		}
		return op, nil
	}

	return op, fmt.Errorf("unknown operand format: %s", s)
}

// parseMemory handles [N] and [base (+ index) (+/- disp)].
func parseMemory(op Operand, inner string, asm *Assembler) (Operand, error) {
	op.Kind = OperandMemory
	if val, err := parseConstant(inner, asm); err == nil {
		op.Direct = true
		op.Disp = val
		return op, nil
	}

	m := reBase.FindStringSubmatch(inner)
	if m == nil {
		return op, fmt.Errorf("invalid memory operand: %s", op.Raw)
	}

	base := strings.ToLower(m[1])
	if m[2] != "" {
		base += " + " + strings.ToLower(m[2])
	}
	rm, ok := cpu.LookupEffectiveAddress(base)
	if !ok {
		return op, fmt.Errorf("invalid base register combination: %s", base)
	}
	op.RM = rm

	if m[4] != "" {
		disp, err := parseConstant(m[4], asm)
		if err != nil {
			return op, err
		}
		if m[3] == "-" {
			disp = -disp
		}
		op.Disp = disp
	}
	return op, nil
}

// parseConstant converts numeric or symbolic expressions to int64.
func parseConstant(s string, asm *Assembler) (int64, error) {
	s = strings.TrimSpace(s)

	// Character literal ('A')
	if len(s) == 3 && s[0] == '\'' && s[2] == '\'' {
		return int64(s[1]), nil
	}

	if asm != nil {
		if val, ok := asm.symbols[strings.ToLower(s)]; ok {
			return val, nil
		}
	}

	neg := false
	switch {
	case strings.HasPrefix(s, "-"):
		neg = true
		s = s[1:]
	case strings.HasPrefix(s, "+"):
		s = s[1:]
	}

	base := 10
	lower := strings.ToLower(s)
	switch {
	case strings.HasPrefix(lower, "0x"):
		s = s[2:]
		base = 16
	case strings.HasPrefix(lower, "0b"):
		s = s[2:]
		base = 2
	case strings.HasSuffix(lower, "h") && len(s) > 1 && s[0] >= '0' && s[0] <= '9':
		s = s[:len(s)-1]
		base = 16
	}

	val, err := strconv.ParseInt(s, base, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid number format: %s", s)
	}
	if neg {
		val = -val
	}
	return val, nil
}
