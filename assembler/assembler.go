package assembler

import (
	"fmt"
	"strings"
)

// Assembler holds the state for the assembly process.
type Assembler struct {
	symbols map[string]int64
}

// New creates a new Assembler instance.
func New() *Assembler {
	return &Assembler{
		symbols: make(map[string]int64),
	}
}

// Assemble takes 8086 MOV-family assembly code and returns the machine code.
func (asm *Assembler) Assemble(src string) ([]byte, error) {
	lines := strings.Split(strings.ReplaceAll(src, "\r\n", "\n"), "\n")

	nodes, err := asm.parseLines(lines)
	if err != nil {
		return nil, fmt.Errorf("parsing error: %w", err)
	}

	var machineCode []byte
	for _, n := range nodes {
		var code []byte
		var err error

		switch n.Type {
		case NodeDirective:
			code, err = asm.generateDirectiveCode(n)
		case NodeInstruction:
			code, err = assembleMove(n.Operands)
		}

		if err != nil {
			return nil, fmt.Errorf("line %d: error generating code for '%s': %w", n.Line, strings.Join(n.Parts, " "), err)
		}
		machineCode = append(machineCode, code...)
	}

	return machineCode, nil
}

// parseLines converts raw source lines into a slice of Node objects.
func (asm *Assembler) parseLines(lines []string) ([]*Node, error) {
	var nodes []*Node
	for i, line := range lines {
		if commentIndex := strings.IndexRune(line, ';'); commentIndex != -1 {
			line = line[:commentIndex]
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		// NAME equ VALUE
		if f := strings.Fields(line); len(f) == 3 && strings.EqualFold(f[1], "equ") {
			val, err := parseConstant(f[2], asm)
			if err != nil {
				return nil, fmt.Errorf("line %d: %w", i+1, err)
			}
			asm.symbols[strings.ToLower(f[0])] = val
			continue
		}

		var mnemonic, operandStr string
		firstSpace := strings.IndexAny(line, " \t")
		if firstSpace == -1 {
			mnemonic = line
		} else {
			mnemonic = line[:firstSpace]
			operandStr = strings.TrimSpace(line[firstSpace:])
		}
		mnemonic = strings.ToLower(mnemonic)

		nodeParts := []string{mnemonic}
		if operandStr != "" {
			nodeParts = append(nodeParts, operandStr)
		}

		switch strings.TrimPrefix(mnemonic, ".") {
		case "bits", "db":
			nodes = append(nodes, &Node{Type: NodeDirective, Line: i + 1, Parts: nodeParts})
			continue
		}

		if mnemonic != "mov" {
			return nil, fmt.Errorf("line %d: unknown instruction: %s", i+1, mnemonic)
		}

		var operands []Operand
		if operandStr != "" {
			for _, s := range splitOperands(operandStr) {
				op, err := parseOperand(s, asm)
				if err != nil {
					return nil, fmt.Errorf("line %d: %w", i+1, err)
				}
				operands = append(operands, op)
			}
		}
		nodes = append(nodes, &Node{Type: NodeInstruction, Line: i + 1, Operands: operands, Parts: nodeParts})
	}
	return nodes, nil
}

// splitOperands splits an operand string by commas, but ignores commas inside brackets.
func splitOperands(s string) []string {
	var result []string
	level := 0
	last := 0
	for i, r := range s {
		switch r {
		case '[':
			level++
		case ']':
			level--
		case ',':
			if level == 0 {
				result = append(result, strings.TrimSpace(s[last:i]))
				last = i + 1
			}
		}
	}
	result = append(result, strings.TrimSpace(s[last:]))
	return result
}
