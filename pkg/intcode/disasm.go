package intcode

import (
	"fmt"
	"strings"
)

// Disassemble returns a listing of mem from start up to (not including) end.
// Words that do not decode are listed as DATA and skipped one at a time.
func Disassemble(mem *Memory, start, end int64) string {
	var sb strings.Builder
	addr := start
	for addr < end {
		line, width := disassembleInstruction(mem, addr)
		sb.WriteString(fmt.Sprintf("%04d  %s\n", addr, line))
		addr += width
	}
	return sb.String()
}

// disassembleInstruction formats the instruction at addr.
// Returns the formatted string and the instruction width.
func disassembleInstruction(mem *Memory, addr int64) (string, int64) {
	word, err := mem.Read(addr)
	if err != nil {
		return "<invalid address>", 1
	}
	ins, err := Decode(word)
	if err != nil {
		return fmt.Sprintf("DATA  %d", word), 1
	}

	info, _ := GetOpcodeInfo(ins.Opcode)
	if info.Operands == 0 {
		return info.Name, 1
	}

	operands := make([]string, info.Operands)
	for i := 1; i <= info.Operands; i++ {
		raw, _ := mem.Read(addr + int64(i))
		text := formatOperand(ins.Mode(i), raw)
		if info.Writes && i == info.Operands {
			text = "->" + text
		}
		operands[i-1] = text
	}
	return fmt.Sprintf("%-5s %s", info.Name, strings.Join(operands, " ")), ins.Opcode.Width()
}

// formatOperand renders an operand in listing notation:
// [n] position, #n immediate, [rb+n] relative.
func formatOperand(mode Mode, raw int64) string {
	switch mode {
	case Immediate:
		return fmt.Sprintf("#%d", raw)
	case Relative:
		if raw < 0 {
			return fmt.Sprintf("[rb%d]", raw)
		}
		return fmt.Sprintf("[rb+%d]", raw)
	default:
		return fmt.Sprintf("[%d]", raw)
	}
}
