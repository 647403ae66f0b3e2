package intcode

import "fmt"

// Opcode selects the operation of an instruction.
type Opcode int64

const (
	OpAdd        Opcode = 1  // dst := a + b
	OpMul        Opcode = 2  // dst := a * b
	OpIn         Opcode = 3  // dst := next input
	OpOut        Opcode = 4  // emit a
	OpJumpTrue   Opcode = 5  // pc := b if a != 0
	OpJumpFalse  Opcode = 6  // pc := b if a == 0
	OpLessThan   Opcode = 7  // dst := a < b
	OpEquals     Opcode = 8  // dst := a == b
	OpAdjustBase Opcode = 9  // relative base += a
	OpHalt       Opcode = 99 // stop
)

// OpcodeInfo provides metadata about each opcode for decoding and disassembly.
type OpcodeInfo struct {
	Name     string // Mnemonic
	Operands int    // Number of operand words following the opcode
	Writes   bool   // True if the last operand is a write target
	Jumps    bool   // True if the instruction may set pc directly
}

// opcodeInfoTable maps opcodes to their metadata.
var opcodeInfoTable = map[Opcode]OpcodeInfo{
	OpAdd:        {"ADD", 3, true, false},
	OpMul:        {"MUL", 3, true, false},
	OpIn:         {"IN", 1, true, false},
	OpOut:        {"OUT", 1, false, false},
	OpJumpTrue:   {"JT", 2, false, true},
	OpJumpFalse:  {"JF", 2, false, true},
	OpLessThan:   {"LT", 3, true, false},
	OpEquals:     {"EQ", 3, true, false},
	OpAdjustBase: {"ARB", 1, false, false},
	OpHalt:       {"HALT", 0, false, false},
}

// GetOpcodeInfo returns metadata for an opcode.
// The second result is false if the opcode is not defined.
func GetOpcodeInfo(op Opcode) (OpcodeInfo, bool) {
	info, ok := opcodeInfoTable[op]
	return info, ok
}

// Valid reports whether op is in the instruction set.
func (op Opcode) Valid() bool {
	_, ok := opcodeInfoTable[op]
	return ok
}

// String returns the mnemonic of an opcode.
func (op Opcode) String() string {
	if info, ok := opcodeInfoTable[op]; ok {
		return info.Name
	}
	return fmt.Sprintf("UNKNOWN(%d)", int64(op))
}

// Operands returns the number of operand words for this opcode.
func (op Opcode) Operands() int {
	return opcodeInfoTable[op].Operands
}

// Width returns the total length of an instruction (1 + operands).
func (op Opcode) Width() int64 {
	return 1 + int64(op.Operands())
}

// AllOpcodes returns every defined opcode in ascending order.
func AllOpcodes() []Opcode {
	return []Opcode{
		OpAdd, OpMul, OpIn, OpOut, OpJumpTrue,
		OpJumpFalse, OpLessThan, OpEquals, OpAdjustBase, OpHalt,
	}
}

// Mode is an operand addressing mode.
type Mode int8

const (
	Position  Mode = 0
	Immediate Mode = 1
	Relative  Mode = 2
)

// String returns a human-readable name for Mode.
func (m Mode) String() string {
	switch m {
	case Position:
		return "position"
	case Immediate:
		return "immediate"
	case Relative:
		return "relative"
	default:
		return fmt.Sprintf("Mode(%d)", m)
	}
}
