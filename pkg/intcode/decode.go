package intcode

import "fmt"

// Instruction is a decoded instruction word.
type Instruction struct {
	Opcode Opcode
	Mode1  Mode
	Mode2  Mode
	Mode3  Mode
}

// Mode returns the addressing mode of operand i (1-based).
func (in Instruction) Mode(i int) Mode {
	switch i {
	case 1:
		return in.Mode1
	case 2:
		return in.Mode2
	case 3:
		return in.Mode3
	}
	return Position
}

// Decode splits an instruction word into its opcode and operand modes.
// Mode digits beyond those present in the word default to Position. Only
// the modes of operands the opcode takes are checked; the rest are left as
// Position. A word with digits past the third mode is not an instruction.
func Decode(word int64) (Instruction, error) {
	if word < 0 {
		return Instruction{}, fmt.Errorf("word %d: %w", word, ErrInvalidOpcode)
	}

	op := Opcode(word % 100)
	if !op.Valid() {
		return Instruction{}, fmt.Errorf("opcode %d: %w", int64(op), ErrInvalidOpcode)
	}

	var modes [3]Mode
	operands := op.Operands()
	rest := word / 100
	for i := range modes {
		digit := rest % 10
		rest /= 10
		if i >= operands {
			continue
		}
		if digit > int64(Relative) {
			return Instruction{}, fmt.Errorf("operand %d mode %d: %w", i+1, digit, ErrInvalidMode)
		}
		modes[i] = Mode(digit)
	}
	if rest != 0 {
		return Instruction{}, fmt.Errorf("word %d: %w", word, ErrInvalidOpcode)
	}

	return Instruction{Opcode: op, Mode1: modes[0], Mode2: modes[1], Mode3: modes[2]}, nil
}
