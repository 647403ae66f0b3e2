package intcode

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidAddress is returned for reads or writes at a negative address.
	ErrInvalidAddress = errors.New("invalid address")

	// ErrInvalidOpcode is returned when a word does not decode to a known opcode.
	ErrInvalidOpcode = errors.New("invalid opcode")

	// ErrInvalidMode is returned when a mode digit is not 0, 1 or 2.
	ErrInvalidMode = errors.New("invalid addressing mode")

	// ErrInvalidWriteMode is returned when a write operand uses immediate mode.
	ErrInvalidWriteMode = errors.New("immediate mode used for write operand")

	// ErrInputExhausted is returned when IN executes with no input available.
	ErrInputExhausted = errors.New("input exhausted")

	// ErrHalted is returned by Step once the machine has halted.
	ErrHalted = errors.New("machine halted")

	// ErrMultipleDiagnosticOutputs is returned by RunDiagnostic when more
	// than one non-zero value was output.
	ErrMultipleDiagnosticOutputs = errors.New("multiple non-zero diagnostic outputs")

	// ErrNoDiagnosticOutput is returned by RunDiagnostic when every output was zero.
	ErrNoDiagnosticOutput = errors.New("no non-zero diagnostic output")

	// ErrNoSolution is returned by FindNounVerb when no pair produced the target.
	ErrNoSolution = errors.New("no noun/verb pair produces target")
)

// ExecError records where execution failed.
// It unwraps to the underlying sentinel so callers can use errors.Is.
type ExecError struct {
	PC   int64  // Address of the faulting instruction
	Word int64  // Raw instruction word at PC
	Op   Opcode // Decoded opcode, zero if decoding failed
	Err  error
}

func (e *ExecError) Error() string {
	if e.Op == 0 {
		return fmt.Sprintf("pc=%d word=%d: %v", e.PC, e.Word, e.Err)
	}
	return fmt.Sprintf("pc=%d word=%d op=%s: %v", e.PC, e.Word, e.Op, e.Err)
}

func (e *ExecError) Unwrap() error {
	return e.Err
}

// FaultPC reports the program counter of a failed instruction, if err
// carries one.
func FaultPC(err error) (int64, bool) {
	var ee *ExecError
	if errors.As(err, &ee) {
		return ee.PC, true
	}
	return 0, false
}
