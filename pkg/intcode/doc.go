// Package intcode implements a small stored-program interpreter: a machine
// that executes decimal-encoded instructions over a sparse, unbounded
// integer memory with a queue of input values and a log of output values.
//
// # Instruction format
//
// Each instruction word holds its opcode in the low two decimal digits and
// one addressing mode digit per operand above that:
//
//	ABCDE
//	 1002
//
//	DE - two-digit opcode (02 = MUL)
//	 C - mode of operand 1 (0 = position)
//	 B - mode of operand 2 (1 = immediate)
//	 A - mode of operand 3 (0 = position, omitted leading zero)
//
// Words with further digits above A are not instructions.
//
// Three addressing modes exist:
//
//   - Position: the operand is an address to dereference
//   - Immediate: the operand is the value itself (never valid for writes)
//   - Relative: the operand is an offset from the relative base register
//
// # Execution
//
// A Machine owns its Memory, its registers (program counter and relative
// base) and its I/O. It runs until a HALT instruction is decoded or an error
// occurs. Errors are never recovered: the faulting pc and word are reported
// via *ExecError, which unwraps to one of the Err* sentinels.
//
// The package-level helpers Run, RunTuned and RunDiagnostic cover the usual
// ways a program is driven: run to completion with queued input, patch the
// noun and verb addresses and read address 0, or run a diagnostic program
// that must produce exactly one non-zero output.
package intcode
