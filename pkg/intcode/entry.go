package intcode

import "fmt"

// Result holds the state of a finished run.
type Result struct {
	Memory []int64         // Contiguous memory from address 0
	Sparse map[int64]int64 // Written addresses beyond Memory, nil if none
	Length int64           // One past the highest address loaded or written
	Output []int64         // Output log in emission order
}

// Read returns the final value at addr. Addresses never written read as zero.
func (r Result) Read(addr int64) int64 {
	if addr >= 0 && addr < int64(len(r.Memory)) {
		return r.Memory[addr]
	}
	return r.Sparse[addr]
}

// Run executes a copy of mem to completion with the given input queued.
// mem itself is left untouched. On failure the returned Result holds the
// memory and output accumulated up to the faulting instruction.
func Run(mem *Memory, input ...int64) (Result, error) {
	return RunWith(mem, WithInputValues(input...))
}

// RunWith is Run with explicit machine options.
func RunWith(mem *Memory, opts ...MachineOption) (Result, error) {
	m := NewMachine(mem.Clone(), opts...)
	err := m.Run()
	res := Result{Length: m.mem.Len(), Output: m.Output()}
	res.Memory, res.Sparse = m.mem.Snapshot()
	return res, err
}

// RunTuned sets address 1 to noun and address 2 to verb, runs the program
// and returns the value left at address 0.
func RunTuned(mem *Memory, noun, verb int64) (int64, error) {
	m := NewMachine(mem.Clone())
	if err := m.mem.Write(1, noun); err != nil {
		return 0, err
	}
	if err := m.mem.Write(2, verb); err != nil {
		return 0, err
	}
	if err := m.Run(); err != nil {
		return 0, err
	}
	return m.mem.Read(0)
}

// RunDiagnostic runs the program with a single input value and returns the
// only non-zero value it outputs.
func RunDiagnostic(mem *Memory, input int64) (int64, error) {
	m := NewMachine(mem.Clone(), WithInputValues(input))
	if err := m.Run(); err != nil {
		return 0, err
	}
	return DiagnosticCode(m.Output())
}

// DiagnosticCode returns the single non-zero value in output.
func DiagnosticCode(output []int64) (int64, error) {
	var (
		code  int64
		found bool
	)
	for _, v := range output {
		if v == 0 {
			continue
		}
		if found {
			return 0, fmt.Errorf("outputs %v: %w", output, ErrMultipleDiagnosticOutputs)
		}
		code, found = v, true
	}
	if !found {
		return 0, fmt.Errorf("outputs %v: %w", output, ErrNoDiagnosticOutput)
	}
	return code, nil
}

// FindNounVerb searches noun and verb in [0, limit) for the first pair whose
// tuned run leaves target at address 0. Pairs whose run fails are skipped.
func FindNounVerb(mem *Memory, target, limit int64) (noun, verb int64, err error) {
	for noun = 0; noun < limit; noun++ {
		for verb = 0; verb < limit; verb++ {
			got, runErr := RunTuned(mem, noun, verb)
			if runErr != nil {
				continue
			}
			if got == target {
				return noun, verb, nil
			}
		}
	}
	return 0, 0, fmt.Errorf("target %d: %w", target, ErrNoSolution)
}
