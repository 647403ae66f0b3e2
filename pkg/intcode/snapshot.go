package intcode

import "fmt"

// Snapshot is the complete state of a machine at an instruction boundary.
// Memory holds the dense program region; Sparse holds far addresses so that
// a single distant write does not inflate the snapshot.
type Snapshot struct {
	MachineID    string          `cbor:"1,keyasint"`
	PC           int64           `cbor:"2,keyasint"`
	RelativeBase int64           `cbor:"3,keyasint"`
	Halted       bool            `cbor:"4,keyasint"`
	Steps        uint64          `cbor:"5,keyasint"`
	Memory       []int64         `cbor:"6,keyasint"`
	Sparse       map[int64]int64 `cbor:"7,keyasint,omitempty"`
	Length       int64           `cbor:"8,keyasint"`
	Output       []int64         `cbor:"9,keyasint,omitempty"`
	Input        []int64         `cbor:"10,keyasint,omitempty"`
}

// Snapshot captures the machine's registers, memory and I/O. Pending input
// is recorded only when the machine reads from a Queue.
func (m *Machine) Snapshot() Snapshot {
	s := Snapshot{
		MachineID:    m.ID,
		PC:           m.pc,
		RelativeBase: m.base,
		Halted:       m.halted,
		Steps:        m.steps,
		Length:       m.mem.length,
		Output:       m.Output(),
	}
	s.Memory, s.Sparse = m.mem.Snapshot()
	if q, ok := m.input.(*Queue); ok {
		s.Input = q.Values()
	}
	return s
}

// Restore rebuilds a machine from a snapshot. Queued input from the
// snapshot is used unless an input option is given.
func Restore(s Snapshot, opts ...MachineOption) (*Machine, error) {
	mem := &Memory{
		dense:  make([]int64, len(s.Memory)),
		sparse: make(map[int64]int64, len(s.Sparse)),
		length: s.Length,
	}
	copy(mem.dense, s.Memory)
	for addr, v := range s.Sparse {
		if addr < 0 {
			return nil, fmt.Errorf("restore: sparse address %d: %w", addr, ErrInvalidAddress)
		}
		if addr < int64(len(mem.dense)) {
			return nil, fmt.Errorf("restore: sparse address %d inside dense region: %w", addr, ErrInvalidAddress)
		}
		mem.sparse[addr] = v
		if addr >= mem.length {
			mem.length = addr + 1
		}
	}
	if mem.length < int64(len(mem.dense)) {
		mem.length = int64(len(mem.dense))
	}

	all := make([]MachineOption, 0, len(opts)+2)
	all = append(all, WithInputValues(s.Input...))
	if s.MachineID != "" {
		all = append(all, WithID(s.MachineID))
	}
	all = append(all, opts...)

	m := NewMachine(mem, all...)
	m.pc = s.PC
	m.base = s.RelativeBase
	m.halted = s.Halted
	m.steps = s.Steps
	m.output = append([]int64(nil), s.Output...)
	return m, nil
}
