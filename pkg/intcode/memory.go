package intcode

import "fmt"

// denseWindow is how far past the end of the dense region a write may land
// and still extend it. Writes further out go to the sparse map.
const denseWindow = 4096

// Memory is the machine's addressable store.
// Addresses that were never written read as zero.
type Memory struct {
	dense  []int64
	sparse map[int64]int64
	length int64 // one past the highest address written or loaded
}

// NewMemory returns an empty memory.
func NewMemory() *Memory {
	return &Memory{sparse: make(map[int64]int64)}
}

// Load returns a fresh memory holding program at addresses 0..len(program)-1.
// The program slice is copied.
func Load(program []int64) *Memory {
	m := &Memory{
		dense:  make([]int64, len(program)),
		sparse: make(map[int64]int64),
		length: int64(len(program)),
	}
	copy(m.dense, program)
	return m
}

// Read returns the value at addr, or zero if addr was never written.
func (m *Memory) Read(addr int64) (int64, error) {
	if addr < 0 {
		return 0, fmt.Errorf("read %d: %w", addr, ErrInvalidAddress)
	}
	if addr < int64(len(m.dense)) {
		return m.dense[addr], nil
	}
	return m.sparse[addr], nil
}

// Write stores value at addr, growing the memory as needed.
func (m *Memory) Write(addr, value int64) error {
	if addr < 0 {
		return fmt.Errorf("write %d: %w", addr, ErrInvalidAddress)
	}
	if addr >= m.length {
		m.length = addr + 1
	}

	n := int64(len(m.dense))
	switch {
	case addr < n:
		m.dense[addr] = value
	case addr < n+denseWindow:
		m.grow(addr + 1)
		m.dense[addr] = value
	default:
		m.sparse[addr] = value
	}
	return nil
}

// grow extends the dense region to size, pulling in any values that were
// previously stored sparsely in the newly covered range.
func (m *Memory) grow(size int64) {
	start := int64(len(m.dense))
	m.dense = append(m.dense, make([]int64, size-start)...)
	if len(m.sparse) == 0 {
		return
	}
	for addr := start; addr < size; addr++ {
		if v, ok := m.sparse[addr]; ok {
			m.dense[addr] = v
			delete(m.sparse, addr)
		}
	}
}

// Len returns one past the highest address ever loaded or written.
func (m *Memory) Len() int64 {
	return m.length
}

// Snapshot returns a copy of the contents. dense holds the contiguous
// region starting at address 0; sparse holds written addresses beyond it
// and is nil when there are none. Unset addresses read as zero in both.
func (m *Memory) Snapshot() (dense []int64, sparse map[int64]int64) {
	dense = make([]int64, len(m.dense))
	copy(dense, m.dense)
	if len(m.sparse) > 0 {
		sparse = make(map[int64]int64, len(m.sparse))
		for addr, v := range m.sparse {
			sparse[addr] = v
		}
	}
	return dense, sparse
}

// Clone returns an independent copy of the memory.
func (m *Memory) Clone() *Memory {
	c := &Memory{
		dense:  make([]int64, len(m.dense)),
		sparse: make(map[int64]int64, len(m.sparse)),
		length: m.length,
	}
	copy(c.dense, m.dense)
	for addr, v := range m.sparse {
		c.sparse[addr] = v
	}
	return c
}
