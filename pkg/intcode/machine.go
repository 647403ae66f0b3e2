package intcode

import (
	"github.com/google/uuid"
	"github.com/tliron/commonlog"
)

var log = commonlog.GetLogger("intcode.machine")

// Machine executes a program held in its Memory.
// A Machine is not safe for concurrent use.
type Machine struct {
	ID string

	mem  *Memory
	pc   int64 // Program counter
	base int64 // Relative base

	input  Input
	output []int64

	halted bool
	steps  uint64

	log   commonlog.Logger
	trace bool
}

// MachineOption configures a Machine.
type MachineOption func(*machineConfig)

type machineConfig struct {
	id     string
	input  Input
	logger commonlog.Logger
	trace  bool
}

// WithInput sets the source consumed by IN instructions.
func WithInput(in Input) MachineOption {
	return func(c *machineConfig) { c.input = in }
}

// WithInputValues queues values for IN instructions.
func WithInputValues(values ...int64) MachineOption {
	return func(c *machineConfig) { c.input = NewQueue(values...) }
}

// WithLogger replaces the package logger. Use commonlog.MOCK_LOGGER to
// silence a machine entirely.
func WithLogger(l commonlog.Logger) MachineOption {
	return func(c *machineConfig) { c.logger = l }
}

// WithTrace logs every executed instruction at debug level.
func WithTrace(trace bool) MachineOption {
	return func(c *machineConfig) { c.trace = trace }
}

// WithID overrides the generated machine id.
func WithID(id string) MachineOption {
	return func(c *machineConfig) { c.id = id }
}

// NewMachine creates a machine that executes mem starting at address 0.
// The machine takes ownership of mem.
func NewMachine(mem *Memory, opts ...MachineOption) *Machine {
	cfg := &machineConfig{
		input:  noInput{},
		logger: log,
	}
	for _, opt := range opts {
		opt(cfg)
	}
	if cfg.id == "" {
		cfg.id = uuid.NewString()
	}

	return &Machine{
		ID:    cfg.id,
		mem:   mem,
		input: cfg.input,
		log:   commonlog.NewKeyValueLogger(cfg.logger, "machine", cfg.id),
		trace: cfg.trace,
	}
}

// PC returns the program counter.
func (m *Machine) PC() int64 { return m.pc }

// RelativeBase returns the relative base register.
func (m *Machine) RelativeBase() int64 { return m.base }

// Memory returns the machine's memory.
func (m *Machine) Memory() *Memory { return m.mem }

// Halted reports whether a HALT instruction has executed.
func (m *Machine) Halted() bool { return m.halted }

// Steps returns the number of instructions executed, including HALT.
func (m *Machine) Steps() uint64 { return m.steps }

// Output returns a copy of the output log.
func (m *Machine) Output() []int64 {
	out := make([]int64, len(m.output))
	copy(out, m.output)
	return out
}

// Run executes instructions until the machine halts or fails.
func (m *Machine) Run() error {
	for !m.halted {
		if err := m.Step(); err != nil {
			return err
		}
	}
	return nil
}

// Step executes a single instruction.
func (m *Machine) Step() error {
	if m.halted {
		return ErrHalted
	}

	word, err := m.mem.Read(m.pc)
	if err != nil {
		return m.fault(word, 0, err)
	}
	ins, err := Decode(word)
	if err != nil {
		return m.fault(word, 0, err)
	}

	if m.trace {
		m.log.Debug("step",
			"pc", m.pc,
			"op", ins.Opcode.String(),
			"word", word,
			"base", m.base)
	}

	if err := m.execute(ins); err != nil {
		return m.fault(word, ins.Opcode, err)
	}
	m.steps++

	if m.halted {
		m.log.Debug("halted", "pc", m.pc, "steps", m.steps, "outputs", len(m.output))
	}
	return nil
}

// fault wraps err with the location of the failing instruction.
func (m *Machine) fault(word int64, op Opcode, err error) error {
	m.log.Debug("fault", "pc", m.pc, "word", word, "error", err.Error())
	return &ExecError{PC: m.pc, Word: word, Op: op, Err: err}
}

// execute runs a decoded instruction and advances pc.
func (m *Machine) execute(ins Instruction) error {
	switch ins.Opcode {
	case OpAdd:
		return m.arith(ins, func(a, b int64) int64 { return a + b })

	case OpMul:
		return m.arith(ins, func(a, b int64) int64 { return a * b })

	case OpIn:
		dst, err := m.resolveAddress(ins, 1)
		if err != nil {
			return err
		}
		v, ok := m.input.Next()
		if !ok {
			return ErrInputExhausted
		}
		if err := m.mem.Write(dst, v); err != nil {
			return err
		}
		m.pc += 2

	case OpOut:
		v, err := m.resolveValue(ins, 1)
		if err != nil {
			return err
		}
		m.output = append(m.output, v)
		m.pc += 2

	case OpJumpTrue:
		vals, err := m.resolveValues(ins, 2)
		if err != nil {
			return err
		}
		if vals[0] != 0 {
			m.pc = vals[1]
		} else {
			m.pc += 3
		}

	case OpJumpFalse:
		vals, err := m.resolveValues(ins, 2)
		if err != nil {
			return err
		}
		if vals[0] == 0 {
			m.pc = vals[1]
		} else {
			m.pc += 3
		}

	case OpLessThan:
		return m.arith(ins, func(a, b int64) int64 { return boolWord(a < b) })

	case OpEquals:
		return m.arith(ins, func(a, b int64) int64 { return boolWord(a == b) })

	case OpAdjustBase:
		v, err := m.resolveValue(ins, 1)
		if err != nil {
			return err
		}
		m.base += v
		m.pc += 2

	case OpHalt:
		m.halted = true

	default:
		return ErrInvalidOpcode
	}
	return nil
}

// arith handles the three-operand instructions: two reads and a write.
func (m *Machine) arith(ins Instruction, fn func(a, b int64) int64) error {
	vals, err := m.resolveValues(ins, 2)
	if err != nil {
		return err
	}
	dst, err := m.resolveAddress(ins, 3)
	if err != nil {
		return err
	}
	if err := m.mem.Write(dst, fn(vals[0], vals[1])); err != nil {
		return err
	}
	m.pc += 4
	return nil
}

func boolWord(b bool) int64 {
	if b {
		return 1
	}
	return 0
}
