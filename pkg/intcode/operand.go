package intcode

// param returns the raw operand word i (1-based) of the current instruction.
func (m *Machine) param(i int) (int64, error) {
	return m.mem.Read(m.pc + int64(i))
}

// resolveValue returns the effective value of read operand i.
func (m *Machine) resolveValue(ins Instruction, i int) (int64, error) {
	raw, err := m.param(i)
	if err != nil {
		return 0, err
	}

	switch ins.Mode(i) {
	case Immediate:
		return raw, nil
	case Relative:
		return m.mem.Read(raw + m.base)
	default:
		return m.mem.Read(raw)
	}
}

// resolveAddress returns the effective address of write operand i.
func (m *Machine) resolveAddress(ins Instruction, i int) (int64, error) {
	raw, err := m.param(i)
	if err != nil {
		return 0, err
	}

	switch ins.Mode(i) {
	case Immediate:
		return 0, ErrInvalidWriteMode
	case Relative:
		return raw + m.base, nil
	default:
		return raw, nil
	}
}

// resolveValues resolves read operands 1..n.
func (m *Machine) resolveValues(ins Instruction, n int) ([2]int64, error) {
	var vals [2]int64
	for i := 0; i < n; i++ {
		v, err := m.resolveValue(ins, i+1)
		if err != nil {
			return vals, err
		}
		vals[i] = v
	}
	return vals, nil
}
