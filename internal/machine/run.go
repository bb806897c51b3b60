package machine

// Run drives Step until the instruction pointer reaches ExitAddr or a
// fault occurs, mirroring the teacher's RunProgram. On normal halt it
// returns the accumulator register; on fault it returns the zero value
// and the fault, never both.
func (m *Machine) Run() (int64, error) {
	for m.Registers[Rip] != ExitAddr {
		if err := m.Step(); err != nil {
			m.errcode = err
			return 0, err
		}
	}
	return m.Registers[Rax], nil
}

// RunDebug is the single-step variant of Run: it calls onStep once per
// executed instruction, the same split the teacher exposes between
// RunProgram and RunProgramDebugMode for its manual-clock TUI. It stops at
// the same conditions as Run. The interactive monitor does not use it; it
// calls Step directly.
func (m *Machine) RunDebug(onStep func(*Machine)) (int64, error) {
	for m.Registers[Rip] != ExitAddr {
		if err := m.Step(); err != nil {
			m.errcode = err
			if onStep != nil {
				onStep(m)
			}
			return 0, err
		}
		if onStep != nil {
			onStep(m)
		}
	}
	return m.Registers[Rax], nil
}

// Err returns the sticky fault recorded by the last failing Run/RunDebug
// call, or nil if the machine has never faulted.
func (m *Machine) Err() error {
	return m.errcode
}
