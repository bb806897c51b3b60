package machine

// Peek and PeekQuad are read-only windows into a Machine's memory for
// diagnostic callers (the interactive monitor, error messages) that have
// no business calling Step themselves. They apply the same bounds check
// as every other memory access.

// Peek returns the symbolic byte at addr without mutating the machine.
func Peek(m *Machine, addr int64) (SymbolicByte, error) {
	return m.readByte(addr)
}

// PeekQuad decodes the quadword starting at addr without mutating the
// machine.
func PeekQuad(m *Machine, addr int64) (int64, error) {
	return m.readQuad(addr)
}
