package machine

import "fmt"

// Logger is the minimal sink x86lite traces through, a direct
// generalization of the teacher's own Logger interface (a single Log
// method gated by a package-level enable flag) from 6502 opcode tracing
// to instruction-and-flag tracing.
type Logger interface {
	Log(msg string)
}

type nopLogger struct{}

func (nopLogger) Log(string) {}

var (
	activeLogger Logger = nopLogger{}
	traceEnabled bool
)

// SetLogger installs the sink Step writes trace lines to. Passing nil
// restores the no-op logger.
func SetLogger(l Logger) {
	if l == nil {
		activeLogger = nopLogger{}
		return
	}
	activeLogger = l
}

// SetTraceEnabled turns instruction tracing on or off. Step checks this
// flag before formatting anything, the same way the teacher checks
// logEnable before building its flag string in Clock() — so the hot path
// pays nothing when tracing is off.
func SetTraceEnabled(enabled bool) {
	traceEnabled = enabled
}

// trace logs one about-to-execute instruction plus the flag state it is
// about to read, if tracing is enabled.
func trace(ins Instruction, m *Machine) {
	if !traceEnabled {
		return
	}
	activeLogger.Log(fmt.Sprintf("%#x: %-28s OF=%t SF=%t ZF=%t",
		m.Registers[Rip], ins.String(), m.Flags.OF, m.Flags.SF, m.Flags.ZF))
}
