package machine

import (
	"errors"
	"fmt"
)

// Sentinel faults, checked with errors.Is. Every fault x86lite can raise
// is one of these two fixed conditions, so — as in the teacher's
// package-level errSegmentationFault/errIllegalOperation/... — there is no
// need for a richer error type hierarchy.
var (
	// ErrSegfault is raised by any address translation outside
	// [MemBot, MemTop).
	ErrSegfault = errors.New("segmentation fault")
	// ErrMalformedInstruction covers every invariant violation: a
	// non-InsHead byte at Rip, an operand arity mismatch, an unresolved
	// label reaching execute time, or a shift amount read from an
	// unsupported register.
	ErrMalformedInstruction = errors.New("malformed instruction")
)

func segfaultAt(addr int64) error {
	return fmt.Errorf("%w: address %#x", ErrSegfault, addr)
}

func malformed(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrMalformedInstruction, fmt.Sprintf(format, args...))
}
