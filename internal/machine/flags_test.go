package machine

import (
	"testing"

	"github.com/stretchr/testify/require"
)

const maxInt64 = 1<<63 - 1

func TestApplyFlags_Addq(t *testing.T) {
	m := newMachine()
	applyFlags(m, Addq, 2, 3, 5)
	require.Equal(t, Flags{OF: false, SF: false, ZF: false}, m.Flags)

	applyFlags(m, Addq, maxInt64, 1, minInt64)
	require.True(t, m.Flags.OF, "signed overflow adding to MaxInt64")

	applyFlags(m, Addq, -1, 1, 0)
	require.True(t, m.Flags.ZF)
	require.False(t, m.Flags.OF)
}

func TestApplyFlags_Subq_MinInt64SrcAlwaysOverflows(t *testing.T) {
	m := newMachine()
	// Computed at runtime: 0-MinInt64 as a constant overflows int64.
	src := int64(minInt64)
	applyFlags(m, Subq, 0, src, 0-src)
	require.True(t, m.Flags.OF, "src == MinInt64 always sets OF on subtract")
}

func TestApplyFlags_Subq_RegularOverflow(t *testing.T) {
	m := newMachine()
	// dest - 1 wraps around past MinInt64: dest negative, src positive,
	// result flips sign. Computed at runtime so the wraparound doesn't
	// trip the compiler's constant-overflow check.
	dest := int64(minInt64)
	result := dest - 1
	applyFlags(m, Subq, dest, 1, result)
	require.True(t, m.Flags.OF)
}

func TestApplyFlags_Imulq(t *testing.T) {
	m := newMachine()
	applyFlags(m, Imulq, 3, 4, 12)
	require.False(t, m.Flags.OF, "3*4 fits easily")

	a, b := int64(maxInt64), int64(2)
	applyFlags(m, Imulq, a, b, a*b)
	require.True(t, m.Flags.OF, "MaxInt64*2 overflows int64")

	applyFlags(m, Imulq, -1, minInt64, minInt64)
	require.True(t, m.Flags.OF, "-MinInt64 does not fit in int64")
}

func TestApplyFlags_BitwiseOpsClearOF(t *testing.T) {
	m := newMachine()
	m.Flags.OF = true
	applyFlags(m, Andq, 0xFF, 0x0F, 0x0F)
	require.False(t, m.Flags.OF)
	require.False(t, m.Flags.ZF)

	applyFlags(m, Xorq, 5, 5, 0)
	require.True(t, m.Flags.ZF)
}

func TestApplyFlags_Negq_OverflowOnMinInt64(t *testing.T) {
	m := newMachine()
	applyFlags(m, Negq, minInt64, 1, minInt64)
	require.True(t, m.Flags.OF)

	applyFlags(m, Negq, 5, 1, -5)
	require.False(t, m.Flags.OF)
}

func TestApplyFlags_Shifts_AmountZeroLeavesFlagsUntouched(t *testing.T) {
	m := newMachine()
	m.Flags = Flags{OF: true, SF: true, ZF: true}
	applyFlags(m, Shlq, 4, 0, 4)
	require.Equal(t, Flags{OF: true, SF: true, ZF: true}, m.Flags)
}

func TestApplyFlags_Shlq_AmountOne(t *testing.T) {
	m := newMachine()
	// top two bits differ -> OF set. 1<<62 shifted left once becomes
	// MinInt64; computed via uint64 so the wraparound isn't a constant
	// overflow at compile time.
	dest := int64(1) << 62
	result := int64(uint64(dest) << 1)
	applyFlags(m, Shlq, dest, 1, result)
	require.True(t, m.Flags.OF)

	m2 := newMachine()
	applyFlags(m2, Shlq, 1, 1, 2)
	require.False(t, m2.Flags.OF)
}

func TestApplyFlags_Sarq_AmountOneClearsOF(t *testing.T) {
	m := newMachine()
	m.Flags.OF = true
	applyFlags(m, Sarq, -4, 1, -2)
	require.False(t, m.Flags.OF)
}

func TestApplyFlags_NonAffectingOpcodeIsNoOp(t *testing.T) {
	m := newMachine()
	before := m.Flags
	applyFlags(m, Movq, 1, 2, 3)
	require.Equal(t, before, m.Flags, "Movq has no case in applyFlags and must be a no-op")
}
