package machine

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRun_SumToTenFixture(t *testing.T) {
	m, err := NewMachine(Fixtures["sum-to-ten"]())
	require.NoError(t, err)

	result, err := m.Run()
	require.NoError(t, err)
	require.Equal(t, int64(55), result)
}

func TestRun_OverflowAddFixture_SetsOF(t *testing.T) {
	m, err := NewMachine(Fixtures["overflow-add"]())
	require.NoError(t, err)

	_, err = m.Run()
	require.NoError(t, err)
	require.True(t, m.Flags.OF)
	require.True(t, m.Flags.SF, "MaxInt64+MaxInt64 wraps to a negative result")
}

func TestRun_CallRetFixture(t *testing.T) {
	m, err := NewMachine(Fixtures["call-ret"]())
	require.NoError(t, err)

	result, err := m.Run()
	require.NoError(t, err)
	require.Equal(t, int64(42), result)
	require.Equal(t, int64(99), m.Registers[Rbx])
}

func TestRun_PushPopFixture_RestoresStackPointer(t *testing.T) {
	m, err := NewMachine(Fixtures["push-pop"]())
	require.NoError(t, err)

	spBefore := m.Registers[Rsp]
	_, err = m.Run()
	require.NoError(t, err)
	require.Equal(t, spBefore, m.Registers[Rsp])
}

func TestRun_HaltsAtExitAddrWithoutFault(t *testing.T) {
	m, err := NewMachine(textImage(
		Instruction{Op: Movq, Ops: []Operand{Imm(7), Reg(Rax)}},
		Instruction{Op: Jmp, Ops: []Operand{Imm(ExitAddr)}},
	))
	require.NoError(t, err)

	result, err := m.Run()
	require.NoError(t, err)
	require.Equal(t, int64(7), result)
	require.Nil(t, m.Err())
}

func TestRunDebug_InvokesCallbackPerStep(t *testing.T) {
	m, err := NewMachine(textImage(
		Instruction{Op: Movq, Ops: []Operand{Imm(1), Reg(Rax)}},
		Instruction{Op: Incq, Ops: []Operand{Reg(Rax)}},
		Instruction{Op: Jmp, Ops: []Operand{Imm(ExitAddr)}},
	))
	require.NoError(t, err)

	var steps int
	result, err := m.RunDebug(func(*Machine) { steps++ })
	require.NoError(t, err)
	require.Equal(t, int64(2), result)
	require.Equal(t, 3, steps)
}

func TestRun_StickyErrcodeSurvivesAfterFault(t *testing.T) {
	m, err := NewMachine(textImage(
		Instruction{Op: Jmp, Ops: []Operand{Imm(0)}},
	))
	require.NoError(t, err)

	_, err = m.Run()
	require.ErrorIs(t, err, ErrSegfault)
	require.ErrorIs(t, m.Err(), ErrSegfault)
}
