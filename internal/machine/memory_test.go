package machine

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestAddressToIndex_RejectsOutOfRange(t *testing.T) {
	_, err := addressToIndex(MemBot - 1)
	require.ErrorIs(t, err, ErrSegfault)

	_, err = addressToIndex(MemTop)
	require.ErrorIs(t, err, ErrSegfault)

	idx, err := addressToIndex(MemBot)
	require.NoError(t, err)
	require.Equal(t, int64(0), idx)
}

func TestMachine_ReadWriteQuad_RoundTrip(t *testing.T) {
	m := newMachine()
	require.NoError(t, m.writeQuad(MemBot, 123456))

	v, err := m.readQuad(MemBot)
	require.NoError(t, err)
	require.Equal(t, int64(123456), v)
}

func TestMachine_ReadByte_OutOfRange(t *testing.T) {
	m := newMachine()
	_, err := m.readByte(MemTop)
	if !errors.Is(err, ErrSegfault) {
		t.Fatalf("expected ErrSegfault, got %v", err)
	}
}

func TestMachine_ReadQuad_StraddlingInstructionReadsAsZero(t *testing.T) {
	m := newMachine()
	ins := Instruction{Op: Retq}
	slot := serializeIns(ins)
	for i, b := range slot {
		require.NoError(t, m.writeByte(MemBot+int64(i), b))
	}

	v, err := m.readQuad(MemBot)
	require.NoError(t, err)
	require.Equal(t, int64(0), v)
}
