package machine

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSymbolicByte_RawByte(t *testing.T) {
	require.Equal(t, uint8(0x42), Raw(0x42).RawByte())
	require.Equal(t, uint8(0), insTail.RawByte())
	require.Equal(t, uint8(0), InsHead(Instruction{Op: Retq}).RawByte())
}

func TestSymbolicByte_Instruction_PanicsOnNonInsHead(t *testing.T) {
	require.Panics(t, func() {
		Raw(1).Instruction()
	})
}

func TestSymbolicByte_IsInsHead(t *testing.T) {
	require.True(t, InsHead(Instruction{Op: Retq}).IsInsHead())
	require.False(t, Raw(0).IsInsHead())
	require.False(t, insTail.IsInsHead())
}
