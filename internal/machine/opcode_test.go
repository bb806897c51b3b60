package machine

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEvalCondition(t *testing.T) {
	cases := []struct {
		name string
		c    Condition
		f    Flags
		want bool
	}{
		{"eq true", Eq, Flags{ZF: true}, true},
		{"eq false", Eq, Flags{ZF: false}, false},
		{"neq", Neq, Flags{ZF: false}, true},
		{"lt true", Lt, Flags{SF: true, OF: false}, true},
		{"lt false", Lt, Flags{SF: true, OF: true}, false},
		{"ge true", Ge, Flags{SF: true, OF: true}, true},
		{"le via zf", Le, Flags{ZF: true}, true},
		{"le via sign", Le, Flags{SF: true, OF: false}, true},
		{"gt true", Gt, Flags{SF: false, OF: false, ZF: false}, true},
		{"gt false on zero", Gt, Flags{SF: false, OF: false, ZF: true}, false},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			require.Equal(t, c.want, EvalCondition(c.c, c.f))
		})
	}
}

func TestInstruction_String(t *testing.T) {
	ins := Instruction{Op: Movq, Ops: []Operand{Imm(1), Reg(Rax)}}
	require.Equal(t, "movq $1, %rax", ins.String())

	jcc := Instruction{Op: J, Ops: []Operand{Imm(MemBot)}, Cond: Eq}
	require.Equal(t, "je "+Imm(MemBot).String(), jcc.String())

	ret := Instruction{Op: Retq}
	require.Equal(t, "retq", ret.String())
}

func TestOpcode_StringUnknown(t *testing.T) {
	require.Equal(t, "?opcode?", Opcode(255).String())
}
