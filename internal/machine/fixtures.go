package machine

// Fixtures is the named set of small hand-assembled programs the CLI and
// the monitor run, standing in for the output of the out-of-scope
// assembler/linker. Each entry builds its own Image on demand so callers
// never share backing memory.
var Fixtures = map[string]func() Image{
	"sum-to-ten":   fixtureSumToTen,
	"overflow-add": fixtureOverflowAdd,
	"call-ret":     fixtureCallRet,
	"push-pop":     fixturePushPop,
}

func slot(n int64) int64 { return MemBot + n*InsSize }

// fixtureSumToTen computes 1+2+...+10 in Rax using a Cmpq/J loop, the
// same shape as the teacher's own handwritten 6502 bytecode fixtures in
// go/gui and go/mgnes/cmd/pure6502. Jump targets are computed from named
// slot indices rather than hand-counted magic numbers, so reordering the
// instructions below can't silently desync a jump target.
func fixtureSumToTen() Image {
	const (
		sInit0 = iota
		sInit1
		sLoop
		sCheck
		sAdd
		sIncr
		sJmpLoop
		sDone
		sHalt
	)
	ins := make([]Instruction, sHalt+1)
	ins[sInit0] = Instruction{Op: Movq, Ops: []Operand{Imm(0), Reg(Rax)}}
	ins[sInit1] = Instruction{Op: Movq, Ops: []Operand{Imm(1), Reg(Rcx)}}
	ins[sLoop] = Instruction{Op: Cmpq, Ops: []Operand{Imm(11), Reg(Rcx)}}
	ins[sCheck] = Instruction{Op: J, Ops: []Operand{Imm(slot(sDone))}, Cond: Ge}
	ins[sAdd] = Instruction{Op: Addq, Ops: []Operand{Reg(Rcx), Reg(Rax)}}
	ins[sIncr] = Instruction{Op: Incq, Ops: []Operand{Reg(Rcx)}}
	ins[sJmpLoop] = Instruction{Op: Jmp, Ops: []Operand{Imm(slot(sLoop))}}
	ins[sDone] = Instruction{Op: Movq, Ops: []Operand{Reg(Rax), Reg(Rax)}}
	ins[sHalt] = Instruction{Op: Jmp, Ops: []Operand{Imm(ExitAddr)}}

	text := AssembleText(ins)
	return Image{Entry: MemBot, TextPos: MemBot, DataPos: MemBot + int64(len(text)), Text: text}
}

// fixtureOverflowAdd adds math.MaxInt64 to itself so OF is observably set
// on the resulting Addq, exercising the signed-overflow rule that
// TestRun_OverflowAddFixture_SetsOF in run_test.go asserts against.
func fixtureOverflowAdd() Image {
	const maxInt64 = 1<<63 - 1
	ins := []Instruction{
		{Op: Movq, Ops: []Operand{Imm(maxInt64), Reg(Rax)}},
		{Op: Movq, Ops: []Operand{Imm(maxInt64), Reg(Rbx)}},
		{Op: Addq, Ops: []Operand{Reg(Rbx), Reg(Rax)}},
		{Op: Jmp, Ops: []Operand{Imm(ExitAddr)}},
	}
	text := AssembleText(ins)
	return Image{Entry: MemBot, TextPos: MemBot, DataPos: MemBot + int64(len(text)), Text: text}
}

// fixtureCallRet exercises Callq/Retq returning to the instruction after
// the call site, with no stack manipulation inside the callee.
func fixtureCallRet() Image {
	const (
		cMain0 = iota
		cCall
		cAfterCall
		cHalt
		cCallee
		cRet
	)
	ins := make([]Instruction, cRet+1)
	ins[cMain0] = Instruction{Op: Movq, Ops: []Operand{Imm(1), Reg(Rax)}}
	ins[cCall] = Instruction{Op: Callq, Ops: []Operand{Imm(slot(cCallee))}}
	ins[cAfterCall] = Instruction{Op: Movq, Ops: []Operand{Imm(99), Reg(Rbx)}}
	ins[cHalt] = Instruction{Op: Jmp, Ops: []Operand{Imm(ExitAddr)}}
	ins[cCallee] = Instruction{Op: Addq, Ops: []Operand{Imm(41), Reg(Rax)}}
	ins[cRet] = Instruction{Op: Retq}

	text := AssembleText(ins)
	return Image{Entry: MemBot, TextPos: MemBot, DataPos: MemBot + int64(len(text)), Text: text}
}

// fixturePushPop verifies a Pushq/Popq round trip leaves Rsp unchanged.
func fixturePushPop() Image {
	ins := []Instruction{
		{Op: Movq, Ops: []Operand{Imm(1234), Reg(Rax)}},
		{Op: Pushq, Ops: []Operand{Reg(Rax)}},
		{Op: Movq, Ops: []Operand{Imm(0), Reg(Rax)}},
		{Op: Popq, Ops: []Operand{Reg(Rbx)}},
		{Op: Jmp, Ops: []Operand{Imm(ExitAddr)}},
	}
	text := AssembleText(ins)
	return Image{Entry: MemBot, TextPos: MemBot, DataPos: MemBot + int64(len(text)), Text: text}
}
