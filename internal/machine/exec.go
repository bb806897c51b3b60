package machine

// Step performs one fetch-decode-execute cycle: it is named and shaped
// after the teacher's Clock(), generalized from "decode one byte via the
// opcode lookup table" to "decode one InsHead byte that already carries
// its instruction," since x86lite bytes are self-describing.
func (m *Machine) Step() error {
	ip := m.Registers[Rip]
	b, err := m.readByte(ip)
	if err != nil {
		return err
	}
	if !b.IsInsHead() {
		return malformed("no instruction at %#x", ip)
	}
	ins := b.Instruction()

	trace(ins, m)

	jumped, err := m.execute(ins)
	if err != nil {
		return err
	}
	if !jumped {
		m.Registers[Rip] = ip + InsSize
	}
	return nil
}

// execute dispatches a single decoded instruction. It reports whether the
// instruction itself set Rip (jump/call/ret), in which case Step must not
// advance it again.
func (m *Machine) execute(ins Instruction) (jumped bool, err error) {
	switch ins.Op {
	case Movq:
		src, dest, err := m.binaryOperands(ins)
		if err != nil {
			return false, err
		}
		v, err := src.ValueOf(m)
		if err != nil {
			return false, err
		}
		return false, dest.Store(m, v)

	case Leaq:
		src, dest, err := m.binaryOperands(ins)
		if err != nil {
			return false, err
		}
		if !src.isIndirect() {
			return false, malformed("leaq source %s is not an indirect operand", src)
		}
		addr, err := src.EffectiveAddress(m)
		if err != nil {
			return false, err
		}
		return false, dest.Store(m, addr)

	case Addq, Subq, Imulq, Andq, Orq, Xorq:
		src, dest, err := m.binaryOperands(ins)
		if err != nil {
			return false, err
		}
		a, err := dest.ValueOf(m)
		if err != nil {
			return false, err
		}
		b, err := src.ValueOf(m)
		if err != nil {
			return false, err
		}
		r := arithmetic(ins.Op, a, b)
		applyFlags(m, ins.Op, a, b, r)
		return false, dest.Store(m, r)

	case Cmpq:
		src, dest, err := m.binaryOperands(ins)
		if err != nil {
			return false, err
		}
		a, err := dest.ValueOf(m)
		if err != nil {
			return false, err
		}
		b, err := src.ValueOf(m)
		if err != nil {
			return false, err
		}
		applyFlags(m, Cmpq, a, b, a-b)
		return false, nil

	case Incq, Decq, Notq, Negq:
		dest, err := m.unaryOperand(ins)
		if err != nil {
			return false, err
		}
		a, err := dest.ValueOf(m)
		if err != nil {
			return false, err
		}
		var r int64
		switch ins.Op {
		case Incq:
			r = a + 1
		case Decq:
			r = a - 1
		case Notq:
			r = ^a
		case Negq:
			r = -a
		}
		applyFlags(m, ins.Op, a, 1, r)
		return false, dest.Store(m, r)

	case Shlq, Shrq, Sarq:
		return false, m.execShift(ins)

	case Pushq:
		src, err := m.unaryOperand(ins)
		if err != nil {
			return false, err
		}
		v, err := src.ValueOf(m)
		if err != nil {
			return false, err
		}
		return false, m.push(v)

	case Popq:
		dest, err := m.unaryOperand(ins)
		if err != nil {
			return false, err
		}
		v, err := m.pop()
		if err != nil {
			return false, err
		}
		return false, dest.Store(m, v)

	case Jmp:
		src, err := m.unaryOperand(ins)
		if err != nil {
			return false, err
		}
		v, err := src.ValueOf(m)
		if err != nil {
			return false, err
		}
		m.Registers[Rip] = v
		return true, nil

	case J:
		src, err := m.unaryOperand(ins)
		if err != nil {
			return false, err
		}
		if !EvalCondition(ins.Cond, m.Flags) {
			return false, nil
		}
		v, err := src.ValueOf(m)
		if err != nil {
			return false, err
		}
		m.Registers[Rip] = v
		return true, nil

	case Set:
		dest, err := m.unaryOperand(ins)
		if err != nil {
			return false, err
		}
		var v int64
		if EvalCondition(ins.Cond, m.Flags) {
			v = 1
		}
		return false, dest.Store(m, v)

	case Callq:
		src, err := m.unaryOperand(ins)
		if err != nil {
			return false, err
		}
		v, err := src.ValueOf(m)
		if err != nil {
			return false, err
		}
		retAddr := m.Registers[Rip] + InsSize
		if err := m.push(retAddr); err != nil {
			return false, err
		}
		m.Registers[Rip] = v
		return true, nil

	case Retq:
		v, err := m.pop()
		if err != nil {
			return false, err
		}
		m.Registers[Rip] = v
		return true, nil

	default:
		return false, malformed("unknown opcode %s", ins.Op)
	}
}

// binaryOperands validates and returns the (src, dest) pair of a
// two-operand instruction, stored src-then-dest in AT&T order.
func (m *Machine) binaryOperands(ins Instruction) (src, dest Operand, err error) {
	if len(ins.Ops) != 2 {
		return Operand{}, Operand{}, malformed("%s requires 2 operands, got %d", ins.Op, len(ins.Ops))
	}
	return ins.Ops[0], ins.Ops[1], nil
}

// unaryOperand validates and returns the single operand of a one-operand
// instruction.
func (m *Machine) unaryOperand(ins Instruction) (Operand, error) {
	if len(ins.Ops) != 1 {
		return Operand{}, malformed("%s requires 1 operand, got %d", ins.Op, len(ins.Ops))
	}
	return ins.Ops[0], nil
}

// arithmetic computes the raw (flag-ignorant) result of a two-operand
// arithmetic/logical opcode; applyFlags derives OF/SF/ZF from its output
// and the original operands.
func arithmetic(op Opcode, dest, src int64) int64 {
	switch op {
	case Addq:
		return dest + src
	case Subq:
		return dest - src
	case Imulq:
		return dest * src
	case Andq:
		return dest & src
	case Orq:
		return dest | src
	case Xorq:
		return dest ^ src
	default:
		panic("machine: arithmetic called with non-arithmetic opcode")
	}
}

// execShift handles Shlq/Shrq/Sarq, whose amount operand is restricted to
// an immediate or %rcx the same way real x86 restricts variable shift
// counts to %cl.
func (m *Machine) execShift(ins Instruction) error {
	amtOp, dest, err := m.binaryOperands(ins)
	if err != nil {
		return err
	}
	if amtOp.kind != kindImm && !(amtOp.kind == kindReg && amtOp.reg == Rcx) {
		return malformed("%s shift amount must be an immediate or %%rcx", ins.Op)
	}
	rawAmt, err := amtOp.ValueOf(m)
	if err != nil {
		return err
	}
	amt := rawAmt & 63

	a, err := dest.ValueOf(m)
	if err != nil {
		return err
	}

	var r int64
	switch ins.Op {
	case Shlq:
		r = a << uint(amt)
	case Shrq:
		r = int64(uint64(a) >> uint(amt))
	case Sarq:
		r = a >> uint(amt)
	}
	applyFlags(m, ins.Op, a, amt, r)
	return dest.Store(m, r)
}

// push decrements Rsp by 8 and stores value at the new top of stack.
func (m *Machine) push(value int64) error {
	m.Registers[Rsp] -= InsSize
	return m.writeQuad(m.Registers[Rsp], value)
}

// pop reads the quadword at the top of stack and increments Rsp by 8.
func (m *Machine) pop() (int64, error) {
	v, err := m.readQuad(m.Registers[Rsp])
	if err != nil {
		return 0, err
	}
	m.Registers[Rsp] += InsSize
	return v, nil
}
