package machine

import "fmt"

// operandKind discriminates the five addressing modes. Grounded on the
// teacher's per-mode addressing functions (amIMM, amZP0, amABS, amIZX,
// amIZY), generalized from "prime addrAbs/fetched for the next opcode
// function" to "resolve to a value or a storage location on demand",
// since x86lite operands carry their own shape instead of being selected
// by an opcode lookup table.
type operandKind uint8

const (
	kindImm operandKind = iota
	kindReg
	kindInd1
	kindInd2
	kindInd3
	kindLabel // unresolved label; valid only before linking, rejected at execute time
)

// Operand is one of Imm, Reg, Ind1, Ind2 or Ind3. Use the constructor
// functions below rather than building an Operand literal.
type Operand struct {
	kind operandKind
	imm  int64
	reg  Register
	disp int64
	lbl  string
}

// Imm constructs a literal-constant operand.
func Imm(n int64) Operand { return Operand{kind: kindImm, imm: n} }

// Reg constructs a register operand.
func Reg(r Register) Operand { return Operand{kind: kindReg, reg: r} }

// Ind1 constructs an absolute-address memory operand.
func Ind1(addr int64) Operand { return Operand{kind: kindInd1, imm: addr} }

// Ind2 constructs a register-indirect memory operand.
func Ind2(r Register) Operand { return Operand{kind: kindInd2, reg: r} }

// Ind3 constructs a displaced register-indirect memory operand: [r+d].
func Ind3(d int64, r Register) Operand { return Operand{kind: kindInd3, disp: d, reg: r} }

// Label constructs an unresolved-label placeholder. It is rejected the
// moment the executor tries to resolve it; the assembler/linker that owns
// label resolution is out of scope for this package.
func Label(name string) Operand { return Operand{kind: kindLabel, lbl: name} }

func (o Operand) String() string {
	switch o.kind {
	case kindImm:
		return fmt.Sprintf("$%d", o.imm)
	case kindReg:
		return "%" + o.reg.String()
	case kindInd1:
		return fmt.Sprintf("%#x", o.imm)
	case kindInd2:
		return fmt.Sprintf("(%%%s)", o.reg.String())
	case kindInd3:
		return fmt.Sprintf("%d(%%%s)", o.disp, o.reg.String())
	case kindLabel:
		return "<unresolved:" + o.lbl + ">"
	default:
		return "?operand?"
	}
}

// effectiveAddressRaw computes the address an Ind* operand denotes,
// without touching memory. Calling it on a non-indirect operand is an
// invariant violation.
func (o Operand) effectiveAddressRaw(m *Machine) (int64, error) {
	switch o.kind {
	case kindInd1:
		return o.imm, nil
	case kindInd2:
		return m.Registers[o.reg], nil
	case kindInd3:
		return m.Registers[o.reg] + o.disp, nil
	case kindLabel:
		return 0, malformed("unresolved label %q reached execute time", o.lbl)
	default:
		return 0, malformed("operand %s is not an indirect addressing mode", o)
	}
}

// EffectiveAddress is the public form of effectiveAddressRaw, used
// exclusively by Leaq.
func (o Operand) EffectiveAddress(m *Machine) (int64, error) {
	return o.effectiveAddressRaw(m)
}

// ValueOf reads the value an operand denotes.
func (o Operand) ValueOf(m *Machine) (int64, error) {
	switch o.kind {
	case kindImm:
		return o.imm, nil
	case kindReg:
		return m.Registers[o.reg], nil
	case kindInd1, kindInd2, kindInd3:
		addr, err := o.effectiveAddressRaw(m)
		if err != nil {
			return 0, err
		}
		return m.readQuad(addr)
	case kindLabel:
		return 0, malformed("unresolved label %q reached execute time", o.lbl)
	default:
		return 0, malformed("unknown operand kind in %s", o)
	}
}

// Store writes value to the location an operand denotes. Imm is never a
// valid destination.
func (o Operand) Store(m *Machine, value int64) error {
	switch o.kind {
	case kindReg:
		m.Registers[o.reg] = value
		return nil
	case kindInd1, kindInd2, kindInd3:
		addr, err := o.effectiveAddressRaw(m)
		if err != nil {
			return err
		}
		return m.writeQuad(addr, value)
	case kindImm:
		return malformed("cannot store to an immediate operand")
	case kindLabel:
		return malformed("unresolved label %q reached execute time", o.lbl)
	default:
		return malformed("unknown operand kind in %s", o)
	}
}

// isIndirect reports whether o is one of Ind1/Ind2/Ind3.
func (o Operand) isIndirect() bool {
	switch o.kind {
	case kindInd1, kindInd2, kindInd3:
		return true
	default:
		return false
	}
}
