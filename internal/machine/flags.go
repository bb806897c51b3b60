package machine

import "math/bits"

// applyFlags is the sole writer of m.Flags. It centralizes the decision of
// which flags an opcode touches and how, the same role the teacher's
// SetFlag/GetFlag pair plays for the 6502's single status byte — except
// here the decision of *what* to set is centralized too, since OF/SF/ZF
// are shared by fourteen opcodes with overlapping but not identical rules.
//
// dest and src are the pre-instruction operand values; result is the
// post-instruction value already computed by the caller. Not every opcode
// uses every argument: shift opcodes pass the shift amount as src, Imulq
// passes both factors, Negq/Notq pass dest only.
func applyFlags(m *Machine, op Opcode, dest, src, result int64) {
	switch op {
	case Addq, Incq:
		m.Flags.SF = result < 0
		m.Flags.ZF = result == 0
		m.Flags.OF = sameSign(dest, src) && !sameSign(dest, result)

	case Subq, Decq, Cmpq:
		m.Flags.SF = result < 0
		m.Flags.ZF = result == 0
		m.Flags.OF = src == minInt64 || (!sameSign(dest, src) && !sameSign(dest, result))

	case Imulq:
		hi, lo := bits.Mul64(uint64(dest), uint64(src))
		full := int64(lo)
		// The product fits in int64 iff the high word is the sign
		// extension of the low word's top bit.
		wantHi := uint64(0)
		if full < 0 {
			wantHi = ^uint64(0)
		}
		// bits.Mul64 is unsigned; recover the signed 128-bit product by
		// correcting for negative operands the same way a widening
		// signed multiply would.
		if dest < 0 {
			hi -= uint64(src)
		}
		if src < 0 {
			hi -= uint64(dest)
		}
		m.Flags.OF = hi != wantHi

	case Andq, Orq, Xorq, Notq:
		m.Flags.SF = result < 0
		m.Flags.ZF = result == 0
		m.Flags.OF = false

	case Negq:
		m.Flags.SF = result < 0
		m.Flags.ZF = result == 0
		m.Flags.OF = dest == minInt64

	case Shlq:
		if src == 0 {
			return
		}
		m.Flags.SF = result < 0
		m.Flags.ZF = result == 0
		if src == 1 {
			m.Flags.OF = (dest>>62)&1 != (dest>>63)&1
		}

	case Shrq:
		if src == 0 {
			return
		}
		m.Flags.SF = result < 0
		m.Flags.ZF = result == 0
		if src == 1 {
			m.Flags.OF = dest < 0
		}

	case Sarq:
		if src == 0 {
			return
		}
		m.Flags.SF = result < 0
		m.Flags.ZF = result == 0
		if src == 1 {
			m.Flags.OF = false
		}

	default:
		// Movq, Leaq, Pushq, Popq, Callq, Retq, Jmp, J, Set never reach
		// applyFlags; Step never calls it for them.
	}
}

const minInt64 = -1 << 63

// sameSign reports whether a and b have the same sign, treating 0 as
// non-negative like every other non-negative value. Used to detect the
// "both inputs agree, result disagrees" overflow shape shared by add and
// subtract.
func sameSign(a, b int64) bool {
	return (a < 0) == (b < 0)
}
