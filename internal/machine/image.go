package machine

// Image is an already-resolved program: an entry point plus text and data
// segments laid out at fixed positions. It is the boundary the
// out-of-scope assembler/linker hands off to the core; nothing in this
// package resolves labels or parses assembly text.
type Image struct {
	Entry   int64
	TextPos int64
	DataPos int64
	Text    []SymbolicByte
	Data    []SymbolicByte
}

// NewMachine builds a Machine from a resolved Image: it seeds Rip and Rsp,
// zeroes every other register and flag, and writes the text and data
// segments into memory. It performs exactly the load contract and nothing
// else — no relocation, no symbol resolution.
func NewMachine(img Image) (*Machine, error) {
	m := newMachine()

	if err := validateSegment(img.TextPos, len(img.Text)); err != nil {
		return nil, err
	}
	if err := validateSegment(img.DataPos, len(img.Data)); err != nil {
		return nil, err
	}
	if segmentsOverlap(img.TextPos, len(img.Text), img.DataPos, len(img.Data)) {
		return nil, segfaultAt(img.DataPos)
	}

	if err := m.writeSegment(img.TextPos, img.Text); err != nil {
		return nil, err
	}
	if err := m.writeSegment(img.DataPos, img.Data); err != nil {
		return nil, err
	}

	m.Registers[Rip] = img.Entry
	m.Registers[Rsp] = MemTop - InsSize

	return m, nil
}

func validateSegment(pos int64, length int) error {
	if length == 0 {
		return nil
	}
	end := pos + int64(length) - 1
	if pos < MemBot || end >= MemTop {
		return segfaultAt(pos)
	}
	return nil
}

func segmentsOverlap(aPos int64, aLen int, bPos int64, bLen int) bool {
	if aLen == 0 || bLen == 0 {
		return false
	}
	aEnd := aPos + int64(aLen)
	bEnd := bPos + int64(bLen)
	return aPos < bEnd && bPos < aEnd
}

// AssembleText packs a sequence of instructions into a text segment: each
// instruction occupies one InsSize-byte slot, InsHead followed by seven
// InsTail bytes. It performs no label resolution; callers pass already
// resolved Instruction values.
func AssembleText(instructions []Instruction) []SymbolicByte {
	out := make([]SymbolicByte, 0, len(instructions)*int(InsSize))
	for _, ins := range instructions {
		slot := serializeIns(ins)
		out = append(out, slot[:]...)
	}
	return out
}

// AssembleData concatenates a list of data chunks into one data segment.
// Each chunk is typically the output of serializeString or a literal
// []SymbolicByte built with Raw.
func AssembleData(chunks ...[]SymbolicByte) []SymbolicByte {
	var total int
	for _, c := range chunks {
		total += len(c)
	}
	out := make([]SymbolicByte, 0, total)
	for _, c := range chunks {
		out = append(out, c...)
	}
	return out
}
