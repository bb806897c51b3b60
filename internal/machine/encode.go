package machine

import "encoding/binary"

// encodeI64 packs v into 8 little-endian bytes. encoding/binary is the
// library the retrieved pack reaches for whenever it needs exactly this
// (GVM's uint32ToBytes, wazero's wasm/binary package); x86lite just widens
// it to a quadword instead of hand-rolling the shifts the teacher's own
// read16 uses for its narrower 16-bit case.
func encodeI64(v int64) [8]byte {
	var raw [8]byte
	binary.LittleEndian.PutUint64(raw[:], uint64(v))
	return raw
}

// decodeI64 is the inverse of encodeI64.
func decodeI64(raw [8]byte) int64 {
	return int64(binary.LittleEndian.Uint64(raw[:]))
}

// serializeString returns the Raw-byte encoding of s: its bytes followed
// by a single zero terminator. It exists for fixtures and tests that want
// to lay out a data segment; the core never parses strings back out.
func serializeString(s string) []SymbolicByte {
	out := make([]SymbolicByte, 0, len(s)+1)
	for i := 0; i < len(s); i++ {
		out = append(out, Raw(s[i]))
	}
	return append(out, Raw(0))
}

// serializeIns returns the 8-byte symbolic encoding of one instruction
// slot: an InsHead carrying the decoded instruction, followed by seven
// InsTail bytes that are never executed directly.
func serializeIns(ins Instruction) [8]SymbolicByte {
	var slot [8]SymbolicByte
	slot[0] = InsHead(ins)
	for i := 1; i < len(slot); i++ {
		slot[i] = insTail
	}
	return slot
}
