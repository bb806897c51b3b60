// Copyright © 2019 mg
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in
// all copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
// THE SOFTWARE.

package machine

// memory is the fixed MemSize-byte window backing a Machine. It plays the
// role the teacher's memory.Memory interface plays for the NES CPU, sized
// down to a single flat array since x86lite has no mirrored address
// ranges or memory-mapped devices to dispatch across.
type memory [MemSize]SymbolicByte

func newMemory() memory {
	var m memory
	for i := range m {
		m[i] = Raw(0)
	}
	return m
}

// addressToIndex validates addr against [MemBot, MemTop) and returns the
// backing-array offset, or a segfault.
func addressToIndex(addr int64) (int64, error) {
	if addr < MemBot || addr >= MemTop {
		return 0, segfaultAt(addr)
	}
	return addr - MemBot, nil
}

// readByte and writeByte are the only two primitives that touch mem
// directly; every higher-level read/write (quadword, instruction fetch)
// is built from these two plus addressToIndex.
func (m *Machine) readByte(addr int64) (SymbolicByte, error) {
	idx, err := addressToIndex(addr)
	if err != nil {
		return SymbolicByte{}, err
	}
	return m.mem[idx], nil
}

func (m *Machine) writeByte(addr int64, b SymbolicByte) error {
	idx, err := addressToIndex(addr)
	if err != nil {
		return err
	}
	m.mem[idx] = b
	return nil
}

// readQuad decodes the 8-byte little-endian quadword starting at addr.
// Every byte of the quadword is touched so instruction-straddling reads
// behave per decodeI64's zero-fill rule rather than silently truncating
// to a single byte, which is the bug the distilled spec calls out in the
// reference implementation this one replaces.
func (m *Machine) readQuad(addr int64) (int64, error) {
	var raw [8]byte
	for i := int64(0); i < InsSize; i++ {
		b, err := m.readByte(addr + i)
		if err != nil {
			return 0, err
		}
		raw[i] = b.RawByte()
	}
	return decodeI64(raw), nil
}

// writeQuad blits value as 8 little-endian Raw bytes starting at addr.
func (m *Machine) writeQuad(addr int64, value int64) error {
	raw := encodeI64(value)
	for i := int64(0); i < InsSize; i++ {
		if err := m.writeByte(addr+i, Raw(raw[i])); err != nil {
			return err
		}
	}
	return nil
}

// writeSegment copies bytes into memory starting at addr, used by
// NewMachine to lay down the text and data segments of a loaded Image.
func (m *Machine) writeSegment(addr int64, bytes []SymbolicByte) error {
	for i, b := range bytes {
		if err := m.writeByte(addr+int64(i), b); err != nil {
			return err
		}
	}
	return nil
}
