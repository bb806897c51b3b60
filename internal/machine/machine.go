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

// Package machine implements the x86lite core: a register file, a flat
// byte-addressable memory, and the fetch-decode-execute cycle that ties
// them together.
package machine

// Register indexes the 17-entry register file. Rip is the last slot, same
// as the teacher reserves its first two slots for pc/sp.
type Register int

const (
	Rax Register = iota
	Rbx
	Rcx
	Rdx
	Rsi
	Rdi
	Rbp
	Rsp
	R08
	R09
	R10
	R11
	R12
	R13
	R14
	R15
	Rip

	NumRegisters = int(Rip) + 1
)

var regNames = [NumRegisters]string{
	Rax: "rax", Rbx: "rbx", Rcx: "rcx", Rdx: "rdx",
	Rsi: "rsi", Rdi: "rdi", Rbp: "rbp", Rsp: "rsp",
	R08: "r08", R09: "r09", R10: "r10", R11: "r11",
	R12: "r12", R13: "r13", R14: "r14", R15: "r15",
	Rip: "rip",
}

func (r Register) String() string {
	if r < 0 || int(r) >= NumRegisters {
		return "?reg?"
	}
	return regNames[r]
}

const (
	// MemBot is the lowest valid address of the simulated address space.
	MemBot int64 = 0x400000
	// MemSize is the number of addressable bytes.
	MemSize int64 = 0x10000
	// MemTop is one past the highest valid address.
	MemTop int64 = MemBot + MemSize
	// InsSize is the width in bytes of a single instruction slot.
	InsSize int64 = 8
	// ExitAddr is the halt sentinel. It deliberately lies outside
	// [MemBot, MemTop) so it can never alias a real address.
	ExitAddr int64 = 0xFDEAD
)

// Flags holds the three condition flags x86lite tracks. They are
// overwritten in a single place (applyFlags) so opcode-specific overflow
// quirks don't leak across the executor.
type Flags struct {
	OF bool
	SF bool
	ZF bool
}

// Machine is the complete simulator state: registers, flags and memory.
// It owns its backing array outright, so independent Machine values never
// alias each other's storage.
type Machine struct {
	Registers [NumRegisters]int64
	Flags     Flags
	mem       memory

	// errcode is set by Run/RunDebug when Step returns a fault and is
	// never cleared; Err surfaces it, mirroring the teacher's sticky
	// vm.errcode.
	errcode error
}

func newMachine() *Machine {
	return &Machine{mem: newMemory()}
}

// programCounter returns a pointer to the Rip slot so callers can read or
// advance it without re-deriving the index, the same convenience the
// teacher gets from *register pc/sp fields.
func (m *Machine) programCounter() *int64 {
	return &m.Registers[Rip]
}
