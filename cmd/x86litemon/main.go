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

package main

import (
	"flag"
	"fmt"
	"log"
	"strings"

	ui "github.com/gizak/termui/v3"
	"github.com/gizak/termui/v3/widgets"

	"github.com/master-g/x86lite/internal/machine"
)

var (
	m    *machine.Machine
	done bool

	paragraphRegs  *widgets.Paragraph
	paragraphFlags *widgets.Paragraph
	paragraphNext  *widgets.Paragraph
	paragraphStack *widgets.Paragraph
	paragraphTips  *widgets.Paragraph
)

func renderRegs(p *widgets.Paragraph) {
	sb := &strings.Builder{}
	for r := machine.Rax; r <= machine.R15; r++ {
		sb.WriteString(fmt.Sprintf("%-4s $%016x\n", r, m.Registers[r]))
	}
	sb.WriteString(fmt.Sprintf("%-4s $%016x\n", machine.Rip, m.Registers[machine.Rip]))
	p.Text = sb.String()
}

func renderFlags(p *widgets.Paragraph) {
	sb := &strings.Builder{}
	for _, f := range []struct {
		name string
		set  bool
	}{
		{"OF", m.Flags.OF},
		{"SF", m.Flags.SF},
		{"ZF", m.Flags.ZF},
	} {
		sb.WriteRune('[')
		sb.WriteString(f.name)
		sb.WriteRune(']')
		sb.WriteString("(fg:")
		if f.set {
			sb.WriteString("green")
		} else {
			sb.WriteString("red")
		}
		sb.WriteString(") ")
	}
	p.Text = sb.String()
}

func renderNext(p *widgets.Paragraph) {
	if done {
		p.Text = "<halted>"
		return
	}
	b, err := machine.Peek(m, m.Registers[machine.Rip])
	if err != nil || !b.IsInsHead() {
		p.Text = "<fault>"
		return
	}
	p.Text = b.Instruction().String()
}

func renderStack(p *widgets.Paragraph) {
	sb := &strings.Builder{}
	sp := m.Registers[machine.Rsp]
	for i := int64(0); i < 8; i++ {
		addr := sp + i*8
		if addr >= machine.MemTop {
			break
		}
		v, err := machine.PeekQuad(m, addr)
		if err != nil {
			break
		}
		sb.WriteString(fmt.Sprintf("%#x: %d\n", addr, v))
	}
	p.Text = sb.String()
}

func renderTips(p *widgets.Paragraph) {
	p.Text = "N = step    R = run to halt    Q = quit"
}

func draw() {
	renderRegs(paragraphRegs)
	renderFlags(paragraphFlags)
	renderNext(paragraphNext)
	renderStack(paragraphStack)
	renderTips(paragraphTips)
	ui.Render(paragraphRegs, paragraphFlags, paragraphNext, paragraphStack, paragraphTips)
}

func initLayout() {
	paragraphRegs = widgets.NewParagraph()
	paragraphRegs.Title = "Registers"
	paragraphRegs.SetRect(0, 0, 32, 20)

	paragraphFlags = widgets.NewParagraph()
	paragraphFlags.Title = "Flags"
	paragraphFlags.SetRect(32, 0, 64, 3)

	paragraphNext = widgets.NewParagraph()
	paragraphNext.Title = "Next instruction"
	paragraphNext.SetRect(32, 3, 64, 6)

	paragraphStack = widgets.NewParagraph()
	paragraphStack.Title = "Stack"
	paragraphStack.SetRect(32, 6, 64, 16)

	paragraphTips = widgets.NewParagraph()
	paragraphTips.Title = "Keys"
	paragraphTips.SetRect(0, 20, 64, 23)
}

func step() {
	if done {
		return
	}
	if err := m.Step(); err != nil {
		done = true
		return
	}
	if m.Registers[machine.Rip] == machine.ExitAddr {
		done = true
	}
}

func run() {
	for !done {
		step()
	}
}

func main() {
	fixture := flag.String("fixture", "sum-to-ten", "fixture name to load")
	flag.Parse()

	build, ok := machine.Fixtures[*fixture]
	if !ok {
		log.Fatalf("x86litemon: unknown fixture %q", *fixture)
	}

	var err error
	m, err = machine.NewMachine(build())
	if err != nil {
		log.Fatalf("x86litemon: failed to load fixture: %v", err)
	}

	if err := ui.Init(); err != nil {
		log.Fatalf("failed to initialize termui: %v", err)
	}
	defer ui.Close()

	initLayout()
	draw()

	for e := range ui.PollEvents() {
		if e.Type != ui.KeyboardEvent {
			continue
		}
		switch e.ID {
		case "q", "Q", "<C-c>":
			return
		case "n", "N":
			step()
		case "r", "R":
			run()
		}
		draw()
	}
}
