package program

import (
	"fmt"

	"dtx/utils/debug"
)

// Describe renders a human readable layout of the loaded program, one block
// and one function per line. Intended for debug reports, the fixture document
// never depends on it.
func Describe(p Program) string {
	tw := debug.NewTreeWriter()
	tw.Line(0, "program %s", p.Arch())

	tw.Line(1, "blocks")
	for _, b := range p.Blocks() {
		state := "initialized"
		if !b.Initialized {
			state = "uninitialized"
		}
		tw.Line(2, "%s %s:0x%x+0x%x %s", b.Name, b.Space, b.Start, b.Size, state)
	}

	tw.Line(1, "functions")
	for _, f := range p.Functions() {
		label := fmt.Sprintf("0x%x", f.Entry)
		if f.Thunk {
			label += " thunk"
		}
		if f.External {
			label += " external"
		}
		// names come from symbol tables and may hold anything, quote them
		tw.TextBlock(2, label, f.Name)
	}
	return tw.String()
}
