package export

import "dtx/program"

// symbol is one entry of the fixture's symbol list.
type symbol struct {
	offset uint64
	name   string
}

// collectSymbols keeps every function except externals, in host enumeration
// order. Thunks stay in: the harness needs their addresses to resolve calls
// even though they are never decompiled themselves.
func collectSymbols(funcs []program.Function) []symbol {
	var out []symbol
	for _, f := range funcs {
		if f.External {
			continue
		}
		out = append(out, symbol{offset: f.Entry, name: f.Name})
	}
	return out
}
