package export

import (
	"fmt"

	"dtx/program"
)

// Per-function stringmatch bounds: the function's own name must show up in
// the decompiler output at least once and at most this many times.
const (
	matchMin = 1
	matchMax = 100
)

// scriptFunctions filters the function list for verification script
// generation. This is stricter than the symbol list: thunks merely forward to
// another function and externals have no body, neither can be decompiled.
//
// Scripts select functions by name, so a function without a name or two
// functions sharing one would produce a fixture that silently verifies the
// wrong thing. Both are fatal data errors.
func scriptFunctions(funcs []program.Function) ([]program.Function, error) {
	seen := make(map[string]uint64)
	var out []program.Function
	for _, f := range funcs {
		if f.Thunk || f.External {
			continue
		}
		if len(f.Name) == 0 {
			return nil, fmt.Errorf("function at 0x%x has no name", f.Entry)
		}
		if prev, dup := seen[f.Name]; dup {
			return nil, fmt.Errorf("duplicate function name %q (entries 0x%x and 0x%x)", f.Name, prev, f.Entry)
		}
		seen[f.Name] = f.Entry
		out = append(out, f)
	}
	return out, nil
}

// scriptCommands is the fixed verification sequence replayed by the harness
// for every exportable function.
func scriptCommands(name string) []string {
	return []string{
		"lo fu " + name,
		"decompile",
		"print C",
		"quit",
	}
}
