// Package program defines a narrow read-only view of an already-analyzed
// binary: its architecture, memory blocks, raw bytes and function table.
// Export code queries this interface only and makes no assumption about how
// the underlying model is stored.
package program

import "fmt"

// SpaceRAM is the canonical name of the loadable memory address space. Blocks
// belonging to any other space (headers, external stubs, overlays) carry no
// exportable image bytes.
const SpaceRAM = "ram"

// Arch identifies processor language and compiler convention of the analyzed
// program.
type Arch struct {
	Language     string
	CompilerSpec string
}

func (a Arch) String() string {
	return fmt.Sprintf("%s:%s", a.Language, a.CompilerSpec)
}

// Block is a contiguous named region of the program's address space. Only
// initialized blocks have determinate byte content.
type Block struct {
	Name        string
	Start       uint64
	Size        uint64
	Space       string
	Initialized bool
}

// Function is a single entry from the program's function table.
type Function struct {
	Name     string
	Entry    uint64
	Thunk    bool
	External bool
}

// Program is the read-only host API. Implementations must keep Blocks and
// Functions enumeration order stable between calls within a single run.
type Program interface {
	Arch() Arch
	Blocks() []Block
	// ReadBytes fills buf with len(buf) bytes starting at addr. A read that
	// cannot be satisfied in full is an error.
	ReadBytes(addr uint64, buf []byte) error
	Functions() []Function
}
