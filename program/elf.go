package program

import (
	"debug/elf"
	"errors"
	"fmt"
	"strings"
)

// OpenELF loads an ELF executable or object into an in-memory Image.
func OpenELF(path string) (*Image, error) {
	f, err := elf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("unable to open ELF file %q: %w", path, err)
	}
	defer f.Close()
	return NewFromELF(f)
}

// NewFromELF builds an Image from an already opened ELF file. Allocatable
// sections become memory blocks in the loadable space, SHT_NOBITS ones
// uninitialized. STT_FUNC symbols become function entries: undefined symbols
// are externals, symbols landing inside a procedure linkage table section are
// thunks.
func NewFromELF(f *elf.File) (*Image, error) {
	arch, err := elfArch(f)
	if err != nil {
		return nil, err
	}
	img := NewImage(arch)

	for _, s := range f.Sections {
		if s.Flags&elf.SHF_ALLOC == 0 || s.Size == 0 {
			continue
		}
		b := Block{
			Name:        s.Name,
			Start:       s.Addr,
			Size:        s.Size,
			Space:       SpaceRAM,
			Initialized: s.Type != elf.SHT_NOBITS,
		}
		var data []byte
		if b.Initialized {
			if data, err = s.Data(); err != nil {
				return nil, fmt.Errorf("unable to read section %q: %w", s.Name, err)
			}
			// compressed sections expand, keep block size consistent
			b.Size = uint64(len(data))
		}
		if err := img.AddBlock(b, data); err != nil {
			return nil, err
		}
	}

	syms, err := f.Symbols()
	if err != nil && !errors.Is(err, elf.ErrNoSymbols) {
		return nil, fmt.Errorf("unable to read symbol table: %w", err)
	}
	for _, sym := range syms {
		if elf.ST_TYPE(sym.Info) != elf.STT_FUNC || len(sym.Name) == 0 {
			continue
		}
		fn := Function{
			Name:     sym.Name,
			Entry:    sym.Value,
			External: sym.Section == elf.SHN_UNDEF,
		}
		fn.Thunk = !fn.External && inPLT(f, sym.Value)
		img.AddFunction(fn)
	}
	return img, nil
}

// inPLT reports whether addr falls inside a procedure linkage table section.
func inPLT(f *elf.File, addr uint64) bool {
	for _, s := range f.Sections {
		if !strings.HasPrefix(s.Name, ".plt") {
			continue
		}
		if addr >= s.Addr && addr < s.Addr+s.Size {
			return true
		}
	}
	return false
}

// elfArch maps machine/class to a decompiler language and compiler spec pair.
func elfArch(f *elf.File) (Arch, error) {
	switch f.Machine {
	case elf.EM_X86_64:
		return Arch{"x86:LE:64:default", "gcc"}, nil
	case elf.EM_386:
		return Arch{"x86:LE:32:default", "gcc"}, nil
	case elf.EM_AARCH64:
		return Arch{"AARCH64:LE:64:v8A", "gcc"}, nil
	case elf.EM_ARM:
		return Arch{"ARM:LE:32:v8", "default"}, nil
	case elf.EM_RISCV:
		if f.Class == elf.ELFCLASS64 {
			return Arch{"RISCV:LE:64:RV64IC", "gcc"}, nil
		}
		return Arch{"RISCV:LE:32:RV32IC", "gcc"}, nil
	default:
		return Arch{}, fmt.Errorf("unsupported ELF machine %v", f.Machine)
	}
}
