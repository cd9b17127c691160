package program

import (
	"bytes"
	"testing"
)

func TestImage_AddBlockValidation(t *testing.T) {
	img := NewImage(Arch{Language: "x86:LE:64:default", CompilerSpec: "gcc"})

	err := img.AddBlock(Block{Name: "short", Start: 0x1000, Size: 8, Space: SpaceRAM, Initialized: true}, []byte{1, 2})
	if err == nil {
		t.Error("expected error for initialized block with short data")
	}

	err = img.AddBlock(Block{Name: "bss", Start: 0x2000, Size: 8, Space: SpaceRAM}, []byte{1, 2, 3, 4, 5, 6, 7, 8})
	if err == nil {
		t.Error("expected error for uninitialized block with data")
	}

	if err = img.AddBlock(Block{Name: "bss", Start: 0x2000, Size: 8, Space: SpaceRAM}, nil); err != nil {
		t.Errorf("AddBlock(uninitialized): %v", err)
	}
}

func TestImage_ReadBytes(t *testing.T) {
	img := NewImage(Arch{Language: "x86:LE:64:default", CompilerSpec: "gcc"})
	content := []byte{10, 20, 30, 40, 50, 60, 70, 80}
	if err := img.AddBlock(Block{Name: "data", Start: 0x1000, Size: 8, Space: SpaceRAM, Initialized: true}, content); err != nil {
		t.Fatal(err)
	}
	if err := img.AddBlock(Block{Name: "bss", Start: 0x2000, Size: 8, Space: SpaceRAM}, nil); err != nil {
		t.Fatal(err)
	}

	buf := make([]byte, 4)
	if err := img.ReadBytes(0x1002, buf); err != nil {
		t.Fatalf("ReadBytes: %v", err)
	}
	if !bytes.Equal(buf, []byte{30, 40, 50, 60}) {
		t.Errorf("ReadBytes at 0x1002 = %v", buf)
	}

	// read crossing block end fails
	if err := img.ReadBytes(0x1006, buf); err == nil {
		t.Error("expected error for read past block end")
	}
	// uninitialized blocks hold no determinate bytes
	if err := img.ReadBytes(0x2000, buf); err == nil {
		t.Error("expected error for read from uninitialized block")
	}
	// unmapped address
	if err := img.ReadBytes(0x9000, buf); err == nil {
		t.Error("expected error for unmapped read")
	}
}

func TestImage_EnumerationOrder(t *testing.T) {
	img := NewImage(Arch{Language: "x86:LE:64:default", CompilerSpec: "gcc"})

	// deliberately out of address order, enumeration must keep insertion order
	names := []string{"zeta", "alpha", "mid"}
	starts := []uint64{0x9000, 0x1000, 0x5000}
	for i, n := range names {
		if err := img.AddBlock(Block{Name: n, Start: starts[i], Size: 1, Space: SpaceRAM, Initialized: true}, []byte{0}); err != nil {
			t.Fatal(err)
		}
		img.AddFunction(Function{Name: n, Entry: starts[i]})
	}

	for i, b := range img.Blocks() {
		if b.Name != names[i] {
			t.Errorf("block %d = %q, want %q", i, b.Name, names[i])
		}
	}
	for i, f := range img.Functions() {
		if f.Name != names[i] {
			t.Errorf("function %d = %q, want %q", i, f.Name, names[i])
		}
	}
}

func TestArch_String(t *testing.T) {
	a := Arch{Language: "x86:LE:64:default", CompilerSpec: "gcc"}
	if got := a.String(); got != "x86:LE:64:default:gcc" {
		t.Errorf("Arch.String() = %q", got)
	}
}
