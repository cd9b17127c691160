package program

import (
	"strings"
	"testing"
)

func TestDescribe(t *testing.T) {
	img := NewImage(Arch{Language: "x86:LE:64:default", CompilerSpec: "gcc"})
	if err := img.AddBlock(Block{Name: ".text", Start: 0x401000, Size: 4, Space: SpaceRAM, Initialized: true}, []byte{0x90, 0x90, 0x90, 0xc3}); err != nil {
		t.Fatalf("AddBlock() error = %v", err)
	}
	if err := img.AddBlock(Block{Name: ".bss", Start: 0x402000, Size: 8, Space: SpaceRAM}, nil); err != nil {
		t.Fatalf("AddBlock() error = %v", err)
	}
	img.AddFunction(Function{Name: "main", Entry: 0x401000})
	img.AddFunction(Function{Name: "fwd", Entry: 0x401002, Thunk: true})
	img.AddFunction(Function{Name: "puts", External: true})

	got := Describe(img)

	for _, want := range []string{
		"program x86:LE:64:default:gcc\n",
		"    .text ram:0x401000+0x4 initialized\n",
		"    .bss ram:0x402000+0x8 uninitialized\n",
		"    0x401000: \"main\"\n",
		"    0x401002 thunk: \"fwd\"\n",
		"    0x0 external: \"puts\"\n",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("Describe() output missing %q:\n%s", want, got)
		}
	}
}
