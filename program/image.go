package program

import (
	"fmt"
	"slices"
)

// Image is an in-memory Program implementation. Blocks and functions are kept
// in insertion order, which becomes the enumeration order seen by consumers.
type Image struct {
	arch   Arch
	blocks []Block
	data   [][]byte // parallel to blocks, nil for uninitialized entries
	funcs  []Function
}

func NewImage(arch Arch) *Image {
	return &Image{arch: arch}
}

// AddBlock registers a memory block. Initialized blocks must supply exactly
// Size bytes of content, uninitialized blocks must supply none.
func (im *Image) AddBlock(b Block, data []byte) error {
	if b.Initialized && uint64(len(data)) != b.Size {
		return fmt.Errorf("block %q: have %d bytes of data, expected %d", b.Name, len(data), b.Size)
	}
	if !b.Initialized && data != nil {
		return fmt.Errorf("block %q: uninitialized block cannot carry data", b.Name)
	}
	im.blocks = append(im.blocks, b)
	im.data = append(im.data, data)
	return nil
}

func (im *Image) AddFunction(f Function) {
	im.funcs = append(im.funcs, f)
}

func (im *Image) Arch() Arch {
	return im.arch
}

func (im *Image) Blocks() []Block {
	return slices.Clone(im.blocks)
}

func (im *Image) Functions() []Function {
	return slices.Clone(im.funcs)
}

// ReadBytes serves a read fully contained in a single initialized block.
func (im *Image) ReadBytes(addr uint64, buf []byte) error {
	want := uint64(len(buf))
	for i, b := range im.blocks {
		if im.data[i] == nil {
			continue
		}
		if addr >= b.Start && addr-b.Start+want <= b.Size {
			copy(buf, im.data[i][addr-b.Start:])
			return nil
		}
	}
	return fmt.Errorf("no initialized block covers %d bytes at 0x%x", want, addr)
}
