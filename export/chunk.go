package export

import (
	"fmt"

	"dtx/program"
)

// chunkSize bounds a single host read. Reading large regions in one shot
// risks memory pressure against the host, bounded chunking keeps the peak
// flat regardless of block size.
const chunkSize = 0x10000

// chunk is one bounded slice of a block's bytes.
type chunk struct {
	addr uint64
	data []byte
}

// chunkReader walks an eligible block in increasing-offset order, yielding
// chunks of at most chunkSize bytes that cover the block exactly, no gaps and
// no overlap. It is single-use and not restartable.
type chunkReader struct {
	prog  program.Program
	block program.Block
	off   uint64
}

func newChunkReader(p program.Program, b program.Block) *chunkReader {
	return &chunkReader{prog: p, block: b}
}

// next returns the next chunk, or ok=false once the block is exhausted. A
// failed host read aborts the sequence, there is no retry.
func (r *chunkReader) next() (c chunk, ok bool, err error) {
	if r.off >= r.block.Size {
		return chunk{}, false, nil
	}
	n := min(r.block.Size-r.off, chunkSize)
	c = chunk{
		addr: r.block.Start + r.off,
		data: make([]byte, n),
	}
	if err := r.prog.ReadBytes(c.addr, c.data); err != nil {
		return chunk{}, false, fmt.Errorf("unable to read block %q at 0x%x: %w", r.block.Name, c.addr, err)
	}
	r.off += n
	return c, true, nil
}
