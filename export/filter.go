package export

import (
	"fmt"

	"go.uber.org/zap"

	"dtx/program"
)

// maxBlockSize caps how much of a single block goes into the fixture.
// Oversized blocks are omitted whole, never truncated, so the fixture either
// carries a block exactly or not at all.
const maxBlockSize = 0x100000

// exportable applies the block eligibility policy: the block must be
// initialized, must live in the loadable space and must fit under the size
// cap. Omission is a logged policy decision, not a failure.
func exportable(b program.Block, log *zap.Logger) bool {
	if !b.Initialized {
		log.Debug("Skipping uninitialized block", zap.String("block", b.Name))
		return false
	}
	if b.Space != program.SpaceRAM {
		log.Debug("Skipping non-loadable block", zap.String("block", b.Name), zap.String("space", b.Space))
		return false
	}
	if b.Size > maxBlockSize {
		log.Info("Skipping large block",
			zap.String("block", b.Name), zap.String("start", fmt.Sprintf("0x%x", b.Start)), zap.Uint64("size", b.Size))
		return false
	}
	return true
}
