// Package mpair implements the read path: fetching one metadata block and
// resolving a metadata pair to its authoritative (newer-revision) leg.
package mpair

import (
	"errors"

	"github.com/deploymenttheory/go-littlefs/pkg/blockdev"
	"github.com/deploymenttheory/go-littlefs/pkg/fserrors"
	"github.com/deploymenttheory/go-littlefs/pkg/mdir"
)

// Pair is an ordered pair of logical block numbers holding alternating
// revisions of the same logical metadata block. The filesystem root is
// conventionally Pair{0, 1}.
type Pair [2]uint64

// BlockOfBlockNumber reads and parses the metadata block at block, using
// the given program block size for commit padding.
func BlockOfBlockNumber(dev *blockdev.Wrapper, block uint64, programBlockSize int) (mdir.Block, error) {
	buf := make([]byte, dev.BlockSize())
	if err := dev.ReadBlock(block, buf); err != nil {
		return mdir.Block{}, err
	}
	return mdir.OfCStruct(buf, programBlockSize)
}

// signedGreater compares two revision counts as signed 32-bit integers, as
// the reference does, so wraparound favors whichever side incremented most
// recently.
func signedGreater(a, b uint32) bool {
	return int32(a) > int32(b)
}

// BlockOfBlockPair reads both legs of pair and returns the one with the
// numerically greater (signed-compared) revision count. If exactly one leg
// fails to parse, the other is returned. If both fail, ErrCorrupt is
// returned.
func BlockOfBlockPair(dev *blockdev.Wrapper, pair Pair, programBlockSize int) (mdir.Block, error) {
	blockA, errA := BlockOfBlockNumber(dev, pair[0], programBlockSize)
	blockB, errB := BlockOfBlockNumber(dev, pair[1], programBlockSize)

	switch {
	case errA == nil && errB == nil:
		if signedGreater(blockB.RevisionCount, blockA.RevisionCount) {
			return blockB, nil
		}
		return blockA, nil
	case errA == nil:
		return blockA, nil
	case errB == nil:
		return blockB, nil
	default:
		return mdir.Block{}, errors.Join(fserrors.ErrCorrupt, errA, errB)
	}
}
