package fs

import (
	"fmt"

	"github.com/deploymenttheory/go-littlefs/pkg/mpair"
	"github.com/deploymenttheory/go-littlefs/pkg/traverse"
)

// FsckReport summarizes a consistency pass over the whole live set reached
// from the root metadata pair.
type FsckReport struct {
	LiveBlocks   int
	SuperblockOK bool
}

// Fsck walks every metadata pair and CTZ file reachable from the root,
// verifying each block parses and its commits' CRCs check out (both are
// already enforced while reading during the walk), and confirms the
// superblock's magic NAME entry is present at the root. It does not repair
// anything; a disconnected or corrupt block surfaces as an error.
func (h *Handle) Fsck() (FsckReport, error) {
	used, err := traverse.FollowLinks(h.dev, h.Root(), h.programBlockSize)
	if err != nil {
		return FsckReport{}, fmt.Errorf("fsck: %w", err)
	}

	root, err := mpair.BlockOfBlockPair(h.dev, h.Root(), h.programBlockSize)
	if err != nil {
		return FsckReport{}, fmt.Errorf("fsck: read root: %w", err)
	}

	superblockOK := false
	for _, c := range root.Commits {
		for _, e := range c {
			if e.Tag.IsName() && string(e.Payload) == superblockMagic {
				superblockOK = true
			}
		}
	}
	if !superblockOK {
		return FsckReport{}, fmt.Errorf("fsck: superblock magic %q not found at root", superblockMagic)
	}

	return FsckReport{LiveBlocks: len(used), SuperblockOK: superblockOK}, nil
}
