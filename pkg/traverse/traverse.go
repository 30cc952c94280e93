// Package traverse implements the read-only walks over the metadata tree:
// following a directory's hardtail chain to its end, enumerating every
// block reachable from the root (for the allocator's live-set scan), and
// walking a CTZ skip-list's back-pointers.
package traverse

import (
	"fmt"

	"github.com/deploymenttheory/go-littlefs/pkg/blockdev"
	"github.com/deploymenttheory/go-littlefs/pkg/ctz"
	"github.com/deploymenttheory/go-littlefs/pkg/fserrors"
	"github.com/deploymenttheory/go-littlefs/pkg/mdir"
	"github.com/deploymenttheory/go-littlefs/pkg/mpair"
)

// LastBlock walks hardtails starting at pair and returns the terminal
// metadata pair of that directory's chain.
func LastBlock(dev *blockdev.Wrapper, pair mpair.Pair, programBlockSize int) (mpair.Pair, error) {
	cur := pair
	for {
		block, err := mpair.BlockOfBlockPair(dev, cur, programBlockSize)
		if err != nil {
			return mpair.Pair{}, fmt.Errorf("traverse: last_block %v: %w", cur, err)
		}
		a, b, ok := mdir.Hardtail(block)
		if !ok {
			return cur, nil
		}
		cur = mpair.Pair{a, b}
	}
}

// FollowLinks recursively enumerates every block number reachable from
// root via directory hardtails, subdirectory pointers, and CTZ chains. The
// result is the "used" set the allocator treats as unavailable. A block
// that a live entry references but that fails to read or parse surfaces as
// ErrDisconnected.
func FollowLinks(dev *blockdev.Wrapper, root mpair.Pair, programBlockSize int) (map[uint64]struct{}, error) {
	used := make(map[uint64]struct{})
	visitedDirs := make(map[mpair.Pair]bool)

	var walkDir func(pair mpair.Pair) error
	walkDir = func(pair mpair.Pair) error {
		if visitedDirs[pair] {
			return nil
		}
		visitedDirs[pair] = true
		used[pair[0]] = struct{}{}
		used[pair[1]] = struct{}{}

		block, err := mpair.BlockOfBlockPair(dev, pair, programBlockSize)
		if err != nil {
			return fmt.Errorf("traverse: follow_links %v: %w: %v", pair, fserrors.ErrDisconnected, err)
		}
		links := mdir.LinkedBlocks(block)

		for _, dp := range links.DirPairs {
			if err := walkDir(mpair.Pair{dp[0], dp[1]}); err != nil {
				return err
			}
		}
		for _, f := range links.CTZFiles {
			blocks, err := GetCTZPointers(dev, f.Head, f.Length, programBlockSize)
			if err != nil {
				return fmt.Errorf("traverse: follow_links ctz head %d: %w: %v", f.Head, fserrors.ErrDisconnected, err)
			}
			for _, b := range blocks {
				used[b] = struct{}{}
			}
		}
		if links.Hardtail != nil {
			if err := walkDir(mpair.Pair{links.Hardtail[0], links.Hardtail[1]}); err != nil {
				return err
			}
		}
		return nil
	}

	if err := walkDir(root); err != nil {
		return nil, err
	}
	return used, nil
}

// GetCTZPointers computes the full list of data-block numbers of a CTZ
// file, from last (head) to first, by walking the skip list's slot-0
// back-pointer at each step.
func GetCTZPointers(dev *blockdev.Wrapper, head uint64, fileSize uint64, programBlockSize int) ([]uint64, error) {
	lastIdx := ctz.LastBlockIndex(fileSize, dev.BlockSize())

	var blocks []uint64
	cur := head
	i := lastIdx
	for {
		blocks = append(blocks, cur)
		if i == 0 {
			break
		}
		buf := make([]byte, dev.BlockSize())
		if err := dev.ReadBlock(cur, buf); err != nil {
			return nil, fmt.Errorf("traverse: read ctz block %d: %w", cur, err)
		}
		if len(buf) < ctz.PointerSize {
			return nil, fserrors.ErrCorrupt
		}
		prev := leUint32(buf[0:4])
		cur = uint64(prev)
		i--
	}
	return blocks, nil
}

func leUint32(b []byte) uint32 {
	return uint32(b[0]) | uint32(b[1])<<8 | uint32(b[2])<<16 | uint32(b[3])<<24
}
