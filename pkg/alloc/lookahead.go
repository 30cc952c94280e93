// Package alloc implements the lookahead-based free-block allocator: a
// cached list of known-free blocks, refilled by a full live-set scan and
// biased toward alternating halves of the device on each refill as a cheap
// wear-spreading heuristic.
package alloc

import (
	"sort"

	"github.com/deploymenttheory/go-littlefs/pkg/blockdev"
	"github.com/deploymenttheory/go-littlefs/pkg/fserrors"
	"github.com/deploymenttheory/go-littlefs/pkg/mpair"
	"github.com/deploymenttheory/go-littlefs/pkg/traverse"
)

// Bias selects which half of the device populate_lookahead keeps.
type Bias int

const (
	BiasBefore Bias = iota
	BiasAfter
)

func (b Bias) flip() Bias {
	if b == BiasBefore {
		return BiasAfter
	}
	return BiasBefore
}

// RootFunc returns the root metadata pair to scan for the live set. A
// split never moves an existing pair, so fs.Handle supplies a function
// that always returns the fixed root pair (0,1).
type RootFunc func() mpair.Pair

// Allocator holds the lookahead list and the bias it was last populated
// with. The caller (fs.Handle) is responsible for serializing access with
// its allocation mutex; Allocator itself is not safe for concurrent use.
type Allocator struct {
	dev              *blockdev.Wrapper
	root             RootFunc
	programBlockSize int

	bias Bias
	free []uint64 // ascending, pop from the front
}

// New creates an Allocator with an empty lookahead and the starting bias
// Before, matching connect's initial state.
func New(dev *blockdev.Wrapper, root RootFunc, programBlockSize int) *Allocator {
	return &Allocator{dev: dev, root: root, programBlockSize: programBlockSize, bias: BiasBefore}
}

// FlipBias flips the bias that the next automatic repopulation (triggered
// by an empty lookahead inside GetBlock/GetBlockPair) will use, without
// touching the current lookahead list. Connect calls this once after its
// initial explicit Populate(BiasBefore) so the *next* refill uses After,
// per the reference's "initial bias Before; next bias After".
func (a *Allocator) FlipBias() { a.bias = a.bias.flip() }

// Populate runs a full live-set scan and refills the lookahead list with
// the free blocks on bias's half of the device, in ascending order.
func (a *Allocator) Populate(bias Bias) error {
	used, err := traverse.FollowLinks(a.dev, a.root(), a.programBlockSize)
	if err != nil {
		return err
	}

	count := a.dev.BlockCount()
	mid := count / 2

	var candidates []uint64
	for b := uint64(0); b < count; b++ {
		if _, inUse := used[b]; inUse {
			continue
		}
		if bias == BiasAfter && b < mid {
			continue
		}
		if bias == BiasBefore && b >= mid {
			continue
		}
		candidates = append(candidates, b)
	}
	sort.Slice(candidates, func(i, j int) bool { return candidates[i] < candidates[j] })

	a.free = candidates
	a.bias = bias
	return nil
}

// GetBlock pops one free block, repopulating (and then flipping bias) if
// the lookahead is empty. It fails with ErrNoSpace if repopulation still
// yields nothing.
func (a *Allocator) GetBlock() (uint64, error) {
	if len(a.free) == 0 {
		if err := a.Populate(a.bias); err != nil {
			return 0, err
		}
		a.bias = a.bias.flip()
		if len(a.free) == 0 {
			return 0, fserrors.ErrNoSpace
		}
	}
	b := a.free[0]
	a.free = a.free[1:]
	return b, nil
}

// GetBlockPair pops two distinct free blocks, repopulating (and flipping
// bias) if fewer than two remain. It fails with ErrNoSpace if repopulation
// still yields fewer than two.
func (a *Allocator) GetBlockPair() (mpair.Pair, error) {
	if len(a.free) < 2 {
		if err := a.Populate(a.bias); err != nil {
			return mpair.Pair{}, err
		}
		a.bias = a.bias.flip()
		if len(a.free) < 2 {
			return mpair.Pair{}, fserrors.ErrNoSpace
		}
	}
	p := mpair.Pair{a.free[0], a.free[1]}
	a.free = a.free[2:]
	return p, nil
}
