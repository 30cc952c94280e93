// Package fs composes the tag/entry/commit/mdir/traverse/alloc layers into
// the filesystem engine's top-level operations: connect, format, mkdir,
// get, set, delete, and path resolution. It owns the device handle and the
// allocation mutex, mirroring the teacher's pkg/services composition point
// (FilesystemService, ContainerService) over its lower-level parsers.
package fs

import (
	"fmt"
	"sync"

	"github.com/deploymenttheory/go-littlefs/pkg/alloc"
	"github.com/deploymenttheory/go-littlefs/pkg/blockdev"
	"github.com/deploymenttheory/go-littlefs/pkg/clock"
	"github.com/deploymenttheory/go-littlefs/pkg/mpair"
)

// RootPair is the filesystem's conventional root metadata pair.
var RootPair = mpair.Pair{0, 1}

// Handle is a mounted filesystem. It owns the block device and the
// allocation mutex; the lookahead list is its only mutable internal state
// besides what's on the device itself.
type Handle struct {
	dev              *blockdev.Wrapper
	blockSize        uint32
	programBlockSize int
	clock            clock.Source

	mu    sync.Mutex
	alloc *alloc.Allocator
}

// Connect opens device, verifies block 0 is readable, and seeds the
// lookahead allocator from a full live-set scan rooted at (0,1).
func Connect(device blockdev.Device, blockSize uint32, programBlockSize uint32) (*Handle, error) {
	wrapper, err := blockdev.NewWrapper(device, blockSize)
	if err != nil {
		return nil, fmt.Errorf("fs: connect: %w", err)
	}

	sanity := make([]byte, blockSize)
	if err := wrapper.ReadBlock(0, sanity); err != nil {
		return nil, fmt.Errorf("fs: connect: sanity read of block 0: %w", err)
	}

	h := &Handle{
		dev:              wrapper,
		blockSize:        blockSize,
		programBlockSize: int(programBlockSize),
		clock:            clock.System{},
	}
	h.alloc = alloc.New(wrapper, func() mpair.Pair { return RootPair }, h.programBlockSize)

	h.mu.Lock()
	defer h.mu.Unlock()
	if err := h.alloc.Populate(alloc.BiasBefore); err != nil {
		return nil, fmt.Errorf("fs: connect: populate lookahead: %w", err)
	}
	h.alloc.FlipBias()

	return h, nil
}

// SetClock overrides the wall-clock source used to stamp CTIME entries,
// for deterministic tests.
func (h *Handle) SetClock(src clock.Source) { h.clock = src }

// Root returns the filesystem's conventional root directory pair.
func (h *Handle) Root() mpair.Pair { return RootPair }
