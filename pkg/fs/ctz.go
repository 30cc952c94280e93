package fs

import (
	"fmt"

	"github.com/deploymenttheory/go-littlefs/pkg/ctz"
	"github.com/deploymenttheory/go-littlefs/pkg/fserrors"
	"github.com/deploymenttheory/go-littlefs/pkg/traverse"
)

// useCTZ applies the cutoff from spec §4.11: values larger than
// blockSize/4 are stored as a CTZ skip list, everything else inline.
func (h *Handle) useCTZ(dataLen int) bool {
	return dataLen > int(h.blockSize)/4
}

// writeCTZBlocks emits data as a chain of CTZ blocks, allocating a fresh
// block for each step and back-filling the skip-list header from
// previously written block numbers. The caller must hold h.mu. It returns
// the head (last-written, highest-index) block number.
func (h *Handle) writeCTZBlocks(data []byte) (uint64, error) {
	var written []uint64 // written[i] = device block number of file-block i
	off := 0
	i := uint32(0)

	for off < len(data) {
		blockNum, err := h.alloc.GetBlock()
		if err != nil {
			return 0, err
		}

		skipSize := ctz.SkipListSize(i)
		headerLen := int(skipSize) * ctz.PointerSize
		buf := make([]byte, h.blockSize)
		for k := uint32(0); k < skipSize; k++ {
			backIdx := ctz.BackPointerBlock(i, k)
			if int(backIdx) >= len(written) {
				return 0, fmt.Errorf("fs: ctz write: back-pointer to unwritten block %d at index %d", backIdx, i)
			}
			putLE32(buf[k*4:k*4+4], uint32(written[backIdx]))
		}

		capacity := int(h.blockSize) - headerLen
		n := capacity
		if remaining := len(data) - off; remaining < n {
			n = remaining
		}
		copy(buf[headerLen:headerLen+n], data[off:off+n])

		if err := h.dev.WriteBlock(blockNum, buf); err != nil {
			return 0, err
		}

		written = append(written, blockNum)
		off += n
		i++
	}

	if len(written) == 0 {
		return 0, fmt.Errorf("fs: ctz write: empty data")
	}
	return written[len(written)-1], nil
}

// getCTZ reconstructs a CTZ file's full contents given its head pointer and
// declared length.
func (h *Handle) getCTZ(head uint64, length uint64) ([]byte, error) {
	blocksLastToFirst, err := traverse.GetCTZPointers(h.dev, head, length, h.programBlockSize)
	if err != nil {
		return nil, err
	}

	out := make([]byte, 0, length)
	for j := len(blocksLastToFirst) - 1; j >= 0; j-- {
		idx := uint32(len(blocksLastToFirst) - 1 - j)
		blockNum := blocksLastToFirst[j]

		buf := make([]byte, h.blockSize)
		if err := h.dev.ReadBlock(blockNum, buf); err != nil {
			return nil, err
		}
		headerLen := int(ctz.SkipListSize(idx)) * ctz.PointerSize
		if headerLen > len(buf) {
			return nil, fserrors.ErrCorrupt
		}
		out = append(out, buf[headerLen:]...)
	}

	if uint64(len(out)) < length {
		return nil, fserrors.ErrCorrupt
	}
	return out[:length], nil
}

func putLE32(b []byte, v uint32) {
	b[0] = byte(v)
	b[1] = byte(v >> 8)
	b[2] = byte(v >> 16)
	b[3] = byte(v >> 24)
}
