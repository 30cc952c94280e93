// Package ctz implements the count-trailing-zeros skip-list index math
// shared by CTZ file read and write: how many back-pointers a block holds,
// which block each back-pointer targets, how much data a block carries, and
// the index of a file's last block for a given length.
package ctz

import "math/bits"

// PointerSize is the on-disk size of one skip-list back-pointer.
const PointerSize = 4

// CTZ returns the number of trailing zero bits of i, i.e. the number of
// times i is divisible by two. CTZ(0) is defined as 0; the first block of
// a file carries no back-pointers at all, which SkipListSize special-cases.
func CTZ(i uint32) uint32 {
	if i == 0 {
		return 0
	}
	return uint32(bits.TrailingZeros32(i))
}

// SkipListSize returns the number of 32-bit back-pointers block index i
// carries at its head: ctz(i)+1, except i==0 which carries none.
func SkipListSize(i uint32) uint32 {
	if i == 0 {
		return 0
	}
	return CTZ(i) + 1
}

// BackPointerBlock returns the index of the block that back-pointer slot k
// (0-indexed) of block i points to: i - 2^k for k>=1, or i-1 for slot 0.
func BackPointerBlock(i uint32, k uint32) uint32 {
	if k == 0 {
		return i - 1
	}
	return i - (1 << k)
}

// DataCapacity returns how many bytes of file data block index i can hold
// given a device block size: the block minus its skip-list header.
func DataCapacity(i uint32, blockSize uint32) uint32 {
	return blockSize - SkipListSize(i)*PointerSize
}

// LastBlockIndex computes, for a file of the given length and block size,
// the 0-based index of its final (most recently written) data block. This
// mirrors the reference's last_block_index: it walks capacity-by-capacity
// from the front rather than assuming a uniform per-block capacity, since
// each block's capacity depends on its own skip-list header size.
func LastBlockIndex(fileLength uint64, blockSize uint32) uint32 {
	if fileLength == 0 {
		return 0
	}
	var i uint32
	var consumed uint64
	for {
		cap := uint64(DataCapacity(i, blockSize))
		if consumed+cap >= fileLength {
			return i
		}
		consumed += cap
		i++
	}
}
