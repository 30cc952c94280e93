// Package mdir implements the metadata block: the {revision_count,
// commits[]} structure that backs one leg of a metadata pair.
package mdir

import (
	"encoding/binary"

	"github.com/deploymenttheory/go-littlefs/pkg/binpack"
	"github.com/deploymenttheory/go-littlefs/pkg/commit"
	"github.com/deploymenttheory/go-littlefs/pkg/entry"
	"github.com/deploymenttheory/go-littlefs/pkg/fserrors"
	"github.com/deploymenttheory/go-littlefs/pkg/tag"
)

// Block is the in-memory form of a metadata block: a revision counter and
// the ordered list of commits layered on top of it.
type Block struct {
	RevisionCount uint32
	Commits       [][]entry.Entry
}

// Status is the outcome of serializing a Block into a fixed-size buffer.
type Status int

const (
	// StatusOK means the block fit in the target buffer as-is.
	StatusOK Status = iota
	// StatusSplit means the block doesn't fit, but compaction or a split
	// may still recover it.
	StatusSplit
	// StatusSplitEmergency means the block is more than twice the target
	// buffer's size. The write path still tries compaction; if the
	// compacted block also reports this status, it gives up with NoSpace
	// instead of splitting.
	StatusSplitEmergency
)

// OfEntries constructs a single-commit Block at the given revision.
func OfEntries(revisionCount uint32, entries []entry.Entry) Block {
	cp := append([]entry.Entry(nil), entries...)
	return Block{RevisionCount: revisionCount, Commits: [][]entry.Entry{cp}}
}

// AddCommit returns a copy of block with a new commit appended and the
// revision count incremented by one.
func AddCommit(block Block, entries []entry.Entry) Block {
	commits := make([][]entry.Entry, len(block.Commits)+1)
	copy(commits, block.Commits)
	cp := append([]entry.Entry(nil), entries...)
	commits[len(block.Commits)] = cp
	return Block{RevisionCount: block.RevisionCount + 1, Commits: commits}
}

// union flattens every commit's entries, in order, for compaction.
func union(block Block) []entry.Entry {
	var all []entry.Entry
	for _, c := range block.Commits {
		all = append(all, c...)
	}
	return all
}

// Compact collapses block to a single commit whose entries are the
// compaction of the union of entries across all existing commits.
func Compact(block Block) Block {
	compacted := entry.Compact(union(block))
	return OfEntries(block.RevisionCount, compacted)
}

// IDs returns the set of ids with a live NAME entry in block, after
// compaction.
func IDs(block Block) map[uint16]struct{} {
	return entry.IDs(union(block))
}

// Hardtail returns the blockpair of the first live hard-tail entry in
// block, if any survives compaction.
func Hardtail(block Block) (a, b uint64, ok bool) {
	return entry.Hardtail(entry.Compact(union(block)))
}

// NextID returns one more than the largest id used by any surviving entry
// in block (0 if block has none), so it's always a fresh id. Id 0 is
// reserved for the superblock, so the first real file/directory gets 1.
func NextID(block Block) uint16 {
	return entry.MaxID(entry.Compact(union(block))) + 1
}

// Links is every blockpair or CTZ pointer referenced from a block's
// surviving entries, used by the allocator's live-set scan.
type Links struct {
	Hardtail *[2]uint64
	DirPairs [][2]uint64
	CTZFiles []CTZRef
}

// CTZRef is a CTZ file's on-disk STRUCT payload: the head (last-written)
// block index and the total file length, both needed to walk the chain.
type CTZRef struct {
	Head   uint64
	Length uint64
}

// LinkedBlocks computes Links from block's compacted, surviving entries.
func LinkedBlocks(block Block) Links {
	var out Links
	for _, e := range entry.Compact(union(block)) {
		switch {
		case e.Tag.IsHardtail() && len(e.Payload) >= 16:
			a := binary.LittleEndian.Uint64(e.Payload[0:8])
			b := binary.LittleEndian.Uint64(e.Payload[8:16])
			out.Hardtail = &[2]uint64{a, b}
		case e.Tag.IsStruct(tag.ChunkDir) && len(e.Payload) >= 16:
			a := binary.LittleEndian.Uint64(e.Payload[0:8])
			b := binary.LittleEndian.Uint64(e.Payload[8:16])
			out.DirPairs = append(out.DirPairs, [2]uint64{a, b})
		case e.Tag.IsStruct(tag.ChunkCTZ) && len(e.Payload) >= 16:
			head := binary.LittleEndian.Uint64(e.Payload[0:8])
			length := binary.LittleEndian.Uint64(e.Payload[8:16])
			out.CTZFiles = append(out.CTZFiles, CTZRef{Head: head, Length: length})
		}
	}
	return out
}

// IntoCStruct serializes block into buf (revision_count, then each commit
// in order). It returns how many bytes were written (only meaningful when
// status is StatusOK) and whether the block fit.
func IntoCStruct(buf []byte, block Block, programBlockSize int) (n int, status Status) {
	w := binpack.NewWriter(len(buf))
	w.PutUint32(block.RevisionCount)

	var revBytes [4]byte
	binary.LittleEndian.PutUint32(revBytes[:], block.RevisionCount)
	seed := commit.SeedFromBytes(revBytes[:])
	mask := tag.AllOnesMask

	for _, c := range block.Commits {
		res := commit.Write(w, c, mask, seed, programBlockSize)
		mask = res.LastTagRaw
		seed = commit.DefaultCRCSeed
	}

	total := w.Len()
	if total <= len(buf) {
		copy(buf, w.Bytes())
		return total, StatusOK
	}
	if total > len(buf)*2 {
		return 0, StatusSplitEmergency
	}
	return 0, StatusSplit
}

// OfCStruct parses a raw block (exactly one device block's worth of bytes)
// into a Block, verifying every commit's CRC as it goes. It stops at the
// first commit that fails to parse (that boundary is where live data ends;
// anything after it is either padding or an aborted, unterminated write).
func OfCStruct(raw []byte, programBlockSize int) (Block, error) {
	if len(raw) < 4 {
		return Block{}, fserrors.ErrCorrupt
	}
	r := binpack.NewReader(raw)
	revisionCount, err := r.Uint32()
	if err != nil {
		return Block{}, fserrors.ErrCorrupt
	}

	var revBytes [4]byte
	binary.LittleEndian.PutUint32(revBytes[:], revisionCount)
	seed := commit.SeedFromBytes(revBytes[:])
	mask := tag.AllOnesMask

	var commits [][]entry.Entry
	for r.Remaining() >= entry.TagSize {
		parsed, err := commit.Parse(r, mask, seed, programBlockSize)
		if err != nil {
			break
		}
		commits = append(commits, parsed.Entries)
		mask = parsed.LastTagRaw
		seed = commit.DefaultCRCSeed
	}

	if len(commits) == 0 {
		return Block{}, fserrors.ErrCorrupt
	}
	return Block{RevisionCount: revisionCount, Commits: commits}, nil
}
