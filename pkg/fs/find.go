package fs

import (
	"encoding/binary"
	"fmt"

	"github.com/deploymenttheory/go-littlefs/pkg/blockdev"
	"github.com/deploymenttheory/go-littlefs/pkg/entry"
	"github.com/deploymenttheory/go-littlefs/pkg/mdir"
	"github.com/deploymenttheory/go-littlefs/pkg/mpair"
	"github.com/deploymenttheory/go-littlefs/pkg/tag"
)

// PairEntries is one hardtail-chain link's raw, uncompacted entries.
// Compaction is left to the caller: erasing superseded/deleted entries
// would destroy the information a caller needs to locate the specific
// block holding an id for in-place overwrite or delete.
type PairEntries struct {
	Pair    mpair.Pair
	Entries []entry.Entry
}

// allEntriesInDir walks head's hardtail chain and returns each link's
// uncompacted entries in chain order.
func allEntriesInDir(dev *blockdev.Wrapper, head mpair.Pair, programBlockSize int) ([]PairEntries, error) {
	var out []PairEntries
	cur := head
	visited := make(map[mpair.Pair]bool)
	for {
		if visited[cur] {
			return nil, fmt.Errorf("fs: hardtail cycle detected at %v", cur)
		}
		visited[cur] = true

		block, err := mpair.BlockOfBlockPair(dev, cur, programBlockSize)
		if err != nil {
			return nil, fmt.Errorf("fs: read directory block %v: %w", cur, err)
		}
		var flat []entry.Entry
		for _, c := range block.Commits {
			flat = append(flat, c...)
		}
		out = append(out, PairEntries{Pair: cur, Entries: flat})

		a, b, ok := mdir.Hardtail(block)
		if !ok {
			return out, nil
		}
		cur = mpair.Pair{a, b}
	}
}

// entriesOfName looks up name across head's hardtail chain. For each link,
// the entries are compacted to find the id whose NAME entry matches name;
// if present, every entry sharing that id is collected from that link's
// uncompacted entries and compacted again. Links with no match are
// dropped. The reference behavior ("last block wins") means callers should
// use the final element of the returned slice as authoritative.
func entriesOfName(dev *blockdev.Wrapper, head mpair.Pair, name string, programBlockSize int) ([]PairEntries, error) {
	links, err := allEntriesInDir(dev, head, programBlockSize)
	if err != nil {
		return nil, err
	}

	var out []PairEntries
	for _, link := range links {
		compacted := entry.Compact(link.Entries)
		var id uint16
		found := false
		for _, e := range compacted {
			if e.Tag.IsName() && string(e.Payload) == name {
				id = e.Tag.ID
				found = true
				break
			}
		}
		if !found {
			continue
		}

		var forID []entry.Entry
		for _, e := range link.Entries {
			if e.Tag.ID == id {
				forID = append(forID, e)
			}
		}
		compactedForID := entry.Compact(forID)
		if len(compactedForID) == 0 {
			continue
		}
		out = append(out, PairEntries{Pair: link.Pair, Entries: compactedForID})
	}
	return out, nil
}

// FindKind discriminates the outcome of findFirstBlockPairOfDirectory.
type FindKind int

const (
	FindBasenameOn FindKind = iota
	FindNoId
	FindNoStructs
	FindNoEntry
)

// FindResult is the outcome of resolving a directory path's segments to
// the blockpair holding the final segment's basename.
type FindResult struct {
	Kind    FindKind
	Pair    mpair.Pair
	Segment string
	Err     error
}

// findFirstBlockPairOfDirectory performs recursive descent over segments,
// starting at head, resolving each to a child directory's blockpair via its
// STRUCT entry. When segments is exhausted, head is where the basename
// itself lives.
func findFirstBlockPairOfDirectory(dev *blockdev.Wrapper, head mpair.Pair, segments []string, programBlockSize int) FindResult {
	if len(segments) == 0 {
		return FindResult{Kind: FindBasenameOn, Pair: head}
	}

	seg := segments[0]
	results, err := entriesOfName(dev, head, seg, programBlockSize)
	if err != nil {
		return FindResult{Kind: FindNoEntry, Segment: seg, Err: err}
	}
	if len(results) == 0 {
		return FindResult{Kind: FindNoId, Segment: seg}
	}

	last := results[len(results)-1]
	var childPair mpair.Pair
	haveChild := false
	for _, e := range last.Entries {
		if e.Tag.IsStruct(tag.ChunkDir) && len(e.Payload) >= 16 {
			a := binary.LittleEndian.Uint64(e.Payload[0:8])
			b := binary.LittleEndian.Uint64(e.Payload[8:16])
			childPair = mpair.Pair{a, b}
			haveChild = true
			break
		}
	}
	if !haveChild {
		return FindResult{Kind: FindNoStructs, Segment: seg}
	}

	return findFirstBlockPairOfDirectory(dev, childPair, segments[1:], programBlockSize)
}
