package fs

import (
	"encoding/binary"
	"fmt"

	"github.com/deploymenttheory/go-littlefs/pkg/entry"
	"github.com/deploymenttheory/go-littlefs/pkg/fserrors"
	"github.com/deploymenttheory/go-littlefs/pkg/mdir"
	"github.com/deploymenttheory/go-littlefs/pkg/mpair"
	"github.com/deploymenttheory/go-littlefs/pkg/pathkv"
	"github.com/deploymenttheory/go-littlefs/pkg/tag"
	"github.com/deploymenttheory/go-littlefs/pkg/traverse"
)

// Mkdir creates every missing directory along key's "/"-delimited segments,
// starting at the root, per spec §4.13. Existing directories along the path
// are descended into rather than recreated; an existing non-directory entry
// at any segment is an error.
func (h *Handle) Mkdir(key string) (mpair.Pair, error) {
	segments := pathkv.Split(key)
	if len(segments) == 0 {
		return mpair.Pair{}, fserrors.ValueExpected("mkdir", key)
	}

	cur := h.Root()
	for _, seg := range segments {
		next, err := h.findOrMkdir(cur, seg)
		if err != nil {
			return mpair.Pair{}, err
		}
		cur = next
	}
	return cur, nil
}

// findOrMkdir resolves seg within parent, descending into an existing
// directory or creating a fresh one if absent.
func (h *Handle) findOrMkdir(parent mpair.Pair, seg string) (mpair.Pair, error) {
	results, err := entriesOfName(h.dev, parent, seg, h.programBlockSize)
	if err != nil {
		return mpair.Pair{}, fmt.Errorf("fs: mkdir %s: %w", seg, err)
	}

	if len(results) > 0 {
		last := results[len(results)-1]
		for _, e := range last.Entries {
			if e.Tag.IsStruct(tag.ChunkDir) && len(e.Payload) >= 16 {
				return mpair.Pair{
					binary.LittleEndian.Uint64(e.Payload[0:8]),
					binary.LittleEndian.Uint64(e.Payload[8:16]),
				}, nil
			}
		}
		return mpair.Pair{}, fserrors.DictionaryExpected("mkdir", seg)
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	newPair, err := h.alloc.GetBlockPair()
	if err != nil {
		return mpair.Pair{}, err
	}

	empty := mdir.OfEntries(1, nil)
	buf := make([]byte, h.blockSize)
	if _, status := mdir.IntoCStruct(buf, empty, h.programBlockSize); status != mdir.StatusOK {
		return mpair.Pair{}, fserrors.ErrNoSpace
	}
	if err := mpair.WriteBlockPair(h.dev, newPair, buf); err != nil {
		return mpair.Pair{}, fmt.Errorf("fs: mkdir %s: %w", seg, err)
	}

	lastPair, err := traverse.LastBlock(h.dev, parent, h.programBlockSize)
	if err != nil {
		return mpair.Pair{}, fmt.Errorf("fs: mkdir %s: %w", seg, err)
	}
	block, err := mpair.BlockOfBlockPair(h.dev, lastPair, h.programBlockSize)
	if err != nil {
		return mpair.Pair{}, fmt.Errorf("fs: mkdir %s: %w", seg, err)
	}

	id := mdir.NextID(block)
	entries := []entry.Entry{buildNameEntry(id, seg), buildDirStructEntry(id, newPair)}
	newBlock := mdir.AddCommit(block, entries)
	if _, err := h.writeBlockToPair(newBlock, lastPair); err != nil {
		return mpair.Pair{}, fmt.Errorf("fs: mkdir %s: %w", seg, err)
	}

	return newPair, nil
}
