package fs

import (
	"sort"

	"github.com/deploymenttheory/go-littlefs/pkg/entry"
	"github.com/deploymenttheory/go-littlefs/pkg/fserrors"
	"github.com/deploymenttheory/go-littlefs/pkg/mdir"
	"github.com/deploymenttheory/go-littlefs/pkg/mpair"
)

// writeBlockToPair implements the write path's compact-then-split
// discipline (spec §4.8). The caller must hold h.mu. It returns the Block
// actually committed to pair (which may differ from block if compaction or
// a split occurred). The pair itself never moves: a split only links a
// newly allocated successor pair to it.
func (h *Handle) writeBlockToPair(block mdir.Block, pair mpair.Pair) (mdir.Block, error) {
	buf := make([]byte, h.blockSize)
	if _, status := mdir.IntoCStruct(buf, block, h.programBlockSize); status == mdir.StatusOK {
		if err := mpair.WriteBlockPair(h.dev, pair, buf); err != nil {
			return mdir.Block{}, err
		}
		return block, nil
	}

	compacted := mdir.Compact(block)
	bufCompacted := make([]byte, h.blockSize)
	_, status := mdir.IntoCStruct(bufCompacted, compacted, h.programBlockSize)

	switch status {
	case mdir.StatusOK:
		if err := mpair.WriteBlockPair(h.dev, pair, bufCompacted); err != nil {
			return mdir.Block{}, err
		}
		return compacted, nil

	case mdir.StatusSplitEmergency:
		return mdir.Block{}, fserrors.ErrNoSpace

	default: // StatusSplit
		if _, _, hasHardtail := mdir.Hardtail(compacted); hasHardtail {
			// The reference accepts the compacted form here even though it
			// still overflows, since an already-tailed block cannot split
			// again. A block genuinely larger than the device's physical
			// block size cannot be written at all, so this is surfaced as
			// NoSpace rather than silently truncated; see DESIGN.md.
			return mdir.Block{}, fserrors.ErrNoSpace
		}
		return h.split(compacted, pair)
	}
}

// split partitions compacted's entries by id (the higher half moves to a
// freshly allocated pair), links the lower half's pair to the new one via
// a hardtail entry, writes the new pair first, and only on success
// overwrites the original pair with the lower half. Splitting is only
// reached for a block with no existing hardtail (writeBlockToPair already
// enforced that).
func (h *Handle) split(compacted mdir.Block, pair mpair.Pair) (mdir.Block, error) {
	entries := flattenSingleCommit(compacted)

	idSet := make(map[uint16]bool)
	for _, e := range entries {
		if e.Tag.IsHardtail() || e.Tag.IsCRC() {
			continue
		}
		idSet[e.Tag.ID] = true
	}
	ids := make([]uint16, 0, len(idSet))
	for id := range idSet {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	mid := len(ids) / 2
	highIDs := make(map[uint16]bool, len(ids)-mid)
	for _, id := range ids[mid:] {
		highIDs[id] = true
	}

	var oldEntries, newEntries []entry.Entry
	for _, e := range entries {
		if e.Tag.IsHardtail() {
			continue
		}
		if highIDs[e.Tag.ID] {
			newEntries = append(newEntries, e)
		} else {
			oldEntries = append(oldEntries, e)
		}
	}

	newPair, err := h.alloc.GetBlockPair()
	if err != nil {
		return mdir.Block{}, fserrors.ErrNoSpace
	}

	newBlock := mdir.OfEntries(1, newEntries)
	bufNew := make([]byte, h.blockSize)
	if _, status := mdir.IntoCStruct(bufNew, newBlock, h.programBlockSize); status != mdir.StatusOK {
		return mdir.Block{}, fserrors.ErrNoSpace
	}
	if err := mpair.WriteBlockPair(h.dev, newPair, bufNew); err != nil {
		return mdir.Block{}, fserrors.ErrNoSpace
	}

	oldEntries = append(oldEntries, buildHardtailEntry(newPair))
	oldBlock := mdir.OfEntries(compacted.RevisionCount+1, oldEntries)
	bufOld := make([]byte, h.blockSize)
	if _, status := mdir.IntoCStruct(bufOld, oldBlock, h.programBlockSize); status != mdir.StatusOK {
		return mdir.Block{}, fserrors.ErrNoSpace
	}
	if err := mpair.WriteBlockPair(h.dev, pair, bufOld); err != nil {
		return mdir.Block{}, fserrors.ErrNoSpace
	}

	return oldBlock, nil
}

func flattenSingleCommit(block mdir.Block) []entry.Entry {
	if len(block.Commits) == 0 {
		return nil
	}
	return block.Commits[0]
}
