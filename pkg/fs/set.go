package fs

import (
	"fmt"

	"github.com/deploymenttheory/go-littlefs/pkg/entry"
	"github.com/deploymenttheory/go-littlefs/pkg/fserrors"
	"github.com/deploymenttheory/go-littlefs/pkg/mdir"
	"github.com/deploymenttheory/go-littlefs/pkg/mpair"
	"github.com/deploymenttheory/go-littlefs/pkg/pathkv"
	"github.com/deploymenttheory/go-littlefs/pkg/traverse"
)

// Set resolves key's parent directory and writes data at its basename,
// creating the value if absent or atomically replacing it if present.
func (h *Handle) Set(key string, data []byte) error {
	segments := pathkv.Split(key)
	if len(segments) == 0 {
		return fserrors.ValueExpected("set", key)
	}
	if len(segments) == 1 {
		return h.SetInDirectory(h.Root(), segments[0], data)
	}

	parent := segments[:len(segments)-1]
	basename := segments[len(segments)-1]

	res := findFirstBlockPairOfDirectory(h.dev, h.Root(), parent, h.programBlockSize)
	switch res.Kind {
	case FindNoId:
		return fserrors.NotFound("set", key)
	case FindNoStructs:
		return fserrors.DictionaryExpected("set", key)
	case FindNoEntry:
		return fserrors.NotFound("set", key)
	case FindBasenameOn:
		return h.SetInDirectory(res.Pair, basename, data)
	default:
		return fserrors.NotFound("set", key)
	}
}

// SetInDirectory implements spec §4.11's set_in_directory: resolve any
// existing entry for name within pair's hardtail chain; if present,
// atomically replace it (delete + new entries in the same commit, written
// to the block that actually holds the original, per the reference); if
// absent, append new entries to the directory's last block.
func (h *Handle) SetInDirectory(pair mpair.Pair, name string, data []byte) error {
	if name == "" {
		return fserrors.ValueExpected("set", name)
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	results, err := entriesOfName(h.dev, pair, name, h.programBlockSize)
	if err != nil {
		return fmt.Errorf("fs: set %s: %w", name, err)
	}

	if len(results) == 0 {
		return h.appendNew(pair, name, data)
	}

	last := results[len(results)-1]
	id := last.Entries[0].Tag.ID

	valueEntries, err := h.buildValueEntries(id, name, data)
	if err != nil {
		return err
	}

	commitEntries := append([]entry.Entry{buildDeleteEntry(id)}, valueEntries...)

	targetBlock, err := mpair.BlockOfBlockPair(h.dev, last.Pair, h.programBlockSize)
	if err != nil {
		return fmt.Errorf("fs: set %s: %w", name, err)
	}
	newBlock := mdir.AddCommit(targetBlock, commitEntries)
	if _, err := h.writeBlockToPair(newBlock, last.Pair); err != nil {
		return fmt.Errorf("fs: set %s: %w", name, err)
	}
	return nil
}

// appendNew writes a brand-new NAME+CTIME+STRUCT entry set for name,
// appended to the directory's last hardtail link, under a fresh id.
func (h *Handle) appendNew(pair mpair.Pair, name string, data []byte) error {
	lastPair, err := traverse.LastBlock(h.dev, pair, h.programBlockSize)
	if err != nil {
		return fmt.Errorf("fs: set %s: %w", name, err)
	}
	block, err := mpair.BlockOfBlockPair(h.dev, lastPair, h.programBlockSize)
	if err != nil {
		return fmt.Errorf("fs: set %s: %w", name, err)
	}

	id := mdir.NextID(block)
	valueEntries, err := h.buildValueEntries(id, name, data)
	if err != nil {
		return err
	}

	newBlock := mdir.AddCommit(block, valueEntries)
	if _, err := h.writeBlockToPair(newBlock, lastPair); err != nil {
		return fmt.Errorf("fs: set %s: %w", name, err)
	}
	return nil
}

// buildValueEntries allocates CTZ data blocks if needed (under h.mu, which
// the caller already holds) and returns the NAME+CTIME+STRUCT entries for a
// new or replaced value at id.
func (h *Handle) buildValueEntries(id uint16, name string, data []byte) ([]entry.Entry, error) {
	days, picos := h.clock.Now()
	nameEntry := buildNameEntry(id, name)
	ctimeEntry := buildCTimeEntry(id, days, picos)

	if h.useCTZ(len(data)) {
		head, err := h.writeCTZBlocks(data)
		if err != nil {
			return nil, fmt.Errorf("fs: set %s: %w", name, err)
		}
		return []entry.Entry{nameEntry, ctimeEntry, buildCTZStructEntry(id, head, uint64(len(data)))}, nil
	}
	return []entry.Entry{nameEntry, ctimeEntry, buildInlineStructEntry(id, data)}, nil
}
