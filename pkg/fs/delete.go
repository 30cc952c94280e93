package fs

import (
	"fmt"

	"github.com/deploymenttheory/go-littlefs/pkg/entry"
	"github.com/deploymenttheory/go-littlefs/pkg/fserrors"
	"github.com/deploymenttheory/go-littlefs/pkg/mdir"
	"github.com/deploymenttheory/go-littlefs/pkg/mpair"
	"github.com/deploymenttheory/go-littlefs/pkg/pathkv"
)

// Delete resolves key's parent directory and removes its basename, if
// present. Deleting a key that doesn't exist is not an error.
func (h *Handle) Delete(key string) error {
	segments := pathkv.Split(key)
	if len(segments) == 0 {
		return fserrors.ValueExpected("delete", key)
	}
	if len(segments) == 1 {
		return h.DeleteInDirectory(h.Root(), segments[0])
	}

	parent := segments[:len(segments)-1]
	basename := segments[len(segments)-1]

	res := findFirstBlockPairOfDirectory(h.dev, h.Root(), parent, h.programBlockSize)
	switch res.Kind {
	case FindNoId, FindNoEntry:
		return nil
	case FindNoStructs:
		return fserrors.DictionaryExpected("delete", key)
	case FindBasenameOn:
		return h.DeleteInDirectory(res.Pair, basename)
	default:
		return nil
	}
}

// DeleteInDirectory implements spec §4.12: idempotent delete of name within
// pair's hardtail chain. Absent entries are a no-op success; present ones
// get a single SPLICE delete commit appended to the block that actually
// holds the id.
func (h *Handle) DeleteInDirectory(pair mpair.Pair, name string) error {
	if name == "" {
		return fserrors.ValueExpected("delete", name)
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	results, err := entriesOfName(h.dev, pair, name, h.programBlockSize)
	if err != nil {
		return fmt.Errorf("fs: delete %s: %w", name, err)
	}
	if len(results) == 0 {
		return nil
	}

	last := results[len(results)-1]
	id := last.Entries[0].Tag.ID

	targetBlock, err := mpair.BlockOfBlockPair(h.dev, last.Pair, h.programBlockSize)
	if err != nil {
		return fmt.Errorf("fs: delete %s: %w", name, err)
	}

	newBlock := mdir.AddCommit(targetBlock, []entry.Entry{buildDeleteEntry(id)})
	if _, err := h.writeBlockToPair(newBlock, last.Pair); err != nil {
		return fmt.Errorf("fs: delete %s: %w", name, err)
	}
	return nil
}
