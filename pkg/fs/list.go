package fs

import (
	"fmt"

	"github.com/deploymenttheory/go-littlefs/pkg/entry"
	"github.com/deploymenttheory/go-littlefs/pkg/pathkv"
	"github.com/deploymenttheory/go-littlefs/pkg/tag"
)

// DirEntry is one live NAME entry returned by List.
type DirEntry struct {
	Name  string
	IsDir bool
}

// List resolves key to a directory and returns its live, compacted
// entries across its whole hardtail chain. "Last block wins" per id means
// the last chain link's surviving entries take precedence; earlier links
// only contribute ids that no later link also defines.
func (h *Handle) List(key string) ([]DirEntry, error) {
	pair := h.Root()
	segments := pathkv.Split(key)
	if len(segments) > 0 {
		res := findFirstBlockPairOfDirectory(h.dev, h.Root(), segments, h.programBlockSize)
		if res.Kind != FindBasenameOn {
			return nil, fmt.Errorf("fs: list %s: unresolved path segment %q", key, res.Segment)
		}
		pair = res.Pair
	}

	links, err := allEntriesInDir(h.dev, pair, h.programBlockSize)
	if err != nil {
		return nil, fmt.Errorf("fs: list %s: %w", key, err)
	}

	seen := make(map[uint16]bool)
	var out []DirEntry
	for i := len(links) - 1; i >= 0; i-- {
		compacted := entry.Compact(links[i].Entries)
		byID := make(map[uint16]entry.Entry)
		isDir := make(map[uint16]bool)
		for _, e := range compacted {
			if e.Tag.IsName() {
				byID[e.Tag.ID] = e
			}
			if e.Tag.IsStruct(tag.ChunkDir) {
				isDir[e.Tag.ID] = true
			}
		}
		for id, e := range byID {
			if seen[id] {
				continue
			}
			seen[id] = true
			out = append(out, DirEntry{Name: string(e.Payload), IsDir: isDir[id]})
		}
	}
	return out, nil
}
