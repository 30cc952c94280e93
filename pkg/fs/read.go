package fs

import (
	"encoding/binary"

	"github.com/deploymenttheory/go-littlefs/pkg/fserrors"
	"github.com/deploymenttheory/go-littlefs/pkg/mpair"
	"github.com/deploymenttheory/go-littlefs/pkg/pathkv"
	"github.com/deploymenttheory/go-littlefs/pkg/tag"
)

// Get resolves a "/"-delimited key to its value, per spec §4.10. Reads do
// not take the allocation mutex.
func (h *Handle) Get(key string) ([]byte, error) {
	segments := pathkv.Split(key)
	if len(segments) == 0 {
		return nil, fserrors.ValueExpected("get", key)
	}
	if len(segments) == 1 {
		return h.GetValue(h.Root(), segments[0])
	}

	parent := segments[:len(segments)-1]
	basename := segments[len(segments)-1]

	res := findFirstBlockPairOfDirectory(h.dev, h.Root(), parent, h.programBlockSize)
	switch res.Kind {
	case FindNoId:
		return nil, fserrors.NotFound("get", key)
	case FindNoStructs:
		return nil, fserrors.DictionaryExpected("get", key)
	case FindNoEntry:
		return nil, fserrors.NotFound("get", key)
	case FindBasenameOn:
		return h.GetValue(res.Pair, basename)
	default:
		return nil, fserrors.NotFound("get", key)
	}
}

// FindFirstBlockPairOfDirectory exposes §4.9's directory-path resolution
// directly, for callers that already have a parent pair and a segment list
// rather than a raw key string.
func (h *Handle) FindFirstBlockPairOfDirectory(root mpair.Pair, segments []string) FindResult {
	return findFirstBlockPairOfDirectory(h.dev, root, segments, h.programBlockSize)
}

// GetValue resolves name directly within pair's hardtail chain, per §4.10's
// get_value. SetInDirectory and DeleteInDirectory locate an existing id
// through the same entriesOfName lookup.
func (h *Handle) GetValue(pair mpair.Pair, name string) ([]byte, error) {
	results, err := entriesOfName(h.dev, pair, name, h.programBlockSize)
	if err != nil {
		return nil, err
	}
	if len(results) == 0 {
		return nil, fserrors.NotFound("get", name)
	}
	last := results[len(results)-1]

	for _, e := range last.Entries {
		if e.Tag.IsStruct(tag.ChunkInline) {
			return append([]byte(nil), e.Payload...), nil
		}
	}
	for _, e := range last.Entries {
		if e.Tag.IsStruct(tag.ChunkCTZ) && len(e.Payload) >= 16 {
			head := binary.LittleEndian.Uint64(e.Payload[0:8])
			length := binary.LittleEndian.Uint64(e.Payload[8:16])
			return h.getCTZ(head, length)
		}
	}
	for _, e := range last.Entries {
		if e.Tag.IsStruct(tag.ChunkDir) {
			return nil, fserrors.ValueExpected("get", name)
		}
	}
	return nil, fserrors.NotFound("get", name)
}
