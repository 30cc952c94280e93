package mdir

import (
	"testing"

	"github.com/deploymenttheory/go-littlefs/pkg/entry"
	"github.com/deploymenttheory/go-littlefs/pkg/tag"
	"github.com/stretchr/testify/require"
)

func nameEntry(id uint16, n string) entry.Entry {
	return entry.Entry{Tag: tag.Tag{Valid: true, Type3: tag.TypeName, ID: id, Length: uint16(len(n))}, Payload: []byte(n)}
}

func structEntry(id uint16, data string) entry.Entry {
	return entry.Entry{Tag: tag.Tag{Valid: true, Type3: tag.TypeStruct, Chunk: tag.ChunkInline, ID: id, Length: uint16(len(data))}, Payload: []byte(data)}
}

func TestIntoCStructOfCStructRoundTrip(t *testing.T) {
	block := OfEntries(1, []entry.Entry{nameEntry(1, "etc"), structEntry(1, "v")})

	buf := make([]byte, 512)
	n, status := IntoCStruct(buf, block, 16)
	require.Equal(t, StatusOK, status)
	require.Greater(t, n, 0)

	got, err := OfCStruct(buf, 16)
	require.NoError(t, err)
	require.Equal(t, uint32(1), got.RevisionCount)
	require.Len(t, got.Commits, 1)
	require.Len(t, got.Commits[0], 2)
}

func TestAddCommitIncrementsRevision(t *testing.T) {
	block := OfEntries(1, []entry.Entry{nameEntry(1, "a")})
	next := AddCommit(block, []entry.Entry{structEntry(1, "v")})
	require.Equal(t, uint32(2), next.RevisionCount)
	require.Len(t, next.Commits, 2)
}

func TestCompactCollapsesToOneCommit(t *testing.T) {
	block := OfEntries(1, []entry.Entry{nameEntry(1, "a")})
	block = AddCommit(block, []entry.Entry{structEntry(1, "v1")})
	block = AddCommit(block, []entry.Entry{structEntry(1, "v2")})

	compacted := Compact(block)
	require.Len(t, compacted.Commits, 1)
	require.Len(t, compacted.Commits[0], 2)
	for _, e := range compacted.Commits[0] {
		if e.Tag.IsStruct(tag.ChunkInline) {
			require.Equal(t, "v2", string(e.Payload))
		}
	}
}

func TestNextIDIsOneMoreThanMax(t *testing.T) {
	block := OfEntries(1, []entry.Entry{nameEntry(1, "a"), nameEntry(5, "b")})
	require.Equal(t, uint16(6), NextID(block))
}

func TestOfCStructRejectsAllZeroBuffer(t *testing.T) {
	buf := make([]byte, 512)
	_, err := OfCStruct(buf, 16)
	require.Error(t, err)
}

func TestIntoCStructSplitStatusOnOversizedBlock(t *testing.T) {
	var entries []entry.Entry
	for i := uint16(0); i < 100; i++ {
		entries = append(entries, nameEntry(i, "a-very-long-directory-entry-name-to-consume-space"))
	}
	block := OfEntries(1, entries)

	buf := make([]byte, 64)
	_, status := IntoCStruct(buf, block, 16)
	require.NotEqual(t, StatusOK, status)
}
