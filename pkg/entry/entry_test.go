package entry

import (
	"testing"

	"github.com/deploymenttheory/go-littlefs/pkg/tag"
	"github.com/stretchr/testify/require"
)

func name(id uint16, n string) Entry {
	return Entry{Tag: tag.Tag{Valid: true, Type3: tag.TypeName, ID: id, Length: uint16(len(n))}, Payload: []byte(n)}
}

func inlineStruct(id uint16, data string) Entry {
	return Entry{Tag: tag.Tag{Valid: true, Type3: tag.TypeStruct, Chunk: tag.ChunkInline, ID: id, Length: uint16(len(data))}, Payload: []byte(data)}
}

func deleteEntry(id uint16) Entry {
	return Entry{Tag: tag.Tag{Valid: true, Type3: tag.TypeSplice, Chunk: tag.ChunkDelete, ID: id}}
}

func TestCompactDropsDeletedIDs(t *testing.T) {
	entries := []Entry{
		name(1, "a"),
		inlineStruct(1, "v1"),
		deleteEntry(1),
		name(2, "b"),
		inlineStruct(2, "v2"),
	}

	got := Compact(entries)

	var names []string
	for _, e := range got {
		if e.Tag.IsName() {
			names = append(names, string(e.Payload))
		}
	}
	require.Equal(t, []string{"b"}, names)
}

func TestCompactKeepsLastEntryPerSlot(t *testing.T) {
	entries := []Entry{
		name(1, "a"),
		inlineStruct(1, "v1"),
		inlineStruct(1, "v2"),
	}

	got := Compact(entries)
	require.Len(t, got, 2)

	for _, e := range got {
		if e.Tag.IsStruct(tag.ChunkInline) {
			require.Equal(t, "v2", string(e.Payload))
		}
	}
}

func TestCompactSurvivesAfterLatestDelete(t *testing.T) {
	entries := []Entry{
		name(1, "a"),
		deleteEntry(1),
		name(1, "a-again"),
		inlineStruct(1, "v1"),
	}

	got := Compact(entries)
	require.Len(t, got, 2)
}

func TestIDsExcludesDeletedNames(t *testing.T) {
	entries := []Entry{
		name(1, "a"),
		deleteEntry(1),
		name(2, "b"),
	}
	ids := IDs(entries)
	_, hasOne := ids[1]
	_, hasTwo := ids[2]
	require.False(t, hasOne)
	require.True(t, hasTwo)
}

func TestMaxID(t *testing.T) {
	require.Equal(t, uint16(0), MaxID(nil))
	require.Equal(t, uint16(5), MaxID([]Entry{name(1, "a"), name(5, "b"), name(3, "c")}))
}

func TestHardtailRoundTrip(t *testing.T) {
	payload := make([]byte, 16)
	for i := 0; i < 8; i++ {
		payload[i] = byte(i + 1)
	}
	payload[8] = 9
	e := Entry{Tag: tag.Tag{Valid: true, Type3: tag.TypeTail, Chunk: tag.ChunkHardTail, Length: 16}, Payload: payload}

	a, b, ok := Hardtail([]Entry{e})
	require.True(t, ok)
	require.Equal(t, leUint64(payload[0:8]), a)
	require.Equal(t, leUint64(payload[8:16]), b)
}
