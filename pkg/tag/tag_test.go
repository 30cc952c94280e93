package tag

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEmitParseRoundTrip(t *testing.T) {
	cases := []Tag{
		{Valid: true, Type3: TypeName, Chunk: 0, ID: 1, Length: 5},
		{Valid: true, Type3: TypeStruct, Chunk: ChunkInline, ID: 2, Length: 128},
		{Valid: true, Type3: TypeStruct, Chunk: ChunkCTZ, ID: 3, Length: 16},
		{Valid: true, Type3: TypeSplice, Chunk: ChunkDelete, ID: 7, Length: 0},
		{Valid: true, Type3: TypeTail, Chunk: ChunkHardTail, ID: 0, Length: 16},
		{Valid: true, Type3: TypeCRC, Chunk: 0, ID: MaxID, Length: MaxLength},
	}

	for _, want := range cases {
		disk := Emit(want, AllOnesMask)
		got, err := Parse(disk, AllOnesMask)
		require.NoError(t, err)
		require.Equal(t, want, got)
	}
}

func TestParseRejectsReservedType(t *testing.T) {
	reserved := Tag{Valid: true, Type3: Type3(0x1), ID: 1, Length: 0}
	disk := reserved.raw() ^ AllOnesMask
	_, err := Parse(disk, AllOnesMask)
	require.Error(t, err)
}

func TestXorChaining(t *testing.T) {
	first := Tag{Valid: true, Type3: TypeName, ID: 1, Length: 4}
	second := Tag{Valid: true, Type3: TypeStruct, Chunk: ChunkInline, ID: 1, Length: 4}

	firstDisk := Emit(first, AllOnesMask)
	secondDisk := Emit(second, firstDisk)

	gotFirst, err := Parse(firstDisk, AllOnesMask)
	require.NoError(t, err)
	require.Equal(t, first, gotFirst)

	gotSecond, err := Parse(secondDisk, firstDisk)
	require.NoError(t, err)
	require.Equal(t, second, gotSecond)
}

func TestPredicates(t *testing.T) {
	require.True(t, Tag{Type3: TypeTail, Chunk: ChunkHardTail}.IsHardtail())
	require.False(t, Tag{Type3: TypeTail, Chunk: ChunkSoftTail}.IsHardtail())
	require.True(t, Tag{Type3: TypeCRC}.IsCRC())
	require.True(t, Tag{Type3: TypeName}.IsName())
	require.True(t, Tag{Type3: TypeStruct, Chunk: ChunkCTZ}.IsStruct(ChunkCTZ))
	require.False(t, Tag{Type3: TypeStruct, Chunk: ChunkCTZ}.IsStruct(ChunkInline))
	require.True(t, Tag{Type3: TypeSplice, Chunk: ChunkDelete}.IsDelete())
	require.True(t, Tag{Type3: TypeUserAttr}.IsUserAttr())
}
