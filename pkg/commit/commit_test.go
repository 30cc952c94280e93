package commit

import (
	"testing"

	"github.com/deploymenttheory/go-littlefs/pkg/binpack"
	"github.com/deploymenttheory/go-littlefs/pkg/entry"
	"github.com/deploymenttheory/go-littlefs/pkg/fserrors"
	"github.com/deploymenttheory/go-littlefs/pkg/tag"
	"github.com/stretchr/testify/require"
)

func sampleEntries() []entry.Entry {
	return []entry.Entry{
		{Tag: tag.Tag{Valid: true, Type3: tag.TypeName, ID: 1, Length: 5}, Payload: []byte("hello")},
		{Tag: tag.Tag{Valid: true, Type3: tag.TypeStruct, Chunk: tag.ChunkInline, ID: 1, Length: 3}, Payload: []byte("abc")},
	}
}

func TestWriteParseRoundTrip(t *testing.T) {
	w := binpack.NewWriter(64)
	res := Write(w, sampleEntries(), tag.AllOnesMask, DefaultCRCSeed, 16)
	require.Equal(t, 0, w.Len()%16)

	r := binpack.NewReader(w.Bytes())
	parsed, err := Parse(r, tag.AllOnesMask, DefaultCRCSeed, 16)
	require.NoError(t, err)
	require.Equal(t, res.LastTagRaw, parsed.LastTagRaw)
	require.Len(t, parsed.Entries, 2)
	require.Equal(t, "hello", string(parsed.Entries[0].Payload))
	require.Equal(t, "abc", string(parsed.Entries[1].Payload))
}

func TestParseRejectsCorruptedByte(t *testing.T) {
	w := binpack.NewWriter(64)
	Write(w, sampleEntries(), tag.AllOnesMask, DefaultCRCSeed, 16)

	buf := append([]byte(nil), w.Bytes()...)
	buf[5] ^= 0xFF // corrupt a payload byte

	r := binpack.NewReader(buf)
	_, err := Parse(r, tag.AllOnesMask, DefaultCRCSeed, 16)
	require.ErrorIs(t, err, fserrors.ErrCorrupt)
}

func TestSeedFromBytesFeedsFirstCommit(t *testing.T) {
	revBytes := []byte{1, 0, 0, 0}
	seed := SeedFromBytes(revBytes)

	w := binpack.NewWriter(64)
	Write(w, sampleEntries(), tag.AllOnesMask, seed, 16)

	r := binpack.NewReader(w.Bytes())
	_, err := Parse(r, tag.AllOnesMask, seed, 16)
	require.NoError(t, err)

	r2 := binpack.NewReader(w.Bytes())
	_, err = Parse(r2, tag.AllOnesMask, DefaultCRCSeed, 16)
	require.Error(t, err)
}

func TestEmptyCommitRoundTrip(t *testing.T) {
	w := binpack.NewWriter(32)
	Write(w, nil, tag.AllOnesMask, DefaultCRCSeed, 16)

	r := binpack.NewReader(w.Bytes())
	parsed, err := Parse(r, tag.AllOnesMask, DefaultCRCSeed, 16)
	require.NoError(t, err)
	require.Empty(t, parsed.Entries)
}
