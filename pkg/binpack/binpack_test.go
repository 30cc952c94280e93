package binpack

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestWriterReaderRoundTrip(t *testing.T) {
	w := NewWriter(16)
	w.PutUint32(0xDEADBEEF)
	w.PutUint32BE(0x01020304)
	w.PutUint16(0xABCD)
	w.Write([]byte("hi"))

	r := NewReader(w.Bytes())
	v1, err := r.Uint32()
	require.NoError(t, err)
	require.Equal(t, uint32(0xDEADBEEF), v1)

	v2, err := r.Uint32BE()
	require.NoError(t, err)
	require.Equal(t, uint32(0x01020304), v2)

	v3, err := r.Uint16()
	require.NoError(t, err)
	require.Equal(t, uint16(0xABCD), v3)

	rest, err := r.Bytes(2)
	require.NoError(t, err)
	require.Equal(t, "hi", string(rest))
	require.Equal(t, 0, r.Remaining())
}

func TestReaderShortBufferErrors(t *testing.T) {
	r := NewReader([]byte{1, 2})
	_, err := r.Uint32()
	require.Error(t, err)
}

func TestPadToRoundsUpToMultiple(t *testing.T) {
	w := NewWriter(4)
	w.Write([]byte{1, 2, 3})
	w.PadTo(8)
	require.Equal(t, 8, w.Len())

	w2 := NewWriter(4)
	w2.Write([]byte{1, 2, 3, 4, 5, 6, 7, 8})
	w2.PadTo(8)
	require.Equal(t, 8, w2.Len())
}
