package blockdev

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestWrapperAggregatesSectorsIntoBlocks(t *testing.T) {
	dev := NewMemDevice(128, 8) // 8 sectors of 128 bytes = 1024 bytes
	w, err := NewWrapper(dev, 512)
	require.NoError(t, err)
	require.Equal(t, uint32(512), w.BlockSize())
	require.Equal(t, uint64(2), w.BlockCount())

	buf := make([]byte, 512)
	for i := range buf {
		buf[i] = byte(i)
	}
	require.NoError(t, w.WriteBlock(1, buf))

	got := make([]byte, 512)
	require.NoError(t, w.ReadBlock(1, got))
	require.Equal(t, buf, got)
}

func TestNewWrapperRejectsNonMultipleBlockSize(t *testing.T) {
	dev := NewMemDevice(128, 8)
	_, err := NewWrapper(dev, 500)
	require.Error(t, err)
}

func TestWrapperRejectsOutOfRangeBlock(t *testing.T) {
	dev := NewMemDevice(128, 8)
	w, err := NewWrapper(dev, 512)
	require.NoError(t, err)

	buf := make([]byte, 512)
	require.Error(t, w.ReadBlock(5, buf))
}

func TestWrapperRejectsWrongBufferSize(t *testing.T) {
	dev := NewMemDevice(128, 8)
	w, err := NewWrapper(dev, 512)
	require.NoError(t, err)

	require.Error(t, w.WriteBlock(0, make([]byte, 100)))
}
