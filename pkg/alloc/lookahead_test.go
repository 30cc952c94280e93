package alloc

import (
	"testing"

	"github.com/deploymenttheory/go-littlefs/pkg/blockdev"
	"github.com/deploymenttheory/go-littlefs/pkg/entry"
	"github.com/deploymenttheory/go-littlefs/pkg/fserrors"
	"github.com/deploymenttheory/go-littlefs/pkg/mdir"
	"github.com/deploymenttheory/go-littlefs/pkg/mpair"
	"github.com/deploymenttheory/go-littlefs/pkg/tag"
	"github.com/stretchr/testify/require"
)

func newDevice(t *testing.T, blockCount uint64) *blockdev.Wrapper {
	t.Helper()
	mem := blockdev.NewMemDevice(512, blockCount)
	w, err := blockdev.NewWrapper(mem, 512)
	require.NoError(t, err)
	return w
}

func writeRoot(t *testing.T, dev *blockdev.Wrapper) {
	t.Helper()
	root := mdir.OfEntries(1, []entry.Entry{
		{Tag: tag.Tag{Valid: true, Type3: tag.TypeName, ID: 1, Length: 1}, Payload: []byte("a")},
	})
	buf := make([]byte, dev.BlockSize())
	n, status := mdir.IntoCStruct(buf, root, 16)
	require.Equal(t, mdir.StatusOK, status)
	require.Greater(t, n, 0)
	require.NoError(t, mpair.WriteBlockPair(dev, mpair.Pair{0, 1}, buf))
}

func TestPopulateExcludesLiveBlocks(t *testing.T) {
	dev := newDevice(t, 16)
	writeRoot(t, dev)

	a := New(dev, func() mpair.Pair { return mpair.Pair{0, 1} }, 16)
	require.NoError(t, a.Populate(BiasBefore))

	for _, b := range a.free {
		require.NotEqual(t, uint64(0), b)
		require.NotEqual(t, uint64(1), b)
	}
}

func TestPopulateBiasSelectsHalfOfDevice(t *testing.T) {
	dev := newDevice(t, 16)
	writeRoot(t, dev)
	mid := dev.BlockCount() / 2

	a := New(dev, func() mpair.Pair { return mpair.Pair{0, 1} }, 16)
	require.NoError(t, a.Populate(BiasBefore))
	for _, b := range a.free {
		require.Less(t, b, mid)
	}

	require.NoError(t, a.Populate(BiasAfter))
	for _, b := range a.free {
		require.GreaterOrEqual(t, b, mid)
	}
}

func TestGetBlockPairReturnsDistinctBlocks(t *testing.T) {
	dev := newDevice(t, 16)
	writeRoot(t, dev)

	a := New(dev, func() mpair.Pair { return mpair.Pair{0, 1} }, 16)
	pair, err := a.GetBlockPair()
	require.NoError(t, err)
	require.NotEqual(t, pair[0], pair[1])
}

func TestGetBlockExhaustionReturnsNoSpace(t *testing.T) {
	dev := newDevice(t, 2)
	writeRoot(t, dev)

	a := New(dev, func() mpair.Pair { return mpair.Pair{0, 1} }, 16)
	_, err := a.GetBlock()
	require.ErrorIs(t, err, fserrors.ErrNoSpace)
}

func TestFlipBiasChangesNextPopulateHalf(t *testing.T) {
	dev := newDevice(t, 16)
	writeRoot(t, dev)

	a := New(dev, func() mpair.Pair { return mpair.Pair{0, 1} }, 16)
	require.Equal(t, BiasBefore, a.bias)
	a.FlipBias()
	require.Equal(t, BiasAfter, a.bias)
}
