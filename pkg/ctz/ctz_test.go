package ctz

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCTZKnownValues(t *testing.T) {
	require.Equal(t, uint32(0), CTZ(0))
	require.Equal(t, uint32(0), CTZ(1))
	require.Equal(t, uint32(1), CTZ(2))
	require.Equal(t, uint32(0), CTZ(3))
	require.Equal(t, uint32(2), CTZ(4))
	require.Equal(t, uint32(3), CTZ(8))
}

func TestSkipListSize(t *testing.T) {
	require.Equal(t, uint32(0), SkipListSize(0))
	require.Equal(t, uint32(1), SkipListSize(1))
	require.Equal(t, uint32(2), SkipListSize(2))
	require.Equal(t, uint32(1), SkipListSize(3))
	require.Equal(t, uint32(3), SkipListSize(4))
}

func TestBackPointerBlock(t *testing.T) {
	require.Equal(t, uint32(3), BackPointerBlock(4, 0))
	require.Equal(t, uint32(2), BackPointerBlock(4, 1))
	require.Equal(t, uint32(0), BackPointerBlock(4, 2))
}

func TestDataCapacityShrinksWithHeaderSize(t *testing.T) {
	const blockSize = 512
	require.Equal(t, blockSize, int(DataCapacity(0, blockSize)))
	require.Less(t, int(DataCapacity(4, blockSize)), int(DataCapacity(0, blockSize)))
}

func TestLastBlockIndexZeroForEmptyFile(t *testing.T) {
	require.Equal(t, uint32(0), LastBlockIndex(0, 512))
}

func TestLastBlockIndexGrowsWithLength(t *testing.T) {
	const blockSize = 512
	small := LastBlockIndex(100, blockSize)
	large := LastBlockIndex(100000, blockSize)
	require.GreaterOrEqual(t, large, small)
}
