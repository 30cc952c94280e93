package mpair

import "github.com/deploymenttheory/go-littlefs/pkg/blockdev"

// WriteBlockNumber writes raw buf (exactly one device block) to block.
func WriteBlockNumber(dev *blockdev.Wrapper, block uint64, buf []byte) error {
	return dev.WriteBlock(block, buf)
}

// WriteBlockPair writes buf to both legs of pair, in order, failing fast if
// either write fails.
func WriteBlockPair(dev *blockdev.Wrapper, pair Pair, buf []byte) error {
	if err := WriteBlockNumber(dev, pair[0], buf); err != nil {
		return err
	}
	return WriteBlockNumber(dev, pair[1], buf)
}
