// Package blockdev defines the block-device contract the filesystem engine
// consumes, plus a wrapper that translates filesystem-logical block numbers
// onto a device whose native sector size may be smaller than (and must
// evenly divide) the filesystem's block size.
package blockdev

import "fmt"

// Device is the external, byte-addressable sector-aligned surface the
// engine reads and writes. Implementations are responsible for their own
// internal synchronization; the engine assumes a single handle.
type Device interface {
	// SectorSize returns the device's native sector size in bytes.
	SectorSize() uint32
	// SectorCount returns the total number of sectors on the device.
	SectorCount() uint64
	// ReadSector reads exactly SectorSize() bytes at the given sector index.
	ReadSector(index uint64, buf []byte) error
	// WriteSector writes exactly SectorSize() bytes at the given sector index.
	WriteSector(index uint64, buf []byte) error
}

// Wrapper translates filesystem-logical block numbers to the sectors of an
// underlying Device, aggregating sectors when the filesystem's block size
// is a multiple of the device's sector size.
type Wrapper struct {
	dev             Device
	blockSize       uint32
	sectorsPerBlock uint32
}

// NewWrapper validates that blockSize is a positive multiple of dev's
// sector size and returns a Wrapper over it.
func NewWrapper(dev Device, blockSize uint32) (*Wrapper, error) {
	sectorSize := dev.SectorSize()
	if sectorSize == 0 {
		return nil, fmt.Errorf("blockdev: device reports zero sector size")
	}
	if blockSize == 0 || blockSize%sectorSize != 0 {
		return nil, fmt.Errorf("blockdev: block size %d is not a multiple of sector size %d", blockSize, sectorSize)
	}
	return &Wrapper{dev: dev, blockSize: blockSize, sectorsPerBlock: blockSize / sectorSize}, nil
}

// BlockSize returns the filesystem's logical block size in bytes.
func (w *Wrapper) BlockSize() uint32 { return w.blockSize }

// BlockCount returns the number of whole filesystem blocks the underlying
// device can hold.
func (w *Wrapper) BlockCount() uint64 {
	return w.dev.SectorCount() / uint64(w.sectorsPerBlock)
}

// ReadBlock reads one filesystem block into buf, which must be exactly
// BlockSize() bytes.
func (w *Wrapper) ReadBlock(block uint64, buf []byte) error {
	if err := w.checkBounds(block, buf); err != nil {
		return err
	}
	sector := block * uint64(w.sectorsPerBlock)
	sectorSize := w.dev.SectorSize()
	for i := uint32(0); i < w.sectorsPerBlock; i++ {
		chunk := buf[uint32(i)*sectorSize : uint32(i+1)*sectorSize]
		if err := w.dev.ReadSector(sector+uint64(i), chunk); err != nil {
			return fmt.Errorf("blockdev: read block %d: %w", block, err)
		}
	}
	return nil
}

// WriteBlock writes one filesystem block from buf, which must be exactly
// BlockSize() bytes.
func (w *Wrapper) WriteBlock(block uint64, buf []byte) error {
	if err := w.checkBounds(block, buf); err != nil {
		return err
	}
	sector := block * uint64(w.sectorsPerBlock)
	sectorSize := w.dev.SectorSize()
	for i := uint32(0); i < w.sectorsPerBlock; i++ {
		chunk := buf[uint32(i)*sectorSize : uint32(i+1)*sectorSize]
		if err := w.dev.WriteSector(sector+uint64(i), chunk); err != nil {
			return fmt.Errorf("blockdev: write block %d: %w", block, err)
		}
	}
	return nil
}

func (w *Wrapper) checkBounds(block uint64, buf []byte) error {
	if uint32(len(buf)) != w.blockSize {
		return fmt.Errorf("blockdev: buffer length %d does not match block size %d", len(buf), w.blockSize)
	}
	if block >= w.BlockCount() {
		return fmt.Errorf("blockdev: block %d out of range (count %d)", block, w.BlockCount())
	}
	return nil
}
