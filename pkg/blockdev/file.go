package blockdev

import (
	"fmt"
	"os"
)

// FileDevice adapts an *os.File (a raw disk image or a regular file used
// to back a filesystem image) to the Device contract, grounded on the
// teacher's internal/device.DMGDevice file-backed adapter.
type FileDevice struct {
	f          *os.File
	sectorSize uint32
	sectors    uint64
}

// OpenFileDevice opens path (creating it if it doesn't exist) and sizes it
// to sectorSize*sectorCount bytes, growing or truncating as needed.
func OpenFileDevice(path string, sectorSize uint32, sectorCount uint64) (*FileDevice, error) {
	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE, 0o644)
	if err != nil {
		return nil, fmt.Errorf("blockdev: open %s: %w", path, err)
	}
	size := int64(sectorSize) * int64(sectorCount)
	if err := f.Truncate(size); err != nil {
		f.Close()
		return nil, fmt.Errorf("blockdev: size %s to %d bytes: %w", path, size, err)
	}
	return &FileDevice{f: f, sectorSize: sectorSize, sectors: sectorCount}, nil
}

// OpenExistingFileDevice opens an already-formatted image at path without
// resizing it, deriving the sector count from the file's current size.
func OpenExistingFileDevice(path string, sectorSize uint32) (*FileDevice, error) {
	f, err := os.OpenFile(path, os.O_RDWR, 0o644)
	if err != nil {
		return nil, fmt.Errorf("blockdev: open %s: %w", path, err)
	}
	info, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("blockdev: stat %s: %w", path, err)
	}
	sectorCount := uint64(info.Size()) / uint64(sectorSize)
	return &FileDevice{f: f, sectorSize: sectorSize, sectors: sectorCount}, nil
}

func (d *FileDevice) SectorSize() uint32  { return d.sectorSize }
func (d *FileDevice) SectorCount() uint64 { return d.sectors }

func (d *FileDevice) ReadSector(index uint64, buf []byte) error {
	if index >= d.sectors {
		return fmt.Errorf("filedevice: sector %d out of range", index)
	}
	off := int64(index) * int64(d.sectorSize)
	if _, err := d.f.ReadAt(buf, off); err != nil {
		return fmt.Errorf("filedevice: read sector %d: %w", index, err)
	}
	return nil
}

func (d *FileDevice) WriteSector(index uint64, buf []byte) error {
	if index >= d.sectors {
		return fmt.Errorf("filedevice: sector %d out of range", index)
	}
	off := int64(index) * int64(d.sectorSize)
	if _, err := d.f.WriteAt(buf, off); err != nil {
		return fmt.Errorf("filedevice: write sector %d: %w", index, err)
	}
	return nil
}

// Close flushes and closes the underlying file.
func (d *FileDevice) Close() error {
	if err := d.f.Sync(); err != nil {
		d.f.Close()
		return fmt.Errorf("filedevice: sync: %w", err)
	}
	return d.f.Close()
}
