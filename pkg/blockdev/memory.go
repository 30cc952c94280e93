package blockdev

import "fmt"

// MemDevice is an in-memory Device used by tests and the fuzzing-shaped
// pure-function surface that doesn't want real I/O. The caller chooses the
// sector size; a Wrapper aggregates sectors into blocks. Grounded on the teacher's MockBlockDevice in
// apfs/pkg/container/btree_test.go.
type MemDevice struct {
	sectorSize uint32
	sectors    [][]byte
}

// NewMemDevice allocates a zeroed device with the given sector size and
// count.
func NewMemDevice(sectorSize uint32, sectorCount uint64) *MemDevice {
	sectors := make([][]byte, sectorCount)
	for i := range sectors {
		sectors[i] = make([]byte, sectorSize)
	}
	return &MemDevice{sectorSize: sectorSize, sectors: sectors}
}

func (m *MemDevice) SectorSize() uint32  { return m.sectorSize }
func (m *MemDevice) SectorCount() uint64 { return uint64(len(m.sectors)) }

func (m *MemDevice) ReadSector(index uint64, buf []byte) error {
	if index >= uint64(len(m.sectors)) {
		return fmt.Errorf("memdevice: sector %d out of range", index)
	}
	copy(buf, m.sectors[index])
	return nil
}

func (m *MemDevice) WriteSector(index uint64, buf []byte) error {
	if index >= uint64(len(m.sectors)) {
		return fmt.Errorf("memdevice: sector %d out of range", index)
	}
	copy(m.sectors[index], buf)
	return nil
}
