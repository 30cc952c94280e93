package fs

import (
	"encoding/binary"
	"fmt"

	"github.com/deploymenttheory/go-littlefs/config"
	"github.com/deploymenttheory/go-littlefs/pkg/blockdev"
	"github.com/deploymenttheory/go-littlefs/pkg/entry"
	"github.com/deploymenttheory/go-littlefs/pkg/mdir"
	"github.com/deploymenttheory/go-littlefs/pkg/mpair"
	"github.com/google/uuid"
)

// superblockMagic is the NAME entry every littlefs volume carries at id 0,
// identifying the volume as formatted, per spec §6.
const superblockMagic = "littlefs"

// versionMajor/versionMinor are emitted big-endian in the superblock's
// version fields, matching the reference's on-disk convention.
const (
	versionMajor uint16 = 2
	versionMinor uint16 = 0
)

// Format writes a fresh superblock to the root metadata pair (0,1),
// implementing spec §6's bootstrap. Revision 2 is written to block 1 and
// revision 1 to block 0, so block 1 is authoritative on first mount (per
// the reference's two-write-not-one bootstrap scenario: a single
// WriteBlockPair call can't produce two different revisions on each leg).
func Format(device blockdev.Device, blockSize uint32, programBlockSize uint32, cfg *config.MountConfig) error {
	wrapper, err := blockdev.NewWrapper(device, blockSize)
	if err != nil {
		return fmt.Errorf("fs: format: %w", err)
	}

	if cfg == nil {
		cfg = &config.MountConfig{
			BlockSize:        blockSize,
			ProgramBlockSize: programBlockSize,
			NameMax:          config.DefaultNameMax,
			FileMax:          config.DefaultFileMax,
			AttrMax:          config.DefaultAttrMax,
		}
	}

	volumeID := uuid.New()
	var volumeBytes [16]byte
	copy(volumeBytes[:], volumeID[:])

	payload := make([]byte, 24)
	binary.BigEndian.PutUint16(payload[0:2], versionMinor)
	binary.BigEndian.PutUint16(payload[2:4], versionMajor)
	binary.LittleEndian.PutUint32(payload[4:8], blockSize)
	binary.LittleEndian.PutUint32(payload[8:12], uint32(wrapper.BlockCount()))
	binary.LittleEndian.PutUint32(payload[12:16], cfg.NameMax)
	binary.LittleEndian.PutUint32(payload[16:20], cfg.FileMax)
	binary.LittleEndian.PutUint32(payload[20:24], cfg.AttrMax)

	entries := []entry.Entry{
		buildNameEntry(0, superblockMagic),
		buildInlineStructEntry(0, payload),
		buildVolumeUUIDEntry(0, volumeBytes),
	}

	block1 := mdir.OfEntries(1, entries)
	block2 := mdir.OfEntries(2, entries)

	buf1 := make([]byte, blockSize)
	if _, status := mdir.IntoCStruct(buf1, block1, int(programBlockSize)); status != mdir.StatusOK {
		return fmt.Errorf("fs: format: superblock commit (revision 1) does not fit in one block")
	}
	buf2 := make([]byte, blockSize)
	if _, status := mdir.IntoCStruct(buf2, block2, int(programBlockSize)); status != mdir.StatusOK {
		return fmt.Errorf("fs: format: superblock commit (revision 2) does not fit in one block")
	}

	if err := mpair.WriteBlockNumber(wrapper, RootPair[0], buf1); err != nil {
		return fmt.Errorf("fs: format: write block 0: %w", err)
	}
	if err := mpair.WriteBlockNumber(wrapper, RootPair[1], buf2); err != nil {
		return fmt.Errorf("fs: format: write block 1: %w", err)
	}
	return nil
}
