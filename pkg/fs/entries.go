package fs

import (
	"encoding/binary"

	"github.com/deploymenttheory/go-littlefs/pkg/entry"
	"github.com/deploymenttheory/go-littlefs/pkg/mpair"
	"github.com/deploymenttheory/go-littlefs/pkg/tag"
)

// Attribute chunk values for TypeUserAttr entries. CTIME lives on the same
// id as the file/directory it stamps; the volume UUID lives on the
// superblock's id (0) and is distinguished by chunk alone.
const (
	attrChunkCTime      uint8 = 0x00
	attrChunkVolumeUUID uint8 = 0x01
)

func buildNameEntry(id uint16, name string) entry.Entry {
	return entry.Entry{
		Tag:     tag.Tag{Valid: true, Type3: tag.TypeName, Chunk: 0, ID: id, Length: uint16(len(name))},
		Payload: []byte(name),
	}
}

func buildCTimeEntry(id uint16, days uint32, picos uint64) entry.Entry {
	payload := make([]byte, 12)
	binary.LittleEndian.PutUint32(payload[0:4], days)
	binary.LittleEndian.PutUint64(payload[4:12], picos)
	return entry.Entry{
		Tag:     tag.Tag{Valid: true, Type3: tag.TypeUserAttr, Chunk: attrChunkCTime, ID: id, Length: 12},
		Payload: payload,
	}
}

func buildVolumeUUIDEntry(id uint16, uuid [16]byte) entry.Entry {
	return entry.Entry{
		Tag:     tag.Tag{Valid: true, Type3: tag.TypeUserAttr, Chunk: attrChunkVolumeUUID, ID: id, Length: 16},
		Payload: append([]byte(nil), uuid[:]...),
	}
}

func buildInlineStructEntry(id uint16, data []byte) entry.Entry {
	return entry.Entry{
		Tag:     tag.Tag{Valid: true, Type3: tag.TypeStruct, Chunk: tag.ChunkInline, ID: id, Length: uint16(len(data))},
		Payload: append([]byte(nil), data...),
	}
}

func buildCTZStructEntry(id uint16, head uint64, length uint64) entry.Entry {
	payload := make([]byte, 16)
	binary.LittleEndian.PutUint64(payload[0:8], head)
	binary.LittleEndian.PutUint64(payload[8:16], length)
	return entry.Entry{
		Tag:     tag.Tag{Valid: true, Type3: tag.TypeStruct, Chunk: tag.ChunkCTZ, ID: id, Length: 16},
		Payload: payload,
	}
}

func buildDirStructEntry(id uint16, pair mpair.Pair) entry.Entry {
	return entry.Entry{
		Tag:     tag.Tag{Valid: true, Type3: tag.TypeStruct, Chunk: tag.ChunkDir, ID: id, Length: 16},
		Payload: buildDirPayload(pair),
	}
}

func buildHardtailEntry(pair mpair.Pair) entry.Entry {
	return entry.Entry{
		Tag:     tag.Tag{Valid: true, Type3: tag.TypeTail, Chunk: tag.ChunkHardTail, ID: 0, Length: 16},
		Payload: buildDirPayload(pair),
	}
}

func buildDeleteEntry(id uint16) entry.Entry {
	return entry.Entry{
		Tag: tag.Tag{Valid: true, Type3: tag.TypeSplice, Chunk: tag.ChunkDelete, ID: id, Length: 0},
	}
}

func buildDirPayload(pair mpair.Pair) []byte {
	payload := make([]byte, 16)
	binary.LittleEndian.PutUint64(payload[0:8], pair[0])
	binary.LittleEndian.PutUint64(payload[8:16], pair[1])
	return payload
}
