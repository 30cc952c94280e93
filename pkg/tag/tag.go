// Package tag implements the 32-bit on-disk tag descriptor: parsing,
// emitting, and the XOR masking that chains one tag to the next within a
// commit.
package tag

import (
	"fmt"

	"github.com/deploymenttheory/go-littlefs/pkg/binpack"
)

// Type3 is the 3-bit abstract type field of a tag.
type Type3 uint8

const (
	TypeName     Type3 = 0x0
	typeInvalid  Type3 = 0x1 // reserved, must be rejected by Parse
	TypeStruct   Type3 = 0x2
	TypeUserAttr Type3 = 0x3
	TypeSplice   Type3 = 0x4
	TypeCRC      Type3 = 0x5
	TypeGState   Type3 = 0x6
	TypeTail     Type3 = 0x7
)

// Struct chunk values, valid when Type3 == TypeStruct.
const (
	ChunkDir    uint8 = 0x00
	ChunkInline uint8 = 0x01
	ChunkCTZ    uint8 = 0x02
)

// Splice chunk values, valid when Type3 == TypeSplice.
const (
	ChunkCreate uint8 = 0x00
	ChunkDelete uint8 = 0x01
)

// Tail chunk values, valid when Type3 == TypeTail.
const (
	ChunkSoftTail uint8 = 0x00
	ChunkHardTail uint8 = 0x01
)

// MaxID is the largest id a tag can carry in its 10-bit id field.
const MaxID = 0x3FF

// MaxLength is the largest payload length a tag can describe.
const MaxLength = 0x3FF

// AllOnesMask is the starting XOR mask for the first tag of the first
// commit in a metadata block.
const AllOnesMask uint32 = 0xFFFFFFFF

// Tag is the decoded, in-memory form of a 32-bit on-disk tag.
type Tag struct {
	Valid  bool
	Type3  Type3
	Chunk  uint8
	ID     uint16
	Length uint16
}

// IsHardtail reports whether the tag is a hard-tail link (Type3==TypeTail,
// Chunk==ChunkHardTail).
func (t Tag) IsHardtail() bool { return t.Type3 == TypeTail && t.Chunk == ChunkHardTail }

// IsSoftTail reports whether the tag is a soft-tail link.
func (t Tag) IsSoftTail() bool { return t.Type3 == TypeTail && t.Chunk == ChunkSoftTail }

// IsCRC reports whether the tag terminates a commit.
func (t Tag) IsCRC() bool { return t.Type3 == TypeCRC }

// IsName reports whether the tag binds an id to a name.
func (t Tag) IsName() bool { return t.Type3 == TypeName }

// IsStruct reports whether the tag is a STRUCT entry with the given chunk.
func (t Tag) IsStruct(chunk uint8) bool { return t.Type3 == TypeStruct && t.Chunk == chunk }

// IsAnyStruct reports whether the tag is any STRUCT entry.
func (t Tag) IsAnyStruct() bool { return t.Type3 == TypeStruct }

// IsDelete reports whether the tag is a SPLICE delete tombstone.
func (t Tag) IsDelete() bool { return t.Type3 == TypeSplice && t.Chunk == ChunkDelete }

// IsUserAttr reports whether the tag is a user/superblock attribute entry.
func (t Tag) IsUserAttr() bool { return t.Type3 == TypeUserAttr }

// raw packs the tag's fields into their unmasked 32-bit on-disk form:
//
//	bit 31     valid
//	bits 30-28 type3
//	bits 27-20 chunk
//	bits 19-10 id
//	bits 9-0   length
func (t Tag) raw() uint32 {
	var v uint32
	if t.Valid {
		v |= 1 << 31
	}
	v |= uint32(t.Type3&0x7) << 28
	v |= uint32(t.Chunk) << 20
	v |= uint32(t.ID&MaxID) << 10
	v |= uint32(t.Length & MaxLength)
	return v
}

// Emit packs t into its 32-bit on-disk representation and XORs it with
// xorMask (the preceding tag's raw on-disk bytes, or AllOnesMask for the
// first tag of the first commit in a block).
func Emit(t Tag, xorMask uint32) uint32 {
	return t.raw() ^ xorMask
}

// Parse unpacks a masked on-disk 32-bit value into a Tag. xorMask must be
// the same mask Emit used to produce diskValue. Parse rejects abstract type
// 1, which is reserved and never valid on disk.
func Parse(diskValue uint32, xorMask uint32) (Tag, error) {
	raw := diskValue ^ xorMask
	t := Tag{
		Valid:  raw&(1<<31) != 0,
		Type3:  Type3((raw >> 28) & 0x7),
		Chunk:  uint8((raw >> 20) & 0xFF),
		ID:     uint16((raw >> 10) & MaxID),
		Length: uint16(raw & MaxLength),
	}
	if t.Type3 == typeInvalid {
		return Tag{}, fmt.Errorf("tag: abstract type 1 is reserved and invalid")
	}
	return t, nil
}

// RawOnDisk returns the masked 32-bit value Emit(t, xorMask) produces; it
// is an alias of Emit.
func RawOnDisk(t Tag, xorMask uint32) uint32 { return Emit(t, xorMask) }

// PutUint32 writes the masked on-disk value for t into w using big-endian
// byte order, matching the reference format's tag word layout.
func PutUint32(w *binpack.Writer, t Tag, xorMask uint32) uint32 {
	disk := Emit(t, xorMask)
	w.PutUint32BE(disk)
	return disk
}

// ReadUint32 reads one big-endian tag word from r and parses it against
// xorMask.
func ReadUint32(r *binpack.Reader, xorMask uint32) (Tag, uint32, error) {
	disk, err := r.Uint32BE()
	if err != nil {
		return Tag{}, 0, err
	}
	t, err := Parse(disk, xorMask)
	if err != nil {
		return Tag{}, disk, err
	}
	return t, disk, nil
}
