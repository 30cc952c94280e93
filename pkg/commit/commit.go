// Package commit implements serialization and parsing of a single commit: a
// contiguous, XOR-chained run of entries terminated by a CRC tag, padded to
// a multiple of the device's program block size.
package commit

import (
	"hash/crc32"

	"github.com/deploymenttheory/go-littlefs/pkg/binpack"
	"github.com/deploymenttheory/go-littlefs/pkg/entry"
	"github.com/deploymenttheory/go-littlefs/pkg/fserrors"
	"github.com/deploymenttheory/go-littlefs/pkg/tag"
)

// DefaultCRCSeed is the running CRC's starting value before any bytes of a
// commit have been folded in, and the value every commit after the first in
// a metadata block resets to (per the reference, the CRC chain is not
// carried across commit boundaries the way the tag XOR chain is).
const DefaultCRCSeed uint32 = 0xFFFFFFFF

var crcTable = crc32.IEEETable

// Result is what Write returns about the commit it just serialized, so the
// caller (the metadata-block codec) can chain the next commit.
type Result struct {
	LastTagRaw uint32 // this commit's final on-disk tag word, for the next commit's starting XOR mask
	CRCValue   uint32 // the value written after the CRC tag
	Entries    int    // number of entries written (excludes the CRC tag itself)
}

// Write serializes entries as one commit into w: XOR-chained tag words,
// verbatim payloads, a terminating CRC tag, the CRC word, and zero padding
// until w's total length (which, for a metadata block, counts from the
// block's first byte) is a multiple of programBlockSize. startingMask is the XOR mask for
// the first tag (AllOnesMask for the first commit in a block, else the
// previous commit's LastTagRaw). seed is the running CRC's starting value
// (DefaultCRCSeed, or CRC32(revision_count) for a block's first commit).
func Write(w *binpack.Writer, entries []entry.Entry, startingMask uint32, seed uint32, programBlockSize int) Result {
	mask := startingMask
	crc := seed

	for _, e := range entries {
		tagBuf := binpack.NewWriter(4)
		disk := tag.PutUint32(tagBuf, e.Tag, mask)
		w.Write(tagBuf.Bytes())
		crc = crc32.Update(crc, crcTable, tagBuf.Bytes())
		w.Write(e.Payload)
		crc = crc32.Update(crc, crcTable, e.Payload)
		mask = disk
	}

	crcTag := tag.Tag{Valid: true, Type3: tag.TypeCRC, Chunk: 0, ID: 0, Length: 4}
	tagBuf := binpack.NewWriter(4)
	crcTagDisk := tag.PutUint32(tagBuf, crcTag, mask)
	crc = crc32.Update(crc, crcTable, tagBuf.Bytes())
	crcValue := seed ^ crc

	w.Write(tagBuf.Bytes())
	w.PutUint32(crcValue)

	w.PadTo(programBlockSize)

	return Result{LastTagRaw: crcTagDisk, CRCValue: crcValue, Entries: len(entries)}
}

// Parsed is one successfully parsed commit.
type Parsed struct {
	Entries    []entry.Entry
	LastTagRaw uint32 // the CRC tag's on-disk word, for chaining the next commit's mask
	EndOffset  int    // offset into the reader's buffer just past this commit's padding
}

// Parse reads one commit starting at r's current offset. startingMask and
// seed have the same meaning as in Write. It stops at the first CRC tag
// whose stored value matches the running CRC, then consumes padding up to
// the next multiple of programBlockSize, measured from the start of r's
// buffer (the same alignment Write pads to). It returns fserrors.ErrCorrupt if
// the CRC doesn't verify, a tag fails to parse, or the padding region isn't
// a clean multiple of programBlockSize.
func Parse(r *binpack.Reader, startingMask uint32, seed uint32, programBlockSize int) (Parsed, error) {
	mask := startingMask
	crc := seed
	var entries []entry.Entry

	for {
		if r.Remaining() < entry.TagSize {
			return Parsed{}, fserrors.ErrCorrupt
		}
		t, disk, err := tag.ReadUint32(r, mask)
		if err != nil {
			return Parsed{}, fserrors.ErrCorrupt
		}
		tagBytes := reconstructBETag(disk)
		crc = crc32.Update(crc, crcTable, tagBytes)

		if t.IsCRC() {
			stored, err := r.Uint32()
			if err != nil {
				return Parsed{}, fserrors.ErrCorrupt
			}
			if stored != seed^crc {
				return Parsed{}, fserrors.ErrCorrupt
			}
			consumed := r.Offset()
			if consumed%programBlockSize != 0 {
				pad := programBlockSize - consumed%programBlockSize
				if r.Remaining() < pad {
					return Parsed{}, fserrors.ErrCorrupt
				}
				if _, err := r.Bytes(pad); err != nil {
					return Parsed{}, fserrors.ErrCorrupt
				}
			}
			return Parsed{Entries: entries, LastTagRaw: disk, EndOffset: r.Offset()}, nil
		}

		if int(t.Length) > r.Remaining() {
			return Parsed{}, fserrors.ErrCorrupt
		}
		payload, err := r.Bytes(int(t.Length))
		if err != nil {
			return Parsed{}, fserrors.ErrCorrupt
		}
		crc = crc32.Update(crc, crcTable, payload)

		entries = append(entries, entry.Entry{Tag: t, Payload: append([]byte(nil), payload...)})
		mask = disk
	}
}

func reconstructBETag(v uint32) []byte {
	return []byte{byte(v >> 24), byte(v >> 16), byte(v >> 8), byte(v)}
}

// SeedFromBytes computes the CRC seed used for a metadata block's very
// first commit: CRC32(revision_count_bytes), folded into DefaultCRCSeed.
func SeedFromBytes(b []byte) uint32 {
	return crc32.Update(DefaultCRCSeed, crcTable, b)
}
