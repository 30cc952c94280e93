// Package entry implements the (tag, payload) pair that is the unit of a
// commit, plus the compaction rule that reduces a sequence of entries to
// the minimal set equivalent to replaying them in order.
package entry

import "github.com/deploymenttheory/go-littlefs/pkg/tag"

// Entry pairs a decoded Tag with its payload bytes.
type Entry struct {
	Tag     tag.Tag
	Payload []byte
}

// TagSize is the on-disk size of a tag word.
const TagSize = 4

// LengthOf returns the total on-disk size (tag + payload) of entries.
func LengthOf(entries []Entry) int {
	n := 0
	for _, e := range entries {
		n += TagSize + len(e.Payload)
	}
	return n
}

type slotKey struct {
	id    uint16
	type3 tag.Type3
}

// Compact reduces entries to the minimal equivalent set: for each id,
// everything up to and including its most recent SPLICE delete is
// discarded; among the entries that survive for the same (id, type3) slot,
// only the last one is kept. The relative order of distinct ids in the
// output follows the first appearance of their surviving entries.
func Compact(entries []Entry) []Entry {
	lastDeleteIdx := make(map[uint16]int)
	for i, e := range entries {
		if e.Tag.IsDelete() {
			lastDeleteIdx[e.Tag.ID] = i
		}
	}

	survivors := make([]Entry, 0, len(entries))
	for i, e := range entries {
		if del, ok := lastDeleteIdx[e.Tag.ID]; ok && i <= del {
			continue
		}
		survivors = append(survivors, e)
	}

	lastSlot := make(map[slotKey]int)
	for i, e := range survivors {
		lastSlot[slotKey{e.Tag.ID, e.Tag.Type3}] = i
	}

	out := make([]Entry, 0, len(survivors))
	seen := make(map[int]bool)
	for i, e := range survivors {
		key := slotKey{e.Tag.ID, e.Tag.Type3}
		if lastSlot[key] != i {
			continue
		}
		if seen[i] {
			continue
		}
		seen[i] = true
		out = append(out, e)
	}
	return out
}

// IDs returns the set of ids with a live NAME entry after compaction (i.e.
// ids not tombstoned by a SPLICE delete).
func IDs(entries []Entry) map[uint16]struct{} {
	compacted := Compact(entries)
	ids := make(map[uint16]struct{})
	for _, e := range compacted {
		if e.Tag.IsName() {
			ids[e.Tag.ID] = struct{}{}
		}
	}
	return ids
}

// MaxID returns the largest id referenced by any entry, or 0 if entries is
// empty. Callers that need "next free id" compute MaxID(entries)+1.
func MaxID(entries []Entry) uint16 {
	var max uint16
	for _, e := range entries {
		if e.Tag.ID > max {
			max = e.Tag.ID
		}
	}
	return max
}

// Hardtail returns the blockpair encoded by the first hard-tail entry
// found, if any.
func Hardtail(entries []Entry) (a, b uint64, ok bool) {
	for _, e := range entries {
		if e.Tag.IsHardtail() && len(e.Payload) >= 16 {
			a = leUint64(e.Payload[0:8])
			b = leUint64(e.Payload[8:16])
			return a, b, true
		}
	}
	return 0, 0, false
}

func leUint64(b []byte) uint64 {
	var v uint64
	for i := 7; i >= 0; i-- {
		v = v<<8 | uint64(b[i])
	}
	return v
}
