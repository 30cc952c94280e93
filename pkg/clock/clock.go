// Package clock defines the wall-clock contract the engine consumes to
// stamp CTIME entries, grounded on the teacher's pattern of defining a
// narrow interface for each external collaborator
// (internal/interfaces/block_device.go's BlockDeviceManager/BlockCache).
package clock

import "time"

// Source returns the current time as days since the Unix epoch and
// picoseconds within that day, matching the on-disk CTIME payload's two
// fields.
type Source interface {
	Now() (daysSinceEpoch uint32, picosecondsWithinDay uint64)
}

// System is a Source backed by time.Now().
type System struct{}

const picosecondsPerDay = 24 * 60 * 60 * 1_000_000_000_000

// Now implements Source using the real wall clock.
func (System) Now() (uint32, uint64) {
	now := time.Now().UTC()
	epoch := time.Date(1970, 1, 1, 0, 0, 0, 0, time.UTC)
	dayDuration := now.Sub(epoch)
	days := uint32(dayDuration / (24 * time.Hour))

	midnight := epoch.AddDate(0, 0, int(days))
	withinDay := now.Sub(midnight)
	picos := uint64(withinDay) * 1000 // time.Duration is nanoseconds; picoseconds = ns * 1000

	return days, picos
}

// Fixed is a Source that always returns the same instant, for
// deterministic tests.
type Fixed struct {
	Days         uint32
	Picoseconds  uint64
}

// Now implements Source by returning the fixed instant.
func (f Fixed) Now() (uint32, uint64) { return f.Days, f.Picoseconds }
