package clock

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestFixedReturnsConstantInstant(t *testing.T) {
	f := Fixed{Days: 42, Picoseconds: 1234}
	days, picos := f.Now()
	require.Equal(t, uint32(42), days)
	require.Equal(t, uint64(1234), picos)
}

func TestSystemDaysAdvancePastEpoch(t *testing.T) {
	days, picos := System{}.Now()
	require.Greater(t, days, uint32(19000)) // well past 1970
	require.Less(t, picos, uint64(picosecondsPerDay))
}

func TestSystemAgreesWithTimeNow(t *testing.T) {
	days, _ := System{}.Now()
	wantDays := uint32(time.Now().UTC().Unix() / (24 * 60 * 60))
	require.InDelta(t, wantDays, days, 1)
}
