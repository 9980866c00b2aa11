package scheduler

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestFirstSunday(t *testing.T) {
	// March 2026 starts on a Sunday.
	require.Equal(t, date(2026, time.March, 1), FirstSunday(2026, time.March))
	// April 2026 starts on a Wednesday.
	require.Equal(t, date(2026, time.April, 5), FirstSunday(2026, time.April))
}

func TestLastSunday(t *testing.T) {
	require.Equal(t, date(2026, time.March, 29), LastSunday(2026, time.March))
	require.Equal(t, date(2026, time.February, 22), LastSunday(2026, time.February))
	require.Equal(t, date(2026, time.April, 26), LastSunday(2026, time.April))
}

func TestWeekSundays(t *testing.T) {
	sundays := WeekSundays(2026, time.March)
	require.Equal(t, []time.Time{
		date(2026, time.March, 1),
		date(2026, time.March, 8),
		date(2026, time.March, 15),
		date(2026, time.March, 22),
		date(2026, time.March, 29),
	}, sundays)

	require.Len(t, WeekSundays(2026, time.February), 4)
}

func TestWeekSundaysAlwaysSundays(t *testing.T) {
	for month := time.January; month <= time.December; month++ {
		for _, s := range WeekSundays(2026, month) {
			require.Equal(t, time.Sunday, s.Weekday())
			require.Equal(t, month, s.Month())
		}
	}
}
