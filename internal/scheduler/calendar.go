package scheduler

import "time"

// FirstSunday returns the earliest Sunday on or after the first day of the
// month.
func FirstSunday(year int, month time.Month) time.Time {
	d := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	for d.Weekday() != time.Sunday {
		d = d.AddDate(0, 0, 1)
	}
	return d
}

// LastSunday returns the latest Sunday before the first day of the next
// month.
func LastSunday(year int, month time.Month) time.Time {
	d := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 1, -1)
	for d.Weekday() != time.Sunday {
		d = d.AddDate(0, 0, -1)
	}
	return d
}

// WeekSundays returns every Sunday from FirstSunday to LastSunday inclusive.
// A week belongs to the month of its Sunday, so the Wednesday of the final
// week may spill into the next calendar month.
func WeekSundays(year int, month time.Month) []time.Time {
	last := LastSunday(year, month)

	sundays := make([]time.Time, 0, 5)
	for d := FirstSunday(year, month); !d.After(last); d = d.AddDate(0, 0, 7) {
		sundays = append(sundays, d)
	}
	return sundays
}
