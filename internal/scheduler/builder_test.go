package scheduler

import (
	"testing"
	"time"

	"github.com/maplegrove-coc/duty-roster/backend/internal/domain"
	"github.com/stretchr/testify/require"
)

func TestBuildScheduleMergesSundayServices(t *testing.T) {
	duty := testDuty(1, "Opening Prayer", true, true, false)
	alice := testMember(1, "Alice", "Walker", 1)
	bob := testMember(2, "Bob", "Harris", 1)
	sunday := date(2026, time.March, 1)

	results := []occurrenceResult{
		{
			occurrence: ServiceOccurrence{Date: sunday, Service: domain.ServiceSundayAM, WeekStart: sunday},
			decisions:  []Decision{{Duty: duty, Outcome: OutcomeAssigned, Member: alice}},
		},
		{
			occurrence: ServiceOccurrence{Date: sunday, Service: domain.ServiceSundayPM, WeekStart: sunday},
			decisions:  []Decision{{Duty: duty, Outcome: OutcomeAssigned, Member: bob}},
		},
	}

	generatedAt := date(2026, time.March, 31)
	schedule := buildSchedule(2026, time.March, generatedAt, results)

	require.Equal(t, 2026, schedule.Year)
	require.Equal(t, time.March, schedule.Month)
	require.Equal(t, generatedAt, schedule.GeneratedAt)

	// AM and PM rows of the same Sunday share one daily schedule.
	require.Len(t, schedule.DailySchedules, 1)
	daily := schedule.DailySchedules[0]
	require.Equal(t, sunday, daily.Date)
	require.Equal(t, time.Sunday, daily.DayOfWeek)
	require.Len(t, daily.Assignments, 2)
	require.Equal(t, domain.ServiceSundayAM, daily.Assignments[0].ServiceType)
	require.Equal(t, domain.ServiceSundayPM, daily.Assignments[1].ServiceType)
}

func TestBuildScheduleSkipsPlaceholders(t *testing.T) {
	manual := testDuty(1, "Sermon", true, false, false)
	unfilled := testDuty(2, "Sound Desk", true, false, false)
	sunday := date(2026, time.March, 8)

	results := []occurrenceResult{
		{
			occurrence: ServiceOccurrence{Date: sunday, Service: domain.ServiceSundayAM, WeekStart: sunday},
			decisions: []Decision{
				{Duty: manual, Outcome: OutcomeManual},
				{Duty: unfilled, Outcome: OutcomeUnfilled},
			},
		},
	}

	schedule := buildSchedule(2026, time.March, date(2026, time.March, 31), results)

	// A date with only placeholders produces no daily schedule at all.
	require.Empty(t, schedule.DailySchedules)
}

func TestBuildScheduleKeepsDateOrder(t *testing.T) {
	duty := testDuty(1, "Opening Prayer", true, false, true)
	member := testMember(1, "Alice", "Walker", 1)

	week1 := date(2026, time.March, 1)
	week2 := date(2026, time.March, 8)

	results := []occurrenceResult{
		{
			occurrence: ServiceOccurrence{Date: week1, Service: domain.ServiceSundayAM, WeekStart: week1},
			decisions:  []Decision{{Duty: duty, Outcome: OutcomeAssigned, Member: member}},
		},
		{
			occurrence: ServiceOccurrence{Date: week1.AddDate(0, 0, 3), Service: domain.ServiceWednesday, WeekStart: week1},
			decisions:  []Decision{{Duty: duty, Outcome: OutcomeAssigned, Member: member}},
		},
		{
			occurrence: ServiceOccurrence{Date: week2, Service: domain.ServiceSundayAM, WeekStart: week2},
			decisions:  []Decision{{Duty: duty, Outcome: OutcomeAssigned, Member: member}},
		},
	}

	schedule := buildSchedule(2026, time.March, date(2026, time.March, 31), results)

	require.Len(t, schedule.DailySchedules, 3)
	require.Equal(t, week1, schedule.DailySchedules[0].Date)
	require.Equal(t, week1.AddDate(0, 0, 3), schedule.DailySchedules[1].Date)
	require.Equal(t, week2, schedule.DailySchedules[2].Date)
	require.Equal(t, time.Wednesday, schedule.DailySchedules[1].DayOfWeek)
}
