package scheduler

import (
	"time"

	"github.com/maplegrove-coc/duty-roster/backend/internal/domain"
)

// buildSchedule folds per-occurrence decisions into the persisted result
// tree. Only concrete assignments produce rows: manual and unfilled
// placeholders exist during generation for exclusivity bookkeeping and are
// reconstructed by the display layer from the duty catalog flags. A date
// whose occurrences yielded no concrete assignment gets no daily schedule.
func buildSchedule(year int, month time.Month, generatedAt time.Time, results []occurrenceResult) *domain.GeneratedSchedule {
	schedule := &domain.GeneratedSchedule{
		Year:           year,
		Month:          month,
		GeneratedAt:    generatedAt,
		DailySchedules: make([]domain.DailySchedule, 0, len(results)),
	}

	// Dates appear in occurrence order; dailyByDate points into the slice
	// so a Sunday's AM, PM and Monthly rows share one daily schedule.
	dailyByDate := make(map[time.Time]int)

	for _, res := range results {
		for _, d := range res.decisions {
			if d.Outcome != OutcomeAssigned {
				continue
			}

			idx, ok := dailyByDate[res.occurrence.Date]
			if !ok {
				schedule.DailySchedules = append(schedule.DailySchedules, domain.DailySchedule{
					Date:      res.occurrence.Date,
					DayOfWeek: res.occurrence.Date.Weekday(),
				})
				idx = len(schedule.DailySchedules) - 1
				dailyByDate[res.occurrence.Date] = idx
			}

			daily := &schedule.DailySchedules[idx]
			daily.Assignments = append(daily.Assignments, domain.ScheduleAssignment{
				MemberID:    d.Member.ID,
				DutyTypeID:  d.Duty.ID,
				ServiceType: res.occurrence.Service,
			})
		}
	}

	return schedule
}
