package domain

import "time"

type ScheduleAssignment struct {
	ID              int64       `json:"id"`
	DailyScheduleID int64       `json:"dailyScheduleID"`
	MemberID        int64       `json:"memberID"`
	DutyTypeID      int64       `json:"dutyTypeID"`
	ServiceType     ServiceType `json:"serviceType"`
	Notes           *string     `json:"notes"`
}

type DailySchedule struct {
	ID                  int64                `json:"id"`
	GeneratedScheduleID int64                `json:"generatedScheduleID"`
	Date                time.Time            `json:"date"`
	DayOfWeek           time.Weekday         `json:"dayOfWeek"`
	Assignments         []ScheduleAssignment `json:"assignments"`
}

// GeneratedSchedule is one full generation run for a month. History is
// append-only: several schedules may exist for the same year and month.
type GeneratedSchedule struct {
	ID             int64           `json:"id"`
	Year           int             `json:"year"`
	Month          time.Month      `json:"month"`
	GeneratedAt    time.Time       `json:"generatedAt"`
	DailySchedules []DailySchedule `json:"dailySchedules"`
	Version        int32           `json:"-"`
}
