package utils

import (
	"testing"
	"time"

	"github.com/maplegrove-coc/duty-roster/backend/internal/domain"
	"github.com/stretchr/testify/require"
)

func dailyOn(day int, assignments ...domain.ScheduleAssignment) domain.DailySchedule {
	d := time.Date(2026, time.March, day, 0, 0, 0, 0, time.UTC)
	return domain.DailySchedule{Date: d, DayOfWeek: d.Weekday(), Assignments: assignments}
}

func TestValidateScheduleExclusivity(t *testing.T) {
	ok := &domain.GeneratedSchedule{
		Year:  2026,
		Month: time.March,
		DailySchedules: []domain.DailySchedule{
			dailyOn(1,
				domain.ScheduleAssignment{MemberID: 1, DutyTypeID: 1, ServiceType: domain.ServiceSundayAM},
				domain.ScheduleAssignment{MemberID: 2, DutyTypeID: 2, ServiceType: domain.ServiceSundayAM},
				domain.ScheduleAssignment{MemberID: 1, DutyTypeID: 1, ServiceType: domain.ServiceSundayPM},
			),
			dailyOn(8,
				domain.ScheduleAssignment{MemberID: 2, DutyTypeID: 1, ServiceType: domain.ServiceSundayAM},
			),
		},
	}
	require.NoError(t, ValidateScheduleExclusivity(ok))

	sameOccurrence := &domain.GeneratedSchedule{
		DailySchedules: []domain.DailySchedule{
			dailyOn(1,
				domain.ScheduleAssignment{MemberID: 1, DutyTypeID: 1, ServiceType: domain.ServiceSundayAM},
				domain.ScheduleAssignment{MemberID: 1, DutyTypeID: 2, ServiceType: domain.ServiceSundayAM},
			),
		},
	}
	require.Error(t, ValidateScheduleExclusivity(sameOccurrence))

	sameSlotTwice := &domain.GeneratedSchedule{
		DailySchedules: []domain.DailySchedule{
			dailyOn(1, domain.ScheduleAssignment{MemberID: 1, DutyTypeID: 1, ServiceType: domain.ServiceSundayAM}),
			dailyOn(8, domain.ScheduleAssignment{MemberID: 1, DutyTypeID: 1, ServiceType: domain.ServiceSundayAM}),
		},
	}
	require.Error(t, ValidateScheduleExclusivity(sameSlotTwice))
}

func TestValidateDutyType(t *testing.T) {
	frequency := domain.FrequencyEachWeek
	manualType := domain.ManualMemberSelection

	valid := &domain.DutyType{Name: "Opening Prayer", IsMorningDuty: true}
	require.NoError(t, ValidateDutyType(valid))

	monthly := &domain.DutyType{Name: "Bulletin", IsMonthlyDuty: true, MonthlyDutyFrequency: &frequency}
	require.NoError(t, ValidateDutyType(monthly))

	monthlyWithoutFrequency := &domain.DutyType{Name: "Bulletin", IsMonthlyDuty: true}
	require.Error(t, ValidateDutyType(monthlyWithoutFrequency))

	frequencyWithoutMonthly := &domain.DutyType{Name: "Bulletin", IsMorningDuty: true, MonthlyDutyFrequency: &frequency}
	require.Error(t, ValidateDutyType(frequencyWithoutMonthly))

	manualTypeWithoutManual := &domain.DutyType{Name: "Sermon", IsMorningDuty: true, ManualAssignmentType: &manualType}
	require.Error(t, ValidateDutyType(manualTypeWithoutManual))

	noService := &domain.DutyType{Name: "Orphan"}
	require.Error(t, ValidateDutyType(noService))

	skipOnMorningDuty := &domain.DutyType{Name: "AM Song Leading", IsMorningDuty: true, SkipLastSundayEvening: true}
	require.Error(t, ValidateDutyType(skipOnMorningDuty))
}
