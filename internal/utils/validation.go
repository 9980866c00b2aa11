package utils

import (
	"errors"
	"fmt"

	"github.com/maplegrove-coc/duty-roster/backend/internal/domain"
)

type dutyServiceKey struct {
	DutyTypeID int64
	Service    domain.ServiceType
}

// ValidateScheduleExclusivity re-checks the two structural invariants of a
// generated schedule before it is handed to persistence: a member may not
// appear twice within one service occurrence, and a member may not fill the
// same (duty, service) slot twice within the month.
func ValidateScheduleExclusivity(schedule *domain.GeneratedSchedule) error {
	slotMembers := make(map[dutyServiceKey]map[int64]bool)

	for _, daily := range schedule.DailySchedules {
		perService := make(map[domain.ServiceType]map[int64]bool)

		for _, a := range daily.Assignments {
			if perService[a.ServiceType] == nil {
				perService[a.ServiceType] = make(map[int64]bool)
			}
			if perService[a.ServiceType][a.MemberID] {
				return fmt.Errorf("member %d appears twice in the %s service on %s",
					a.MemberID, a.ServiceType, daily.Date.Format("2006-01-02"))
			}
			perService[a.ServiceType][a.MemberID] = true

			key := dutyServiceKey{DutyTypeID: a.DutyTypeID, Service: a.ServiceType}
			if slotMembers[key] == nil {
				slotMembers[key] = make(map[int64]bool)
			}
			if slotMembers[key][a.MemberID] {
				return fmt.Errorf("member %d fills duty %d in the %s service more than once this month",
					a.MemberID, a.DutyTypeID, a.ServiceType)
			}
			slotMembers[key][a.MemberID] = true
		}
	}

	return nil
}

// ValidateDutyType checks the flag combinations a duty type must satisfy
// before it enters the catalog.
func ValidateDutyType(dt *domain.DutyType) error {
	if dt.IsMonthlyDuty && dt.MonthlyDutyFrequency == nil {
		return errors.New("a monthly duty requires a monthly duty frequency")
	}
	if !dt.IsMonthlyDuty && dt.MonthlyDutyFrequency != nil {
		return errors.New("a monthly duty frequency is only valid on a monthly duty")
	}
	if !dt.ManuallyScheduled && dt.ManualAssignmentType != nil {
		return errors.New("a manual assignment type is only valid on a manually scheduled duty")
	}
	if !dt.IsMorningDuty && !dt.IsEveningDuty && !dt.IsWednesdayDuty && !dt.IsMonthlyDuty {
		return errors.New("a duty must belong to at least one service unless it is a monthly duty")
	}
	if dt.SkipLastSundayEvening && !dt.IsEveningDuty {
		return errors.New("skipLastSundayEvening is only valid on an evening duty")
	}
	return nil
}
