package scheduler

import (
	"time"

	"github.com/maplegrove-coc/duty-roster/backend/internal/domain"
)

type slotKey struct {
	dutyTypeID int64
	service    domain.ServiceType
}

// FairnessState tracks the counters threaded through one generation run.
// It is owned by a single Scheduler and never shared between runs, so
// concurrent generations cannot interfere with each other.
type FairnessState struct {
	// monthlySlots: who has already filled this exact (duty, service) slot
	// this month.
	monthlySlots map[slotKey]map[int64]struct{}
	// monthlyCount: total automatic assignments per member this month.
	monthlyCount map[int64]int
	// weekly: who has already been assigned any automatic duty in the week
	// starting on this Sunday.
	weekly map[time.Time]map[int64]struct{}
}

func NewFairnessState(members []*domain.Member) *FairnessState {
	st := &FairnessState{
		monthlySlots: make(map[slotKey]map[int64]struct{}),
		monthlyCount: make(map[int64]int, len(members)),
		weekly:       make(map[time.Time]map[int64]struct{}),
	}
	for _, m := range members {
		st.monthlyCount[m.ID] = 0
	}
	return st
}

func (st *FairnessState) inMonthlySlot(dutyTypeID int64, service domain.ServiceType, memberID int64) bool {
	_, ok := st.monthlySlots[slotKey{dutyTypeID, service}][memberID]
	return ok
}

func (st *FairnessState) countOf(memberID int64) int {
	return st.monthlyCount[memberID]
}

func (st *FairnessState) usedInWeek(weekStart time.Time, memberID int64) bool {
	_, ok := st.weekly[weekStart][memberID]
	return ok
}

func (st *FairnessState) record(dutyTypeID int64, service domain.ServiceType, weekStart time.Time, memberID int64) {
	key := slotKey{dutyTypeID, service}
	if st.monthlySlots[key] == nil {
		st.monthlySlots[key] = make(map[int64]struct{})
	}
	st.monthlySlots[key][memberID] = struct{}{}

	if st.weekly[weekStart] == nil {
		st.weekly[weekStart] = make(map[int64]struct{})
	}
	st.weekly[weekStart][memberID] = struct{}{}

	st.monthlyCount[memberID]++
}
