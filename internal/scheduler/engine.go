package scheduler

import (
	"errors"
	"fmt"
	"math/rand"
	"sort"
	"strings"
	"time"

	"github.com/maplegrove-coc/duty-roster/backend/internal/domain"
	"github.com/maplegrove-coc/duty-roster/backend/internal/utils"
)

// monthlyMax is the soft cap on automatic assignments per member per month.
// The candidate filter admits members with count <= monthlyMax, so a member
// may legitimately end the month one past the cap without any relaxation.
const monthlyMax = 3

var ErrNoActiveMembers = errors.New("no active members available for scheduling")

// ExhaustedError is fatal: a duty has eligible members, but every one of
// them is blocked by the non-relaxable slot or service exclusivity rules.
type ExhaustedError struct {
	DutyName      string
	EligibleNames []string
}

func (e *ExhaustedError) Error() string {
	return fmt.Sprintf(
		"unable to assign %s: all eligible members are either at their monthly limit or already assigned to this service; eligible members: %s",
		e.DutyName, strings.Join(e.EligibleNames, ", "),
	)
}

type Scheduler struct {
	members []*domain.Member
	duties  []*domain.DutyType
	state   *FairnessState
	rng     *rand.Rand
	now     func() time.Time
}

// New builds a scheduler over an in-memory snapshot of members and duty
// types. Members must already be filtered to excludeFromScheduling=false.
// rng may be nil, in which case a time-seeded source is used; passing a
// fixed-seed source makes generation fully deterministic.
func New(members []*domain.Member, duties []*domain.DutyType, rng *rand.Rand) (*Scheduler, error) {
	if len(members) == 0 {
		return nil, ErrNoActiveMembers
	}
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	return &Scheduler{
		members: members,
		duties:  duties,
		state:   NewFairnessState(members),
		rng:     rng,
		now:     time.Now,
	}, nil
}

// Generate computes the full roster for one month. It either returns a
// complete, self-consistent schedule or an error; no partial schedule is
// ever returned.
func (s *Scheduler) Generate(year int, month time.Month) (*domain.GeneratedSchedule, error) {
	firstSunday := FirstSunday(year, month)
	lastSunday := LastSunday(year, month)

	results := make([]occurrenceResult, 0, 4*5)
	for _, weekStart := range WeekSundays(year, month) {
		occurrences := []ServiceOccurrence{
			{Date: weekStart, Service: domain.ServiceSundayAM, WeekStart: weekStart},
			{Date: weekStart, Service: domain.ServiceSundayPM, WeekStart: weekStart},
			// Monthly pseudo-service rows are pinned to the week's Sunday.
			// Service-independent monthly duties therefore never land on a
			// Wednesday; that is a known quirk of the product, not a bug.
			{Date: weekStart, Service: domain.ServiceMonthly, WeekStart: weekStart},
		}
		// The Wednesday belongs to the week of its Sunday even when it
		// spills into the next calendar month.
		if weekStart.Month() == month {
			occurrences = append(occurrences, ServiceOccurrence{
				Date:      weekStart.AddDate(0, 0, 3),
				Service:   domain.ServiceWednesday,
				WeekStart: weekStart,
			})
		}

		for _, occ := range occurrences {
			decisions, err := s.assignOccurrence(occ, firstSunday, lastSunday)
			if err != nil {
				return nil, err
			}
			results = append(results, occurrenceResult{occurrence: occ, decisions: decisions})
		}
	}

	schedule := buildSchedule(year, month, s.now(), results)

	if err := utils.ValidateScheduleExclusivity(schedule); err != nil {
		return nil, err
	}

	return schedule, nil
}

// dutiesFor returns the duty list applicable to a service, sorted by the
// service-specific order index. The Monthly pseudo-service has no order
// index of its own; its duties are processed in name order.
func (s *Scheduler) dutiesFor(service domain.ServiceType) []*domain.DutyType {
	duties := make([]*domain.DutyType, 0, len(s.duties))
	for _, dt := range s.duties {
		if dt.ParticipatesIn(service) {
			duties = append(duties, dt)
		}
	}

	sort.SliceStable(duties, func(i, j int) bool {
		if service == domain.ServiceMonthly {
			if duties[i].Name != duties[j].Name {
				return duties[i].Name < duties[j].Name
			}
			return duties[i].ID < duties[j].ID
		}
		a, b := duties[i].OrderIndexFor(service), duties[j].OrderIndexFor(service)
		if a != b {
			return a < b
		}
		return duties[i].ID < duties[j].ID
	})

	return duties
}

// assignOccurrence produces one decision per applicable duty of the
// occurrence, mutating the month-wide fairness state as members are chosen.
func (s *Scheduler) assignOccurrence(occ ServiceOccurrence, firstSunday, lastSunday time.Time) ([]Decision, error) {
	duties := s.dutiesFor(occ.Service)
	assignedToService := make(map[int64]struct{})

	decisions := make([]Decision, 0, len(duties))
	for _, duty := range duties {
		// Suppressed on the last Sunday evening regardless of other flags.
		if duty.SkipLastSundayEvening && occ.Service == domain.ServiceSundayPM && occ.Date.Equal(lastSunday) {
			decisions = append(decisions, Decision{Duty: duty, Outcome: OutcomeManual})
			continue
		}

		// Monthly duties only appear on qualifying weeks; non-qualifying
		// weeks emit no row at all.
		if duty.IsMonthlyDuty && duty.MonthlyDutyFrequency != nil &&
			!monthlyWeekQualifies(*duty.MonthlyDutyFrequency, occ.WeekStart, firstSunday, lastSunday) {
			continue
		}

		if duty.ManuallyScheduled {
			decisions = append(decisions, Decision{Duty: duty, Outcome: OutcomeManual})
			continue
		}

		eligible := make([]*domain.Member, 0, len(s.members))
		for _, m := range s.members {
			if m.IsAvailableForDuty(duty.ID) {
				eligible = append(eligible, m)
			}
		}
		if len(eligible) == 0 {
			decisions = append(decisions, Decision{Duty: duty, Outcome: OutcomeUnfilled})
			continue
		}

		member, err := s.pick(duty, occ, eligible, assignedToService)
		if err != nil {
			return nil, err
		}

		s.state.record(duty.ID, occ.Service, occ.WeekStart, member.ID)
		assignedToService[member.ID] = struct{}{}
		decisions = append(decisions, Decision{Duty: duty, Outcome: OutcomeAssigned, Member: member})
	}

	return decisions, nil
}

// pick runs the relaxation cascade. Each tier is a predicate set; the first
// tier with surviving candidates wins. Slot and service exclusivity appear
// in every tier: relaxing them would put the same person in the same slot
// twice, so they are never dropped.
func (s *Scheduler) pick(duty *domain.DutyType, occ ServiceOccurrence, eligible []*domain.Member, assignedToService map[int64]struct{}) (*domain.Member, error) {
	slotFree := func(m *domain.Member) bool {
		return !s.state.inMonthlySlot(duty.ID, occ.Service, m.ID)
	}
	serviceFree := func(m *domain.Member) bool {
		_, taken := assignedToService[m.ID]
		return !taken
	}
	underCap := func(m *domain.Member) bool {
		return duty.ExemptFromServiceMax || s.state.countOf(m.ID) <= monthlyMax
	}
	freeThisWeek := func(m *domain.Member) bool {
		return !s.state.usedInWeek(occ.WeekStart, m.ID)
	}

	tiers := [][]func(*domain.Member) bool{
		{slotFree, serviceFree, underCap, freeThisWeek},
		{slotFree, serviceFree, underCap}, // weekly variety is a soft preference
		{slotFree, serviceFree},           // the cap is only a guideline
	}

	for _, tier := range tiers {
		candidates := filterMembers(eligible, tier)
		if len(candidates) > 0 {
			return candidates[s.rng.Intn(len(candidates))], nil
		}
	}

	names := make([]string, len(eligible))
	for i, m := range eligible {
		names[i] = m.FullName()
	}
	return nil, &ExhaustedError{DutyName: duty.Name, EligibleNames: names}
}

func filterMembers(members []*domain.Member, predicates []func(*domain.Member) bool) []*domain.Member {
	out := make([]*domain.Member, 0, len(members))
	for _, m := range members {
		ok := true
		for _, p := range predicates {
			if !p(m) {
				ok = false
				break
			}
		}
		if ok {
			out = append(out, m)
		}
	}
	return out
}

func monthlyWeekQualifies(freq domain.MonthlyDutyFrequency, weekStart, firstSunday, lastSunday time.Time) bool {
	switch freq {
	case domain.FrequencyStartOfMonth:
		return weekStart.Equal(firstSunday)
	case domain.FrequencyEndOfMonth:
		return weekStart.Equal(lastSunday)
	case domain.FrequencyEachWeek:
		return true
	default:
		return false
	}
}
