package scheduler

import (
	"time"

	"github.com/maplegrove-coc/duty-roster/backend/internal/domain"
)

// ServiceOccurrence is one concrete (date, service) instance inside the
// month being generated. Occurrences are derived, never stored.
type ServiceOccurrence struct {
	Date      time.Time
	Service   domain.ServiceType
	WeekStart time.Time
}

type Outcome int

const (
	// OutcomeAssigned means a concrete member was selected.
	OutcomeAssigned Outcome = iota
	// OutcomeManual is a placeholder for a duty the engine never fills:
	// manually scheduled duties and duties suppressed on the last Sunday
	// evening.
	OutcomeManual
	// OutcomeUnfilled means no member has declared eligibility for the
	// duty; the slot awaits manual follow-up.
	OutcomeUnfilled
)

// Decision is the engine's verdict for one duty within one occurrence.
// Member is non-nil only when Outcome is OutcomeAssigned.
type Decision struct {
	Duty    *domain.DutyType
	Outcome Outcome
	Member  *domain.Member
}

type occurrenceResult struct {
	occurrence ServiceOccurrence
	decisions  []Decision
}
