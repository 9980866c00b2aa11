package seed

import (
	"log/slog"
	"math/rand"

	"github.com/maplegrove-coc/duty-roster/backend/internal/domain"
	"github.com/maplegrove-coc/duty-roster/backend/internal/repository"
	"github.com/maplegrove-coc/duty-roster/backend/internal/utils"
)

type catalogEntry struct {
	name        string
	description string
	category    domain.DutyCategory
	morning     bool
	evening     bool
	wednesday   bool
}

// The congregation's standing duty catalog. Order here drives the printed
// order of each service column.
var dutyCatalog = []catalogEntry{
	{"Scripture Reading", "Read scripture during service", domain.CategoryWorship, true, true, true},
	{"AM Song Leading", "Lead songs during Sunday morning service", domain.CategoryWorship, true, false, false},
	{"PM Song Leading", "Lead songs during Sunday evening service", domain.CategoryWorship, false, true, false},
	{"Wed Song Leading", "Lead songs during Wednesday service", domain.CategoryWorship, false, false, true},
	{"AM Preside at Table", "Preside at the Lord's table (Morning Service)", domain.CategoryWorship, true, false, false},
	{"PM Preside at Table", "Preside at the Lord's table (Evening Service)", domain.CategoryWorship, false, true, false},
	{"Opening Prayer", "Lead opening prayer", domain.CategoryWorship, true, true, true},
	{"Closing Prayer", "Lead closing prayer", domain.CategoryWorship, true, true, true},
	{"Foyer Security", "Monitor foyer and entrances", domain.CategoryHospitality, true, true, true},
	{"Visitor Usher", "Welcome and assist visitors", domain.CategoryHospitality, true, true, true},
	{"Sound Board Operator", "Operate the sound system", domain.CategoryAudioVisual, true, true, true},
	{"Advance Song Slides", "Manage song slides during service", domain.CategoryAudioVisual, true, true, true},
	{"AV Booth Operator", "Operate audio/visual equipment", domain.CategoryAudioVisual, true, true, true},
	{"Transportation", "Assist with transportation needs", domain.CategoryFacilities, true, true, true},
}

// SeedDutyCatalog inserts the standing duty catalog and returns the inserted
// rows so callers can wire up member eligibility.
func SeedDutyCatalog(r *repository.Repository) []*domain.DutyType {
	inserted := make([]*domain.DutyType, 0, len(dutyCatalog))

	for i, entry := range dutyCatalog {
		order := int32(i + 1)
		dt := &domain.DutyType{
			Name:                entry.name,
			Description:         entry.description,
			Category:            entry.category,
			IsMorningDuty:       entry.morning,
			IsEveningDuty:       entry.evening,
			IsWednesdayDuty:     entry.wednesday,
			OrderIndexAM:        order,
			OrderIndexPM:        order,
			OrderIndexWednesday: order,
		}

		if err := r.CreateDutyType(dt); err != nil {
			slog.Error("failed to insert duty type", "name", dt.Name, "error", err)
			continue
		}
		inserted = append(inserted, dt)
	}

	slog.Info("duty catalog seeded", "count", len(inserted))
	return inserted
}

// SeedRandomMembers inserts n random members, each eligible for a random
// subset of the existing duty catalog.
func SeedRandomMembers(r *repository.Repository, n int) {
	dutyTypes, err := r.GetAllDutyTypes()
	if err != nil {
		slog.Error("failed to load duty types", "error", err)
		return
	}

	count := 0
	for i := 0; i < n; i++ {
		member := utils.GenerateRandomMember()
		member.HasSubmittedForm = true

		if err := r.CreateMember(member); err != nil {
			slog.Error("failed to insert member", "error", err)
			continue
		}

		dutyIDs := make([]int64, 0, len(dutyTypes))
		for _, dt := range dutyTypes {
			if rand.Intn(2) == 0 {
				dutyIDs = append(dutyIDs, dt.ID)
			}
		}
		if err := r.ReplaceMemberDuties(member.ID, dutyIDs); err != nil {
			slog.Error("failed to set member duties", "member", member.FullName(), "error", err)
			continue
		}

		count++
	}

	slog.Info("random members seeded", "count", count)
}
