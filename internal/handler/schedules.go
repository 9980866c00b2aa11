package handler

import (
	"errors"
	"math/rand"
	"net/http"
	"strconv"
	"time"

	"github.com/maplegrove-coc/duty-roster/backend/internal/domain"
	"github.com/maplegrove-coc/duty-roster/backend/internal/scheduler"
)

func (h *Handler) GenerateSchedule(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Year  int    `json:"year" validate:"required,min=2000,max=2200"`
		Month int    `json:"month" validate:"required,min=1,max=12"`
		Seed  *int64 `json:"seed"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	members, err := h.repository.GetSchedulableMembers()
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	dutyTypes, err := h.repository.GetAllDutyTypes()
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	// An explicit seed reproduces a previous run; otherwise every run rolls
	// the dice anew.
	seed := time.Now().UnixNano()
	if req.Seed != nil {
		seed = *req.Seed
	}
	rng := rand.New(rand.NewSource(seed))

	s, err := scheduler.New(members, dutyTypes, rng)
	if err != nil {
		switch {
		case errors.Is(err, scheduler.ErrNoActiveMembers):
			h.errorResponse(w, r, "no members are available for scheduling")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	schedule, err := s.Generate(req.Year, time.Month(req.Month))
	if err != nil {
		var exhausted *scheduler.ExhaustedError
		switch {
		case errors.As(err, &exhausted):
			h.errorResponse(w, r, exhausted.Error())
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	if err := h.repository.InsertGeneratedSchedule(schedule); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "schedule generated", schedule)
}

func (h *Handler) GetAllSchedules(w http.ResponseWriter, r *http.Request) {
	var year, month int

	if yearParam := r.URL.Query().Get("year"); yearParam != "" {
		parsed, err := strconv.Atoi(yearParam)
		if err != nil {
			h.errorResponse(w, r, "invalid year")
			return
		}
		year = parsed
	}
	if monthParam := r.URL.Query().Get("month"); monthParam != "" {
		parsed, err := strconv.Atoi(monthParam)
		if err != nil || parsed < 1 || parsed > 12 {
			h.errorResponse(w, r, "invalid month")
			return
		}
		month = parsed
	}

	schedules, err := h.repository.GetGeneratedScheduleMetas(year, month)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "schedule list", schedules)
}

func (h *Handler) GetSchedule(w http.ResponseWriter, r *http.Request) {
	schedule := r.Context().Value(ScheduleCtx).(*domain.GeneratedSchedule)
	h.successResponse(w, r, "schedule details", schedule)
}

func (h *Handler) DeleteSchedule(w http.ResponseWriter, r *http.Request) {
	schedule := r.Context().Value(ScheduleCtx).(*domain.GeneratedSchedule)

	if err := h.repository.DeleteGeneratedSchedule(schedule.ID); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "schedule deleted", nil)
}

// UpsertAssignment writes a manual correction into a stored schedule, for
// the slots the generator left to a person or that need swapping after the
// fact.
func (h *Handler) UpsertAssignment(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Date        string  `json:"date" validate:"required,datetime=2006-01-02"`
		DutyTypeID  int64   `json:"dutyTypeId" validate:"required"`
		ServiceType string  `json:"serviceType" validate:"required,oneof=Sunday_AM Sunday_PM Wednesday Monthly"`
		MemberID    int64   `json:"memberId" validate:"required"`
		Notes       *string `json:"notes"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	schedule := r.Context().Value(ScheduleCtx).(*domain.GeneratedSchedule)

	date, err := time.ParseInLocation("2006-01-02", req.Date, time.UTC)
	if err != nil {
		h.badRequest(w, r, err)
		return
	}

	assignment, err := h.repository.UpsertAssignment(schedule.ID, date, req.DutyTypeID, domain.ServiceType(req.ServiceType), req.MemberID, req.Notes)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "assignment saved", assignment)
}
