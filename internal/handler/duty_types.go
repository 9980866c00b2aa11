package handler

import (
	"database/sql"
	"errors"
	"net/http"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/maplegrove-coc/duty-roster/backend/internal/domain"
	"github.com/maplegrove-coc/duty-roster/backend/internal/utils"
)

type dutyTypeRequest struct {
	Name                  string  `json:"name" validate:"required"`
	Description           string  `json:"description"`
	Category              string  `json:"category" validate:"required,oneof=Worship AudioVisual Hospitality Facilities"`
	IsMorningDuty         bool    `json:"isMorningDuty"`
	IsEveningDuty         bool    `json:"isEveningDuty"`
	IsWednesdayDuty       bool    `json:"isWednesdayDuty"`
	OrderIndexAM          int32   `json:"orderIndexAM"`
	OrderIndexPM          int32   `json:"orderIndexPM"`
	OrderIndexWednesday   int32   `json:"orderIndexWednesday"`
	ExemptFromServiceMax  bool    `json:"exemptFromServiceMax"`
	ManuallyScheduled     bool    `json:"manuallyScheduled"`
	ManualAssignmentType  *string `json:"manualAssignmentType" validate:"omitempty,oneof=MemberSelection TextInput"`
	IsMonthlyDuty         bool    `json:"isMonthlyDuty"`
	MonthlyDutyFrequency  *string `json:"monthlyDutyFrequency" validate:"omitempty,oneof=StartOfMonth EachWeek EndOfMonth"`
	SkipLastSundayEvening bool    `json:"skipLastSundayEvening"`
}

func (req *dutyTypeRequest) apply(dt *domain.DutyType) {
	dt.Name = req.Name
	dt.Description = req.Description
	dt.Category = domain.DutyCategory(req.Category)
	dt.IsMorningDuty = req.IsMorningDuty
	dt.IsEveningDuty = req.IsEveningDuty
	dt.IsWednesdayDuty = req.IsWednesdayDuty
	dt.OrderIndexAM = req.OrderIndexAM
	dt.OrderIndexPM = req.OrderIndexPM
	dt.OrderIndexWednesday = req.OrderIndexWednesday
	dt.ExemptFromServiceMax = req.ExemptFromServiceMax
	dt.ManuallyScheduled = req.ManuallyScheduled
	dt.IsMonthlyDuty = req.IsMonthlyDuty
	dt.SkipLastSundayEvening = req.SkipLastSundayEvening

	dt.ManualAssignmentType = nil
	if req.ManualAssignmentType != nil {
		mat := domain.ManualAssignmentType(*req.ManualAssignmentType)
		dt.ManualAssignmentType = &mat
	}
	dt.MonthlyDutyFrequency = nil
	if req.MonthlyDutyFrequency != nil {
		freq := domain.MonthlyDutyFrequency(*req.MonthlyDutyFrequency)
		dt.MonthlyDutyFrequency = &freq
	}
}

func (h *Handler) GetAllDutyTypes(w http.ResponseWriter, r *http.Request) {
	dutyTypes, err := h.repository.GetAllDutyTypes()
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "duty type list", dutyTypes)
}

func (h *Handler) CreateDutyType(w http.ResponseWriter, r *http.Request) {
	var req dutyTypeRequest

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	dutyType := &domain.DutyType{}
	req.apply(dutyType)

	if err := utils.ValidateDutyType(dutyType); err != nil {
		h.badRequest(w, r, err)
		return
	}

	if err := h.repository.CreateDutyType(dutyType); err != nil {
		var pgErr *pgconn.PgError
		switch {
		case errors.As(err, &pgErr) && pgErr.ConstraintName == "duty_types_name_key":
			h.badRequest(w, r, errors.New("a duty type with this name already exists"))
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	h.successResponse(w, r, "duty type created", dutyType)
}

func (h *Handler) GetDutyType(w http.ResponseWriter, r *http.Request) {
	dutyType := r.Context().Value(DutyTypeCtx).(*domain.DutyType)
	h.successResponse(w, r, "duty type details", dutyType)
}

func (h *Handler) UpdateDutyType(w http.ResponseWriter, r *http.Request) {
	var req dutyTypeRequest

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	dutyType := r.Context().Value(DutyTypeCtx).(*domain.DutyType)
	req.apply(dutyType)

	if err := utils.ValidateDutyType(dutyType); err != nil {
		h.badRequest(w, r, err)
		return
	}

	if err := h.repository.UpdateDutyType(dutyType); err != nil {
		var pgErr *pgconn.PgError
		switch {
		case errors.As(err, &pgErr) && pgErr.ConstraintName == "duty_types_name_key":
			h.badRequest(w, r, errors.New("a duty type with this name already exists"))
		case errors.Is(err, sql.ErrNoRows):
			h.errorResponse(w, r, "duty type update failed, please try again")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	h.successResponse(w, r, "duty type updated", dutyType)
}

func (h *Handler) DeleteDutyType(w http.ResponseWriter, r *http.Request) {
	dutyType := r.Context().Value(DutyTypeCtx).(*domain.DutyType)

	if err := h.repository.DeleteDutyType(dutyType.ID); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "duty type deleted", nil)
}
