package handler

import (
	"database/sql"
	"errors"
	"net/http"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/maplegrove-coc/duty-roster/backend/internal/domain"
)

func (h *Handler) GetAllMembers(w http.ResponseWriter, r *http.Request) {
	members, err := h.repository.GetAllMembers()
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "member list", members)
}

func (h *Handler) CreateMember(w http.ResponseWriter, r *http.Request) {
	var req struct {
		FirstName             string `json:"firstName" validate:"required"`
		LastName              string `json:"lastName" validate:"required"`
		HasSubmittedForm      bool   `json:"hasSubmittedForm"`
		ExcludeFromScheduling bool   `json:"excludeFromScheduling"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	member := &domain.Member{
		FirstName:             req.FirstName,
		LastName:              req.LastName,
		HasSubmittedForm:      req.HasSubmittedForm,
		ExcludeFromScheduling: req.ExcludeFromScheduling,
	}

	if err := h.repository.CreateMember(member); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "member created", member)
}

func (h *Handler) GetMember(w http.ResponseWriter, r *http.Request) {
	member := r.Context().Value(MemberCtx).(*domain.Member)
	h.successResponse(w, r, "member details", member)
}

func (h *Handler) UpdateMember(w http.ResponseWriter, r *http.Request) {
	var req struct {
		FirstName             *string `json:"firstName"`
		LastName              *string `json:"lastName"`
		HasSubmittedForm      *bool   `json:"hasSubmittedForm"`
		ExcludeFromScheduling *bool   `json:"excludeFromScheduling"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	member := r.Context().Value(MemberCtx).(*domain.Member)

	if req.FirstName != nil {
		member.FirstName = *req.FirstName
	}
	if req.LastName != nil {
		member.LastName = *req.LastName
	}
	if req.HasSubmittedForm != nil {
		member.HasSubmittedForm = *req.HasSubmittedForm
	}
	if req.ExcludeFromScheduling != nil {
		member.ExcludeFromScheduling = *req.ExcludeFromScheduling
	}

	if err := h.repository.UpdateMember(member); err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			h.errorResponse(w, r, "member update failed, please try again")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	h.successResponse(w, r, "member updated", member)
}

func (h *Handler) ReplaceMemberDuties(w http.ResponseWriter, r *http.Request) {
	var req struct {
		DutyTypeIDs []int64 `json:"dutyTypeIds" validate:"required"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	member := r.Context().Value(MemberCtx).(*domain.Member)

	if err := h.repository.ReplaceMemberDuties(member.ID, req.DutyTypeIDs); err != nil {
		var pgErr *pgconn.PgError
		switch {
		case errors.As(err, &pgErr) && pgErr.ConstraintName == "member_duties_duty_type_id_fkey":
			h.badRequest(w, r, errors.New("unknown duty type id"))
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	member.AvailableDutyIDs = req.DutyTypeIDs

	h.successResponse(w, r, "member duties updated", member)
}

func (h *Handler) DeleteMember(w http.ResponseWriter, r *http.Request) {
	member := r.Context().Value(MemberCtx).(*domain.Member)

	if err := h.repository.DeleteMember(member.ID); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "member deleted", nil)
}
