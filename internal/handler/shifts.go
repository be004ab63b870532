package handler

import (
	"database/sql"
	"errors"
	"net/http"
	"time"

	"github.com/rotaplan/roster-backend/internal/domain"
)

// shiftDateTimeLayout is the zone-less ISO form shift boundaries cross
// the wire in; they are resolved against the tenant's time zone.
const shiftDateTimeLayout = "2006-01-02T15:04:05"

func (h *Handler) GetAllShifts(w http.ResponseWriter, r *http.Request) {
	tenant := r.Context().Value(TenantCtx).(*domain.Tenant)

	shifts, err := h.repository.GetAllShifts(tenant.ID)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.writeJSON(w, r, http.StatusOK, shifts)
}

func (h *Handler) GetShift(w http.ResponseWriter, r *http.Request) {
	shift := r.Context().Value(ShiftCtx).(*domain.Shift)
	h.writeJSON(w, r, http.StatusOK, shift)
}

type shiftRequest struct {
	TenantID      int64  `json:"tenantId"`
	SpotID        int64  `json:"spotId" validate:"required"`
	StartDateTime string `json:"startDateTime" validate:"required"`
	EndDateTime   string `json:"endDateTime" validate:"required"`
	EmployeeID    *int64 `json:"employeeId"`
	PinnedByUser  bool   `json:"pinnedByUser"`
}

func (h *Handler) tenantLocation(tenantID int64) (*time.Location, error) {
	state, err := h.repository.GetRosterState(tenantID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.NewEntityNotFound("RosterState", tenantID)
		}
		return nil, err
	}
	return state.Location()
}

func (h *Handler) applyShiftRequest(tenant *domain.Tenant, req *shiftRequest, shift *domain.Shift) error {
	loc, err := h.tenantLocation(tenant.ID)
	if err != nil {
		return err
	}

	start, err := time.ParseInLocation(shiftDateTimeLayout, req.StartDateTime, loc)
	if err != nil {
		return &BadRequestError{Message: err.Error()}
	}
	end, err := time.ParseInLocation(shiftDateTimeLayout, req.EndDateTime, loc)
	if err != nil {
		return &BadRequestError{Message: err.Error()}
	}
	if !end.After(start) {
		return &BadRequestError{Message: "endDateTime must be after startDateTime"}
	}

	if err := h.checkSpotRef(tenant.ID, req.SpotID); err != nil {
		return err
	}
	if req.EmployeeID != nil {
		if err := h.checkEmployeeRef(tenant.ID, *req.EmployeeID); err != nil {
			return err
		}
	}

	shift.SpotID = req.SpotID
	shift.StartDateTime = start
	shift.EndDateTime = end
	shift.EmployeeID = req.EmployeeID
	shift.PinnedByUser = req.PinnedByUser
	return nil
}

func (h *Handler) shiftRequestError(w http.ResponseWriter, r *http.Request, err error) {
	var badReq *BadRequestError
	if errors.As(err, &badReq) {
		h.badRequest(w, r, badReq)
		return
	}
	h.domainError(w, r, err)
}

func (h *Handler) CreateShift(w http.ResponseWriter, r *http.Request) {
	tenant := r.Context().Value(TenantCtx).(*domain.Tenant)

	var req shiftRequest
	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	shift := &domain.Shift{TenantID: tenant.ID}
	if req.TenantID != 0 {
		shift.TenantID = req.TenantID
	}
	if err := domain.ValidateTenantID(tenant.ID, shift); err != nil {
		h.domainError(w, r, err)
		return
	}

	if err := h.applyShiftRequest(tenant, &req, shift); err != nil {
		h.shiftRequestError(w, r, err)
		return
	}

	if err := h.repository.CreateShift(shift); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.writeJSON(w, r, http.StatusCreated, shift)
}

func (h *Handler) UpdateShift(w http.ResponseWriter, r *http.Request) {
	tenant := r.Context().Value(TenantCtx).(*domain.Tenant)
	shift := r.Context().Value(ShiftCtx).(*domain.Shift)

	var req shiftRequest
	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	if req.TenantID != 0 && req.TenantID != shift.TenantID {
		h.domainError(w, r, &domain.TenantChangeError{EntityType: "Shift", TenantID: shift.TenantID})
		return
	}

	if err := h.applyShiftRequest(tenant, &req, shift); err != nil {
		h.shiftRequestError(w, r, err)
		return
	}

	if err := h.repository.UpdateShift(shift); err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			h.domainError(w, r, domain.NewEntityNotFoundForUpdate("Shift", shift.ID))
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	h.writeJSON(w, r, http.StatusOK, shift)
}

func (h *Handler) DeleteShift(w http.ResponseWriter, r *http.Request) {
	shift := r.Context().Value(ShiftCtx).(*domain.Shift)

	if err := h.repository.DeleteShift(shift.ID); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.writeJSON(w, r, http.StatusOK, true)
}
