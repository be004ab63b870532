package handler

import (
	"database/sql"
	"errors"
	"net/http"

	"github.com/rotaplan/roster-backend/internal/domain"
)

func (h *Handler) GetAllAvailabilities(w http.ResponseWriter, r *http.Request) {
	tenant := r.Context().Value(TenantCtx).(*domain.Tenant)

	availabilities, err := h.repository.GetAllAvailabilities(tenant.ID)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.writeJSON(w, r, http.StatusOK, availabilities)
}

func (h *Handler) GetAvailability(w http.ResponseWriter, r *http.Request) {
	availability := r.Context().Value(AvailabilityCtx).(*domain.EmployeeAvailability)
	h.writeJSON(w, r, http.StatusOK, availability)
}

type availabilityRequest struct {
	TenantID   int64  `json:"tenantId"`
	EmployeeID int64  `json:"employeeId" validate:"required"`
	Date       string `json:"date" validate:"required,datetime=2006-01-02"`
	StartTime  string `json:"startTime" validate:"required,datetime=15:04:05"`
	EndTime    string `json:"endTime" validate:"required,datetime=15:04:05"`
	State      string `json:"state" validate:"required,oneof=DESIRED UNDESIRED UNAVAILABLE"`
}

func (h *Handler) checkEmployeeRef(tenantID, employeeID int64) error {
	employee, err := h.repository.GetEmployeeByID(employeeID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.NewEntityNotFound("Employee", employeeID)
		}
		return err
	}
	return domain.ValidateTenantID(tenantID, employee)
}

func (h *Handler) CreateAvailability(w http.ResponseWriter, r *http.Request) {
	tenant := r.Context().Value(TenantCtx).(*domain.Tenant)

	var req availabilityRequest
	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	date, err := domain.ParseLocalDate(req.Date)
	if err != nil {
		h.badRequest(w, r, err)
		return
	}

	availability := &domain.EmployeeAvailability{
		TenantID:   tenant.ID,
		EmployeeID: req.EmployeeID,
		Date:       date,
		StartTime:  req.StartTime,
		EndTime:    req.EndTime,
		State:      domain.AvailabilityState(req.State),
	}
	if req.TenantID != 0 {
		availability.TenantID = req.TenantID
	}
	if err := domain.ValidateTenantID(tenant.ID, availability); err != nil {
		h.domainError(w, r, err)
		return
	}

	if err := h.checkEmployeeRef(tenant.ID, req.EmployeeID); err != nil {
		h.domainError(w, r, err)
		return
	}

	if err := h.repository.CreateAvailability(availability); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.writeJSON(w, r, http.StatusCreated, availability)
}

func (h *Handler) UpdateAvailability(w http.ResponseWriter, r *http.Request) {
	tenant := r.Context().Value(TenantCtx).(*domain.Tenant)
	availability := r.Context().Value(AvailabilityCtx).(*domain.EmployeeAvailability)

	var req availabilityRequest
	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	if req.TenantID != 0 && req.TenantID != availability.TenantID {
		h.domainError(w, r, &domain.TenantChangeError{EntityType: "EmployeeAvailability", TenantID: availability.TenantID})
		return
	}

	date, err := domain.ParseLocalDate(req.Date)
	if err != nil {
		h.badRequest(w, r, err)
		return
	}

	if err := h.checkEmployeeRef(tenant.ID, req.EmployeeID); err != nil {
		h.domainError(w, r, err)
		return
	}

	availability.EmployeeID = req.EmployeeID
	availability.Date = date
	availability.StartTime = req.StartTime
	availability.EndTime = req.EndTime
	availability.State = domain.AvailabilityState(req.State)

	if err := h.repository.UpdateAvailability(availability); err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			h.domainError(w, r, domain.NewEntityNotFoundForUpdate("EmployeeAvailability", availability.ID))
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	h.writeJSON(w, r, http.StatusOK, availability)
}

func (h *Handler) DeleteAvailability(w http.ResponseWriter, r *http.Request) {
	availability := r.Context().Value(AvailabilityCtx).(*domain.EmployeeAvailability)

	if err := h.repository.DeleteAvailability(availability.ID); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.writeJSON(w, r, http.StatusOK, true)
}
