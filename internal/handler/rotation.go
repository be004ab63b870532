package handler

import (
	"database/sql"
	"errors"
	"net/http"

	"github.com/rotaplan/roster-backend/internal/domain"
)

func (h *Handler) GetAllShiftTemplates(w http.ResponseWriter, r *http.Request) {
	tenant := r.Context().Value(TenantCtx).(*domain.Tenant)

	templates, err := h.repository.GetAllShiftTemplates(tenant.ID)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.writeJSON(w, r, http.StatusOK, templates)
}

func (h *Handler) GetShiftTemplate(w http.ResponseWriter, r *http.Request) {
	tpl := r.Context().Value(ShiftTemplateCtx).(*domain.ShiftTemplate)
	h.writeJSON(w, r, http.StatusOK, tpl)
}

type shiftTemplateRequest struct {
	TenantID           int64  `json:"tenantId"`
	SpotID             int64  `json:"spotId" validate:"required"`
	StartDayOffset     int    `json:"startDayOffset" validate:"min=0"`
	EndDayOffset       int    `json:"endDayOffset" validate:"min=0"`
	StartTime          string `json:"startTime" validate:"required,datetime=15:04:05"`
	EndTime            string `json:"endTime" validate:"required,datetime=15:04:05"`
	RotationEmployeeID *int64 `json:"rotationEmployeeId"`
}

func (h *Handler) checkSpotRef(tenantID, spotID int64) error {
	spot, err := h.repository.GetSpotByID(spotID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.NewEntityNotFound("Spot", spotID)
		}
		return err
	}
	return domain.ValidateTenantID(tenantID, spot)
}

func (h *Handler) checkShiftTemplateRefs(tenantID int64, req *shiftTemplateRequest) error {
	if err := h.checkSpotRef(tenantID, req.SpotID); err != nil {
		return err
	}
	if req.RotationEmployeeID != nil {
		if err := h.checkEmployeeRef(tenantID, *req.RotationEmployeeID); err != nil {
			return err
		}
	}
	return nil
}

func (h *Handler) CreateShiftTemplate(w http.ResponseWriter, r *http.Request) {
	tenant := r.Context().Value(TenantCtx).(*domain.Tenant)

	var req shiftTemplateRequest
	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	tpl := &domain.ShiftTemplate{
		TenantID:           tenant.ID,
		SpotID:             req.SpotID,
		StartDayOffset:     req.StartDayOffset,
		EndDayOffset:       req.EndDayOffset,
		StartTime:          req.StartTime,
		EndTime:            req.EndTime,
		RotationEmployeeID: req.RotationEmployeeID,
	}
	if req.TenantID != 0 {
		tpl.TenantID = req.TenantID
	}
	if err := domain.ValidateTenantID(tenant.ID, tpl); err != nil {
		h.domainError(w, r, err)
		return
	}

	if err := h.checkShiftTemplateRefs(tenant.ID, &req); err != nil {
		h.domainError(w, r, err)
		return
	}

	if err := h.repository.CreateShiftTemplate(tpl); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.writeJSON(w, r, http.StatusCreated, tpl)
}

func (h *Handler) UpdateShiftTemplate(w http.ResponseWriter, r *http.Request) {
	tenant := r.Context().Value(TenantCtx).(*domain.Tenant)
	tpl := r.Context().Value(ShiftTemplateCtx).(*domain.ShiftTemplate)

	var req shiftTemplateRequest
	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	if req.TenantID != 0 && req.TenantID != tpl.TenantID {
		h.domainError(w, r, &domain.TenantChangeError{EntityType: "ShiftTemplate", TenantID: tpl.TenantID})
		return
	}

	if err := h.checkShiftTemplateRefs(tenant.ID, &req); err != nil {
		h.domainError(w, r, err)
		return
	}

	tpl.SpotID = req.SpotID
	tpl.StartDayOffset = req.StartDayOffset
	tpl.EndDayOffset = req.EndDayOffset
	tpl.StartTime = req.StartTime
	tpl.EndTime = req.EndTime
	tpl.RotationEmployeeID = req.RotationEmployeeID

	if err := h.repository.UpdateShiftTemplate(tpl); err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			h.domainError(w, r, domain.NewEntityNotFoundForUpdate("ShiftTemplate", tpl.ID))
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	h.writeJSON(w, r, http.StatusOK, tpl)
}

func (h *Handler) DeleteShiftTemplate(w http.ResponseWriter, r *http.Request) {
	tpl := r.Context().Value(ShiftTemplateCtx).(*domain.ShiftTemplate)

	if err := h.repository.DeleteShiftTemplate(tpl.ID); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.writeJSON(w, r, http.StatusOK, true)
}
