package handler

import (
	"database/sql"
	"errors"
	"net/http"

	"github.com/rotaplan/roster-backend/internal/domain"
)

func (h *Handler) GetAllSpots(w http.ResponseWriter, r *http.Request) {
	tenant := r.Context().Value(TenantCtx).(*domain.Tenant)

	spots, err := h.repository.GetAllSpots(tenant.ID)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.writeJSON(w, r, http.StatusOK, spots)
}

func (h *Handler) GetSpot(w http.ResponseWriter, r *http.Request) {
	spot := r.Context().Value(SpotCtx).(*domain.Spot)
	h.writeJSON(w, r, http.StatusOK, spot)
}

// checkSkillRefs verifies every referenced skill exists and belongs to
// the tenant.
func (h *Handler) checkSkillRefs(tenantID int64, skillIDs []int64) error {
	for _, skillID := range skillIDs {
		skill, err := h.repository.GetSkillByID(skillID)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return domain.NewEntityNotFound("Skill", skillID)
			}
			return err
		}
		if err := domain.ValidateTenantID(tenantID, skill); err != nil {
			return err
		}
	}
	return nil
}

func (h *Handler) CreateSpot(w http.ResponseWriter, r *http.Request) {
	tenant := r.Context().Value(TenantCtx).(*domain.Tenant)

	var req struct {
		TenantID         int64   `json:"tenantId"`
		Name             string  `json:"name" validate:"required"`
		RequiredSkillIDs []int64 `json:"requiredSkillIDs"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	spot := &domain.Spot{TenantID: tenant.ID, Name: req.Name, RequiredSkillIDs: req.RequiredSkillIDs}
	if spot.RequiredSkillIDs == nil {
		spot.RequiredSkillIDs = []int64{}
	}
	if req.TenantID != 0 {
		spot.TenantID = req.TenantID
	}
	if err := domain.ValidateTenantID(tenant.ID, spot); err != nil {
		h.domainError(w, r, err)
		return
	}

	if err := h.checkSkillRefs(tenant.ID, spot.RequiredSkillIDs); err != nil {
		h.domainError(w, r, err)
		return
	}

	if err := h.repository.CreateSpot(spot); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.writeJSON(w, r, http.StatusCreated, spot)
}

func (h *Handler) UpdateSpot(w http.ResponseWriter, r *http.Request) {
	tenant := r.Context().Value(TenantCtx).(*domain.Tenant)
	spot := r.Context().Value(SpotCtx).(*domain.Spot)

	var req struct {
		TenantID         int64   `json:"tenantId"`
		Name             string  `json:"name" validate:"required"`
		RequiredSkillIDs []int64 `json:"requiredSkillIDs"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	if req.TenantID != 0 && req.TenantID != spot.TenantID {
		h.domainError(w, r, &domain.TenantChangeError{EntityType: "Spot", TenantID: spot.TenantID})
		return
	}

	if err := h.checkSkillRefs(tenant.ID, req.RequiredSkillIDs); err != nil {
		h.domainError(w, r, err)
		return
	}

	spot.Name = req.Name
	spot.RequiredSkillIDs = req.RequiredSkillIDs
	if spot.RequiredSkillIDs == nil {
		spot.RequiredSkillIDs = []int64{}
	}

	if err := h.repository.UpdateSpot(spot); err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			h.domainError(w, r, domain.NewEntityNotFoundForUpdate("Spot", spot.ID))
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	h.writeJSON(w, r, http.StatusOK, spot)
}

func (h *Handler) DeleteSpot(w http.ResponseWriter, r *http.Request) {
	spot := r.Context().Value(SpotCtx).(*domain.Spot)

	if err := h.repository.DeleteSpot(spot.ID); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.writeJSON(w, r, http.StatusOK, true)
}
