package handler

import (
	"database/sql"
	"errors"
	"net/http"

	"github.com/rotaplan/roster-backend/internal/domain"
)

func (h *Handler) GetAllSkills(w http.ResponseWriter, r *http.Request) {
	tenant := r.Context().Value(TenantCtx).(*domain.Tenant)

	skills, err := h.repository.GetAllSkills(tenant.ID)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.writeJSON(w, r, http.StatusOK, skills)
}

func (h *Handler) GetSkill(w http.ResponseWriter, r *http.Request) {
	skill := r.Context().Value(SkillCtx).(*domain.Skill)
	h.writeJSON(w, r, http.StatusOK, skill)
}

func (h *Handler) CreateSkill(w http.ResponseWriter, r *http.Request) {
	tenant := r.Context().Value(TenantCtx).(*domain.Tenant)

	var req struct {
		TenantID int64  `json:"tenantId"`
		Name     string `json:"name" validate:"required"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	skill := &domain.Skill{TenantID: tenant.ID, Name: req.Name}
	if req.TenantID != 0 {
		skill.TenantID = req.TenantID
	}
	if err := domain.ValidateTenantID(tenant.ID, skill); err != nil {
		h.domainError(w, r, err)
		return
	}

	if err := h.repository.CreateSkill(skill); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.writeJSON(w, r, http.StatusCreated, skill)
}

func (h *Handler) UpdateSkill(w http.ResponseWriter, r *http.Request) {
	skill := r.Context().Value(SkillCtx).(*domain.Skill)

	var req struct {
		TenantID int64  `json:"tenantId"`
		Name     string `json:"name" validate:"required"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	if req.TenantID != 0 && req.TenantID != skill.TenantID {
		h.domainError(w, r, &domain.TenantChangeError{EntityType: "Skill", TenantID: skill.TenantID})
		return
	}

	skill.Name = req.Name

	if err := h.repository.UpdateSkill(skill); err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			h.domainError(w, r, domain.NewEntityNotFoundForUpdate("Skill", skill.ID))
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	h.writeJSON(w, r, http.StatusOK, skill)
}

func (h *Handler) DeleteSkill(w http.ResponseWriter, r *http.Request) {
	skill := r.Context().Value(SkillCtx).(*domain.Skill)

	if err := h.repository.DeleteSkill(skill.ID); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.writeJSON(w, r, http.StatusOK, true)
}
