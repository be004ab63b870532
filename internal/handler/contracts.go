package handler

import (
	"database/sql"
	"errors"
	"net/http"

	"github.com/rotaplan/roster-backend/internal/domain"
)

func (h *Handler) GetAllContracts(w http.ResponseWriter, r *http.Request) {
	tenant := r.Context().Value(TenantCtx).(*domain.Tenant)

	contracts, err := h.repository.GetAllContracts(tenant.ID)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.writeJSON(w, r, http.StatusOK, contracts)
}

func (h *Handler) GetContract(w http.ResponseWriter, r *http.Request) {
	contract := r.Context().Value(ContractCtx).(*domain.Contract)
	h.writeJSON(w, r, http.StatusOK, contract)
}

type contractRequest struct {
	TenantID               int64  `json:"tenantId"`
	Name                   string `json:"name" validate:"required"`
	MaximumMinutesPerDay   *int   `json:"maximumMinutesPerDay" validate:"omitempty,min=0"`
	MaximumMinutesPerWeek  *int   `json:"maximumMinutesPerWeek" validate:"omitempty,min=0"`
	MaximumMinutesPerMonth *int   `json:"maximumMinutesPerMonth" validate:"omitempty,min=0"`
	MaximumMinutesPerYear  *int   `json:"maximumMinutesPerYear" validate:"omitempty,min=0"`
}

func (h *Handler) CreateContract(w http.ResponseWriter, r *http.Request) {
	tenant := r.Context().Value(TenantCtx).(*domain.Tenant)

	var req contractRequest
	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	contract := &domain.Contract{
		TenantID:               tenant.ID,
		Name:                   req.Name,
		MaximumMinutesPerDay:   req.MaximumMinutesPerDay,
		MaximumMinutesPerWeek:  req.MaximumMinutesPerWeek,
		MaximumMinutesPerMonth: req.MaximumMinutesPerMonth,
		MaximumMinutesPerYear:  req.MaximumMinutesPerYear,
	}
	if req.TenantID != 0 {
		contract.TenantID = req.TenantID
	}
	if err := domain.ValidateTenantID(tenant.ID, contract); err != nil {
		h.domainError(w, r, err)
		return
	}

	if err := h.repository.CreateContract(contract); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.writeJSON(w, r, http.StatusCreated, contract)
}

func (h *Handler) UpdateContract(w http.ResponseWriter, r *http.Request) {
	contract := r.Context().Value(ContractCtx).(*domain.Contract)

	var req contractRequest
	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	if req.TenantID != 0 && req.TenantID != contract.TenantID {
		h.domainError(w, r, &domain.TenantChangeError{EntityType: "Contract", TenantID: contract.TenantID})
		return
	}

	contract.Name = req.Name
	contract.MaximumMinutesPerDay = req.MaximumMinutesPerDay
	contract.MaximumMinutesPerWeek = req.MaximumMinutesPerWeek
	contract.MaximumMinutesPerMonth = req.MaximumMinutesPerMonth
	contract.MaximumMinutesPerYear = req.MaximumMinutesPerYear

	if err := h.repository.UpdateContract(contract); err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			h.domainError(w, r, domain.NewEntityNotFoundForUpdate("Contract", contract.ID))
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	h.writeJSON(w, r, http.StatusOK, contract)
}

func (h *Handler) DeleteContract(w http.ResponseWriter, r *http.Request) {
	contract := r.Context().Value(ContractCtx).(*domain.Contract)

	if err := h.repository.DeleteContract(contract.ID); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.writeJSON(w, r, http.StatusOK, true)
}
