package handler

import (
	"database/sql"
	"errors"
	"net/http"

	"github.com/rotaplan/roster-backend/internal/domain"
)

func (h *Handler) GetAllEmployees(w http.ResponseWriter, r *http.Request) {
	tenant := r.Context().Value(TenantCtx).(*domain.Tenant)

	employees, err := h.repository.GetAllEmployees(tenant.ID)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.writeJSON(w, r, http.StatusOK, employees)
}

func (h *Handler) GetEmployee(w http.ResponseWriter, r *http.Request) {
	employee := r.Context().Value(EmployeeCtx).(*domain.Employee)
	h.writeJSON(w, r, http.StatusOK, employee)
}

func (h *Handler) checkContractRef(tenantID, contractID int64) error {
	contract, err := h.repository.GetContractByID(contractID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.NewEntityNotFound("Contract", contractID)
		}
		return err
	}
	return domain.ValidateTenantID(tenantID, contract)
}

func (h *Handler) CreateEmployee(w http.ResponseWriter, r *http.Request) {
	tenant := r.Context().Value(TenantCtx).(*domain.Tenant)

	var req struct {
		TenantID   int64   `json:"tenantId"`
		Name       string  `json:"name" validate:"required"`
		ContractID int64   `json:"contractId" validate:"required"`
		SkillIDs   []int64 `json:"skillIDs"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	employee := &domain.Employee{
		TenantID:   tenant.ID,
		Name:       req.Name,
		ContractID: req.ContractID,
		SkillIDs:   req.SkillIDs,
	}
	if employee.SkillIDs == nil {
		employee.SkillIDs = []int64{}
	}
	if req.TenantID != 0 {
		employee.TenantID = req.TenantID
	}
	if err := domain.ValidateTenantID(tenant.ID, employee); err != nil {
		h.domainError(w, r, err)
		return
	}

	if err := h.checkContractRef(tenant.ID, employee.ContractID); err != nil {
		h.domainError(w, r, err)
		return
	}
	if err := h.checkSkillRefs(tenant.ID, employee.SkillIDs); err != nil {
		h.domainError(w, r, err)
		return
	}

	if err := h.repository.CreateEmployee(employee); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.writeJSON(w, r, http.StatusCreated, employee)
}

func (h *Handler) UpdateEmployee(w http.ResponseWriter, r *http.Request) {
	tenant := r.Context().Value(TenantCtx).(*domain.Tenant)
	employee := r.Context().Value(EmployeeCtx).(*domain.Employee)

	var req struct {
		TenantID   int64   `json:"tenantId"`
		Name       string  `json:"name" validate:"required"`
		ContractID int64   `json:"contractId" validate:"required"`
		SkillIDs   []int64 `json:"skillIDs"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	if req.TenantID != 0 && req.TenantID != employee.TenantID {
		h.domainError(w, r, &domain.TenantChangeError{EntityType: "Employee", TenantID: employee.TenantID})
		return
	}

	if err := h.checkContractRef(tenant.ID, req.ContractID); err != nil {
		h.domainError(w, r, err)
		return
	}
	if err := h.checkSkillRefs(tenant.ID, req.SkillIDs); err != nil {
		h.domainError(w, r, err)
		return
	}

	employee.Name = req.Name
	employee.ContractID = req.ContractID
	employee.SkillIDs = req.SkillIDs
	if employee.SkillIDs == nil {
		employee.SkillIDs = []int64{}
	}

	if err := h.repository.UpdateEmployee(employee); err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			h.domainError(w, r, domain.NewEntityNotFoundForUpdate("Employee", employee.ID))
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	h.writeJSON(w, r, http.StatusOK, employee)
}

func (h *Handler) DeleteEmployee(w http.ResponseWriter, r *http.Request) {
	employee := r.Context().Value(EmployeeCtx).(*domain.Employee)

	if err := h.repository.DeleteEmployee(employee.ID); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.writeJSON(w, r, http.StatusOK, true)
}
