package handler

import (
	"database/sql"
	"errors"
	"net/http"
	"strconv"

	"github.com/rotaplan/roster-backend/internal/domain"
	"github.com/rotaplan/roster-backend/internal/roster"
)

func queryInt(r *http.Request, name string, fallback int) (int, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return fallback, nil
	}
	return strconv.Atoi(raw)
}

func (h *Handler) viewParams(r *http.Request) (roster.Pagination, domain.LocalDate, domain.LocalDate, error) {
	pageNumber, err := queryInt(r, "p", 0)
	if err != nil {
		return roster.Pagination{}, domain.LocalDate{}, domain.LocalDate{}, &BadRequestError{Message: "invalid page number"}
	}
	itemsPerPage, err := queryInt(r, "n", 10)
	if err != nil {
		return roster.Pagination{}, domain.LocalDate{}, domain.LocalDate{}, &BadRequestError{Message: "invalid page size"}
	}

	startDate, err := domain.ParseLocalDate(r.URL.Query().Get("startDate"))
	if err != nil {
		return roster.Pagination{}, domain.LocalDate{}, domain.LocalDate{}, &BadRequestError{Message: "invalid startDate"}
	}
	endDate, err := domain.ParseLocalDate(r.URL.Query().Get("endDate"))
	if err != nil {
		return roster.Pagination{}, domain.LocalDate{}, domain.LocalDate{}, &BadRequestError{Message: "invalid endDate"}
	}
	if endDate.Before(startDate) {
		return roster.Pagination{}, domain.LocalDate{}, domain.LocalDate{}, &BadRequestError{Message: "endDate is before startDate"}
	}

	return roster.NewPagination(pageNumber, itemsPerPage), startDate, endDate, nil
}

func (h *Handler) GetShiftRosterView(w http.ResponseWriter, r *http.Request) {
	tenant := r.Context().Value(TenantCtx).(*domain.Tenant)

	pagination, startDate, endDate, err := h.viewParams(r)
	if err != nil {
		h.badRequest(w, r, err)
		return
	}

	view, err := h.assembler.GetShiftRosterView(tenant.ID, pagination, startDate, endDate)
	if err != nil {
		h.domainError(w, r, err)
		return
	}

	h.writeJSON(w, r, http.StatusOK, view)
}

func (h *Handler) GetAvailabilityRosterView(w http.ResponseWriter, r *http.Request) {
	tenant := r.Context().Value(TenantCtx).(*domain.Tenant)

	pagination, startDate, endDate, err := h.viewParams(r)
	if err != nil {
		h.badRequest(w, r, err)
		return
	}

	view, err := h.assembler.GetAvailabilityRosterView(tenant.ID, pagination, startDate, endDate)
	if err != nil {
		h.domainError(w, r, err)
		return
	}

	h.writeJSON(w, r, http.StatusOK, view)
}

func (h *Handler) SolveRoster(w http.ResponseWriter, r *http.Request) {
	tenant := r.Context().Value(TenantCtx).(*domain.Tenant)

	jobID, err := h.solver.Solve(tenant.ID)
	if err != nil {
		h.domainError(w, r, err)
		return
	}

	h.writeJSON(w, r, http.StatusOK, struct {
		JobID string `json:"jobId"`
	}{JobID: jobID})
}

func (h *Handler) TerminateRosterSolve(w http.ResponseWriter, r *http.Request) {
	tenant := r.Context().Value(TenantCtx).(*domain.Tenant)

	if !h.solver.Terminate(tenant.ID) {
		h.domainError(w, r, domain.NewIllegalState("The roster solver for tenant (%d) has not been started.", tenant.ID))
		return
	}

	h.writeJSON(w, r, http.StatusOK, true)
}

// PublishAndProvision turns the next publish window from draft into
// published and provisions new draft shifts from the rotation.
func (h *Handler) PublishAndProvision(w http.ResponseWriter, r *http.Request) {
	tenant := r.Context().Value(TenantCtx).(*domain.Tenant)

	state, err := h.repository.GetRosterState(tenant.ID)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			h.domainError(w, r, domain.NewEntityNotFound("RosterState", tenant.ID))
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	templates, err := h.repository.GetAllShiftTemplates(tenant.ID)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	result, provisioned, err := roster.PublishAndProvision(state, templates)
	if err != nil {
		h.domainError(w, r, err)
		return
	}

	if err := h.repository.CreateShifts(provisioned); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	if err := h.repository.UpdateRosterState(state); err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			h.domainError(w, r, domain.NewEntityNotFoundForUpdate("RosterState", state.ID))
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	h.notifyRosterPublished(r, tenant, result)

	h.writeJSON(w, r, http.StatusOK, result)
}

// notifyRosterPublished mails every active planner and admin. Failures
// are logged, not surfaced: the publish itself already succeeded.
func (h *Handler) notifyRosterPublished(r *http.Request, tenant *domain.Tenant, result domain.PublishResult) {
	users, err := h.repository.GetAllUsers()
	if err != nil {
		h.logInternalServerError(r, err)
		return
	}

	for _, user := range users {
		if !user.IsActive || user.Role == domain.RoleViewer {
			continue
		}
		if err := h.queueMail(domain.MailMessage{
			Type: "roster_published",
			To:   user.Email,
			Data: domain.RosterPublishedMailData{
				TenantName:        tenant.Name,
				PublishedFromDate: result.PublishedFromDate.String(),
				PublishedToDate:   result.PublishedToDate.String(),
			},
		}); err != nil {
			h.logInternalServerError(r, err)
		}
	}
}
