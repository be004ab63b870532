package handler

import (
	"database/sql"
	"errors"
	"net/http"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/rotaplan/roster-backend/internal/domain"
	"github.com/rotaplan/roster-backend/internal/rostergen"
)

func (h *Handler) GetAllTenants(w http.ResponseWriter, r *http.Request) {
	tenants, err := h.repository.GetAllTenants()
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.writeJSON(w, r, http.StatusOK, tenants)
}

func (h *Handler) GetTenant(w http.ResponseWriter, r *http.Request) {
	tenant := r.Context().Value(TenantCtx).(*domain.Tenant)
	h.writeJSON(w, r, http.StatusOK, tenant)
}

func (h *Handler) CreateTenant(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name           string `json:"name" validate:"required"`
		TimeZone       string `json:"timeZone" validate:"required,timezone"`
		RotationLength int    `json:"rotationLength" validate:"required,min=1"`
		PublishNotice  int    `json:"publishNotice" validate:"min=0"`
		DraftLength    int    `json:"draftLength" validate:"required,min=1"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	tenant := &domain.Tenant{Name: req.Name}
	if err := h.repository.CreateTenant(tenant); err != nil {
		var pgErr *pgconn.PgError
		switch {
		case errors.As(err, &pgErr) && pgErr.ConstraintName == "tenants_name_key":
			h.badRequest(w, r, errors.New("tenant name already exists"))
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	loc, err := time.LoadLocation(req.TimeZone)
	if err != nil {
		h.badRequest(w, r, err)
		return
	}

	// a fresh tenant starts its window today with nothing provisioned
	today := domain.LocalDateOf(time.Now().In(loc))
	state := &domain.RosterState{
		TenantID:                tenant.ID,
		PublishNotice:           req.PublishNotice,
		FirstDraftDate:          today.AddDays(req.PublishNotice),
		PublishLength:           domain.PublishLength,
		DraftLength:             req.DraftLength,
		UnplannedRotationOffset: 0,
		RotationLength:          req.RotationLength,
		LastHistoricDate:        today.AddDays(-1),
		TimeZone:                req.TimeZone,
	}
	if err := h.repository.CreateRosterState(state); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.writeJSON(w, r, http.StatusCreated, tenant)
}

func (h *Handler) DeleteTenant(w http.ResponseWriter, r *http.Request) {
	tenant := r.Context().Value(TenantCtx).(*domain.Tenant)

	if err := h.repository.DeleteTenant(tenant.ID); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.writeJSON(w, r, http.StatusOK, true)
}

// CreateDemoTenant generates a full synthetic tenant: entities, a
// rotation, provisioned shifts and draft availabilities.
func (h *Handler) CreateDemoTenant(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name           string `json:"name" validate:"required"`
		ZoneID         string `json:"zoneId" validate:"omitempty,timezone"`
		SpotCount      int    `json:"spotCount" validate:"min=0"`
		RotationLength int    `json:"rotationLength" validate:"min=0"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	generated, err := h.generator.Generate(rostergen.TenantSpec{
		Name:           req.Name,
		ZoneID:         req.ZoneID,
		SpotCount:      req.SpotCount,
		RotationLength: req.RotationLength,
	})
	if err != nil {
		h.domainError(w, r, err)
		return
	}

	if err := h.repository.SaveGeneratedRoster(generated); err != nil {
		var pgErr *pgconn.PgError
		switch {
		case errors.As(err, &pgErr) && pgErr.ConstraintName == "tenants_name_key":
			h.badRequest(w, r, errors.New("tenant name already exists"))
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	h.writeJSON(w, r, http.StatusCreated, generated.Tenant)
}

func (h *Handler) GetRosterState(w http.ResponseWriter, r *http.Request) {
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

	h.writeJSON(w, r, http.StatusOK, state)
}
