package handler

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rotaplan/roster-backend/internal/config"
	"github.com/rotaplan/roster-backend/internal/domain"
)

func testHandler(t *testing.T) *Handler {
	t.Helper()
	h, err := NewHandler(&config.Config{}, nil, nil, nil, nil, nil, nil)
	require.NoError(t, err)
	return h
}

func TestExceptionClass(t *testing.T) {
	assert.Equal(t, "EntityNotFoundError", exceptionClass(domain.NewEntityNotFound("Spot", 1)))
	assert.Equal(t, "TenantMismatchError", exceptionClass(&domain.TenantMismatchError{}))
	assert.Equal(t, "IllegalStateError", exceptionClass(domain.NewIllegalState("boom")))
	assert.Equal(t, "BadRequestError", exceptionClass(&BadRequestError{Message: "bad"}))
}

func TestDomainErrorStatusMapping(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantClass  string
	}{
		{
			name:       "entity not found",
			err:        domain.NewEntityNotFound("Spot", 12),
			wantStatus: http.StatusNotFound,
			wantClass:  "EntityNotFoundError",
		},
		{
			name:       "entity not found for update",
			err:        domain.NewEntityNotFoundForUpdate("Spot", 12),
			wantStatus: http.StatusNotFound,
			wantClass:  "EntityNotFoundError",
		},
		{
			name:       "tenant mismatch",
			err:        &domain.TenantMismatchError{GivenTenantID: 2, Name: "Emergency ward", ActualTenantID: 1},
			wantStatus: http.StatusInternalServerError,
			wantClass:  "TenantMismatchError",
		},
		{
			name:       "tenant change",
			err:        &domain.TenantChangeError{EntityType: "Skill", TenantID: 5},
			wantStatus: http.StatusInternalServerError,
			wantClass:  "TenantChangeError",
		},
		{
			name:       "illegal state",
			err:        domain.NewIllegalState("The rotationLength (%d) must be positive.", 0),
			wantStatus: http.StatusInternalServerError,
			wantClass:  "IllegalStateError",
		},
	}

	h := testHandler(t)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			r := httptest.NewRequest(http.MethodGet, "/tenants/1/spots/12", nil)

			h.domainError(w, r, tt.err)

			assert.Equal(t, tt.wantStatus, w.Code)
			assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
			assert.JSONEq(t,
				`{"exceptionMessage":"`+tt.err.Error()+`","exceptionClass":"`+tt.wantClass+`"}`,
				w.Body.String())
		})
	}
}

func TestBadRequestBody(t *testing.T) {
	h := testHandler(t)
	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/tenants/1/roster/shiftRosterView", nil)

	h.badRequest(w, r, errors.New("invalid startDate"))

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t,
		`{"exceptionMessage":"invalid startDate","exceptionClass":"BadRequestError"}`,
		w.Body.String())
}

func TestBadRequestTranslatesValidationErrors(t *testing.T) {
	h := testHandler(t)
	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodPost, "/tenants/1/skills", nil)

	var req struct {
		Name string `json:"name" validate:"required"`
	}
	err := h.validate.Struct(&req)
	require.Error(t, err)

	h.badRequest(w, r, err)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Name is a required field")
}
