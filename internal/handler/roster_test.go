package handler

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rotaplan/roster-backend/internal/domain"
)

func TestViewParams(t *testing.T) {
	h := testHandler(t)

	r := httptest.NewRequest(http.MethodGet,
		"/tenants/1/roster/shiftRosterView?p=2&n=5&startDate=2026-03-09&endDate=2026-03-16", nil)

	pagination, startDate, endDate, err := h.viewParams(r)
	require.NoError(t, err)

	assert.Equal(t, 2, pagination.PageNumber)
	assert.Equal(t, 5, pagination.NumberOfItemsPerPage)
	assert.Equal(t, domain.NewLocalDate(2026, time.March, 9), startDate)
	assert.Equal(t, domain.NewLocalDate(2026, time.March, 16), endDate)
}

func TestViewParamsDefaultsPagination(t *testing.T) {
	h := testHandler(t)

	r := httptest.NewRequest(http.MethodGet,
		"/tenants/1/roster/shiftRosterView?startDate=2026-03-09&endDate=2026-03-09", nil)

	pagination, _, _, err := h.viewParams(r)
	require.NoError(t, err)

	assert.Equal(t, 0, pagination.PageNumber)
	assert.Equal(t, 10, pagination.NumberOfItemsPerPage)
}

func TestViewParamsRejectsBadInput(t *testing.T) {
	tests := []struct {
		name  string
		query string
	}{
		{name: "garbage page", query: "p=x&startDate=2026-03-09&endDate=2026-03-16"},
		{name: "garbage page size", query: "n=x&startDate=2026-03-09&endDate=2026-03-16"},
		{name: "missing startDate", query: "endDate=2026-03-16"},
		{name: "missing endDate", query: "startDate=2026-03-09"},
		{name: "malformed startDate", query: "startDate=09-03-2026&endDate=2026-03-16"},
		{name: "endDate before startDate", query: "startDate=2026-03-16&endDate=2026-03-09"},
	}

	h := testHandler(t)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodGet, "/tenants/1/roster/shiftRosterView?"+tt.query, nil)

			_, _, _, err := h.viewParams(r)

			var badRequest *BadRequestError
			require.ErrorAs(t, err, &badRequest)
		})
	}
}
