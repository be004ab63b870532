package roster

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewPaginationClampsInput(t *testing.T) {
	tests := []struct {
		name         string
		page, n      int
		wantPage     int
		wantPerPage  int
	}{
		{name: "valid", page: 3, n: 25, wantPage: 3, wantPerPage: 25},
		{name: "negative page", page: -2, n: 25, wantPage: 0, wantPerPage: 25},
		{name: "zero per page", page: 3, n: 0, wantPage: 3, wantPerPage: defaultItemsPerPage},
		{name: "negative per page", page: 3, n: -1, wantPage: 3, wantPerPage: defaultItemsPerPage},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := NewPagination(tt.page, tt.n)
			assert.Equal(t, tt.wantPage, p.PageNumber)
			assert.Equal(t, tt.wantPerPage, p.NumberOfItemsPerPage)
		})
	}
}

func TestPaginationPreviousStopsAtFirstPage(t *testing.T) {
	p := NewPagination(2, 10)
	assert.False(t, p.OnFirstPage())

	p = p.Previous()
	assert.Equal(t, 1, p.PageNumber)

	p = p.Previous()
	assert.True(t, p.OnFirstPage())

	p = p.Previous()
	assert.Equal(t, 0, p.PageNumber)
	assert.Equal(t, 10, p.NumberOfItemsPerPage)
}

func TestPaginationOffsetAndLimit(t *testing.T) {
	p := NewPagination(3, 20)
	assert.Equal(t, 60, p.Offset())
	assert.Equal(t, 20, p.Limit())

	assert.Equal(t, 0, NewPagination(0, 20).Offset())
}
