package roster

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rotaplan/roster-backend/internal/domain"
)

// fakeEntitySource serves canned entities and records the ranges the
// assembler asked for.
type fakeEntitySource struct {
	state          *domain.RosterState
	spots          []*domain.Spot
	employees      []*domain.Employee
	shifts         []*domain.Shift
	availabilities []*domain.EmployeeAvailability
	unassigned     []*domain.Shift

	requestedStart time.Time
	requestedEnd   time.Time
}

func (f *fakeEntitySource) GetRosterState(tenantID int64) (*domain.RosterState, error) {
	return f.state, nil
}

func (f *fakeEntitySource) GetSpotPage(tenantID int64, pagination Pagination) ([]*domain.Spot, error) {
	return pageOf(f.spots, pagination), nil
}

func (f *fakeEntitySource) GetEmployeePage(tenantID int64, pagination Pagination) ([]*domain.Employee, error) {
	return pageOf(f.employees, pagination), nil
}

func (f *fakeEntitySource) GetAllSkills(tenantID int64) ([]*domain.Skill, error) { return nil, nil }

func (f *fakeEntitySource) GetAllSpots(tenantID int64) ([]*domain.Spot, error) {
	return f.spots, nil
}

func (f *fakeEntitySource) GetAllContracts(tenantID int64) ([]*domain.Contract, error) {
	return nil, nil
}

func (f *fakeEntitySource) GetAllEmployees(tenantID int64) ([]*domain.Employee, error) {
	return f.employees, nil
}

func (f *fakeEntitySource) GetAllAvailabilities(tenantID int64) ([]*domain.EmployeeAvailability, error) {
	return f.availabilities, nil
}

func (f *fakeEntitySource) GetAllShifts(tenantID int64) ([]*domain.Shift, error) {
	return f.shifts, nil
}

func (f *fakeEntitySource) GetShiftsForSpots(tenantID int64, spotIDs []int64, start, end time.Time) ([]*domain.Shift, error) {
	f.requestedStart, f.requestedEnd = start, end
	wanted := make(map[int64]bool, len(spotIDs))
	for _, id := range spotIDs {
		wanted[id] = true
	}
	matched := make([]*domain.Shift, 0)
	for _, shift := range f.shifts {
		if wanted[shift.SpotID] && shift.EndDateTime.After(start) && shift.StartDateTime.Before(end) {
			matched = append(matched, shift)
		}
	}
	return matched, nil
}

func (f *fakeEntitySource) GetShiftsForEmployees(tenantID int64, employeeIDs []int64, start, end time.Time) ([]*domain.Shift, error) {
	f.requestedStart, f.requestedEnd = start, end
	wanted := make(map[int64]bool, len(employeeIDs))
	for _, id := range employeeIDs {
		wanted[id] = true
	}
	matched := make([]*domain.Shift, 0)
	for _, shift := range f.shifts {
		if shift.EmployeeID != nil && wanted[*shift.EmployeeID] &&
			shift.EndDateTime.After(start) && shift.StartDateTime.Before(end) {
			matched = append(matched, shift)
		}
	}
	return matched, nil
}

func (f *fakeEntitySource) GetUnassignedShifts(tenantID int64, start, end time.Time) ([]*domain.Shift, error) {
	return f.unassigned, nil
}

func (f *fakeEntitySource) GetAvailabilitiesForEmployees(tenantID int64, employeeIDs []int64, from, to domain.LocalDate) ([]*domain.EmployeeAvailability, error) {
	wanted := make(map[int64]bool, len(employeeIDs))
	for _, id := range employeeIDs {
		wanted[id] = true
	}
	matched := make([]*domain.EmployeeAvailability, 0)
	for _, availability := range f.availabilities {
		if wanted[availability.EmployeeID] && !availability.Date.Before(from) && availability.Date.Before(to) {
			matched = append(matched, availability)
		}
	}
	return matched, nil
}

func pageOf[T any](items []*T, pagination Pagination) []*T {
	offset := pagination.Offset()
	if offset >= len(items) {
		return []*T{}
	}
	end := offset + pagination.Limit()
	if end > len(items) {
		end = len(items)
	}
	return items[offset:end]
}

// fakeSolverSource returns a fixed cached roster and indictment map.
type fakeSolverSource struct {
	roster      *domain.Roster
	indictments map[int64]*domain.Indictment
}

func (f *fakeSolverSource) GetRoster(tenantID int64) *domain.Roster { return f.roster }

func (f *fakeSolverSource) IndictmentMap(r *domain.Roster) map[int64]*domain.Indictment {
	if f.indictments == nil {
		return map[int64]*domain.Indictment{}
	}
	return f.indictments
}

func viewFixture() *fakeEntitySource {
	start := domain.NewLocalDate(2026, time.March, 9)
	dayShift := func(id, spotID int64, employeeID *int64, day int) *domain.Shift {
		s, _ := start.AddDays(day).At("06:00:00", time.UTC)
		e, _ := start.AddDays(day).At("14:00:00", time.UTC)
		return &domain.Shift{ID: id, TenantID: 1, SpotID: spotID, EmployeeID: employeeID,
			StartDateTime: s, EndDateTime: e}
	}

	return &fakeEntitySource{
		state: &domain.RosterState{
			TenantID:         1,
			FirstDraftDate:   start,
			PublishLength:    domain.PublishLength,
			DraftLength:      14,
			RotationLength:   21,
			LastHistoricDate: start.AddDays(-8),
			TimeZone:         "UTC",
		},
		spots: []*domain.Spot{
			{ID: 1, TenantID: 1, Name: "Emergency ward"},
			{ID: 2, TenantID: 1, Name: "Pediatric unit"},
			{ID: 3, TenantID: 1, Name: "Surgical ward"},
		},
		employees: []*domain.Employee{
			{ID: 10, TenantID: 1, Name: "Amy Cole"},
			{ID: 11, TenantID: 1, Name: "Beth Fox"},
		},
		shifts: []*domain.Shift{
			dayShift(100, 1, int64Ptr(10), 0),
			dayShift(101, 2, int64Ptr(11), 1),
			dayShift(102, 1, nil, 2),
			dayShift(103, 99, int64Ptr(10), 0),  // spot outside the page
			dayShift(104, 1, int64Ptr(10), 30), // outside the date range
		},
		availabilities: []*domain.EmployeeAvailability{
			{ID: 200, TenantID: 1, EmployeeID: 10, Date: start.AddDays(1),
				StartTime: "00:00:00", EndTime: "00:00:00", State: domain.AvailabilityDesired},
			{ID: 201, TenantID: 1, EmployeeID: 99, Date: start.AddDays(1),
				StartTime: "00:00:00", EndTime: "00:00:00", State: domain.AvailabilityUnavailable},
		},
		unassigned: []*domain.Shift{dayShift(102, 1, nil, 2)},
	}
}

func TestGetShiftRosterViewGroupsInPageOrder(t *testing.T) {
	store := viewFixture()
	assembler := NewAssembler(store, &fakeSolverSource{})

	startDate := domain.NewLocalDate(2026, time.March, 9)
	endDate := startDate.AddDays(7)
	view, err := assembler.GetShiftRosterView(1, NewPagination(0, 10), startDate, endDate)
	require.NoError(t, err)

	assert.Equal(t, int64(1), view.TenantID)
	assert.Equal(t, startDate, view.StartDate)
	assert.Equal(t, endDate, view.EndDate)

	// one group per paged spot, in page order, empty groups included
	require.Len(t, view.ShiftGroups, 3)
	assert.Equal(t, int64(1), view.ShiftGroups[0].SpotID)
	assert.Equal(t, int64(2), view.ShiftGroups[1].SpotID)
	assert.Equal(t, int64(3), view.ShiftGroups[2].SpotID)
	assert.Len(t, view.ShiftGroups[0].Shifts, 2)
	assert.Len(t, view.ShiftGroups[1].Shifts, 1)
	assert.Empty(t, view.ShiftGroups[2].Shifts)

	// the range is [startDate 00:00, endDate 00:00) in the tenant zone
	wantStart, _ := startDate.At("00:00:00", time.UTC)
	wantEnd, _ := endDate.At("00:00:00", time.UTC)
	assert.Equal(t, wantStart, store.requestedStart)
	assert.Equal(t, wantEnd, store.requestedEnd)
}

func TestGetShiftRosterViewIncludesOvernightShiftFromPreviousDay(t *testing.T) {
	store := viewFixture()
	startDate := domain.NewLocalDate(2026, time.March, 9)

	// night shift stamped on the day before the window, ending inside it
	nightStart, _ := startDate.AddDays(-1).At("22:00:00", time.UTC)
	nightEnd, _ := startDate.At("06:00:00", time.UTC)
	store.shifts = append(store.shifts, &domain.Shift{
		ID: 105, TenantID: 1, SpotID: 1, EmployeeID: int64Ptr(11),
		StartDateTime: nightStart, EndDateTime: nightEnd,
	})

	assembler := NewAssembler(store, &fakeSolverSource{})
	view, err := assembler.GetShiftRosterView(1, NewPagination(0, 10), startDate, startDate.AddDays(7))
	require.NoError(t, err)

	ids := make([]int64, 0)
	for _, shift := range view.ShiftGroups[0].Shifts {
		ids = append(ids, shift.ID)
	}
	assert.Contains(t, ids, int64(105))

	availabilityView, err := assembler.GetAvailabilityRosterView(1, NewPagination(0, 10), startDate, startDate.AddDays(7))
	require.NoError(t, err)
	ids = ids[:0]
	for _, shift := range availabilityView.EmployeeGroups[1].Shifts {
		ids = append(ids, shift.ID)
	}
	assert.Contains(t, ids, int64(105))
}

func TestGetShiftRosterViewPagination(t *testing.T) {
	store := viewFixture()
	assembler := NewAssembler(store, &fakeSolverSource{})

	startDate := domain.NewLocalDate(2026, time.March, 9)
	view, err := assembler.GetShiftRosterView(1, NewPagination(1, 2), startDate, startDate.AddDays(7))
	require.NoError(t, err)

	require.Len(t, view.Spots, 1)
	assert.Equal(t, int64(3), view.Spots[0].ID)
	require.Len(t, view.ShiftGroups, 1)
	assert.Equal(t, int64(3), view.ShiftGroups[0].SpotID)
}

func TestGetShiftRosterViewWithoutSolveIsUnscored(t *testing.T) {
	assembler := NewAssembler(viewFixture(), &fakeSolverSource{})

	startDate := domain.NewLocalDate(2026, time.March, 9)
	view, err := assembler.GetShiftRosterView(1, NewPagination(0, 10), startDate, startDate.AddDays(7))
	require.NoError(t, err)

	assert.Nil(t, view.Score)
	assert.Equal(t, int64(0), view.SolverVersion)
	for _, group := range view.ShiftGroups {
		for _, shift := range group.Shifts {
			assert.Nil(t, shift.IndictmentScore)
		}
	}
}

func TestGetShiftRosterViewMergesSolverSnapshot(t *testing.T) {
	store := viewFixture()
	solver := &fakeSolverSource{
		roster: &domain.Roster{
			TenantID:      1,
			Score:         &domain.Score{Hard: -1, Soft: 2},
			SolverVersion: 5,
		},
		indictments: map[int64]*domain.Indictment{
			100: {
				ConstraintMatches: []domain.ConstraintMatch{
					{ConstraintName: "Required skill for a shift", Score: domain.Score{Hard: -1}},
				},
				Score: domain.Score{Hard: -1},
			},
		},
	}
	assembler := NewAssembler(store, solver)

	startDate := domain.NewLocalDate(2026, time.March, 9)
	view, err := assembler.GetShiftRosterView(1, NewPagination(0, 10), startDate, startDate.AddDays(7))
	require.NoError(t, err)

	require.NotNil(t, view.Score)
	assert.Equal(t, domain.Score{Hard: -1, Soft: 2}, *view.Score)
	assert.Equal(t, int64(5), view.SolverVersion)

	indicted := view.ShiftGroups[0].Shifts[0]
	require.Equal(t, int64(100), indicted.ID)
	require.NotNil(t, indicted.IndictmentScore)
	assert.Equal(t, domain.Score{Hard: -1}, *indicted.IndictmentScore)
	require.Len(t, indicted.ConstraintMatches, 1)
	assert.Equal(t, "Required skill for a shift", indicted.ConstraintMatches[0].ConstraintName)

	clean := view.ShiftGroups[1].Shifts[0]
	assert.Nil(t, clean.IndictmentScore)
}

func TestGetAvailabilityRosterView(t *testing.T) {
	store := viewFixture()
	assembler := NewAssembler(store, &fakeSolverSource{})

	startDate := domain.NewLocalDate(2026, time.March, 9)
	endDate := startDate.AddDays(7)
	view, err := assembler.GetAvailabilityRosterView(1, NewPagination(0, 10), startDate, endDate)
	require.NoError(t, err)

	require.Len(t, view.EmployeeGroups, 2)
	assert.Equal(t, int64(10), view.EmployeeGroups[0].EmployeeID)
	assert.Equal(t, int64(11), view.EmployeeGroups[1].EmployeeID)

	// employee 10 has both day-0 shifts and the desired full-day availability
	group := view.EmployeeGroups[0]
	require.Len(t, group.Shifts, 2)
	assert.Equal(t, int64(100), group.Shifts[0].ID)
	assert.Equal(t, int64(103), group.Shifts[1].ID)
	require.Len(t, group.Availabilities, 1)
	assert.Equal(t, domain.AvailabilityDesired, group.Availabilities[0].State)

	// the full-day window resolves to midnight-to-midnight datetimes
	wantStart, _ := startDate.AddDays(1).At("00:00:00", time.UTC)
	assert.Equal(t, wantStart, group.Availabilities[0].StartDateTime)
	assert.Equal(t, wantStart.AddDate(0, 0, 1), group.Availabilities[0].EndDateTime)

	require.Len(t, view.UnassignedShifts, 1)
	assert.Equal(t, int64(102), view.UnassignedShifts[0].ID)
}

func TestBuildRosterCollectsAllEntities(t *testing.T) {
	store := viewFixture()
	assembler := NewAssembler(store, &fakeSolverSource{})

	roster, err := assembler.BuildRoster(1)
	require.NoError(t, err)

	assert.Equal(t, int64(1), roster.TenantID)
	assert.Same(t, store.state, roster.RosterState)
	assert.Len(t, roster.Spots, 3)
	assert.Len(t, roster.Employees, 2)
	assert.Len(t, roster.Shifts, 5)
	assert.Nil(t, roster.Score)
	assert.Equal(t, int64(0), roster.SolverVersion)
}
