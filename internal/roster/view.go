package roster

import (
	"time"

	"github.com/rotaplan/roster-backend/internal/domain"
)

// EntitySource is the persistence boundary the view assembler reads
// from. The repository implements it.
type EntitySource interface {
	GetRosterState(tenantID int64) (*domain.RosterState, error)
	GetSpotPage(tenantID int64, pagination Pagination) ([]*domain.Spot, error)
	GetEmployeePage(tenantID int64, pagination Pagination) ([]*domain.Employee, error)
	GetAllSkills(tenantID int64) ([]*domain.Skill, error)
	GetAllSpots(tenantID int64) ([]*domain.Spot, error)
	GetAllContracts(tenantID int64) ([]*domain.Contract, error)
	GetAllEmployees(tenantID int64) ([]*domain.Employee, error)
	GetAllAvailabilities(tenantID int64) ([]*domain.EmployeeAvailability, error)
	GetAllShifts(tenantID int64) ([]*domain.Shift, error)
	GetShiftsForSpots(tenantID int64, spotIDs []int64, start, end time.Time) ([]*domain.Shift, error)
	GetShiftsForEmployees(tenantID int64, employeeIDs []int64, start, end time.Time) ([]*domain.Shift, error)
	GetUnassignedShifts(tenantID int64, start, end time.Time) ([]*domain.Shift, error)
	GetAvailabilitiesForEmployees(tenantID int64, employeeIDs []int64, from, to domain.LocalDate) ([]*domain.EmployeeAvailability, error)
}

// SolverSource is the solver boundary: the current best solution for a
// tenant (nil if no solve has run) and the indictment computation for
// whichever roster the assembler ends up scoring.
type SolverSource interface {
	GetRoster(tenantID int64) *domain.Roster
	IndictmentMap(r *domain.Roster) map[int64]*domain.Indictment
}

// ShiftView is a shift annotated with its solver indictment.
type ShiftView struct {
	domain.Shift
	IndictmentScore   *domain.Score            `json:"indictmentScore"`
	ConstraintMatches []domain.ConstraintMatch `json:"constraintMatches"`
}

// AvailabilityView resolves an availability to zone-aware datetimes.
type AvailabilityView struct {
	domain.EmployeeAvailability
	StartDateTime time.Time `json:"startDateTime"`
	EndDateTime   time.Time `json:"endDateTime"`
}

// SpotShiftGroup keeps the spot-id to shift-view grouping ordered:
// groups appear in spot page order, shifts in query order.
type SpotShiftGroup struct {
	SpotID int64        `json:"spotId"`
	Shifts []*ShiftView `json:"shifts"`
}

type ShiftRosterView struct {
	TenantID      int64               `json:"tenantId"`
	StartDate     domain.LocalDate    `json:"startDate"`
	EndDate       domain.LocalDate    `json:"endDate"`
	Spots         []*domain.Spot      `json:"spotList"`
	Employees     []*domain.Employee  `json:"employeeList"`
	RosterState   *domain.RosterState `json:"rosterState"`
	Score         *domain.Score       `json:"score"`
	SolverVersion int64               `json:"solverVersion"`
	ShiftGroups   []*SpotShiftGroup   `json:"shiftsBySpot"`
}

type EmployeeAvailabilityGroup struct {
	EmployeeID     int64               `json:"employeeId"`
	Shifts         []*ShiftView        `json:"shifts"`
	Availabilities []*AvailabilityView `json:"availabilities"`
}

type AvailabilityRosterView struct {
	TenantID         int64                        `json:"tenantId"`
	StartDate        domain.LocalDate             `json:"startDate"`
	EndDate          domain.LocalDate             `json:"endDate"`
	Employees        []*domain.Employee           `json:"employeeList"`
	RosterState      *domain.RosterState          `json:"rosterState"`
	Score            *domain.Score                `json:"score"`
	SolverVersion    int64                        `json:"solverVersion"`
	EmployeeGroups   []*EmployeeAvailabilityGroup `json:"availabilitiesByEmployee"`
	UnassignedShifts []*ShiftView                 `json:"unassignedShifts"`
}

// Assembler reconstructs paginated, timezone-aware, indictment-annotated
// views of shifts and availabilities for a date range.
type Assembler struct {
	store  EntitySource
	solver SolverSource
}

func NewAssembler(store EntitySource, solver SolverSource) *Assembler {
	return &Assembler{
		store:  store,
		solver: solver,
	}
}

// BuildRoster assembles a fresh roster aggregate from the tenant's
// persisted entities. Used as input for a new solve, and as the
// fallback when the solver has no cached solution, in which case the
// returned roster is unscored (SolverVersion 0).
func (a *Assembler) BuildRoster(tenantID int64) (*domain.Roster, error) {
	state, err := a.store.GetRosterState(tenantID)
	if err != nil {
		return nil, err
	}
	skills, err := a.store.GetAllSkills(tenantID)
	if err != nil {
		return nil, err
	}
	spots, err := a.store.GetAllSpots(tenantID)
	if err != nil {
		return nil, err
	}
	contracts, err := a.store.GetAllContracts(tenantID)
	if err != nil {
		return nil, err
	}
	employees, err := a.store.GetAllEmployees(tenantID)
	if err != nil {
		return nil, err
	}
	availabilities, err := a.store.GetAllAvailabilities(tenantID)
	if err != nil {
		return nil, err
	}
	shifts, err := a.store.GetAllShifts(tenantID)
	if err != nil {
		return nil, err
	}

	return &domain.Roster{
		TenantID:       tenantID,
		RosterState:    state,
		Skills:         skills,
		Spots:          spots,
		Contracts:      contracts,
		Employees:      employees,
		Availabilities: availabilities,
		Shifts:         shifts,
	}, nil
}

// rosterForScoring returns the solver's cached best solution, or a
// freshly built roster when no solve has run. The cached solution and
// the live entity rows the views are built from are read independently;
// SolverVersion on the view tells the client which snapshot the score
// belongs to.
func (a *Assembler) rosterForScoring(tenantID int64) (*domain.Roster, error) {
	if r := a.solver.GetRoster(tenantID); r != nil {
		return r, nil
	}
	return a.BuildRoster(tenantID)
}

func (a *Assembler) GetShiftRosterView(tenantID int64, pagination Pagination, startDate, endDate domain.LocalDate) (*ShiftRosterView, error) {
	state, err := a.store.GetRosterState(tenantID)
	if err != nil {
		return nil, err
	}
	loc, err := state.Location()
	if err != nil {
		return nil, err
	}

	spots, err := a.store.GetSpotPage(tenantID, pagination)
	if err != nil {
		return nil, err
	}
	employees, err := a.store.GetAllEmployees(tenantID)
	if err != nil {
		return nil, err
	}

	start, err := startDate.At("00:00:00", loc)
	if err != nil {
		return nil, err
	}
	end, err := endDate.At("00:00:00", loc)
	if err != nil {
		return nil, err
	}

	spotIDs := make([]int64, len(spots))
	for i, spot := range spots {
		spotIDs[i] = spot.ID
	}
	shifts, err := a.store.GetShiftsForSpots(tenantID, spotIDs, start, end)
	if err != nil {
		return nil, err
	}

	scored, err := a.rosterForScoring(tenantID)
	if err != nil {
		return nil, err
	}
	indictments := a.solver.IndictmentMap(scored)

	groups := make([]*SpotShiftGroup, 0, len(spots))
	groupBySpot := make(map[int64]*SpotShiftGroup, len(spots))
	for _, spot := range spots {
		group := &SpotShiftGroup{SpotID: spot.ID, Shifts: make([]*ShiftView, 0)}
		groups = append(groups, group)
		groupBySpot[spot.ID] = group
	}
	for _, shift := range shifts {
		group, ok := groupBySpot[shift.SpotID]
		if !ok {
			continue
		}
		group.Shifts = append(group.Shifts, newShiftView(shift, indictments[shift.ID]))
	}

	return &ShiftRosterView{
		TenantID:      tenantID,
		StartDate:     startDate,
		EndDate:       endDate,
		Spots:         spots,
		Employees:     employees,
		RosterState:   state,
		Score:         scored.Score,
		SolverVersion: scored.SolverVersion,
		ShiftGroups:   groups,
	}, nil
}

func (a *Assembler) GetAvailabilityRosterView(tenantID int64, pagination Pagination, startDate, endDate domain.LocalDate) (*AvailabilityRosterView, error) {
	state, err := a.store.GetRosterState(tenantID)
	if err != nil {
		return nil, err
	}
	loc, err := state.Location()
	if err != nil {
		return nil, err
	}

	employees, err := a.store.GetEmployeePage(tenantID, pagination)
	if err != nil {
		return nil, err
	}

	start, err := startDate.At("00:00:00", loc)
	if err != nil {
		return nil, err
	}
	end, err := endDate.At("00:00:00", loc)
	if err != nil {
		return nil, err
	}

	employeeIDs := make([]int64, len(employees))
	for i, employee := range employees {
		employeeIDs[i] = employee.ID
	}
	shifts, err := a.store.GetShiftsForEmployees(tenantID, employeeIDs, start, end)
	if err != nil {
		return nil, err
	}
	availabilities, err := a.store.GetAvailabilitiesForEmployees(tenantID, employeeIDs, startDate, endDate)
	if err != nil {
		return nil, err
	}
	unassigned, err := a.store.GetUnassignedShifts(tenantID, start, end)
	if err != nil {
		return nil, err
	}

	scored, err := a.rosterForScoring(tenantID)
	if err != nil {
		return nil, err
	}
	indictments := a.solver.IndictmentMap(scored)

	groups := make([]*EmployeeAvailabilityGroup, 0, len(employees))
	groupByEmployee := make(map[int64]*EmployeeAvailabilityGroup, len(employees))
	for _, employee := range employees {
		group := &EmployeeAvailabilityGroup{
			EmployeeID:     employee.ID,
			Shifts:         make([]*ShiftView, 0),
			Availabilities: make([]*AvailabilityView, 0),
		}
		groups = append(groups, group)
		groupByEmployee[employee.ID] = group
	}
	for _, shift := range shifts {
		if shift.EmployeeID == nil {
			continue
		}
		group, ok := groupByEmployee[*shift.EmployeeID]
		if !ok {
			continue
		}
		group.Shifts = append(group.Shifts, newShiftView(shift, indictments[shift.ID]))
	}
	for _, availability := range availabilities {
		group, ok := groupByEmployee[availability.EmployeeID]
		if !ok {
			continue
		}
		view, err := newAvailabilityView(availability, loc)
		if err != nil {
			return nil, err
		}
		group.Availabilities = append(group.Availabilities, view)
	}

	unassignedViews := make([]*ShiftView, 0, len(unassigned))
	for _, shift := range unassigned {
		unassignedViews = append(unassignedViews, newShiftView(shift, indictments[shift.ID]))
	}

	return &AvailabilityRosterView{
		TenantID:         tenantID,
		StartDate:        startDate,
		EndDate:          endDate,
		Employees:        employees,
		RosterState:      state,
		Score:            scored.Score,
		SolverVersion:    scored.SolverVersion,
		EmployeeGroups:   groups,
		UnassignedShifts: unassignedViews,
	}, nil
}

func newShiftView(shift *domain.Shift, indictment *domain.Indictment) *ShiftView {
	view := &ShiftView{Shift: *shift}
	if indictment != nil {
		score := indictment.Score
		view.IndictmentScore = &score
		view.ConstraintMatches = indictment.ConstraintMatches
	}
	return view
}

func newAvailabilityView(availability *domain.EmployeeAvailability, loc *time.Location) (*AvailabilityView, error) {
	start, end, err := availability.Window(loc)
	if err != nil {
		return nil, err
	}
	return &AvailabilityView{
		EmployeeAvailability: *availability,
		StartDateTime:        start,
		EndDateTime:          end,
	}, nil
}
