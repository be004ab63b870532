package rostergen

import (
	"math/rand"
	"sync"
	"time"

	"github.com/rotaplan/roster-backend/internal/domain"
	"github.com/rotaplan/roster-backend/internal/roster"
)

// DefaultSeed makes demo data reproducible across restarts.
const DefaultSeed = 37

const (
	publishNotice  = 7
	draftLength    = 14
	historicLength = 28

	employeesPerSpotFactor = 6
)

// extraShiftThresholds drive the over-staffing spikes injected into the
// draft window: P(0 extra)=0.5, P(<=1)=0.8, P(<=2)=0.95, else 3.
var extraShiftThresholds = []float64{0.5, 0.8, 0.95}

// randomIntFromThresholds returns the first index i with r <
// thresholds[i], or len(thresholds) when r clears them all.
func randomIntFromThresholds(rnd *rand.Rand, thresholds []float64) int {
	r := rnd.Float64()
	for i, threshold := range thresholds {
		if r < threshold {
			return i
		}
	}
	return len(thresholds)
}

// timeslot is one time-of-day pattern the rotation repeats for every
// spot. A night slot ends on the next rotation day.
type timeslot struct {
	startTime string
	endTime   string
	nextDay   bool
}

var rotationTimeslots = []timeslot{
	{startTime: "06:00:00", endTime: "14:00:00"},
	{startTime: "14:00:00", endTime: "22:00:00"},
	{startTime: "22:00:00", endTime: "06:00:00", nextDay: true},
}

var skillNames = []string{
	"Doctor", "Nurse", "Medic", "Pharmacist", "Ambulance Driver", "Respiratory Specialist",
}

// TenantSpec describes the synthetic tenant to generate.
type TenantSpec struct {
	Name           string
	ZoneID         string
	SpotCount      int
	RotationLength int
	Today          domain.LocalDate
}

func (s *TenantSpec) applyDefaults() {
	if s.ZoneID == "" {
		s.ZoneID = "UTC"
	}
	if s.SpotCount <= 0 {
		s.SpotCount = 10
	}
	if s.RotationLength <= 0 {
		s.RotationLength = 21
	}
	if s.Today.IsZero() {
		s.Today = domain.LocalDateOf(time.Now())
	}
}

// GeneratedRoster is a pure batch of records: entity IDs are local to
// the batch and remapped when an adapter persists it.
type GeneratedRoster struct {
	Tenant         *domain.Tenant
	RosterState    *domain.RosterState
	Skills         []*domain.Skill
	Spots          []*domain.Spot
	Contracts      []*domain.Contract
	Employees      []*domain.Employee
	ShiftTemplates []*domain.ShiftTemplate
	Shifts         []*domain.Shift
	Availabilities []*domain.EmployeeAvailability
}

// Generator builds full synthetic tenants. The RNG is injected so tests
// can seed or replay it; nothing here touches a shared random source.
type Generator struct {
	// mu serializes Generate: the RNG and the name sequences are
	// stateful and the handler shares one Generator across requests.
	mu            sync.Mutex
	rnd           *rand.Rand
	employeeNames *StringDataGenerator
	spotNames     *StringDataGenerator

	// RotationEmployeeIndexCalculator slots an employee into a rotation
	// template. It must return an index in [0, employeesPerSpot);
	// anything else is a fatal configuration error.
	RotationEmployeeIndexCalculator func(timeslotIndex, dayOffset, employeesPerSpot int) int
}

func New(seed int64) *Generator {
	employeeNames := NewStringDataGenerator().
		AddPart("Amy", "Beth", "Carl", "Dan", "Elsa", "Flo", "Gus", "Hugo", "Ivy", "Jay",
			"Kurt", "Lena", "Mia", "Noah", "Omar", "Page", "Quinn", "Rose", "Sven", "Tara").
		AddPart("Cole", "Fox", "Green", "Jones", "King", "Li", "Poe", "Quade", "Rye", "Smith",
			"Watt", "Webb", "Hale", "Ito", "Marsh", "Nolan", "Odum", "Pratt", "Stone", "Vickers")
	spotNames := NewStringDataGenerator().
		AddPart("Ambulatory", "Critical", "Pediatric", "Surgical", "Emergency", "Geriatric",
			"Maternity", "Oncology", "Recovery", "Radiology", "Neurology", "Cardiac").
		AddPart("care", "triage", "response", "ward", "unit", "station")

	return &Generator{
		rnd:           rand.New(rand.NewSource(seed)),
		employeeNames: employeeNames,
		spotNames:     spotNames,
		RotationEmployeeIndexCalculator: func(timeslotIndex, dayOffset, employeesPerSpot int) int {
			// rotate weekly through the spot's crew, offset per timeslot
			return ((dayOffset/7)*len(rotationTimeslots) + timeslotIndex) % employeesPerSpot
		},
	}
}

// Generate builds a complete tenant batch: skills, spots, contracts,
// employees, a rotation of shift templates, concrete shifts across the
// historic/published/draft window, and draft-period availabilities.
func (g *Generator) Generate(spec TenantSpec) (*GeneratedRoster, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	spec.applyDefaults()

	loc, err := time.LoadLocation(spec.ZoneID)
	if err != nil {
		return nil, err
	}

	generated := &GeneratedRoster{
		Tenant: &domain.Tenant{ID: 1, Name: spec.Name},
	}

	state := &domain.RosterState{
		ID:               1,
		PublishNotice:    publishNotice,
		FirstDraftDate:   spec.Today.AddDays(publishNotice),
		PublishLength:    domain.PublishLength,
		DraftLength:      draftLength,
		RotationLength:   spec.RotationLength,
		LastHistoricDate: spec.Today.AddDays(-1),
		TimeZone:         spec.ZoneID,
	}
	generated.RosterState = state

	generated.Skills = g.createSkills(spec.SpotCount)
	generated.Contracts = g.createContracts()
	generated.Spots = g.createSpots(spec.SpotCount, generated.Skills)
	generated.Employees = g.createEmployees(spec.SpotCount*employeesPerSpotFactor, generated.Contracts, generated.Skills)

	templates, err := g.createShiftTemplates(generated.Spots, generated.Employees, spec.RotationLength)
	if err != nil {
		return nil, err
	}
	generated.ShiftTemplates = templates

	generationStart := spec.Today.AddDays(-historicLength)
	generationDays := generationStart.DaysUntil(state.FirstUnplannedDate())

	index := roster.BuildTemplateIndex(templates)
	shifts, endOffset, err := g.CreateShifts(index, state, generationStart, generationDays, 0, loc)
	if err != nil {
		return nil, err
	}
	for i, shift := range shifts {
		shift.ID = int64(i + 1)
	}
	generated.Shifts = shifts
	state.UnplannedRotationOffset = endOffset

	generated.Availabilities = g.createAvailabilities(state, generated.Employees, shifts)

	return generated, nil
}

func (g *Generator) createSkills(spotCount int) []*domain.Skill {
	count := 3 + spotCount/4
	if count > len(skillNames) {
		count = len(skillNames)
	}
	skills := make([]*domain.Skill, count)
	for i := 0; i < count; i++ {
		skills[i] = &domain.Skill{ID: int64(i + 1), Name: skillNames[i]}
	}
	return skills
}

func (g *Generator) createContracts() []*domain.Contract {
	fullTimeWeek := 40 * 60
	partTimeWeek := 20 * 60
	dayCap := 10 * 60
	return []*domain.Contract{
		{ID: 1, Name: "Full time", MaximumMinutesPerWeek: &fullTimeWeek},
		{ID: 2, Name: "Part time", MaximumMinutesPerWeek: &partTimeWeek},
		{ID: 3, Name: "Max 10 hours per day", MaximumMinutesPerDay: &dayCap},
		{ID: 4, Name: "No limits"},
	}
}

func (g *Generator) createSpots(count int, skills []*domain.Skill) []*domain.Spot {
	g.spotNames.Reset()
	spots := make([]*domain.Spot, count)
	for i := 0; i < count; i++ {
		spots[i] = &domain.Spot{
			ID:               int64(i + 1),
			Name:             g.spotNames.NextValue(),
			RequiredSkillIDs: g.randomSkillIDs(skills, 2, 0),
		}
	}
	return spots
}

func (g *Generator) createEmployees(count int, contracts []*domain.Contract, skills []*domain.Skill) []*domain.Employee {
	g.employeeNames.Reset()
	employees := make([]*domain.Employee, count)
	for i := 0; i < count; i++ {
		employees[i] = &domain.Employee{
			ID:         int64(i + 1),
			Name:       g.employeeNames.NextValue(),
			ContractID: contracts[g.rnd.Intn(len(contracts))].ID,
			SkillIDs:   g.randomSkillIDs(skills, 3, 1),
		}
	}
	return employees
}

func (g *Generator) randomSkillIDs(skills []*domain.Skill, maximum, minimum int) []int64 {
	count := minimum + g.rnd.Intn(maximum-minimum+1)
	picked := make([]int64, 0, count)
	indexes := g.rnd.Perm(len(skills))
	for i := 0; i < count && i < len(skills); i++ {
		picked = append(picked, skills[indexes[i]].ID)
	}
	return picked
}

// createShiftTemplates lays out the repeating rotation: for every spot,
// every rotation day and every timeslot one template, with the rotation
// employee chosen by the index calculator from the spot's own crew.
func (g *Generator) createShiftTemplates(spots []*domain.Spot, employees []*domain.Employee, rotationLength int) ([]*domain.ShiftTemplate, error) {
	employeesPerSpot := len(employees) / len(spots)
	if employeesPerSpot == 0 {
		return nil, domain.NewIllegalState("The employee count (%d) must cover every spot (%d).", len(employees), len(spots))
	}

	templates := make([]*domain.ShiftTemplate, 0, len(spots)*rotationLength*len(rotationTimeslots))
	nextID := int64(1)

	for spotIndex, spot := range spots {
		crew := employees[spotIndex*employeesPerSpot : (spotIndex+1)*employeesPerSpot]

		for dayOffset := 0; dayOffset < rotationLength; dayOffset++ {
			for timeslotIndex, slot := range rotationTimeslots {
				crewIndex := g.RotationEmployeeIndexCalculator(timeslotIndex, dayOffset, employeesPerSpot)
				if crewIndex < 0 || crewIndex >= employeesPerSpot {
					return nil, domain.NewIllegalState(
						"The rotationEmployeeIndex (%d) must be in range [0, %d).", crewIndex, employeesPerSpot)
				}
				rotationEmployeeID := crew[crewIndex].ID

				endDayOffset := dayOffset
				if slot.nextDay {
					endDayOffset = (dayOffset + 1) % rotationLength
				}

				templates = append(templates, &domain.ShiftTemplate{
					ID:                 nextID,
					SpotID:             spot.ID,
					StartDayOffset:     dayOffset,
					EndDayOffset:       endDayOffset,
					StartTime:          slot.startTime,
					EndTime:            slot.endTime,
					RotationEmployeeID: &rotationEmployeeID,
				})
				nextID++
			}
		}
	}

	return templates, nil
}

// CreateShifts walks the generation window day by day, stamping every
// template for the current rotation offset. Dates before the first
// draft date default to the rotation employee; draft dates do not, and
// additionally receive random extra unassigned shifts per spot.
//
// The offset arithmetic matches roster.StampRange exactly so that
// publish-and-provision continues the cycle where generation left off.
func (g *Generator) CreateShifts(index roster.TemplateIndex, state *domain.RosterState, from domain.LocalDate, days, startOffset int, loc *time.Location) ([]*domain.Shift, int, error) {
	if state.RotationLength <= 0 {
		return nil, 0, domain.NewIllegalState("The rotationLength (%d) must be positive.", state.RotationLength)
	}

	offset := ((startOffset % state.RotationLength) + state.RotationLength) % state.RotationLength
	shifts := make([]*domain.Shift, 0)

	for i := 0; i < days; i++ {
		date := from.AddDays(i)
		defaultToRotationEmployee := date.Before(state.FirstDraftDate)

		for _, tpl := range index[offset] {
			shift, err := roster.StampShift(tpl, date, state.RotationLength, loc, defaultToRotationEmployee)
			if err != nil {
				return nil, 0, err
			}
			shifts = append(shifts, shift)
		}

		if !defaultToRotationEmployee {
			extras, err := g.createExtraShifts(index[offset], date, state.RotationLength, loc)
			if err != nil {
				return nil, 0, err
			}
			shifts = append(shifts, extras...)
		}

		offset = (offset + 1) % state.RotationLength
	}

	return shifts, offset, nil
}

// createExtraShifts models real-world overstaffing spikes: per spot,
// roll an extra count against the thresholds and stamp that many
// additional unassigned copies of randomly picked templates already
// present for the day. A spot with no templates that day gets none.
func (g *Generator) createExtraShifts(dayTemplates []*domain.ShiftTemplate, date domain.LocalDate, rotationLength int, loc *time.Location) ([]*domain.Shift, error) {
	bySpot := make(map[int64][]*domain.ShiftTemplate)
	spotOrder := make([]int64, 0)
	for _, tpl := range dayTemplates {
		if _, seen := bySpot[tpl.SpotID]; !seen {
			spotOrder = append(spotOrder, tpl.SpotID)
		}
		bySpot[tpl.SpotID] = append(bySpot[tpl.SpotID], tpl)
	}

	extras := make([]*domain.Shift, 0)
	for _, spotID := range spotOrder {
		candidates := bySpot[spotID]
		extraCount := randomIntFromThresholds(g.rnd, extraShiftThresholds)
		for e := 0; e < extraCount; e++ {
			tpl := candidates[g.rnd.Intn(len(candidates))]
			shift, err := roster.StampShift(tpl, date, rotationLength, loc, false)
			if err != nil {
				return nil, err
			}
			extras = append(extras, shift)
		}
	}
	return extras, nil
}

// createAvailabilities tags employees with full-day availability states
// across the draft window. Density scales inversely with the day's
// shift count but never drops to zero employees per state, and an
// employee gets at most one state per day.
func (g *Generator) createAvailabilities(state *domain.RosterState, employees []*domain.Employee, shifts []*domain.Shift) []*domain.EmployeeAvailability {
	shiftCountByDate := make(map[string]int)
	for _, shift := range shifts {
		date := domain.LocalDateOf(shift.StartDateTime)
		shiftCountByDate[date.String()]++
	}

	availabilities := make([]*domain.EmployeeAvailability, 0)
	nextID := int64(1)

	firstUnplanned := state.FirstUnplannedDate()
	for date := state.FirstDraftDate.AddDays(1); !date.After(firstUnplanned); date = date.AddDays(1) {
		stateCount := (len(employees) - shiftCountByDate[date.String()]) / 4
		if stateCount < 1 {
			stateCount = 1
		}

		pool := g.rnd.Perm(len(employees))
		for _, availabilityState := range domain.AvailabilityStates {
			for i := 0; i < stateCount && len(pool) > 0; i++ {
				employee := employees[pool[0]]
				pool = pool[1:]

				availabilities = append(availabilities, &domain.EmployeeAvailability{
					ID:         nextID,
					EmployeeID: employee.ID,
					Date:       date,
					StartTime:  "00:00:00",
					EndTime:    "00:00:00",
					State:      availabilityState,
				})
				nextID++
			}
		}
	}

	return availabilities
}
