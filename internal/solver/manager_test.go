package solver

import (
	"errors"
	"math/rand"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rotaplan/roster-backend/internal/domain"
)

type fakeStore struct {
	mu     sync.Mutex
	roster *domain.Roster
	err    error
	saved  [][]*domain.Shift
}

func (f *fakeStore) BuildRoster(tenantID int64) (*domain.Roster, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.roster, nil
}

func (f *fakeStore) SaveShiftAssignments(shifts []*domain.Shift) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.saved = append(f.saved, shifts)
	return nil
}

func (f *fakeStore) saveCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.saved)
}

func solvableRoster() *domain.Roster {
	day := domain.NewLocalDate(2026, time.March, 16)
	at := func(d domain.LocalDate, tod string) time.Time {
		t, _ := d.At(tod, time.UTC)
		return t
	}

	shifts := make([]*domain.Shift, 0, 6)
	for i := 0; i < 6; i++ {
		date := day.AddDays(i % 3)
		shifts = append(shifts, &domain.Shift{
			ID:            int64(100 + i),
			SpotID:        int64(1 + i%2),
			StartDateTime: at(date, "06:00:00"),
			EndDateTime:   at(date, "14:00:00"),
		})
	}

	return &domain.Roster{
		TenantID: 1,
		RosterState: &domain.RosterState{
			TenantID:         1,
			FirstDraftDate:   day,
			PublishLength:    domain.PublishLength,
			DraftLength:      14,
			RotationLength:   21,
			LastHistoricDate: day.AddDays(-8),
			TimeZone:         "UTC",
		},
		Spots: []*domain.Spot{{ID: 1}, {ID: 2}},
		Employees: []*domain.Employee{
			{ID: 10}, {ID: 11}, {ID: 12}, {ID: 13},
		},
		Shifts: shifts,
	}
}

func testParameters() Parameters {
	return Parameters{
		PopulationSize: 8,
		MaxGenerations: 20,
		CrossoverRate:  0.7,
		MutationRate:   0.1,
		EliteCount:     2,
	}
}

func waitUntilDone(t *testing.T, m *Manager, tenantID int64) {
	t.Helper()
	require.Eventually(t, func() bool {
		return !m.IsSolving(tenantID)
	}, 5*time.Second, 10*time.Millisecond)
}

func TestManagerSolvePublishesAndPersistsBest(t *testing.T) {
	store := &fakeStore{roster: solvableRoster()}
	m := NewManager(testParameters(), store)

	jobID, err := m.Solve(1)
	require.NoError(t, err)
	assert.NotEmpty(t, jobID)

	waitUntilDone(t, m, 1)

	best := m.GetRoster(1)
	require.NotNil(t, best)
	require.NotNil(t, best.Score)
	assert.GreaterOrEqual(t, best.SolverVersion, int64(1))

	// the winning assignments were written back once
	assert.Equal(t, 1, store.saveCount())
}

func TestManagerSolveBuildError(t *testing.T) {
	store := &fakeStore{err: errors.New("boom")}
	m := NewManager(testParameters(), store)

	_, err := m.Solve(1)
	require.Error(t, err)
	assert.False(t, m.IsSolving(1))
}

func TestManagerVersionMonotonicAcrossSolves(t *testing.T) {
	store := &fakeStore{roster: solvableRoster()}
	m := NewManager(testParameters(), store)

	_, err := m.Solve(1)
	require.NoError(t, err)
	waitUntilDone(t, m, 1)
	firstVersion := m.GetRoster(1).SolverVersion

	_, err = m.Solve(1)
	require.NoError(t, err)
	waitUntilDone(t, m, 1)

	assert.Greater(t, m.GetRoster(1).SolverVersion, firstVersion)
}

func TestManagerTerminate(t *testing.T) {
	store := &fakeStore{roster: solvableRoster()}
	params := testParameters()
	params.MaxGenerations = 1_000_000
	m := NewManager(params, store)

	assert.False(t, m.Terminate(1))

	_, err := m.Solve(1)
	require.NoError(t, err)

	assert.True(t, m.Terminate(1))
	assert.False(t, m.Terminate(1))
	waitUntilDone(t, m, 1)
}

func TestManagerGetRosterUnknownTenant(t *testing.T) {
	m := NewManager(testParameters(), &fakeStore{})
	assert.Nil(t, m.GetRoster(7))
	assert.False(t, m.IsSolving(7))
}

func TestOptimizerOnlyTouchesDraftUnpinnedShifts(t *testing.T) {
	base := solvableRoster()
	pinnedEmployee := int64(13)
	base.Shifts[0].PinnedByUser = true
	base.Shifts[0].EmployeeID = &pinnedEmployee

	historic, _ := base.RosterState.LastHistoricDate.At("06:00:00", time.UTC)
	base.Shifts = append(base.Shifts, &domain.Shift{
		ID:            200,
		SpotID:        1,
		StartDateTime: historic,
		EndDateTime:   historic.Add(8 * time.Hour),
	})

	o := newOptimizer(testParameters(), base, rand.New(rand.NewSource(1)))

	// six draft shifts minus the pinned one; the historic shift is out
	assert.Len(t, o.planningIndexes, 5)

	c := o.randomChromosome()
	applied := o.apply(c)

	require.NotNil(t, applied.Shifts[0].EmployeeID)
	assert.Equal(t, pinnedEmployee, *applied.Shifts[0].EmployeeID)
	assert.Nil(t, applied.Shifts[6].EmployeeID)
}

func TestSortByScoreOrdersBestFirst(t *testing.T) {
	population := []*chromosome{
		{score: domain.Score{Hard: -2}},
		{score: domain.Score{Hard: 0, Soft: 1}},
		{score: domain.Score{Hard: 0, Medium: -1}},
		{score: domain.Score{Hard: 0, Soft: 3}},
	}

	sortByScore(population)

	assert.Equal(t, domain.Score{Hard: 0, Soft: 3}, population[0].score)
	assert.Equal(t, domain.Score{Hard: 0, Soft: 1}, population[1].score)
	assert.Equal(t, domain.Score{Hard: 0, Medium: -1}, population[2].score)
	assert.Equal(t, domain.Score{Hard: -2}, population[3].score)
}
