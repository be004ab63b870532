package solver

import (
	"log/slog"
	"math/rand"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rotaplan/roster-backend/internal/domain"
)

// Store is what the manager needs from the rest of the application: a
// fresh roster aggregate to solve, and a way to write the winning
// assignments back.
type Store interface {
	BuildRoster(tenantID int64) (*domain.Roster, error)
	SaveShiftAssignments(shifts []*domain.Shift) error
}

type task struct {
	jobID   string
	stop    chan struct{}
	stopped bool

	best    *domain.Roster
	version int64
	solving bool
}

// Manager runs at most one asynchronous solve per tenant and caches the
// best solution found so far. The cached roster and the live database
// rows are read independently by the view assembler; each published
// snapshot carries a monotonically increasing version so a client can
// tell which solve the score came from.
type Manager struct {
	params Parameters
	store  Store

	mu    sync.Mutex
	tasks map[int64]*task
}

func NewManager(params Parameters, store Store) *Manager {
	return &Manager{
		params: params,
		store:  store,
		tasks:  make(map[int64]*task),
	}
}

// Solve starts a background solve for the tenant and returns the solve
// job id. A tenant with a solve already in flight keeps it; the
// existing job id is returned.
func (m *Manager) Solve(tenantID int64) (string, error) {
	m.mu.Lock()
	if existing, ok := m.tasks[tenantID]; ok && existing.solving {
		jobID := existing.jobID
		m.mu.Unlock()
		return jobID, nil
	}

	t := &task{
		jobID:   uuid.NewString(),
		stop:    make(chan struct{}),
		solving: true,
	}
	if previous, ok := m.tasks[tenantID]; ok {
		// keep version monotonic across solves of the same tenant
		t.version = previous.version
		t.best = previous.best
	}
	m.tasks[tenantID] = t
	m.mu.Unlock()

	base, err := m.store.BuildRoster(tenantID)
	if err != nil {
		m.mu.Lock()
		t.solving = false
		m.mu.Unlock()
		return "", err
	}

	go m.solve(tenantID, t, base)

	return t.jobID, nil
}

func (m *Manager) solve(tenantID int64, t *task, base *domain.Roster) {
	start := time.Now()
	slog.Info("solving started", "tenantId", tenantID, "jobId", t.jobID, "shifts", len(base.Shifts))

	o := newOptimizer(m.params, base, rand.New(rand.NewSource(time.Now().UnixNano())))
	o.run(t.stop, func(snapshot *domain.Roster, score domain.Score) {
		m.mu.Lock()
		t.version++
		snapshot.Score = &score
		snapshot.SolverVersion = t.version
		t.best = snapshot
		m.mu.Unlock()
	})

	m.mu.Lock()
	t.solving = false
	best := t.best
	m.mu.Unlock()

	if best != nil {
		if err := m.store.SaveShiftAssignments(best.Shifts); err != nil {
			slog.Error("failed to persist best solution", "tenantId", tenantID, "jobId", t.jobID, "error", err)
		}
	}

	slog.Info("solving finished", "tenantId", tenantID, "jobId", t.jobID, "duration", time.Since(start))
}

// Terminate signals the tenant's solve to stop early. It reports
// whether a solve was in flight.
func (m *Manager) Terminate(tenantID int64) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	t, ok := m.tasks[tenantID]
	if !ok || !t.solving || t.stopped {
		return false
	}
	close(t.stop)
	t.stopped = true
	return true
}

// GetRoster returns the best solution found so far for the tenant, or
// nil when no solve has published one.
func (m *Manager) GetRoster(tenantID int64) *domain.Roster {
	m.mu.Lock()
	defer m.mu.Unlock()

	t, ok := m.tasks[tenantID]
	if !ok {
		return nil
	}
	return t.best
}

// IsSolving reports whether a solve is currently in flight.
func (m *Manager) IsSolving(tenantID int64) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	t, ok := m.tasks[tenantID]
	return ok && t.solving
}

// IndictmentMap satisfies the view assembler's solver boundary.
func (m *Manager) IndictmentMap(r *domain.Roster) map[int64]*domain.Indictment {
	return IndictmentMapForRoster(r)
}
