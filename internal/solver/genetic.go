package solver

import (
	"math/rand"

	"github.com/rotaplan/roster-backend/internal/domain"
)

// Parameters tune the genetic optimizer.
type Parameters struct {
	PopulationSize int
	MaxGenerations int
	CrossoverRate  float64
	MutationRate   float64
	EliteCount     int
}

// chromosome assigns one candidate employee (or none) to every planning
// shift. assignments[i] indexes the employee list, -1 means unassigned.
type chromosome struct {
	assignments []int
	score       domain.Score
}

func (c *chromosome) clone() *chromosome {
	assignments := make([]int, len(c.assignments))
	copy(assignments, c.assignments)
	return &chromosome{assignments: assignments, score: c.score}
}

// optimizer runs a genetic search over shift-to-employee assignments
// for the draft window: population with elites, tournament selection,
// single-point crossover and per-gene mutation.
type optimizer struct {
	rnd    *rand.Rand
	params Parameters
	base   *domain.Roster

	// planningIndexes are positions in base.Shifts that are up for
	// (re)assignment: draft-window shifts not pinned by a user.
	planningIndexes []int
	employees       []*domain.Employee
}

func newOptimizer(params Parameters, base *domain.Roster, rnd *rand.Rand) *optimizer {
	o := &optimizer{
		rnd:       rnd,
		params:    params,
		base:      base,
		employees: base.Employees,
	}

	state := base.RosterState
	for i, shift := range base.Shifts {
		if shift.PinnedByUser {
			continue
		}
		if state != nil && !state.IsDraft(domain.LocalDateOf(shift.StartDateTime)) {
			continue
		}
		o.planningIndexes = append(o.planningIndexes, i)
	}

	return o
}

// apply produces a roster whose planning shifts carry the chromosome's
// assignments. Shifts are copied; the rest of the aggregate is shared.
func (o *optimizer) apply(c *chromosome) *domain.Roster {
	shifts := make([]*domain.Shift, len(o.base.Shifts))
	for i, shift := range o.base.Shifts {
		shiftCopy := *shift
		shifts[i] = &shiftCopy
	}
	for gene, shiftIndex := range o.planningIndexes {
		if c.assignments[gene] < 0 {
			shifts[shiftIndex].EmployeeID = nil
			continue
		}
		employeeID := o.employees[c.assignments[gene]].ID
		shifts[shiftIndex].EmployeeID = &employeeID
	}

	applied := *o.base
	applied.Shifts = shifts
	return &applied
}

func (o *optimizer) evaluate(c *chromosome) {
	c.score = ScoreRoster(o.apply(c))
}

func (o *optimizer) randomChromosome() *chromosome {
	assignments := make([]int, len(o.planningIndexes))
	for i := range assignments {
		// leave a slice of the population unassigned so the search can
		// discover that no assignment beats an infeasible one
		if len(o.employees) == 0 || o.rnd.Float64() < 0.1 {
			assignments[i] = -1
			continue
		}
		assignments[i] = o.rnd.Intn(len(o.employees))
	}
	return &chromosome{assignments: assignments}
}

func (o *optimizer) tournament(pop []*chromosome) *chromosome {
	a := pop[o.rnd.Intn(len(pop))]
	b := pop[o.rnd.Intn(len(pop))]
	if a.score.Compare(b.score) >= 0 {
		return a
	}
	return b
}

func (o *optimizer) crossover(a, b *chromosome) (*chromosome, *chromosome) {
	childA, childB := a.clone(), b.clone()
	if len(childA.assignments) == 0 {
		return childA, childB
	}
	point := o.rnd.Intn(len(childA.assignments))
	for i := point; i < len(childA.assignments); i++ {
		childA.assignments[i], childB.assignments[i] = childB.assignments[i], childA.assignments[i]
	}
	return childA, childB
}

func (o *optimizer) mutate(c *chromosome) {
	for i := range c.assignments {
		if o.rnd.Float64() >= o.params.MutationRate {
			continue
		}
		if len(o.employees) == 0 || o.rnd.Float64() < 0.1 {
			c.assignments[i] = -1
			continue
		}
		c.assignments[i] = o.rnd.Intn(len(o.employees))
	}
}

// run iterates generations until the limit is reached or stop closes.
// Each time the best score improves, publish receives a roster snapshot
// carrying the new assignments and score.
func (o *optimizer) run(stop <-chan struct{}, publish func(best *domain.Roster, score domain.Score)) {
	populationSize := o.params.PopulationSize
	if populationSize < 2 {
		populationSize = 2
	}
	eliteCount := o.params.EliteCount
	if eliteCount >= populationSize {
		eliteCount = populationSize - 1
	}

	population := make([]*chromosome, populationSize)
	for i := range population {
		population[i] = o.randomChromosome()
		o.evaluate(population[i])
	}

	var best *chromosome

	for generation := 0; generation < o.params.MaxGenerations; generation++ {
		select {
		case <-stop:
			return
		default:
		}

		sortByScore(population)

		if best == nil || population[0].score.Compare(best.score) > 0 {
			best = population[0].clone()
			publish(o.apply(best), best.score)
		}

		next := make([]*chromosome, 0, populationSize)
		for i := 0; i < eliteCount; i++ {
			next = append(next, population[i].clone())
		}

		for len(next) < populationSize {
			parentA := o.tournament(population)
			parentB := o.tournament(population)

			childA, childB := parentA.clone(), parentB.clone()
			if o.rnd.Float64() < o.params.CrossoverRate {
				childA, childB = o.crossover(parentA, parentB)
			}
			o.mutate(childA)
			o.mutate(childB)

			next = append(next, childA)
			if len(next) < populationSize {
				next = append(next, childB)
			}
		}

		for _, c := range next {
			o.evaluate(c)
		}
		population = next
	}
}

func sortByScore(population []*chromosome) {
	// insertion sort keeps the hot path allocation free; populations
	// stay small
	for i := 1; i < len(population); i++ {
		current := population[i]
		j := i - 1
		for j >= 0 && population[j].score.Compare(current.score) < 0 {
			population[j+1] = population[j]
			j--
		}
		population[j+1] = current
	}
}
