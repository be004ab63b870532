package solver

import (
	"time"

	"github.com/rotaplan/roster-backend/internal/domain"
)

const (
	constraintRequiredSkill    = "Required skill for a shift"
	constraintUnavailable      = "Unavailable time slot for an employee"
	constraintOneShiftPerDay   = "At most one shift assignment per day per employee"
	constraintAssignEveryShift = "Assign every shift"
	constraintUndesired        = "Undesired time slot for an employee"
	constraintDesired          = "Desired time slot for an employee"
)

// IndictmentMapForRoster evaluates every constraint against the roster
// and attributes each match to the shift(s) involved.
func IndictmentMapForRoster(r *domain.Roster) map[int64]*domain.Indictment {
	indictments := make(map[int64]*domain.Indictment, len(r.Shifts))
	indict := func(shift *domain.Shift, name string, score domain.Score) {
		indictment, ok := indictments[shift.ID]
		if !ok {
			indictment = &domain.Indictment{ConstraintMatches: make([]domain.ConstraintMatch, 0)}
			indictments[shift.ID] = indictment
		}
		indictment.Add(domain.ConstraintMatch{ConstraintName: name, Score: score})
	}

	loc := time.UTC
	if r.RosterState != nil {
		if parsed, err := r.RosterState.Location(); err == nil {
			loc = parsed
		}
	}

	spotsByID := make(map[int64]*domain.Spot, len(r.Spots))
	for _, spot := range r.Spots {
		spotsByID[spot.ID] = spot
	}
	employeesByID := make(map[int64]*domain.Employee, len(r.Employees))
	for _, employee := range r.Employees {
		employeesByID[employee.ID] = employee
	}
	availabilitiesByEmployee := make(map[int64][]*domain.EmployeeAvailability)
	for _, availability := range r.Availabilities {
		availabilitiesByEmployee[availability.EmployeeID] = append(availabilitiesByEmployee[availability.EmployeeID], availability)
	}

	shiftsByEmployee := make(map[int64][]*domain.Shift)

	for _, shift := range r.Shifts {
		if shift.EmployeeID == nil {
			indict(shift, constraintAssignEveryShift, domain.Score{Medium: -1})
			continue
		}
		employeeID := *shift.EmployeeID
		shiftsByEmployee[employeeID] = append(shiftsByEmployee[employeeID], shift)

		employee := employeesByID[employeeID]
		if employee != nil {
			if spot := spotsByID[shift.SpotID]; spot != nil {
				for _, skillID := range spot.RequiredSkillIDs {
					if !employee.HasSkill(skillID) {
						indict(shift, constraintRequiredSkill, domain.Score{Hard: -1})
						break
					}
				}
			}
		}

		for _, availability := range availabilitiesByEmployee[employeeID] {
			start, end, err := availability.Window(loc)
			if err != nil {
				continue
			}
			if !shift.StartDateTime.Before(end) || !start.Before(shift.EndDateTime) {
				continue
			}
			switch availability.State {
			case domain.AvailabilityUnavailable:
				indict(shift, constraintUnavailable, domain.Score{Hard: -1})
			case domain.AvailabilityUndesired:
				indict(shift, constraintUndesired, domain.Score{Soft: -1})
			case domain.AvailabilityDesired:
				indict(shift, constraintDesired, domain.Score{Soft: 1})
			}
		}
	}

	for _, shifts := range shiftsByEmployee {
		for i := 0; i < len(shifts); i++ {
			for j := i + 1; j < len(shifts); j++ {
				a, b := shifts[i], shifts[j]
				if domain.LocalDateOf(a.StartDateTime.In(loc)).Equal(domain.LocalDateOf(b.StartDateTime.In(loc))) {
					indict(a, constraintOneShiftPerDay, domain.Score{Hard: -1})
					indict(b, constraintOneShiftPerDay, domain.Score{Hard: -1})
				}
			}
		}
	}

	return indictments
}

// ScoreRoster sums the indictment scores. Every constraint attributes
// to a shift, so the roster score is the total over the indictment map.
func ScoreRoster(r *domain.Roster) domain.Score {
	var total domain.Score
	for _, indictment := range IndictmentMapForRoster(r) {
		total = total.Add(indictment.Score)
	}
	return total
}
