package domain

import "fmt"

// Score is a hard/medium/soft constraint score. Hard violations make a
// roster infeasible; medium tracks unassigned shifts; soft tracks
// preferences.
type Score struct {
	Hard   int `json:"hard"`
	Medium int `json:"medium"`
	Soft   int `json:"soft"`
}

func (s Score) Add(other Score) Score {
	return Score{
		Hard:   s.Hard + other.Hard,
		Medium: s.Medium + other.Medium,
		Soft:   s.Soft + other.Soft,
	}
}

func (s Score) IsFeasible() bool {
	return s.Hard >= 0
}

// Compare orders scores lexicographically by hard, medium, soft.
func (s Score) Compare(other Score) int {
	if s.Hard != other.Hard {
		if s.Hard < other.Hard {
			return -1
		}
		return 1
	}
	if s.Medium != other.Medium {
		if s.Medium < other.Medium {
			return -1
		}
		return 1
	}
	if s.Soft != other.Soft {
		if s.Soft < other.Soft {
			return -1
		}
		return 1
	}
	return 0
}

func (s Score) String() string {
	return fmt.Sprintf("%dhard/%dmedium/%dsoft", s.Hard, s.Medium, s.Soft)
}

// Roster is the in-memory aggregate the solver consumes and returns. It
// is never persisted as a row; it is assembled from the tenant's
// entities and carries the optimization score.
//
// SolverVersion increases monotonically with each snapshot the solver
// publishes, so view assembly can flag how fresh the merged score is. A
// version of 0 means no solve has produced this roster.
type Roster struct {
	TenantID       int64                   `json:"tenantId"`
	RosterState    *RosterState            `json:"rosterState"`
	Skills         []*Skill                `json:"skillList"`
	Spots          []*Spot                 `json:"spotList"`
	Contracts      []*Contract             `json:"contractList"`
	Employees      []*Employee             `json:"employeeList"`
	Availabilities []*EmployeeAvailability `json:"employeeAvailabilityList"`
	Shifts         []*Shift                `json:"shiftList"`
	Score          *Score                  `json:"score"`
	SolverVersion  int64                   `json:"solverVersion"`
}

// PublishResult reports the window a publish-and-provision call turned
// from draft into published.
type PublishResult struct {
	PublishedFromDate LocalDate `json:"publishedFromDate"`
	PublishedToDate   LocalDate `json:"publishedToDate"`
}
