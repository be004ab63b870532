package solver

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rotaplan/roster-backend/internal/domain"
)

func int64Ptr(v int64) *int64 { return &v }

func scoringRoster() *domain.Roster {
	day := domain.NewLocalDate(2026, time.March, 16)
	at := func(d domain.LocalDate, tod string) time.Time {
		t, _ := d.At(tod, time.UTC)
		return t
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
		Skills: []*domain.Skill{{ID: 1, Name: "Doctor"}},
		Spots: []*domain.Spot{
			{ID: 1, Name: "Emergency ward", RequiredSkillIDs: []int64{1}},
			{ID: 2, Name: "Recovery unit"},
		},
		Employees: []*domain.Employee{
			{ID: 10, Name: "Amy Cole", SkillIDs: []int64{1}},
			{ID: 11, Name: "Beth Fox"},
		},
		Shifts: []*domain.Shift{
			{ID: 100, SpotID: 1, EmployeeID: int64Ptr(10),
				StartDateTime: at(day, "06:00:00"), EndDateTime: at(day, "14:00:00")},
		},
	}
}

func TestIndictmentUnassignedShift(t *testing.T) {
	r := scoringRoster()
	r.Shifts[0].EmployeeID = nil

	indictments := IndictmentMapForRoster(r)

	indictment := indictments[100]
	require.NotNil(t, indictment)
	assert.Equal(t, domain.Score{Medium: -1}, indictment.Score)
	require.Len(t, indictment.ConstraintMatches, 1)
	assert.Equal(t, "Assign every shift", indictment.ConstraintMatches[0].ConstraintName)
}

func TestIndictmentMissingRequiredSkill(t *testing.T) {
	r := scoringRoster()
	r.Shifts[0].EmployeeID = int64Ptr(11) // Beth has no skills

	indictments := IndictmentMapForRoster(r)

	indictment := indictments[100]
	require.NotNil(t, indictment)
	assert.Equal(t, domain.Score{Hard: -1}, indictment.Score)
	assert.Equal(t, "Required skill for a shift", indictment.ConstraintMatches[0].ConstraintName)
}

func TestIndictmentSkilledAssignmentIsClean(t *testing.T) {
	r := scoringRoster()

	indictments := IndictmentMapForRoster(r)

	assert.Nil(t, indictments[100])
	assert.Equal(t, domain.Score{}, ScoreRoster(r))
}

func TestIndictmentAvailabilityStates(t *testing.T) {
	tests := []struct {
		state domain.AvailabilityState
		want  domain.Score
		name  string
	}{
		{state: domain.AvailabilityUnavailable, want: domain.Score{Hard: -1},
			name: "Unavailable time slot for an employee"},
		{state: domain.AvailabilityUndesired, want: domain.Score{Soft: -1},
			name: "Undesired time slot for an employee"},
		{state: domain.AvailabilityDesired, want: domain.Score{Soft: 1},
			name: "Desired time slot for an employee"},
	}

	for _, tt := range tests {
		t.Run(string(tt.state), func(t *testing.T) {
			r := scoringRoster()
			r.Availabilities = []*domain.EmployeeAvailability{
				{ID: 200, EmployeeID: 10, Date: domain.NewLocalDate(2026, time.March, 16),
					StartTime: "00:00:00", EndTime: "00:00:00", State: tt.state},
			}

			indictments := IndictmentMapForRoster(r)

			indictment := indictments[100]
			require.NotNil(t, indictment)
			assert.Equal(t, tt.want, indictment.Score)
			assert.Equal(t, tt.name, indictment.ConstraintMatches[0].ConstraintName)
		})
	}
}

func TestIndictmentAvailabilityOutsideShiftIgnored(t *testing.T) {
	r := scoringRoster()
	r.Availabilities = []*domain.EmployeeAvailability{
		// evening window, shift runs 06:00 to 14:00
		{ID: 200, EmployeeID: 10, Date: domain.NewLocalDate(2026, time.March, 16),
			StartTime: "18:00:00", EndTime: "22:00:00", State: domain.AvailabilityUnavailable},
		// other employee
		{ID: 201, EmployeeID: 11, Date: domain.NewLocalDate(2026, time.March, 16),
			StartTime: "00:00:00", EndTime: "00:00:00", State: domain.AvailabilityUnavailable},
	}

	assert.Empty(t, IndictmentMapForRoster(r))
}

func TestIndictmentOneShiftPerDay(t *testing.T) {
	day := domain.NewLocalDate(2026, time.March, 16)
	at := func(tod string) time.Time {
		t, _ := day.At(tod, time.UTC)
		return t
	}

	r := scoringRoster()
	r.Shifts = []*domain.Shift{
		{ID: 100, SpotID: 2, EmployeeID: int64Ptr(10),
			StartDateTime: at("06:00:00"), EndDateTime: at("14:00:00")},
		{ID: 101, SpotID: 2, EmployeeID: int64Ptr(10),
			StartDateTime: at("14:00:00"), EndDateTime: at("22:00:00")},
	}

	indictments := IndictmentMapForRoster(r)

	// both shifts of the double day carry the violation
	for _, id := range []int64{100, 101} {
		indictment := indictments[id]
		require.NotNil(t, indictment)
		assert.Equal(t, domain.Score{Hard: -1}, indictment.Score)
		assert.Equal(t, "At most one shift assignment per day per employee",
			indictment.ConstraintMatches[0].ConstraintName)
	}

	assert.Equal(t, domain.Score{Hard: -2}, ScoreRoster(r))
}

func TestScoreRosterSumsAllIndictments(t *testing.T) {
	day := domain.NewLocalDate(2026, time.March, 16)
	at := func(d domain.LocalDate, tod string) time.Time {
		t, _ := d.At(tod, time.UTC)
		return t
	}

	r := scoringRoster()
	r.Shifts = []*domain.Shift{
		// unskilled assignment on the skilled spot
		{ID: 100, SpotID: 1, EmployeeID: int64Ptr(11),
			StartDateTime: at(day, "06:00:00"), EndDateTime: at(day, "14:00:00")},
		// unassigned
		{ID: 101, SpotID: 2,
			StartDateTime: at(day, "14:00:00"), EndDateTime: at(day, "22:00:00")},
		// desired slot for Amy the next day
		{ID: 102, SpotID: 2, EmployeeID: int64Ptr(10),
			StartDateTime: at(day.AddDays(1), "06:00:00"), EndDateTime: at(day.AddDays(1), "14:00:00")},
	}
	r.Availabilities = []*domain.EmployeeAvailability{
		{ID: 200, EmployeeID: 10, Date: day.AddDays(1),
			StartTime: "00:00:00", EndTime: "00:00:00", State: domain.AvailabilityDesired},
	}

	assert.Equal(t, domain.Score{Hard: -1, Medium: -1, Soft: 1}, ScoreRoster(r))
}
