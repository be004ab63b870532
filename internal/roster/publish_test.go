package roster

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rotaplan/roster-backend/internal/domain"
)

func draftState() *domain.RosterState {
	return &domain.RosterState{
		TenantID:                1,
		PublishNotice:           7,
		FirstDraftDate:          domain.NewLocalDate(2026, time.March, 9),
		PublishLength:           domain.PublishLength,
		DraftLength:             14,
		UnplannedRotationOffset: 2,
		RotationLength:          21,
		LastHistoricDate:        domain.NewLocalDate(2026, time.March, 1),
		TimeZone:                "UTC",
	}
}

func TestPublishAndProvisionAdvancesWindow(t *testing.T) {
	state := draftState()
	firstUnplanned := state.FirstUnplannedDate()

	result, shifts, err := PublishAndProvision(state, []*domain.ShiftTemplate{
		{ID: 1, SpotID: 1, StartDayOffset: 2, EndDayOffset: 2, StartTime: "06:00:00", EndTime: "14:00:00"},
	})
	require.NoError(t, err)

	assert.Equal(t, domain.NewLocalDate(2026, time.March, 9), result.PublishedFromDate)
	assert.Equal(t, domain.NewLocalDate(2026, time.March, 16), result.PublishedToDate)

	// draft boundary moved one publish length, window length unchanged
	assert.Equal(t, domain.NewLocalDate(2026, time.March, 16), state.FirstDraftDate)
	assert.Equal(t, firstUnplanned.AddDays(domain.PublishLength), state.FirstUnplannedDate())

	// seven days walked from offset 2, so the offset advanced to 9
	assert.Equal(t, 9, state.UnplannedRotationOffset)
	require.Len(t, shifts, 1)
}

func TestPublishAndProvisionStampsTheRevealedWeek(t *testing.T) {
	state := draftState()
	firstUnplanned := state.FirstUnplannedDate()

	templates := make([]*domain.ShiftTemplate, 0, state.RotationLength)
	for offset := 0; offset < state.RotationLength; offset++ {
		templates = append(templates, &domain.ShiftTemplate{
			ID:                 int64(offset + 1),
			SpotID:             1,
			StartDayOffset:     offset,
			EndDayOffset:       offset,
			StartTime:          "06:00:00",
			EndTime:            "14:00:00",
			RotationEmployeeID: int64Ptr(5),
		})
	}

	_, shifts, err := PublishAndProvision(state, templates)
	require.NoError(t, err)

	require.Len(t, shifts, domain.PublishLength)
	for i, shift := range shifts {
		date := domain.LocalDateOf(shift.StartDateTime)
		assert.Equal(t, firstUnplanned.AddDays(i), date)
		// provisioned shifts are planning input, not assignments
		assert.Nil(t, shift.EmployeeID)
		require.NotNil(t, shift.RotationEmployeeID)
		assert.Equal(t, int64(5), *shift.RotationEmployeeID)
	}
}

func TestPublishAndProvisionOffsetWrapsRotation(t *testing.T) {
	state := draftState()
	state.RotationLength = 5
	state.UnplannedRotationOffset = 3

	_, _, err := PublishAndProvision(state, nil)
	require.NoError(t, err)

	assert.Equal(t, (3+domain.PublishLength)%5, state.UnplannedRotationOffset)
}

func TestPublishAndProvisionBadTimeZone(t *testing.T) {
	state := draftState()
	state.TimeZone = "Not/AZone"

	_, _, err := PublishAndProvision(state, nil)
	require.Error(t, err)
}
