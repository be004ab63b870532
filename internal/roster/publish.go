package roster

import (
	"github.com/rotaplan/roster-backend/internal/domain"
)

// PublishAndProvision advances the published/draft boundary by the
// publish length and materializes concrete shifts from the rotation
// templates for the newly revealed unplanned window. The new shifts are
// left unassigned: the draft period requires explicit planning, so the
// rotation employee is recorded on the shift but not pre-assigned.
//
// The roster state is mutated in place; the caller persists both the
// state and the returned shifts.
func PublishAndProvision(state *domain.RosterState, templates []*domain.ShiftTemplate) (domain.PublishResult, []*domain.Shift, error) {
	loc, err := state.Location()
	if err != nil {
		return domain.PublishResult{}, nil, err
	}

	publishedFrom := state.FirstDraftDate
	publishedTo := publishedFrom.AddDays(state.PublishLength)
	provisionFrom := state.FirstUnplannedDate()

	index := BuildTemplateIndex(templates)
	shifts, endOffset, err := StampRange(index, provisionFrom, state.PublishLength,
		state.UnplannedRotationOffset, state.RotationLength, loc, false)
	if err != nil {
		return domain.PublishResult{}, nil, err
	}

	state.FirstDraftDate = publishedTo
	state.UnplannedRotationOffset = endOffset

	return domain.PublishResult{
		PublishedFromDate: publishedFrom,
		PublishedToDate:   publishedTo,
	}, shifts, nil
}
