package roster

import (
	"time"

	"github.com/rotaplan/roster-backend/internal/domain"
)

// TemplateIndex groups a tenant's shift templates by start day offset
// so the rolling window walk can look up a day's templates directly.
type TemplateIndex map[int][]*domain.ShiftTemplate

func BuildTemplateIndex(templates []*domain.ShiftTemplate) TemplateIndex {
	index := make(TemplateIndex)
	for _, tpl := range templates {
		index[tpl.StartDayOffset] = append(index[tpl.StartDayOffset], tpl)
	}
	return index
}

// ForSpot narrows the index to one spot, preserving template order.
func (ti TemplateIndex) ForSpot(spotID int64) TemplateIndex {
	narrowed := make(TemplateIndex)
	for offset, templates := range ti {
		for _, tpl := range templates {
			if tpl.SpotID == spotID {
				narrowed[offset] = append(narrowed[offset], tpl)
			}
		}
	}
	return narrowed
}

// StampShift materializes a template onto a concrete calendar date. An
// end day offset smaller than the start day offset means the shift ends
// on the next cycle day, never a day in the past, so the offset delta
// wraps modulo the rotation length. The returned shift always ends
// strictly after it starts.
func StampShift(tpl *domain.ShiftTemplate, date domain.LocalDate, rotationLength int, loc *time.Location, defaultToRotationEmployee bool) (*domain.Shift, error) {
	if rotationLength <= 0 {
		return nil, domain.NewIllegalState("The rotationLength (%d) must be positive.", rotationLength)
	}

	daysBetween := tpl.EndDayOffset - tpl.StartDayOffset
	if daysBetween < 0 {
		daysBetween += rotationLength
	}

	start, err := date.At(tpl.StartTime, loc)
	if err != nil {
		return nil, err
	}
	end, err := date.AddDays(daysBetween).At(tpl.EndTime, loc)
	if err != nil {
		return nil, err
	}
	if !end.After(start) {
		end = end.AddDate(0, 0, 1)
	}

	shift := &domain.Shift{
		TenantID:           tpl.TenantID,
		SpotID:             tpl.SpotID,
		StartDateTime:      start,
		EndDateTime:        end,
		RotationEmployeeID: tpl.RotationEmployeeID,
	}
	if defaultToRotationEmployee && tpl.RotationEmployeeID != nil {
		employeeID := *tpl.RotationEmployeeID
		shift.EmployeeID = &employeeID
	}

	return shift, nil
}

// StampRange walks days consecutive dates starting at from, stamping
// every template whose start day offset matches the current position in
// the rotation cycle, and advancing the offset by exactly one per day.
// It returns the stamped shifts and the offset the walk ended on, so a
// later walk (bulk generation handing over to publish-and-provision)
// continues the cycle without skips.
func StampRange(index TemplateIndex, from domain.LocalDate, days, startOffset, rotationLength int, loc *time.Location, defaultToRotationEmployee bool) ([]*domain.Shift, int, error) {
	if rotationLength <= 0 {
		return nil, 0, domain.NewIllegalState("The rotationLength (%d) must be positive.", rotationLength)
	}

	offset := ((startOffset % rotationLength) + rotationLength) % rotationLength
	shifts := make([]*domain.Shift, 0)

	for i := 0; i < days; i++ {
		date := from.AddDays(i)
		for _, tpl := range index[offset] {
			shift, err := StampShift(tpl, date, rotationLength, loc, defaultToRotationEmployee)
			if err != nil {
				return nil, 0, err
			}
			shifts = append(shifts, shift)
		}
		offset = (offset + 1) % rotationLength
	}

	return shifts, offset, nil
}
