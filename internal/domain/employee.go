package domain

import (
	"fmt"
	"time"
)

type Employee struct {
	ID         int64     `json:"id"`
	TenantID   int64     `json:"tenantId"`
	Name       string    `json:"name"`
	ContractID int64     `json:"contractId"`
	SkillIDs   []int64   `json:"skillIDs"`
	CreatedAt  time.Time `json:"createdAt"`
	Version    int32     `json:"-"`
}

func (e *Employee) GetTenantID() int64 { return e.TenantID }
func (e *Employee) GetName() string    { return e.Name }

func (e *Employee) HasSkill(skillID int64) bool {
	for _, id := range e.SkillIDs {
		if id == skillID {
			return true
		}
	}
	return false
}

type AvailabilityState string

const (
	AvailabilityDesired     AvailabilityState = "DESIRED"
	AvailabilityUndesired   AvailabilityState = "UNDESIRED"
	AvailabilityUnavailable AvailabilityState = "UNAVAILABLE"
)

// AvailabilityStates in the order the generator cycles through them.
var AvailabilityStates = []AvailabilityState{
	AvailabilityDesired,
	AvailabilityUndesired,
	AvailabilityUnavailable,
}

// EmployeeAvailability covers one date with a time-of-day window. An
// EndTime at or before StartTime wraps to the next day, so a full day
// is 00:00:00 to 00:00:00.
type EmployeeAvailability struct {
	ID         int64             `json:"id"`
	TenantID   int64             `json:"tenantId"`
	EmployeeID int64             `json:"employeeId"`
	Date       LocalDate         `json:"date"`
	StartTime  string            `json:"startTime"`
	EndTime    string            `json:"endTime"`
	State      AvailabilityState `json:"state"`
	CreatedAt  time.Time         `json:"createdAt"`
	Version    int32             `json:"-"`
}

func (a *EmployeeAvailability) GetTenantID() int64 { return a.TenantID }

func (a *EmployeeAvailability) GetName() string {
	return fmt.Sprintf("availability %d", a.ID)
}

// Window resolves the availability to concrete zone-aware datetimes.
func (a *EmployeeAvailability) Window(loc *time.Location) (start, end time.Time, err error) {
	start, err = a.Date.At(a.StartTime, loc)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	end, err = a.Date.At(a.EndTime, loc)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	if !end.After(start) {
		end = end.AddDate(0, 0, 1)
	}
	return start, end, nil
}
