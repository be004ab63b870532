package domain

import (
	"fmt"
	"time"
)

// ShiftTemplate is one calendar-agnostic entry in a tenant's rotation.
// Day offsets count from the start of the rotation cycle and wrap
// modulo the rotation length.
type ShiftTemplate struct {
	ID                 int64     `json:"id"`
	TenantID           int64     `json:"tenantId"`
	SpotID             int64     `json:"spotId"`
	StartDayOffset     int       `json:"startDayOffset"`
	EndDayOffset       int       `json:"endDayOffset"`
	StartTime          string    `json:"startTime"`
	EndTime            string    `json:"endTime"`
	RotationEmployeeID *int64    `json:"rotationEmployeeId"`
	CreatedAt          time.Time `json:"createdAt"`
	Version            int32     `json:"-"`
}

func (t *ShiftTemplate) GetTenantID() int64 { return t.TenantID }

func (t *ShiftTemplate) GetName() string {
	return fmt.Sprintf("shiftTemplate %d", t.ID)
}

// Shift is a concrete, dated instantiation of a template, or a manually
// created one.
type Shift struct {
	ID                 int64     `json:"id"`
	TenantID           int64     `json:"tenantId"`
	SpotID             int64     `json:"spotId"`
	StartDateTime      time.Time `json:"startDateTime"`
	EndDateTime        time.Time `json:"endDateTime"`
	EmployeeID         *int64    `json:"employeeId"`
	RotationEmployeeID *int64    `json:"rotationEmployeeId"`
	PinnedByUser       bool      `json:"pinnedByUser"`
	CreatedAt          time.Time `json:"createdAt"`
	Version            int32     `json:"-"`
}

func (s *Shift) GetTenantID() int64 { return s.TenantID }

func (s *Shift) GetName() string {
	return fmt.Sprintf("shift %d", s.ID)
}

func (s *Shift) DurationMinutes() int {
	return int(s.EndDateTime.Sub(s.StartDateTime) / time.Minute)
}

// Overlaps reports whether two shifts share any span of time.
func (s *Shift) Overlaps(other *Shift) bool {
	return s.StartDateTime.Before(other.EndDateTime) && other.StartDateTime.Before(s.EndDateTime)
}
