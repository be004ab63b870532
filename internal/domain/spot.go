package domain

import "time"

// Spot is a work position or location that needs staffing.
type Spot struct {
	ID               int64     `json:"id"`
	TenantID         int64     `json:"tenantId"`
	Name             string    `json:"name"`
	RequiredSkillIDs []int64   `json:"requiredSkillIDs"`
	CreatedAt        time.Time `json:"createdAt"`
	Version          int32     `json:"-"`
}

func (s *Spot) GetTenantID() int64 { return s.TenantID }
func (s *Spot) GetName() string    { return s.Name }
