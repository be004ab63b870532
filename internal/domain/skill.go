package domain

import "time"

type Skill struct {
	ID        int64     `json:"id"`
	TenantID  int64     `json:"tenantId"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"createdAt"`
	Version   int32     `json:"-"`
}

func (s *Skill) GetTenantID() int64 { return s.TenantID }
func (s *Skill) GetName() string    { return s.Name }
