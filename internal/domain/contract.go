package domain

import "time"

// Contract caps how much an employee may be scheduled. A nil maximum
// means no cap on that period.
type Contract struct {
	ID                    int64     `json:"id"`
	TenantID              int64     `json:"tenantId"`
	Name                  string    `json:"name"`
	MaximumMinutesPerDay  *int      `json:"maximumMinutesPerDay"`
	MaximumMinutesPerWeek *int      `json:"maximumMinutesPerWeek"`
	MaximumMinutesPerMonth *int     `json:"maximumMinutesPerMonth"`
	MaximumMinutesPerYear *int      `json:"maximumMinutesPerYear"`
	CreatedAt             time.Time `json:"createdAt"`
	Version               int32     `json:"-"`
}

func (c *Contract) GetTenantID() int64 { return c.TenantID }
func (c *Contract) GetName() string    { return c.Name }
