package domain

import (
	"time"
)

type Tenant struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"createdAt"`
	Version   int32     `json:"-"`
}

func (t *Tenant) GetTenantID() int64 { return t.ID }
func (t *Tenant) GetName() string    { return t.Name }

// PublishLength is the number of days each publish-and-provision call
// advances the draft boundary. Read-only.
const PublishLength = 7

// RosterState is the per-tenant rolling window over historic, published
// and draft dates. Invariant:
//
//	LastHistoricDate < FirstDraftDate <= FirstUnplannedDate
//
// It is mutated only by roster generation and PublishAndProvision.
type RosterState struct {
	ID                      int64     `json:"id"`
	TenantID                int64     `json:"tenantId"`
	PublishNotice           int       `json:"publishNotice"`
	FirstDraftDate          LocalDate `json:"firstDraftDate"`
	PublishLength           int       `json:"publishLength"`
	DraftLength             int       `json:"draftLength"`
	UnplannedRotationOffset int       `json:"unplannedRotationOffset"`
	RotationLength          int       `json:"rotationLength"`
	LastHistoricDate        LocalDate `json:"lastHistoricDate"`
	TimeZone                string    `json:"timeZone"`
	Version                 int32     `json:"-"`
}

func (rs *RosterState) GetTenantID() int64 { return rs.TenantID }
func (rs *RosterState) GetName() string    { return "rosterState" }

// FirstUnplannedDate is the first date with no concrete shifts yet.
func (rs *RosterState) FirstUnplannedDate() LocalDate {
	return rs.FirstDraftDate.AddDays(rs.DraftLength)
}

// FirstPublishedDate is the first date of the published window.
func (rs *RosterState) FirstPublishedDate() LocalDate {
	return rs.LastHistoricDate.AddDays(1)
}

func (rs *RosterState) IsHistoric(date LocalDate) bool {
	return !date.After(rs.LastHistoricDate)
}

func (rs *RosterState) IsDraft(date LocalDate) bool {
	return !date.Before(rs.FirstDraftDate) && date.Before(rs.FirstUnplannedDate())
}

func (rs *RosterState) IsPublished(date LocalDate) bool {
	return date.After(rs.LastHistoricDate) && date.Before(rs.FirstDraftDate)
}

func (rs *RosterState) Location() (*time.Location, error) {
	return time.LoadLocation(rs.TimeZone)
}
