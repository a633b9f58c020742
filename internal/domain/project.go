package domain

import "time"

type ProjectStatus string

const (
	ProjectStatusActive ProjectStatus = "ACTIVE"
	ProjectStatusClosed ProjectStatus = "CLOSED"
)

// Project is a named collection goal inside a group. CollectedCents equals
// the sum of confirmed contribution amounts referencing the project and is
// mutated only by the ledger aggregator.
type Project struct {
	ID             int32         `json:"id"`
	GroupID        int32         `json:"group_id"`
	Name           string        `json:"name"`
	Slug           string        `json:"slug"`
	TargetCents    *int64        `json:"target_cents,omitempty"` // nil = open-ended collection
	CollectedCents int64         `json:"collected_cents"`
	Deadline       *time.Time    `json:"deadline,omitempty"`
	Status         ProjectStatus `json:"status"`
	CreatedOn      time.Time     `json:"created_on"`
}
