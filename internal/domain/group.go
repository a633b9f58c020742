package domain

import "time"

type MemberRole string

const (
	MemberRoleAdmin   MemberRole = "ADMIN"
	MemberRolePartner MemberRole = "PARTNER" // accountability partner, max 2 per group
	MemberRoleMember  MemberRole = "MEMBER"
)

type MemberStatus string

const (
	MemberStatusActive  MemberStatus = "ACTIVE"
	MemberStatusRemoved MemberStatus = "REMOVED"
)

// MaxPartnersPerGroup caps the submission notification fan-out.
const MaxPartnersPerGroup = 2

type Group struct {
	ID                int32     `json:"id"`
	Name              string    `json:"name"`
	Slug              string    `json:"slug"`
	RegistrationToken string    `json:"registration_token"`
	AdminID           int32     `json:"admin_id"`
	Currency          string    `json:"currency"` // display tag only
	CreatedOn         time.Time `json:"created_on"`
}

// GroupMember is the single row per (group, user) pair. ContributedCents
// tracks that user's confirmed contributions in the group across all
// projects and is mutated only by the ledger aggregator.
type GroupMember struct {
	ID               int32        `json:"id"`
	GroupID          int32        `json:"group_id"`
	UserID           int32        `json:"user_id"`
	Role             MemberRole   `json:"role"`
	Status           MemberStatus `json:"status"`
	ContributedCents int64        `json:"contributed_cents"`
	JoinedOn         time.Time    `json:"joined_on"`
}
