package repository

import (
	"context"
	"time"

	"harambee-backend/internal/domain"
)

type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id int32) (*domain.User, error)
	GetByPhone(ctx context.Context, phone string) (*domain.User, error)
	Update(ctx context.Context, user *domain.User) error
}

type GroupRepository interface {
	Create(ctx context.Context, group *domain.Group) error
	GetByID(ctx context.Context, id int32) (*domain.Group, error)
	GetByRegistrationToken(ctx context.Context, token string) (*domain.Group, error)
	GetBySlug(ctx context.Context, slug string) (*domain.Group, error)
	Update(ctx context.Context, group *domain.Group) error
}

type MemberRepository interface {
	// Add creates the single (group, user) row; a duplicate pair is a
	// uniqueness violation surfaced as an error.
	Add(ctx context.Context, member *domain.GroupMember) error
	Get(ctx context.Context, groupID, userID int32) (*domain.GroupMember, error)
	ListByGroup(ctx context.Context, groupID int32) ([]domain.GroupMember, error)
	ListPartners(ctx context.Context, groupID int32) ([]domain.GroupMember, error)
	CountPartners(ctx context.Context, groupID int32) (int32, error)
	UpdateRole(ctx context.Context, groupID, userID int32, role domain.MemberRole) error
	UpdateStatus(ctx context.Context, groupID, userID int32, status domain.MemberStatus) error
}

type ProjectRepository interface {
	Create(ctx context.Context, project *domain.Project) error
	GetByID(ctx context.Context, id int32) (*domain.Project, error)
	GetBySlug(ctx context.Context, groupID int32, slug string) (*domain.Project, error)
	ListByGroup(ctx context.Context, groupID int32) ([]domain.Project, error)
	ListDueBefore(ctx context.Context, deadline time.Time) ([]domain.Project, error)
	Update(ctx context.Context, project *domain.Project) error
}

type ContributionRepository interface {
	Create(ctx context.Context, c *domain.Contribution) error
	GetByID(ctx context.Context, id int32) (*domain.Contribution, error)
	// UpdateStatusIfPending is the exactly-once guard of the state machine:
	// a conditional update that flips status only while it is still
	// PENDING, reporting false (not an error) when zero rows matched.
	UpdateStatusIfPending(ctx context.Context, id int32, status domain.ContributionStatus) (bool, error)
	ListByGroup(ctx context.Context, groupID int32, status domain.ContributionStatus, page, pageSize int32) ([]domain.Contribution, int32, error)
	ListByMember(ctx context.Context, groupID, userID int32, page, pageSize int32) ([]domain.Contribution, int32, error)
	ListByProject(ctx context.Context, projectID int32, page, pageSize int32) ([]domain.Contribution, int32, error)
}

type LedgerRepository interface {
	// ApplyConfirmed atomically increments the project's collected total
	// (when projectID is set) and the member's contributed total. A missing
	// project or member row is skipped, never an error.
	ApplyConfirmed(ctx context.Context, groupID, userID int32, projectID *int32, amountCents int64) error
	GetGroupSummary(ctx context.Context, groupID int32) (*GroupSummary, error)
}

// GroupSummary aggregates a group's ledger for display.
type GroupSummary struct {
	GroupID        int32                `json:"group_id"`
	CollectedCents int64                `json:"collected_cents"`
	PendingCount   int32                `json:"pending_count"`
	Projects       []domain.Project     `json:"projects"`
	Members        []domain.GroupMember `json:"members"`
}

type NotificationRepository interface {
	Create(ctx context.Context, note *domain.Notification) error
	List(ctx context.Context, userID int32, limit, offset int32) ([]domain.Notification, int32, error)
	MarkAsRead(ctx context.Context, id, userID int32) error
	Delete(ctx context.Context, id, userID int32) error
}

type OTPRepository interface {
	// Create inserts a fresh challenge after removing every prior record
	// for the same phone number.
	Create(ctx context.Context, otp *domain.OTPVerification) error
	GetActiveByPhone(ctx context.Context, phone string, now time.Time) (*domain.OTPVerification, error)
	IncrementAttempts(ctx context.Context, id int32) error
	MarkVerified(ctx context.Context, id int32) error
	HasVerified(ctx context.Context, phone string) (bool, error)
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
}
