package service

import (
	"context"
	"errors"
	"time"

	"harambee-backend/internal/domain"
	"harambee-backend/internal/repository"
)

var (
	// ErrNotFound is the 404 class: the referenced record never existed
	// (or is not visible to the caller).
	ErrNotFound = errors.New("record not found")
	// ErrNotPending is the conflict class: the contribution exists but has
	// already been confirmed or rejected. Distinct from ErrNotFound so a
	// retrying client can tell "already handled" from "never existed".
	ErrNotPending = errors.New("contribution is not pending")

	// ErrValidation is the 400 class: the request was understood but its
	// fields fail shape checks. Wrapped with the specific complaint.
	ErrValidation = errors.New("invalid request")

	ErrInvalidAmount      = errors.New("amount must be positive")
	ErrUnauthorized       = errors.New("not allowed to perform this action")
	ErrAlreadyMember      = errors.New("user is already a member of this group")
	ErrPartnerLimit       = errors.New("group already has the maximum number of accountability partners")
	ErrPhoneNotVerified   = errors.New("phone number has not been verified")
	ErrPhoneRegistered    = errors.New("phone number is already registered")
	ErrInvalidCredentials = errors.New("invalid phone number or password")
)

// SubmitContributionInput carries a member's payment claim.
type SubmitContributionInput struct {
	GroupID        int32
	UserID         int32
	ProjectID      *int32
	AmountCents    int64
	PaymentType    string
	TransactionRef string
	ProofOfPayment string
	Notes          string
}

type ContributionService interface {
	Submit(ctx context.Context, input SubmitContributionInput) (*domain.Contribution, error)
	Confirm(ctx context.Context, reviewerID, contributionID int32) (*domain.Contribution, error)
	Reject(ctx context.Context, reviewerID, contributionID int32, reason string) (*domain.Contribution, error)
	Get(ctx context.Context, id int32) (*domain.Contribution, error)
	ListByGroup(ctx context.Context, groupID int32, status domain.ContributionStatus, page, pageSize int32) ([]domain.Contribution, int32, error)
	ListByMember(ctx context.Context, groupID, userID int32, page, pageSize int32) ([]domain.Contribution, int32, error)
	ListByProject(ctx context.Context, projectID int32, page, pageSize int32) ([]domain.Contribution, int32, error)
}

type LedgerService interface {
	// ApplyConfirmedAmount is called exactly once per confirmation, by the
	// contribution state machine, at the moment the status flip succeeds.
	ApplyConfirmedAmount(ctx context.Context, groupID, userID int32, projectID *int32, amountCents int64) error
	GroupSummary(ctx context.Context, groupID int32) (*repository.GroupSummary, error)
}

// Notifier fans one ledger event out to its recipients. All methods are
// best-effort: failures are logged, never returned, so a notification
// problem can never roll back the state transition that caused it.
type Notifier interface {
	ContributionSubmitted(ctx context.Context, c *domain.Contribution)
	ContributionConfirmed(ctx context.Context, c *domain.Contribution)
	ContributionRejected(ctx context.Context, c *domain.Contribution, reason string)
	MemberJoined(ctx context.Context, group *domain.Group, user *domain.User)
	MemberRemoved(ctx context.Context, group *domain.Group, userID int32, reason string)
	ProjectDeadlineSoon(ctx context.Context, project *domain.Project, userID int32)
}

type NotificationService interface {
	List(ctx context.Context, userID int32, page, pageSize int32) ([]domain.Notification, int32, error)
	MarkAsRead(ctx context.Context, userID, notificationID int32) error
	Dismiss(ctx context.Context, userID, notificationID int32) error
}

type OTPService interface {
	Issue(ctx context.Context, phone string) (*domain.OTPVerification, string, error)
	Verify(ctx context.Context, phone, code string) (bool, error)
	SweepExpired(ctx context.Context) (int64, error)
}

// OTPSender delivers an issued code out of band. Delivery is best-effort;
// a send failure never fails the issue operation.
type OTPSender interface {
	SendOTP(ctx context.Context, phone, code string) error
}

type AuthService interface {
	Register(ctx context.Context, phone, name, email, password string) (*domain.User, string, string, error)
	Login(ctx context.Context, phone, password string) (string, string, error)
	Refresh(ctx context.Context, refreshToken string) (string, string, error)
}

type GroupService interface {
	CreateGroup(ctx context.Context, adminID int32, name, currency string) (*domain.Group, error)
	GetGroup(ctx context.Context, id int32) (*domain.Group, error)
	JoinGroup(ctx context.Context, groupID, userID int32) (*domain.GroupMember, error)
	ListMembers(ctx context.Context, groupID int32) ([]domain.GroupMember, error)
	PromotePartner(ctx context.Context, adminID, groupID, userID int32) error
	RemoveMember(ctx context.Context, adminID, groupID, userID int32, reason string) error
}

type ProjectService interface {
	CreateProject(ctx context.Context, adminID, groupID int32, name string, targetCents *int64, deadline *time.Time) (*domain.Project, error)
	GetProject(ctx context.Context, id int32) (*domain.Project, error)
	ListByGroup(ctx context.Context, groupID int32) ([]domain.Project, error)
}

// ResolvedLink is the result of following a shareable identifier.
type ResolvedLink struct {
	Group    *domain.Group    `json:"group"`
	Projects []domain.Project `json:"projects"`
	Project  *domain.Project  `json:"project,omitempty"` // set for group/project pair links
	IsMember bool             `json:"is_member"`
}

type LinkService interface {
	// Resolve maps a registration token, custom group slug, or
	// "groupSlug/projectSlug" pair to a group and its projects. When
	// userID is non-zero the visitor is silently enrolled as a member;
	// enrollment failure is reported as IsMember=false, never as an error.
	Resolve(ctx context.Context, identifier string, userID int32) (*ResolvedLink, error)
}

type EmailService interface {
	SendContributionSubmitted(ctx context.Context, to, memberName, groupName, amount string) error
	SendContributionReviewed(ctx context.Context, to, groupName, amount string, confirmed bool, reason string) error
}
