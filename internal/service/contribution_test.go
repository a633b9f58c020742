package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"harambee-backend/internal/domain"
	"harambee-backend/internal/repository/memory"
)

// fixture wires the full service graph over the in-memory store: one group
// with an admin, an accountability partner and a plain member.
type fixture struct {
	store         *memory.Store
	contributions ContributionService
	groups        GroupService
	projects      ProjectService
	ledger        LedgerService
	links         LinkService

	admin   *domain.User
	partner *domain.User
	member  *domain.User
	group   *domain.Group
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctx := context.Background()
	store := memory.NewStore()

	notifier := NewNotifier(store.Notifications, store.Groups, store.Members, store.Users, nil)
	ledger := NewLedgerService(store.Ledger)
	contributions := NewContributionService(store.Contributions, store.Members, store.Groups, ledger, notifier)
	groups := NewGroupService(store.Groups, store.Members, store.Users, notifier)
	projects := NewProjectService(store.Projects, store.Groups)
	links := NewLinkService(store.Groups, store.Projects, groups)

	f := &fixture{
		store:         store,
		contributions: contributions,
		groups:        groups,
		projects:      projects,
		ledger:        ledger,
		links:         links,
	}

	f.admin = f.createUser(t, "+254700000001", "Alice")
	f.partner = f.createUser(t, "+254700000002", "Peter")
	f.member = f.createUser(t, "+254700000003", "Mary")

	group, err := groups.CreateGroup(ctx, f.admin.ID, "Building Fund", "KES")
	require.NoError(t, err)
	f.group = group

	_, err = groups.JoinGroup(ctx, group.ID, f.partner.ID)
	require.NoError(t, err)
	require.NoError(t, groups.PromotePartner(ctx, f.admin.ID, group.ID, f.partner.ID))

	_, err = groups.JoinGroup(ctx, group.ID, f.member.ID)
	require.NoError(t, err)
	return f
}

func (f *fixture) createUser(t *testing.T, phone, name string) *domain.User {
	t.Helper()
	user := &domain.User{PhoneNumber: phone, Name: name, PhoneVerified: true}
	require.NoError(t, f.store.Users.Create(context.Background(), user))
	return user
}

func (f *fixture) submit(t *testing.T, userID int32, amountCents int64) *domain.Contribution {
	t.Helper()
	c, err := f.contributions.Submit(context.Background(), SubmitContributionInput{
		GroupID:     f.group.ID,
		UserID:      userID,
		AmountCents: amountCents,
		PaymentType: "mpesa",
	})
	require.NoError(t, err)
	return c
}

func (f *fixture) notificationsFor(t *testing.T, userID int32) []domain.Notification {
	t.Helper()
	notes, _, err := f.store.Notifications.List(context.Background(), userID, 100, 0)
	require.NoError(t, err)
	return notes
}

func (f *fixture) notificationsOfType(t *testing.T, userID int32, kind domain.NotificationType) []domain.Notification {
	t.Helper()
	var filtered []domain.Notification
	for _, n := range f.notificationsFor(t, userID) {
		if n.Type == kind {
			filtered = append(filtered, n)
		}
	}
	return filtered
}

func (f *fixture) memberTotal(t *testing.T, userID int32) int64 {
	t.Helper()
	m, err := f.store.Members.Get(context.Background(), f.group.ID, userID)
	require.NoError(t, err)
	return m.ContributedCents
}

func TestSubmitContribution(t *testing.T) {
	f := newFixture(t)

	c := f.submit(t, f.member.ID, 15000)
	assert.Equal(t, domain.ContributionStatusPending, c.Status)
	assert.NotZero(t, c.ID)

	// Nothing counts until the claim is confirmed.
	assert.Zero(t, f.memberTotal(t, f.member.ID))

	// Admin and partner are told about the claim; the contributor is not.
	adminNotes := f.notificationsOfType(t, f.admin.ID, domain.NotificationPaymentSubmitted)
	require.Len(t, adminNotes, 1)
	require.NotNil(t, adminNotes[0].ContributionID)
	assert.Equal(t, c.ID, *adminNotes[0].ContributionID)

	assert.Len(t, f.notificationsOfType(t, f.partner.ID, domain.NotificationPaymentSubmitted), 1)
	assert.Empty(t, f.notificationsFor(t, f.member.ID))
}

func TestSubmitByReviewerSkipsSelfNotification(t *testing.T) {
	f := newFixture(t)

	// A partner submitting their own claim is not asked to review it;
	// the admin still is.
	c := f.submit(t, f.partner.ID, 8000)

	adminNotes := f.notificationsOfType(t, f.admin.ID, domain.NotificationPaymentSubmitted)
	require.Len(t, adminNotes, 1)
	require.NotNil(t, adminNotes[0].ContributionID)
	assert.Equal(t, c.ID, *adminNotes[0].ContributionID)
	assert.Empty(t, f.notificationsOfType(t, f.partner.ID, domain.NotificationPaymentSubmitted))

	// The admin's own claim still reaches the partner for review.
	f.submit(t, f.admin.ID, 5000)
	assert.Len(t, f.notificationsOfType(t, f.partner.ID, domain.NotificationPaymentSubmitted), 1)
	assert.Len(t, f.notificationsOfType(t, f.admin.ID, domain.NotificationPaymentSubmitted), 1)
}

func TestSubmitContributionRejectsBadInput(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.contributions.Submit(ctx, SubmitContributionInput{GroupID: f.group.ID, UserID: f.member.ID, AmountCents: 0})
	assert.ErrorIs(t, err, ErrInvalidAmount)

	_, err = f.contributions.Submit(ctx, SubmitContributionInput{GroupID: f.group.ID, UserID: f.member.ID, AmountCents: -500})
	assert.ErrorIs(t, err, ErrInvalidAmount)

	_, err = f.contributions.Submit(ctx, SubmitContributionInput{GroupID: 9999, UserID: f.member.ID, AmountCents: 100})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestConfirmContribution(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	c := f.submit(t, f.member.ID, 15000)
	confirmed, err := f.contributions.Confirm(ctx, f.admin.ID, c.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.ContributionStatusConfirmed, confirmed.Status)

	// The confirmed amount lands on the member's running total.
	assert.Equal(t, int64(15000), f.memberTotal(t, f.member.ID))

	// The contributor hears about the outcome.
	notes := f.notificationsFor(t, f.member.ID)
	require.Len(t, notes, 1)
	assert.Equal(t, domain.NotificationPaymentConfirmed, notes[0].Type)
	assert.Contains(t, notes[0].Message, "KES 150.00")
}

func TestConfirmContributionExactlyOnce(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	c := f.submit(t, f.member.ID, 10000)
	_, err := f.contributions.Confirm(ctx, f.admin.ID, c.ID)
	require.NoError(t, err)

	// A duplicate confirm, from either reviewer, is a conflict and must not
	// double-count the amount.
	_, err = f.contributions.Confirm(ctx, f.admin.ID, c.ID)
	assert.ErrorIs(t, err, ErrNotPending)
	_, err = f.contributions.Confirm(ctx, f.partner.ID, c.ID)
	assert.ErrorIs(t, err, ErrNotPending)

	assert.Equal(t, int64(10000), f.memberTotal(t, f.member.ID))
}

func TestConfirmAppliesProjectTotal(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	project, err := f.projects.CreateProject(ctx, f.admin.ID, f.group.ID, "Roof Repair", nil, nil)
	require.NoError(t, err)

	c, err := f.contributions.Submit(ctx, SubmitContributionInput{
		GroupID:     f.group.ID,
		UserID:      f.member.ID,
		ProjectID:   &project.ID,
		AmountCents: 20000,
		PaymentType: "mpesa",
	})
	require.NoError(t, err)

	_, err = f.contributions.Confirm(ctx, f.admin.ID, c.ID)
	require.NoError(t, err)

	got, err := f.projects.GetProject(ctx, project.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(20000), got.CollectedCents)
	assert.Equal(t, int64(20000), f.memberTotal(t, f.member.ID))
}

func TestRejectContribution(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	c := f.submit(t, f.member.ID, 5000)
	rejected, err := f.contributions.Reject(ctx, f.partner.ID, c.ID, "no matching M-Pesa message")
	require.NoError(t, err)
	assert.Equal(t, domain.ContributionStatusRejected, rejected.Status)

	// Rejection never touches the totals.
	assert.Zero(t, f.memberTotal(t, f.member.ID))

	notes := f.notificationsFor(t, f.member.ID)
	require.Len(t, notes, 1)
	assert.Equal(t, domain.NotificationPaymentRejected, notes[0].Type)
	assert.Contains(t, notes[0].Message, "no matching M-Pesa message")

	// Terminal states are final in both directions.
	_, err = f.contributions.Confirm(ctx, f.admin.ID, c.ID)
	assert.ErrorIs(t, err, ErrNotPending)
	_, err = f.contributions.Reject(ctx, f.admin.ID, c.ID, "again")
	assert.ErrorIs(t, err, ErrNotPending)
}

func TestReviewAuthorization(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	c := f.submit(t, f.member.ID, 5000)

	// A plain member cannot decide claims, not even their own.
	_, err := f.contributions.Confirm(ctx, f.member.ID, c.ID)
	assert.ErrorIs(t, err, ErrUnauthorized)
	_, err = f.contributions.Reject(ctx, f.member.ID, c.ID, "")
	assert.ErrorIs(t, err, ErrUnauthorized)

	// Unknown contribution is a 404 class, not a conflict.
	_, err = f.contributions.Confirm(ctx, f.admin.ID, 9999)
	assert.ErrorIs(t, err, ErrNotFound)

	// The partner may confirm.
	_, err = f.contributions.Confirm(ctx, f.partner.ID, c.ID)
	assert.NoError(t, err)
}

func TestGroupSummary(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	c1 := f.submit(t, f.member.ID, 10000)
	f.submit(t, f.partner.ID, 7000) // stays pending
	_, err := f.contributions.Confirm(ctx, f.admin.ID, c1.ID)
	require.NoError(t, err)

	summary, err := f.ledger.GroupSummary(ctx, f.group.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(10000), summary.CollectedCents)
	assert.Equal(t, int32(1), summary.PendingCount)
	assert.Len(t, summary.Members, 3)
}
