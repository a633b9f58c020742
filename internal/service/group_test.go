package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"harambee-backend/internal/domain"
)

func TestCreateGroup(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	group := f.group
	assert.Equal(t, "building-fund", group.Slug)
	assert.NotEmpty(t, group.RegistrationToken)
	assert.Equal(t, f.admin.ID, group.AdminID)

	// The creator is enrolled as an active admin member.
	m, err := f.store.Members.Get(ctx, group.ID, f.admin.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.MemberRoleAdmin, m.Role)
	assert.Equal(t, domain.MemberStatusActive, m.Status)

	// A second group with the same name gets a distinct slug.
	other, err := f.groups.CreateGroup(ctx, f.admin.ID, "Building Fund", "KES")
	require.NoError(t, err)
	assert.NotEqual(t, group.Slug, other.Slug)
	assert.Contains(t, other.Slug, "building-fund-")
}

func TestJoinGroup(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	visitor := f.createUser(t, "+254700000010", "Grace")
	m, err := f.groups.JoinGroup(ctx, f.group.ID, visitor.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.MemberRoleMember, m.Role)

	// Joining again settles as membership, no duplicate row.
	_, err = f.groups.JoinGroup(ctx, f.group.ID, visitor.ID)
	assert.ErrorIs(t, err, ErrAlreadyMember)
	members, err := f.groups.ListMembers(ctx, f.group.ID)
	require.NoError(t, err)
	assert.Len(t, members, 4)

	// The admin is told about the new member.
	var joined int
	for _, n := range f.notificationsFor(t, f.admin.ID) {
		if n.Type == domain.NotificationMemberJoined {
			joined++
		}
	}
	assert.Equal(t, 1, joined)

	_, err = f.groups.JoinGroup(ctx, 9999, visitor.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestPromotePartnerLimit(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	// The fixture already holds one partner; a second succeeds.
	second := f.createUser(t, "+254700000011", "John")
	_, err := f.groups.JoinGroup(ctx, f.group.ID, second.ID)
	require.NoError(t, err)
	require.NoError(t, f.groups.PromotePartner(ctx, f.admin.ID, f.group.ID, second.ID))

	// Promoting an existing partner again is a no-op, not a limit hit.
	assert.NoError(t, f.groups.PromotePartner(ctx, f.admin.ID, f.group.ID, second.ID))

	// A third partner exceeds the cap.
	third := f.createUser(t, "+254700000012", "Esther")
	_, err = f.groups.JoinGroup(ctx, f.group.ID, third.ID)
	require.NoError(t, err)
	assert.ErrorIs(t, f.groups.PromotePartner(ctx, f.admin.ID, f.group.ID, third.ID), ErrPartnerLimit)

	// Only the admin may promote.
	assert.ErrorIs(t, f.groups.PromotePartner(ctx, f.partner.ID, f.group.ID, third.ID), ErrUnauthorized)
}

func TestRemoveMember(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	require.NoError(t, f.groups.RemoveMember(ctx, f.admin.ID, f.group.ID, f.member.ID, "left the community"))

	m, err := f.store.Members.Get(ctx, f.group.ID, f.member.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.MemberStatusRemoved, m.Status)

	// The removed member is told, with the stated reason.
	notes := f.notificationsFor(t, f.member.ID)
	require.Len(t, notes, 1)
	assert.Equal(t, domain.NotificationMemberRemoved, notes[0].Type)
	assert.Contains(t, notes[0].Message, "left the community")

	// Removing again is a settled no-op.
	assert.NoError(t, f.groups.RemoveMember(ctx, f.admin.ID, f.group.ID, f.member.ID, ""))

	// The admin cannot be removed, and non-admins cannot remove anyone.
	assert.ErrorIs(t, f.groups.RemoveMember(ctx, f.admin.ID, f.group.ID, f.admin.ID, ""), ErrUnauthorized)
	assert.ErrorIs(t, f.groups.RemoveMember(ctx, f.partner.ID, f.group.ID, f.admin.ID, ""), ErrUnauthorized)

	// A removed member who joins again is reactivated.
	_, err = f.groups.JoinGroup(ctx, f.group.ID, f.member.ID)
	require.NoError(t, err)
	m, err = f.store.Members.Get(ctx, f.group.ID, f.member.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.MemberStatusActive, m.Status)
}

func TestSlugify(t *testing.T) {
	assert.Equal(t, "building-fund-2026", slugify("Building Fund 2026"))
	assert.Equal(t, "roof-repair", slugify("  Roof -- Repair!  "))
	assert.Equal(t, "", slugify("!!!"))
}
