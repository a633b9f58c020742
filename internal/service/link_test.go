package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveLinkByToken(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	// Anonymous visitor: preview only, no enrollment.
	resolved, err := f.links.Resolve(ctx, f.group.RegistrationToken, 0)
	require.NoError(t, err)
	assert.Equal(t, f.group.ID, resolved.Group.ID)
	assert.False(t, resolved.IsMember)
	assert.Nil(t, resolved.Project)
}

func TestResolveLinkBySlug(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	resolved, err := f.links.Resolve(ctx, f.group.Slug, 0)
	require.NoError(t, err)
	assert.Equal(t, f.group.ID, resolved.Group.ID)
}

func TestResolveLinkAutoJoins(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	visitor := f.createUser(t, "+254700000020", "Naomi")
	resolved, err := f.links.Resolve(ctx, f.group.Slug, visitor.ID)
	require.NoError(t, err)
	assert.True(t, resolved.IsMember)

	// Membership actually exists now, and resolving again is idempotent.
	_, err = f.store.Members.Get(ctx, f.group.ID, visitor.ID)
	require.NoError(t, err)
	resolved, err = f.links.Resolve(ctx, f.group.Slug, visitor.ID)
	require.NoError(t, err)
	assert.True(t, resolved.IsMember)

	members, err := f.groups.ListMembers(ctx, f.group.ID)
	require.NoError(t, err)
	assert.Len(t, members, 4)
}

func TestResolveLinkWithProject(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	project, err := f.projects.CreateProject(ctx, f.admin.ID, f.group.ID, "Roof Repair", nil, nil)
	require.NoError(t, err)

	resolved, err := f.links.Resolve(ctx, f.group.Slug+"/"+project.Slug, 0)
	require.NoError(t, err)
	require.NotNil(t, resolved.Project)
	assert.Equal(t, project.ID, resolved.Project.ID)
	assert.Len(t, resolved.Projects, 1)

	_, err = f.links.Resolve(ctx, f.group.Slug+"/no-such-project", 0)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestResolveLinkUnknownIdentifier(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.links.Resolve(ctx, "no-such-group", 0)
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = f.links.Resolve(ctx, "", 0)
	assert.ErrorIs(t, err, ErrNotFound)
}
