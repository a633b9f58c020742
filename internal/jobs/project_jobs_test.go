package jobs

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"harambee-backend/internal/config"
	"harambee-backend/internal/domain"
	"harambee-backend/internal/repository/memory"
	"harambee-backend/internal/service"
)

func TestSendProjectDeadlineReminders(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()

	admin := &domain.User{PhoneNumber: "+254700000001", Name: "Alice"}
	require.NoError(t, store.Users.Create(ctx, admin))
	member := &domain.User{PhoneNumber: "+254700000002", Name: "Mary"}
	require.NoError(t, store.Users.Create(ctx, member))
	removed := &domain.User{PhoneNumber: "+254700000003", Name: "Ruth"}
	require.NoError(t, store.Users.Create(ctx, removed))

	group := &domain.Group{Name: "Building Fund", Slug: "building-fund", AdminID: admin.ID}
	require.NoError(t, store.Groups.Create(ctx, group))
	for _, m := range []*domain.GroupMember{
		{GroupID: group.ID, UserID: admin.ID, Role: domain.MemberRoleAdmin, Status: domain.MemberStatusActive},
		{GroupID: group.ID, UserID: member.ID, Role: domain.MemberRoleMember, Status: domain.MemberStatusActive},
		{GroupID: group.ID, UserID: removed.ID, Role: domain.MemberRoleMember, Status: domain.MemberStatusRemoved},
	} {
		require.NoError(t, store.Members.Add(ctx, m))
	}

	soon := time.Now().Add(12 * time.Hour)
	far := time.Now().Add(30 * 24 * time.Hour)
	closing := &domain.Project{GroupID: group.ID, Name: "Roof Repair", Slug: "roof-repair", Deadline: &soon, Status: domain.ProjectStatusActive}
	require.NoError(t, store.Projects.Create(ctx, closing))
	require.NoError(t, store.Projects.Create(ctx, &domain.Project{
		GroupID: group.ID, Name: "Well", Slug: "well", Deadline: &far, Status: domain.ProjectStatusActive,
	}))

	notifier := service.NewNotifier(store.Notifications, store.Groups, store.Members, store.Users, nil)
	runner := NewJobRunner(
		&Repositories{Projects: store.Projects, Members: store.Members},
		&Services{Notifier: notifier},
		&config.Config{},
	)

	runner.SendProjectDeadlineReminders()

	// Active members hear about the closing project, nothing else.
	for _, userID := range []int32{admin.ID, member.ID} {
		notes, _, err := store.Notifications.List(ctx, userID, 10, 0)
		require.NoError(t, err)
		require.Len(t, notes, 1)
		assert.Equal(t, domain.NotificationProjectDeadlineSoon, notes[0].Type)
		require.NotNil(t, notes[0].ProjectID)
		assert.Equal(t, closing.ID, *notes[0].ProjectID)
	}

	notes, _, err := store.Notifications.List(ctx, removed.ID, 10, 0)
	require.NoError(t, err)
	assert.Empty(t, notes)
}
