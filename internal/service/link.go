package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"harambee-backend/internal/domain"
	"harambee-backend/internal/logger"
	"harambee-backend/internal/repository"
)

type linkService struct {
	groupRepo   repository.GroupRepository
	projectRepo repository.ProjectRepository
	groups      GroupService
}

func NewLinkService(groupRepo repository.GroupRepository, projectRepo repository.ProjectRepository, groups GroupService) LinkService {
	return &linkService{
		groupRepo:   groupRepo,
		projectRepo: projectRepo,
		groups:      groups,
	}
}

// Resolve follows a shareable link identifier to its group. The identifier
// is tried as a registration token first, then as a group slug; a
// "group-slug/project-slug" pair additionally pins one project. An unknown
// identifier of any shape is ErrNotFound: callers cannot distinguish token
// lookups from slug lookups, so tokens stay unguessable.
func (s *linkService) Resolve(ctx context.Context, identifier string, userID int32) (*ResolvedLink, error) {
	identifier = strings.Trim(strings.TrimSpace(identifier), "/")
	if identifier == "" {
		return nil, ErrNotFound
	}

	groupPart, projectSlug, _ := strings.Cut(identifier, "/")
	group, err := s.lookupGroup(ctx, groupPart)
	if err != nil {
		return nil, err
	}

	projects, err := s.projectRepo.ListByGroup(ctx, group.ID)
	if err != nil {
		return nil, fmt.Errorf("listing projects for group %d: %w", group.ID, err)
	}

	resolved := &ResolvedLink{
		Group:    group,
		Projects: projects,
	}
	if projectSlug != "" {
		project, err := s.projectRepo.GetBySlug(ctx, group.ID, projectSlug)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return nil, ErrNotFound
			}
			return nil, err
		}
		resolved.Project = project
		// Put the linked project first so clients can render it without
		// searching the list.
		for i := range resolved.Projects {
			if resolved.Projects[i].ID == project.ID {
				resolved.Projects[0], resolved.Projects[i] = resolved.Projects[i], resolved.Projects[0]
				break
			}
		}
	}

	if userID != 0 {
		resolved.IsMember = s.autoJoin(ctx, group.ID, userID)
	}
	return resolved, nil
}

func (s *linkService) lookupGroup(ctx context.Context, identifier string) (*domain.Group, error) {
	group, err := s.groupRepo.GetByRegistrationToken(ctx, identifier)
	if err == nil {
		return group, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}
	group, err = s.groupRepo.GetBySlug(ctx, identifier)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return group, nil
}

// autoJoin enrolls the visitor so they can contribute immediately after
// following the link. Joining a group twice settles as membership; any
// other failure leaves the visitor a non-member without failing the
// resolution itself.
func (s *linkService) autoJoin(ctx context.Context, groupID, userID int32) bool {
	_, err := s.groups.JoinGroup(ctx, groupID, userID)
	if err == nil || errors.Is(err, ErrAlreadyMember) {
		return true
	}
	logger.Warn("Auto-join on link resolution failed",
		"group_id", groupID,
		"user_id", userID,
		"error", err)
	return false
}
