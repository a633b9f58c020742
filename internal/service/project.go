package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"harambee-backend/internal/domain"
	"harambee-backend/internal/repository"
)

type projectService struct {
	projectRepo repository.ProjectRepository
	groupRepo   repository.GroupRepository
}

func NewProjectService(projectRepo repository.ProjectRepository, groupRepo repository.GroupRepository) ProjectService {
	return &projectService{
		projectRepo: projectRepo,
		groupRepo:   groupRepo,
	}
}

func (s *projectService) CreateProject(ctx context.Context, adminID, groupID int32, name string, targetCents *int64, deadline *time.Time) (*domain.Project, error) {
	if name == "" {
		return nil, fmt.Errorf("%w: project name is required", ErrValidation)
	}
	if targetCents != nil && *targetCents <= 0 {
		return nil, ErrInvalidAmount
	}

	group, err := s.groupRepo.GetByID(ctx, groupID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if group.AdminID != adminID {
		return nil, ErrUnauthorized
	}

	slug := uniqueSlug(slugify(name), func(candidate string) bool {
		_, err := s.projectRepo.GetBySlug(ctx, groupID, candidate)
		return err == nil
	})

	project := &domain.Project{
		GroupID:     groupID,
		Name:        name,
		Slug:        slug,
		TargetCents: targetCents,
		Deadline:    deadline,
		Status:      domain.ProjectStatusActive,
	}
	if err := s.projectRepo.Create(ctx, project); err != nil {
		return nil, fmt.Errorf("creating project: %w", err)
	}
	return project, nil
}

func (s *projectService) GetProject(ctx context.Context, id int32) (*domain.Project, error) {
	project, err := s.projectRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return project, nil
}

func (s *projectService) ListByGroup(ctx context.Context, groupID int32) ([]domain.Project, error) {
	return s.projectRepo.ListByGroup(ctx, groupID)
}
