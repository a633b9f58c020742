package memory

import (
	"context"
	"database/sql"
	"time"

	"harambee-backend/internal/domain"
)

type projectRepo struct {
	d *data
}

func (r *projectRepo) Create(ctx context.Context, project *domain.Project) error {
	r.d.mu.Lock()
	defer r.d.mu.Unlock()
	project.ID = r.d.id()
	project.CreatedOn = time.Now()
	cp := *project
	r.d.projects[project.ID] = &cp
	return nil
}

func (r *projectRepo) GetByID(ctx context.Context, id int32) (*domain.Project, error) {
	r.d.mu.Lock()
	defer r.d.mu.Unlock()
	p, ok := r.d.projects[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	cp := *p
	return &cp, nil
}

func (r *projectRepo) GetBySlug(ctx context.Context, groupID int32, slug string) (*domain.Project, error) {
	r.d.mu.Lock()
	defer r.d.mu.Unlock()
	for _, p := range r.d.projects {
		if p.GroupID == groupID && p.Slug == slug {
			cp := *p
			return &cp, nil
		}
	}
	return nil, sql.ErrNoRows
}

func (r *projectRepo) ListByGroup(ctx context.Context, groupID int32) ([]domain.Project, error) {
	r.d.mu.Lock()
	defer r.d.mu.Unlock()
	var projects []domain.Project
	for id := int32(1); id <= r.d.nextID; id++ {
		if p, ok := r.d.projects[id]; ok && p.GroupID == groupID {
			projects = append(projects, *p)
		}
	}
	return projects, nil
}

func (r *projectRepo) ListDueBefore(ctx context.Context, deadline time.Time) ([]domain.Project, error) {
	r.d.mu.Lock()
	defer r.d.mu.Unlock()
	now := time.Now()
	var projects []domain.Project
	for id := int32(1); id <= r.d.nextID; id++ {
		p, ok := r.d.projects[id]
		if ok && p.Status == domain.ProjectStatusActive && p.Deadline != nil &&
			p.Deadline.After(now) && !p.Deadline.After(deadline) {
			projects = append(projects, *p)
		}
	}
	return projects, nil
}

func (r *projectRepo) Update(ctx context.Context, project *domain.Project) error {
	r.d.mu.Lock()
	defer r.d.mu.Unlock()
	existing, ok := r.d.projects[project.ID]
	if !ok {
		return sql.ErrNoRows
	}
	// CollectedCents belongs to the ledger; keep the stored value.
	project.CollectedCents = existing.CollectedCents
	cp := *project
	r.d.projects[project.ID] = &cp
	return nil
}
