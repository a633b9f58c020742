package memory

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"harambee-backend/internal/domain"
)

type groupRepo struct {
	d *data
}

func (r *groupRepo) Create(ctx context.Context, group *domain.Group) error {
	r.d.mu.Lock()
	defer r.d.mu.Unlock()
	for _, g := range r.d.groups {
		if g.Slug == group.Slug {
			return fmt.Errorf("group slug %q already taken", group.Slug)
		}
	}
	group.ID = r.d.id()
	group.CreatedOn = time.Now()
	cp := *group
	r.d.groups[group.ID] = &cp
	return nil
}

func (r *groupRepo) GetByID(ctx context.Context, id int32) (*domain.Group, error) {
	r.d.mu.Lock()
	defer r.d.mu.Unlock()
	g, ok := r.d.groups[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	cp := *g
	return &cp, nil
}

func (r *groupRepo) GetByRegistrationToken(ctx context.Context, token string) (*domain.Group, error) {
	r.d.mu.Lock()
	defer r.d.mu.Unlock()
	for _, g := range r.d.groups {
		if g.RegistrationToken == token {
			cp := *g
			return &cp, nil
		}
	}
	return nil, sql.ErrNoRows
}

func (r *groupRepo) GetBySlug(ctx context.Context, slug string) (*domain.Group, error) {
	r.d.mu.Lock()
	defer r.d.mu.Unlock()
	for _, g := range r.d.groups {
		if g.Slug == slug {
			cp := *g
			return &cp, nil
		}
	}
	return nil, sql.ErrNoRows
}

func (r *groupRepo) Update(ctx context.Context, group *domain.Group) error {
	r.d.mu.Lock()
	defer r.d.mu.Unlock()
	if _, ok := r.d.groups[group.ID]; !ok {
		return sql.ErrNoRows
	}
	cp := *group
	r.d.groups[group.ID] = &cp
	return nil
}
