package memory

import (
	"context"
	"database/sql"
	"time"

	"harambee-backend/internal/domain"
)

type contributionRepo struct {
	d *data
}

func (r *contributionRepo) Create(ctx context.Context, c *domain.Contribution) error {
	r.d.mu.Lock()
	defer r.d.mu.Unlock()
	c.ID = r.d.id()
	c.CreatedOn = time.Now()
	cp := *c
	r.d.contributions[c.ID] = &cp
	return nil
}

func (r *contributionRepo) GetByID(ctx context.Context, id int32) (*domain.Contribution, error) {
	r.d.mu.Lock()
	defer r.d.mu.Unlock()
	c, ok := r.d.contributions[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	cp := *c
	return &cp, nil
}

func (r *contributionRepo) UpdateStatusIfPending(ctx context.Context, id int32, status domain.ContributionStatus) (bool, error) {
	r.d.mu.Lock()
	defer r.d.mu.Unlock()
	c, ok := r.d.contributions[id]
	if !ok || c.Status != domain.ContributionStatusPending {
		return false, nil
	}
	c.Status = status
	return true, nil
}

func (r *contributionRepo) ListByGroup(ctx context.Context, groupID int32, status domain.ContributionStatus, page, pageSize int32) ([]domain.Contribution, int32, error) {
	r.d.mu.Lock()
	defer r.d.mu.Unlock()
	return paginate(r.collect(func(c *domain.Contribution) bool {
		return c.GroupID == groupID && (status == "" || c.Status == status)
	}), page, pageSize)
}

func (r *contributionRepo) ListByMember(ctx context.Context, groupID, userID int32, page, pageSize int32) ([]domain.Contribution, int32, error) {
	r.d.mu.Lock()
	defer r.d.mu.Unlock()
	return paginate(r.collect(func(c *domain.Contribution) bool {
		return c.GroupID == groupID && c.UserID == userID
	}), page, pageSize)
}

func (r *contributionRepo) ListByProject(ctx context.Context, projectID int32, page, pageSize int32) ([]domain.Contribution, int32, error) {
	r.d.mu.Lock()
	defer r.d.mu.Unlock()
	return paginate(r.collect(func(c *domain.Contribution) bool {
		return c.ProjectID != nil && *c.ProjectID == projectID
	}), page, pageSize)
}

// collect must be called with d.mu held. Map order is random; iterate by id
// so listings are stable.
func (r *contributionRepo) collect(match func(*domain.Contribution) bool) []domain.Contribution {
	var out []domain.Contribution
	for id := int32(1); id <= r.d.nextID; id++ {
		if c, ok := r.d.contributions[id]; ok && match(c) {
			out = append(out, *c)
		}
	}
	return out
}

func paginate(all []domain.Contribution, page, pageSize int32) ([]domain.Contribution, int32, error) {
	total := int32(len(all))
	if page < 1 || pageSize < 1 {
		return all, total, nil
	}
	start := (page - 1) * pageSize
	if start >= total {
		return nil, total, nil
	}
	end := start + pageSize
	if end > total {
		end = total
	}
	return all[start:end], total, nil
}
