package memory

import (
	"context"

	"harambee-backend/internal/domain"
	"harambee-backend/internal/repository"
)

type ledgerRepo struct {
	d *data
}

func (r *ledgerRepo) ApplyConfirmed(ctx context.Context, groupID, userID int32, projectID *int32, amountCents int64) error {
	r.d.mu.Lock()
	defer r.d.mu.Unlock()
	if projectID != nil {
		if p, ok := r.d.projects[*projectID]; ok {
			p.CollectedCents += amountCents
		}
	}
	if m := r.d.findMember(groupID, userID); m != nil {
		m.ContributedCents += amountCents
	}
	return nil
}

func (r *ledgerRepo) GetGroupSummary(ctx context.Context, groupID int32) (*repository.GroupSummary, error) {
	r.d.mu.Lock()
	defer r.d.mu.Unlock()
	summary := &repository.GroupSummary{GroupID: groupID}
	for id := int32(1); id <= r.d.nextID; id++ {
		if p, ok := r.d.projects[id]; ok && p.GroupID == groupID {
			summary.Projects = append(summary.Projects, *p)
		}
		if m, ok := r.d.members[id]; ok && m.GroupID == groupID {
			summary.CollectedCents += m.ContributedCents
			summary.Members = append(summary.Members, *m)
		}
		if c, ok := r.d.contributions[id]; ok && c.GroupID == groupID && c.Status == domain.ContributionStatusPending {
			summary.PendingCount++
		}
	}
	return summary, nil
}
