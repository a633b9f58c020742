package memory

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"harambee-backend/internal/domain"
)

type memberRepo struct {
	d *data
}

func (r *memberRepo) Add(ctx context.Context, member *domain.GroupMember) error {
	r.d.mu.Lock()
	defer r.d.mu.Unlock()
	if r.d.findMember(member.GroupID, member.UserID) != nil {
		return fmt.Errorf("member already exists for group %d user %d", member.GroupID, member.UserID)
	}
	member.ID = r.d.id()
	member.JoinedOn = time.Now()
	cp := *member
	r.d.members[member.ID] = &cp
	return nil
}

func (r *memberRepo) Get(ctx context.Context, groupID, userID int32) (*domain.GroupMember, error) {
	r.d.mu.Lock()
	defer r.d.mu.Unlock()
	m := r.d.findMember(groupID, userID)
	if m == nil {
		return nil, sql.ErrNoRows
	}
	cp := *m
	return &cp, nil
}

func (r *memberRepo) ListByGroup(ctx context.Context, groupID int32) ([]domain.GroupMember, error) {
	r.d.mu.Lock()
	defer r.d.mu.Unlock()
	var members []domain.GroupMember
	for id := int32(1); id <= r.d.nextID; id++ {
		if m, ok := r.d.members[id]; ok && m.GroupID == groupID {
			members = append(members, *m)
		}
	}
	return members, nil
}

func (r *memberRepo) ListPartners(ctx context.Context, groupID int32) ([]domain.GroupMember, error) {
	r.d.mu.Lock()
	defer r.d.mu.Unlock()
	var partners []domain.GroupMember
	for id := int32(1); id <= r.d.nextID; id++ {
		m, ok := r.d.members[id]
		if ok && m.GroupID == groupID && m.Role == domain.MemberRolePartner && m.Status == domain.MemberStatusActive {
			partners = append(partners, *m)
		}
	}
	return partners, nil
}

func (r *memberRepo) CountPartners(ctx context.Context, groupID int32) (int32, error) {
	partners, err := r.ListPartners(ctx, groupID)
	if err != nil {
		return 0, err
	}
	return int32(len(partners)), nil
}

func (r *memberRepo) UpdateRole(ctx context.Context, groupID, userID int32, role domain.MemberRole) error {
	r.d.mu.Lock()
	defer r.d.mu.Unlock()
	m := r.d.findMember(groupID, userID)
	if m == nil {
		return sql.ErrNoRows
	}
	m.Role = role
	return nil
}

func (r *memberRepo) UpdateStatus(ctx context.Context, groupID, userID int32, status domain.MemberStatus) error {
	r.d.mu.Lock()
	defer r.d.mu.Unlock()
	m := r.d.findMember(groupID, userID)
	if m == nil {
		return sql.ErrNoRows
	}
	m.Status = status
	return nil
}
