package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"harambee-backend/internal/domain"
	"harambee-backend/internal/logger"
	"harambee-backend/internal/repository"
)

type groupService struct {
	groupRepo  repository.GroupRepository
	memberRepo repository.MemberRepository
	userRepo   repository.UserRepository
	notifier   Notifier
}

func NewGroupService(
	groupRepo repository.GroupRepository,
	memberRepo repository.MemberRepository,
	userRepo repository.UserRepository,
	notifier Notifier,
) GroupService {
	return &groupService{
		groupRepo:  groupRepo,
		memberRepo: memberRepo,
		userRepo:   userRepo,
		notifier:   notifier,
	}
}

// CreateGroup registers a new group with its creator as admin. The
// registration token is an unguessable invite credential; the slug is a
// human-readable alternative for shareable links.
func (s *groupService) CreateGroup(ctx context.Context, adminID int32, name, currency string) (*domain.Group, error) {
	if name == "" {
		return nil, fmt.Errorf("%w: group name is required", ErrValidation)
	}
	if currency == "" {
		currency = "KES"
	}

	slug := uniqueSlug(slugify(name), func(candidate string) bool {
		_, err := s.groupRepo.GetBySlug(ctx, candidate)
		return err == nil
	})

	group := &domain.Group{
		Name:              name,
		Slug:              slug,
		RegistrationToken: uuid.NewString(),
		AdminID:           adminID,
		Currency:          currency,
	}
	if err := s.groupRepo.Create(ctx, group); err != nil {
		return nil, fmt.Errorf("creating group: %w", err)
	}

	admin := &domain.GroupMember{
		GroupID: group.ID,
		UserID:  adminID,
		Role:    domain.MemberRoleAdmin,
		Status:  domain.MemberStatusActive,
	}
	if err := s.memberRepo.Add(ctx, admin); err != nil {
		return nil, fmt.Errorf("adding admin membership: %w", err)
	}
	return group, nil
}

func (s *groupService) GetGroup(ctx context.Context, id int32) (*domain.Group, error) {
	group, err := s.groupRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return group, nil
}

// JoinGroup enrolls a user as a plain member. A removed member who joins
// again is reactivated rather than duplicated; an active member gets
// ErrAlreadyMember so callers can treat the join as settled.
func (s *groupService) JoinGroup(ctx context.Context, groupID, userID int32) (*domain.GroupMember, error) {
	group, err := s.groupRepo.GetByID(ctx, groupID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	existing, err := s.memberRepo.Get(ctx, groupID, userID)
	switch {
	case err == nil && existing.Status == domain.MemberStatusActive:
		return existing, ErrAlreadyMember
	case err == nil:
		if err := s.memberRepo.UpdateStatus(ctx, groupID, userID, domain.MemberStatusActive); err != nil {
			return nil, fmt.Errorf("reactivating membership: %w", err)
		}
		existing.Status = domain.MemberStatusActive
		return existing, nil
	case !errors.Is(err, sql.ErrNoRows):
		return nil, err
	}

	member := &domain.GroupMember{
		GroupID: groupID,
		UserID:  userID,
		Role:    domain.MemberRoleMember,
		Status:  domain.MemberStatusActive,
	}
	if err := s.memberRepo.Add(ctx, member); err != nil {
		return nil, fmt.Errorf("adding member: %w", err)
	}

	if user, err := s.userRepo.GetByID(ctx, userID); err == nil {
		s.notifier.MemberJoined(ctx, group, user)
	} else {
		logger.Warn("Joined user lookup failed, skipping admin notification", "user_id", userID, "error", err)
	}
	return member, nil
}

func (s *groupService) ListMembers(ctx context.Context, groupID int32) ([]domain.GroupMember, error) {
	return s.memberRepo.ListByGroup(ctx, groupID)
}

// PromotePartner grants a member the accountability partner role. Partners
// receive submission notifications and may confirm or reject claims; at
// most two per group.
func (s *groupService) PromotePartner(ctx context.Context, adminID, groupID, userID int32) error {
	group, err := s.groupRepo.GetByID(ctx, groupID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrNotFound
		}
		return err
	}
	if group.AdminID != adminID {
		return ErrUnauthorized
	}

	member, err := s.memberRepo.Get(ctx, groupID, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrNotFound
		}
		return err
	}
	if member.Status != domain.MemberStatusActive {
		return ErrNotFound
	}
	if member.Role == domain.MemberRolePartner {
		return nil
	}

	count, err := s.memberRepo.CountPartners(ctx, groupID)
	if err != nil {
		return fmt.Errorf("counting partners: %w", err)
	}
	if count >= domain.MaxPartnersPerGroup {
		return ErrPartnerLimit
	}
	return s.memberRepo.UpdateRole(ctx, groupID, userID, domain.MemberRolePartner)
}

func (s *groupService) RemoveMember(ctx context.Context, adminID, groupID, userID int32, reason string) error {
	group, err := s.groupRepo.GetByID(ctx, groupID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrNotFound
		}
		return err
	}
	if group.AdminID != adminID {
		return ErrUnauthorized
	}
	if userID == group.AdminID {
		return fmt.Errorf("%w: the group admin cannot be removed", ErrUnauthorized)
	}

	member, err := s.memberRepo.Get(ctx, groupID, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrNotFound
		}
		return err
	}
	if member.Status == domain.MemberStatusRemoved {
		return nil
	}
	if err := s.memberRepo.UpdateStatus(ctx, groupID, userID, domain.MemberStatusRemoved); err != nil {
		return fmt.Errorf("removing member: %w", err)
	}

	s.notifier.MemberRemoved(ctx, group, userID, reason)
	return nil
}
