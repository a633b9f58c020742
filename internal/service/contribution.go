package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"harambee-backend/internal/domain"
	"harambee-backend/internal/logger"
	"harambee-backend/internal/repository"
)

type contributionService struct {
	contribRepo repository.ContributionRepository
	memberRepo  repository.MemberRepository
	groupRepo   repository.GroupRepository
	ledger      LedgerService
	notifier    Notifier
}

func NewContributionService(
	contribRepo repository.ContributionRepository,
	memberRepo repository.MemberRepository,
	groupRepo repository.GroupRepository,
	ledger LedgerService,
	notifier Notifier,
) ContributionService {
	return &contributionService{
		contribRepo: contribRepo,
		memberRepo:  memberRepo,
		groupRepo:   groupRepo,
		ledger:      ledger,
		notifier:    notifier,
	}
}

// Submit records a member's payment claim as PENDING. No running total is
// touched here: money becomes real only at Confirm.
func (s *contributionService) Submit(ctx context.Context, input SubmitContributionInput) (*domain.Contribution, error) {
	if input.AmountCents <= 0 {
		return nil, ErrInvalidAmount
	}
	if _, err := s.groupRepo.GetByID(ctx, input.GroupID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	c := &domain.Contribution{
		GroupID:        input.GroupID,
		UserID:         input.UserID,
		ProjectID:      input.ProjectID,
		AmountCents:    input.AmountCents,
		PaymentType:    input.PaymentType,
		TransactionRef: input.TransactionRef,
		ProofOfPayment: input.ProofOfPayment,
		Notes:          input.Notes,
		Status:         domain.ContributionStatusPending,
	}
	if err := s.contribRepo.Create(ctx, c); err != nil {
		return nil, fmt.Errorf("creating contribution: %w", err)
	}

	s.notifier.ContributionSubmitted(ctx, c)
	return c, nil
}

// Confirm performs the single irreversible transition that makes a claimed
// payment count. The conditional status flip is the exactly-once guard: a
// second confirm (stale client retry, concurrent admin) sees zero rows
// updated and the totals are applied at most once.
func (s *contributionService) Confirm(ctx context.Context, reviewerID, contributionID int32) (*domain.Contribution, error) {
	c, err := s.reviewable(ctx, reviewerID, contributionID)
	if err != nil {
		return nil, err
	}

	flipped, err := s.contribRepo.UpdateStatusIfPending(ctx, contributionID, domain.ContributionStatusConfirmed)
	if err != nil {
		return nil, fmt.Errorf("confirming contribution %d: %w", contributionID, err)
	}
	if !flipped {
		return nil, ErrNotPending
	}
	c.Status = domain.ContributionStatusConfirmed

	// The flip succeeded, so the confirmation stands regardless of what
	// happens below; aggregation and notification must not undo it.
	if err := s.ledger.ApplyConfirmedAmount(ctx, c.GroupID, c.UserID, c.ProjectID, c.AmountCents); err != nil {
		logger.Error("Failed to apply confirmed amount to running totals",
			"contribution_id", contributionID,
			"group_id", c.GroupID,
			"error", err)
	}

	s.notifier.ContributionConfirmed(ctx, c)
	return c, nil
}

// Reject closes the claim without touching any total.
func (s *contributionService) Reject(ctx context.Context, reviewerID, contributionID int32, reason string) (*domain.Contribution, error) {
	c, err := s.reviewable(ctx, reviewerID, contributionID)
	if err != nil {
		return nil, err
	}

	flipped, err := s.contribRepo.UpdateStatusIfPending(ctx, contributionID, domain.ContributionStatusRejected)
	if err != nil {
		return nil, fmt.Errorf("rejecting contribution %d: %w", contributionID, err)
	}
	if !flipped {
		return nil, ErrNotPending
	}
	c.Status = domain.ContributionStatusRejected

	s.notifier.ContributionRejected(ctx, c, reason)
	return c, nil
}

// reviewable loads the contribution and checks the reviewer may decide it:
// the group admin or an active accountability partner.
func (s *contributionService) reviewable(ctx context.Context, reviewerID, contributionID int32) (*domain.Contribution, error) {
	c, err := s.contribRepo.GetByID(ctx, contributionID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if c.Status.IsTerminal() {
		return nil, ErrNotPending
	}

	group, err := s.groupRepo.GetByID(ctx, c.GroupID)
	if err != nil {
		return nil, fmt.Errorf("loading group %d: %w", c.GroupID, err)
	}
	if group.AdminID == reviewerID {
		return c, nil
	}
	member, err := s.memberRepo.Get(ctx, c.GroupID, reviewerID)
	if err == nil && member.Role == domain.MemberRolePartner && member.Status == domain.MemberStatusActive {
		return c, nil
	}
	return nil, ErrUnauthorized
}

func (s *contributionService) Get(ctx context.Context, id int32) (*domain.Contribution, error) {
	c, err := s.contribRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return c, nil
}

func (s *contributionService) ListByGroup(ctx context.Context, groupID int32, status domain.ContributionStatus, page, pageSize int32) ([]domain.Contribution, int32, error) {
	return s.contribRepo.ListByGroup(ctx, groupID, status, page, pageSize)
}

func (s *contributionService) ListByMember(ctx context.Context, groupID, userID int32, page, pageSize int32) ([]domain.Contribution, int32, error) {
	return s.contribRepo.ListByMember(ctx, groupID, userID, page, pageSize)
}

func (s *contributionService) ListByProject(ctx context.Context, projectID int32, page, pageSize int32) ([]domain.Contribution, int32, error) {
	return s.contribRepo.ListByProject(ctx, projectID, page, pageSize)
}
