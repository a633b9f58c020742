package service

import (
	"context"
	"fmt"

	"harambee-backend/internal/repository"
)

type ledgerService struct {
	ledgerRepo repository.LedgerRepository
}

func NewLedgerService(ledgerRepo repository.LedgerRepository) LedgerService {
	return &ledgerService{ledgerRepo: ledgerRepo}
}

func (s *ledgerService) ApplyConfirmedAmount(ctx context.Context, groupID, userID int32, projectID *int32, amountCents int64) error {
	if amountCents <= 0 {
		return ErrInvalidAmount
	}
	if err := s.ledgerRepo.ApplyConfirmed(ctx, groupID, userID, projectID, amountCents); err != nil {
		return fmt.Errorf("applying confirmed amount for group %d: %w", groupID, err)
	}
	return nil
}

func (s *ledgerService) GroupSummary(ctx context.Context, groupID int32) (*repository.GroupSummary, error) {
	summary, err := s.ledgerRepo.GetGroupSummary(ctx, groupID)
	if err != nil {
		return nil, fmt.Errorf("building summary for group %d: %w", groupID, err)
	}
	return summary, nil
}
