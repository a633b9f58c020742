package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"harambee-backend/internal/domain"
	"harambee-backend/internal/logger"
	"harambee-backend/internal/repository"
)

type ledgerRepository struct {
	db *sql.DB
}

func NewLedgerRepository(db *sql.DB) repository.LedgerRepository {
	return &ledgerRepository{db: db}
}

// ApplyConfirmed runs both running-total increments in one transaction.
// The increments are expressed as SET x = x + $1 so concurrent
// confirmations cannot lose updates. A missing project or member row is
// skipped: the contribution itself stays confirmed either way.
func (r *ledgerRepository) ApplyConfirmed(ctx context.Context, groupID, userID int32, projectID *int32, amountCents int64) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("starting ledger transaction: %w", err)
	}
	defer tx.Rollback()

	if projectID != nil {
		result, err := tx.ExecContext(ctx,
			`UPDATE projects SET collected_cents = collected_cents + $1 WHERE id = $2`,
			amountCents, *projectID)
		if err != nil {
			return fmt.Errorf("incrementing project total: %w", err)
		}
		if rows, _ := result.RowsAffected(); rows == 0 {
			logger.Warn("Ledger apply skipped missing project", "projectID", *projectID)
		}
	}

	result, err := tx.ExecContext(ctx,
		`UPDATE group_members SET contributed_cents = contributed_cents + $1 WHERE group_id = $2 AND user_id = $3`,
		amountCents, groupID, userID)
	if err != nil {
		return fmt.Errorf("incrementing member total: %w", err)
	}
	if rows, _ := result.RowsAffected(); rows == 0 {
		logger.Warn("Ledger apply skipped missing member", "groupID", groupID, "userID", userID)
	}

	return tx.Commit()
}

func (r *ledgerRepository) GetGroupSummary(ctx context.Context, groupID int32) (*repository.GroupSummary, error) {
	summary := &repository.GroupSummary{GroupID: groupID}

	// Member totals cover every confirmed contribution, including those not
	// tied to a project, so they are the authoritative group sum.
	err := r.db.QueryRowContext(ctx,
		`SELECT COALESCE(sum(contributed_cents), 0) FROM group_members WHERE group_id = $1`,
		groupID).Scan(&summary.CollectedCents)
	if err != nil {
		return nil, err
	}

	err = r.db.QueryRowContext(ctx,
		`SELECT count(*) FROM contributions WHERE group_id = $1 AND status = $2`,
		groupID, domain.ContributionStatusPending).Scan(&summary.PendingCount)
	if err != nil {
		return nil, err
	}

	summary.Projects, err = NewProjectRepository(r.db).ListByGroup(ctx, groupID)
	if err != nil {
		return nil, err
	}
	summary.Members, err = NewMemberRepository(r.db).ListByGroup(ctx, groupID)
	if err != nil {
		return nil, err
	}
	return summary, nil
}
