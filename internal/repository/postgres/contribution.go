package postgres

import (
	"context"
	"database/sql"
	"time"

	"harambee-backend/internal/domain"
	"harambee-backend/internal/logger"
	"harambee-backend/internal/repository"
)

const contributionColumns = `id, group_id, user_id, project_id, amount_cents, payment_type,
	COALESCE(transaction_ref, ''), COALESCE(proof_of_payment, ''), COALESCE(notes, ''), status, created_on`

type contributionRepository struct {
	db *sql.DB
}

func NewContributionRepository(db *sql.DB) repository.ContributionRepository {
	return &contributionRepository{db: db}
}

func (r *contributionRepository) Create(ctx context.Context, c *domain.Contribution) error {
	query := `INSERT INTO contributions
	          (group_id, user_id, project_id, amount_cents, payment_type, transaction_ref, proof_of_payment, notes, status, created_on)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10) RETURNING id`
	c.CreatedOn = time.Now()
	logger.DatabaseCall("INSERT", "contributions", "groupID", c.GroupID, "userID", c.UserID)
	err := r.db.QueryRowContext(ctx, query,
		c.GroupID, c.UserID, c.ProjectID, c.AmountCents, c.PaymentType,
		c.TransactionRef, c.ProofOfPayment, c.Notes, c.Status, c.CreatedOn,
	).Scan(&c.ID)
	logger.DatabaseResult("INSERT", 1, err, "contributionID", c.ID)
	return err
}

func (r *contributionRepository) GetByID(ctx context.Context, id int32) (*domain.Contribution, error) {
	query := `SELECT ` + contributionColumns + ` FROM contributions WHERE id = $1`
	var c domain.Contribution
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&c.ID, &c.GroupID, &c.UserID, &c.ProjectID, &c.AmountCents, &c.PaymentType,
		&c.TransactionRef, &c.ProofOfPayment, &c.Notes, &c.Status, &c.CreatedOn)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// UpdateStatusIfPending flips the status with a conditional update so a
// concurrent duplicate confirm sees zero rows affected instead of applying
// the transition twice.
func (r *contributionRepository) UpdateStatusIfPending(ctx context.Context, id int32, status domain.ContributionStatus) (bool, error) {
	query := `UPDATE contributions SET status = $1 WHERE id = $2 AND status = $3`
	result, err := r.db.ExecContext(ctx, query, status, id, domain.ContributionStatusPending)
	if err != nil {
		return false, err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return false, err
	}
	return rows == 1, nil
}

func (r *contributionRepository) ListByGroup(ctx context.Context, groupID int32, status domain.ContributionStatus, page, pageSize int32) ([]domain.Contribution, int32, error) {
	if status != "" {
		count := `SELECT count(*) FROM contributions WHERE group_id = $1 AND status = $2`
		query := `SELECT ` + contributionColumns + ` FROM contributions
		          WHERE group_id = $1 AND status = $2 ORDER BY created_on DESC LIMIT $3 OFFSET $4`
		return r.listPaged(ctx, count, query, []any{groupID, status}, page, pageSize)
	}
	count := `SELECT count(*) FROM contributions WHERE group_id = $1`
	query := `SELECT ` + contributionColumns + ` FROM contributions
	          WHERE group_id = $1 ORDER BY created_on DESC LIMIT $2 OFFSET $3`
	return r.listPaged(ctx, count, query, []any{groupID}, page, pageSize)
}

func (r *contributionRepository) ListByMember(ctx context.Context, groupID, userID int32, page, pageSize int32) ([]domain.Contribution, int32, error) {
	count := `SELECT count(*) FROM contributions WHERE group_id = $1 AND user_id = $2`
	query := `SELECT ` + contributionColumns + ` FROM contributions
	          WHERE group_id = $1 AND user_id = $2 ORDER BY created_on DESC LIMIT $3 OFFSET $4`
	return r.listPaged(ctx, count, query, []any{groupID, userID}, page, pageSize)
}

func (r *contributionRepository) ListByProject(ctx context.Context, projectID int32, page, pageSize int32) ([]domain.Contribution, int32, error) {
	count := `SELECT count(*) FROM contributions WHERE project_id = $1`
	query := `SELECT ` + contributionColumns + ` FROM contributions
	          WHERE project_id = $1 ORDER BY created_on DESC LIMIT $2 OFFSET $3`
	return r.listPaged(ctx, count, query, []any{projectID}, page, pageSize)
}

func (r *contributionRepository) listPaged(ctx context.Context, countQuery, query string, args []any, page, pageSize int32) ([]domain.Contribution, int32, error) {
	var count int32
	if err := r.db.QueryRowContext(ctx, countQuery, args...).Scan(&count); err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * pageSize
	rows, err := r.db.QueryContext(ctx, query, append(args, pageSize, offset)...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var contributions []domain.Contribution
	for rows.Next() {
		var c domain.Contribution
		if err := rows.Scan(&c.ID, &c.GroupID, &c.UserID, &c.ProjectID, &c.AmountCents, &c.PaymentType,
			&c.TransactionRef, &c.ProofOfPayment, &c.Notes, &c.Status, &c.CreatedOn); err != nil {
			return nil, 0, err
		}
		contributions = append(contributions, c)
	}
	return contributions, count, rows.Err()
}
