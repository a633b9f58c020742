package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"harambee-backend/internal/domain"
	"harambee-backend/internal/repository"
)

type otpRepository struct {
	db *sql.DB
}

func NewOTPRepository(db *sql.DB) repository.OTPRepository {
	return &otpRepository{db: db}
}

// Create removes every prior challenge for the phone number before
// inserting, keeping at most one active record per number.
func (r *otpRepository) Create(ctx context.Context, otp *domain.OTPVerification) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("starting otp transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM otp_verifications WHERE phone_number = $1`, otp.PhoneNumber); err != nil {
		return fmt.Errorf("invalidating prior otp records: %w", err)
	}

	query := `INSERT INTO otp_verifications (phone_number, code, expires_on, verified, attempts, created_on)
	          VALUES ($1, $2, $3, $4, $5, $6) RETURNING id`
	otp.CreatedOn = time.Now()
	if err := tx.QueryRowContext(ctx, query,
		otp.PhoneNumber, otp.Code, otp.ExpiresOn, otp.Verified, otp.Attempts, otp.CreatedOn,
	).Scan(&otp.ID); err != nil {
		return err
	}
	return tx.Commit()
}

func (r *otpRepository) GetActiveByPhone(ctx context.Context, phone string, now time.Time) (*domain.OTPVerification, error) {
	query := `SELECT id, phone_number, code, expires_on, verified, attempts, created_on
	          FROM otp_verifications
	          WHERE phone_number = $1 AND verified = FALSE AND expires_on > $2 AND attempts < $3
	          ORDER BY created_on DESC LIMIT 1`
	var o domain.OTPVerification
	err := r.db.QueryRowContext(ctx, query, phone, now, domain.OTPMaxAttempts).Scan(
		&o.ID, &o.PhoneNumber, &o.Code, &o.ExpiresOn, &o.Verified, &o.Attempts, &o.CreatedOn)
	if err != nil {
		return nil, err
	}
	return &o, nil
}

func (r *otpRepository) IncrementAttempts(ctx context.Context, id int32) error {
	_, err := r.db.ExecContext(ctx, `UPDATE otp_verifications SET attempts = attempts + 1 WHERE id = $1`, id)
	return err
}

func (r *otpRepository) MarkVerified(ctx context.Context, id int32) error {
	_, err := r.db.ExecContext(ctx, `UPDATE otp_verifications SET verified = TRUE WHERE id = $1`, id)
	return err
}

func (r *otpRepository) HasVerified(ctx context.Context, phone string) (bool, error) {
	var count int32
	err := r.db.QueryRowContext(ctx,
		`SELECT count(*) FROM otp_verifications WHERE phone_number = $1 AND verified = TRUE`, phone).Scan(&count)
	return count > 0, err
}

func (r *otpRepository) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	result, err := r.db.ExecContext(ctx,
		`DELETE FROM otp_verifications WHERE expires_on <= $1 AND verified = FALSE`, now)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}
