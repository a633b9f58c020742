package memory

import (
	"context"
	"database/sql"
	"time"

	"harambee-backend/internal/domain"
)

type otpRepo struct {
	d *data
}

func (r *otpRepo) Create(ctx context.Context, otp *domain.OTPVerification) error {
	r.d.mu.Lock()
	defer r.d.mu.Unlock()
	for id, o := range r.d.otps {
		if o.PhoneNumber == otp.PhoneNumber {
			delete(r.d.otps, id)
		}
	}
	otp.ID = r.d.id()
	otp.CreatedOn = time.Now()
	cp := *otp
	r.d.otps[otp.ID] = &cp
	return nil
}

func (r *otpRepo) GetActiveByPhone(ctx context.Context, phone string, now time.Time) (*domain.OTPVerification, error) {
	r.d.mu.Lock()
	defer r.d.mu.Unlock()
	for _, o := range r.d.otps {
		if o.PhoneNumber == phone && o.Active(now) {
			cp := *o
			return &cp, nil
		}
	}
	return nil, sql.ErrNoRows
}

func (r *otpRepo) IncrementAttempts(ctx context.Context, id int32) error {
	r.d.mu.Lock()
	defer r.d.mu.Unlock()
	o, ok := r.d.otps[id]
	if !ok {
		return sql.ErrNoRows
	}
	o.Attempts++
	return nil
}

func (r *otpRepo) MarkVerified(ctx context.Context, id int32) error {
	r.d.mu.Lock()
	defer r.d.mu.Unlock()
	o, ok := r.d.otps[id]
	if !ok {
		return sql.ErrNoRows
	}
	o.Verified = true
	return nil
}

func (r *otpRepo) HasVerified(ctx context.Context, phone string) (bool, error) {
	r.d.mu.Lock()
	defer r.d.mu.Unlock()
	for _, o := range r.d.otps {
		if o.PhoneNumber == phone && o.Verified {
			return true, nil
		}
	}
	return false, nil
}

func (r *otpRepo) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	r.d.mu.Lock()
	defer r.d.mu.Unlock()
	var removed int64
	for id, o := range r.d.otps {
		if !o.Verified && !o.ExpiresOn.After(now) {
			delete(r.d.otps, id)
			removed++
		}
	}
	return removed, nil
}
