package service

import (
	"context"
	"crypto/rand"
	"database/sql"
	"errors"
	"fmt"
	"math/big"
	"time"

	"harambee-backend/internal/domain"
	"harambee-backend/internal/logger"
	"harambee-backend/internal/repository"
)

type otpService struct {
	otpRepo repository.OTPRepository
	sender  OTPSender
	now     func() time.Time
}

func NewOTPService(otpRepo repository.OTPRepository, sender OTPSender) OTPService {
	return &otpService{
		otpRepo: otpRepo,
		sender:  sender,
		now:     time.Now,
	}
}

// Issue generates a fresh 6-digit challenge for the phone number. The
// repository removes any prior record for the number, so a re-request
// always invalidates the earlier code. The plain code is returned to the
// caller only for echo-mode development setups; in production it leaves
// the system through the sender alone.
func (s *otpService) Issue(ctx context.Context, phone string) (*domain.OTPVerification, string, error) {
	if phone == "" {
		return nil, "", fmt.Errorf("%w: phone number is required", ErrValidation)
	}
	code, err := generateOTPCode()
	if err != nil {
		return nil, "", fmt.Errorf("generating verification code: %w", err)
	}

	now := s.now()
	otp := &domain.OTPVerification{
		PhoneNumber: phone,
		Code:        code,
		ExpiresOn:   now.Add(domain.OTPTTL),
		CreatedOn:   now,
	}
	if err := s.otpRepo.Create(ctx, otp); err != nil {
		return nil, "", fmt.Errorf("storing verification code: %w", err)
	}

	if s.sender != nil {
		if err := s.sender.SendOTP(ctx, phone, code); err != nil {
			logger.Warn("OTP delivery failed", "phone", phone, "error", err)
		}
	}
	return otp, code, nil
}

// Verify checks a submitted code against the active challenge for the
// phone number. A wrong code burns one of the limited attempts; the third
// failure deactivates the record, so the caller must request a new code.
func (s *otpService) Verify(ctx context.Context, phone, code string) (bool, error) {
	otp, err := s.otpRepo.GetActiveByPhone(ctx, phone, s.now())
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, nil
		}
		return false, fmt.Errorf("loading verification code: %w", err)
	}

	if otp.Code != code {
		if err := s.otpRepo.IncrementAttempts(ctx, otp.ID); err != nil {
			logger.Error("Failed to record verification attempt", "otp_id", otp.ID, "error", err)
		}
		return false, nil
	}

	if err := s.otpRepo.MarkVerified(ctx, otp.ID); err != nil {
		return false, fmt.Errorf("marking phone verified: %w", err)
	}
	return true, nil
}

func (s *otpService) SweepExpired(ctx context.Context) (int64, error) {
	return s.otpRepo.DeleteExpired(ctx, s.now())
}

func generateOTPCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1000000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}

// logOTPSender writes issued codes to the application log instead of an
// SMS gateway. Used when no messaging provider is configured.
type logOTPSender struct{}

func NewLogOTPSender() OTPSender {
	return logOTPSender{}
}

func (logOTPSender) SendOTP(_ context.Context, phone, code string) error {
	logger.Info("OTP issued", "phone", phone, "code", code)
	return nil
}
