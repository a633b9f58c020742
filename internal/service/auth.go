package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"harambee-backend/internal/domain"
	"harambee-backend/internal/repository"
	"harambee-backend/internal/security"
)

type authService struct {
	userRepo repository.UserRepository
	otpRepo  repository.OTPRepository
	tokens   security.TokenManager
}

func NewAuthService(userRepo repository.UserRepository, otpRepo repository.OTPRepository, tokens security.TokenManager) AuthService {
	return &authService{
		userRepo: userRepo,
		otpRepo:  otpRepo,
		tokens:   tokens,
	}
}

// Register creates an account for a phone number that has completed OTP
// verification. The verification gate is the only identity check: the
// phone is the account's primary identifier.
func (s *authService) Register(ctx context.Context, phone, name, email, password string) (*domain.User, string, string, error) {
	if phone == "" || name == "" {
		return nil, "", "", fmt.Errorf("%w: phone number and name are required", ErrValidation)
	}
	if len(password) < 8 {
		return nil, "", "", fmt.Errorf("%w: password must be at least 8 characters", ErrValidation)
	}

	verified, err := s.otpRepo.HasVerified(ctx, phone)
	if err != nil {
		return nil, "", "", fmt.Errorf("checking phone verification: %w", err)
	}
	if !verified {
		return nil, "", "", ErrPhoneNotVerified
	}

	if _, err := s.userRepo.GetByPhone(ctx, phone); err == nil {
		return nil, "", "", ErrPhoneRegistered
	} else if !errors.Is(err, sql.ErrNoRows) {
		return nil, "", "", err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", "", fmt.Errorf("hashing password: %w", err)
	}

	user := &domain.User{
		PhoneNumber:   phone,
		Name:          name,
		Email:         email,
		PasswordHash:  string(hash),
		PhoneVerified: true,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, "", "", fmt.Errorf("creating user: %w", err)
	}

	access, refresh, err := s.issueTokens(user)
	if err != nil {
		return nil, "", "", err
	}
	return user, access, refresh, nil
}

func (s *authService) Login(ctx context.Context, phone, password string) (string, string, error) {
	user, err := s.userRepo.GetByPhone(ctx, phone)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", "", ErrInvalidCredentials
		}
		return "", "", err
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return "", "", ErrInvalidCredentials
	}
	return s.issueTokens(user)
}

func (s *authService) Refresh(ctx context.Context, refreshToken string) (string, string, error) {
	claims, err := s.tokens.ValidateToken(refreshToken)
	if err != nil {
		return "", "", ErrInvalidCredentials
	}
	if err := claims.RequireType(security.TokenTypeRefresh); err != nil {
		return "", "", ErrInvalidCredentials
	}
	user, err := s.userRepo.GetByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", "", ErrInvalidCredentials
		}
		return "", "", err
	}
	return s.issueTokens(user)
}

func (s *authService) issueTokens(user *domain.User) (string, string, error) {
	access, err := s.tokens.GenerateAccessToken(user.ID, user.PhoneNumber)
	if err != nil {
		return "", "", fmt.Errorf("generating access token: %w", err)
	}
	refresh, err := s.tokens.GenerateRefreshToken(user.ID, user.PhoneNumber)
	if err != nil {
		return "", "", fmt.Errorf("generating refresh token: %w", err)
	}
	return access, refresh, nil
}
