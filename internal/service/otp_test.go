package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"harambee-backend/internal/domain"
	"harambee-backend/internal/repository/memory"
)

func newOTPFixture(t *testing.T) (*otpService, *memory.Store, *time.Time) {
	t.Helper()
	store := memory.NewStore()
	now := time.Now()
	svc := &otpService{
		otpRepo: store.OTPs,
		now:     func() time.Time { return now },
	}
	return svc, store, &now
}

func TestOTPIssueAndVerify(t *testing.T) {
	svc, _, _ := newOTPFixture(t)
	ctx := context.Background()

	otp, code, err := svc.Issue(ctx, "+254700000001")
	require.NoError(t, err)
	assert.Len(t, code, 6)
	assert.Equal(t, code, otp.Code)

	ok, err := svc.Verify(ctx, "+254700000001", code)
	require.NoError(t, err)
	assert.True(t, ok)

	verified, err := svc.otpRepo.HasVerified(ctx, "+254700000001")
	require.NoError(t, err)
	assert.True(t, verified)
}

func TestOTPReissueInvalidatesPriorCode(t *testing.T) {
	svc, _, _ := newOTPFixture(t)
	ctx := context.Background()

	_, first, err := svc.Issue(ctx, "+254700000001")
	require.NoError(t, err)
	_, second, err := svc.Issue(ctx, "+254700000001")
	require.NoError(t, err)

	// The earlier code is gone even if it happens to equal the new one in
	// digits only by chance; verify against the record, not the string.
	if first != second {
		ok, err := svc.Verify(ctx, "+254700000001", first)
		require.NoError(t, err)
		assert.False(t, ok)
	}
	ok, err := svc.Verify(ctx, "+254700000001", second)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestOTPAttemptLimit(t *testing.T) {
	svc, _, _ := newOTPFixture(t)
	ctx := context.Background()

	_, code, err := svc.Issue(ctx, "+254700000001")
	require.NoError(t, err)

	wrong := "000000"
	if wrong == code {
		wrong = "000001"
	}
	for i := 0; i < domain.OTPMaxAttempts; i++ {
		ok, err := svc.Verify(ctx, "+254700000001", wrong)
		require.NoError(t, err)
		assert.False(t, ok)
	}

	// The record is burned: even the right code no longer verifies.
	ok, err := svc.Verify(ctx, "+254700000001", code)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestOTPExpiry(t *testing.T) {
	svc, _, now := newOTPFixture(t)
	ctx := context.Background()

	_, code, err := svc.Issue(ctx, "+254700000001")
	require.NoError(t, err)

	*now = now.Add(domain.OTPTTL + time.Second)
	ok, err := svc.Verify(ctx, "+254700000001", code)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestOTPSweepExpired(t *testing.T) {
	svc, _, now := newOTPFixture(t)
	ctx := context.Background()

	_, _, err := svc.Issue(ctx, "+254700000001")
	require.NoError(t, err)
	_, _, err = svc.Issue(ctx, "+254700000002")
	require.NoError(t, err)

	removed, err := svc.SweepExpired(ctx)
	require.NoError(t, err)
	assert.Zero(t, removed)

	*now = now.Add(domain.OTPTTL + time.Second)
	removed, err = svc.SweepExpired(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), removed)
}
