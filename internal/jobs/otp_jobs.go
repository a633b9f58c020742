package jobs

import (
	"context"

	"harambee-backend/internal/logger"
)

// SweepExpiredOTPs removes verification records whose codes can no longer
// be used. Expiry is already enforced at read time; the sweep keeps the
// table from accumulating stale rows.
func (jr *JobRunner) SweepExpiredOTPs() {
	jr.runWithRecovery("SweepExpiredOTPs", func() {
		removed, err := jr.services.OTP.SweepExpired(context.Background())
		if err != nil {
			logger.Error("Failed to sweep expired verification codes", "error", err)
			return
		}
		if removed > 0 {
			logger.Info("Swept expired verification codes", "removed", removed)
		}
	})
}
