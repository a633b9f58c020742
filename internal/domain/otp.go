package domain

import "time"

const (
	// OTPMaxAttempts bounds guesses per challenge; a record with
	// attempts >= OTPMaxAttempts is no longer active even if unexpired.
	OTPMaxAttempts = 3
	// OTPTTL is the lifetime of an issued code.
	OTPTTL = 10 * time.Minute
)

// OTPVerification is a short-lived phone-number challenge. At most one
// active (unverified, unexpired, attempts < max) record exists per phone
// number; issuing a new one removes the prior records for that number.
type OTPVerification struct {
	ID          int32     `json:"id"`
	PhoneNumber string    `json:"phone_number"`
	Code        string    `json:"-"` // 6-digit numeric, never serialized
	ExpiresOn   time.Time `json:"expires_on"`
	Verified    bool      `json:"verified"`
	Attempts    int32     `json:"attempts"`
	CreatedOn   time.Time `json:"created_on"`
}

// Active reports whether the record can still accept a verification attempt.
func (o *OTPVerification) Active(now time.Time) bool {
	return !o.Verified && o.Attempts < OTPMaxAttempts && o.ExpiresOn.After(now)
}
