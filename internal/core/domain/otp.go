package domain

import "time"

// OTPValidity is how long a one-time code can be redeemed after creation.
const OTPValidity = 10 * time.Minute

// OneTimeCode is a transient phone-login credential. Multiple outstanding
// codes per phone are permitted; a code is deleted on first successful
// verification and stale rows simply never match the expiry filter.
type OneTimeCode struct {
	ID        string
	Phone     string
	Code      string
	CreatedAt time.Time
	ExpiresAt time.Time
}

// Expired reports whether the code can no longer be redeemed at now.
func (c OneTimeCode) Expired(now time.Time) bool {
	return !now.Before(c.ExpiresAt)
}
