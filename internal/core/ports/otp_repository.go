package ports

import (
	"context"
	"time"

	"github.com/mindmate/mindmate-api/internal/core/domain"
)

// OTPRepository stores pending one-time codes. There is no single-active-code
// constraint: several outstanding codes per phone may exist, and expired rows
// are left in place (they simply never match the expiry filter).
type OTPRepository interface {
	// Find returns the code record matching phone and code whose expiry is
	// still after now, or domain.ErrInvalidOTP when none matches.
	Find(ctx context.Context, phone, code string, now time.Time) (*domain.OneTimeCode, error)
	Insert(ctx context.Context, otp *domain.OneTimeCode) error
	Delete(ctx context.Context, id string) error
}
