package ports

import "context"

// SendOTPResult reports the outcome of an OTP send request.
// DevelopmentCode is populated only when SMS delivery is unconfigured and the
// service runs in development mode; production responses never include it.
type SendOTPResult struct {
	DevelopmentCode string
}

// OTPService covers phone-based login: code delivery and verification.
type OTPService interface {
	Send(ctx context.Context, phone string) (*SendOTPResult, error)
	// Verify redeems a pending code. On success the code is deleted and the
	// user for that phone is fetched, or created on first login.
	Verify(ctx context.Context, phone, code string) (*AuthResult, error)
}
