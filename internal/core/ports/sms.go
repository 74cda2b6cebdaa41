package ports

import "context"

// SMSSender abstracts the outbound SMS channel used for OTP delivery.
type SMSSender interface {
	// Configured reports whether the channel has credentials; when false the
	// OTP service may fall back to returning the code in development.
	Configured() bool
	Send(ctx context.Context, to, body string) error
}
