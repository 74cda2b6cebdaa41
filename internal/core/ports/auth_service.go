package ports

import (
	"context"

	"github.com/mindmate/mindmate-api/internal/core/domain"
)

// AuthResult pairs a freshly minted session token with the authenticated user.
type AuthResult struct {
	Token string
	User  *domain.User
}

// UpdateProfileInput carries partial profile changes; nil fields are left
// untouched.
type UpdateProfileInput struct {
	Name        *string
	Preferences *domain.Preferences
}

// AuthService covers email/password authentication and profile access.
type AuthService interface {
	Register(ctx context.Context, email, password, name string) (*AuthResult, error)
	Login(ctx context.Context, email, password string) (*AuthResult, error)
	// GetUser re-fetches the live user record for a verified token subject.
	GetUser(ctx context.Context, userID string) (*domain.User, error)
	UpdateProfile(ctx context.Context, userID string, input UpdateProfileInput) (*domain.User, error)
}
