package ports

import (
	"context"

	"github.com/mindmate/mindmate-api/internal/core/domain"
)

// UserRepository defines persistence for user accounts. Emails are stored
// and looked up lowercase; callers normalise before calling.
type UserRepository interface {
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByPhone(ctx context.Context, phone string) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	Insert(ctx context.Context, user *domain.User) (*domain.User, error)
	// Update persists name and preference changes and returns the stored user.
	Update(ctx context.Context, user *domain.User) (*domain.User, error)
}
