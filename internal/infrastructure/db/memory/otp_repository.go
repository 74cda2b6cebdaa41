package memory

import (
	"context"
	"sync"
	"time"

	"github.com/mindmate/mindmate-api/internal/core/domain"
)

// OTPRepository keeps pending codes in a mutex-guarded map. Like the real
// store, expired rows are kept around and simply never match.
type OTPRepository struct {
	mu    sync.Mutex
	codes map[string]*domain.OneTimeCode
}

func NewOTPRepository() *OTPRepository {
	return &OTPRepository{codes: make(map[string]*domain.OneTimeCode)}
}

func (r *OTPRepository) Find(_ context.Context, phone, code string, now time.Time) (*domain.OneTimeCode, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, c := range r.codes {
		if c.Phone == phone && c.Code == code && now.Before(c.ExpiresAt) {
			clone := *c
			return &clone, nil
		}
	}
	return nil, domain.ErrInvalidOTP
}

func (r *OTPRepository) Insert(_ context.Context, otp *domain.OneTimeCode) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	clone := *otp
	clone.ID = newID()
	r.codes[clone.ID] = &clone
	return nil
}

func (r *OTPRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.codes, id)
	return nil
}
