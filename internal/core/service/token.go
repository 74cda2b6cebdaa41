package service

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/mindmate/mindmate-api/internal/core/domain"
)

// DefaultTokenTTL is the session token validity window.
const DefaultTokenTTL = 7 * 24 * time.Hour

// TokenManager mints and verifies HS256 session tokens. The payload carries
// only the user id and identifying contact (email or phone); callers must
// re-fetch the live user record, the token is not a profile cache.
type TokenManager struct {
	secret []byte
	ttl    time.Duration
}

func NewTokenManager(secret string, ttl time.Duration) *TokenManager {
	if ttl <= 0 {
		ttl = DefaultTokenTTL
	}
	return &TokenManager{secret: []byte(secret), ttl: ttl}
}

// Issue mints a signed token for the user. It fails only on signing problems,
// which indicate key misconfiguration.
func (m *TokenManager) Issue(userID, contact string) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"user_id": userID,
		"contact": contact,
		"iat":     now.Unix(),
		"exp":     now.Add(m.ttl).Unix(),
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := t.SignedString(m.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// Verify decodes the token and checks signature and expiry. Expired and
// tampered tokens both map to ErrInvalidCredentials; callers must not
// distinguish them.
func (m *TokenManager) Verify(token string) (userID, contact string, err error) {
	claims := jwt.MapClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return m.secret, nil
	})
	if err != nil || !parsed.Valid {
		return "", "", domain.ErrInvalidCredentials
	}

	userID, _ = claims["user_id"].(string)
	contact, _ = claims["contact"].(string)
	if userID == "" {
		return "", "", domain.ErrInvalidCredentials
	}
	return userID, contact, nil
}
