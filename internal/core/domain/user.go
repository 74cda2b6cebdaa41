package domain

import (
	"errors"
	"time"
)

// AI provider identifiers selectable through user preferences.
const (
	ProviderOpenAI = "openai"
	ProviderGrok   = "grok"
)

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrUserNotFound       = errors.New("user not found")
	ErrUserExists         = errors.New("user already exists")
	ErrWeakPassword       = errors.New("password must be at least 6 characters")
	ErrInvalidEmail       = errors.New("invalid email format")
	ErrInvalidPhone       = errors.New("invalid phone number")
	ErrInvalidOTP         = errors.New("invalid or expired code")
	ErrTooManyRequests    = errors.New("too many requests")
)

// Preferences is the per-user settings bag. Defaults are applied at account
// creation and mutated through profile updates.
type Preferences struct {
	Notifications bool   `json:"notifications" bson:"notifications"`
	VoiceEnabled  bool   `json:"voiceEnabled" bson:"voice_enabled"`
	Theme         string `json:"theme" bson:"theme"`
	AIProvider    string `json:"aiProvider,omitempty" bson:"ai_provider,omitempty"`
}

// DefaultPreferences returns the settings every new account starts with.
func DefaultPreferences() Preferences {
	return Preferences{
		Notifications: true,
		VoiceEnabled:  true,
		Theme:         "system",
	}
}

// User models one account. At least one of Email or Phone is set; Email is
// stored lowercase so uniqueness is case-insensitive. PasswordHash is present
// only for email accounts and is never serialised.
type User struct {
	ID           string      `json:"id"`
	Email        string      `json:"email,omitempty"`
	Phone        string      `json:"phone,omitempty"`
	PasswordHash string      `json:"-"`
	Name         string      `json:"name"`
	Preferences  Preferences `json:"preferences"`
	CreatedAt    time.Time   `json:"created_at"`
}
