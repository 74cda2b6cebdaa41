package handler

import (
	"github.com/mindmate/mindmate-api/internal/core/domain"
)

// errorResponse is the standard error envelope returned on all 4xx/5xx responses.
type errorResponse struct {
	Error string `json:"error"`
}

// --- Request types ---

type registerRequest struct {
	Email    string `json:"email"    validate:"required"`
	Password string `json:"password" validate:"required"`
	Name     string `json:"name"     validate:"required"`
}

type loginRequest struct {
	Email    string `json:"email"    validate:"required"`
	Password string `json:"password" validate:"required"`
}

type sendOTPRequest struct {
	Phone string `json:"phone" validate:"required,e164"`
}

type verifyOTPRequest struct {
	Phone string `json:"phone" validate:"required,e164"`
	OTP   string `json:"otp"   validate:"required,len=6,numeric"`
}

type preferencesRequest struct {
	Notifications bool   `json:"notifications"`
	VoiceEnabled  bool   `json:"voiceEnabled"`
	Theme         string `json:"theme"                validate:"required,oneof=light dark system"`
	AIProvider    string `json:"aiProvider,omitempty" validate:"omitempty,oneof=openai grok"`
}

type updateProfileRequest struct {
	Name        *string             `json:"name,omitempty"        validate:"omitempty,min=1"`
	Preferences *preferencesRequest `json:"preferences,omitempty"`
}

// --- Response types ---

type userResponse struct {
	ID          string             `json:"id"`
	Email       string             `json:"email,omitempty"`
	Phone       string             `json:"phone,omitempty"`
	Name        string             `json:"name"`
	Preferences domain.Preferences `json:"preferences"`
}

type authResponse struct {
	Token string       `json:"token"`
	User  userResponse `json:"user"`
}

// meResponse is the flat identity payload returned by GET /auth/me.
type meResponse struct {
	ID    string `json:"id"`
	Email string `json:"email,omitempty"`
	Phone string `json:"phone,omitempty"`
	Name  string `json:"name"`
}

type sendOTPResponse struct {
	Success bool `json:"success"`
	// DevelopmentOtp is present only when SMS delivery is unconfigured in a
	// development environment.
	DevelopmentOtp string `json:"developmentOtp,omitempty"`
}

func toUserResponse(u *domain.User) userResponse {
	return userResponse{
		ID:          u.ID,
		Email:       u.Email,
		Phone:       u.Phone,
		Name:        u.Name,
		Preferences: u.Preferences,
	}
}
