package service

import (
	"context"
	"crypto/rand"
	"encoding/binary"
	"errors"
	"fmt"
	"regexp"
	"time"

	"github.com/rs/zerolog"

	"github.com/mindmate/mindmate-api/internal/api/metrics"
	"github.com/mindmate/mindmate-api/internal/core/domain"
	"github.com/mindmate/mindmate-api/internal/core/ports"
)

// smsTemplate is the delivery text; the code is substituted in.
const smsTemplate = "Your MindMate verification code is: %s"

// phonePattern accepts E.164 numbers: +, country code, 7-15 digits total.
var phonePattern = regexp.MustCompile(`^\+[1-9]\d{6,14}$`)

// SendLimiter throttles OTP delivery per phone number.
type SendLimiter interface {
	// Allow reports whether another code may be sent to phone right now.
	Allow(ctx context.Context, phone string) (bool, error)
}

// OTPService implements phone login: code generation, delivery and
// verification with first-login account creation.
type OTPService struct {
	otps    ports.OTPRepository
	users   ports.UserRepository
	sms     ports.SMSSender
	tokens  *TokenManager
	limiter SendLimiter
	// devFallback returns the generated code in the API response when the
	// SMS channel is unconfigured. Development environments only.
	devFallback bool
	log         zerolog.Logger
}

func NewOTPService(
	otps ports.OTPRepository,
	users ports.UserRepository,
	sms ports.SMSSender,
	tokens *TokenManager,
	limiter SendLimiter,
	devFallback bool,
	log zerolog.Logger,
) *OTPService {
	return &OTPService{
		otps:        otps,
		users:       users,
		sms:         sms,
		tokens:      tokens,
		limiter:     limiter,
		devFallback: devFallback,
		log:         log,
	}
}

// Send generates a 6-digit code, persists it with a 10-minute expiry and
// attempts SMS delivery. When the channel is unconfigured the code is
// returned directly in development mode instead of failing the request.
func (s *OTPService) Send(ctx context.Context, phone string) (*ports.SendOTPResult, error) {
	if !phonePattern.MatchString(phone) {
		return nil, domain.ErrInvalidPhone
	}

	if s.limiter != nil {
		allowed, err := s.limiter.Allow(ctx, phone)
		if err != nil {
			s.log.Warn().Err(err).Msg("otp rate limit check failed, allowing send")
		} else if !allowed {
			return nil, domain.ErrTooManyRequests
		}
	}

	now := time.Now().UTC()
	otp := &domain.OneTimeCode{
		Phone:     phone,
		Code:      generateCode(),
		CreatedAt: now,
		ExpiresAt: now.Add(domain.OTPValidity),
	}
	if err := s.otps.Insert(ctx, otp); err != nil {
		return nil, fmt.Errorf("send otp: %w", err)
	}

	if !s.sms.Configured() {
		if s.devFallback {
			metrics.OTPSentTotal.WithLabelValues("development").Inc()
			s.log.Warn().Str("phone", phone).Msg("sms unconfigured, returning code in response")
			return &ports.SendOTPResult{DevelopmentCode: otp.Code}, nil
		}
		return nil, errors.New("send otp: sms channel unavailable")
	}

	if err := s.sms.Send(ctx, phone, fmt.Sprintf(smsTemplate, otp.Code)); err != nil {
		return nil, fmt.Errorf("send otp: %w", err)
	}

	metrics.OTPSentTotal.WithLabelValues("sms").Inc()
	s.log.Info().Str("phone", phone).Msg("otp sent")
	return &ports.SendOTPResult{}, nil
}

// Verify redeems a pending code. The matched record is deleted before the
// user lookup, so a second attempt with the same code always fails. The two
// steps are independent writes with no transaction around them.
func (s *OTPService) Verify(ctx context.Context, phone, code string) (*ports.AuthResult, error) {
	otp, err := s.otps.Find(ctx, phone, code, time.Now().UTC())
	if err != nil {
		if errors.Is(err, domain.ErrInvalidOTP) {
			metrics.OTPVerifiedTotal.WithLabelValues("rejected").Inc()
			return nil, domain.ErrInvalidOTP
		}
		return nil, fmt.Errorf("verify otp: %w", err)
	}

	if err := s.otps.Delete(ctx, otp.ID); err != nil {
		return nil, fmt.Errorf("verify otp: consume code: %w", err)
	}

	user, err := s.users.FindByPhone(ctx, phone)
	if errors.Is(err, domain.ErrUserNotFound) {
		user, err = s.users.Insert(ctx, &domain.User{
			Phone:       phone,
			Name:        defaultPhoneName(phone),
			Preferences: domain.DefaultPreferences(),
			CreatedAt:   time.Now().UTC(),
		})
		if err == nil {
			s.log.Info().Str("user_id", user.ID).Msg("user created on first phone login")
		}
	}
	if err != nil {
		return nil, fmt.Errorf("verify otp: %w", err)
	}

	token, err := s.tokens.Issue(user.ID, user.Phone)
	if err != nil {
		return nil, err
	}

	metrics.OTPVerifiedTotal.WithLabelValues("accepted").Inc()
	metrics.LoginsTotal.WithLabelValues("otp").Inc()

	return &ports.AuthResult{Token: token, User: user}, nil
}

// generateCode returns a uniformly random 6-digit numeric string.
func generateCode() string {
	var b [8]byte
	if _, err := rand.Read(b[:]); err != nil {
		return fmt.Sprintf("%06d", time.Now().UnixNano()%900000+100000)
	}
	n := binary.BigEndian.Uint64(b[:]) % 900000
	return fmt.Sprintf("%06d", n+100000)
}

// defaultPhoneName derives a display name from the last 4 digits.
func defaultPhoneName(phone string) string {
	if len(phone) < 4 {
		return "User " + phone
	}
	return "User " + phone[len(phone)-4:]
}
