package service

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/mindmate/mindmate-api/internal/core/domain"
)

type stubOTPRepo struct {
	codes  map[string]*domain.OneTimeCode
	nextID int
}

func newStubOTPRepo() *stubOTPRepo {
	return &stubOTPRepo{codes: make(map[string]*domain.OneTimeCode)}
}

func (r *stubOTPRepo) Find(_ context.Context, phone, code string, now time.Time) (*domain.OneTimeCode, error) {
	for _, c := range r.codes {
		if c.Phone == phone && c.Code == code && now.Before(c.ExpiresAt) {
			clone := *c
			return &clone, nil
		}
	}
	return nil, domain.ErrInvalidOTP
}

func (r *stubOTPRepo) Insert(_ context.Context, otp *domain.OneTimeCode) error {
	r.nextID++
	clone := *otp
	clone.ID = fmt.Sprintf("otp_%d", r.nextID)
	r.codes[clone.ID] = &clone
	otp.ID = clone.ID
	return nil
}

func (r *stubOTPRepo) Delete(_ context.Context, id string) error {
	delete(r.codes, id)
	return nil
}

type stubSMS struct {
	configured bool
	sent       []string
	fail       error
}

func (s *stubSMS) Configured() bool { return s.configured }

func (s *stubSMS) Send(_ context.Context, to, body string) error {
	if s.fail != nil {
		return s.fail
	}
	s.sent = append(s.sent, to+": "+body)
	return nil
}

type stubLimiter struct {
	allowed bool
	err     error
}

func (l *stubLimiter) Allow(context.Context, string) (bool, error) {
	return l.allowed, l.err
}

func newTestOTPService(otps *stubOTPRepo, users *stubUserRepo, sms *stubSMS, limiter SendLimiter, devFallback bool) *OTPService {
	return NewOTPService(otps, users, sms, NewTokenManager("secret", time.Hour), limiter, devFallback, zerolog.Nop())
}

var sixDigits = regexp.MustCompile(`^\d{6}$`)

func TestOTPService_Send_InvalidPhone(t *testing.T) {
	svc := newTestOTPService(newStubOTPRepo(), newStubUserRepo(), &stubSMS{}, nil, true)

	for _, phone := range []string{"", "12345", "+0123456789", "555-123-4567"} {
		if _, err := svc.Send(context.Background(), phone); err != domain.ErrInvalidPhone {
			t.Fatalf("phone %q: expected ErrInvalidPhone, got %v", phone, err)
		}
	}
}

func TestOTPService_Send_DevelopmentFallback(t *testing.T) {
	otps := newStubOTPRepo()
	svc := newTestOTPService(otps, newStubUserRepo(), &stubSMS{configured: false}, nil, true)

	result, err := svc.Send(context.Background(), "+15551234567")
	if err != nil {
		t.Fatalf("send failed: %v", err)
	}
	if !sixDigits.MatchString(result.DevelopmentCode) {
		t.Fatalf("expected 6-digit development code, got %q", result.DevelopmentCode)
	}
	if len(otps.codes) != 1 {
		t.Fatalf("expected one persisted code, got %d", len(otps.codes))
	}
}

func TestOTPService_Send_UnconfiguredOutsideDevelopment(t *testing.T) {
	svc := newTestOTPService(newStubOTPRepo(), newStubUserRepo(), &stubSMS{configured: false}, nil, false)

	if _, err := svc.Send(context.Background(), "+15551234567"); err == nil {
		t.Fatalf("expected error when sms channel is unavailable")
	}
}

func TestOTPService_Send_ViaSMS(t *testing.T) {
	sms := &stubSMS{configured: true}
	otps := newStubOTPRepo()
	svc := newTestOTPService(otps, newStubUserRepo(), sms, nil, false)

	result, err := svc.Send(context.Background(), "+15551234567")
	if err != nil {
		t.Fatalf("send failed: %v", err)
	}
	if result.DevelopmentCode != "" {
		t.Fatalf("code must not leak into the response when sms is configured")
	}
	if len(sms.sent) != 1 {
		t.Fatalf("expected one sms, got %d", len(sms.sent))
	}

	var code string
	for _, c := range otps.codes {
		code = c.Code
	}
	if !sixDigits.MatchString(code) {
		t.Fatalf("expected 6-digit code, got %q", code)
	}
	if want := "+15551234567: Your MindMate verification code is: " + code; sms.sent[0] != want {
		t.Fatalf("unexpected sms body: %q", sms.sent[0])
	}
}

func TestOTPService_Send_RateLimited(t *testing.T) {
	svc := newTestOTPService(newStubOTPRepo(), newStubUserRepo(), &stubSMS{configured: true}, &stubLimiter{allowed: false}, false)

	if _, err := svc.Send(context.Background(), "+15551234567"); err != domain.ErrTooManyRequests {
		t.Fatalf("expected ErrTooManyRequests, got %v", err)
	}
}

func TestOTPService_Send_LimiterFailureAllows(t *testing.T) {
	sms := &stubSMS{configured: true}
	limiter := &stubLimiter{allowed: false, err: errors.New("redis down")}
	svc := newTestOTPService(newStubOTPRepo(), newStubUserRepo(), sms, limiter, false)

	// A broken limiter must not take phone login down with it.
	if _, err := svc.Send(context.Background(), "+15551234567"); err != nil {
		t.Fatalf("send failed: %v", err)
	}
	if len(sms.sent) != 1 {
		t.Fatalf("expected sms despite limiter failure")
	}
}

func TestOTPService_Verify_CreatesUserOnFirstLogin(t *testing.T) {
	otps := newStubOTPRepo()
	users := newStubUserRepo()
	svc := newTestOTPService(otps, users, &stubSMS{}, nil, true)

	result, err := svc.Send(context.Background(), "+15551234567")
	if err != nil {
		t.Fatalf("send failed: %v", err)
	}

	auth, err := svc.Verify(context.Background(), "+15551234567", result.DevelopmentCode)
	if err != nil {
		t.Fatalf("verify failed: %v", err)
	}
	if auth.Token == "" {
		t.Fatalf("expected token, got empty")
	}
	if auth.User.Name != "User 4567" {
		t.Fatalf("expected default name User 4567, got %q", auth.User.Name)
	}
	if auth.User.Phone != "+15551234567" {
		t.Fatalf("unexpected phone: %s", auth.User.Phone)
	}
	if auth.User.Preferences != domain.DefaultPreferences() {
		t.Fatalf("expected default preferences, got %+v", auth.User.Preferences)
	}
}

func TestOTPService_Verify_ExistingUser(t *testing.T) {
	otps := newStubOTPRepo()
	users := newStubUserRepo()
	existing, err := users.Insert(context.Background(), &domain.User{Phone: "+15551234567", Name: "Frank"})
	if err != nil {
		t.Fatalf("seed user: %v", err)
	}

	svc := newTestOTPService(otps, users, &stubSMS{}, nil, true)
	result, err := svc.Send(context.Background(), "+15551234567")
	if err != nil {
		t.Fatalf("send failed: %v", err)
	}

	auth, err := svc.Verify(context.Background(), "+15551234567", result.DevelopmentCode)
	if err != nil {
		t.Fatalf("verify failed: %v", err)
	}
	if auth.User.ID != existing.ID || auth.User.Name != "Frank" {
		t.Fatalf("expected existing user, got %+v", auth.User)
	}
}

func TestOTPService_Verify_SingleUse(t *testing.T) {
	otps := newStubOTPRepo()
	svc := newTestOTPService(otps, newStubUserRepo(), &stubSMS{}, nil, true)

	result, err := svc.Send(context.Background(), "+15551234567")
	if err != nil {
		t.Fatalf("send failed: %v", err)
	}

	if _, err := svc.Verify(context.Background(), "+15551234567", result.DevelopmentCode); err != nil {
		t.Fatalf("first verify failed: %v", err)
	}
	if _, err := svc.Verify(context.Background(), "+15551234567", result.DevelopmentCode); err != domain.ErrInvalidOTP {
		t.Fatalf("expected ErrInvalidOTP on reuse, got %v", err)
	}
}

func TestOTPService_Verify_ExpiredCode(t *testing.T) {
	otps := newStubOTPRepo()
	svc := newTestOTPService(otps, newStubUserRepo(), &stubSMS{}, nil, true)

	expired := &domain.OneTimeCode{
		Phone:     "+15551234567",
		Code:      "123456",
		CreatedAt: time.Now().UTC().Add(-20 * time.Minute),
		ExpiresAt: time.Now().UTC().Add(-10 * time.Minute),
	}
	if err := otps.Insert(context.Background(), expired); err != nil {
		t.Fatalf("seed otp: %v", err)
	}

	if _, err := svc.Verify(context.Background(), "+15551234567", "123456"); err != domain.ErrInvalidOTP {
		t.Fatalf("expected ErrInvalidOTP for expired code, got %v", err)
	}
}

func TestOTPService_Verify_WrongCode(t *testing.T) {
	svc := newTestOTPService(newStubOTPRepo(), newStubUserRepo(), &stubSMS{}, nil, true)

	if _, err := svc.Verify(context.Background(), "+15551234567", "000000"); err != domain.ErrInvalidOTP {
		t.Fatalf("expected ErrInvalidOTP, got %v", err)
	}
}

func TestGenerateCode_Range(t *testing.T) {
	for i := 0; i < 100; i++ {
		code := generateCode()
		if !sixDigits.MatchString(code) {
			t.Fatalf("expected 6-digit code, got %q", code)
		}
	}
}
