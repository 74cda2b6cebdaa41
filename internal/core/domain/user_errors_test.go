package domain

import (
	"testing"
	"time"
)

func TestDefaultPreferences(t *testing.T) {
	p := DefaultPreferences()
	if !p.Notifications || !p.VoiceEnabled {
		t.Fatalf("expected notifications and voice enabled by default: %+v", p)
	}
	if p.Theme != "system" {
		t.Fatalf("expected system theme, got %q", p.Theme)
	}
	if p.AIProvider != "" {
		t.Fatalf("expected no provider preference by default, got %q", p.AIProvider)
	}
}

func TestOneTimeCode_Expired(t *testing.T) {
	now := time.Now().UTC()
	code := OneTimeCode{CreatedAt: now, ExpiresAt: now.Add(OTPValidity)}

	if code.Expired(now) {
		t.Fatalf("fresh code should not be expired")
	}
	if code.Expired(now.Add(OTPValidity - time.Second)) {
		t.Fatalf("code should be valid until expiry")
	}
	if !code.Expired(now.Add(OTPValidity)) {
		t.Fatalf("code should expire exactly at the deadline")
	}
	if !code.Expired(now.Add(time.Hour)) {
		t.Fatalf("old code should be expired")
	}
}
