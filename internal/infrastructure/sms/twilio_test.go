package sms

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestTwilioClient_Configured(t *testing.T) {
	cases := []struct {
		cfg  TwilioConfig
		want bool
	}{
		{TwilioConfig{AccountSID: "AC1", AuthToken: "tok", FromNumber: "+15550001111"}, true},
		{TwilioConfig{AccountSID: "AC1", AuthToken: "tok"}, false},
		{TwilioConfig{}, false},
	}
	for _, tc := range cases {
		if got := NewTwilioClient(tc.cfg).Configured(); got != tc.want {
			t.Fatalf("cfg %+v: expected %v, got %v", tc.cfg, tc.want, got)
		}
	}
}

func TestTwilioClient_Send(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/2010-04-01/Accounts/AC1/Messages.json" {
			t.Fatalf("unexpected path: %s", r.URL.Path)
		}
		user, pass, ok := r.BasicAuth()
		if !ok || user != "AC1" || pass != "tok" {
			t.Fatalf("missing basic auth")
		}
		if err := r.ParseForm(); err != nil {
			t.Fatalf("parse form: %v", err)
		}
		if r.PostForm.Get("To") != "+15551234567" {
			t.Fatalf("unexpected To: %s", r.PostForm.Get("To"))
		}
		if r.PostForm.Get("From") != "+15550001111" {
			t.Fatalf("unexpected From: %s", r.PostForm.Get("From"))
		}
		if r.PostForm.Get("Body") != "Your MindMate verification code is: 123456" {
			t.Fatalf("unexpected Body: %s", r.PostForm.Get("Body"))
		}
		w.WriteHeader(http.StatusCreated)
		fmt.Fprint(w, `{"sid":"SM1"}`)
	}))
	defer server.Close()

	client := NewTwilioClient(TwilioConfig{
		AccountSID: "AC1",
		AuthToken:  "tok",
		FromNumber: "+15550001111",
		BaseURL:    server.URL,
	})

	if err := client.Send(context.Background(), "+15551234567", "Your MindMate verification code is: 123456"); err != nil {
		t.Fatalf("send failed: %v", err)
	}
}

func TestTwilioClient_Send_APIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		fmt.Fprint(w, `{"message":"The 'To' number is not a valid phone number."}`)
	}))
	defer server.Close()

	client := NewTwilioClient(TwilioConfig{
		AccountSID: "AC1",
		AuthToken:  "tok",
		FromNumber: "+15550001111",
		BaseURL:    server.URL,
	})

	err := client.Send(context.Background(), "bad", "hi")
	if err == nil || !strings.Contains(err.Error(), "not a valid phone number") {
		t.Fatalf("expected twilio error message, got %v", err)
	}
}

func TestTwilioClient_Send_Unconfigured(t *testing.T) {
	client := NewTwilioClient(TwilioConfig{})
	if err := client.Send(context.Background(), "+15551234567", "hi"); err == nil {
		t.Fatalf("expected error for unconfigured client")
	}
}
