package utils

import (
	"strings"
	"testing"
	"time"
)

func TestAccessTokenRoundTrip(t *testing.T) {
	token, exp, err := NewAccessToken("secret", 42, "receptionist", time.Hour)
	if err != nil {
		t.Fatalf("NewAccessToken: %v", err)
	}
	if exp.Before(time.Now()) {
		t.Error("expiry already in the past")
	}

	claims, err := ParseAccessToken("secret", token)
	if err != nil {
		t.Fatalf("ParseAccessToken: %v", err)
	}
	if claims.StaffID != 42 || claims.Role != "receptionist" {
		t.Errorf("claims = %+v", claims)
	}
}

func TestAccessTokenRejectsWrongSecret(t *testing.T) {
	token, _, err := NewAccessToken("secret", 1, "admin", time.Hour)
	if err != nil {
		t.Fatalf("NewAccessToken: %v", err)
	}
	if _, err := ParseAccessToken("other-secret", token); err == nil {
		t.Error("token accepted with wrong secret")
	}
}

func TestAccessTokenRejectsExpired(t *testing.T) {
	token, _, err := NewAccessToken("secret", 1, "admin", -time.Minute)
	if err != nil {
		t.Fatalf("NewAccessToken: %v", err)
	}
	if _, err := ParseAccessToken("secret", token); err == nil {
		t.Error("expired token accepted")
	}
}

func TestNewReferenceCode(t *testing.T) {
	code := NewReferenceCode()
	if !strings.HasPrefix(code, "BK-") || len(code) != 11 {
		t.Errorf("unexpected format: %q", code)
	}
	if code == NewReferenceCode() && code == NewReferenceCode() {
		t.Error("consecutive codes identical")
	}
}
