package service

import (
	"testing"

	"github.com/Prajeshh-06/Smart-Civic-Reporter/internal/auth"
)

func TestIssueTokenMissingFields(t *testing.T) {
	svc := NewAuthService(auth.NewTokenManager("secret", 30), "some-hash")

	_, _, err := svc.IssueToken("", "pass")
	if err == nil {
		t.Fatal("expected validation error")
	}
	if code := domainErrCode(t, err); code != "VALIDATION_FAILED" {
		t.Errorf("code = %q, want VALIDATION_FAILED", code)
	}
}

func TestIssueTokenNotConfigured(t *testing.T) {
	svc := NewAuthService(auth.NewTokenManager("secret", 30), "")

	_, _, err := svc.IssueToken("officer-7", "pass")
	if err == nil {
		t.Fatal("expected unauthorized error")
	}
	if code := domainErrCode(t, err); code != "UNAUTHORIZED" {
		t.Errorf("code = %q, want UNAUTHORIZED", code)
	}
}

func TestIssueTokenValidCredential(t *testing.T) {
	hash, err := auth.HashPassword("field-pass", 4)
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	tokens := auth.NewTokenManager("secret", 30)
	svc := NewAuthService(tokens, hash)

	token, _, err := svc.IssueToken("officer-7", "field-pass")
	if err != nil {
		t.Fatalf("IssueToken: %v", err)
	}
	claims, err := tokens.ParseToken(token)
	if err != nil {
		t.Fatalf("ParseToken: %v", err)
	}
	if claims.SubjectID != "officer-7" {
		t.Errorf("subject = %q, want officer-7", claims.SubjectID)
	}

	if _, _, err := svc.IssueToken("officer-7", "wrong"); err == nil {
		t.Error("wrong password should be rejected")
	}
}
