package security_test

import (
	"testing"

	"github.com/rahulmehta/fieldcrm-backend/pkg/config"
	"github.com/rahulmehta/fieldcrm-backend/pkg/security"
)

func TestGenerateOTP(t *testing.T) {
	code, err := security.GenerateOTP(6)
	if err != nil {
		t.Fatalf("GenerateOTP returned error: %v", err)
	}
	if len(code) != 6 {
		t.Fatalf("expected 6 digits, got %q", code)
	}
	for _, r := range code {
		if r < '0' || r > '9' {
			t.Fatalf("expected numeric code, got %q", code)
		}
	}

	if _, err := security.GenerateOTP(0); err == nil {
		t.Fatal("expected error for non-positive length")
	}
}

func TestHashAndVerifyOTP(t *testing.T) {
	cfg := config.OTPConfig{
		ArgonMemory:  32768,
		ArgonTime:    1,
		ArgonThreads: 1,
	}

	hash, err := security.HashOTP("493021", cfg)
	if err != nil {
		t.Fatalf("HashOTP returned error: %v", err)
	}
	if hash == "" {
		t.Fatal("HashOTP returned empty string")
	}

	ok, err := security.VerifyOTP("493021", hash)
	if err != nil {
		t.Fatalf("VerifyOTP returned error for valid hash: %v", err)
	}
	if !ok {
		t.Fatal("VerifyOTP failed for the correct code")
	}

	ok, err = security.VerifyOTP("000000", hash)
	if err != nil {
		t.Fatalf("VerifyOTP returned error for wrong code: %v", err)
	}
	if ok {
		t.Fatal("VerifyOTP returned true for incorrect code")
	}
}

func TestVerifyOTPBadHash(t *testing.T) {
	if _, err := security.VerifyOTP("irrelevant", "not-a-hash"); err == nil {
		t.Fatal("expected error for malformed hash")
	}
}
