package util

import (
	"bytes"
	"testing"
)

func TestDeriveAndVerifyPassword(t *testing.T) {
	hash, salt, err := DerivePassword("secret1")
	if err != nil {
		t.Fatalf("DerivePassword returned error: %v", err)
	}
	if len(hash) == 0 || len(salt) == 0 {
		t.Fatalf("expected hash and salt to be populated")
	}
	if string(hash) == "secret1" {
		t.Fatalf("stored hash must differ from the raw password")
	}
	if !VerifyPassword("secret1", salt, hash) {
		t.Fatalf("expected password verification to succeed")
	}
	if VerifyPassword("wrong-pass", salt, hash) {
		t.Fatalf("expected password verification to fail for wrong password")
	}
}

func TestDerivePasswordSaltsPerRecord(t *testing.T) {
	hashA, saltA, err := DerivePassword("samepassword")
	if err != nil {
		t.Fatalf("DerivePassword returned error: %v", err)
	}
	hashB, saltB, err := DerivePassword("samepassword")
	if err != nil {
		t.Fatalf("DerivePassword returned error: %v", err)
	}
	if bytes.Equal(saltA, saltB) {
		t.Fatalf("expected distinct salts for separate derivations")
	}
	if bytes.Equal(hashA, hashB) {
		t.Fatalf("identical passwords must not produce identical stored hashes")
	}
}

func TestValidatePassword(t *testing.T) {
	if err := ValidatePassword("abc12"); err == nil {
		t.Fatalf("expected error for password shorter than 6 characters")
	}
	if err := ValidatePassword("abc123"); err != nil {
		t.Fatalf("unexpected error for 6-character password: %v", err)
	}
}

func TestHashPasswordEmptyInput(t *testing.T) {
	if _, err := HashPassword("", []byte{1, 2, 3}); err == nil {
		t.Fatalf("expected error when password empty")
	}
	if _, err := HashPassword("secret", nil); err == nil {
		t.Fatalf("expected error when salt empty")
	}
}
